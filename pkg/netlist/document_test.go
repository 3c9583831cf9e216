package netlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/icemos/internal/testutil"
	"github.com/edp1096/icemos/pkg/device"
)

func TestDocumentLines(t *testing.T) {
	doc := NewDocument("a\r\n+ b=1\n\nlast")

	require.Equal(t, 4, doc.Len())
	assert.Equal(t, "a\r\n", doc.Raw(0))
	assert.Equal(t, "a", doc.Content(0))
	assert.Equal(t, "\r\n", doc.Terminator(0))
	assert.True(t, doc.IsContinuation(1))
	assert.True(t, doc.IsBlank(2))
	assert.Equal(t, "last", doc.Content(3))
	assert.Equal(t, "", doc.Terminator(3))
	assert.Equal(t, 0, NewDocument("").Len())
}

func TestFindSection(t *testing.T) {
	doc := NewDocument(testutil.Library)

	span, ok := doc.FindSection(func(d Declaration) bool {
		return d.Matches(device.N.Prefix(), device.N.Kind(), 0)
	})
	require.True(t, ok)
	assert.Equal(t, ".model sky130_fd_pr__nfet_01v8__model.0 nmos", doc.Content(span.Decl))
	start, end := span.Body()
	assert.Equal(t, 5, end-start)
	assert.Equal(t, "* DC IV MOS Parameters", doc.Content(start))
	assert.True(t, doc.IsBlank(end))

	// Closed by the next declaration rather than a blank line.
	span, ok = doc.FindSection(func(d Declaration) bool {
		return d.Matches(device.P.Prefix(), device.P.Kind(), 10)
	})
	require.True(t, ok)
	assert.True(t, doc.IsDeclaration(span.End))

	// Kind must match the polarity.
	_, ok = doc.FindSection(func(d Declaration) bool {
		return d.Matches(device.N.Prefix(), device.N.Kind(), 5)
	})
	assert.False(t, ok)
}

func TestSections(t *testing.T) {
	doc := NewDocument(testutil.Library)

	spans, decls := doc.Sections(func(d Declaration) bool {
		return d.MatchesFamily(device.N.Prefix(), device.N.Kind())
	})
	require.Len(t, spans, 2)
	assert.Equal(t, 0, decls[0].Bin)
	assert.Equal(t, 1, decls[1].Bin)
}

package modifier

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/icemos/internal/testutil"
	"github.com/edp1096/icemos/pkg/device"
	"github.com/edp1096/icemos/pkg/extract"
	"github.com/edp1096/icemos/pkg/fragment"
)

// twoBins is a fragment file holding two N bins, for isolation checks.
const twoBins = `* two bins
.model sky130_fd_pr__nfet_01v8__model.0 nmos (
+ lmin = 1.0e-07   lmax = {2.0e-06+temp_coeff}
+ vth0=0.5 k1=0.59	k2=-0.01
)

.model sky130_fd_pr__nfet_01v8__model.1 nmos (
+ lmin = 1.5e-07   lmax = 1.0e-06
+ vth0=0.51 k1=0.6	k2=-0.02
)

.END
`

func extracted(t *testing.T, opts ...extract.Option) fragment.Pair {
	t.Helper()
	layout := fragment.NewLayout(filepath.Join(t.TempDir(), "circuits"))
	e := extract.New(testutil.Library, device.N, device.DefaultTables().N, layout, opts...)
	pair, err := e.Extract(context.Background(), 0)
	require.NoError(t, err)
	return pair
}

func writePair(t *testing.T, text string) fragment.Pair {
	t.Helper()
	pair := fragment.NewLayout(t.TempDir()).Pair(device.N, 0)
	require.NoError(t, os.MkdirAll(pair.Dir(), 0o755))
	require.NoError(t, os.WriteFile(pair.Original, []byte(text), 0o644))
	return pair
}

func TestNamesMatchLibraryBlock(t *testing.T) {
	m, err := New(context.Background(), extracted(t), device.N)
	require.NoError(t, err)

	assert.Equal(t, []int{0}, m.Bins())
	assert.Equal(t, testutil.Bin0Names, m.Names(0))
}

func TestModifyKeepsExpressionTail(t *testing.T) {
	ctx := context.Background()
	pair := extracted(t, extract.KeepExpressions())

	m, err := New(ctx, pair, device.N)
	require.NoError(t, err)

	lmax, ok := m.Value(0, "lmax")
	require.True(t, ok)
	assert.Equal(t, Entry{Name: "lmax", Value: "2.0e-06", Extra: "+temp_coeff"}, lmax)

	require.NoError(t, m.ModifyParameter(ctx, 0, "lmax", "3.0e-06"))

	got := testutil.ReadFile(t, pair.Modified)
	assert.Contains(t, got, "+ lmin=1.0e-07 lmax={3.0e-06+temp_coeff} wmin=1.26e-06 wmax=1.68e-06\n")
	assert.NotContains(t, testutil.ReadFile(t, pair.Original), "3.0e-06")
}

func TestModifyIsolation(t *testing.T) {
	ctx := context.Background()
	pair := writePair(t, twoBins)

	m, err := New(ctx, pair, device.N)
	require.NoError(t, err)
	require.NoError(t, m.ModifyParameter(ctx, 1, "k1", "0.75"))

	before := strings.SplitAfter(twoBins, "\n")
	after := strings.SplitAfter(testutil.ReadFile(t, pair.Modified), "\n")
	require.Equal(t, len(before), len(after))

	var changed []int
	for i := range before {
		if before[i] != after[i] {
			changed = append(changed, i)
		}
	}
	require.Len(t, changed, 1)
	assert.Equal(t, "+ vth0=0.51 k1=0.75\tk2=-0.02\n", after[changed[0]])
}

func TestModifyNoOp(t *testing.T) {
	ctx := context.Background()
	pair := writePair(t, twoBins)

	m, err := New(ctx, pair, device.N)
	require.NoError(t, err)

	require.NoError(t, m.ModifyParameter(ctx, 7, "k1", "0.9"))
	require.NoError(t, m.ModifyParameter(ctx, 0, "nosuch", "0.9"))
	require.NoError(t, m.ModifyParameter(ctx, 0, "k1", "0.59"))
	assert.Equal(t, twoBins, testutil.ReadFile(t, pair.Modified))
}

func TestModifyExpressionWithoutLiteral(t *testing.T) {
	ctx := context.Background()
	pair := extracted(t)

	m, err := New(ctx, pair, device.N)
	require.NoError(t, err)
	before := testutil.ReadFile(t, pair.Modified)

	dvt0, ok := m.Value(0, "dvt0")
	require.True(t, ok)
	assert.False(t, dvt0.Tunable())

	require.NoError(t, m.ModifyParameter(ctx, 0, "dvt0", "0.1"))
	assert.Equal(t, before, testutil.ReadFile(t, pair.Modified))
}

func TestModifyRejectsNonLiteral(t *testing.T) {
	ctx := context.Background()
	pair := writePair(t, twoBins)

	m, err := New(ctx, pair, device.N)
	require.NoError(t, err)

	err = m.ModifyParameter(ctx, 0, "k1", "0.5 k9=1")
	assert.True(t, errors.Is(err, ErrInvalidValue))
	assert.Equal(t, twoBins, testutil.ReadFile(t, pair.Modified))
}

func TestRewriteLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	pair := writePair(t, twoBins)

	m, err := New(ctx, pair, device.N)
	require.NoError(t, err)
	require.NoError(t, m.ModifyParameter(ctx, 0, "vth0", "0.45"))

	entries, err := os.ReadDir(pair.Dir())
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{filepath.Base(pair.Original), filepath.Base(pair.Modified)}, names)
}

func TestEditsPersistAcrossSessions(t *testing.T) {
	ctx := context.Background()
	pair := writePair(t, twoBins)

	m, err := New(ctx, pair, device.N)
	require.NoError(t, err)
	require.NoError(t, m.ModifyParameter(ctx, 0, "lmax", "4.0e-06"))

	again, err := New(ctx, pair, device.N)
	require.NoError(t, err)
	lmax, ok := again.Value(0, "lmax")
	require.True(t, ok)
	assert.Equal(t, "4.0e-06", lmax.Value)
	assert.Equal(t, "+temp_coeff", lmax.Extra)
	assert.Equal(t, []string{"lmax"}, again.Changed(0))

	// A later edit of another name keeps the earlier one on disk.
	require.NoError(t, again.ModifyParameter(ctx, 0, "k1", "0.7"))
	got := testutil.ReadFile(t, pair.Modified)
	assert.Contains(t, got, "lmax = {4.0e-06+temp_coeff}")
	assert.Contains(t, got, "k1=0.7\t")
}

func TestResetParameter(t *testing.T) {
	ctx := context.Background()
	pair := writePair(t, twoBins)

	m, err := New(ctx, pair, device.N)
	require.NoError(t, err)
	require.NoError(t, m.ModifyParameter(ctx, 1, "vth0", "0.6"))
	require.NoError(t, m.ResetParameter(ctx, 1, "vth0"))

	assert.Equal(t, twoBins, testutil.ReadFile(t, pair.Modified))
	assert.Empty(t, m.Changed(1))
}

func TestApplyAll(t *testing.T) {
	ctx := context.Background()
	pair := writePair(t, twoBins)

	m, err := New(ctx, pair, device.N)
	require.NoError(t, err)
	require.NoError(t, m.ApplyAll(ctx, 0, map[string]string{
		"vth0":   "0.42",
		"k2":     "-0.03",
		"nosuch": "1",
	}))

	got := testutil.ReadFile(t, pair.Modified)
	assert.Contains(t, got, "+ vth0=0.42 k1=0.59\tk2=-0.03\n")
	assert.ElementsMatch(t, []string{"vth0", "k2"}, m.Changed(0))
}

func TestApplyAllRejectsWithoutPartialEdits(t *testing.T) {
	ctx := context.Background()
	pair := writePair(t, twoBins)

	m, err := New(ctx, pair, device.N)
	require.NoError(t, err)

	err = m.ApplyAll(ctx, 1, map[string]string{"lmin": "2e-07", "k1": "bogus"})
	assert.True(t, errors.Is(err, ErrInvalidValue))
	assert.Empty(t, m.Changed(1))
	lmin, _ := m.Value(1, "lmin")
	assert.Equal(t, "1.5e-07", lmin.Value)
	assert.Equal(t, twoBins, testutil.ReadFile(t, pair.Modified))

	// A later edit writes only its own value.
	require.NoError(t, m.ModifyParameter(ctx, 1, "vth0", "0.6"))
	got := testutil.ReadFile(t, pair.Modified)
	assert.Contains(t, got, "+ lmin = 1.5e-07   lmax = 1.0e-06\n")
	assert.Contains(t, got, "+ vth0=0.6 k1=0.6\tk2=-0.02\n")
	assert.Equal(t, []string{"vth0"}, m.Changed(1))
}

func TestModifyKeepsSpacesInsideBraces(t *testing.T) {
	ctx := context.Background()
	pair := writePair(t, ".model sky130_fd_pr__nfet_01v8__model.0 nmos (\n"+
		"+ lmax = { 2.0e-06 + temp_coeff } k1=1\n)\n\n.END\n")

	m, err := New(ctx, pair, device.N)
	require.NoError(t, err)
	require.NoError(t, m.ModifyParameter(ctx, 0, "lmax", "3.0e-06"))

	assert.Contains(t, testutil.ReadFile(t, pair.Modified), "+ lmax = { 3.0e-06 + temp_coeff } k1=1\n")
	lmax, _ := m.Value(0, "lmax")
	assert.Equal(t, "{ 3.0e-06 + temp_coeff }", lmax.Text())
}

func TestRewriteMissingBin(t *testing.T) {
	ctx := context.Background()
	pair := writePair(t, twoBins)

	m, err := New(ctx, pair, device.N)
	require.NoError(t, err)

	// Someone truncated the modified file behind our back.
	require.NoError(t, os.WriteFile(pair.Modified, []byte("* empty\n"), 0o644))
	assert.Error(t, m.ModifyParameter(ctx, 1, "k1", "0.8"))
	assert.Equal(t, "* empty\n", testutil.ReadFile(t, pair.Modified))
}

func TestNewWithoutOriginal(t *testing.T) {
	pair := fragment.NewLayout(t.TempDir()).Pair(device.N, 0)
	_, err := New(context.Background(), pair, device.N)
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	table := Parse(twoBins, device.N)
	assert.Equal(t, []int{0, 1}, table.Bins())

	bt, ok := table.Bin(0)
	require.True(t, ok)
	assert.Equal(t, []string{"lmin", "lmax", "vth0", "k1", "k2"}, bt.Names())

	lmax, _ := bt.Entry("lmax")
	assert.Equal(t, "{2.0e-06+temp_coeff}", lmax.Text())

	assert.Empty(t, Parse(twoBins, device.P).Bins())
}

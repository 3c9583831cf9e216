package netlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeclaration(t *testing.T) {
	tests := []struct {
		line   string
		prefix string
		bin    int
		kind   string
		open   bool
	}{
		{".model sky130_fd_pr__nfet_01v8__model.0 nmos", "sky130_fd_pr__nfet_01v8__model", 0, "nmos", false},
		{".MODEL sky130_fd_pr__pfet_01v8__model.51  PMOS (", "sky130_fd_pr__pfet_01v8__model", 51, "PMOS", true},
		{"  .model sky130_fd_pr__nfet_01v8__model.12 nmos ( level=54", "sky130_fd_pr__nfet_01v8__model", 12, "nmos", true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			decl, err := ParseDeclaration(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.prefix, decl.Prefix)
			assert.Equal(t, tt.bin, decl.Bin)
			assert.Equal(t, tt.kind, decl.Kind)
			assert.Equal(t, tt.open, decl.Open)
		})
	}
}

func TestDeclarationMatches(t *testing.T) {
	decl, err := ParseDeclaration(".MODEL sky130_fd_pr__nfet_01v8__model.3 NMOS")
	require.NoError(t, err)

	assert.Equal(t, "sky130_fd_pr__nfet_01v8__model.3", decl.Name())
	assert.True(t, decl.Matches("sky130_fd_pr__nfet_01v8__model", "nmos", 3))
	assert.False(t, decl.Matches("sky130_fd_pr__nfet_01v8__model", "nmos", 30))
	assert.False(t, decl.Matches("sky130_fd_pr__nfet_01v8__model", "pmos", 3))
	assert.False(t, decl.Matches("sky130_fd_pr__pfet_01v8__model", "nmos", 3))
}

func TestParseDeclarationErrors(t *testing.T) {
	for _, line := range []string{
		".model sky130_fd_pr__nfet_01v8__model nmos",
		".param temp_coeff=0",
		"+ vth0=0.5",
		"",
	} {
		_, err := ParseDeclaration(line)
		assert.Error(t, err, line)
	}
}

func TestIsDeclaration(t *testing.T) {
	assert.True(t, IsDeclaration(".model x.1 nmos"))
	assert.True(t, IsDeclaration("  .Model anything"))
	assert.False(t, IsDeclaration("* .model in a comment"))
	assert.False(t, IsDeclaration(".models"))
	assert.False(t, IsDeclaration(""))
}

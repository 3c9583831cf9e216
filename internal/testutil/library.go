// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Library is a trimmed model library in the vendor layout. It carries compact
// and spaced assignments, brace expressions with and without a leading
// literal, a section closed by the next declaration instead of a blank line,
// and a declaration whose kind does not match its prefix.
const Library = `* sky130 pm3 model subset
.param
+ temp_coeff = 0.0 sw_vth0_shift = 0.0

.model sky130_fd_pr__nfet_01v8__model.0 nmos
* DC IV MOS Parameters
+ lmin=1.0e-07 lmax={2.0e-06+temp_coeff} wmin=1.26e-06 wmax=1.68e-06
+ level = 54.0 tnom = 30.0 version = 4.5
+ vth0 = {0.4979+sky130_fd_pr__nfet_01v8__vth0_diff_0} k1 = 0.59 toxe = {4.148e-09*(1+temp_coeff)}
+ mobmod = 0 binunit = 2 dvt0 = {sw_vth0_shift}

.model sky130_fd_pr__nfet_01v8__model.1 nmos
+ lmin = 1.5e-07 lmax = 1.0e-06 level = 54.0
+ vth0 = 0.51 k1 = 0.6

.model sky130_fd_pr__nfet_01v8__model.5 pmos
+ vth0 = 0.7

.model sky130_fd_pr__pfet_01v8__model.10 pmos
+ lmin = 1.5e-07 lmax = 1.0e-06 wmin = 1.68e-06
+ vth0 = {-0.41+sky130_fd_pr__pfet_01v8__vth0_diff_10} k1 = 0.48
.model sky130_fd_pr__pfet_01v8__model.11 pmos
+ vth0 = -0.42 k1 = 0.5
`

// Bin0Names are the parameters declared by the N bin 0 block of Library, in
// declaration order.
var Bin0Names = []string{
	"lmin", "lmax", "wmin", "wmax",
	"level", "tnom", "version",
	"vth0", "k1", "toxe",
	"mobmod", "binunit", "dvt0",
}

// WriteLibrary writes Library into dir and returns its path.
func WriteLibrary(t testing.TB, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "sky130.pm3.spice")
	require.NoError(t, os.WriteFile(path, []byte(Library), 0o644))
	return path
}

// ReadFile returns the content of path, failing the test on error.
func ReadFile(t testing.TB, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// Exists reports whether path is present.
func Exists(t testing.TB, path string) bool {
	t.Helper()
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	require.NoError(t, err)
	return true
}

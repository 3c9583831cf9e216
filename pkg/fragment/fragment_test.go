package fragment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/icemos/internal/testutil"
	"github.com/edp1096/icemos/pkg/device"
)

func TestLayout(t *testing.T) {
	l := NewLayout("circuits")

	pair := l.Pair(device.N, 3)
	assert.Equal(t, filepath.Join("circuits", "nch", "bin_3", "bin_3_nch_original.lib"), pair.Original)
	assert.Equal(t, filepath.Join("circuits", "nch", "bin_3", "bin_3_nch_modified.lib"), pair.Modified)
	assert.Equal(t, filepath.Join("circuits", "nch", "bin_3"), pair.Dir())

	assert.Equal(t,
		filepath.Join("circuits", "pch", "bin_10", "netlist_IV_VSD_bin_10_modified.spice"),
		l.Netlist(device.P, 10, "IV_VSD", Modified))
	assert.Equal(t,
		filepath.Join("circuits", "pch", "bin_10", "results_IV_ID_vs_VG"),
		l.ResultsDir(device.P, 10, "results_IV_ID_vs_VG"))

	assert.Equal(t, "circuits", NewLayout("").Root)
	assert.Equal(t, "MODIFIED", Modified.Label())
}

func TestPairWrite(t *testing.T) {
	pair := NewLayout(t.TempDir()).Pair(device.P, 10)
	assert.False(t, pair.Populated())

	require.NoError(t, pair.Write("text\n"))
	assert.True(t, pair.Populated())
	assert.Equal(t, "text\n", testutil.ReadFile(t, pair.Original))
	assert.Equal(t, "text\n", testutil.ReadFile(t, pair.Modified))

	got, err := pair.Read(Modified)
	require.NoError(t, err)
	assert.Equal(t, "text\n", got)
}

func TestEnsureModified(t *testing.T) {
	pair := NewLayout(t.TempDir()).Pair(device.N, 0)
	require.NoError(t, os.MkdirAll(pair.Dir(), 0o755))
	require.NoError(t, os.WriteFile(pair.Original, []byte("orig"), 0o644))

	copied, err := pair.EnsureModified()
	require.NoError(t, err)
	assert.True(t, copied)
	assert.Equal(t, "orig", testutil.ReadFile(t, pair.Modified))

	require.NoError(t, pair.ReplaceModified("edited"))
	copied, err = pair.EnsureModified()
	require.NoError(t, err)
	assert.False(t, copied)
	assert.Equal(t, "edited", testutil.ReadFile(t, pair.Modified))
}

func TestEnsureModifiedWithoutOriginal(t *testing.T) {
	pair := NewLayout(t.TempDir()).Pair(device.N, 0)
	_, err := pair.EnsureModified()
	assert.Error(t, err)
	assert.False(t, testutil.Exists(t, pair.Modified))
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.lib")

	require.NoError(t, WriteFileAtomic(path, []byte("one"), 0o644))
	require.NoError(t, WriteFileAtomic(path, []byte("two"), 0o644))
	assert.Equal(t, "two", testutil.ReadFile(t, path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files left behind")

	err = WriteFileAtomic(filepath.Join(dir, "missing", "f.lib"), []byte("x"), 0o644)
	assert.Error(t, err)
}

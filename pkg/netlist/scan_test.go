package netlist

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/icemos/internal/testutil"
)

func TestScan(t *testing.T) {
	catalog := Scan(testutil.Library)

	// Last occurrence wins across bins.
	k1 := catalog["k1"]
	assert.True(t, k1.IsNumber)
	assert.Equal(t, 0.5, k1.Number)

	lmax := catalog["lmax"]
	assert.Equal(t, "1.0e-06", lmax.Text)

	vth0 := catalog["vth0"]
	assert.Equal(t, -0.42, vth0.Number)

	dvt0 := catalog["dvt0"]
	assert.False(t, dvt0.IsNumber)
	assert.Equal(t, "{sw_vth0_shift}", dvt0.Text)

	// Not bin scoped.
	assert.Contains(t, catalog, "temp_coeff")
}

func TestScanLiteralFallback(t *testing.T) {
	catalog := Scan("+ a={1+b} c=1.5\n+ a=2\n* d=x")

	assert.Equal(t, Value{Text: "2", Number: 2, IsNumber: true}, catalog["a"])
	assert.Equal(t, Value{Text: "x"}, catalog["d"])
	assert.Equal(t, []string{"a", "c", "d"}, catalog.Names())
}

func TestScanFile(t *testing.T) {
	path := testutil.WriteLibrary(t, t.TempDir())

	catalog, err := ScanFile(path)
	require.NoError(t, err)
	assert.Equal(t, Scan(testutil.Library), catalog)

	_, err = ScanFile(filepath.Join(t.TempDir(), "missing.lib"))
	assert.Error(t, err)
}

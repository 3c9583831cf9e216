package render

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/edp1096/icemos/pkg/device"
	"github.com/edp1096/icemos/pkg/util"
)

const stepMarker = "_mosfet_id_vs_vsd_"

// StepBase is the measurement file name, without extension, of one gate
// step: n_mosfet_id_vs_vsd_0.6.
func StepBase(p device.Polarity, vg float64) string {
	return p.Letter() + stepMarker + util.FormatNumber(vg)
}

// ParseStepValue recovers the gate voltage embedded in a step file name such
// as results/p_mosfet_id_vs_vsd_1.2.csv.
func ParseStepValue(filename string) (float64, error) {
	base := filepath.Base(filename)
	switch ext := filepath.Ext(base); ext {
	case ".csv", ".raw":
		base = strings.TrimSuffix(base, ext)
	}

	idx := strings.Index(base, stepMarker)
	if idx < 0 {
		return 0, fmt.Errorf("render: %q is not a step file", filename)
	}
	vg, err := strconv.ParseFloat(base[idx+len(stepMarker):], 64)
	if err != nil {
		return 0, fmt.Errorf("render: step value of %q: %w", filename, err)
	}
	return vg, nil
}

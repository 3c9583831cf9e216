package render

import (
	"fmt"
	"strings"

	"github.com/edp1096/icemos/pkg/device"
)

// Family is the shape of a characterization netlist.
type Family int

const (
	// Gate sweeps VG and records the channel current.
	Gate Family = iota
	// Drain sweeps VDS at each gate step. N devices only.
	Drain
	// Source sweeps VSD at each gate step. P devices only.
	Source
)

func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gate", "iv", "id_vs_vg":
		return Gate, nil
	case "drain", "iv_vds", "vds":
		return Drain, nil
	case "source", "iv_vsd", "vsd":
		return Source, nil
	}
	return Gate, fmt.Errorf("render: unknown family %q", s)
}

func (f Family) String() string {
	switch f {
	case Drain:
		return "drain"
	case Source:
		return "source"
	default:
		return "gate"
	}
}

// Tag is the family part of netlist file names.
func (f Family) Tag() string {
	switch f {
	case Drain:
		return "IV_VDS"
	case Source:
		return "IV_VSD"
	default:
		return "IV"
	}
}

// ResultsDir is the simulator output directory name inside the bin directory.
func (f Family) ResultsDir() string {
	switch f {
	case Drain:
		return "results_IV_IDS_vs_VDS_for_VG_sweep"
	case Source:
		return "results_IV_ISD_vs_VSD_for_VG_sweep"
	default:
		return "results_IV_ID_vs_VG"
	}
}

// Stepped families run an output sweep at every gate step.
func (f Family) Stepped() bool { return f != Gate }

func (f Family) Supports(p device.Polarity) bool {
	switch f {
	case Drain:
		return p == device.N
	case Source:
		return p == device.P
	default:
		return true
	}
}

// OutputFamily is the stepped family of polarity p.
func OutputFamily(p device.Polarity) Family {
	if p == device.P {
		return Source
	}
	return Drain
}

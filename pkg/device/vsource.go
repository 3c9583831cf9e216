package device

import (
	"fmt"

	"github.com/edp1096/icemos/pkg/util"
)

// Instance is an element of a characterization circuit.
type Instance interface {
	GetName() string
	GetType() string
	GetNodeNames() []string
	Card() string
}

// VoltageSource is a DC source. Sweeps and alter commands address it by
// name, so zero-volt sources double as current probes.
type VoltageSource struct {
	Name    string
	Pos     string
	Neg     string
	dcValue float64
}

func NewDCVoltageSource(name string, nodeNames []string, value float64) *VoltageSource {
	if len(nodeNames) != 2 {
		panic(fmt.Sprintf("voltage source %s: requires exactly 2 nodes", name))
	}
	return &VoltageSource{
		Name:    name,
		Pos:     nodeNames[0],
		Neg:     nodeNames[1],
		dcValue: value,
	}
}

func (v *VoltageSource) GetName() string { return v.Name }

func (v *VoltageSource) GetType() string { return "V" }

func (v *VoltageSource) GetNodeNames() []string { return []string{v.Pos, v.Neg} }

func (v *VoltageSource) GetValue() float64 { return v.dcValue }

func (v *VoltageSource) SetValue(value float64) { v.dcValue = value }

func (v *VoltageSource) Card() string {
	return fmt.Sprintf("%s %s %s %s", v.Name, v.Pos, v.Neg, util.FormatNumber(v.dcValue))
}

package device

import (
	"fmt"
	"strings"

	"github.com/edp1096/icemos/pkg/util"
)

// Mosfet is the transistor instance card of a characterization netlist.
// Geometry is in micrometres; the junction areas and perimeters are emitted as
// simulator expressions of nf, W and the diffusion extension.
type Mosfet struct {
	Name   string
	Drain  string
	Gate   string
	Source string
	Bulk   string
	Model  string

	L       float64 // Channel length (um)
	W       float64 // Channel width (um)
	NF      int     // Number of fingers
	M       int     // Multiplier, 0 omits the field
	DiffExt float64 // Source/drain diffusion extension (um)
}

// NewMosfet builds a card with nodes in drain, gate, source, bulk order.
func NewMosfet(name string, nodeNames []string, model string, dims Dimensions) *Mosfet {
	if len(nodeNames) != 4 {
		panic(fmt.Sprintf("mosfet %s: requires exactly 4 nodes (drain, gate, source, bulk)", name))
	}

	return &Mosfet{
		Name:    name,
		Drain:   nodeNames[0],
		Gate:    nodeNames[1],
		Source:  nodeNames[2],
		Bulk:    nodeNames[3],
		Model:   model,
		L:       dims.L,
		W:       dims.W,
		NF:      1,
		DiffExt: 0.29,
	}
}

func (m *Mosfet) GetName() string { return m.Name }

func (m *Mosfet) GetType() string { return "M" }

func (m *Mosfet) GetNodeNames() []string {
	return []string{m.Drain, m.Gate, m.Source, m.Bulk}
}

// Card renders the instance as two physical lines, the second a continuation.
func (m *Mosfet) Card() string {
	ext := util.FormatNumber(m.DiffExt)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s %s %s %s L=%s W=%s nf=%d",
		m.Name, m.Drain, m.Gate, m.Source, m.Bulk, m.Model,
		util.FormatNumber(m.L), util.FormatNumber(m.W), m.NF)
	fmt.Fprintf(&b, " ad='int((nf+1)/2)*W/nf*%s' as='int((nf+2)/2)*W/nf*%s'\n", ext, ext)
	fmt.Fprintf(&b, "+ pd='2*int((nf+1)/2)*(W/nf+%s)' ps='2*int((nf+2)/2)*(W/nf+%s)'", ext, ext)
	fmt.Fprintf(&b, " nrd='%s/W' nrs='%s/W' sa=0 sb=0 sd=0", ext, ext)
	if m.M > 0 {
		fmt.Fprintf(&b, " m=%d", m.M)
	}
	return b.String()
}

// Package render writes characterization netlists for one bin, as an
// original/modified pair that differ only in the included fragment and the
// simulation temperature.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/edp1096/icemos/internal/consts"
	"github.com/edp1096/icemos/internal/ctxlog"
	"github.com/edp1096/icemos/pkg/device"
	"github.com/edp1096/icemos/pkg/fragment"
	"github.com/edp1096/icemos/pkg/sweep"
	"github.com/edp1096/icemos/pkg/util"
)

var (
	ErrUnresolvable   = errors.New("render: cannot resolve bin")
	ErrFamilyPolarity = errors.New("render: family does not apply to polarity")
	ErrLayoutMismatch = errors.New("render: extractor output root differs from renderer")
)

// Extractor produces the fragment pair of a bin on demand.
type Extractor interface {
	Extract(ctx context.Context, bin int) (fragment.Pair, error)
}

// Request selects the bin either directly or by geometry. Dims, when set,
// also overrides the table geometry written into the netlist.
type Request struct {
	Polarity device.Polarity
	Bin      *int
	Dims     *device.Dimensions
	Family   Family
	Gate     sweep.Spec
	Output   *sweep.Spec
}

// Artifacts are the files of one render.
type Artifacts struct {
	Polarity   device.Polarity
	Bin        int
	Dims       device.Dimensions
	Family     Family
	Original   string
	Modified   string
	ResultsDir string
	Fragment   fragment.Pair
	Steps      []float64
}

// Path returns the netlist of variant v.
func (a Artifacts) Path(v fragment.Variant) string {
	if v == fragment.Modified {
		return a.Modified
	}
	return a.Original
}

type Option func(*Renderer)

func WithTolerance(tol float64) Option {
	return func(r *Renderer) { r.tolerance = tol }
}

// WithPDK sets the PDK root and process corner of the model includes.
func WithPDK(root, corner string) Option {
	return func(r *Renderer) { r.pdkRoot, r.corner = root, corner }
}

// WithTemperatures sets the .temp of original and modified netlists.
func WithTemperatures(original, modified float64) Option {
	return func(r *Renderer) { r.temps = [2]float64{original, modified} }
}

func WithVDD(vdd float64) Option {
	return func(r *Renderer) { r.vdd = vdd }
}

// WithExtractor registers the fragment source of a polarity.
func WithExtractor(p device.Polarity, e Extractor) Option {
	return func(r *Renderer) { r.extractors[p] = e }
}

type Renderer struct {
	layout     fragment.Layout
	tables     device.Tables
	extractors map[device.Polarity]Extractor

	tolerance float64
	pdkRoot   string
	corner    string
	temps     [2]float64
	vdd       float64
}

func New(layout fragment.Layout, tables device.Tables, opts ...Option) *Renderer {
	r := &Renderer{
		layout:     layout,
		tables:     tables,
		extractors: make(map[device.Polarity]Extractor),
		tolerance:  consts.TOLERANCE,
		pdkRoot:    consts.PDK_ROOT,
		corner:     consts.CORNER,
		temps:      [2]float64{consts.ROOM_TEMP, consts.CRYO_TEMP},
		vdd:        consts.VDD,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefaultGate is the gate axis used when a request leaves it zero.
func (r *Renderer) DefaultGate(f Family) sweep.Spec {
	if f.Stepped() {
		return sweep.New(0, r.vdd, 0.6)
	}
	return sweep.New(0, r.vdd, 0.1)
}

// DefaultOutput is the drain or source axis of stepped families.
func (r *Renderer) DefaultOutput() sweep.Spec {
	return sweep.New(0, r.vdd, 0.1)
}

// Resolve returns the bin and geometry of req.
func (r *Renderer) Resolve(req Request) (int, device.Dimensions, error) {
	table := r.tables.For(req.Polarity)
	if req.Dims != nil && !req.Dims.Valid() {
		return 0, device.Dimensions{}, fmt.Errorf("%w: invalid geometry %s", ErrUnresolvable, req.Dims)
	}

	var bin int
	switch {
	case req.Bin != nil:
		bin = *req.Bin
	case req.Dims != nil:
		found, ok := table.Lookup(req.Dims.W, req.Dims.L, r.tolerance)
		if !ok {
			return 0, device.Dimensions{}, fmt.Errorf("%w: no %s bin for %s", ErrUnresolvable, req.Polarity, req.Dims)
		}
		bin = found
	default:
		return 0, device.Dimensions{}, fmt.Errorf("%w: neither bin nor dimensions given", ErrUnresolvable)
	}

	if req.Dims != nil {
		return bin, *req.Dims, nil
	}
	dims, err := table.Dimensions(bin)
	if err != nil {
		return 0, device.Dimensions{}, fmt.Errorf("render: %w", err)
	}
	return bin, dims, nil
}

// Render resolves the bin, makes sure its fragment pair exists and writes the
// original and modified netlists. Nothing is written when resolution fails.
func (r *Renderer) Render(ctx context.Context, req Request) (Artifacts, error) {
	logger := ctxlog.FromContext(ctx).With("polarity", req.Polarity.String(), "family", req.Family.String())

	if !req.Family.Supports(req.Polarity) {
		return Artifacts{}, fmt.Errorf("%w: %s with %s", ErrFamilyPolarity, req.Family, req.Polarity)
	}

	bin, dims, err := r.Resolve(req)
	if err != nil {
		return Artifacts{}, err
	}
	logger = logger.With("bin", bin)

	gate, output, err := r.axes(req)
	if err != nil {
		return Artifacts{}, err
	}
	var steps []float64
	if req.Family.Stepped() {
		steps = gate.Values()
	}

	pair, err := r.ensure(ctx, req.Polarity, bin)
	if err != nil {
		return Artifacts{}, err
	}

	art := Artifacts{
		Polarity:   req.Polarity,
		Bin:        bin,
		Dims:       dims,
		Family:     req.Family,
		Original:   r.layout.Netlist(req.Polarity, bin, req.Family.Tag(), fragment.Original),
		Modified:   r.layout.Netlist(req.Polarity, bin, req.Family.Tag(), fragment.Modified),
		ResultsDir: r.layout.ResultsDir(req.Polarity, bin, req.Family.ResultsDir()),
		Fragment:   pair,
		Steps:      steps,
	}

	if err := os.MkdirAll(art.ResultsDir, 0o755); err != nil {
		return Artifacts{}, fmt.Errorf("render: create results dir: %w", err)
	}

	for _, v := range fragment.Variants {
		text, err := r.Netlist(req.Polarity, bin, dims, req.Family, gate, output, v)
		if err != nil {
			return Artifacts{}, err
		}
		if err := fragment.WriteFileAtomic(art.Path(v), []byte(text), 0o644); err != nil {
			return Artifacts{}, fmt.Errorf("render: %w", err)
		}
	}

	logger.Info("Rendered netlists", "original", art.Original, "modified", art.Modified)
	return art, nil
}

func (r *Renderer) axes(req Request) (sweep.Spec, sweep.Spec, error) {
	gate := req.Gate
	if gate == (sweep.Spec{}) {
		gate = r.DefaultGate(req.Family)
	}
	if err := gate.Validate(); err != nil {
		return gate, sweep.Spec{}, fmt.Errorf("render: gate axis: %w", err)
	}

	var output sweep.Spec
	if req.Family.Stepped() {
		output = r.DefaultOutput()
		if req.Output != nil {
			output = *req.Output
		}
		if err := output.Validate(); err != nil {
			return gate, output, fmt.Errorf("render: output axis: %w", err)
		}
	}
	return gate, output, nil
}

// ensure returns the fragment pair of bin, extracting it when the modified
// side is missing. An existing pair is reused so edits survive.
func (r *Renderer) ensure(ctx context.Context, p device.Polarity, bin int) (fragment.Pair, error) {
	pair := r.layout.Pair(p, bin)
	if pair.Populated() {
		ctxlog.FromContext(ctx).Debug("Fragment exists", "path", pair.Modified)
		return pair, nil
	}

	e, ok := r.extractors[p]
	if !ok {
		return fragment.Pair{}, fmt.Errorf("render: no library for %s and %s is missing", p, pair.Modified)
	}
	got, err := e.Extract(ctx, bin)
	if err != nil {
		return fragment.Pair{}, err
	}
	if got != pair {
		return fragment.Pair{}, fmt.Errorf("%w: %s extractor wrote %s, netlists include %s",
			ErrLayoutMismatch, p, got.Modified, pair.Modified)
	}
	return got, nil
}

// Netlist renders the text of one variant without touching the disk.
func (r *Renderer) Netlist(p device.Polarity, bin int, dims device.Dimensions, f Family, gate, output sweep.Spec, v fragment.Variant) (string, error) {
	tmpl, ok := templates[templateKey{f, p}]
	if !ok {
		return "", fmt.Errorf("%w: %s with %s", ErrFamilyPolarity, f, p)
	}

	data := templateData{
		Description: description(f),
		Polarity:    p.String(),
		Label:       v.Label(),
		Include:     "./" + r.layout.FragmentName(p, bin, v),
		Temp:        util.FormatNumber(r.temps[v]),
		Model:       p.ModelName(bin),
		W:           util.FormatNumber(dims.W),
		L:           util.FormatNumber(dims.L),
		Gate:        toAxis(gate),
		Results:     f.ResultsDir(),
		PDK:         r.pdkIncludes(),
	}
	elements, probe := r.circuit(p, f, p.ModelName(bin), dims)
	for _, e := range elements {
		data.Elements = append(data.Elements, e.Card())
	}
	data.Probe = probe
	if f.Stepped() {
		data.Output = toAxis(output)
		for _, vg := range gate.Values() {
			data.Steps = append(data.Steps, step{Value: util.FormatNumber(vg), Base: StepBase(p, vg)})
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render: %s template: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

func description(f Family) string {
	switch f {
	case Drain:
		return "IV VDS with VG sweep simulation"
	case Source:
		return "IV VSD with VG sweep simulation"
	default:
		return "IV simulation"
	}
}

// circuit builds the bench of family f and returns its elements with the
// current probe saved for the output. N devices sit with source and bulk on
// ground; P devices hang from the supply rail.
func (r *Renderer) circuit(p device.Polarity, f Family, model string, dims device.Dimensions) ([]device.Instance, string) {
	if p == device.P {
		m := device.NewMosfet("M2", []string{"VDRAIN", "VGATE", "net1", "net1"}, model, dims)
		m.M = 1
		vdd := device.NewDCVoltageSource("VDD", []string{"net1", "GND"}, r.vdd)
		gate := device.NewDCVoltageSource("VGATE", []string{"net1", "VGATE"}, 0)
		if f == Source {
			return []device.Instance{
				gate,
				device.NewDCVoltageSource("VSOURCE", []string{"net1", "net2"}, 0),
				device.NewDCVoltageSource("vdsM", []string{"VDRAIN", "net2"}, 0),
				m,
				vdd,
			}, "vdsm"
		}
		return []device.Instance{
			gate,
			device.NewDCVoltageSource("vdsM", []string{"VDRAIN", "GND"}, 0),
			m,
			vdd,
		}, "vdsm"
	}

	if f == Drain {
		return []device.Instance{
			device.NewMosfet("M1", []string{"net1", "VGS", "GND", "GND"}, model, dims),
			device.NewDCVoltageSource("VGATE", []string{"VGS", "GND"}, 0),
			device.NewDCVoltageSource("VDRAIN", []string{"VDS", "GND"}, 0),
			device.NewDCVoltageSource("vdsM", []string{"VDS", "net1"}, 0),
		}, "vdsm"
	}
	return []device.Instance{
		device.NewDCVoltageSource("VGATE_src", []string{"net1", "GND"}, 0),
		device.NewMosfet("M1", []string{"net2", "net1", "0", "0"}, model, dims),
		device.NewDCVoltageSource("V1", []string{"V1", "GND"}, r.vdd),
		device.NewDCVoltageSource("V1_meas", []string{"V1", "net2"}, 0),
	}, "V1_meas"
}

func toAxis(s sweep.Spec) axis {
	return axis{
		Start: util.FormatNumber(s.Start),
		Stop:  util.FormatNumber(s.Stop),
		Step:  util.FormatNumber(s.Step),
	}
}

func (r *Renderer) pdkIncludes() []string {
	return []string{
		path.Join(r.pdkRoot, "libs.tech/ngspice/corners", r.corner+".spice"),
		path.Join(r.pdkRoot, "libs.tech/ngspice/r+c/res_typical__cap_typical.spice"),
		path.Join(r.pdkRoot, "libs.tech/ngspice/r+c/res_typical__cap_typical__lin.spice"),
		path.Join(r.pdkRoot, "libs.tech/ngspice/corners", r.corner, "specialized_cells.spice"),
	}
}

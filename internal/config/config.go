// Package config loads the HCL project file: paths, simulation defaults and
// named sweep plans.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/edp1096/icemos/internal/consts"
	"github.com/edp1096/icemos/internal/ctxlog"
	"github.com/edp1096/icemos/pkg/device"
	"github.com/edp1096/icemos/pkg/render"
	"github.com/edp1096/icemos/pkg/sweep"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "icemos.hcl"

// Config is the resolved project configuration.
type Config struct {
	OutputRoot string
	Tolerance  float64
	PDKRoot    string
	Corner     string
	Simulator  string
	RoomTemp   float64
	CryoTemp   float64
	Libraries  map[device.Polarity]string
	Plans      []Plan
}

// Plan is a named render request from a sweep block.
type Plan struct {
	Name     string
	Request  render.Request
	Simulate bool
}

func Default() *Config {
	return &Config{
		OutputRoot: consts.OUTPUT_ROOT,
		Tolerance:  consts.TOLERANCE,
		PDKRoot:    consts.PDK_ROOT,
		Corner:     consts.CORNER,
		Simulator:  consts.SIMULATOR,
		RoomTemp:   consts.ROOM_TEMP,
		CryoTemp:   consts.CRYO_TEMP,
		Libraries:  make(map[device.Polarity]string),
	}
}

// Plan returns the plan called name.
func (c *Config) Plan(name string) (Plan, bool) {
	for _, p := range c.Plans {
		if p.Name == name {
			return p, true
		}
	}
	return Plan{}, false
}

// RenderOptions maps the configuration onto renderer options.
func (c *Config) RenderOptions() []render.Option {
	return []render.Option{
		render.WithTolerance(c.Tolerance),
		render.WithPDK(c.PDKRoot, c.Corner),
		render.WithTemperatures(c.RoomTemp, c.CryoTemp),
	}
}

// EvalContext exposes the supply and temperature constants to expressions,
// e.g. stop = vdd or original = room_temp.
func EvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"vdd":       cty.NumberFloatVal(consts.VDD),
			"room_temp": cty.NumberFloatVal(consts.ROOM_TEMP),
			"cryo_temp": cty.NumberFloatVal(consts.CRYO_TEMP),
			"kelvin":    cty.NumberFloatVal(consts.KELVIN),
		},
		Functions: map[string]function.Function{
			"min":   stdlib.MinFunc,
			"max":   stdlib.MaxFunc,
			"abs":   stdlib.AbsoluteFunc,
			"floor": stdlib.FloorFunc,
			"ceil":  stdlib.CeilFunc,
		},
	}
}

// Load reads the project file at path. Relative library paths are taken
// from the file's directory.
func Load(ctx context.Context, path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(ctx, src, path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	for p, lib := range cfg.Libraries {
		if !filepath.IsAbs(lib) {
			cfg.Libraries[p] = filepath.Join(dir, lib)
		}
	}
	return cfg, nil
}

// Parse decodes an HCL document over the defaults.
func Parse(ctx context.Context, src []byte, filename string) (*Config, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding config file.", "path", filename)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: failed to parse %s: %s", filename, diags.Error())
	}

	var raw fileSchema
	diags = gohcl.DecodeBody(file.Body, EvalContext(), &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: failed to decode %s: %s", filename, diags.Error())
	}

	cfg, err := raw.resolve()
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", filename, err)
	}
	logger.Debug("Decoded config file.", "path", filename, "libraries", len(cfg.Libraries), "plans", len(cfg.Plans))
	return cfg, nil
}

func (f *fileSchema) resolve() (*Config, error) {
	cfg := Default()
	if f.OutputRoot != "" {
		cfg.OutputRoot = f.OutputRoot
	}
	if f.Tolerance != nil {
		if *f.Tolerance <= 0 {
			return nil, fmt.Errorf("tolerance must be positive")
		}
		cfg.Tolerance = *f.Tolerance
	}
	if f.PDKRoot != "" {
		cfg.PDKRoot = f.PDKRoot
	}
	if f.Corner != "" {
		cfg.Corner = f.Corner
	}
	if f.Simulator != "" {
		cfg.Simulator = f.Simulator
	}
	if t := f.Temperature; t != nil {
		if t.Original != nil {
			cfg.RoomTemp = *t.Original
		}
		if t.Modified != nil {
			cfg.CryoTemp = *t.Modified
		}
	}

	for _, lib := range f.Libraries {
		p, err := device.ParsePolarity(lib.Polarity)
		if err != nil {
			return nil, fmt.Errorf("library %q: %w", lib.Polarity, err)
		}
		if _, dup := cfg.Libraries[p]; dup {
			return nil, fmt.Errorf("library %q declared twice", lib.Polarity)
		}
		cfg.Libraries[p] = lib.Path
	}

	seen := make(map[string]bool)
	for _, s := range f.Sweeps {
		if seen[s.Name] {
			return nil, fmt.Errorf("sweep %q declared twice", s.Name)
		}
		seen[s.Name] = true

		plan, err := s.plan()
		if err != nil {
			return nil, fmt.Errorf("sweep %q: %w", s.Name, err)
		}
		cfg.Plans = append(cfg.Plans, plan)
	}
	return cfg, nil
}

func (s *sweepBlock) plan() (Plan, error) {
	p, err := device.ParsePolarity(s.Polarity)
	if err != nil {
		return Plan{}, err
	}
	family := render.Gate
	if s.Family != "" {
		if family, err = render.ParseFamily(s.Family); err != nil {
			return Plan{}, err
		}
	}

	req := render.Request{Polarity: p, Family: family, Bin: s.Bin}
	switch {
	case s.Width != nil && s.Length != nil:
		req.Dims = &device.Dimensions{W: *s.Width, L: *s.Length}
	case s.Width != nil || s.Length != nil:
		return Plan{}, fmt.Errorf("width and length must be given together")
	case s.Bin == nil:
		return Plan{}, fmt.Errorf("needs bin or width and length")
	}

	if s.Gate != nil {
		req.Gate = s.Gate.spec()
		if err := req.Gate.Validate(); err != nil {
			return Plan{}, fmt.Errorf("gate: %w", err)
		}
	}
	if s.Output != nil {
		if !family.Stepped() {
			return Plan{}, fmt.Errorf("output axis given for %s family", family)
		}
		out := s.Output.spec()
		if err := out.Validate(); err != nil {
			return Plan{}, fmt.Errorf("output: %w", err)
		}
		req.Output = &out
	}

	return Plan{Name: s.Name, Request: req, Simulate: s.Simulate}, nil
}

func (a *axisBlock) spec() sweep.Spec {
	return sweep.New(a.Start, a.Stop, a.Step)
}

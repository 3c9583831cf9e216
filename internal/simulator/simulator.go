// Package simulator runs rendered netlists through an external batch
// simulator. Measurement files are left for other tools to read.
package simulator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/edp1096/icemos/internal/consts"
	"github.com/edp1096/icemos/internal/ctxlog"
)

var ErrSimulation = errors.New("simulator: run failed")

// Output is what the simulator printed for one netlist.
type Output struct {
	Netlist  string
	Stdout   string
	Stderr   string
	Duration time.Duration
}

type Runner interface {
	Run(ctx context.Context, netlist string) (Output, error)
}

// Ngspice runs "<Binary> -b <netlist>" from the netlist's directory so the
// relative fragment include and results paths resolve.
type Ngspice struct {
	Binary string
	Args   []string
}

func NewNgspice(binary string) *Ngspice {
	if binary == "" {
		binary = consts.SIMULATOR
	}
	return &Ngspice{Binary: binary}
}

func (n *Ngspice) Run(ctx context.Context, netlist string) (Output, error) {
	logger := ctxlog.FromContext(ctx).With("netlist", netlist)

	abs, err := filepath.Abs(netlist)
	if err != nil {
		return Output{}, fmt.Errorf("simulator: %w", err)
	}

	args := append([]string{"-b"}, n.Args...)
	args = append(args, filepath.Base(abs))
	cmd := exec.CommandContext(ctx, n.Binary, args...)
	cmd.Dir = filepath.Dir(abs)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("Starting simulator", "binary", n.Binary, "dir", cmd.Dir)
	start := time.Now()
	err = cmd.Run()
	out := Output{
		Netlist:  netlist,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if err != nil {
		return out, fmt.Errorf("%w: %s %s: %v\n%s", ErrSimulation, n.Binary, filepath.Base(abs), err, out.Stderr)
	}

	logger.Info("Simulation finished", "duration", out.Duration)
	return out, nil
}

// RunAll simulates each netlist in order and stops at the first failure.
func RunAll(ctx context.Context, r Runner, netlists ...string) ([]Output, error) {
	outputs := make([]Output, 0, len(netlists))
	for _, netlist := range netlists {
		out, err := r.Run(ctx, netlist)
		if err != nil {
			return outputs, err
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

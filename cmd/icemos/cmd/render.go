package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/edp1096/icemos/internal/simulator"
	"github.com/edp1096/icemos/pkg/device"
	"github.com/edp1096/icemos/pkg/render"
	"github.com/edp1096/icemos/pkg/sweep"
)

var (
	renderLibrary  string
	renderBin      int
	renderWidth    float64
	renderLength   float64
	renderFamily   string
	renderGate     sweep.Spec
	renderOutput   sweep.Spec
	renderSimulate bool
)

var renderCmd = &cobra.Command{
	Use:   "render <nch|pch>",
	Short: "Write the original and modified netlists of a sweep",
	Long: `Render characterization netlists for one bin. The bin is given with
--bin or resolved from --width and --length. The fragment pair is extracted
from the library when it does not exist yet; an existing pair is reused.

Families:
  gate    ID vs VG (both polarities)
  drain   IDS vs VDS stepped by VG (nch)
  source  ISD vs VSD stepped by VG (pch)

Examples:
  icemos render pch --bin 10 --gate 0:1.8:0.1
  icemos render nch --width 1.26 --length 0.15 --family drain --output 0:1.8:0.05`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderLibrary, "library", "l", "", "vendor model library")
	renderCmd.Flags().IntVarP(&renderBin, "bin", "b", -1, "bin number")
	renderCmd.Flags().Float64Var(&renderWidth, "width", 0, "channel width in um")
	renderCmd.Flags().Float64Var(&renderLength, "length", 0, "channel length in um")
	renderCmd.Flags().StringVarP(&renderFamily, "family", "f", "gate", "gate, drain or source")
	renderCmd.Flags().Var(&renderGate, "gate", "gate axis start:stop:step")
	renderCmd.Flags().Var(&renderOutput, "output", "drain/source axis start:stop:step")
	renderCmd.Flags().BoolVar(&renderSimulate, "simulate", false, "run the simulator on both netlists")
}

func runRender(cmd *cobra.Command, args []string) error {
	p, err := parsePolarity(args[0])
	if err != nil {
		return err
	}
	family, err := render.ParseFamily(renderFamily)
	if err != nil {
		return err
	}

	req := render.Request{Polarity: p, Family: family, Gate: renderGate}
	if renderBin >= 0 {
		bin := renderBin
		req.Bin = &bin
	}
	if renderWidth > 0 || renderLength > 0 {
		req.Dims = &device.Dimensions{W: renderWidth, L: renderLength}
	}
	if cmd.Flags().Changed("output") {
		out := renderOutput
		req.Output = &out
	}

	r, err := newRenderer(renderLibrary, p)
	if err != nil {
		return err
	}
	art, err := r.Render(cmd.Context(), req)
	if err != nil {
		return err
	}
	printArtifacts(cmd.OutOrStdout(), art)

	if renderSimulate {
		return simulate(cmd, art)
	}
	return nil
}

func printArtifacts(w io.Writer, art render.Artifacts) {
	fmt.Fprintf(w, "%s bin %d (%s) %s netlists:\n", art.Polarity, art.Bin, art.Dims, art.Family)
	fmt.Fprintf(w, "  Original: %s\n", art.Original)
	fmt.Fprintf(w, "  Modified: %s\n", art.Modified)
	fmt.Fprintf(w, "  Results:  %s\n", art.ResultsDir)
	if len(art.Steps) > 0 {
		fmt.Fprintf(w, "  Gate steps: %v\n", art.Steps)
	}
}

func simulate(cmd *cobra.Command, art render.Artifacts) error {
	runner := simulator.NewNgspice(cfg.Simulator)
	outs, err := simulator.RunAll(cmd.Context(), runner, art.Original, art.Modified)
	for _, out := range outs {
		fmt.Fprintf(cmd.OutOrStdout(), "  Simulated %s in %s\n", out.Netlist, out.Duration.Round(1e6))
	}
	return err
}

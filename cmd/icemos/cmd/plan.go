package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edp1096/icemos/internal/config"
	"github.com/edp1096/icemos/pkg/device"
	"github.com/edp1096/icemos/pkg/render"
)

var (
	planList     bool
	planSimulate bool
)

var planCmd = &cobra.Command{
	Use:   "plan [sweep ...]",
	Short: "Render the sweep blocks of the project file",
	Long: `Render every sweep block of the project file, or only the named ones.
Sweeps marked simulate = true are also run through the simulator.

Examples:
  icemos plan --list
  icemos -c lab.hcl plan p10_gate`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().BoolVar(&planList, "list", false, "list the sweeps without rendering")
	planCmd.Flags().BoolVar(&planSimulate, "simulate", false, "simulate every rendered sweep")
}

func runPlan(cmd *cobra.Command, args []string) error {
	plans := cfg.Plans
	if len(args) > 0 {
		plans = plans[:0:0]
		for _, name := range args {
			p, ok := cfg.Plan(name)
			if !ok {
				return fmt.Errorf("no sweep %q in the project file", name)
			}
			plans = append(plans, p)
		}
	}
	if len(plans) == 0 {
		return fmt.Errorf("no sweep blocks to run")
	}

	out := cmd.OutOrStdout()
	if planList {
		for _, p := range plans {
			fmt.Fprintf(out, "%s\t%s %s\n", p.Name, p.Request.Polarity, p.Request.Family)
		}
		return nil
	}

	r, err := newRenderer("", device.N, device.P)
	if err != nil {
		return err
	}
	for _, p := range plans {
		if err := runOnePlan(cmd, r, p); err != nil {
			return fmt.Errorf("sweep %q: %w", p.Name, err)
		}
	}
	return nil
}

func runOnePlan(cmd *cobra.Command, r *render.Renderer, p config.Plan) error {
	art, err := r.Render(cmd.Context(), p.Request)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "[%s] ", p.Name)
	printArtifacts(cmd.OutOrStdout(), art)

	if p.Simulate || planSimulate {
		return simulate(cmd, art)
	}
	return nil
}

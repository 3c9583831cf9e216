package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edp1096/icemos/internal/simulator"
)

var (
	simulateBinary  string
	simulateVerbose bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <netlist> [netlist ...]",
	Short: "Run netlists through the batch simulator",
	Long: `Run each netlist with "<simulator> -b" from the netlist's directory.
Measurement files land in the results directory named by the netlist.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().StringVar(&simulateBinary, "simulator", "", "simulator binary (overrides the project file)")
	simulateCmd.Flags().BoolVarP(&simulateVerbose, "verbose", "v", false, "print simulator output")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	binary := cfg.Simulator
	if simulateBinary != "" {
		binary = simulateBinary
	}

	outs, err := simulator.RunAll(cmd.Context(), simulator.NewNgspice(binary), args...)
	for _, out := range outs {
		fmt.Fprintf(cmd.OutOrStdout(), "Simulated %s in %s\n", out.Netlist, out.Duration.Round(1e6))
		if simulateVerbose {
			fmt.Fprint(cmd.OutOrStdout(), out.Stdout)
		}
	}
	return err
}

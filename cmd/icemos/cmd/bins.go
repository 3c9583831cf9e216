package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/edp1096/icemos/pkg/device"
	"github.com/edp1096/icemos/pkg/util"
)

var (
	binsWidth  float64
	binsLength float64
)

var binsCmd = &cobra.Command{
	Use:   "bins <nch|pch>",
	Short: "Show the bin geometry table or look up a bin",
	Long: `Print the W/L geometry of every bin of a polarity, or with --width and
--length the bin that matches within the configured tolerance.`,
	Args: cobra.ExactArgs(1),
	RunE: runBins,
}

func init() {
	rootCmd.AddCommand(binsCmd)

	binsCmd.Flags().Float64Var(&binsWidth, "width", 0, "channel width in um")
	binsCmd.Flags().Float64Var(&binsLength, "length", 0, "channel length in um")
}

func runBins(cmd *cobra.Command, args []string) error {
	p, err := parsePolarity(args[0])
	if err != nil {
		return err
	}
	table := device.DefaultTables().For(p)
	out := cmd.OutOrStdout()

	if binsWidth > 0 || binsLength > 0 {
		bin, ok := table.Lookup(binsWidth, binsLength, cfg.Tolerance)
		if !ok {
			return fmt.Errorf("no %s bin for W=%s um L=%s um", p,
				util.FormatNumber(binsWidth), util.FormatNumber(binsLength))
		}
		fmt.Fprintf(out, "%d\t%s\n", bin, p.ModelName(bin))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "BIN\tW (um)\tL (um)\tMODEL\n")
	for _, bin := range table.Bins() {
		d, _ := table.Dimensions(bin)
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", bin, util.FormatNumber(d.W), util.FormatNumber(d.L), p.ModelName(bin))
	}
	return w.Flush()
}

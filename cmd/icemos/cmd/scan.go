package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/edp1096/icemos/pkg/netlist"
)

var scanNumeric bool

var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "List every name=value parameter found in a model file",
	Long: `Scan a library or fragment for name=value assignments. The last
occurrence of a name wins. The result seeds the list of tunable parameters.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().BoolVarP(&scanNumeric, "numeric", "n", false, "only list numeric values")
}

func runScan(cmd *cobra.Command, args []string) error {
	catalog, err := netlist.ScanFile(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	count := 0
	for _, name := range catalog.Names() {
		v := catalog[name]
		if scanNumeric && !v.IsNumber {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", name, v.Text)
		count++
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d parameter(s)\n", count)
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/edp1096/icemos/pkg/netlist"
	"github.com/edp1096/icemos/pkg/util"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <netlist>",
	Short: "Summarize a rendered netlist",
	Long: `Parse a netlist and print its title, includes, temperature, parameters,
elements and control block.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	deck, err := netlist.ParseDeck(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Title: %s\n", deck.Title)
	if deck.Temp != nil {
		fmt.Fprintf(out, "Temperature: %s C\n", util.FormatNumber(*deck.Temp))
	}

	fmt.Fprintf(out, "Includes:\n")
	for _, inc := range deck.Includes {
		fmt.Fprintf(out, "  %s\n", inc)
	}

	if len(deck.Params) > 0 {
		names := make([]string, 0, len(deck.Params))
		for name := range deck.Params {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintf(out, "Parameters:\n")
		for _, name := range names {
			fmt.Fprintf(out, "  %s = %s\n", name, deck.Params[name])
		}
	}

	fmt.Fprintf(out, "Elements:\n")
	for _, elem := range deck.Elements {
		fmt.Fprintf(out, "  %-10s %v", elem.Name, elem.Nodes)
		if elem.Model != "" {
			fmt.Fprintf(out, " %s", elem.Model)
		}
		if elem.Value != "" {
			fmt.Fprintf(out, " %s", elem.Value)
		}
		fmt.Fprintln(out)
	}

	if len(deck.Control) > 0 {
		fmt.Fprintf(out, "Control:\n")
		for _, line := range deck.Control {
			fmt.Fprintf(out, "  %s\n", line)
		}
	}
	return nil
}

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/edp1096/icemos/pkg/extract"
	"github.com/edp1096/icemos/pkg/fragment"
)

var (
	extractLibrary string
	extractWidth   float64
	extractLength  float64
	extractKeep    bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <nch|pch> [bin]",
	Short: "Write the original and modified fragment of one bin",
	Long: `Locate a bin in the vendor model library and write it as a standalone
fragment pair. Brace expressions are reduced to their leading literal unless
--keep-expressions is set. Give either a bin number or --width and --length.

Examples:
  icemos extract nch 0 --library sky130.pm3.spice
  icemos extract pch --width 2 --length 0.15`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractLibrary, "library", "l", "", "vendor model library")
	extractCmd.Flags().Float64Var(&extractWidth, "width", 0, "channel width in um")
	extractCmd.Flags().Float64Var(&extractLength, "length", 0, "channel length in um")
	extractCmd.Flags().BoolVar(&extractKeep, "keep-expressions", false, "keep {literal+expr} values")
}

func runExtract(cmd *cobra.Command, args []string) error {
	p, err := parsePolarity(args[0])
	if err != nil {
		return err
	}

	var opts []extract.Option
	if extractKeep {
		opts = append(opts, extract.KeepExpressions())
	}
	e, err := openExtractor(extractLibrary, p, opts...)
	if err != nil {
		return err
	}

	var (
		bin  int
		pair fragment.Pair
	)
	switch {
	case len(args) == 2:
		if bin, err = strconv.Atoi(args[1]); err != nil || bin < 0 {
			return fmt.Errorf("invalid bin %q", args[1])
		}
		pair, err = e.Extract(cmd.Context(), bin)
	case extractWidth > 0 && extractLength > 0:
		bin, pair, err = e.ExtractByDimensions(cmd.Context(), extractWidth, extractLength, cfg.Tolerance)
	default:
		return fmt.Errorf("give a bin number or both --width and --length")
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Extracted %s\n", p.ModelName(bin))
	fmt.Fprintf(out, "  Original: %s\n", pair.Original)
	fmt.Fprintf(out, "  Modified: %s\n", pair.Modified)
	return nil
}

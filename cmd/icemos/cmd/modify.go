package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edp1096/icemos/pkg/modifier"
)

var modifyReset []string

var modifyCmd = &cobra.Command{
	Use:   "modify <nch|pch> <bin> [name=value ...]",
	Short: "Point-edit parameters of a bin's modified fragment",
	Long: `Set parameter values in the modified fragment of an extracted bin.
Only the value text of the named parameters changes. Unknown names are
ignored. Without assignments the changed parameters are listed.

Examples:
  icemos modify nch 0 vth0=0.55
  icemos modify pch 10 --reset vth0`,
	Args: cobra.MinimumNArgs(2),
	RunE: runModify,
}

func init() {
	rootCmd.AddCommand(modifyCmd)

	modifyCmd.Flags().StringSliceVar(&modifyReset, "reset", nil, "restore the original value of these names")
}

func runModify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	p, err := parsePolarity(args[0])
	if err != nil {
		return err
	}
	bin, err := strconv.Atoi(args[1])
	if err != nil || bin < 0 {
		return fmt.Errorf("invalid bin %q", args[1])
	}

	pair := layout().Pair(p, bin)
	if !pair.Populated() {
		return fmt.Errorf("%s is not extracted yet, run: icemos extract %s %d", p.ModelName(bin), p, bin)
	}
	m, err := modifier.New(ctx, pair, p)
	if err != nil {
		return err
	}

	values := make(map[string]string)
	for _, arg := range args[2:] {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return fmt.Errorf("invalid assignment %q, want name=value", arg)
		}
		if _, known := m.Value(bin, name); !known {
			fmt.Fprintf(cmd.ErrOrStderr(), "ignoring unknown parameter %s\n", name)
			continue
		}
		values[name] = value
	}
	if err := m.ApplyAll(ctx, bin, values); err != nil {
		return err
	}
	for _, name := range modifyReset {
		if err := m.ResetParameter(ctx, bin, name); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	changed := m.Changed(bin)
	if len(changed) == 0 {
		fmt.Fprintf(out, "%s matches the original\n", p.ModelName(bin))
		return nil
	}
	fmt.Fprintf(out, "%s differs from the original in:\n", p.ModelName(bin))
	for _, name := range changed {
		e, _ := m.Value(bin, name)
		fmt.Fprintf(out, "  %s=%s\n", name, e.Text())
	}
	return nil
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edp1096/icemos/internal/config"
	"github.com/edp1096/icemos/internal/ctxlog"
	"github.com/edp1096/icemos/pkg/device"
)

var (
	// Global flags
	configPath string
	outputRoot string
	logLevel   string
	logFormat  string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "icemos",
	Short: "Bin model extraction, parameter editing and netlist rendering for sky130 MOSFETs",
	Long: `Extract single bins from the sky130 01v8 model library, tune their
parameters in place and render characterization netlists that compare the
original model at room temperature with the modified model at 4 K.

Examples:
  icemos extract pch 10 --library sky130.pm3.spice     # Write the fragment pair of bin 10
  icemos modify nch 0 vth0=0.55 k1=0.6                 # Point-edit the modified fragment
  icemos render pch --bin 10 --gate 0:1.8:0.1          # Gate sweep netlists
  icemos render nch --width 1.26 --length 0.15 --family drain
  icemos plan                                          # Render every sweep in icemos.hcl`,
	Version:           "0.3.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"project file (default ./"+config.DefaultFile+" when present)")
	rootCmd.PersistentFlags().StringVar(&outputRoot, "root", "",
		"output root for fragments and netlists (overrides output_root)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn",
		"log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text or json")
}

func setup(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(cmd.ErrOrStderr(), logLevel, logFormat)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = ctxlog.WithLogger(ctx, logger)
	cmd.SetContext(ctx)

	cfg, err = loadConfig(ctx)
	if err != nil {
		return err
	}
	if outputRoot != "" {
		cfg.OutputRoot = outputRoot
	}
	return nil
}

func loadConfig(ctx context.Context) (*config.Config, error) {
	path := configPath
	if path == "" {
		if _, err := os.Stat(config.DefaultFile); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return config.Default(), nil
			}
			return nil, err
		}
		path = config.DefaultFile
	}
	return config.Load(ctx, path)
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("invalid --log-format %q", format)
}

func parsePolarity(arg string) (device.Polarity, error) {
	p, err := device.ParsePolarity(arg)
	if err != nil {
		return p, fmt.Errorf("%w: %q (want nch or pch)", err, arg)
	}
	return p, nil
}

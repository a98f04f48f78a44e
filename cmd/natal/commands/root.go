package commands

import (
	"context"
	"natal-chart-service/internal/app"
	"natal-chart-service/internal/config"
	"natal-chart-service/internal/platform/logger"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. Logs go to stderr so stdout stays
// clean for chart output.
func NewRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "natal",
		Short: "Compute natal charts from the command line",
		Long: `Natal chart CLI

Uses the same engine and configuration (.env / environment) as the HTTP server.

Examples:
  go run ./cmd/natal chart --date 1990-06-15 --time 14:30 --city "New York" --country USA
  go run ./cmd/natal chart --date 1990-06-15 --time 14:30 --lat 40.7128 --lon -74.006 --json
  go run ./cmd/natal cities`,
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	build := func(ctx context.Context) (*app.App, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		log := logger.NewWithWriter(os.Stderr, level, cfg.Env)
		return app.Build(ctx, cfg, log)
	}

	root.AddCommand(newChartCmd(build))
	root.AddCommand(newCitiesCmd(build))

	return root
}

type appBuilder func(ctx context.Context) (*app.App, error)

// Execute runs the CLI. This is called by main.main().
func Execute() error {
	return NewRootCmd().Execute()
}

// Command movies runs the offline side of the dashboard: synthetic data
// generation, the transformation pipeline and report export.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iliyamo/movie-analytics/internal/config"
	"github.com/iliyamo/movie-analytics/internal/logger"
)

// app is the state shared by every subcommand.
type app struct {
	cfg config.PipelineConfig
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.LoadPipeline()}
	root := &cobra.Command{
		Use:           "movies",
		Short:         "Movie analytics pipeline tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(a.cfg.LogMode)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			a.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				a.log.Sync()
			}
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfg.RawDir, "raw-dir", a.cfg.RawDir, "directory holding raw_movies.csv and raw_daily_sales.csv")
	pf.StringVar(&a.cfg.DataDir, "data-dir", a.cfg.DataDir, "directory for the processed tables")
	pf.StringVar(&a.cfg.LogMode, "log-mode", a.cfg.LogMode, "logger encoding: dev or prod")

	root.AddCommand(
		newGenerateCmd(a),
		newProcessCmd(a),
		newReportCmd(a),
		newHashPasswordCmd(),
	)
	return root
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "movies:", err)
		os.Exit(1)
	}
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "movies:", err)
		os.Exit(1)
	}
}

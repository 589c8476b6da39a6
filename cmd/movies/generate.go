package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/movie-analytics/internal/dataset"
	"github.com/iliyamo/movie-analytics/internal/pipeline"
)

func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a seeded synthetic raw dataset to --raw-dir",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.DefaultGenerateOptions()
			opts.Movies = a.cfg.Movies
			opts.SalesDays = a.cfg.SalesDays
			opts.SalesTop = a.cfg.SalesTop
			opts.Seed = a.cfg.Seed

			movies, sales, err := pipeline.Generate(opts)
			if err != nil {
				return err
			}
			if err := dataset.WriteRaw(a.cfg.RawDir, movies, sales); err != nil {
				return err
			}
			a.log.Info("raw dataset generated", "dir", a.cfg.RawDir, "movies", len(movies), "sales", len(sales), "seed", opts.Seed)
			fmt.Fprintf(cmd.OutOrStdout(), "generated %d movies and %d sales rows in %s\n", len(movies), len(sales), a.cfg.RawDir)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&a.cfg.Movies, "movies", a.cfg.Movies, "number of movies")
	f.IntVar(&a.cfg.SalesDays, "sales-days", a.cfg.SalesDays, "days of sales per movie")
	f.IntVar(&a.cfg.SalesTop, "sales-top", a.cfg.SalesTop, "movies (by gross) that get daily sales")
	f.Uint64Var(&a.cfg.Seed, "seed", a.cfg.Seed, "random seed")
	return cmd
}

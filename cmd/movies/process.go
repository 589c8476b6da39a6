package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/movie-analytics/internal/pipeline"
	"github.com/iliyamo/movie-analytics/internal/queue"
	"github.com/iliyamo/movie-analytics/internal/service"
)

func newProcessCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Clean the raw tables and write the processed tables to --data-dir",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if a.cfg.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
				defer cancel()
			}

			runner := &pipeline.Runner{RawDir: a.cfg.RawDir, OutDir: a.cfg.DataDir, Log: a.log}
			res, err := runner.Run(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d movies (%d skipped), %d sales rows, %d genres, %d studios, %d months -> %s\n",
				res.RunID, res.Movies, len(res.Skipped), res.Sales, res.Genres, res.Studios, res.Months, a.cfg.DataDir)

			if !a.cfg.Publish {
				return nil
			}
			ev := queue.PipelineCompletedEvent{
				RunID:      res.RunID,
				DataDir:    a.cfg.DataDir,
				Movies:     res.Movies,
				Skipped:    len(res.Skipped),
				Sales:      res.Sales,
				FinishedAt: res.FinishedAt,
			}
			if err := service.NewPublisher(a.cfg.AMQPURL, a.log).PublishPipelineCompleted(ctx, ev); err != nil {
				// the tables are written; a missed event only delays the reload
				a.log.Warn("pipeline.completed not published", "run_id", res.RunID, "error", err)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.BoolVar(&a.cfg.Publish, "publish", a.cfg.Publish, "announce the run on RabbitMQ")
	f.StringVar(&a.cfg.AMQPURL, "amqp-url", a.cfg.AMQPURL, "RabbitMQ URL")
	f.DurationVar(&a.cfg.Timeout, "timeout", a.cfg.Timeout, "abort the run after this long")
	return cmd
}

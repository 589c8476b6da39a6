package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/movie-analytics/internal/analytics"
)

func newReportCmd(a *app) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export the comprehensive report from --data-dir",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			an := analytics.New(a.cfg.DataDir)
			if err := an.Load(); err != nil {
				return err
			}
			res, err := an.ExportReport(format, out)
			if err != nil {
				return err
			}
			if out != "" {
				a.log.Info("report written", "path", res, "format", format)
				fmt.Fprintln(cmd.OutOrStdout(), res)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", analytics.FormatJSON, "json or csv")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this file instead of stdout")
	return cmd
}

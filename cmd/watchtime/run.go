package main

import (
	"github.com/spf13/cobra"

	"watchtime/pkg/pipeline"
)

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Profile, engineer features, train and evaluate both models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := pipeline.Run(cmd.Context(), a.cfg, a.log, a.rec)
			if err != nil {
				return err
			}
			return a.render(cmd, res.Document)
		},
	}
	cmd.Flags().String("report", "", "write the run report as YAML to this path")
	cmd.Flags().String("charts", "", "write PNG charts into this directory")
	cmd.Flags().String("metrics", "", "write Prometheus textfile metrics to this path")
	cmd.Flags().Int("trees", 0, "number of trees in the random forest")
	return cmd
}

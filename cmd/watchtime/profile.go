package main

import (
	"github.com/spf13/cobra"

	"watchtime/pkg/pipeline"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Load the dataset and print its exploratory profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := pipeline.Profile(cmd.Context(), a.cfg, a.log, a.rec)
			if err != nil {
				return err
			}
			return a.render(cmd, res.Document)
		},
	}
	cmd.Flags().String("report", "", "write the profile as YAML to this path")
	cmd.Flags().String("charts", "", "write PNG charts into this directory")
	return cmd
}

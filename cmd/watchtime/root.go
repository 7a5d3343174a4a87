package main

import (
	"github.com/spf13/cobra"

	"watchtime/pkg/config"
	"watchtime/pkg/logger"
	"watchtime/pkg/metrics"
	"watchtime/pkg/report"
)

// app is the state shared by every subcommand after flag parsing.
type app struct {
	configPath string
	cfg        *config.Config
	log        logger.Logger
	rec        *metrics.Recorder
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "watchtime",
		Short: "Watch-time analysis of trending videos",
		Long: `watchtime loads a trending-videos CSV and an optional category lookup,
profiles the data, engineers a watch-time proxy target and compares a
linear regression with a random forest on a seeded train/test split.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	f := root.PersistentFlags()
	f.StringVarP(&a.configPath, "config", "c", "", "config file (YAML); defaults to $WATCHTIME_CONFIG")
	f.String("dataset", "", "trending videos CSV")
	f.String("categories", "", "category lookup JSON")
	f.Int64("seed", 0, "seed for the split and the forest")
	f.String("log-level", "", "debug, info, warn or error")
	f.Bool("plain", false, "disable styled console output")

	root.AddCommand(newRunCmd(a), newProfileCmd(a))
	return root
}

// setup loads the config, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Context(), a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("dataset") {
		cfg.DatasetPath, _ = flags.GetString("dataset")
	}
	if flags.Changed("categories") {
		cfg.CategoryPath, _ = flags.GetString("categories")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("plain") {
		cfg.Plain, _ = flags.GetBool("plain")
	}
	if flags.Changed("report") {
		cfg.ReportPath, _ = flags.GetString("report")
	}
	if flags.Changed("charts") {
		cfg.ChartDir, _ = flags.GetString("charts")
	}
	if flags.Changed("metrics") {
		cfg.MetricsPath, _ = flags.GetString("metrics")
	}
	if flags.Changed("trees") {
		cfg.Forest.Trees, _ = flags.GetInt("trees")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger.Init(cmd.ErrOrStderr(), cfg.LogLevel)
	a.rec = metrics.New()
	return nil
}

// render prints doc to the command's output.
func (a *app) render(cmd *cobra.Command, doc report.Document) error {
	out := cmd.OutOrStdout()
	return report.Render(out, doc, !a.cfg.Plain && report.Styled(out))
}

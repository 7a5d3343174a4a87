// Package config defines the pipeline configuration and its defaults.
package config

import (
	"fmt"
	"strings"

	"watchtime/pkg/data"
	"watchtime/pkg/dataprep"
)

// Forest holds the random forest hyperparameters.
type Forest struct {
	// Trees is the number of estimators.
	Trees int `koanf:"trees" yaml:"trees"`

	// MaxDepth limits tree depth; 0 grows until leaves are pure.
	MaxDepth int `koanf:"max_depth" yaml:"max_depth"`

	MinSamplesSplit int `koanf:"min_samples_split" yaml:"min_samples_split"`
	MinSamplesLeaf  int `koanf:"min_samples_leaf" yaml:"min_samples_leaf"`

	// MaxFeatures is the number of features tried per split; 0 means all.
	MaxFeatures int `koanf:"max_features" yaml:"max_features"`
}

// Config contains the settings of one pipeline run.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" yaml:"log_level"`

	// DatasetPath is the trending-videos CSV.
	DatasetPath string `koanf:"dataset_path" yaml:"dataset_path"`

	// CategoryPath is the optional category lookup JSON.
	CategoryPath string `koanf:"category_path" yaml:"category_path"`

	// Seed drives the split and the forest.
	Seed int64 `koanf:"seed" yaml:"seed"`

	// TestRatio is the share of rows held out for testing.
	TestRatio float64 `koanf:"test_ratio" yaml:"test_ratio"`

	// ScaleColumns are standardised with statistics from the training rows.
	ScaleColumns []string `koanf:"scale_columns" yaml:"scale_columns"`

	DescriptionFill string `koanf:"description_fill" yaml:"description_fill"`
	TagsFill        string `koanf:"tags_fill" yaml:"tags_fill"`

	Forest Forest `koanf:"forest" yaml:"forest"`

	// ReportPath, ChartDir and MetricsPath are optional outputs.
	ReportPath  string `koanf:"report_path" yaml:"report_path"`
	ChartDir    string `koanf:"chart_dir" yaml:"chart_dir"`
	MetricsPath string `koanf:"metrics_path" yaml:"metrics_path"`

	// Plain disables styled console output.
	Plain bool `koanf:"plain" yaml:"plain"`
}

// New returns a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Seed:            42,
		TestRatio:       0.2,
		ScaleColumns:    []string{data.ColView, dataprep.ColPublishHour},
		DescriptionFill: dataprep.DefaultTextFill.Description,
		TagsFill:        dataprep.DefaultTextFill.Tags,
		Forest: Forest{
			Trees:           100,
			MaxDepth:        0,
			MinSamplesSplit: 2,
			MinSamplesLeaf:  1,
			MaxFeatures:     0,
		},
	}
}

// TextFill returns the configured missing-text sentinels.
func (c *Config) TextFill() dataprep.TextFill {
	return dataprep.TextFill{Description: c.DescriptionFill, Tags: c.TagsFill}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string
	if c.DatasetPath == "" {
		problems = append(problems, "dataset_path must not be empty")
	}
	if !(c.TestRatio > 0 && c.TestRatio < 1) {
		problems = append(problems, fmt.Sprintf("test_ratio must be in (0,1), got %v", c.TestRatio))
	}
	if c.Forest.Trees < 1 {
		problems = append(problems, "forest.trees must be at least 1")
	}
	if c.Forest.MaxDepth < 0 {
		problems = append(problems, "forest.max_depth must not be negative")
	}
	if c.Forest.MinSamplesSplit < 2 {
		problems = append(problems, "forest.min_samples_split must be at least 2")
	}
	if c.Forest.MinSamplesLeaf < 1 {
		problems = append(problems, "forest.min_samples_leaf must be at least 1")
	}
	if c.Forest.MaxFeatures < 0 {
		problems = append(problems, "forest.max_features must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

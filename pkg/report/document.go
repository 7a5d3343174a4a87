// Package report renders a pipeline run to the console, YAML and charts.
package report

import (
	"time"

	"watchtime/pkg/eval"
	"watchtime/pkg/profile"
)

// Scaled describes one standardised column.
type Scaled struct {
	Column string  `yaml:"column"`
	Mean   float64 `yaml:"mean"`
	Std    float64 `yaml:"std"`
}

// Features summarises the engineered model input.
type Features struct {
	Rows            int      `yaml:"rows"`
	Train           int      `yaml:"train_rows"`
	Test            int      `yaml:"test_rows"`
	TimestampFailed int      `yaml:"timestamp_failed"`
	NonPositiveView int      `yaml:"non_positive_view"`
	Incomplete      int      `yaml:"incomplete"`
	Columns         []string `yaml:"columns"`
	Scaled          []Scaled `yaml:"scaled"`
}

// Document is everything a run reports.
type Document struct {
	RunID       string           `yaml:"run_id"`
	GeneratedAt time.Time        `yaml:"generated_at"`
	Dataset     string           `yaml:"dataset"`
	Seed        int64            `yaml:"seed"`
	TestRatio   float64          `yaml:"test_ratio"`
	Profile     *profile.Profile `yaml:"profile,omitempty"`
	Features    *Features        `yaml:"features,omitempty"`
	Scores      []eval.Score     `yaml:"scores,omitempty"`
	Best        string           `yaml:"best_model,omitempty"`
}

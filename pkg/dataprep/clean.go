package dataprep

import (
	"fmt"
	"math"

	"watchtime/pkg/data"
)

// ExcludedColumns is the deny-list of non-numeric or irrelevant columns
// removed before modeling. Absent names are ignored.
var ExcludedColumns = []string{
	data.ColChannelID, data.ColCategoryID, "live_status", "local_title",
	"local_description", "duration", "dimension", "definition",
	"caption", "license_status", "allowed_region", "blocked_region",
	data.ColDislike, data.ColFavorite, data.ColPublishTime, data.ColDescription, data.ColTags,
	data.ColTitle, data.ColChannelName, data.ColTrendingTime,
}

// LeakageColumns are inputs of the target formula and must never be features.
var LeakageColumns = []string{data.ColLike, data.ColComment, ColEngagementScore}

// Encoding prefixes for the categorical columns.
const (
	CategoryPrefix = "cat"
	DayPrefix      = "day"
)

// BuildFrame lays the numeric fields of obs out as a Frame and appends the
// one-hot encodings of category name and publish day. Optional numeric
// source columns are only included when the schema has them.
func BuildFrame(obs []Observation, schema data.Schema) (Frame, error) {
	type numeric struct {
		name string
		get  func(Observation) float64
	}
	cols := []numeric{
		{data.ColView, func(o Observation) float64 { return o.View }},
		{data.ColLike, func(o Observation) float64 { return o.Like }},
		{data.ColComment, func(o Observation) float64 { return o.Comment }},
	}
	if schema.Has(data.ColDislike) {
		cols = append(cols, numeric{data.ColDislike, func(o Observation) float64 { return o.Dislike }})
	}
	if schema.Has(data.ColFavorite) {
		cols = append(cols, numeric{data.ColFavorite, func(o Observation) float64 { return o.Favorite }})
	}
	cols = append(cols,
		numeric{ColPublishHour, func(o Observation) float64 { return o.PublishHour }},
		numeric{ColEngagementScore, func(o Observation) float64 { return o.EngagementScore }},
		numeric{ColWatchTimeProxy, func(o Observation) float64 { return o.WatchTimeProxy }},
	)

	f := Frame{Columns: make([]string, len(cols)), Rows: make([][]float64, len(obs))}
	for j, c := range cols {
		f.Columns[j] = c.name
	}
	cats := make([]string, len(obs))
	days := make([]string, len(obs))
	for i, o := range obs {
		row := make([]float64, len(cols))
		for j, c := range cols {
			row[j] = c.get(o)
		}
		f.Rows[i] = row
		cats[i], days[i] = o.CategoryName, o.PublishDay
	}

	f, err := AppendEncoding(f, OneHot(cats, CategoryPrefix))
	if err != nil {
		return Frame{}, err
	}
	return AppendEncoding(f, OneHot(days, DayPrefix))
}

// ModelInput is the feature matrix and target vector handed to training.
type ModelInput struct {
	Features Frame
	Target   []float64
}

// SplitTarget separates the target column from f and removes the leakage
// columns from the features.
func SplitTarget(f Frame, target string) (ModelInput, error) {
	y, ok := f.Column(target)
	if !ok {
		return ModelInput{}, fmt.Errorf("%w: %s", ErrMissingTarget, target)
	}
	drop := append([]string{target}, LeakageColumns...)
	in := ModelInput{Features: f.Drop(drop...), Target: y}
	return in, in.Validate()
}

// Validate checks the invariants required before fitting: aligned lengths,
// no missing values, no leakage columns.
func (m ModelInput) Validate() error {
	if len(m.Target) != m.Features.Len() {
		return fmt.Errorf("%w: %d targets for %d rows", ErrShape, len(m.Target), m.Features.Len())
	}
	for _, c := range LeakageColumns {
		if m.Features.Has(c) {
			return fmt.Errorf("%w: %s", ErrLeakage, c)
		}
	}
	if n := m.Features.MissingCount(); n > 0 {
		return fmt.Errorf("%w: %d feature cells", ErrIncomplete, n)
	}
	for _, v := range m.Target {
		if math.IsNaN(v) {
			return fmt.Errorf("%w: target", ErrIncomplete)
		}
	}
	return nil
}

// Take returns the rows at idx of both features and target.
func (m ModelInput) Take(idx []int) ModelInput {
	y := make([]float64, len(idx))
	for k, i := range idx {
		y[k] = m.Target[i]
	}
	return ModelInput{Features: m.Features.Take(idx), Target: y}
}

// Len returns the number of rows.
func (m ModelInput) Len() int { return len(m.Target) }

package dataprep

import (
	"context"
	"fmt"

	"watchtime/pkg/data"
	"watchtime/pkg/logger"
)

// Options configure the feature engineer.
type Options struct {
	Fill   TextFill
	Target string
	Log    logger.Logger
}

// DefaultOptions returns the options used by the trending report.
func DefaultOptions() Options {
	return Options{Fill: DefaultTextFill, Target: ColWatchTimeProxy, Log: logger.Named("dataprep")}
}

// Stats counts rows lost or recovered at each step.
type Stats struct {
	Input           int
	TimestampFailed int
	NonPositiveView int
	Incomplete      int
	Output          int
}

// Result bundles every snapshot the engineer produced.
type Result struct {
	Observations []Observation // after step 5
	Frame        Frame         // after step 8, target still included
	Input        ModelInput
	Stats        Stats
}

// Engineer turns a joined table into model input. The steps run in a fixed
// order: strip identifiers, fill text, derive publish hour/day, drop
// non-positive views, compute engagement and proxy, one-hot encode, apply
// the deny-list, drop incomplete rows, split off the target.
func Engineer(ctx context.Context, t *data.Table, opts Options) (*Result, error) {
	if opts.Target == "" {
		opts.Target = ColWatchTimeProxy
	}
	log := opts.Log
	if log == nil {
		log = logger.Named("dataprep")
	}
	st := Stats{Input: len(t.Records)}

	obs := StripIdentifiers(t.Records)
	obs = FillText(obs, opts.Fill)

	obs, st.TimestampFailed = AddPublishFeatures(obs)
	if st.TimestampFailed > 0 {
		log.Debug(ctx, "publish_time unparseable, hour/day set missing", logger.Int("rows", st.TimestampFailed))
	}

	before := len(obs)
	obs = FilterPositiveViews(obs)
	st.NonPositiveView = before - len(obs)
	if len(obs) == 0 {
		return nil, fmt.Errorf("%w: no rows with view > 0", ErrEmptyDataset)
	}

	obs = AddEngagement(obs)

	frame, err := BuildFrame(obs, t.Schema)
	if err != nil {
		return nil, fmt.Errorf("build frame: %w", err)
	}
	frame = frame.Drop(ExcludedColumns...)
	frame, st.Incomplete = frame.DropNA()
	if frame.Len() == 0 {
		return nil, fmt.Errorf("%w: every row has a missing value", ErrEmptyDataset)
	}
	st.Output = frame.Len()

	in, err := SplitTarget(frame, opts.Target)
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "features engineered",
		logger.Int("input_rows", st.Input),
		logger.Int("non_positive_view", st.NonPositiveView),
		logger.Int("incomplete", st.Incomplete),
		logger.Int("rows", st.Output),
		logger.Int("features", in.Features.Width()),
	)
	return &Result{Observations: obs, Frame: frame, Input: in, Stats: st}, nil
}

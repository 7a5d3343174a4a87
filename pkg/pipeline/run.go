// Package pipeline wires loading, profiling, feature engineering, training
// and evaluation into one run.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"watchtime/pkg/config"
	"watchtime/pkg/data"
	"watchtime/pkg/dataprep"
	"watchtime/pkg/eval"
	"watchtime/pkg/loader"
	"watchtime/pkg/logger"
	"watchtime/pkg/metrics"
	"watchtime/pkg/model"
	"watchtime/pkg/profile"
	"watchtime/pkg/report"
	"watchtime/pkg/stats"
)

// Stage names.
const (
	StageLoad     = "load"
	StageJoin     = "join"
	StageProfile  = "profile"
	StageEngineer = "engineer"
	StageSplit    = "split"
	StageScale    = "scale"
	StageTrain    = "train"
	StageEvaluate = "evaluate"
	StageReport   = "report"
)

// Model names used in reports.
const (
	LinearRegression = "Linear Regression"
	RandomForest     = "Random Forest"
)

// Result accumulates the output of every stage of a run.
type Result struct {
	RunID      string
	StartedAt  time.Time
	Config     config.Config
	Raw        *data.Table
	Categories data.CategoryMap
	Table      *data.Table
	Profile    *profile.Profile
	Features   *dataprep.Result
	Split      loader.Split
	Train      dataprep.ModelInput
	Test       dataprep.ModelInput
	Scaler     stats.Transform
	XTrain     [][]float64
	XTest      [][]float64
	Models     []eval.Named
	Eval       eval.Report
	Best       string
	Document   report.Document
	Charts     []string

	log logger.Logger
	rec *metrics.Recorder
}

// Run executes the full analysis described by cfg.
func Run(ctx context.Context, cfg *config.Config, log logger.Logger, rec *metrics.Recorder) (*Result, error) {
	return execute(ctx, cfg, log, rec,
		loadStage(), joinStage(), profileStage(),
		engineerStage(), splitStage(), scaleStage(),
		trainStage(), evaluateStage(), reportStage(),
	)
}

// Profile loads, joins and profiles the dataset without training.
func Profile(ctx context.Context, cfg *config.Config, log logger.Logger, rec *metrics.Recorder) (*Result, error) {
	return execute(ctx, cfg, log, rec, loadStage(), joinStage(), profileStage(), reportStage())
}

func execute(ctx context.Context, cfg *config.Config, log logger.Logger, rec *metrics.Recorder, steps ...Stage) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Get()
	}
	r := &Result{RunID: uuid.NewString(), StartedAt: time.Now().UTC(), Config: *cfg, rec: rec}
	r.log = log.With(logger.String("run_id", r.RunID))

	err := NewPipeline(r.log.Named("pipeline"), rec, steps...).Run(ctx, r)
	if cfg.MetricsPath != "" && rec != nil {
		if werr := rec.WriteTextfile(cfg.MetricsPath); werr != nil {
			r.log.Warn(ctx, "metrics not written", logger.Error(werr))
		}
	}
	return r, err
}

func stage(name string, fn func(ctx context.Context, r *Result) error) Stage {
	return StageFunc{StageName: name, Fn: fn}
}

func loadStage() Stage {
	return stage(StageLoad, func(_ context.Context, r *Result) error {
		t, err := data.LoadRecords(r.Config.DatasetPath)
		if err != nil {
			return err
		}
		r.Raw = t
		r.rec.SetRows(StageLoad, t.Stats.Rows)
		r.rec.AddCoerced(t.Stats.Coerced)
		return nil
	})
}

func joinStage() Stage {
	return stage(StageJoin, func(ctx context.Context, r *Result) error {
		if r.Raw == nil {
			return ErrNoData
		}
		if r.Config.CategoryPath != "" {
			cats, err := data.LoadCategories(r.Config.CategoryPath)
			if err != nil {
				return err
			}
			r.Categories = cats
		}
		r.Table = data.JoinTable(r.Raw, r.Categories)
		if n := r.Table.Stats.Uncatalogued; n > 0 {
			r.log.Warn(ctx, "records without a category name", logger.Int("rows", n))
		}
		r.rec.SetRows(StageJoin, len(r.Table.Records))
		return nil
	})
}

func profileStage() Stage {
	return stage(StageProfile, func(_ context.Context, r *Result) error {
		if r.Table == nil {
			return ErrNoData
		}
		p := profile.Build(r.Table)
		r.Profile = &p
		return nil
	})
}

func engineerStage() Stage {
	return stage(StageEngineer, func(ctx context.Context, r *Result) error {
		if r.Table == nil {
			return ErrNoData
		}
		opts := dataprep.DefaultOptions()
		opts.Fill = r.Config.TextFill()
		opts.Log = r.log.Named("dataprep")
		res, err := dataprep.Engineer(ctx, r.Table, opts)
		if err != nil {
			return err
		}
		r.Features = res
		r.rec.SetRows(StageEngineer, res.Input.Len())
		return nil
	})
}

func splitStage() Stage {
	return stage(StageSplit, func(_ context.Context, r *Result) error {
		if r.Features == nil {
			return ErrNoData
		}
		in := r.Features.Input
		sp, err := loader.TrainTestSplit(in.Len(), r.Config.TestRatio, r.Config.Seed)
		if err != nil {
			return err
		}
		r.Split = sp
		r.Train = in.Take(sp.Train)
		r.Test = in.Take(sp.Test)
		r.rec.SetRows(eval.Train, r.Train.Len())
		r.rec.SetRows(eval.Test, r.Test.Len())
		return nil
	})
}

// scaleStage fits the scaler on the training rows only and applies the
// frozen transform to both partitions.
func scaleStage() Stage {
	return stage(StageScale, func(_ context.Context, r *Result) error {
		if r.Features == nil {
			return ErrNoData
		}
		cols, err := columnIndices(r.Train.Features, r.Config.ScaleColumns)
		if err != nil {
			return err
		}
		tr, err := stats.NewStandardScaler(cols...).Fit(r.Train.Features.Rows)
		if err != nil {
			return err
		}
		r.Scaler = tr
		r.XTrain = tr.Apply(r.Train.Features.Rows)
		r.XTest = tr.Apply(r.Test.Features.Rows)
		return nil
	})
}

func columnIndices(f dataprep.Frame, names []string) ([]int, error) {
	idx := make([]int, 0, len(names))
	for _, n := range names {
		i := f.Index(n)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, n)
		}
		idx = append(idx, i)
	}
	return idx, nil
}

func trainStage() Stage {
	return stage(StageTrain, func(ctx context.Context, r *Result) error {
		if r.XTrain == nil {
			return ErrNoData
		}
		fc := r.Config.Forest
		models := []eval.Named{
			{Name: LinearRegression, Model: model.NewLinearRegression()},
			{Name: RandomForest, Model: model.NewRandomForestRegressor(
				model.WithNEstimators(fc.Trees),
				model.WithSeed(r.Config.Seed),
				model.WithTreeShape(fc.MaxDepth, fc.MinSamplesSplit, fc.MinSamplesLeaf, fc.MaxFeatures),
			)},
		}
		for _, m := range models {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := m.Model.Fit(r.XTrain, r.Train.Target); err != nil {
				return fmt.Errorf("fit %s: %w", m.Name, err)
			}
		}
		r.Models = models
		return nil
	})
}

func evaluateStage() Stage {
	return stage(StageEvaluate, func(ctx context.Context, r *Result) error {
		if len(r.Models) == 0 {
			return ErrNoData
		}
		rep, err := eval.Evaluate(r.Models,
			eval.Set{Name: eval.Train, X: r.XTrain, Y: r.Train.Target},
			eval.Set{Name: eval.Test, X: r.XTest, Y: r.Test.Target},
		)
		if err != nil {
			return err
		}
		r.Eval = rep
		r.Best, _ = rep.Best()
		for _, sc := range rep.Scores {
			r.rec.SetScore(sc.Model, sc.Partition, "mae", sc.MAE)
			r.rec.SetScore(sc.Model, sc.Partition, "mse_div_1000", sc.MSE)
			r.rec.SetScore(sc.Model, sc.Partition, "r2", sc.R2)
			r.log.Info(ctx, "model evaluated",
				logger.String("model", sc.Model),
				logger.String("partition", sc.Partition),
				logger.Float64("mae", sc.MAE),
				logger.Float64("mse_div_1000", sc.MSE),
				logger.Float64("r2", sc.R2),
			)
		}
		return nil
	})
}

// reportStage assembles the report document and writes the optional YAML
// and chart outputs.
func reportStage() Stage {
	return stage(StageReport, func(_ context.Context, r *Result) error {
		r.Document = r.document()
		if path := r.Config.ReportPath; path != "" {
			if err := report.WriteYAML(path, r.Document); err != nil {
				return err
			}
		}
		if dir := r.Config.ChartDir; dir != "" {
			preds, err := r.testPredictions()
			if err != nil {
				return err
			}
			paths, err := report.RenderCharts(dir, report.ChartData{
				Profile:     r.Profile,
				Scores:      r.Eval.Scores,
				Predictions: preds,
			})
			r.Charts = paths
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Result) document() report.Document {
	doc := report.Document{
		RunID:       r.RunID,
		GeneratedAt: r.StartedAt,
		Dataset:     r.Config.DatasetPath,
		Seed:        r.Config.Seed,
		TestRatio:   r.Config.TestRatio,
		Profile:     r.Profile,
		Scores:      r.Eval.Scores,
		Best:        r.Best,
	}
	if r.Features == nil {
		return doc
	}
	st := r.Features.Stats
	f := &report.Features{
		Rows:            r.Features.Input.Len(),
		Train:           len(r.Split.Train),
		Test:            len(r.Split.Test),
		TimestampFailed: st.TimestampFailed,
		NonPositiveView: st.NonPositiveView,
		Incomplete:      st.Incomplete,
		Columns:         append([]string(nil), r.Features.Input.Features.Columns...),
	}
	if r.Scaler.Fitted() {
		mean, std := r.Scaler.Mean(), r.Scaler.Std()
		for k, c := range r.Scaler.Columns() {
			f.Scaled = append(f.Scaled, report.Scaled{Column: f.Columns[c], Mean: mean[k], Std: std[k]})
		}
	}
	doc.Features = f
	return doc
}

func (r *Result) testPredictions() ([]report.Prediction, error) {
	out := make([]report.Prediction, 0, len(r.Models))
	for _, m := range r.Models {
		pred, err := m.Model.Predict(r.XTest)
		if err != nil {
			return nil, fmt.Errorf("predict %s: %w", m.Name, err)
		}
		out = append(out, report.Prediction{Model: m.Name, Actual: r.Test.Target, Predicted: pred})
	}
	return out, nil
}

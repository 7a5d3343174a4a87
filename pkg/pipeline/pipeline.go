package pipeline

import (
	"context"
	"time"

	"watchtime/pkg/logger"
	"watchtime/pkg/metrics"
)

// Stage is one step of a run. Stages read what earlier stages stored on the
// Result and add their own output; they never replace earlier output.
type Stage interface {
	Name() string
	Run(ctx context.Context, r *Result) error
}

// StageFunc adapts a function to Stage.
type StageFunc struct {
	StageName string
	Fn        func(ctx context.Context, r *Result) error
}

func (s StageFunc) Name() string                             { return s.StageName }
func (s StageFunc) Run(ctx context.Context, r *Result) error { return s.Fn(ctx, r) }

// Pipeline chains stages.
type Pipeline struct {
	steps []Stage
	log   logger.Logger
	rec   *metrics.Recorder
}

// NewPipeline builds a pipeline. log and rec may be nil.
func NewPipeline(log logger.Logger, rec *metrics.Recorder, steps ...Stage) *Pipeline {
	if log == nil {
		log = logger.Named("pipeline")
	}
	return &Pipeline{steps: steps, log: log, rec: rec}
}

// Run executes every stage in order, stopping at the first error or when
// ctx is done. Failures are returned as *StageError.
func (p *Pipeline) Run(ctx context.Context, r *Result) error {
	for _, step := range p.steps {
		name := step.Name()
		if err := ctx.Err(); err != nil {
			return &StageError{Stage: name, Err: err}
		}
		log := p.log.With(logger.String("stage", name))
		log.Debug(ctx, "stage started")

		start := time.Now()
		err := step.Run(ctx, r)
		elapsed := time.Since(start)
		p.rec.ObserveStage(name, elapsed, err)

		if err != nil {
			log.Error(ctx, "stage failed", logger.Error(err), logger.Any("elapsed", elapsed))
			return &StageError{Stage: name, Err: err}
		}
		log.Info(ctx, "stage finished", logger.Any("elapsed", elapsed))
	}
	return nil
}

package pipeline

import (
	"errors"
	"fmt"
)

// Sentinel errors of the orchestrator.
var (
	ErrUnknownColumn = errors.New("pipeline: unknown column")
	ErrNoData        = errors.New("pipeline: stage input missing")
)

// StageError names the stage a run failed in.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("stage %s: %v", e.Stage, e.Err) }

func (e *StageError) Unwrap() error { return e.Err }

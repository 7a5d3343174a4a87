package model

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNotFitted is returned by Predict before a successful Fit.
	ErrNotFitted = errors.New("model: predict called before fit")
	// ErrEmptyInput is returned when fitting on no rows.
	ErrEmptyInput = errors.New("model: empty training data")
	// ErrDimensionMismatch is returned for misaligned X/y or row widths.
	ErrDimensionMismatch = errors.New("model: dimension mismatch")
	// ErrMissingValue is returned when X or y holds NaN or Inf.
	ErrMissingValue = errors.New("model: non-finite value in input")
)

// Regressor is a supervised model predicting a scalar per row. Predict
// must return ErrNotFitted until Fit has succeeded.
type Regressor interface {
	Fit(X [][]float64, y []float64) error
	Predict(X [][]float64) ([]float64, error)
}

// checkXY validates a training set and returns its shape.
func checkXY(X [][]float64, y []float64) (n, p int, err error) {
	n = len(X)
	if n == 0 {
		return 0, 0, ErrEmptyInput
	}
	if len(y) != n {
		return 0, 0, fmt.Errorf("%w: %d rows, %d targets", ErrDimensionMismatch, n, len(y))
	}
	p = len(X[0])
	for i, row := range X {
		if len(row) != p {
			return 0, 0, fmt.Errorf("%w: row %d has %d features, want %d", ErrDimensionMismatch, i, len(row), p)
		}
		for _, v := range row {
			if !finite(v) {
				return 0, 0, fmt.Errorf("%w: row %d", ErrMissingValue, i)
			}
		}
		if !finite(y[i]) {
			return 0, 0, fmt.Errorf("%w: target %d", ErrMissingValue, i)
		}
	}
	return n, p, nil
}

// checkWidth validates prediction input against the fitted width.
func checkWidth(X [][]float64, p int) error {
	for i, row := range X {
		if len(row) != p {
			return fmt.Errorf("%w: row %d has %d features, model expects %d", ErrDimensionMismatch, i, len(row), p)
		}
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

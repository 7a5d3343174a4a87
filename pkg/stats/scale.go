package stats

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmptyFit is returned when a scaler is fitted on no rows.
	ErrEmptyFit = errors.New("stats: cannot fit scaler on empty data")
	// ErrColumnRange is returned for a column index outside the row width.
	ErrColumnRange = errors.New("stats: column index out of range")
	// ErrMissingValue is returned when a fitted column holds NaN.
	ErrMissingValue = errors.New("stats: missing value in fitted column")
)

// StandardScaler standardizes a chosen subset of columns to zero mean and
// unit variance. Fitting returns a Transform; the scaler itself keeps no
// state, so the only way to scale data is with parameters learned by Fit.
type StandardScaler struct {
	Columns []int
}

// NewStandardScaler returns a scaler for the given column positions.
func NewStandardScaler(columns ...int) *StandardScaler {
	return &StandardScaler{Columns: append([]int(nil), columns...)}
}

// Transform holds frozen per-column statistics.
type Transform struct {
	columns []int
	mean    []float64
	std     []float64
}

// Fit learns mean and population standard deviation of each configured
// column of X. A zero deviation is replaced by 1 so constant columns map
// to 0.
func (s *StandardScaler) Fit(X [][]float64) (Transform, error) {
	if len(X) == 0 {
		return Transform{}, ErrEmptyFit
	}
	t := Transform{
		columns: append([]int(nil), s.Columns...),
		mean:    make([]float64, len(s.Columns)),
		std:     make([]float64, len(s.Columns)),
	}
	col := make([]float64, len(X))
	for k, j := range s.Columns {
		for i, row := range X {
			if j < 0 || j >= len(row) {
				return Transform{}, fmt.Errorf("%w: %d", ErrColumnRange, j)
			}
			if math.IsNaN(row[j]) {
				return Transform{}, fmt.Errorf("%w: column %d row %d", ErrMissingValue, j, i)
			}
			col[i] = row[j]
		}
		t.mean[k] = Mean(col)
		t.std[k] = Std(col)
		if t.std[k] == 0 {
			t.std[k] = 1
		}
	}
	return t, nil
}

// Apply returns a scaled copy of X. X itself is not modified, and calling
// Apply twice on the same input yields identical output.
func (t Transform) Apply(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		r := append([]float64(nil), row...)
		for k, j := range t.columns {
			if j < len(r) {
				r[j] = (r[j] - t.mean[k]) / t.std[k]
			}
		}
		out[i] = r
	}
	return out
}

// Columns returns the scaled column positions.
func (t Transform) Columns() []int { return append([]int(nil), t.columns...) }

// Mean returns the fitted means, aligned with Columns.
func (t Transform) Mean() []float64 { return append([]float64(nil), t.mean...) }

// Std returns the fitted deviations, aligned with Columns.
func (t Transform) Std() []float64 { return append([]float64(nil), t.std...) }

// Fitted reports whether t came out of a successful Fit.
func (t Transform) Fitted() bool { return t.mean != nil }

package model

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// LinearRegression is ordinary least squares with an intercept, solved in
// closed form.
type LinearRegression struct {
	W []float64 // weights
	b float64   // bias

	fitted bool
}

// NewLinearRegression returns an unfitted model.
func NewLinearRegression() *LinearRegression {
	return &LinearRegression{}
}

// Fit centres X and y, solves the least-squares system through a thin SVD
// and recovers the intercept from the means. Rank-deficient designs, such
// as a full set of one-hot columns, get the minimum-norm solution.
func (m *LinearRegression) Fit(X [][]float64, y []float64) error {
	n, p, err := checkXY(X, y)
	if err != nil {
		return fmt.Errorf("linear: %w", err)
	}

	xMean := make([]float64, p)
	yMean := 0.0
	for i, row := range X {
		for j, v := range row {
			xMean[j] += v
		}
		yMean += y[i]
	}
	for j := range xMean {
		xMean[j] /= float64(n)
	}
	yMean /= float64(n)

	m.W = make([]float64, p)
	m.b = yMean
	m.fitted = true
	if p == 0 {
		return nil
	}

	A := mat.NewDense(n, p, nil)
	bv := mat.NewVecDense(n, nil)
	for i, row := range X {
		for j, v := range row {
			A.Set(i, j, v-xMean[j])
		}
		bv.SetVec(i, y[i]-yMean)
	}

	var svd mat.SVD
	if ok := svd.Factorize(A, mat.SVDThin); !ok {
		m.fitted = false
		return fmt.Errorf("linear: svd factorization failed")
	}
	rcond := math.Nextafter(1, 2) - 1
	rank := svd.Rank(rcond * float64(max(n, p)))
	if rank == 0 {
		// every feature is constant; the mean is the best fit
		return nil
	}
	var w mat.VecDense
	svd.SolveVecTo(&w, bv, rank)
	for j := range m.W {
		m.W[j] = w.AtVec(j)
		m.b -= m.W[j] * xMean[j]
	}
	return nil
}

// Predict returns predictions for rows in X. Rows are split across
// GOMAXPROCS workers; each worker writes a disjoint range.
func (m *LinearRegression) Predict(X [][]float64) ([]float64, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	if err := checkWidth(X, len(m.W)); err != nil {
		return nil, err
	}
	pred := make([]float64, len(X))
	if len(X) == 0 {
		return pred, nil
	}
	var wg sync.WaitGroup

	workers := runtime.GOMAXPROCS(0)
	rowsPerWorker := (len(X) + workers - 1) / workers

	for w := 0; w < workers; w++ {
		s := w * rowsPerWorker
		e := min(s+rowsPerWorker, len(X))
		if s >= e {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				sum := m.b
				for j, v := range X[i] {
					sum += m.W[j] * v
				}
				pred[i] = sum
			}
		}(s, e)
	}
	wg.Wait()
	return pred, nil
}

// Bias returns the fitted intercept.
func (m *LinearRegression) Bias() float64 {
	return m.b
}

package model

import "math"

// MSE is the mean squared error. It returns NaN for empty or misaligned input.
func MSE(yTrue, yPred []float64) float64 {
	if len(yTrue) == 0 || len(yPred) != len(yTrue) {
		return math.NaN()
	}
	s := 0.0
	for i := range yTrue {
		d := yPred[i] - yTrue[i]
		s += d * d
	}
	return s / float64(len(yTrue))
}

// MAE is the mean absolute error. It returns NaN for empty or misaligned input.
func MAE(yTrue, yPred []float64) float64 {
	if len(yTrue) == 0 || len(yPred) != len(yTrue) {
		return math.NaN()
	}
	s := 0.0
	for i := range yTrue {
		s += math.Abs(yPred[i] - yTrue[i])
	}
	return s / float64(len(yTrue))
}

func RMSE(yTrue, yPred []float64) float64 { return math.Sqrt(MSE(yTrue, yPred)) }

// R2 is the coefficient of determination. For a constant target it is 1
// when the predictions are exact and 0 otherwise.
func R2(yTrue, yPred []float64) float64 {
	if len(yTrue) == 0 || len(yPred) != len(yTrue) {
		return math.NaN()
	}
	m := 0.0
	for _, v := range yTrue {
		m += v
	}
	m /= float64(len(yTrue))
	ssTot := 0.0
	ssRes := 0.0
	for i := range yTrue {
		d := yTrue[i] - m
		ssTot += d * d
		r := yTrue[i] - yPred[i]
		ssRes += r * r
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}

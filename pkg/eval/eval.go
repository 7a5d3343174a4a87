// Package eval scores fitted regressors on the train and test partitions.
package eval

import (
	"errors"
	"fmt"
	"sort"

	"watchtime/pkg/model"
)

// MSEScale divides the reported mean squared error for readability.
const MSEScale = 1e3

// Partition names.
const (
	Train = "train"
	Test  = "test"
)

// ErrNoModels is returned when there is nothing to evaluate.
var ErrNoModels = errors.New("eval: no models to evaluate")

// Named pairs a fitted regressor with its display name.
type Named struct {
	Name  string
	Model model.Regressor
}

// Set is one labelled partition. X must already carry the frozen scaler
// transform; Evaluate never transforms it again.
type Set struct {
	Name string
	X    [][]float64
	Y    []float64
}

// Score is the metric triple of one model on one partition.
type Score struct {
	Model     string  `yaml:"model"`
	Partition string  `yaml:"partition"`
	MAE       float64 `yaml:"mae"`
	MSE       float64 `yaml:"mse_div_1000"`
	R2        float64 `yaml:"r2"`
}

// Report holds every score, in model-then-partition order.
type Report struct {
	Scores []Score `yaml:"scores"`
}

// Evaluate predicts every set with every model and records MAE, MSE/1000
// and R². Neither the models nor the sets are modified.
func Evaluate(models []Named, sets ...Set) (Report, error) {
	if len(models) == 0 {
		return Report{}, ErrNoModels
	}
	var r Report
	for _, m := range models {
		for _, s := range sets {
			pred, err := m.Model.Predict(s.X)
			if err != nil {
				return Report{}, fmt.Errorf("eval %s on %s: %w", m.Name, s.Name, err)
			}
			r.Scores = append(r.Scores, Score{
				Model:     m.Name,
				Partition: s.Name,
				MAE:       model.MAE(s.Y, pred),
				MSE:       model.MSE(s.Y, pred) / MSEScale,
				R2:        model.R2(s.Y, pred),
			})
		}
	}
	return r, nil
}

// Lookup returns the score of a model on a partition.
func (r Report) Lookup(modelName, partition string) (Score, bool) {
	for _, s := range r.Scores {
		if s.Model == modelName && s.Partition == partition {
			return s, true
		}
	}
	return Score{}, false
}

// Models returns model names in first-seen order.
func (r Report) Models() []string {
	var out []string
	seen := map[string]bool{}
	for _, s := range r.Scores {
		if !seen[s.Model] {
			seen[s.Model] = true
			out = append(out, s.Model)
		}
	}
	return out
}

// ByTestMSE returns model names sorted by test MSE, largest first.
func (r Report) ByTestMSE() []string {
	names := r.Models()
	mse := func(n string) float64 {
		s, _ := r.Lookup(n, Test)
		return s.MSE
	}
	sort.SliceStable(names, func(i, j int) bool { return mse(names[i]) > mse(names[j]) })
	return names
}

// Best returns the model with the lowest test MAE.
func (r Report) Best() (string, bool) {
	best, found := "", false
	bestMAE := 0.0
	for _, n := range r.Models() {
		s, ok := r.Lookup(n, Test)
		if !ok {
			continue
		}
		if !found || s.MAE < bestMAE {
			best, bestMAE, found = n, s.MAE, true
		}
	}
	return best, found
}

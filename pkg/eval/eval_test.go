package eval_test

import (
	"errors"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"watchtime/pkg/eval"
	"watchtime/pkg/model"
)

// echo predicts the first feature.
type echo struct{}

func (echo) Fit([][]float64, []float64) error { return nil }
func (echo) Predict(X [][]float64) ([]float64, error) {
	out := make([]float64, len(X))
	for i, r := range X {
		out[i] = r[0]
	}
	return out, nil
}

// constant predicts a fixed value.
type constant float64

func (constant) Fit([][]float64, []float64) error { return nil }
func (c constant) Predict(X [][]float64) ([]float64, error) {
	out := make([]float64, len(X))
	for i := range out {
		out[i] = float64(c)
	}
	return out, nil
}

func TestEvaluate(t *testing.T) {
	convey.Convey("Given a perfect model and a mean model", t, func() {
		train := eval.Set{Name: eval.Train, X: [][]float64{{1}, {2}, {3}, {4}}, Y: []float64{1, 2, 3, 4}}
		test := eval.Set{Name: eval.Test, X: [][]float64{{10}, {30}}, Y: []float64{10, 30}}
		models := []eval.Named{{Name: "Perfect", Model: echo{}}, {Name: "Mean", Model: constant(20)}}

		r, err := eval.Evaluate(models, train, test)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then there is one score per model and partition", func() {
			convey.So(r.Scores, convey.ShouldHaveLength, 4)
			convey.So(r.Models(), convey.ShouldResemble, []string{"Perfect", "Mean"})
		})

		convey.Convey("Then the perfect model scores 0, 0, 1", func() {
			s, ok := r.Lookup("Perfect", eval.Test)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(s.MAE, convey.ShouldEqual, 0)
			convey.So(s.MSE, convey.ShouldEqual, 0)
			convey.So(s.R2, convey.ShouldEqual, 1)
		})

		convey.Convey("Then the mean model has R² 0 on test and MSE is divided by 1000", func() {
			s, _ := r.Lookup("Mean", eval.Test)
			convey.So(s.R2, convey.ShouldEqual, 0)
			convey.So(s.MAE, convey.ShouldEqual, 10)
			convey.So(s.MSE, convey.ShouldEqual, 100/eval.MSEScale)
		})

		convey.Convey("Then ordering and best-model helpers agree", func() {
			convey.So(r.ByTestMSE(), convey.ShouldResemble, []string{"Mean", "Perfect"})
			best, ok := r.Best()
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(best, convey.ShouldEqual, "Perfect")
		})

		convey.Convey("Then the sets are not modified", func() {
			convey.So(test.X[0][0], convey.ShouldEqual, 10)
		})
	})

	convey.Convey("Given an unfitted model", t, func() {
		_, err := eval.Evaluate([]eval.Named{{Name: "LR", Model: model.NewLinearRegression()}},
			eval.Set{Name: eval.Test, X: [][]float64{{1}}, Y: []float64{1}})
		convey.So(errors.Is(err, model.ErrNotFitted), convey.ShouldBeTrue)
	})

	convey.Convey("Given no models", t, func() {
		_, err := eval.Evaluate(nil)
		convey.So(errors.Is(err, eval.ErrNoModels), convey.ShouldBeTrue)
	})
}

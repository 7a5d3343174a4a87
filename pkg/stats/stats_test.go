package stats_test

import (
	"errors"
	"math"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"watchtime/pkg/stats"
)

func TestDescriptive(t *testing.T) {
	convey.Convey("Given a small sample", t, func() {
		x := []float64{1, 2, 3, 4}

		convey.So(stats.Mean(x), convey.ShouldEqual, 2.5)
		convey.So(stats.Variance(x), convey.ShouldEqual, 1.25)
		convey.So(stats.SampleStd(x), convey.ShouldAlmostEqual, math.Sqrt(5.0/3.0), 1e-12)
		convey.So(stats.Median(x), convey.ShouldEqual, 2.5)
		convey.So(stats.Percentile(x, 25), convey.ShouldEqual, 1.75)
		convey.So(stats.Percentile(x, 100), convey.ShouldEqual, 4)
		lo, hi := stats.MinMax(x)
		convey.So(lo, convey.ShouldEqual, 1)
		convey.So(hi, convey.ShouldEqual, 4)
	})

	convey.Convey("Given correlated series", t, func() {
		convey.So(stats.Correlation([]float64{1, 2, 3}, []float64{2, 4, 6}), convey.ShouldAlmostEqual, 1, 1e-12)
		convey.So(stats.Correlation([]float64{1, 2, 3}, []float64{3, 2, 1}), convey.ShouldAlmostEqual, -1, 1e-12)
		convey.So(math.IsNaN(stats.Correlation([]float64{1, 1}, []float64{1, 2})), convey.ShouldBeTrue)
	})

	convey.Convey("Given a long-tailed sample", t, func() {
		x := []float64{1, 2, 3, 4, 100}
		clipped := stats.ClipPercentiles(x, 0, 75)
		convey.So(clipped, convey.ShouldResemble, []float64{1, 2, 3, 4, 4})
		convey.So(x[4], convey.ShouldEqual, 100)
		convey.So(stats.ClipPercentiles(nil, 0, 99), convey.ShouldBeNil)
	})

	convey.Convey("Given values with gaps", t, func() {
		convey.So(stats.Finite([]float64{1, math.NaN(), math.Inf(1), 2}), convey.ShouldResemble, []float64{1, 2})
	})
}

func TestStandardScaler(t *testing.T) {
	convey.Convey("Given a training partition", t, func() {
		train := [][]float64{
			{10, 1, 7},
			{20, 3, 7},
			{30, 5, 7},
		}
		scaler := stats.NewStandardScaler(0, 1)

		tr, err := scaler.Fit(train)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then only the configured columns are scaled", func() {
			out := tr.Apply(train)
			convey.So(out[1][0], convey.ShouldAlmostEqual, 0, 1e-12)
			convey.So(out[1][1], convey.ShouldAlmostEqual, 0, 1e-12)
			convey.So(out[0][2], convey.ShouldEqual, 7)
			convey.So(stats.Mean([]float64{out[0][0], out[1][0], out[2][0]}), convey.ShouldAlmostEqual, 0, 1e-12)
			convey.So(stats.Std([]float64{out[0][0], out[1][0], out[2][0]}), convey.ShouldAlmostEqual, 1, 1e-12)
		})

		convey.Convey("Then test rows use the training statistics", func() {
			test := [][]float64{{40, 7, 0}}
			out := tr.Apply(test)
			convey.So(out[0][0], convey.ShouldAlmostEqual, (40-20)/tr.Std()[0], 1e-12)
			convey.So(test[0][0], convey.ShouldEqual, 40)
		})

		convey.Convey("Then applying the frozen transform is deterministic", func() {
			test := [][]float64{{25, 2, 0}}
			convey.So(tr.Apply(test), convey.ShouldResemble, tr.Apply(test))
		})

		convey.Convey("Then a constant column maps to zero", func() {
			tc, err := stats.NewStandardScaler(2).Fit(train)
			convey.So(err, convey.ShouldBeNil)
			convey.So(tc.Std()[0], convey.ShouldEqual, 1)
			convey.So(tc.Apply(train)[0][2], convey.ShouldEqual, 0)
		})
	})

	convey.Convey("Given invalid fitting data", t, func() {
		_, err := stats.NewStandardScaler(0).Fit(nil)
		convey.So(errors.Is(err, stats.ErrEmptyFit), convey.ShouldBeTrue)

		_, err = stats.NewStandardScaler(4).Fit([][]float64{{1}})
		convey.So(errors.Is(err, stats.ErrColumnRange), convey.ShouldBeTrue)

		_, err = stats.NewStandardScaler(0).Fit([][]float64{{math.NaN()}})
		convey.So(errors.Is(err, stats.ErrMissingValue), convey.ShouldBeTrue)

		var zero stats.Transform
		convey.So(zero.Fitted(), convey.ShouldBeFalse)
	})
}

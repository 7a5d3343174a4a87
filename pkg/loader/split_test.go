package loader_test

import (
	"errors"
	"sort"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"watchtime/pkg/loader"
)

func TestTrainTestSplit(t *testing.T) {
	convey.Convey("Given 101 rows and a 20% test ratio", t, func() {
		s, err := loader.TrainTestSplit(101, 0.2, 42)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then the test partition is rounded up", func() {
			convey.So(s.Test, convey.ShouldHaveLength, 21)
			convey.So(s.Train, convey.ShouldHaveLength, 80)
		})

		convey.Convey("Then partitions are disjoint and cover every row", func() {
			all := append(append([]int(nil), s.Train...), s.Test...)
			sort.Ints(all)
			for i, v := range all {
				convey.So(v, convey.ShouldEqual, i)
			}
		})

		convey.Convey("Then the same seed reproduces the same membership", func() {
			again, _ := loader.TrainTestSplit(101, 0.2, 42)
			convey.So(again, convey.ShouldResemble, s)
		})

		convey.Convey("Then a different seed changes the membership", func() {
			other, _ := loader.TrainTestSplit(101, 0.2, 7)
			convey.So(other.Test, convey.ShouldNotResemble, s.Test)
		})
	})

	convey.Convey("Given degenerate inputs", t, func() {
		_, err := loader.TrainTestSplit(1, 0.2, 1)
		convey.So(errors.Is(err, loader.ErrSplit), convey.ShouldBeTrue)
		_, err = loader.TrainTestSplit(10, 1.5, 1)
		convey.So(errors.Is(err, loader.ErrSplit), convey.ShouldBeTrue)
	})
}

package loader

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ErrSplit is returned when a split would leave a partition empty.
var ErrSplit = errors.New("loader: invalid train/test split")

// Split holds the row positions of each partition.
type Split struct {
	Train []int
	Test  []int
}

// TrainTestSplit shuffles n row positions with a PRNG seeded by seed and
// assigns the first ceil(n*testRatio) of them to the test partition. The
// same n, ratio and seed always produce the same partitions.
func TrainTestSplit(n int, testRatio float64, seed int64) (Split, error) {
	if testRatio <= 0 || testRatio >= 1 {
		return Split{}, fmt.Errorf("%w: test ratio %.3f not in (0, 1)", ErrSplit, testRatio)
	}
	nTest := int(math.Ceil(float64(n) * testRatio))
	if nTest < 1 || n-nTest < 1 {
		return Split{}, fmt.Errorf("%w: %d rows cannot fill both partitions", ErrSplit, n)
	}
	indices := rand.New(rand.NewSource(seed)).Perm(n)
	return Split{
		Test:  append([]int(nil), indices[:nTest]...),
		Train: append([]int(nil), indices[nTest:]...),
	}, nil
}

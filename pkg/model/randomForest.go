package model

import (
	"fmt"
	"math/rand"
	"sync"
)

// RandomForestRegressor averages bootstrapped regression trees.
type RandomForestRegressor struct {
	// Hyperparameters / options
	NEstimators     int
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	MaxFeatures     int
	Bootstrap       bool
	RandomState     int64

	// Internal state
	Trees []*DecisionTreeRegressor
}

// RandomForestOption functional config for RandomForestRegressor
type RandomForestOption func(*RandomForestRegressor)

func WithNEstimators(n int) RandomForestOption {
	return func(rf *RandomForestRegressor) { rf.NEstimators = n }
}
func WithBootstrap(b bool) RandomForestOption {
	return func(rf *RandomForestRegressor) { rf.Bootstrap = b }
}
func WithSeed(seed int64) RandomForestOption {
	return func(rf *RandomForestRegressor) { rf.RandomState = seed }
}

// WithTreeShape sets the growth limits shared by every tree.
func WithTreeShape(maxDepth, minSamplesSplit, minSamplesLeaf, maxFeatures int) RandomForestOption {
	return func(rf *RandomForestRegressor) {
		rf.MaxDepth = maxDepth
		rf.MinSamplesSplit = minSamplesSplit
		rf.MinSamplesLeaf = minSamplesLeaf
		rf.MaxFeatures = maxFeatures
	}
}

// NewRandomForestRegressor initializes the forest with the usual defaults:
// 100 fully grown trees on bootstrap samples, every feature considered at
// each split.
func NewRandomForestRegressor(opts ...RandomForestOption) *RandomForestRegressor {
	rf := &RandomForestRegressor{
		NEstimators:     100,
		MaxDepth:        0,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		MaxFeatures:     0,
		Bootstrap:       true,
		RandomState:     0,
	}
	for _, o := range opts {
		o(rf)
	}
	return rf
}

// Fit trains the forest. Trees are grown concurrently; tree i draws its
// bootstrap sample and feature subsets from a source seeded with
// RandomState+i, so the fitted forest is independent of scheduling.
func (rf *RandomForestRegressor) Fit(X [][]float64, y []float64) error {
	n, _, err := checkXY(X, y)
	if err != nil {
		return fmt.Errorf("randomforest: %w", err)
	}
	if rf.NEstimators < 1 {
		return fmt.Errorf("randomforest: n_estimators must be positive, got %d", rf.NEstimators)
	}

	trees := make([]*DecisionTreeRegressor, rf.NEstimators)
	var wg sync.WaitGroup
	errCh := make(chan error, rf.NEstimators)

	for i := 0; i < rf.NEstimators; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			seed := rf.RandomState + int64(idx)
			treeRand := rand.New(rand.NewSource(seed))

			// Bootstrap sampling: an index slice, not a copy of the data.
			sampleIndices := make([]int, n)
			for j := 0; j < n; j++ {
				if rf.Bootstrap {
					sampleIndices[j] = treeRand.Intn(n)
				} else {
					sampleIndices[j] = j
				}
			}

			tree := NewDecisionTreeRegressor(
				WithMaxDepth(rf.MaxDepth),
				WithMinSamplesSplit(rf.MinSamplesSplit),
				WithMinSamplesLeaf(rf.MinSamplesLeaf),
				WithMaxFeatures(rf.MaxFeatures),
				WithRandomState(seed),
			)
			if err := tree.fitIndices(X, y, sampleIndices); err != nil {
				errCh <- err
				return
			}
			trees[idx] = tree
		}(i)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return fmt.Errorf("randomforest: %w", err)
		}
	}
	rf.Trees = trees
	return nil
}

// Predict returns the mean prediction of all trees.
func (rf *RandomForestRegressor) Predict(X [][]float64) ([]float64, error) {
	if len(rf.Trees) == 0 {
		return nil, ErrNotFitted
	}
	if err := checkWidth(X, rf.Trees[0].nFeatures); err != nil {
		return nil, err
	}

	// Fan out one goroutine per tree; predictions are kept by tree index
	// and summed in order so the average is bit-for-bit reproducible.
	allPreds := make([][]float64, len(rf.Trees))
	var wg sync.WaitGroup
	for k, tree := range rf.Trees {
		wg.Add(1)
		go func(k int, t *DecisionTreeRegressor) {
			defer wg.Done()
			out := make([]float64, len(X))
			for i := range X {
				out[i] = t.predictSingle(X[i])
			}
			allPreds[k] = out
		}(k, tree)
	}
	wg.Wait()

	final := make([]float64, len(X))
	for _, preds := range allPreds {
		for i, v := range preds {
			final[i] += v
		}
	}
	for i := range final {
		final[i] /= float64(len(rf.Trees))
	}
	return final, nil
}

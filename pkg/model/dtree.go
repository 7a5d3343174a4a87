package model

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
)

// ---------------------------
// Types & options
// ---------------------------

// DecisionTreeRegressor is a CART regression tree minimising squared error.
type DecisionTreeRegressor struct {
	// Hyperparameters / options
	MaxDepth        int   // maximum depth (root depth = 0). 0 => no limit
	MinSamplesSplit int   // minimum samples to attempt a split
	MinSamplesLeaf  int   // minimum samples required in each leaf
	MaxFeatures     int   // 0 => use all features, >0 => number of features sampled per split
	RandomState     int64 // seed for feature subsampling

	// internals
	root      *dtNode
	nFeatures int
}

// dtNode holds a node in the tree.
type dtNode struct {
	isLeaf    bool
	feature   int
	threshold float64 // x <= threshold => left
	left      *dtNode
	right     *dtNode

	n     int
	value float64 // mean target of the samples that reached the node
}

// Option functional config
type Option func(*DecisionTreeRegressor)

func WithMaxDepth(d int) Option { return func(t *DecisionTreeRegressor) { t.MaxDepth = d } }
func WithMinSamplesSplit(n int) Option {
	return func(t *DecisionTreeRegressor) { t.MinSamplesSplit = n }
}
func WithMinSamplesLeaf(n int) Option {
	return func(t *DecisionTreeRegressor) { t.MinSamplesLeaf = n }
}
func WithMaxFeatures(k int) Option { return func(t *DecisionTreeRegressor) { t.MaxFeatures = k } }
func WithRandomState(seed int64) Option {
	return func(t *DecisionTreeRegressor) { t.RandomState = seed }
}

// NewDecisionTreeRegressor returns a fully grown tree by default.
func NewDecisionTreeRegressor(opts ...Option) *DecisionTreeRegressor {
	d := &DecisionTreeRegressor{
		MaxDepth:        0,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		MaxFeatures:     0,
		RandomState:     0,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// parallelSplitMin is the node size from which features are searched
// concurrently.
const parallelSplitMin = 4096

// impurityTol guards against splitting on floating-point noise.
const impurityTol = 1e-12

// ---------------------------
// Public API
// ---------------------------

// Fit trains the tree on every row of X.
func (t *DecisionTreeRegressor) Fit(X [][]float64, y []float64) error {
	n, _, err := checkXY(X, y)
	if err != nil {
		return fmt.Errorf("dtree: %w", err)
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return t.fitIndices(X, y, idx)
}

// FitIndices trains the tree on the rows listed in idx. Repeated positions
// count once per occurrence, which is how bootstrap samples are passed in
// without copying X.
func (t *DecisionTreeRegressor) FitIndices(X [][]float64, y []float64, idx []int) error {
	if _, _, err := checkXY(X, y); err != nil {
		return fmt.Errorf("dtree: %w", err)
	}
	if len(idx) == 0 {
		return fmt.Errorf("dtree: %w", ErrEmptyInput)
	}
	for _, i := range idx {
		if i < 0 || i >= len(X) {
			return fmt.Errorf("dtree: %w: sample index %d", ErrDimensionMismatch, i)
		}
	}
	return t.fitIndices(X, y, append([]int(nil), idx...))
}

func (t *DecisionTreeRegressor) fitIndices(X [][]float64, y []float64, idx []int) error {
	t.nFeatures = len(X[0])
	rnd := rand.New(rand.NewSource(t.RandomState))
	t.root = t.buildNode(X, y, idx, 0, rnd)
	return nil
}

// Predict returns the leaf mean reached by each row.
func (t *DecisionTreeRegressor) Predict(X [][]float64) ([]float64, error) {
	if t.root == nil {
		return nil, ErrNotFitted
	}
	if err := checkWidth(X, t.nFeatures); err != nil {
		return nil, err
	}
	out := make([]float64, len(X))
	for i := range X {
		out[i] = t.predictSingle(X[i])
	}
	return out, nil
}

// Depth returns the depth of the fitted tree.
func (t *DecisionTreeRegressor) Depth() int { return depth(t.root) }

// Leaves returns the number of leaves of the fitted tree.
func (t *DecisionTreeRegressor) Leaves() int { return leaves(t.root) }

// ---------------------------
// Internal builders & helpers
// ---------------------------

// splitResult is the best split found for a single feature.
type splitResult struct {
	gain      float64
	feature   int
	threshold float64
	pos       int // number of sorted samples going left
	order     []int
}

// pair is a feature value and the sample position it came from.
type pair struct {
	v float64
	i int
}

func (t *DecisionTreeRegressor) buildNode(X [][]float64, y []float64, idx []int, depth int, rnd *rand.Rand) *dtNode {
	sum, sumSq := 0.0, 0.0
	for _, i := range idx {
		sum += y[i]
		sumSq += y[i] * y[i]
	}
	n := float64(len(idx))
	node := &dtNode{n: len(idx), value: sum / n, isLeaf: true}
	parentSSE := sumSq - sum*sum/n

	if parentSSE <= impurityTol ||
		len(idx) < t.MinSamplesSplit ||
		len(idx) < 2*max(t.MinSamplesLeaf, 1) ||
		(t.MaxDepth > 0 && depth >= t.MaxDepth) {
		return node
	}

	// determine features to try
	p := t.nFeatures
	featIndices := make([]int, p)
	for j := 0; j < p; j++ {
		featIndices[j] = j
	}
	if t.MaxFeatures > 0 && t.MaxFeatures < p {
		for i := 0; i < p; i++ {
			j := i + rnd.Intn(p-i)
			featIndices[i], featIndices[j] = featIndices[j], featIndices[i]
		}
		featIndices = featIndices[:t.MaxFeatures]
	}

	// Results are stored by position so the winner does not depend on
	// goroutine completion order.
	results := make([]splitResult, len(featIndices))
	if len(idx) >= parallelSplitMin {
		var wg sync.WaitGroup
		for k, f := range featIndices {
			wg.Add(1)
			go func(k, f int) {
				defer wg.Done()
				results[k] = t.bestSplitForFeature(X, y, idx, f, sum, sumSq)
			}(k, f)
		}
		wg.Wait()
	} else {
		for k, f := range featIndices {
			results[k] = t.bestSplitForFeature(X, y, idx, f, sum, sumSq)
		}
	}

	best := splitResult{feature: -1}
	for _, r := range results {
		if r.feature >= 0 && r.gain > best.gain {
			best = r
		}
	}
	if best.feature < 0 || best.gain <= impurityTol*max(1, parentSSE) {
		return node
	}

	leftIdx := append([]int(nil), best.order[:best.pos]...)
	rightIdx := append([]int(nil), best.order[best.pos:]...)

	node.isLeaf = false
	node.feature = best.feature
	node.threshold = best.threshold
	node.left = t.buildNode(X, y, leftIdx, depth+1, rnd)
	node.right = t.buildNode(X, y, rightIdx, depth+1, rnd)
	return node
}

// bestSplitForFeature sorts the node samples by feature f and scans every
// boundary between distinct values, scoring each with prefix sums.
func (t *DecisionTreeRegressor) bestSplitForFeature(X [][]float64, y []float64, idx []int, f int, sum, sumSq float64) splitResult {
	result := splitResult{feature: -1}

	valid := make([]pair, len(idx))
	for k, i := range idx {
		valid[k] = pair{X[i][f], i}
	}
	sort.SliceStable(valid, func(a, b int) bool { return valid[a].v < valid[b].v })
	if valid[0].v == valid[len(valid)-1].v {
		return result
	}

	minLeaf := max(t.MinSamplesLeaf, 1)
	n := len(valid)
	parentSSE := sumSq - sum*sum/float64(n)
	leftSum, leftSq := 0.0, 0.0
	for s := 1; s < n; s++ {
		yv := y[valid[s-1].i]
		leftSum += yv
		leftSq += yv * yv
		if valid[s].v == valid[s-1].v {
			continue
		}
		if s < minLeaf || n-s < minLeaf {
			continue
		}
		nl, nr := float64(s), float64(n-s)
		rightSum, rightSq := sum-leftSum, sumSq-leftSq
		childSSE := (leftSq - leftSum*leftSum/nl) + (rightSq - rightSum*rightSum/nr)
		gain := parentSSE - childSSE
		if gain > result.gain {
			result.gain = gain
			result.feature = f
			result.threshold = (valid[s-1].v + valid[s].v) / 2.0
			if result.threshold >= valid[s].v {
				// adjacent floats: the midpoint rounded up
				result.threshold = valid[s-1].v
			}
			result.pos = s
		}
	}
	if result.feature >= 0 {
		result.order = indicesFromPairs(valid)
	}
	return result
}

func indicesFromPairs(pairs []pair) []int {
	out := make([]int, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p.i)
	}
	return out
}

// ---------------------------
// Prediction helper
// ---------------------------

func (t *DecisionTreeRegressor) predictSingle(x []float64) float64 {
	node := t.root
	for !node.isLeaf {
		if x[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.value
}

func depth(n *dtNode) int {
	if n == nil || n.isLeaf {
		return 0
	}
	return 1 + max(depth(n.left), depth(n.right))
}

func leaves(n *dtNode) int {
	if n == nil {
		return 0
	}
	if n.isLeaf {
		return 1
	}
	return leaves(n.left) + leaves(n.right)
}

package tree

import (
	"github.com/YuminosukeSato/boostviz/pkg/errors"
	"github.com/YuminosukeSato/boostviz/stats"
)

// Build fits a tree of at most maxDepth split levels to residuals over the
// feature values X, and returns it together with the tree's prediction for
// every training sample.
//
// Each internal node splits at the element at position floor(n/2) of its
// subset's X values sorted ascending. A node becomes a leaf when it reaches
// maxDepth, holds fewer than two samples, or when the split would leave one
// side empty (all X in the subset equal to the threshold).
func Build(X, residuals []float64, maxDepth, id int) (*Tree, []float64, error) {
	if len(X) != len(residuals) {
		return nil, nil, errors.NewDimensionError("tree.Build", len(X), len(residuals), 0)
	}
	if maxDepth <= 0 {
		return nil, nil, errors.NewValidationError("max_depth", "must be positive", maxDepth)
	}
	if len(X) == 0 {
		return nil, nil, errors.NewValueError("tree.Build", "cannot build a tree on an empty sample set")
	}

	b := &builder{x: X, residuals: residuals, maxDepth: maxDepth}
	indices := make([]int, len(X))
	for i := range indices {
		indices[i] = i
	}

	t := &Tree{ID: id, MaxDepth: maxDepth, Root: b.build(indices, 0)}
	return t, t.PredictAll(X), nil
}

type builder struct {
	x         []float64
	residuals []float64
	maxDepth  int

	// scratch buffer reused for the per-node sorts
	values []float64
}

func (b *builder) build(indices []int, depth int) Node {
	if depth >= b.maxDepth || len(indices) < 2 {
		return b.leaf(indices)
	}

	threshold := b.splitValue(indices)

	var left, right []int
	for _, i := range indices {
		if b.x[i] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return b.leaf(indices)
	}

	return &Split{
		Threshold: threshold,
		Samples:   len(indices),
		Left:      b.build(left, depth+1),
		Right:     b.build(right, depth+1),
	}
}

func (b *builder) leaf(indices []int) *Leaf {
	values := b.gather(indices, b.residuals)
	return &Leaf{Value: stats.Mean(values), Samples: len(indices)}
}

func (b *builder) splitValue(indices []int) float64 {
	return stats.MiddleElement(b.gather(indices, b.x))
}

func (b *builder) gather(indices []int, src []float64) []float64 {
	b.values = b.values[:0]
	for _, i := range indices {
		b.values = append(b.values, src[i])
	}
	return b.values
}

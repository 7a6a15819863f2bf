// Package tree builds the single-feature regression trees fitted in each
// boosting round.
//
// A tree partitions a 1-D feature array by repeated threshold splits at the
// subset's middle element. Nodes are either a *Leaf holding the mean residual
// of the samples routed to it, or a *Split holding a threshold and two owned
// children. A value equal to a threshold always goes left.
package tree

// Node is a tree node. It is implemented only by *Leaf and *Split.
type Node interface {
	// SampleCount returns the number of training samples routed to the node.
	SampleCount() int
	isNode()
}

// Leaf is a terminal node predicting a constant residual.
type Leaf struct {
	Value   float64 // mean residual of the samples at this leaf
	Samples int     // number of samples at this leaf
}

// SampleCount implements Node.
func (l *Leaf) SampleCount() int { return l.Samples }

func (*Leaf) isNode() {}

// Split routes x to Left when x <= Threshold and to Right otherwise.
type Split struct {
	Threshold float64
	Samples   int // always Left.SampleCount() + Right.SampleCount()
	Left      Node
	Right     Node
}

// SampleCount implements Node.
func (s *Split) SampleCount() int { return s.Samples }

func (*Split) isNode() {}

// Tree is one fitted regression tree of the ensemble.
type Tree struct {
	ID       int  // boosting round that produced the tree
	MaxDepth int  // depth limit the tree was built with
	Root     Node // never nil for a built tree
}

// Predict returns the tree's output for a single feature value.
func (t *Tree) Predict(x float64) float64 {
	node := t.Root
	for {
		switch n := node.(type) {
		case *Leaf:
			return n.Value
		case *Split:
			if x <= n.Threshold {
				node = n.Left
			} else {
				node = n.Right
			}
		default:
			return 0
		}
	}
}

// PredictAll returns Predict for every value of xs.
func (t *Tree) PredictAll(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = t.Predict(x)
	}
	return out
}

// Depth returns the number of levels of the tree. A tree consisting of a
// single leaf has depth 1.
func (t *Tree) Depth() int {
	depth := 0
	Walk(t.Root, func(_ Node, d int) bool {
		if d+1 > depth {
			depth = d + 1
		}
		return true
	})
	return depth
}

// Leaves returns the leaves of the tree from left to right.
func (t *Tree) Leaves() []*Leaf {
	var leaves []*Leaf
	Walk(t.Root, func(n Node, _ int) bool {
		if leaf, ok := n.(*Leaf); ok {
			leaves = append(leaves, leaf)
		}
		return true
	})
	return leaves
}

// NumNodes returns the total number of leaves and splits.
func (t *Tree) NumNodes() int {
	count := 0
	Walk(t.Root, func(Node, int) bool {
		count++
		return true
	})
	return count
}

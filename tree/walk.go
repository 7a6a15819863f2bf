package tree

import "strconv"

// Walk visits n and its descendants in pre-order, left before right. depth is
// 0 for n itself. Returning false from fn skips the children of the visited
// node.
func Walk(n Node, fn func(n Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	if s, ok := n.(*Split); ok {
		walk(s.Left, depth+1, fn)
		walk(s.Right, depth+1, fn)
	}
}

// Label returns the display text of a node: "X ≤ 1.23" for a split and the
// value with two decimals for a leaf.
func Label(n Node) string {
	switch v := n.(type) {
	case *Split:
		return "X ≤ " + strconv.FormatFloat(v.Threshold, 'f', 2, 64)
	case *Leaf:
		return strconv.FormatFloat(v.Value, 'f', 2, 64)
	default:
		return ""
	}
}

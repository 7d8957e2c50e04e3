package octree

import "github.com/vellumlabs/morton-octree/morton"

type kind uint8

const (
	kindNone kind = iota
	kindLeaf
	kindNode
)

// node is the pointer octree's tagged variant: exactly one of None
// (unoccupied), Leaf (payload, morton) or Node (8 owned children).
// There are no back-pointers; ownership is strictly tree-shaped.
type node[T any, M morton.Key[M]] struct {
	kind     kind
	payload  T
	morton   M
	children *[8]*node[T, M]
}

func newNone[T any, M morton.Key[M]]() *node[T, M] {
	return &node[T, M]{kind: kindNone}
}

func newEmptyInternal[T any, M morton.Key[M]]() *node[T, M] {
	var kids [8]*node[T, M]
	for i := range kids {
		kids[i] = newNone[T, M]()
	}
	return &node[T, M]{kind: kindNode, children: &kids}
}

// firstLeaf returns the first leaf found in z-order under n, used by
// IterExploreSimple when explore stops descent short of a real leaf.
func firstLeaf[T any, M morton.Key[M]](n *node[T, M]) (*node[T, M], bool) {
	switch n.kind {
	case kindLeaf:
		return n, true
	case kindNode:
		for _, c := range n.children {
			if leaf, ok := firstLeaf(c); ok {
				return leaf, true
			}
		}
	}
	return nil, false
}

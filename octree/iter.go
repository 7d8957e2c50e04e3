package octree

import (
	"iter"

	"github.com/gammazero/deque"

	"github.com/vellumlabs/morton-octree/morton"
)

type iterFrame[T any, M morton.Key[M]] struct {
	n *node[T, M]
}

// Iter yields every (Morton, payload) pair in depth-first, child-index
// order, walking an explicit stack rather than recursing — grounded
// on the teacher's deque-based Trie.Leaves/Paths traversal, which
// avoids recursion-depth concerns the same way.
func (t *PointerOctree[T, M]) Iter() iter.Seq2[M, T] {
	return func(yield func(M, T) bool) {
		var stack deque.Deque
		stack.PushBack(iterFrame[T, M]{n: t.root})
		for stack.Len() > 0 {
			f := stack.PopBack().(iterFrame[T, M])
			switch f.n.kind {
			case kindLeaf:
				if !yield(f.n.morton, f.n.payload) {
					return
				}
			case kindNode:
				for i := 7; i >= 0; i-- {
					stack.PushBack(iterFrame[T, M]{n: f.n.children[i]})
				}
			}
		}
	}
}

// sampleBranch descends a single randomly-chosen branch at every
// level, starting from a uniform digit in [0,8) and advancing
// circularly past None children, until it reaches a Leaf or an empty
// slot. This is the source's `sample`: it never probes the same index
// twice (the advance stops after at most 8 probes; a Node whose
// children are all None, which Remove can leave behind, ends the
// descent at an empty slot) and is biased toward children that follow
// an empty sibling — a documented trade-off, not a bug.
func sampleBranch[T any, M morton.Key[M]](n *node[T, M], rng RandomSource[M]) (*node[T, M], bool) {
	for n.kind == kindNode {
		choice := int(rng.Digit()) % 8
		for i := 0; i < 8 && n.children[choice].kind == kindNone; i++ {
			choice = (choice + 1) % 8
		}
		n = n.children[choice]
	}
	if n.kind == kindLeaf {
		return n, true
	}
	return nil, false
}

type randFrame[T any, M morton.Key[M]] struct {
	n     *node[T, M]
	level int
}

// IterRand yields at most 8^depth leaves: it descends fully, in
// child-index order, down to level depth, then samples exactly one
// leaf per bucket reached at that cutoff via sampleBranch.
func (t *PointerOctree[T, M]) IterRand(depth int, rng RandomSource[M]) iter.Seq2[M, T] {
	return func(yield func(M, T) bool) {
		var stack deque.Deque
		stack.PushBack(randFrame[T, M]{n: t.root, level: 0})
		for stack.Len() > 0 {
			f := stack.PopBack().(randFrame[T, M])
			switch f.n.kind {
			case kindLeaf:
				if !yield(f.n.morton, f.n.payload) {
					return
				}
			case kindNode:
				if f.level < depth {
					for i := 7; i >= 0; i-- {
						stack.PushBack(randFrame[T, M]{n: f.n.children[i], level: f.level + 1})
					}
					continue
				}
				if leaf, ok := sampleBranch(f.n, rng); ok {
					if !yield(leaf.morton, leaf.payload) {
						return
					}
				}
			}
		}
	}
}

type exploreFrame[T any, M morton.Key[M]] struct {
	n *node[T, M]
	r morton.Region[M]
}

// IterExploreSimple yields (region, Found{morton, payload}): at each
// node, if explore(region) is true it descends; otherwise it yields
// the first leaf found in z-order under that node. At a leaf it
// always yields that leaf.
func (t *PointerOctree[T, M]) IterExploreSimple(explore func(morton.Region[M]) bool) iter.Seq2[morton.Region[M], Found[M, T]] {
	return func(yield func(morton.Region[M], Found[M, T]) bool) {
		var stack deque.Deque
		stack.PushBack(exploreFrame[T, M]{n: t.root, r: morton.BaseRegion[M]()})
		for stack.Len() > 0 {
			f := stack.PopBack().(exploreFrame[T, M])
			switch f.n.kind {
			case kindLeaf:
				if !yield(f.r, Found[M, T]{Morton: f.n.morton, Payload: f.n.payload}) {
					return
				}
			case kindNode:
				if explore(f.r) {
					for i := 7; i >= 0; i-- {
						stack.PushBack(exploreFrame[T, M]{n: f.n.children[i], r: f.r.Enter(uint8(i))})
					}
					continue
				}
				if leaf, ok := firstLeaf(f.n); ok {
					if !yield(f.r, Found[M, T]{Morton: leaf.morton, Payload: leaf.payload}) {
						return
					}
				}
			}
		}
	}
}

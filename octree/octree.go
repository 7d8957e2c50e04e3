package octree

import (
	"iter"

	"github.com/rs/zerolog"

	"github.com/vellumlabs/morton-octree/morton"
)

// PointerOctree is the recursive 8-ary tagged tree over Morton keys
// (§4.D): a root node, exclusively owning its descendants, and a
// count of stored leaves.
type PointerOctree[T any, M morton.Key[M]] struct {
	root  *node[T, M]
	count int
	log   zerolog.Logger
}

// New returns an empty pointer octree.
func New[T any, M morton.Key[M]](options ...Option[T, M]) *PointerOctree[T, M] {
	cfg := defaultConfig[T, M]()
	for _, opt := range options {
		opt(&cfg)
	}
	return &PointerOctree[T, M]{
		root: newNone[T, M](),
		log:  cfg.logger,
	}
}

func (t *PointerOctree[T, M]) Len() int      { return t.count }
func (t *PointerOctree[T, M]) IsEmpty() bool { return t.count == 0 }

// descend walks from root following morton's digits while the current
// slot is a Node, stopping at the first Leaf or None slot.
func descend[T any, M morton.Key[M]](root *node[T, M], m M) (*node[T, M], int) {
	n := root
	level := 0
	dimBits := m.DimBits()
	for n.kind == kindNode && level < dimBits {
		n = n.children[m.GetLevel(level)]
		level++
	}
	return n, level
}

// Get returns the payload stored at morton, if any.
func (t *PointerOctree[T, M]) Get(m M) (T, bool) {
	n, _ := descend(t.root, m)
	if n.kind == kindLeaf && n.morton == m {
		return n.payload, true
	}
	var zero T
	return zero, false
}

// GetPtr returns a pointer to the payload stored at morton, letting a
// caller mutate it in place; it is this port's equivalent of the
// source's get_mut.
func (t *PointerOctree[T, M]) GetPtr(m M) (*T, bool) {
	n, _ := descend(t.root, m)
	if n.kind == kindLeaf && n.morton == m {
		return &n.payload, true
	}
	return nil, false
}

// Insert stores item at morton, overwriting any existing payload at
// that exact key and splitting a colliding leaf into a fresh Node
// otherwise.
func (t *PointerOctree[T, M]) Insert(m M, item T) {
	n, level := descend(t.root, m)
	switch n.kind {
	case kindNone:
		n.kind = kindLeaf
		n.payload = item
		n.morton = m
		t.count++
	case kindLeaf:
		if n.morton == m {
			n.payload = item
			t.log.Trace().Msg("pointer octree: overwrote existing leaf")
			return
		}
		t.split(n, level, m, item)
		t.count++
	case kindNode:
		panic("morton: insert descended past dim_bits without stopping at a leaf or empty slot")
	}
}

// split replaces a colliding leaf slot with a chain of fresh Nodes
// down to the first level at which the new and existing Morton keys
// diverge, placing both leaves at that level's two differing
// children.
func (t *PointerOctree[T, M]) split(n *node[T, M], level int, newMorton M, newItem T) {
	existingMorton := n.morton
	existingItem := n.payload
	dimBits := newMorton.DimBits()

	replacement := newEmptyInternal[T, M]()
	*n = *replacement

	cur := n
	for l := level; l < dimBits; l++ {
		a := newMorton.GetLevel(l)
		b := existingMorton.GetLevel(l)
		if a == b {
			child := newEmptyInternal[T, M]()
			cur.children[a] = child
			cur = child
			continue
		}
		cur.children[a] = &node[T, M]{kind: kindLeaf, payload: newItem, morton: newMorton}
		cur.children[b] = &node[T, M]{kind: kindLeaf, payload: existingItem, morton: existingMorton}
		return
	}
	panic("morton: distinct Morton keys did not diverge within dim_bits levels")
}

// Remove restores morton's slot to None and returns the payload that
// was there, if any. It does not coalesce now-empty Nodes back into
// None (§9, documented Non-goal: preserves observable lookup/iteration
// contents, not iteration performance).
func (t *PointerOctree[T, M]) Remove(m M) (T, bool) {
	n, _ := descend(t.root, m)
	if n.kind == kindLeaf && n.morton == m {
		payload := n.payload
		var zero T
		var zeroM M
		n.kind = kindNone
		n.payload = zero
		n.morton = zeroM
		t.count--
		t.log.Trace().Msg("pointer octree: removed leaf")
		return payload, true
	}
	var zero T
	return zero, false
}

// Extend inserts every pair produced by pairs, matching the source's
// Extend<(M, T)> impl.
func (t *PointerOctree[T, M]) Extend(pairs iter.Seq2[M, T]) {
	for m, item := range pairs {
		t.Insert(m, item)
	}
}

package linear

import "iter"

// Iter yields every (Morton, payload) pair. Unlike the pointer
// octree, this needs no explicit stack — leaves is already a flat
// map, so iteration is the map's own.
func (o *LinearOctree[T, M]) Iter() iter.Seq2[M, T] {
	return func(yield func(M, T) bool) {
		for w, v := range o.leaves {
			if !yield(w.Morton, v) {
				return
			}
		}
	}
}

// IterMut yields every (Morton, payload) pair via a mutation
// callback, for the same reason GetMut does: a Go map cannot hand out
// an addressable value.
func (o *LinearOctree[T, M]) IterMut(fn func(m M, payload *T) bool) {
	for w, v := range o.leaves {
		keep := fn(w.Morton, &v)
		o.leaves[w] = v
		if !keep {
			return
		}
	}
}

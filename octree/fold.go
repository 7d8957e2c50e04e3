package octree

import (
	"iter"
	"slices"

	"github.com/vellumlabs/morton-octree/fold"
	"github.com/vellumlabs/morton-octree/morton"
)

// CollectFold computes, for every reachable region, its Sum, and
// returns all of them keyed by region. Exactly one Gather is made per
// leaf and at most one Fold per internal node; None subtrees
// contribute nothing to the result.
//
// This is a free function rather than a method because Go forbids a
// method from introducing a type parameter (S) beyond those already
// bound on the receiver.
func CollectFold[T any, S any, M morton.Key[M]](t *PointerOctree[T, M], folder fold.Folder[T, S, M]) morton.RegionMap[S, M] {
	out := morton.NewRegionMap[S, M]()
	collectFoldNode(t.root, morton.BaseRegion[M](), folder, out)
	return out
}

func collectFoldNode[T any, S any, M morton.Key[M]](n *node[T, M], r morton.Region[M], folder fold.Folder[T, S, M], out morton.RegionMap[S, M]) (S, bool) {
	switch n.kind {
	case kindLeaf:
		sum := folder.Gather(n.morton, n.payload)
		out[r] = sum
		return sum, true
	case kindNode:
		var zero M
		if r.Level >= zero.DimBits() {
			panic("morton: internal node encountered past dim_bits; a leaf descended past the Morton range")
		}
		sums := make([]S, 0, 8)
		for i := 0; i < 8; i++ {
			child := n.children[i]
			if child.kind == kindNone {
				continue
			}
			s, ok := collectFoldNode(child, r.Enter(uint8(i)), folder, out)
			if ok {
				sums = append(sums, s)
			}
		}
		if len(sums) == 0 {
			var zero S
			return zero, false
		}
		sum := folder.Fold(slices.Values(sums))
		out[r] = sum
		return sum, true
	}
	var zero S
	return zero, false
}

// gatherLeaf computes Gather for a leaf, consulting leafCache first.
// An admission-policy cache is appropriate here specifically because
// the caller (foldRand) is already sampling leaves at random: an
// occasional miss just recomputes a Gather that was going to be a
// cheap, pure function call anyway, and costs nothing in correctness.
func gatherLeaf[T any, S any, M morton.Key[M]](n *node[T, M], folder fold.Folder[T, S, M], leafCache *morton.MortonCache[S, M]) S {
	if leafCache != nil {
		if sum, hit := leafCache.Get(n.morton); hit {
			return sum
		}
	}
	sum := folder.Gather(n.morton, n.payload)
	if leafCache != nil {
		leafCache.Set(n.morton, sum)
	}
	return sum
}

// foldRand descends up to remaining more levels, replacing an entire
// subtree with a single circularly-sampled leaf once that budget is
// exhausted, and folds the sampled results back up — the source's
// fold_rand. Each sampled leaf's Gather is memoised in leafCache,
// since fold_rand's own sampling is repeatable (the same Morton leaf
// may be the cheapest reachable description of more than one
// exhausted branch across separate calls).
func foldRand[T any, S any, M morton.Key[M]](n *node[T, M], r morton.Region[M], remaining int, folder fold.Folder[T, S, M], rng RandomSource[M], leafCache *morton.MortonCache[S, M]) (S, bool) {
	switch n.kind {
	case kindLeaf:
		return gatherLeaf(n, folder, leafCache), true
	case kindNode:
		if remaining <= 0 {
			leaf, ok := sampleBranch(n, rng)
			if !ok {
				var zero S
				return zero, false
			}
			return gatherLeaf(leaf, folder, leafCache), true
		}
		sums := make([]S, 0, 8)
		for i := 0; i < 8; i++ {
			child := n.children[i]
			if child.kind == kindNone {
				continue
			}
			s, ok := foldRand(child, r.Enter(uint8(i)), remaining-1, folder, rng, leafCache)
			if ok {
				sums = append(sums, s)
			}
		}
		if len(sums) == 0 {
			var zero S
			return zero, false
		}
		return folder.Fold(slices.Values(sums)), true
	}
	var zero S
	return zero, false
}

// IterFold streams (region, Sum) pairs for every region where explore
// returns false, or for a leaf. It is exactly IterFoldRandom called
// with depth = dim_bits and explore held at the caller's predicate:
// at that depth every descent bottoms out at a real Leaf or None
// before any sampling decision could be reached, so the random path
// is provably unreachable from IterFold — the same relationship the
// source expresses by having iter_fold call iter_fold_random.
func IterFold[T any, S any, M morton.Key[M]](
	t *PointerOctree[T, M],
	explore func(morton.Region[M]) bool,
	folder fold.Folder[T, S, M],
	cache *morton.RegionCache[S, M],
) iter.Seq2[morton.Region[M], S] {
	var zero M
	return IterFoldRandom(t, zero.DimBits(), explore, folder, nil, cache, nil)
}

// IterFoldRandom is like IterFold, but once explore returns false at
// a region short of dim_bits, the yielded Sum is computed by
// foldRand: it descends up to depth more levels, then samples a
// single leaf per exhausted branch, and folds upward. Intermediate
// Sums are checked against cache at every level of the recursion, not
// only at stop-nodes and leaves, and are added to cache as they are
// computed. A cache hit turns the hit region into a stop-node for
// that call: its cached Sum is yielded directly instead of
// recursing, so a repeat traversal over a warm cache surfaces fewer,
// coarser-grained pairs whose Sums still fold up to the same total,
// and explore is never re-invoked on a region found in cache.
// leafCache, if non-nil, additionally memoises foldRand's individual
// leaf Gathers (keyed by full Morton code rather than region); an
// admission-policy cache is appropriate there specifically because
// foldRand's leaf selection is already randomised.
func IterFoldRandom[T any, S any, M morton.Key[M]](
	t *PointerOctree[T, M],
	depth int,
	explore func(morton.Region[M]) bool,
	folder fold.Folder[T, S, M],
	rng RandomSource[M],
	cache *morton.RegionCache[S, M],
	leafCache *morton.MortonCache[S, M],
) iter.Seq2[morton.Region[M], S] {
	return func(yield func(morton.Region[M], S) bool) {
		var visit func(n *node[T, M], r morton.Region[M]) (sum S, ok bool, stop bool)
		visit = func(n *node[T, M], r morton.Region[M]) (S, bool, bool) {
			if cache != nil {
				if sum, hit := cache.Get(r); hit {
					if !yield(r, sum) {
						return sum, true, true
					}
					return sum, true, false
				}
			}
			switch n.kind {
			case kindLeaf:
				sum := folder.Gather(n.morton, n.payload)
				if cache != nil {
					cache.Add(r, sum)
				}
				if !yield(r, sum) {
					return sum, true, true
				}
				return sum, true, false
			case kindNode:
				if explore(r) {
					sums := make([]S, 0, 8)
					for i := 0; i < 8; i++ {
						child := n.children[i]
						if child.kind == kindNone {
							continue
						}
						s, ok, stop := visit(child, r.Enter(uint8(i)))
						if stop {
							return s, ok, true
						}
						if ok {
							sums = append(sums, s)
						}
					}
					if len(sums) == 0 {
						var zero S
						return zero, false, false
					}
					sum := folder.Fold(slices.Values(sums))
					if cache != nil {
						cache.Add(r, sum)
					}
					return sum, true, false
				}
				sum, ok := foldRand(n, r, depth, folder, rng, leafCache)
				if !ok {
					var zero S
					return zero, false, false
				}
				if cache != nil {
					cache.Add(r, sum)
				}
				if !yield(r, sum) {
					return sum, true, true
				}
				return sum, true, false
			}
			var zero S
			return zero, false, false
		}
		visit(t.root, morton.BaseRegion[M]())
	}
}

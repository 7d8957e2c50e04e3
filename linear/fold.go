package linear

import (
	"slices"

	"github.com/vellumlabs/morton-octree/fold"
	"github.com/vellumlabs/morton-octree/morton"
)

// CollectFold computes, for every reachable region, its Sum, and
// returns all of them keyed by region.
func CollectFold[T any, S any, M morton.Key[M]](o *LinearOctree[T, M], folder fold.Folder[T, S, M]) morton.RegionMap[S, M] {
	out := morton.NewRegionMap[S, M]()
	CollectFoldRegion(o, morton.BaseRegion[M](), folder, out)
	return out
}

// CollectFoldRegion is CollectFold's public region-at-a-time entry
// point (kept public, as in the source): it folds the subtree under
// region and records every computed Sum in out. Matches the source's
// three-way dispatch: a non-null internals entry is a leaf; an absent
// entry means "descend into all 8 children"; a present-but-null entry
// (including the root of an empty tree) means the subtree is empty and
// contributes nothing.
func CollectFoldRegion[T any, S any, M morton.Key[M]](
	o *LinearOctree[T, M],
	region morton.Region[M],
	folder fold.Folder[T, S, M],
	out morton.RegionMap[S, M],
) (S, bool) {
	m, present := o.internals[region]
	switch {
	case present && !m.IsNull():
		sum := folder.Gather(m, o.leaves[morton.Wrapper[M]{Morton: m}])
		out[region] = sum
		return sum, true
	case !present:
		sums := make([]S, 0, 8)
		for i := uint8(0); i < 8; i++ {
			s, ok := CollectFoldRegion(o, region.Enter(i), folder, out)
			if ok {
				sums = append(sums, s)
			}
		}
		sum := folder.Fold(slices.Values(sums))
		out[region] = sum
		return sum, true
	default:
		var zero S
		return zero, false
	}
}

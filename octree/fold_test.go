package octree_test

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vellumlabs/morton-octree/fold"
	"github.com/vellumlabs/morton-octree/morton"
	"github.com/vellumlabs/morton-octree/octree"
	"github.com/vellumlabs/morton-octree/testing/helpers"
)

// countingGatherFolder counts like fold.Counting but also tallies how many
// times Gather actually ran, so a test can tell a cache hit (no new
// Gather) apart from a miss.
type countingGatherFolder struct {
	gathers *int
}

func (f countingGatherFolder) Gather(_ morton.Key64, _ uint16) int {
	*f.gathers++
	return 1
}

func (f countingGatherFolder) Fold(children iter.Seq[int]) int {
	sum := 0
	for c := range children {
		sum += c
	}
	return sum
}

// explore is never re-invoked on a region whose Sum was found in
// cache (§4.D "Ordering, tie-breaks, edge cases").
func TestIterFoldCacheShortCircuitsExplore(t *testing.T) {
	tree := octree.New[uint16, morton.Key64]()
	rng := helpers.NewGenerator()
	keys, payloads := helpers.SampleRegisterWrites(rng, 32)
	for i, k := range keys {
		tree.Insert(k, payloads[i])
	}

	cache, err := morton.NewRegionCache[int, morton.Key64](256)
	require.NoError(t, err)

	exploreCalls := 0
	explore := func(morton.Region[morton.Key64]) bool {
		exploreCalls++
		return true
	}

	firstPairs, firstTotal := 0, 0
	for _, sum := range octree.IterFold[uint16, int, morton.Key64](tree, explore, fold.Counting[uint16, morton.Key64]{}, cache) {
		firstPairs++
		firstTotal += sum
	}
	firstExploreCalls := exploreCalls

	exploreCalls = 0
	secondPairs, secondTotal := 0, 0
	for _, sum := range octree.IterFold[uint16, int, morton.Key64](tree, explore, fold.Counting[uint16, morton.Key64]{}, cache) {
		secondPairs++
		secondTotal += sum
	}

	assert.Equal(t, firstTotal, secondTotal, "a warm cache must fold to the same total even at coarser granularity")
	assert.Less(t, secondPairs, firstPairs, "a fully-cached second pass collapses into fewer, coarser-grained pairs")
	assert.Less(t, exploreCalls, firstExploreCalls, "a fully-cached second pass must invoke explore fewer times than the first")
}

// foldRand's sampled leaves are memoised in a MortonCache keyed by
// full Morton code: replaying the same deterministic rng sequence
// over a warm leafCache must not re-invoke Gather for any leaf it
// already sampled once.
func TestIterFoldRandomLeafCacheAvoidsRegather(t *testing.T) {
	tree := octree.New[uint16, morton.Key64]()
	rng := helpers.NewGenerator()
	keys, payloads := helpers.SampleRegisterWrites(rng, 64)
	for i, k := range keys {
		tree.Insert(k, payloads[i])
	}

	leafCache, err := morton.NewMortonCache[int, morton.Key64](1024)
	require.NoError(t, err)

	const stopDepth = 2
	stopEarly := func(r morton.Region[morton.Key64]) bool { return r.Level < stopDepth }

	gathers := 0
	folder := countingGatherFolder{gathers: &gathers}

	for range octree.IterFoldRandom[uint16, int, morton.Key64](tree, 8, stopEarly, folder, helpers.NewGenerator(), nil, leafCache) {
	}
	firstGathers := gathers
	leafCache.Wait()

	gathers = 0
	for range octree.IterFoldRandom[uint16, int, morton.Key64](tree, 8, stopEarly, folder, helpers.NewGenerator(), nil, leafCache) {
	}

	require.Greater(t, firstGathers, 0)
	assert.Zero(t, gathers, "replaying the same deterministic rng sequence over a warm leafCache must hit on every sampled leaf")
}

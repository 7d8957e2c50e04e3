package octree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vellumlabs/morton-octree/morton"
	"github.com/vellumlabs/morton-octree/octree"
)

func TestIterExploreSimpleStopsAtRequestedDepth(t *testing.T) {
	tree := octree.New[string, morton.Key64]()
	tree.Insert(morton.Encode64(1, 2, 3), "a")
	tree.Insert(morton.Encode64(1, 2, 4), "b")
	tree.Insert(morton.Encode64(500, 500, 500), "c")

	const stopDepth = 1
	stopAtDepth := func(r morton.Region[morton.Key64]) bool { return r.Level < stopDepth }

	seen := make(map[morton.Region[morton.Key64]]morton.Key64)
	for r, found := range tree.IterExploreSimple(stopAtDepth) {
		seen[r] = found.Morton
	}

	require.NotEmpty(t, seen)
	for r, m := range seen {
		got, ok := tree.Get(m)
		require.True(t, ok)
		assert.NotEmpty(t, got)
		assert.LessOrEqual(t, r.Level, stopDepth)
	}
}

func TestIterExploreSimpleAlwaysExploreMatchesIter(t *testing.T) {
	tree := octree.New[string, morton.Key64]()
	tree.Insert(morton.Encode64(1, 2, 3), "a")
	tree.Insert(morton.Encode64(4, 5, 6), "b")
	tree.Insert(morton.Encode64(20, 20, 20), "c")

	alwaysExplore := func(morton.Region[morton.Key64]) bool { return true }

	want := make(map[morton.Key64]string)
	for m, v := range tree.Iter() {
		want[m] = v
	}

	got := make(map[morton.Key64]string)
	for _, found := range tree.IterExploreSimple(alwaysExplore) {
		got[found.Morton] = found.Payload
	}

	assert.Equal(t, want, got)
}

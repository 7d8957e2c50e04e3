package octree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vellumlabs/morton-octree/morton"
	"github.com/vellumlabs/morton-octree/octree"
	"github.com/vellumlabs/morton-octree/testing/helpers"
)

func TestIterRandYieldsAtMostOnePerBucket(t *testing.T) {
	tree := octree.New[uint16, morton.Key64]()
	rng := helpers.NewGenerator()
	keys, payloads := helpers.SampleRegisterWrites(rng, 64)
	for i, k := range keys {
		tree.Insert(k, payloads[i])
	}

	const depth = 2
	count := 0
	for m, v := range tree.IterRand(depth, rng) {
		got, ok := tree.Get(m)
		require.True(t, ok)
		assert.Equal(t, got, v)
		count++
	}
	assert.LessOrEqual(t, count, 1<<(3*depth))
}

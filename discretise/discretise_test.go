package discretise_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vellumlabs/morton-octree/discretise"
	"github.com/vellumlabs/morton-octree/morton"
	"github.com/vellumlabs/morton-octree/octree"
)

func TestLattice64FeedsOctreeInsert(t *testing.T) {
	var d discretise.Lattice64
	m, ok := d.Discretise(0, 0.25, 0.5, 0.75)
	require.True(t, ok)

	tree := octree.New[string, morton.Key64]()
	tree.Insert(m, "point")

	v, ok := tree.Get(m)
	require.True(t, ok)
	assert.Equal(t, "point", v)
}

func TestLattice64RejectsOutOfBounds(t *testing.T) {
	var d discretise.Lattice64
	_, ok := d.Discretise(0, 1.0, 0.5, 0.5)
	assert.False(t, ok)

	_, ok = d.Discretise(0, -0.1, 0.5, 0.5)
	assert.False(t, ok)
}

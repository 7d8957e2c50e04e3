package morton_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vellumlabs/morton-octree/morton"
)

func TestEncode64DecodeRoundTrip(t *testing.T) {
	cases := []struct{ x, y, z uint32 }{
		{0, 0, 0},
		{1, 2, 3},
		{4, 5, 6},
		{(1 << 21) - 1, (1 << 21) - 1, (1 << 21) - 1},
		{123456, 7, 999999},
	}
	for _, c := range cases {
		m := morton.Encode64(c.x, c.y, c.z)
		x, y, z := morton.Decode64(m)
		assert.Equal(t, c.x, x)
		assert.Equal(t, c.y, y)
		assert.Equal(t, c.z, z)
	}
}

// E1: encode (1,2,3) with 64-bit width -> 53; decode 53 -> (1,2,3).
func TestEncode64ScenarioE1(t *testing.T) {
	m := morton.Encode64(1, 2, 3)
	require.EqualValues(t, 53, m)

	x, y, z := morton.Decode64(53)
	assert.EqualValues(t, 1, x)
	assert.EqualValues(t, 2, y)
	assert.EqualValues(t, 3, z)
}

// E2: encode (1,2,3) with 128-bit width -> 53; decode 53 -> (1,2,3).
func TestEncode128ScenarioE2(t *testing.T) {
	m := morton.Encode128(1, 2, 3)
	require.True(t, m.Int.IsUint64())
	require.EqualValues(t, 53, m.Int.Uint64())

	x, y, z := morton.Decode128(m)
	assert.EqualValues(t, 1, x)
	assert.EqualValues(t, 2, y)
	assert.EqualValues(t, 3, z)
}

func TestEncode128DecodeRoundTrip(t *testing.T) {
	cases := []struct{ x, y, z uint64 }{
		{0, 0, 0},
		{1, 2, 3},
		{1 << 30, 1 << 20, 1 << 10},
		{(1 << 42) - 1, (1 << 42) - 1, (1 << 42) - 1},
	}
	for _, c := range cases {
		m := morton.Encode128(c.x, c.y, c.z)
		x, y, z := morton.Decode128(m)
		assert.Equal(t, c.x, x)
		assert.Equal(t, c.y, y)
		assert.Equal(t, c.z, z)
	}
}

func TestGetSetLevel64(t *testing.T) {
	m := morton.Encode64(1, 2, 3)
	for level := 0; level < morton.DimBits64; level++ {
		digit := m.GetLevel(level)
		assert.Less(t, digit, uint8(8))
	}

	set := m.SetLevel(0, 5)
	assert.EqualValues(t, 5, set.GetLevel(0))
}

func TestSetLevel64PanicsOutOfRange(t *testing.T) {
	var m morton.Key64
	assert.Panics(t, func() { m.SetLevel(morton.DimBits64, 0) })
}

func TestSetLevel128PanicsOutOfRange(t *testing.T) {
	var m morton.Key128
	assert.Panics(t, func() { m.SetLevel(morton.DimBits128, 0) })
}

func TestNullSentinel(t *testing.T) {
	assert.True(t, morton.NullKey64.IsNull())
	assert.False(t, morton.Key64(0).IsNull())

	assert.True(t, morton.NullKey128.IsNull())
	assert.False(t, morton.Key128{}.IsNull())
}

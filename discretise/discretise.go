// Package discretise defines the discretiser contract: the external
// collaborator (§6) that maps a point in a floating-point cube to an
// integer lattice coordinate consumed by morton.Encode64/Encode128.
// Its algorithm is explicitly out of scope (§1); only the interface
// shape and one reference implementation live here.
package discretise

import "github.com/vellumlabs/morton-octree/morton"

// Discretiser maps a point (x, y, z) in a bounded cube at the given
// tree level to a Morton code, or reports ok=false if the point falls
// outside that cube.
type Discretiser[M morton.Key[M]] interface {
	Discretise(level uint8, x, y, z float64) (m M, ok bool)
}

// Lattice64 is a reference discretiser for Key64: it quantises a
// point in [0,1)^3 onto the 21-bit-per-dimension integer lattice and
// encodes the result. The level parameter is accepted for interface
// conformance but does not change the quantisation — the full 21-bit
// resolution is always used, matching a fixed-resolution lattice
// rather than a level-scoped sub-cube.
type Lattice64 struct{}

func (Lattice64) Discretise(_ uint8, x, y, z float64) (morton.Key64, bool) {
	if x < 0 || x >= 1 || y < 0 || y >= 1 || z < 0 || z >= 1 {
		return 0, false
	}
	const scale = 1 << morton.DimBits64
	ix := uint32(x * scale)
	iy := uint32(y * scale)
	iz := uint32(z * scale)
	return morton.Encode64(ix, iy, iz), true
}

package octree

import "github.com/vellumlabs/morton-octree/morton"

// RandomSource is the external collaborator the source leaves
// unimplemented ("random number generation" is out of scope, §1):
// callers supply a source satisfying "produce a uniform digit in
// [0,8)" and "produce a uniform Morton-width integer", own its
// seeding, and are responsible for determinism if they need it.
type RandomSource[M morton.Key[M]] interface {
	Digit() uint8
	FullKey() M
}

// Found pairs a leaf's Morton code with its payload. IterExploreSimple
// yields one of these per region instead of a three-valued tuple,
// since a range-over-func sequence tops out at two yield values
// (iter.Seq2) — there is no three-valued counterpart in the standard
// library to borrow.
type Found[M morton.Key[M], T any] struct {
	Morton  M
	Payload T
}

package morton

import "github.com/holiman/uint256"

// CacheLocalityBits is the number of low bits preserved unchanged by
// Hash64/Hash128. The 8 children of any parent region differ only in
// these bits, so preserving them tends to land siblings in the same
// cache line of an open-addressed table. Larger values waste memory
// for negligible gain; smaller values lose sibling locality.
const CacheLocalityBits = 3

const (
	fnvOffset64 = 0xCBF29CE484222325
	fnvPrime64  = 0x100000001B3
)

func mixFNV(top, bottom uint64) uint64 {
	const bits = CacheLocalityBits
	h := (top ^ fnvOffset64) * fnvPrime64
	h &^= uint64(1)<<bits - 1
	return h | bottom
}

// Hash64 is the single-write-path Morton hash: it splits key into a
// low CacheLocalityBits-bit "bottom" and a shifted "top", mixes top
// through 64-bit FNV-1a, clears the low bits of the mix, and ORs the
// untouched bottom back in.
func Hash64(key uint64) uint64 {
	const bottomMask = uint64(1)<<CacheLocalityBits - 1
	bottom := key & bottomMask
	top := (key &^ bottomMask) >> CacheLocalityBits
	return mixFNV(top, bottom)
}

// Hash128 is Hash64's 128-bit-wide counterpart: the low
// CacheLocalityBits bits are preserved exactly as in Hash64, and top
// is the low 64 bits of key>>CacheLocalityBits before the same FNV
// mix is applied. The original write_u128 does its mix in u128
// arithmetic and only truncates to u64 at the very end; since
// multiplication, xor and and are all mod 2^64 on their low word,
// that is equivalent to mixing just shifted[0] — the upper limbs of a
// valid 128-bit key can never change the truncated result, so they
// are not folded in here.
func Hash128(key Key128) uint64 {
	const bottomMask = uint64(1)<<CacheLocalityBits - 1
	bottom := key.Int[0] & bottomMask

	var shifted uint256.Int
	shifted.Rsh(&key.Int, CacheLocalityBits)
	top := shifted[0]

	return mixFNV(top, bottom)
}

// Package morton implements the Morton (Z-order) code model: encoding
// and decoding of integer coordinates into a single key, level access
// into that key, the locality-preserving hasher, and the region and
// wrapper key types used to key hash tables by Morton code.
package morton

import (
	"github.com/holiman/uint256"
)

// Key is the self-referential constraint satisfied by every Morton
// key width this package supports. M is the concrete key type (Key64
// or Key128); octree and fold code is written once against this
// interface and instantiated for either width.
type Key[M any] interface {
	comparable

	// DimBits returns the number of bits carried per dimension
	// (BITS / 3): 21 for a 64-bit key, 42 for a 128-bit key.
	DimBits() int
	// GetLevel returns the 3-bit digit at level L, where L == 0 is
	// the most significant triplet.
	GetLevel(level int) uint8
	// SetLevel returns a copy of the key with the digit at level L
	// cleared and set to v. Panics if level >= DimBits().
	SetLevel(level int, v uint8) M
	// Null returns the reserved all-ones sentinel for this width.
	Null() M
	// IsNull reports whether the key is the reserved sentinel.
	IsNull() bool
	// Hash64 returns the locality-preserving hash used to key the
	// hash-table containers in this package.
	Hash64() uint64
}

// Key64 is a 64-bit Morton key: dim_bits = 21.
type Key64 uint64

// DimBits64 is the number of bits per dimension carried by Key64.
const DimBits64 = 21

const usedBits64 = uint64(1)<<(3*DimBits64) - 1

// NullKey64 is the reserved all-ones sentinel for Key64. It is
// distinguishable from any valid key because a valid key's unused top
// bit is always zero.
const NullKey64 Key64 = ^Key64(0)

// Encode64 interleaves the bits of x, y and z into a single Key64:
// bit 3k of the result is bit k of x, bit 3k+1 is bit k of y, bit
// 3k+2 is bit k of z, for k in [0, DimBits64).
func Encode64(x, y, z uint32) Key64 {
	var m uint64
	for k := 0; k < DimBits64; k++ {
		shift := uint(k)
		m |= uint64((x>>shift)&1) << uint(3*k)
		m |= uint64((y>>shift)&1) << uint(3*k+1)
		m |= uint64((z>>shift)&1) << uint(3*k+2)
	}
	return Key64(m)
}

// Decode64 is the exact inverse of Encode64 for keys with no unused
// bits set.
func Decode64(m Key64) (x, y, z uint32) {
	v := uint64(m) & usedBits64
	for k := 0; k < DimBits64; k++ {
		x |= uint32((v>>uint(3*k))&1) << uint(k)
		y |= uint32((v>>uint(3*k+1))&1) << uint(k)
		z |= uint32((v>>uint(3*k+2))&1) << uint(k)
	}
	return
}

func (k Key64) DimBits() int { return DimBits64 }

func (k Key64) GetLevel(level int) uint8 {
	shift := uint(3 * (DimBits64 - level - 1))
	return uint8((uint64(k) >> shift) & 0b111)
}

func (k Key64) SetLevel(level int, v uint8) Key64 {
	if level >= DimBits64 {
		panic("morton: set_level level out of range for Key64")
	}
	shift := uint(3 * (DimBits64 - level - 1))
	mask := uint64(0b111) << shift
	return Key64((uint64(k) &^ mask) | (uint64(v&0b111) << shift))
}

func (k Key64) Null() Key64   { return NullKey64 }
func (k Key64) IsNull() bool  { return k == NullKey64 }
func (k Key64) Hash64() uint64 { return Hash64(uint64(k)) }

// Key128 is a 128-bit Morton key backed by a 256-bit fixed-width
// integer: dim_bits = 42. Only the low 128 bits are ever used; the
// two high limbs stay zero for every valid key.
type Key128 struct {
	uint256.Int
}

// DimBits128 is the number of bits per dimension carried by Key128.
const DimBits128 = 42

// NullKey128 is the reserved sentinel: all 128 logical bits set, the
// two high (unused) limbs left zero.
var NullKey128 = Key128{Int: uint256.Int{^uint64(0), ^uint64(0), 0, 0}}

// Encode128 interleaves x, y and z the same way Encode64 does, but
// splits each 42-bit coordinate into a high and low 21-bit half,
// encodes each half with Encode64, and reassembles the two 63-bit
// halves with a 63-bit shift: (high << 63) | low. Each 64-bit half
// carries 63 usable bits (21 bits per dimension x 3), which is why
// the reassembly shift is 63 and not 64.
func Encode128(x, y, z uint64) Key128 {
	const mask21 = uint64(1)<<21 - 1

	hx, lx := x>>21, x&mask21
	hy, ly := y>>21, y&mask21
	hz, lz := z>>21, z&mask21

	high := Encode64(uint32(hx), uint32(hy), uint32(hz))
	low := Encode64(uint32(lx), uint32(ly), uint32(lz))

	hi := uint256.NewInt(uint64(high))
	hi.Lsh(hi, 63)
	lo := uint256.NewInt(uint64(low))

	var k Key128
	k.Int = *new(uint256.Int).Or(hi, lo)
	return k
}

// Decode128 is the exact inverse of Encode128.
func Decode128(k Key128) (x, y, z uint64) {
	full := k.Int
	lowWord := full.Uint64()
	hi := new(uint256.Int).Rsh(&full, 63)
	hiWord := hi.Uint64()

	hx, hy, hz := Decode64(Key64(hiWord))
	lx, ly, lz := Decode64(Key64(lowWord))

	x = hx<<21 | lx
	y = hy<<21 | ly
	z = hz<<21 | lz
	return
}

func (k Key128) DimBits() int { return DimBits128 }

func (k Key128) GetLevel(level int) uint8 {
	shift := uint(3 * (DimBits128 - level - 1))
	v := new(uint256.Int).Rsh(&k.Int, shift)
	return uint8(v.Uint64() & 0b111)
}

func (k Key128) SetLevel(level int, v uint8) Key128 {
	if level >= DimBits128 {
		panic("morton: set_level level out of range for Key128")
	}
	shift := uint(3 * (DimBits128 - level - 1))
	mask := new(uint256.Int).Lsh(uint256.NewInt(0b111), shift)
	notMask := new(uint256.Int).Not(mask)
	cleared := new(uint256.Int).And(&k.Int, notMask)
	digit := new(uint256.Int).Lsh(uint256.NewInt(uint64(v&0b111)), shift)

	var out Key128
	out.Int = *new(uint256.Int).Or(cleared, digit)
	return out
}

func (k Key128) Null() Key128 { return NullKey128 }
func (k Key128) IsNull() bool { return k.Int == NullKey128.Int }
func (k Key128) Hash64() uint64 { return Hash128(k) }

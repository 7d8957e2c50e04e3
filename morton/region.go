package morton

// Region identifies a cubic subvolume: the top 3*Level bits of Path
// are the digit sequence from the root, the remaining bits of Path
// are always zero. Regions are value types, cheaply copyable;
// equality and hashing use both fields. As a key of the plain Go map
// types in this package a Region is hashed by the runtime's own map
// hash; Path's Hash64 is not consulted.
type Region[M Key[M]] struct {
	Path  M
	Level int
}

// BaseRegion returns the root region (0, 0).
func BaseRegion[M Key[M]]() Region[M] {
	var zero M
	return Region[M]{Path: zero, Level: 0}
}

// Enter descends to child i, producing
// (Path | (i << (3*(dim_bits-Level-1))), Level+1). Since the bits
// below the current level are always zero in a region's Path,
// setting the digit at the current level is equivalent to ORing it
// in, which is exactly what SetLevel does.
func (r Region[M]) Enter(i uint8) Region[M] {
	return Region[M]{Path: r.Path.SetLevel(r.Level, i), Level: r.Level + 1}
}

// Wrapper is the leaf map key: a single Morton value, matching the
// source's MortonWrapper. MortonCache hashes it through the Morton
// hasher (Hash64); the plain MortonMap and MortonSet types hash it with
// the runtime's own map hash.
type Wrapper[M Key[M]] struct {
	Morton M
}

// MortonLevels yields, for a given leaf Morton, the sequence of
// regions from root to depth dim_bits that contain that leaf — used
// by the linear octree during insertion and cache invalidation.
func MortonLevels[M Key[M]](m M) []Region[M] {
	dimBits := m.DimBits()
	regions := make([]Region[M], 0, dimBits+1)
	r := BaseRegion[M]()
	regions = append(regions, r)
	for level := 0; level < dimBits; level++ {
		r = r.Enter(m.GetLevel(level))
		regions = append(regions, r)
	}
	return regions
}

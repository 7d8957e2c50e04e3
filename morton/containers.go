package morton

import (
	"github.com/dgraph-io/ristretto"
	lru "github.com/hashicorp/golang-lru"
)

// RegionMap, RegionSet, MortonMap and MortonSet are the plain
// hash-table containers the source's region_map/region_set/
// morton_map/morton_set constructors produce. Go's built-in map
// cannot be parameterised by a custom hash function, so the
// locality-preserving hash these are conceptually keyed by is
// exercised directly (Key.Hash64, tested against invariant 9) and via
// MortonCache below, which does let us plug in a custom hasher.
type RegionMap[T any, M Key[M]] map[Region[M]]T
type RegionSet[M Key[M]] map[Region[M]]struct{}
type MortonMap[T any, M Key[M]] map[Wrapper[M]]T
type MortonSet[M Key[M]] map[Wrapper[M]]struct{}

func NewRegionMap[T any, M Key[M]]() RegionMap[T, M]   { return make(RegionMap[T, M]) }
func NewRegionSet[M Key[M]]() RegionSet[M]             { return make(RegionSet[M]) }
func NewMortonMap[T any, M Key[M]]() MortonMap[T, M]   { return make(MortonMap[T, M]) }
func NewMortonSet[M Key[M]]() MortonSet[M]             { return make(MortonSet[M]) }

// RegionCache is an exact, synchronous region-keyed memoisation cache.
// It backs iter_fold/iter_fold_random's intermediate-sum cache, which
// needs deterministic eviction: InvalidateRegionCache must remove a known
// key set, which an admission-policy cache cannot guarantee.
type RegionCache[S any, M Key[M]] struct {
	cache *lru.Cache
}

// NewRegionCache constructs a region cache holding at most size
// entries.
func NewRegionCache[S any, M Key[M]](size int) (*RegionCache[S, M], error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &RegionCache[S, M]{cache: c}, nil
}

func (c *RegionCache[S, M]) Get(r Region[M]) (S, bool) {
	v, ok := c.cache.Get(r)
	if !ok {
		var zero S
		return zero, false
	}
	return v.(S), true
}

func (c *RegionCache[S, M]) Add(r Region[M], sum S) { c.cache.Add(r, sum) }
func (c *RegionCache[S, M]) Remove(r Region[M])     { c.cache.Remove(r) }
func (c *RegionCache[S, M]) Len() int               { return c.cache.Len() }

// MortonCache is an approximate, admission-policy leaf cache used by
// the randomised fold path (PointerOctree's IterFoldRandom), where an
// occasional miss is harmless because the surrounding operation is
// already randomised. Its KeyToHash hook routes lookups through the
// same locality-preserving hash the rest of this package uses, which
// a plain Go map cannot be told to do.
type MortonCache[S any, M Key[M]] struct {
	cache *ristretto.Cache
}

// NewMortonCache constructs a morton cache with the given maximum
// cost (roughly, entry count for single-cost entries).
func NewMortonCache[S any, M Key[M]](maxCost int64) (*MortonCache[S, M], error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxCost * 10,
		MaxCost:     maxCost,
		BufferItems: 64,
		KeyToHash: func(key interface{}) (uint64, uint64) {
			w := key.(Wrapper[M])
			return w.Morton.Hash64(), 0
		},
	})
	if err != nil {
		return nil, err
	}
	return &MortonCache[S, M]{cache: c}, nil
}

func (c *MortonCache[S, M]) Get(m M) (S, bool) {
	v, ok := c.cache.Get(Wrapper[M]{Morton: m})
	if !ok {
		var zero S
		return zero, false
	}
	return v.(S), true
}

func (c *MortonCache[S, M]) Set(m M, sum S) {
	c.cache.Set(Wrapper[M]{Morton: m}, sum, 1)
}

// Wait blocks until every Set issued so far has been applied.
// Ristretto's admission policy runs its buffer through an internal
// goroutine, so a Get immediately following a Set is not otherwise
// guaranteed to observe it — callers who need that guarantee (tests,
// mostly) should call Wait between the two.
func (c *MortonCache[S, M]) Wait() { c.cache.Wait() }

// InvalidateRegionCache removes the root region and every ancestor
// region of m from cache (§4.E "cache invalidation"; property E7).
func InvalidateRegionCache[S any, M Key[M]](m M, cache *RegionCache[S, M]) {
	cache.Remove(BaseRegion[M]())
	for _, r := range MortonLevels(m) {
		cache.Remove(r)
	}
}

// RegionMapDifference returns the regions present in primary but
// absent from secondary. The two maps may carry different value
// types, matching the source's region_map_difference<T, U, M>.
func RegionMapDifference[T any, U any, M Key[M]](primary RegionMap[T, M], secondary RegionMap[U, M]) RegionSet[M] {
	diff := NewRegionSet[M]()
	for k := range primary {
		if _, ok := secondary[k]; !ok {
			diff[k] = struct{}{}
		}
	}
	return diff
}

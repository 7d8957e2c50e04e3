// Package linear implements the flat, hash-backed octree
// representation (§4.E): a leaf map from full Morton code to payload,
// plus a region map whose entries mark either "internal, descend
// further" (absent entry) or "this region resolves to exactly this
// leaf" (a non-null Morton value).
package linear

import (
	"iter"

	"github.com/rs/zerolog"

	"github.com/vellumlabs/morton-octree/morton"
)

// LinearOctree holds leaves keyed by full Morton code and internals
// keyed by region, internals seeded with the root region mapping to
// the null sentinel (an empty tree).
type LinearOctree[T any, M morton.Key[M]] struct {
	leaves    morton.MortonMap[T, M]
	internals morton.RegionMap[M, M]
	log       zerolog.Logger
}

// New returns an empty linear octree.
func New[T any, M morton.Key[M]](options ...Option[T, M]) *LinearOctree[T, M] {
	cfg := defaultConfig[T, M]()
	for _, opt := range options {
		opt(&cfg)
	}
	internals := morton.NewRegionMap[M, M]()
	var zero M
	internals[morton.BaseRegion[M]()] = zero.Null()
	return &LinearOctree[T, M]{
		leaves:    morton.NewMortonMap[T, M](),
		internals: internals,
		log:       cfg.logger,
	}
}

// Insert stores item at m. If m was already present, only the
// payload changes; internals is left untouched, which also ensures no
// insertion path can ever walk off the end of dim_bits levels without
// finding a differing digit — a second insert of the same Morton
// never re-triggers that walk in the first place (see DESIGN.md).
func (o *LinearOctree[T, M]) Insert(m M, item T) {
	w := morton.Wrapper[M]{Morton: m}
	if _, exists := o.leaves[w]; exists {
		o.leaves[w] = item
		o.log.Trace().Msg("linear octree: overwrote existing leaf")
		return
	}
	o.leaves[w] = item

	r := morton.BaseRegion[M]()
	for {
		existing, present := o.internals[r]
		if !present {
			r = r.Enter(m.GetLevel(r.Level))
			continue
		}
		if existing.IsNull() {
			o.internals[r] = m
			return
		}
		o.split(r, existing, m)
		return
	}
}

// split moves a leaf that currently resolves region r deeper into the
// tree until its Morton diverges from m's, populating the sibling
// regions with null markers along the way, exactly as the source's
// insert does after removing r's entry.
func (o *LinearOctree[T, M]) split(r morton.Region[M], existing, m M) {
	o.log.Trace().Msg("linear octree: splitting region on leaf collision")
	delete(o.internals, r)
	dimBits := m.DimBits()

	for level := r.Level; level < dimBits; level++ {
		a := existing.GetLevel(level)
		b := m.GetLevel(level)
		if a == b {
			for i := uint8(0); i < 8; i++ {
				if i != a {
					o.internals[r.Enter(i)] = nullKey[M]()
				}
			}
			r = r.Enter(a)
			continue
		}
		for i := uint8(0); i < 8; i++ {
			switch i {
			case a:
				o.internals[r.Enter(i)] = existing
			case b:
				o.internals[r.Enter(i)] = m
			default:
				o.internals[r.Enter(i)] = nullKey[M]()
			}
		}
		return
	}
	panic("morton: distinct Morton keys did not diverge within dim_bits levels")
}

func nullKey[M morton.Key[M]]() M {
	var zero M
	return zero.Null()
}

// Get returns the payload stored at m, if any. Region state is not
// consulted — leaves is a direct, flat lookup.
func (o *LinearOctree[T, M]) Get(m M) (T, bool) {
	v, ok := o.leaves[morton.Wrapper[M]{Morton: m}]
	return v, ok
}

// GetMut applies fn to the payload stored at m in place and reports
// whether m was present. A Go map does not hand out addressable
// values the way a Rust HashMap's get_mut does, so this port expresses
// "mutable access" as a callback that receives the current value and
// whose result is written back, rather than returning a dangling
// pointer into the map's internals.
func (o *LinearOctree[T, M]) GetMut(m M, fn func(*T)) bool {
	w := morton.Wrapper[M]{Morton: m}
	v, ok := o.leaves[w]
	if !ok {
		return false
	}
	fn(&v)
	o.leaves[w] = v
	return true
}

// Len reports the number of stored leaves. The source does not carry
// a count field on the linear octree, but §9 suggests exposing len()
// on both representations for parity; leaves' own map length already
// gives this for free.
func (o *LinearOctree[T, M]) Len() int { return len(o.leaves) }

// Extend inserts every pair produced by pairs.
func (o *LinearOctree[T, M]) Extend(pairs iter.Seq2[M, T]) {
	for m, item := range pairs {
		o.Insert(m, item)
	}
}

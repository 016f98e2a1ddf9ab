// Package implicant holds the Quine-McCluskey-internal Implicant and
// SameMaskGroup types: a cube plus the derived bookkeeping (mask, ones
// count, covered minterms, primality flag) used by the QM merge loop.
package implicant

import (
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/pborges/boolmin/internal/cube"
)

// maskDash is the mask character standing in for a dash position;
// maskCare marks a non-dash position. The consolidated design keeps
// cubes on the '-' alphabet throughout and uses 'x' only as this
// internal mask alias, mirroring how the source historically
// distinguished cube dashes from implicant mask dashes.
const (
	maskDash = 'x'
	maskCare = ' '
)

// Implicant is a cube plus the fields the QM merge loop must keep in
// sync: its dash-pattern mask (only implicants with identical masks can
// merge), its count of '1' bits, the set of original minterm indices it
// dominates, and a Prime flag. FromMinterm and Merge return implicants
// with Prime set; only SameMaskGroup.MarkNonPrime clears it.
type Implicant struct {
	Bits   cube.Cube
	Mask   string
	Count  int
	Covers *bitset.BitSet
	Prime  bool
}

func maskOf(c cube.Cube) string {
	buf := make([]byte, c.Width())
	for i := 0; i < c.Width(); i++ {
		if c.IsDash(i) {
			buf[i] = maskDash
		} else {
			buf[i] = maskCare
		}
	}
	return string(buf)
}

// FromMinterm wraps a fully-specified minterm bit-string as a starting
// Implicant: mask is all-care, Count is its number of 1 bits, and
// Covers is the singleton set {index} sized to universe (the total
// number of distinct on-set minterms), Prime starts true.
func FromMinterm(bits cube.Cube, index uint, universe uint) Implicant {
	covers := bitset.New(universe)
	covers.Set(index)
	return Implicant{
		Bits:   bits,
		Mask:   maskOf(bits),
		Count:  bits.Ones(),
		Covers: covers,
		Prime:  true,
	}
}

// Merge attempts to merge a and b (which must share a mask) into the
// next-generation implicant: the merged cube via cube.Merge, covers as
// the union of both parents' covered minterms, and a fresh Mask/Count.
// On success both a and b are reported non-prime via the returned bool.
func Merge(a, b Implicant) (Implicant, bool) {
	if a.Mask != b.Mask {
		return Implicant{}, false
	}
	merged, ok := cube.Merge(a.Bits, b.Bits)
	if !ok {
		return Implicant{}, false
	}
	covers := a.Covers.Clone()
	covers.InPlaceUnion(b.Covers)
	return Implicant{
		Bits:   merged,
		Mask:   maskOf(merged),
		Count:  merged.Ones(),
		Covers: covers,
		Prime:  true,
	}, true
}

// SameMaskGroup is an ordered, duplicate-free collection of implicants
// sharing a mask, indexed for uniqueness by bit-string and sortable by
// Count.
type SameMaskGroup struct {
	items map[string]Implicant
	order []string
}

// NewSameMaskGroup returns an empty group.
func NewSameMaskGroup() *SameMaskGroup {
	return &SameMaskGroup{items: make(map[string]Implicant)}
}

// Add inserts imp, keyed by its bit-string; re-adding an existing key
// unions its Covers bitmap rather than overwriting it, since the same
// implicant may be produced by merging more than one pair.
func (g *SameMaskGroup) Add(imp Implicant) {
	key := imp.Bits.String()
	if existing, ok := g.items[key]; ok {
		existing.Covers.InPlaceUnion(imp.Covers)
		g.items[key] = existing
		return
	}
	g.items[key] = imp
	g.order = append(g.order, key)
}

// MarkNonPrime clears the Prime flag on the implicant with the given
// bit-string, if present.
func (g *SameMaskGroup) MarkNonPrime(bits string) {
	if imp, ok := g.items[bits]; ok {
		imp.Prime = false
		g.items[bits] = imp
	}
}

// Sorted returns the group's implicants ordered by Count ascending,
// ties broken by bit-string for determinism.
func (g *SameMaskGroup) Sorted() []Implicant {
	out := make([]Implicant, 0, len(g.order))
	for _, k := range g.order {
		out = append(out, g.items[k])
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count < out[j].Count
		}
		return out[i].Bits.String() < out[j].Bits.String()
	})
	return out
}

// Len reports the number of distinct implicants in the group.
func (g *SameMaskGroup) Len() int { return len(g.items) }

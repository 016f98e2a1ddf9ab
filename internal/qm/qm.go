// Package qm implements the Quine-McCluskey minimizer: from a set of
// on-set minterms it generates all prime implicants, builds the
// cover-to-generator incidence matrix, selects a minimal set of primes
// via package mincover, and emits the resulting sum-of-products as a
// Cover.
package qm

import (
	"sort"

	"github.com/pborges/boolmin/internal/cover"
	"github.com/pborges/boolmin/internal/cube"
	"github.com/pborges/boolmin/internal/implicant"
	"github.com/pborges/boolmin/internal/mincover"
)

// Source supplies the on-set of a Boolean function: its canonical
// variable order and its satisfying assignments as fixed-width
// bit-strings over {0,1}. internal/boolexpr.Tree implements Source;
// tests and callers that already hold an explicit minterm list can
// implement it directly or use Minimize below.
type Source interface {
	Variables() []string
	EachMinterm(yield func(bits string) bool)
}

// Minimize runs Quine-McCluskey minimization over an explicit on-set
// (bit-strings over {0,1}, width == len(vars)) and returns the minimal
// sum-of-products as a Cover. An empty on-set yields an empty Cover
// (constant false); an on-set covering every assignment yields the
// single all-dash cube (constant true).
func Minimize(vars []string, onSet []string) (*cover.Cover, error) {
	width := len(vars)
	if len(onSet) == 0 {
		return cover.New(vars)
	}
	minterms := uniqueSorted(onSet)
	if len(minterms) == 1<<uint(width) {
		allDash := make([]byte, width)
		for i := range allDash {
			allDash[i] = cube.Dash
		}
		q, err := cube.New(string(allDash))
		if err != nil {
			return nil, err
		}
		return cover.New(vars, q)
	}

	generators, err := generatePrimes(minterms, width)
	if err != nil {
		return nil, err
	}

	rows, err := buildMatrix(generators, minterms)
	if err != nil {
		return nil, err
	}

	selected, err := mincover.Solve(rows, mincover.Options{Smallest: true})
	if err != nil {
		return nil, err
	}
	cols := selected[0]
	if len(cols) == 0 {
		return cover.New(vars)
	}

	out, err := cover.New(vars)
	if err != nil {
		return nil, err
	}
	type named struct {
		bits string
		q    cube.Cube
	}
	picked := make([]named, 0, len(cols))
	for _, c := range cols {
		picked = append(picked, named{bits: generators[c].Bits.String(), q: generators[c].Bits})
	}
	sort.Slice(picked, func(i, j int) bool { return picked[i].bits < picked[j].bits })
	for _, p := range picked {
		if err := out.Add(p.q); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// MinimizeExpr runs Minimize over a Source, collecting its on-set via
// EachMinterm.
func MinimizeExpr(src Source) (*cover.Cover, error) {
	var onSet []string
	src.EachMinterm(func(bits string) bool {
		onSet = append(onSet, bits)
		return true
	})
	return Minimize(src.Variables(), onSet)
}

func uniqueSorted(onSet []string) []string {
	seen := make(map[string]bool, len(onSet))
	out := make([]string, 0, len(onSet))
	for _, m := range onSet {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out
}

// generatePrimes runs the iterative merge loop of §4.D: implicants are
// bucketed by mask, each mask-group is scanned in ascending Count order
// for mergeable pairs, and any implicant that survives its group's scan
// unmerged is a generator (prime implicant).
func generatePrimes(minterms []string, width int) ([]implicant.Implicant, error) {
	universe := uint(len(minterms))
	buckets := map[string]*implicant.SameMaskGroup{}
	for i, m := range minterms {
		c, err := cube.New(m)
		if err != nil {
			return nil, err
		}
		imp := implicant.FromMinterm(c, uint(i), universe)
		g, ok := buckets[imp.Mask]
		if !ok {
			g = implicant.NewSameMaskGroup()
			buckets[imp.Mask] = g
		}
		g.Add(imp)
	}

	var generators []implicant.Implicant
	for {
		next := map[string]*implicant.SameMaskGroup{}
		mergedAny := false

		for mask, group := range buckets {
			sorted := group.Sorted()
			mergedInGroup := make(map[string]bool)
			for i := 0; i < len(sorted); i++ {
				for j := i + 1; j < len(sorted); j++ {
					if sorted[j].Count > sorted[i].Count+1 {
						break
					}
					m, ok := implicant.Merge(sorted[i], sorted[j])
					if !ok {
						continue
					}
					mergedAny = true
					mergedInGroup[sorted[i].Bits.String()] = true
					mergedInGroup[sorted[j].Bits.String()] = true
					ng, ok := next[m.Mask]
					if !ok {
						ng = implicant.NewSameMaskGroup()
						next[m.Mask] = ng
					}
					ng.Add(m)
				}
			}
			for _, imp := range sorted {
				if !mergedInGroup[imp.Bits.String()] {
					generators = append(generators, imp)
				}
			}
			_ = mask
		}

		if !mergedAny {
			break
		}
		buckets = next
	}

	sort.Slice(generators, func(i, j int) bool {
		return generators[i].Bits.String() < generators[j].Bits.String()
	})
	return generators, nil
}

// buildMatrix emits, for every distinct original minterm, a row of
// length len(generators) with '1' at column g iff minterms[row] is in
// generators[g].Covers.
func buildMatrix(generators []implicant.Implicant, minterms []string) ([]string, error) {
	rows := make([]string, len(minterms))
	for i := range minterms {
		buf := make([]byte, len(generators))
		for g, gen := range generators {
			if gen.Covers.Test(uint(i)) {
				buf[g] = '1'
			} else {
				buf[g] = '0'
			}
		}
		rows[i] = string(buf)
	}
	return rows, nil
}

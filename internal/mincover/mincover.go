// Package mincover solves the minimal column cover problem over a 0/1
// incidence matrix: given rows that must each be covered by at least
// one selected column, find one smallest or all minimal sets of
// columns that cover every row. This is the selection step shared by
// Quine-McCluskey prime selection and unate cover complementation.
package mincover

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/bits-and-blooms/bitset"
)

// ErrRaggedMatrix is returned when the input rows are not all the same
// length.
var ErrRaggedMatrix = errors.New("mincover: ragged matrix")

// ErrInvalidCell is returned when a matrix cell is not '0' or '1'.
var ErrInvalidCell = errors.New("mincover: invalid cell")

// Options configures Solve.
type Options struct {
	// Smallest selects between returning one smallest cover (true) and
	// all minimal covers (false).
	Smallest bool
	// Deadline bounds the Petrick expansion when Smallest is true. The
	// zero value means no deadline. Ignored when Smallest is false.
	Deadline time.Time
}

// Result carries solve's column-index answer plus whether the deadline
// was hit before the expansion finished (Smallest only; always false
// otherwise). Solve returns only Covers; DeadlineHit is not passed on.
type Result struct {
	Covers      [][]int
	DeadlineHit bool
}

// Solve returns all minimal column covers of rows (opts.Smallest ==
// false), or a single best-effort smallest cover (opts.Smallest ==
// true). rows are equal-length strings over {0, 1}; row i, column j is
// '1' iff column j covers row i.
func Solve(rows []string, opts Options) ([][]int, error) {
	res, err := solve(rows, opts)
	if err != nil {
		return nil, err
	}
	return res.Covers, nil
}

func solve(rows []string, opts Options) (Result, error) {
	if len(rows) == 0 {
		return Result{Covers: [][]int{{}}}, nil
	}
	width := len(rows[0])
	bits := make([]*bitset.BitSet, len(rows))
	for i, r := range rows {
		if len(r) != width {
			return Result{}, fmt.Errorf("%w: row %d has length %d, want %d", ErrRaggedMatrix, i, len(r), width)
		}
		b := bitset.New(uint(width))
		for j := 0; j < width; j++ {
			switch r[j] {
			case '1':
				b.Set(uint(j))
			case '0':
			default:
				return Result{}, fmt.Errorf("%w: row %d col %d = %q", ErrInvalidCell, i, j, r[j])
			}
		}
		bits[i] = b
	}

	essential := essentialColumns(bits, width)
	remaining := rowReduce(bits, essential)
	remaining = dominanceReduce(remaining)

	essList := sortedSet(essential)

	if len(remaining) == 0 {
		return Result{Covers: [][]int{essList}}, nil
	}

	terms, deadlineHit := petrickExpand(remaining, width, opts)
	sortTerms(terms)

	if opts.Smallest {
		var best *bitset.BitSet
		if len(terms) > 0 {
			best = terms[0]
		} else {
			best = bitset.New(uint(width))
		}
		for _, c := range essList {
			best.Set(uint(c))
		}
		return Result{Covers: [][]int{bitsetToSlice(best)}, DeadlineHit: deadlineHit}, nil
	}

	out := make([][]int, 0, len(terms))
	for _, t := range terms {
		full := t.Clone()
		for _, c := range essList {
			full.Set(uint(c))
		}
		out = append(out, bitsetToSlice(full))
	}
	return Result{Covers: out}, nil
}

// essentialColumns returns the set of columns that are the sole '1' in
// some row.
func essentialColumns(rows []*bitset.BitSet, width int) map[uint]bool {
	essential := make(map[uint]bool)
	for _, r := range rows {
		if r.Count() == 1 {
			col, _ := r.NextSet(0)
			essential[col] = true
		}
	}
	return essential
}

// rowReduce drops every row already covered by an essential column.
func rowReduce(rows []*bitset.BitSet, essential map[uint]bool) []*bitset.BitSet {
	var out []*bitset.BitSet
	for _, r := range rows {
		covered := false
		for col := range essential {
			if r.Test(col) {
				covered = true
				break
			}
		}
		if !covered {
			out = append(out, r)
		}
	}
	return out
}

// dominanceReduce deduplicates rows and removes dominating (superset)
// rows to a fixed point: row r0 dominates row r1 iff r0 is a proper
// superset of r1's columns, since covering r1 automatically covers r0.
func dominanceReduce(rows []*bitset.BitSet) []*bitset.BitSet {
	rows = dedupRows(rows)
	for {
		next := removeDominating(rows)
		if len(next) == len(rows) {
			return next
		}
		rows = dedupRows(next)
	}
}

func dedupRows(rows []*bitset.BitSet) []*bitset.BitSet {
	seen := make(map[string]bool, len(rows))
	var out []*bitset.BitSet
	for _, r := range rows {
		key := r.DumpAsBits()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

func isSuperset(a, b *bitset.BitSet) bool {
	// a is a superset of b iff b \ a is empty.
	diff := b.Difference(a)
	return diff.None()
}

func removeDominating(rows []*bitset.BitSet) []*bitset.BitSet {
	dominates := make([]bool, len(rows))
	for i, d := range rows {
		for j, s := range rows {
			if i == j {
				continue
			}
			if isSuperset(d, s) && d.Count() > s.Count() {
				dominates[i] = true
				break
			}
		}
	}
	var out []*bitset.BitSet
	for i, r := range rows {
		if !dominates[i] {
			out = append(out, r)
		}
	}
	return out
}

// petrickExpand converts the reduced matrix's product-of-sums (one sum
// per row, over the columns with a 1 in that row) into a
// sum-of-products by repeated distribution, absorbing duplicate and
// dominated terms as it goes.
func petrickExpand(rows []*bitset.BitSet, width int, opts Options) ([]*bitset.BitSet, bool) {
	// The first row's columns seed the initial sum-of-singletons.
	terms := sumTerms(rows[0])

	for i, row := range rows[1:] {
		if opts.Smallest && !opts.Deadline.IsZero() && time.Now().After(opts.Deadline) {
			return forceCover(terms, rows[i+1:]), true
		}
		next := distribute(terms, row, width)
		terms = absorb(next)
	}
	return terms, false
}

// forceCover is the deadline fallback: rows haven't been folded into
// terms via distribute/absorb yet, so every term is patched to include
// one column from each of them (its lowest-numbered column), keeping
// the returned cover valid — every row is still covered — at the cost
// of optimality.
func forceCover(terms []*bitset.BitSet, rows []*bitset.BitSet) []*bitset.BitSet {
	out := make([]*bitset.BitSet, len(terms))
	for i, t := range terms {
		nt := t.Clone()
		for _, row := range rows {
			if col, ok := row.NextSet(0); ok {
				nt.Set(col)
			}
		}
		out[i] = nt
	}
	return out
}

func sumTerms(row *bitset.BitSet) []*bitset.BitSet {
	var out []*bitset.BitSet
	for i, ok := row.NextSet(0); ok; i, ok = row.NextSet(i + 1) {
		t := bitset.New(row.Len())
		t.Set(i)
		out = append(out, t)
	}
	return out
}

func distribute(terms []*bitset.BitSet, row *bitset.BitSet, width int) []*bitset.BitSet {
	var out []*bitset.BitSet
	for _, t := range terms {
		for col, ok := row.NextSet(0); ok; col, ok = row.NextSet(col + 1) {
			nt := t.Clone()
			nt.Set(col)
			out = append(out, nt)
		}
	}
	return out
}

// absorb deduplicates terms and discards any term that is a proper
// superset of another surviving term (it can never be optimal). Like
// implicant.SameMaskGroup.Sorted, uniqueness is tracked with an
// explicit insertion-ordered key list rather than a bare map range, and
// the final sort carries an explicit tiebreaker (DumpAsBits), so the
// result — and therefore any terms[0] pick downstream — is
// byte-for-byte deterministic across runs even when multiple terms tie
// on Count.
func absorb(terms []*bitset.BitSet) []*bitset.BitSet {
	seen := make(map[string]*bitset.BitSet)
	var order []string
	for _, t := range terms {
		key := t.DumpAsBits()
		if _, ok := seen[key]; !ok {
			seen[key] = t
			order = append(order, key)
		}
	}
	uniq := make([]*bitset.BitSet, 0, len(order))
	for _, key := range order {
		uniq = append(uniq, seen[key])
	}
	sortTerms(uniq)

	var out []*bitset.BitSet
	for _, t := range uniq {
		dominated := false
		for _, kept := range out {
			if isSuperset(t, kept) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, t)
		}
	}
	return out
}

// sortTerms orders terms by Count ascending, breaking ties on
// DumpAsBits so equal-size terms sort identically regardless of the
// order they were produced in.
func sortTerms(terms []*bitset.BitSet) {
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count() != terms[j].Count() {
			return terms[i].Count() < terms[j].Count()
		}
		return terms[i].DumpAsBits() < terms[j].DumpAsBits()
	})
}

func sortedSet(m map[uint]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, int(k))
	}
	sort.Ints(out)
	return out
}

func bitsetToSlice(b *bitset.BitSet) []int {
	out := make([]int, 0, b.Count())
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}

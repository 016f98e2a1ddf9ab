// Package cube implements the ternary bit-string cube algebra: distance,
// merge, consensus, sharp, intersect, and minterm enumeration over cubes
// drawn from the alphabet {0, 1, -}.
package cube

import (
	"errors"
	"fmt"
)

const (
	// Zero, One and Dash are the three characters a cube position may hold.
	// Dash (don't-care) renders as '-'.
	Zero byte = '0'
	One  byte = '1'
	Dash byte = '-'
)

// ErrMalformedCube is returned when a bit-string contains a character
// outside {0, 1, -}.
var ErrMalformedCube = errors.New("cube: malformed bit-string")

// ErrWidthMismatch is returned when an operation requires two cubes of
// equal width but receives cubes of different widths.
var ErrWidthMismatch = errors.New("cube: width mismatch")

// ErrInvalidBit is returned when writing a character outside {0, 1, -} to
// a cube position.
var ErrInvalidBit = errors.New("cube: invalid bit value")

// Cube is an immutable, fixed-width ternary bit-string. Two cubes are
// equal iff their bit-strings are equal; the zero value is not a valid
// Cube (use New).
type Cube struct {
	bits string
}

// New validates bits and returns the Cube it denotes.
func New(bits string) (Cube, error) {
	for i := 0; i < len(bits); i++ {
		switch bits[i] {
		case Zero, One, Dash:
		default:
			return Cube{}, fmt.Errorf("%w: %q", ErrMalformedCube, bits)
		}
	}
	return Cube{bits: bits}, nil
}

// MustNew is New but panics on malformed input; intended for literals in
// tests and constant tables.
func MustNew(bits string) Cube {
	c, err := New(bits)
	if err != nil {
		panic(err)
	}
	return c
}

// Width returns the number of positions in c.
func (c Cube) Width() int { return len(c.bits) }

// String renders c as its bit-string, dash rendered as '-'.
func (c Cube) String() string { return c.bits }

// At returns the byte at position i.
func (c Cube) At(i int) byte { return c.bits[i] }

// IsDash reports whether position i is a don't-care.
func (c Cube) IsDash(i int) bool { return c.bits[i] == Dash }

// WithBit returns a copy of c with position i set to b.
func (c Cube) WithBit(i int, b byte) (Cube, error) {
	switch b {
	case Zero, One, Dash:
	default:
		return Cube{}, fmt.Errorf("%w: %q", ErrInvalidBit, b)
	}
	buf := []byte(c.bits)
	buf[i] = b
	return Cube{bits: string(buf)}, nil
}

// Ones returns the number of '1' bits in c.
func (c Cube) Ones() int {
	n := 0
	for i := 0; i < len(c.bits); i++ {
		if c.bits[i] == One {
			n++
		}
	}
	return n
}

// NumDashes returns the number of don't-care positions in c.
func (c Cube) NumDashes() int {
	n := 0
	for i := 0; i < len(c.bits); i++ {
		if c.bits[i] == Dash {
			n++
		}
	}
	return n
}

func checkWidth(a, b Cube) error {
	if a.Width() != b.Width() {
		return fmt.Errorf("%w: %d != %d", ErrWidthMismatch, a.Width(), b.Width())
	}
	return nil
}

// Distance counts the positions where both a and b are non-dash and
// differ. Distance is commutative and requires equal width.
func Distance(a, b Cube) (int, error) {
	if err := checkWidth(a, b); err != nil {
		return 0, err
	}
	d := 0
	for i := 0; i < a.Width(); i++ {
		ai, bi := a.bits[i], b.bits[i]
		if ai == Dash || bi == Dash {
			continue
		}
		if ai != bi {
			d++
		}
	}
	return d, nil
}

// CanMerge reports whether a and b differ at exactly one position and
// share an identical dash pattern (same positions are dash in both).
func CanMerge(a, b Cube) bool {
	if a.Width() != b.Width() {
		return false
	}
	d, err := Distance(a, b)
	if err != nil || d != 1 {
		return false
	}
	for i := 0; i < a.Width(); i++ {
		if (a.bits[i] == Dash) != (b.bits[i] == Dash) {
			return false
		}
	}
	return true
}

// Merge returns the cube obtained by setting the unique differing
// position of a and b to dash, and reports whether a and b were
// mergeable.
func Merge(a, b Cube) (Cube, bool) {
	if !CanMerge(a, b) {
		return Cube{}, false
	}
	buf := []byte(a.bits)
	for i := 0; i < a.Width(); i++ {
		if a.bits[i] != b.bits[i] {
			buf[i] = Dash
			break
		}
	}
	return Cube{bits: string(buf)}, true
}

// Consensus is defined iff Distance(a, b) == 1: at the differing
// position it sets dash; at positions where exactly one of a, b is
// dash, it takes the other's value; at positions where both are
// non-dash and equal, it keeps that value. ok is false if distance != 1.
func Consensus(a, b Cube) (c Cube, ok bool, err error) {
	if err = checkWidth(a, b); err != nil {
		return Cube{}, false, err
	}
	d, _ := Distance(a, b)
	if d != 1 {
		return Cube{}, false, nil
	}
	buf := make([]byte, a.Width())
	for i := 0; i < a.Width(); i++ {
		ai, bi := a.bits[i], b.bits[i]
		switch {
		case ai == Dash && bi == Dash:
			buf[i] = Dash
		case ai == Dash:
			buf[i] = bi
		case bi == Dash:
			buf[i] = ai
		case ai != bi:
			buf[i] = Dash
		default:
			buf[i] = ai
		}
	}
	return Cube{bits: string(buf)}, true, nil
}

// complement of a non-dash bit.
func flip(b byte) byte {
	if b == Zero {
		return One
	}
	return Zero
}

// Sharp computes the set difference a \ b as a list of cubes whose union
// of minterms equals minterms(a) minus minterms(b). For each position i
// where b[i] is non-dash and a[i] is not identical to b[i] (including
// when a[i] is dash), it emits a copy of a with position i set to the
// complement of b[i]. Positions where b[i] is dash, or where a[i]
// already equals b[i], are skipped. The result is deduplicated.
func Sharp(a, b Cube) ([]Cube, error) {
	if err := checkWidth(a, b); err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []Cube
	for i := 0; i < a.Width(); i++ {
		bi := b.bits[i]
		if bi == Dash {
			continue
		}
		ai := a.bits[i]
		if ai == bi {
			continue
		}
		buf := []byte(a.bits)
		buf[i] = flip(bi)
		s := string(buf)
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, Cube{bits: s})
	}
	return out, nil
}

// Intersects reports whether there is no position where both a and b
// are non-dash and differ.
func Intersects(a, b Cube) (bool, error) {
	if err := checkWidth(a, b); err != nil {
		return false, err
	}
	for i := 0; i < a.Width(); i++ {
		ai, bi := a.bits[i], b.bits[i]
		if ai == Dash || bi == Dash {
			continue
		}
		if ai != bi {
			return false, nil
		}
	}
	return true, nil
}

// Intersect computes the elementwise intersection of a and b: dash
// yields the other's bit, equal non-dash bits yield themselves, and
// differing non-dash bits mean no intersection exists (ok is false).
func Intersect(a, b Cube) (c Cube, ok bool, err error) {
	if err = checkWidth(a, b); err != nil {
		return Cube{}, false, err
	}
	buf := make([]byte, a.Width())
	for i := 0; i < a.Width(); i++ {
		ai, bi := a.bits[i], b.bits[i]
		switch {
		case ai == Dash:
			buf[i] = bi
		case bi == Dash:
			buf[i] = ai
		case ai == bi:
			buf[i] = ai
		default:
			return Cube{}, false, nil
		}
	}
	return Cube{bits: string(buf)}, true, nil
}

// EachMinterm enumerates the 2^k bit-strings obtained by substituting
// the cube's k dash positions with 0/1, in little-endian order over the
// dash positions' left-to-right indices. It stops early if yield
// returns false.
func (c Cube) EachMinterm(yield func(Cube) bool) {
	var dashPos []int
	for i := 0; i < c.Width(); i++ {
		if c.bits[i] == Dash {
			dashPos = append(dashPos, i)
		}
	}
	n := 1 << len(dashPos)
	buf := []byte(c.bits)
	for i := 0; i < n; i++ {
		for j, pos := range dashPos {
			if i&(1<<j) != 0 {
				buf[pos] = One
			} else {
				buf[pos] = Zero
			}
		}
		if !yield(Cube{bits: string(buf)}) {
			return
		}
	}
}

// Minterms returns all minterms of c as a slice, in EachMinterm order.
func (c Cube) Minterms() []Cube {
	out := make([]Cube, 0, 1<<c.NumDashes())
	c.EachMinterm(func(m Cube) bool {
		out = append(out, m)
		return true
	})
	return out
}

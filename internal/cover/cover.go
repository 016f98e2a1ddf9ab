// Package cover implements the cover algebra: an ordered collection of
// cubes over a shared variable list, with union, subtraction, cofactor,
// unate detection, tautology checking, and complementation.
package cover

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pborges/boolmin/internal/cube"
	"github.com/pborges/boolmin/internal/mincover"
)

// ErrWidthMismatch is returned when a cube's width does not match the
// cover's variable count.
var ErrWidthMismatch = errors.New("cover: width mismatch")

// ErrUnknownVariable is returned when a variable name is not present in
// the cover's variable list.
var ErrUnknownVariable = errors.New("cover: unknown variable")

// ErrInvalidCofactorValue is returned when a cofactor value is not 0 or 1.
var ErrInvalidCofactorValue = errors.New("cover: invalid cofactor value")

// Cover is an ordered list of cubes over a shared, ordered variable
// list. Duplicates are allowed until Uniq is called; cube order is
// deterministic but not semantically significant.
type Cover struct {
	Vars  []string
	Cubes []cube.Cube
}

// New builds a Cover over vars, validating that every cube's width
// equals len(vars).
func New(vars []string, cubes ...cube.Cube) (*Cover, error) {
	c := &Cover{Vars: append([]string(nil), vars...)}
	if err := c.Add(cubes...); err != nil {
		return nil, err
	}
	return c, nil
}

// Add appends cubes to c, validating widths.
func (c *Cover) Add(cubes ...cube.Cube) error {
	for _, q := range cubes {
		if q.Width() != len(c.Vars) {
			return fmt.Errorf("%w: cube width %d, cover has %d variables", ErrWidthMismatch, q.Width(), len(c.Vars))
		}
		c.Cubes = append(c.Cubes, q)
	}
	return nil
}

// VarIndex returns the bit position of v in c.Vars.
func (c *Cover) VarIndex(v string) (int, error) {
	for i, name := range c.Vars {
		if name == v {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariable, v)
}

// Uniq removes duplicate cubes (by bit-string), preserving first
// occurrence order.
func (c *Cover) Uniq() {
	seen := make(map[string]bool, len(c.Cubes))
	out := c.Cubes[:0]
	for _, q := range c.Cubes {
		s := q.String()
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, q)
	}
	c.Cubes = out
}

func sameVars(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Unite returns the set-union of a and b (duplicates preserved until
// Uniq is called on the result).
func Unite(a, b *Cover) (*Cover, error) {
	if !sameVars(a.Vars, b.Vars) {
		return nil, fmt.Errorf("%w: variable lists differ", ErrWidthMismatch)
	}
	out := &Cover{Vars: append([]string(nil), a.Vars...)}
	out.Cubes = append(out.Cubes, a.Cubes...)
	out.Cubes = append(out.Cubes, b.Cubes...)
	return out, nil
}

// Subtract removes from a every cube that is byte-equal to some cube of
// b.
func Subtract(a, b *Cover) (*Cover, error) {
	if !sameVars(a.Vars, b.Vars) {
		return nil, fmt.Errorf("%w: variable lists differ", ErrWidthMismatch)
	}
	remove := make(map[string]bool, len(b.Cubes))
	for _, q := range b.Cubes {
		remove[q.String()] = true
	}
	out := &Cover{Vars: append([]string(nil), a.Vars...)}
	for _, q := range a.Cubes {
		if !remove[q.String()] {
			out.Cubes = append(out.Cubes, q)
		}
	}
	return out, nil
}

// Cofactor returns the cofactor of c with respect to var == val
// (val must be '0' or '1'). For each cube: if its bit at var's position
// equals val, the bit is replaced by dash and the cube is kept; if it
// is the opposite non-dash value, the cube is dropped; if it is already
// dash, the cube is kept unchanged. The result is deduplicated.
func (c *Cover) Cofactor(v string, val byte) (*Cover, error) {
	if val != cube.Zero && val != cube.One {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCofactorValue, val)
	}
	idx, err := c.VarIndex(v)
	if err != nil {
		return nil, err
	}
	out := &Cover{Vars: append([]string(nil), c.Vars...)}
	for _, q := range c.Cubes {
		bit := q.At(idx)
		switch {
		case bit == cube.Dash:
			out.Cubes = append(out.Cubes, q)
		case bit == val:
			nq, err := q.WithBit(idx, cube.Dash)
			if err != nil {
				return nil, err
			}
			out.Cubes = append(out.Cubes, nq)
		default:
			// opposite non-dash value: drop.
		}
	}
	out.Uniq()
	return out, nil
}

// CofactorCube computes the generalized Shannon cofactor of c with
// respect to cube q: for each cube s of c, wherever s[i] == q[i] that
// position is set to dash; wherever both are non-dash and differ, s is
// dropped; dash positions of q leave s unchanged. The result is
// deduplicated.
func (c *Cover) CofactorCube(q cube.Cube) (*Cover, error) {
	if q.Width() != len(c.Vars) {
		return nil, fmt.Errorf("%w: cube width %d, cover has %d variables", ErrWidthMismatch, q.Width(), len(c.Vars))
	}
	out := &Cover{Vars: append([]string(nil), c.Vars...)}
outer:
	for _, s := range c.Cubes {
		buf := []byte(s.String())
		for i := 0; i < len(buf); i++ {
			si, qi := buf[i], q.At(i)
			if qi == cube.Dash {
				continue
			}
			if si == qi {
				buf[i] = cube.Dash
				continue
			}
			if si != cube.Dash && si != qi {
				continue outer
			}
		}
		nq, err := cube.New(string(buf))
		if err != nil {
			return nil, err
		}
		out.Cubes = append(out.Cubes, nq)
	}
	out.Uniq()
	return out, nil
}

// FindBinate walks the cover's cubes accumulating a merged dash
// signature; the first position where a definite bit contradicts the
// running signature identifies a binate variable. It returns ("", false)
// iff the cover is unate.
func (c *Cover) FindBinate() (string, bool) {
	if len(c.Vars) == 0 || len(c.Cubes) == 0 {
		return "", false
	}
	sig := make([]byte, len(c.Vars))
	for i := range sig {
		sig[i] = cube.Dash
	}
	for _, q := range c.Cubes {
		for i := 0; i < len(c.Vars); i++ {
			bi := q.At(i)
			if bi == cube.Dash {
				continue
			}
			switch sig[i] {
			case cube.Dash:
				sig[i] = bi
			case bi:
				// consistent so far.
			default:
				return c.Vars[i], true
			}
		}
	}
	return "", false
}

// IsTautology reports whether c evaluates to true on every assignment.
// If c is unate, it is a tautology iff it contains the all-dash cube.
// Otherwise it recurses on the positive and negative cofactors of a
// binate variable. An empty cover is not a tautology.
func (c *Cover) IsTautology() (bool, error) {
	if len(c.Cubes) == 0 {
		return false, nil
	}
	v, binate := c.FindBinate()
	if !binate {
		for _, q := range c.Cubes {
			if q.NumDashes() == len(c.Vars) {
				return true, nil
			}
		}
		return false, nil
	}
	c0, err := c.Cofactor(v, cube.Zero)
	if err != nil {
		return false, err
	}
	c1, err := c.Cofactor(v, cube.One)
	if err != nil {
		return false, err
	}
	t0, err := c0.IsTautology()
	if err != nil {
		return false, err
	}
	if !t0 {
		return false, nil
	}
	return c1.IsTautology()
}

// Complement returns a cover whose minterms are exactly those excluded
// by c. An empty cover complements to the single all-dash cube
// (constant true). A unate cover complements via the minimal column
// cover of its per-variable incidence matrix (component C); a binate
// cover complements via Shannon expansion on a binate variable.
func (c *Cover) Complement() (*Cover, error) {
	if len(c.Cubes) == 0 {
		allDash := make([]byte, len(c.Vars))
		for i := range allDash {
			allDash[i] = cube.Dash
		}
		q, err := cube.New(string(allDash))
		if err != nil {
			return nil, err
		}
		return New(c.Vars, q)
	}
	v, binate := c.FindBinate()
	if !binate {
		return c.complementUnate()
	}
	idx, err := c.VarIndex(v)
	if err != nil {
		return nil, err
	}
	c0, err := c.Cofactor(v, cube.Zero)
	if err != nil {
		return nil, err
	}
	c1, err := c.Cofactor(v, cube.One)
	if err != nil {
		return nil, err
	}
	cf0, err := c0.Complement()
	if err != nil {
		return nil, err
	}
	cf1, err := c1.Complement()
	if err != nil {
		return nil, err
	}
	out := &Cover{Vars: append([]string(nil), c.Vars...)}
	for _, q := range cf0.Cubes {
		if q.At(idx) != cube.One {
			nq, err := q.WithBit(idx, cube.Zero)
			if err != nil {
				return nil, err
			}
			out.Cubes = append(out.Cubes, nq)
		}
	}
	for _, q := range cf1.Cubes {
		if q.At(idx) != cube.Zero {
			nq, err := q.WithBit(idx, cube.One)
			if err != nil {
				return nil, err
			}
			out.Cubes = append(out.Cubes, nq)
		}
	}
	out.Uniq()
	return out, nil
}

// complementUnate implements the unate branch of Complement: build a
// 0/1 incidence matrix with one row per cube and one column per
// variable (row i, column j is 1 iff cube i has a non-dash bit at
// position j), find all minimal column covers, and translate each into
// one complement cube.
func (c *Cover) complementUnate() (*Cover, error) {
	rows := make([]string, len(c.Cubes))
	for i, q := range c.Cubes {
		buf := make([]byte, len(c.Vars))
		for j := 0; j < len(c.Vars); j++ {
			if q.At(j) == cube.Dash {
				buf[j] = '0'
			} else {
				buf[j] = '1'
			}
		}
		rows[i] = string(buf)
	}
	covers, err := mincover.Solve(rows, mincover.Options{Smallest: false})
	if err != nil {
		return nil, err
	}
	out := &Cover{Vars: append([]string(nil), c.Vars...)}
	for _, cols := range covers {
		buf := make([]byte, len(c.Vars))
		for i := range buf {
			buf[i] = cube.Dash
		}
		for _, k := range cols {
			onesAtK := false
			for _, q := range c.Cubes {
				if q.At(k) == cube.One {
					onesAtK = true
					break
				}
			}
			if onesAtK {
				buf[k] = cube.Zero
			} else {
				buf[k] = cube.One
			}
		}
		nq, err := cube.New(string(buf))
		if err != nil {
			return nil, err
		}
		out.Cubes = append(out.Cubes, nq)
	}
	out.Uniq()
	return out, nil
}

// String renders c as a comma-joined variable list followed by a comma
// and the comma-joined cube strings.
func (c *Cover) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(c.Vars, ","))
	for _, q := range c.Cubes {
		b.WriteByte(',')
		b.WriteString(q.String())
	}
	return b.String()
}

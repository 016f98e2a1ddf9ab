package boolexpr

import (
	"github.com/pborges/boolmin/internal/cover"
	"github.com/pborges/boolmin/internal/cube"
)

// FromCover renders c as an expression tree: each cube becomes a
// conjunction of its non-dash literals (Var at '1', Not{Var} at '0',
// dashes contributing no literal), and the cubes are combined under a
// disjunction, per spec.md §4.D's emission step. An empty cover
// becomes Const{false}; a cover containing the all-dash cube collapses
// to Const{true}, since that cube's conjunction would otherwise be
// empty.
func FromCover(c *cover.Cover) Expr {
	if len(c.Cubes) == 0 {
		return Const{Value: false}
	}
	var disjuncts []Expr
	for _, q := range c.Cubes {
		if q.NumDashes() == q.Width() {
			return Const{Value: true}
		}
		disjuncts = append(disjuncts, cubeExpr(c.Vars, q))
	}
	out := disjuncts[0]
	for _, d := range disjuncts[1:] {
		out = Or{A: out, B: d}
	}
	return out
}

func cubeExpr(vars []string, q cube.Cube) Expr {
	var literals []Expr
	for i, name := range vars {
		switch q.At(i) {
		case cube.One:
			literals = append(literals, Var{Name: name})
		case cube.Zero:
			literals = append(literals, Not{X: Var{Name: name}})
		}
	}
	if len(literals) == 0 {
		return Const{Value: true}
	}
	out := literals[0]
	for _, lit := range literals[1:] {
		out = And{A: out, B: lit}
	}
	return out
}

// Package boolexpr implements a generic Boolean expression grammar
// (variables, &, #, !, parens, 0/1 constants) and evaluates it into the
// qm.Source interface: a variable ordering plus an EachMinterm
// enumerator suitable for feeding Quine-McCluskey minimization.
package boolexpr

// Expr is a sealed interface over the expression AST; every variant
// implements isExpr so the set of node types is closed to this package.
type Expr interface{ isExpr() }

// Var references a named Boolean variable.
type Var struct{ Name string }

func (Var) isExpr() {}

// Not negates its operand.
type Not struct{ X Expr }

func (Not) isExpr() {}

// And is a binary conjunction.
type And struct{ A, B Expr }

func (And) isExpr() {}

// Or is a binary disjunction.
type Or struct{ A, B Expr }

func (Or) isExpr() {}

// Const is a literal 0 or 1.
type Const struct{ Value bool }

func (Const) isExpr() {}

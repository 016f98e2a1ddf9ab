package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	boolminroot "github.com/pborges/boolmin"
	"github.com/pborges/boolmin/internal/boolexpr"
	"github.com/pborges/boolmin/internal/cover"
	"github.com/pborges/boolmin/internal/cube"
	"github.com/pborges/boolmin/internal/qm"
)

var log = logrus.New()

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simplify_qm", "complement", "is_tautology", "std_conj", "std_dij", "truth_tbl":
		if err := runLines(os.Args[1], os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	case "version", "-v":
		fmt.Println(boolminroot.Version())
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintln(os.Stderr, "unknown command:", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("boolmin - two-level Boolean function minimizer")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  boolmin simplify_qm [-v]   < expressions")
	fmt.Println("  boolmin complement [-v]    < expressions")
	fmt.Println("  boolmin is_tautology [-v]  < expressions")
	fmt.Println("  boolmin std_conj [-v]      < expressions")
	fmt.Println("  boolmin std_dij [-v]       < expressions")
	fmt.Println("  boolmin truth_tbl [-v]     < expressions")
	fmt.Println("  boolmin version")
	fmt.Println()
	fmt.Println("Each subcommand reads one Boolean expression per stdin line.")
}

func runLines(cmd string, args []string) error {
	verbose := false
	for _, a := range args {
		if a == "-v" || a == "--verbose" {
			verbose = true
		}
	}
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	scanner := bufio.NewScanner(os.Stdin)
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		log.WithFields(logrus.Fields{"line": lineNo, "cmd": cmd}).Debug("parsing expression")
		expr, err := boolexpr.Parse(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		out, err := dispatch(cmd, expr)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		fmt.Fprintln(w, out)
	}
	return scanner.Err()
}

func dispatch(cmd string, expr boolexpr.Expr) (string, error) {
	tree := boolexpr.NewTree(expr)

	switch cmd {
	case "simplify_qm":
		c, err := qm.MinimizeExpr(tree)
		if err != nil {
			return "", err
		}
		return boolexpr.String(boolexpr.FromCover(c)), nil
	case "complement":
		c, err := onSetCover(tree)
		if err != nil {
			return "", err
		}
		comp, err := c.Complement()
		if err != nil {
			return "", err
		}
		return boolexpr.String(boolexpr.FromCover(comp)), nil
	case "is_tautology":
		c, err := onSetCover(tree)
		if err != nil {
			return "", err
		}
		ok, err := c.IsTautology()
		if err != nil {
			return "", err
		}
		if ok {
			return "1", nil
		}
		return "0", nil
	case "std_dij":
		// canonical disjunctive standard form: one minterm (conjunction
		// of uncomplemented/complemented literals) per satisfying
		// assignment, OR'd together, unminimized.
		return standardForm(tree, true), nil
	case "std_conj":
		// canonical conjunctive standard form: one maxterm (disjunction
		// of literals complemented relative to the minterm encoding)
		// per falsifying assignment, AND'd together, unminimized.
		return standardForm(tree, false), nil
	case "truth_tbl":
		return truthTable(tree), nil
	default:
		return "", fmt.Errorf("unknown command %q", cmd)
	}
}

// onSetCover builds the sum-of-minterms cover (one all-care cube per
// satisfying assignment) for tree, the form complement and is_tautology
// start from.
func onSetCover(tree *boolexpr.Tree) (*cover.Cover, error) {
	return assignmentCover(tree, true)
}

// assignmentCover enumerates every assignment over tree's variables and
// collects the ones whose evaluation equals want into an all-care-cube
// cover.
func assignmentCover(tree *boolexpr.Tree, want bool) (*cover.Cover, error) {
	vars := tree.Variables()
	c, err := cover.New(vars)
	if err != nil {
		return nil, err
	}
	total := 1 << uint(len(vars))
	satisfying := map[string]bool{}
	tree.EachMinterm(func(bits string) bool {
		satisfying[bits] = true
		return true
	})
	for n := 0; n < total; n++ {
		buf := make([]byte, len(vars))
		for i := range vars {
			if n&(1<<uint(len(vars)-1-i)) != 0 {
				buf[i] = '1'
			} else {
				buf[i] = '0'
			}
		}
		bits := string(buf)
		if satisfying[bits] != want {
			continue
		}
		q, err := cube.New(bits)
		if err != nil {
			return nil, err
		}
		if err := c.Add(q); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// standardForm renders tree's canonical disjunctive (dij=true, sum of
// minterms) or conjunctive (dij=false, product of maxterms) standard
// form directly from assignments, without running any minimization.
func standardForm(tree *boolexpr.Tree, dij bool) string {
	vars := tree.Variables()
	width := len(vars)
	satisfying := map[string]bool{}
	tree.EachMinterm(func(bits string) bool {
		satisfying[bits] = true
		return true
	})

	var terms []boolexpr.Expr
	total := 1 << uint(width)
	for n := 0; n < total; n++ {
		buf := make([]byte, width)
		for i := range vars {
			if n&(1<<uint(width-1-i)) != 0 {
				buf[i] = '1'
			} else {
				buf[i] = '0'
			}
		}
		bits := string(buf)
		if satisfying[bits] != dij {
			continue
		}
		var literals []boolexpr.Expr
		for i, name := range vars {
			v := boolexpr.Expr(boolexpr.Var{Name: name})
			// A minterm literal is uncomplemented where the bit is 1; a
			// maxterm literal is uncomplemented where the bit is 0.
			if (bits[i] == '1') != dij {
				v = boolexpr.Not{X: v}
			}
			literals = append(literals, v)
		}
		term := literals[0]
		for _, lit := range literals[1:] {
			if dij {
				term = boolexpr.And{A: term, B: lit}
			} else {
				term = boolexpr.Or{A: term, B: lit}
			}
		}
		terms = append(terms, term)
	}
	if len(terms) == 0 {
		return boolexpr.String(boolexpr.Const{Value: !dij})
	}
	out := terms[0]
	for _, t := range terms[1:] {
		if dij {
			out = boolexpr.Or{A: out, B: t}
		} else {
			out = boolexpr.And{A: out, B: t}
		}
	}
	return boolexpr.String(out)
}

func truthTable(tree *boolexpr.Tree) string {
	vars := tree.Variables()
	onSet := map[string]bool{}
	tree.EachMinterm(func(bits string) bool {
		onSet[bits] = true
		return true
	})
	header := ""
	for _, v := range vars {
		header += v + " "
	}
	header += "| f"
	lines := []string{header}
	total := 1 << uint(len(vars))
	for n := 0; n < total; n++ {
		buf := make([]byte, len(vars))
		for i := range vars {
			if n&(1<<uint(len(vars)-1-i)) != 0 {
				buf[i] = '1'
			} else {
				buf[i] = '0'
			}
		}
		row := ""
		for _, b := range buf {
			row += string(b) + " "
		}
		f := "0"
		if onSet[string(buf)] {
			f = "1"
		}
		lines = append(lines, row+"| "+f)
	}
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}

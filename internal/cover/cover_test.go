package cover

import (
	"errors"
	"testing"

	"github.com/pborges/boolmin/internal/cube"
)

func mustCube(t *testing.T, bits string) cube.Cube {
	t.Helper()
	q, err := cube.New(bits)
	if err != nil {
		t.Fatalf("cube.New(%q): %v", bits, err)
	}
	return q
}

func TestNewRejectsWidthMismatch(t *testing.T) {
	_, err := New([]string{"a", "b"}, mustCube(t, "0"))
	if !errors.Is(err, ErrWidthMismatch) {
		t.Fatalf("err = %v, want ErrWidthMismatch", err)
	}
}

func TestVarIndex(t *testing.T) {
	c, err := New([]string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}
	idx, err := c.VarIndex("b")
	if err != nil || idx != 1 {
		t.Fatalf("VarIndex(b) = %d, %v; want 1, nil", idx, err)
	}
	if _, err := c.VarIndex("z"); !errors.Is(err, ErrUnknownVariable) {
		t.Fatalf("err = %v, want ErrUnknownVariable", err)
	}
}

func TestUniq(t *testing.T) {
	c, err := New([]string{"a"}, mustCube(t, "0"), mustCube(t, "0"), mustCube(t, "1"))
	if err != nil {
		t.Fatal(err)
	}
	c.Uniq()
	if len(c.Cubes) != 2 {
		t.Fatalf("len(Cubes) = %d, want 2", len(c.Cubes))
	}
}

func TestUniteAndSubtract(t *testing.T) {
	a, _ := New([]string{"a", "b"}, mustCube(t, "00"), mustCube(t, "01"))
	b, _ := New([]string{"a", "b"}, mustCube(t, "01"), mustCube(t, "10"))
	u, err := Unite(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(u.Cubes) != 4 {
		t.Fatalf("Unite len = %d, want 4 (pre-Uniq)", len(u.Cubes))
	}
	s, err := Subtract(u, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Cubes) != 1 {
		t.Fatalf("Subtract len = %d, want 1", len(s.Cubes))
	}
	for _, q := range s.Cubes {
		if q.String() == "01" || q.String() == "10" {
			t.Errorf("Subtract left a cube in b: %q", q.String())
		}
	}
}

func TestUniteWidthMismatch(t *testing.T) {
	a, _ := New([]string{"a", "b"})
	b, _ := New([]string{"a", "b", "c"})
	if _, err := Unite(a, b); !errors.Is(err, ErrWidthMismatch) {
		t.Fatalf("err = %v, want ErrWidthMismatch", err)
	}
}

func TestCofactor(t *testing.T) {
	c, _ := New([]string{"a", "b"}, mustCube(t, "-1"), mustCube(t, "00"), mustCube(t, "10"))
	c0, err := c.Cofactor("a", '0')
	if err != nil {
		t.Fatal(err)
	}
	// "-1" kept unchanged (dash at a), "00" -> "-0" (a==0 replaced by dash),
	// "10" dropped (a==1 opposes val 0).
	got := map[string]bool{}
	for _, q := range c0.Cubes {
		got[q.String()] = true
	}
	want := map[string]bool{"-1": true, "-0": true}
	if len(got) != len(want) {
		t.Fatalf("Cofactor(a,0) cubes = %v, want %v", got, want)
	}
	for k := range want {
		if !got[k] {
			t.Errorf("missing cube %q in cofactor result %v", k, got)
		}
	}
}

func TestCofactorInvalidValue(t *testing.T) {
	c, _ := New([]string{"a"}, mustCube(t, "0"))
	if _, err := c.Cofactor("a", '2'); !errors.Is(err, ErrInvalidCofactorValue) {
		t.Fatalf("err = %v, want ErrInvalidCofactorValue", err)
	}
}

func TestCofactorUnknownVariable(t *testing.T) {
	c, _ := New([]string{"a"}, mustCube(t, "0"))
	if _, err := c.Cofactor("z", '0'); !errors.Is(err, ErrUnknownVariable) {
		t.Fatalf("err = %v, want ErrUnknownVariable", err)
	}
}

func TestCofactorCube(t *testing.T) {
	c, _ := New([]string{"a", "b", "c"}, mustCube(t, "1-0"), mustCube(t, "010"))
	q := mustCube(t, "1-1")
	// row "1-0": a matches(1==1)->dash, b dash in q unchanged->dash, c
	// differs(0 vs 1, both non-dash)->drop.
	// row "010": a differs(0 vs 1)->drop.
	cf, err := c.CofactorCube(q)
	if err != nil {
		t.Fatal(err)
	}
	if len(cf.Cubes) != 0 {
		t.Fatalf("CofactorCube result = %v, want empty", cf.Cubes)
	}
}

func TestCofactorCubeKeepsMatchingRows(t *testing.T) {
	c, _ := New([]string{"a", "b"}, mustCube(t, "11"), mustCube(t, "00"))
	q := mustCube(t, "1-")
	cf, err := c.CofactorCube(q)
	if err != nil {
		t.Fatal(err)
	}
	if len(cf.Cubes) != 1 || cf.Cubes[0].String() != "-1" {
		t.Fatalf("CofactorCube = %v, want single cube -1", cf.Cubes)
	}
}

func TestFindBinateUnate(t *testing.T) {
	c, _ := New([]string{"a", "b"}, mustCube(t, "1-"), mustCube(t, "11"))
	if v, binate := c.FindBinate(); binate {
		t.Fatalf("FindBinate = %q, true; want unate", v)
	}
}

func TestFindBinateDetectsContradiction(t *testing.T) {
	c, _ := New([]string{"a", "b"}, mustCube(t, "10"), mustCube(t, "01"))
	v, binate := c.FindBinate()
	if !binate || v != "a" {
		t.Fatalf("FindBinate = %q, %v; want a, true", v, binate)
	}
}

func TestIsTautologyEmptyCoverFalse(t *testing.T) {
	c, _ := New([]string{"a"})
	ok, err := c.IsTautology()
	if err != nil || ok {
		t.Fatalf("IsTautology = %v, %v; want false, nil", ok, err)
	}
}

func TestIsTautologyUnateAllDash(t *testing.T) {
	c, _ := New([]string{"a", "b"}, mustCube(t, "--"))
	ok, err := c.IsTautology()
	if err != nil || !ok {
		t.Fatalf("IsTautology = %v, %v; want true, nil", ok, err)
	}
}

func TestIsTautologyBinateComplementaryCofactors(t *testing.T) {
	// a + !a is a tautology even though no single cube is all-dash.
	c, _ := New([]string{"a", "b"}, mustCube(t, "1-"), mustCube(t, "0-"))
	ok, err := c.IsTautology()
	if err != nil || !ok {
		t.Fatalf("IsTautology = %v, %v; want true, nil", ok, err)
	}
}

func TestIsTautologyFalseCase(t *testing.T) {
	c, _ := New([]string{"a", "b"}, mustCube(t, "10"))
	ok, err := c.IsTautology()
	if err != nil || ok {
		t.Fatalf("IsTautology = %v, %v; want false, nil", ok, err)
	}
}

func TestComplementEmptyCoverIsAllDash(t *testing.T) {
	c, _ := New([]string{"a", "b"})
	comp, err := c.Complement()
	if err != nil {
		t.Fatal(err)
	}
	if len(comp.Cubes) != 1 || comp.Cubes[0].String() != "--" {
		t.Fatalf("Complement = %v, want single -- cube", comp.Cubes)
	}
}

func TestComplementUnateSingleLiteral(t *testing.T) {
	// f = a (cube "1-"); complement should be exactly {!a} = "0-".
	c, _ := New([]string{"a", "b"}, mustCube(t, "1-"))
	comp, err := c.Complement()
	if err != nil {
		t.Fatal(err)
	}
	if len(comp.Cubes) != 1 || comp.Cubes[0].String() != "0-" {
		t.Fatalf("Complement = %v, want single 0- cube", comp.Cubes)
	}
}

func TestComplementBinateDisjointFromOriginal(t *testing.T) {
	// f = ab + !a!b over {a,b}; on-set minterms {11, 00}; complement's
	// on-set must be exactly {01, 10}.
	c, _ := New([]string{"a", "b"}, mustCube(t, "11"), mustCube(t, "00"))
	comp, err := c.Complement()
	if err != nil {
		t.Fatal(err)
	}
	got := mintermSet(t, comp)
	want := map[string]bool{"01": true, "10": true}
	if len(got) != len(want) {
		t.Fatalf("complement minterms = %v, want %v", got, want)
	}
	for m := range want {
		if !got[m] {
			t.Errorf("missing minterm %q in complement", m)
		}
	}
}

func mintermSet(t *testing.T, c *Cover) map[string]bool {
	t.Helper()
	out := map[string]bool{}
	for _, q := range c.Cubes {
		for _, m := range q.Minterms() {
			out[m.String()] = true
		}
	}
	return out
}

// TestComplementScenarioS5 covers the spec's S5 scenario: complementing
// ["10-", "-01"] over [a,b,c]. "10-" denotes {100,101} and "-01"
// denotes {001,101}, so the cover's on-set is {001,100,101} and its
// complement is the remaining 5 points of the 8-point cube; the
// result, re-complemented, reproduces the original cover's minterms
// under truth-table comparison.
func TestComplementScenarioS5(t *testing.T) {
	c, _ := New([]string{"a", "b", "c"}, mustCube(t, "10-"), mustCube(t, "-01"))
	comp, err := c.Complement()
	if err != nil {
		t.Fatal(err)
	}
	got := mintermSet(t, comp)
	want := map[string]bool{"000": true, "010": true, "011": true, "110": true, "111": true}
	if len(got) != len(want) {
		t.Fatalf("complement minterms = %v, want %v", got, want)
	}
	for m := range want {
		if !got[m] {
			t.Errorf("missing minterm %q in complement", m)
		}
	}
	back, err := comp.Complement()
	if err != nil {
		t.Fatal(err)
	}
	origMinterms := mintermSet(t, c)
	backMinterms := mintermSet(t, back)
	if len(origMinterms) != len(backMinterms) {
		t.Fatalf("double complement minterms = %v, want %v", backMinterms, origMinterms)
	}
	for m := range origMinterms {
		if !backMinterms[m] {
			t.Errorf("double complement missing minterm %q", m)
		}
	}
}

// TestIsTautologyScenarioS6 covers the spec's S6 scenario.
func TestIsTautologyScenarioS6(t *testing.T) {
	vars := []string{"a", "b", "c"}
	tauto, _ := New(vars, mustCube(t, "1--"), mustCube(t, "-1-"), mustCube(t, "--1"), mustCube(t, "000"))
	ok, err := tauto.IsTautology()
	if err != nil || !ok {
		t.Fatalf("IsTautology = %v, %v; want true, nil", ok, err)
	}

	notTauto, _ := New(vars, mustCube(t, "1--"), mustCube(t, "-1-"), mustCube(t, "--1"))
	ok, err = notTauto.IsTautology()
	if err != nil || ok {
		t.Fatalf("IsTautology = %v, %v; want false, nil", ok, err)
	}
}

func TestString(t *testing.T) {
	c, _ := New([]string{"a", "b"}, mustCube(t, "01"))
	want := "a,b,01"
	if got := c.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

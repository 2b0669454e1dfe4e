package symbolic

import (
	"strings"
	"testing"
)

func TestNumString(t *testing.T) {
	if got := N(42).String(); got != "42" {
		t.Errorf("N(42).String() = %q, want %q", got, "42")
	}
	if got := F(1, 3).String(); got != "1/3" {
		t.Errorf("F(1,3).String() = %q, want %q", got, "1/3")
	}
	if got := N(-7).String(); got != "-7" {
		t.Errorf("N(-7).String() = %q, want %q", got, "-7")
	}
}

func TestAddSimplify(t *testing.T) {
	// x + x + 1 + 2 -> 2*x + 3
	e := AddOf(S("x"), S("x"), N(1), N(2))
	if got := e.String(); got != "2*x + 3" {
		t.Errorf("x+x+1+2 = %q, want %q", got, "2*x + 3")
	}

	// y + x sorts symbols alphabetically
	e = AddOf(S("y"), S("x"))
	if got := e.String(); got != "x + y" {
		t.Errorf("y+x = %q, want %q", got, "x + y")
	}

	// x - x -> 0
	e = AddOf(S("x"), MulOf(N(-1), S("x")))
	if got := e.String(); got != "0" {
		t.Errorf("x-x = %q, want %q", got, "0")
	}

	// nested sums flatten
	e = AddOf(AddOf(S("a"), N(1)), AddOf(S("b"), N(2)))
	if got := e.String(); got != "a + b + 3" {
		t.Errorf("(a+1)+(b+2) = %q, want %q", got, "a + b + 3")
	}
}

func TestMulSimplify(t *testing.T) {
	// y*x sorts to x*y
	e := MulOf(S("y"), S("x"))
	if got := e.String(); got != "x*y" {
		t.Errorf("y*x = %q, want %q", got, "x*y")
	}

	// 2*3*x -> 6*x
	e = MulOf(N(2), N(3), S("x"))
	if got := e.String(); got != "6*x" {
		t.Errorf("2*3*x = %q, want %q", got, "6*x")
	}

	// 0*x -> 0
	e = MulOf(N(0), S("x"))
	if got := e.String(); got != "0" {
		t.Errorf("0*x = %q, want %q", got, "0")
	}

	// 1*x -> x
	e = MulOf(N(1), S("x"))
	if got := e.String(); got != "x" {
		t.Errorf("1*x = %q, want %q", got, "x")
	}

	// sums inside products get parenthesized
	e = MulOf(AddOf(S("a"), N(1)), S("b"))
	if got := e.String(); got != "(a + 1)*b" {
		t.Errorf("(a+1)*b = %q, want %q", got, "(a + 1)*b")
	}
}

func TestPowSimplify(t *testing.T) {
	cases := []struct {
		in   Expr
		want string
	}{
		{PowOf(S("x"), N(0)), "1"},
		{PowOf(S("x"), N(1)), "x"},
		{PowOf(N(2), N(10)), "1024"},
		{PowOf(N(2), N(-3)), "1/8"},
		{PowOf(N(0), N(5)), "0"},
		{PowOf(N(1), S("x")), "1"},
		{PowOf(PowOf(S("x"), N(2)), N(3)), "x**6"},
		{PowOf(S("x"), S("y")), "x**y"},
	}
	for _, c := range cases {
		if got := c.in.String(); got != c.want {
			t.Errorf("Pow case = %q, want %q", got, c.want)
		}
	}

	// 0**0 stays unevaluated
	if got := PowOf(N(0), N(0)).String(); got != "0**0" {
		t.Errorf("0**0 = %q, want unevaluated", got)
	}
}

func TestPowStringParenthesization(t *testing.T) {
	e := PowOf(AddOf(S("x"), N(1)), N(2))
	if got := e.String(); got != "(x + 1)**2" {
		t.Errorf("(x+1)**2 = %q, want %q", got, "(x + 1)**2")
	}
	e = PowOf(S("x"), AddOf(S("n"), N(1)))
	if got := e.String(); got != "x**(n + 1)" {
		t.Errorf("x**(n+1) = %q, want %q", got, "x**(n + 1)")
	}
}

func TestFuncExactEval(t *testing.T) {
	cases := []struct {
		in   Expr
		want string
	}{
		{NewFunc("fibonacci", N(10)), "55"},
		{NewFunc("fibonacci", N(0)), "0"},
		{NewFunc("lucas", N(5)), "11"},
		{NewFunc("lucas", N(0)), "2"},
		{NewFunc("binomial", N(5), N(2)), "10"},
		{NewFunc("factorial", N(5)), "120"},
		{NewFunc("factorial", N(0)), "1"},
		{NewFunc("abs", N(-3)), "3"},
		{NewFunc("sign", N(-9)), "-1"},
		{NewFunc("floor", F(7, 2)), "3"},
		{NewFunc("floor", F(-7, 2)), "-4"},
		{NewFunc("ceil", F(7, 2)), "4"},
		{NewFunc("sin", N(0)), "0"},
		{NewFunc("cos", N(0)), "1"},
		{NewFunc("exp", N(0)), "1"},
		{NewFunc("ln", N(1)), "0"},
	}
	for _, c := range cases {
		if got := c.in.String(); got != c.want {
			t.Errorf("eval = %q, want %q", got, c.want)
		}
	}
}

func TestFuncStaysSymbolic(t *testing.T) {
	// no floating point fallback
	e := NewFunc("sqrt", N(5))
	if got := e.String(); got != "sqrt(5)" {
		t.Errorf("sqrt(5) = %q, want symbolic", got)
	}
	e = NewFunc("sin", S("x"))
	if got := e.String(); got != "sin(x)" {
		t.Errorf("sin(x) = %q, want symbolic", got)
	}
	// argument order is preserved
	e = NewFunc("g", S("b"), S("a"))
	if got := e.String(); got != "g(b, a)" {
		t.Errorf("g(b, a) = %q, want argument order preserved", got)
	}
}

func TestParseCanonicalizes(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"y*x", "x*y"},
		{"1 + 2", "3"},
		{"x - y", "x + -1*y"},
		{"1/5", "1/5"},
		{"a/b", "a*b**-1"},
		{"2**10", "1024"},
		{"a // b", "floor(a*b**-1)"},
		{"a % b", "Mod(a, b)"},
		{"a & b", "and(a, b)"},
		{"a << 2", "shiftLeft(a, 2)"},
		{"~a", "invert(a)"},
		{"not a", "not(a)"},
		{"-x", "-1*x"},
		{"+x", "x"},
		{"f(y*x, 2)", "f(x*y, 2)"},
	}
	for _, c := range cases {
		v, err := Parse(c.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.in, err)
		}
		if got := v.String(); got != c.want {
			t.Errorf("Parse(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseStringRoundTrip(t *testing.T) {
	// the printed form re-parses to an equal value
	inputs := []string{
		"x + y",
		"a/b",
		"x**(n + 1)",
		"(x + 1)*(y + 2)",
		"fibonacci(n)",
		"g(x, 3)",
		"(a, b, c)",
		"[1, 2, 3]",
	}
	for _, in := range inputs {
		first, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		second, err := Parse(first.String())
		if err != nil {
			t.Fatalf("re-Parse(%q): %v", first.String(), err)
		}
		if first.String() != second.String() {
			t.Errorf("round trip of %q: %q then %q", in, first.String(), second.String())
		}
	}
}

func TestParsePredicates(t *testing.T) {
	v, err := Parse("i + k")
	if err != nil {
		t.Fatal(err)
	}
	if !IsAdd(v) {
		t.Errorf("i + k should be additive")
	}
	v, err = Parse("i*k")
	if err != nil {
		t.Fatal(err)
	}
	if IsAdd(v) {
		t.Errorf("i*k should not be additive")
	}
	v, err = Parse("(i, 1, k)")
	if err != nil {
		t.Fatal(err)
	}
	if IsExpr(v) {
		t.Errorf("a tuple is not a structural expression")
	}
	if _, err := ParseExpr("(i, 1, k)"); err == nil {
		t.Errorf("ParseExpr should reject a tuple")
	}
}

func TestParseMatrix(t *testing.T) {
	v, err := Parse("Matrix([[1, 2], [3, x]])")
	if err != nil {
		t.Fatal(err)
	}
	m, ok := v.(*Matrix)
	if !ok {
		t.Fatalf("got %T, want *Matrix", v)
	}
	if m.Rows() != 2 || m.Cols() != 2 {
		t.Errorf("dims = %dx%d, want 2x2", m.Rows(), m.Cols())
	}
	if got := m.Get(1, 1).String(); got != "x" {
		t.Errorf("entry (1,1) = %q, want x", got)
	}
	if _, err := Parse("Matrix([[1, 2], [3]])"); err == nil {
		t.Errorf("ragged matrix should fail")
	}
}

func TestEqual(t *testing.T) {
	a, _ := Parse("x*y + 1")
	b, _ := Parse("y*x + 1")
	if !a.(Expr).Equal(b.(Expr)) {
		t.Errorf("x*y+1 and y*x+1 should be equal after canonicalization")
	}
	c, _ := Parse("x*y + 2")
	if a.(Expr).Equal(c.(Expr)) {
		t.Errorf("x*y+1 and x*y+2 should differ")
	}
}

func TestLaTeX(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"1/3", "\\frac{1}{3}"},
		{"x + y", "x + y"},
		{"x - y", "x - y"},
		{"x - 2*y", "x - 2 y"},
		{"x*y", "x y"},
		{"(x + 1)*y", "\\left(x + 1\\right) y"},
		{"x**2", "x^{2}"},
		{"sin(x)", "\\sin\\left(x\\right)"},
		{"abs(x)", "\\left|x\\right|"},
		{"sqrt(5)", "\\sqrt{5}"},
		{"binomial(n, k)", "\\binom{n}{k}"},
		{"fibonacci(n)", "F_{n}"},
		{"lucas(n)", "L_{n}"},
		{"Mod(a, b)", "a \\bmod b"},
		{"g(x, 3)", "\\operatorname{g}\\left(x, 3\\right)"},
		{"(a, b)", "\\left(a, b\\right)"},
	}
	for _, c := range cases {
		v, err := Parse(c.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.in, err)
		}
		if got := v.LaTeX(); got != c.want {
			t.Errorf("LaTeX(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLaTeXMatrix(t *testing.T) {
	v, err := Parse("Matrix([[1, 2], [3, 4]])")
	if err != nil {
		t.Fatal(err)
	}
	got := v.LaTeX()
	if !strings.HasPrefix(got, "\\begin{pmatrix}") || !strings.HasSuffix(got, "\\end{pmatrix}") {
		t.Errorf("matrix LaTeX = %q, want pmatrix delimiters", got)
	}
	if !strings.Contains(got, "1 & 2") || !strings.Contains(got, "3 & 4") {
		t.Errorf("matrix LaTeX = %q, want row entries joined with &", got)
	}
}

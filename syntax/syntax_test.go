package syntax

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize(t *testing.T) {
	got, err := Tokenize("3-(1+2)/5")
	if err != nil {
		t.Fatal(err)
	}
	want := []Token{
		{Index: 0, End: 1, Type: TokenNumber, Text: "3"},
		{Index: 1, End: 2, Type: TokenOperator, Text: "-"},
		{Index: 2, End: 3, Type: TokenPunct, Text: "("},
		{Index: 3, End: 4, Type: TokenNumber, Text: "1"},
		{Index: 4, End: 5, Type: TokenOperator, Text: "+"},
		{Index: 5, End: 6, Type: TokenNumber, Text: "2"},
		{Index: 6, End: 7, Type: TokenPunct, Text: ")"},
		{Index: 7, End: 8, Type: TokenOperator, Text: "/"},
		{Index: 8, End: 9, Type: TokenNumber, Text: "5"},
		{Index: 9, End: 9, Type: TokenEOF, Text: ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeOperators(t *testing.T) {
	got, err := Tokenize("a ** b // c << 2 >> 1 % d & e | f ^ g ~h")
	if err != nil {
		t.Fatal(err)
	}
	var ops []string
	for _, tok := range got {
		if tok.Type == TokenOperator {
			ops = append(ops, tok.Text)
		}
	}
	want := []string{"**", "//", "<<", ">>", "%", "&", "|", "^", "~"}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Errorf("operator mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeNumbers(t *testing.T) {
	for _, src := range []string{"42", "3.14", ".5", "1e10", "2.5e-3", "7E+2"} {
		got, err := Tokenize(src)
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", src, err)
		}
		if len(got) != 2 || got[0].Type != TokenNumber || got[0].Text != src {
			t.Errorf("Tokenize(%q) = %+v, want one number token", src, got)
		}
	}
}

func TestTokenizeNotKeyword(t *testing.T) {
	got, err := Tokenize("not nothing")
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Type != TokenOperator || got[0].Text != "not" {
		t.Errorf("got %+v, want operator not", got[0])
	}
	if got[1].Type != TokenIdent || got[1].Text != "nothing" {
		t.Errorf("got %+v, want identifier nothing", got[1])
	}
}

func TestTokenizeErrors(t *testing.T) {
	for _, src := range []string{"$", "a < b", "a > b", "1e+", "a . b", "1.2.3", ".5.", "1e2.3"} {
		if _, err := Tokenize(src); err == nil {
			t.Errorf("Tokenize(%q) should fail", src)
		}
	}
}

// dump prints a tree in prefix form for structural comparison.
func dump(n Node) string {
	switch n := n.(type) {
	case *Ident:
		return n.Name
	case *Literal:
		return n.Value
	case *Unary:
		return fmt.Sprintf("(u%s %s)", n.Op, dump(n.Operand))
	case *Binary:
		return fmt.Sprintf("(%s %s %s)", n.Op, dump(n.Left), dump(n.Right))
	case *Call:
		parts := make([]string, len(n.Args))
		for i, a := range n.Args {
			parts[i] = dump(a)
		}
		return fmt.Sprintf("(call %s %s)", n.Fn.Name, strings.Join(parts, " "))
	case *Tuple:
		parts := make([]string, len(n.Elems))
		for i, e := range n.Elems {
			parts[i] = dump(e)
		}
		return "(tuple " + strings.Join(parts, " ") + ")"
	case *List:
		parts := make([]string, len(n.Elems))
		for i, e := range n.Elems {
			parts[i] = dump(e)
		}
		return "(list " + strings.Join(parts, " ") + ")"
	}
	return "?"
}

func TestParsePrecedence(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"1+2*3", "(+ 1 (* 2 3))"},
		{"(1+2)*3", "(* (+ 1 2) 3)"},
		{"a-b-c", "(- (- a b) c)"},
		{"2**3**2", "(** 2 (** 3 2))"},
		{"-x**2", "(u- (** x 2))"},
		{"-x*y", "(* (u- x) y)"},
		{"a//b%c", "(% (// a b) c)"},
		{"a+b<<c", "(<< (+ a b) c)"},
		{"a&b|c", "(| (& a b) c)"},
		{"a^b&c", "(^ a (& b c))"},
		{"not a+b", "(unot (+ a b))"},
		{"~a+b", "(+ (u~ a) b)"},
		{"3-(1+2)/5", "(- 3 (/ (+ 1 2) 5))"},
	}
	for _, c := range cases {
		tree, err := Parse(c.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.in, err)
		}
		if got := dump(tree.Root); got != c.want {
			t.Errorf("Parse(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestParseCallsAndContainers(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"f()", "(call f )"},
		{"f(x)", "(call f x)"},
		{"g(x, y+1)", "(call g x (+ y 1))"},
		{"Sum(i+k, (i, 1, k))", "(call Sum (+ i k) (tuple i 1 k))"},
		{"[1, 2, 3]", "(list 1 2 3)"},
		{"[]", "(list )"},
		{"Matrix([[1, 2], [3, 4]])", "(call Matrix (list (list 1 2) (list 3 4)))"},
		{"(a, b)", "(tuple a b)"},
		{"(a)", "a"},
	}
	for _, c := range cases {
		tree, err := Parse(c.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.in, err)
		}
		if got := dump(tree.Root); got != c.want {
			t.Errorf("Parse(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestTreeText(t *testing.T) {
	tree, err := Parse("g((a+b)*c, 2)")
	if err != nil {
		t.Fatal(err)
	}
	call := tree.Root.(*Call)
	if got := tree.Text(call.Args[0]); got != "(a+b)*c" {
		t.Errorf("arg 0 text = %q, want %q", got, "(a+b)*c")
	}
	mul := call.Args[0].(*Binary)
	if got := tree.Text(mul.Left); got != "(a+b)" {
		t.Errorf("left text = %q, want %q", got, "(a+b)")
	}
	if got := tree.Text(call.Args[1]); got != "2" {
		t.Errorf("arg 1 text = %q, want %q", got, "2")
	}
	if got := tree.Text(tree.Root); got != "g((a+b)*c, 2)" {
		t.Errorf("root text = %q, want full source", got)
	}

	tree, err = Parse("1 + h(x)")
	if err != nil {
		t.Fatal(err)
	}
	sum := tree.Root.(*Binary)
	if got := tree.Text(sum.Right); got != "h(x)" {
		t.Errorf("nested call text = %q, want %q", got, "h(x)")
	}
}

func TestTreeTextParenthesizedRoot(t *testing.T) {
	tree, err := Parse("((x))")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tree.Root.(*Ident); !ok {
		t.Fatalf("root is %T, want *Ident", tree.Root)
	}
	if got := tree.Text(tree.Root); got != "((x))" {
		t.Errorf("root text = %q, want %q", got, "((x))")
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"",
		"1+",
		"2***3",
		"g(x",
		"(a,)",
		"()",
		"[1, 2",
		"a b",
		"1 2",
		"f(,)",
	}
	for _, src := range cases {
		if _, err := Parse(src); err == nil {
			t.Errorf("Parse(%q) should fail", src)
		}
	}
}

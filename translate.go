package verbatex

import (
	"fmt"
	"strings"

	"verbatex/syntax"
)

// Binding strength drives parenthesization: a child is wrapped in
// \left( \right) when it binds looser than its parent. Atoms are tightest,
// unrecognized constructs loosest so they always get wrapped.
const (
	precUnknown = 0
	precAddSub  = 300
	precMulDiv  = 400
	precMod     = 500
	precPow     = 700
	precUnary   = 800
	precAtom    = 1000
)

func opPrecedence(op syntax.Op) int {
	switch op {
	case syntax.OpAdd, syntax.OpSub:
		return precAddSub
	case syntax.OpMul, syntax.OpDiv, syntax.OpFloorDiv:
		return precMulDiv
	case syntax.OpMod:
		return precMod
	case syntax.OpPow:
		return precPow
	}
	return precUnknown
}

func nodePrecedence(n syntax.Node) int {
	switch n := n.(type) {
	case *syntax.Ident, *syntax.Literal, *syntax.Call, *syntax.Tuple, *syntax.List:
		return precAtom
	case *syntax.Unary:
		return precUnary
	case *syntax.Binary:
		return opPrecedence(n.Op)
	}
	return precUnknown
}

// Translator renders parsed source trees as presentation LaTeX. Structure
// visible in the source is preserved; only opaque function applications are
// delegated to the evaluator.
type Translator struct {
	eval Evaluator
}

// NewTranslator builds a translator over the given evaluator. A nil
// evaluator selects the symbolic kernel.
func NewTranslator(eval Evaluator) *Translator {
	if eval == nil {
		eval = DefaultEvaluator{}
	}
	return &Translator{eval: eval}
}

// Translate renders the tree's root.
func (tr *Translator) Translate(t *syntax.Tree) (string, error) {
	return tr.node(t, t.Root)
}

func (tr *Translator) node(t *syntax.Tree, n syntax.Node) (string, error) {
	switch n := n.(type) {
	case *syntax.Ident:
		return n.Name, nil

	case *syntax.Literal:
		return n.Value, nil

	case *syntax.Unary:
		return tr.unary(t, n)

	case *syntax.Binary:
		return tr.binary(t, n)

	case *syntax.Call:
		return tr.call(t, n)

	case *syntax.Tuple:
		return "", fmt.Errorf("%w: tuple outside call arguments", ErrUnsupported)

	case *syntax.List:
		return "", fmt.Errorf("%w: list outside call arguments", ErrUnsupported)
	}
	return "", fmt.Errorf("%w: %T", ErrUnsupported, n)
}

// grouped renders a child and wraps it when it binds looser than its
// parent. wrapEqual additionally wraps on equal precedence, which the
// right side of a subtraction needs: a-(b+c) must keep its parentheses.
func (tr *Translator) grouped(t *syntax.Tree, n syntax.Node, parent int, wrapEqual bool) (string, error) {
	s, err := tr.node(t, n)
	if err != nil {
		return "", err
	}
	p := nodePrecedence(n)
	if p < parent || (wrapEqual && p == parent) {
		s = `\left(` + s + `\right)`
	}
	return s, nil
}

func (tr *Translator) unary(t *syntax.Tree, n *syntax.Unary) (string, error) {
	var op string
	switch n.Op {
	case syntax.OpUAdd:
		op = "+"
	case syntax.OpUSub:
		op = "-"
	case syntax.OpNot:
		op = `\neg`
	case syntax.OpInvert:
		op = `\operatorname{invert}`
	default:
		return "", fmt.Errorf("%w: unary operator %s", ErrUnsupported, n.Op)
	}
	operand, err := tr.grouped(t, n.Operand, precUnary, false)
	if err != nil {
		return "", err
	}
	return op + " " + operand, nil
}

func (tr *Translator) binary(t *syntax.Tree, n *syntax.Binary) (string, error) {
	prec := opPrecedence(n.Op)

	// Division renders as a fraction, so the bar already groups both
	// children and they are translated bare.
	switch n.Op {
	case syntax.OpDiv, syntax.OpFloorDiv:
		num, err := tr.node(t, n.Left)
		if err != nil {
			return "", err
		}
		den, err := tr.node(t, n.Right)
		if err != nil {
			return "", err
		}
		frac := `\frac{` + num + `}{` + den + `}`
		if n.Op == syntax.OpFloorDiv {
			return `\left\lfloor` + frac + `\right\rfloor`, nil
		}
		return frac, nil

	case syntax.OpPow:
		// The base keeps hard parentheses; cleanup collapses them when
		// the grouping already produced \left( \right).
		left, err := tr.grouped(t, n.Left, prec, false)
		if err != nil {
			return "", err
		}
		right, err := tr.node(t, n.Right)
		if err != nil {
			return "", err
		}
		return "(" + left + ")^{" + right + "}", nil
	}

	left, err := tr.grouped(t, n.Left, prec, false)
	if err != nil {
		return "", err
	}
	right, err := tr.grouped(t, n.Right, prec, n.Op == syntax.OpSub)
	if err != nil {
		return "", err
	}

	switch n.Op {
	case syntax.OpAdd:
		return left + "+" + right, nil
	case syntax.OpSub:
		return left + "-" + right, nil
	case syntax.OpMul:
		return left + " " + right, nil
	case syntax.OpMod:
		return left + ` \bmod ` + right, nil
	case syntax.OpBitAnd:
		return left + ` \operatorname{and} ` + right, nil
	case syntax.OpBitOr:
		return left + ` \operatorname{or} ` + right, nil
	case syntax.OpBitXor:
		return left + ` \operatorname{xor} ` + right, nil
	case syntax.OpLShift:
		return left + ` \operatorname{shiftLeft} ` + right, nil
	case syntax.OpRShift:
		return left + ` \operatorname{shiftRight} ` + right, nil
	}
	return "", fmt.Errorf("%w: binary operator %s", ErrUnsupported, n.Op)
}

func (tr *Translator) call(t *syntax.Tree, n *syntax.Call) (string, error) {
	switch n.Fn.Name {
	case "Sum", "Product":
		if out, ok, err := tr.bigOperator(t, n); err != nil {
			return "", err
		} else if ok {
			return out, nil
		}
	case "fibonacci":
		return tr.subscripted(t, n, "F")
	case "lucas":
		return tr.subscripted(t, n, "L")
	}
	return tr.genericCall(t, n)
}

// bigOperator renders Sum(body, (var, lo, hi)) and its Product twin. Calls
// that do not have that shape fall through to the generic path.
func (tr *Translator) bigOperator(t *syntax.Tree, n *syntax.Call) (string, bool, error) {
	if len(n.Args) != 2 {
		return "", false, nil
	}
	bounds, ok := n.Args[1].(*syntax.Tuple)
	if !ok || len(bounds.Elems) != 3 {
		return "", false, nil
	}

	body, err := tr.node(t, n.Args[0])
	if err != nil {
		return "", false, err
	}
	// An additive body needs explicit grouping: the operator's scope is
	// otherwise ambiguous against the trailing + term.
	v, err := tr.eval.Parse(t.Text(n.Args[0]))
	if err != nil {
		return "", false, err
	}
	if tr.eval.IsAdditive(v) {
		body = `\left(` + body + `\right)`
	}

	parts := make([]string, 3)
	for i, e := range bounds.Elems {
		parts[i], err = tr.node(t, e)
		if err != nil {
			return "", false, err
		}
	}

	cmd := `\sum`
	if n.Fn.Name == "Product" {
		cmd = `\prod`
	}
	return fmt.Sprintf(`%s_{%s=%s}^{%s} %s`, cmd, parts[0], parts[1], parts[2], body), true, nil
}

func (tr *Translator) subscripted(t *syntax.Tree, n *syntax.Call, letter string) (string, error) {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		s, err := tr.node(t, a)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return letter + "_{" + strings.Join(parts, ", ") + "}", nil
}

// genericCall delegates an unrecognized function to the evaluator. Each
// structural argument is replaced by a fresh marker symbol before the call
// text is reassembled, so the evaluator renders the application shape while
// the translator keeps control of how the arguments themselves look. The
// markers are substituted back in descending order: marker 10 shares a
// prefix with marker 1 and must be replaced first.
func (tr *Translator) genericCall(t *syntax.Tree, n *syntax.Call) (string, error) {
	type marker struct {
		name     string
		rendered string
	}
	var markers []marker
	argTexts := make([]string, len(n.Args))
	for i, a := range n.Args {
		v, err := tr.eval.Parse(t.Text(a))
		if err != nil {
			return "", err
		}
		if !tr.eval.IsExpression(v) {
			argTexts[i] = v.String()
			continue
		}
		rendered, err := tr.node(t, a)
		if err != nil {
			return "", err
		}
		name := fmt.Sprintf("%s%d", dummyPrefix, i)
		markers = append(markers, marker{name: name, rendered: rendered})
		argTexts[i] = name
	}

	assembled := n.Fn.Name + "(" + strings.Join(argTexts, ",") + ")"
	v, err := tr.eval.Parse(assembled)
	if err != nil {
		return "", err
	}
	out := tr.eval.LaTeX(v)
	for i := len(markers) - 1; i >= 0; i-- {
		out = strings.ReplaceAll(out, markers[i].name, markers[i].rendered)
	}
	return out, nil
}

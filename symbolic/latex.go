package symbolic

import "strings"

// Default LaTeX forms for the expression variants. Symbols print verbatim,
// so a caller may embed marker names and recover them from the output
// untouched.

func (n *Num) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return "\\frac{" + n.val.Num().String() + "}{" + n.val.Denom().String() + "}"
}

func (s *Sym) LaTeX() string { return s.name }

func (a *Add) LaTeX() string {
	if len(a.terms) == 0 {
		return "0"
	}
	var b strings.Builder
	for i, t := range a.terms {
		neg, abs := splitNegative(t)
		if i == 0 {
			if neg {
				b.WriteString("-")
			}
		} else if neg {
			b.WriteString(" - ")
		} else {
			b.WriteString(" + ")
		}
		b.WriteString(abs.LaTeX())
	}
	return b.String()
}

// splitNegative peels a leading negative numeric coefficient off a term so
// sums print "a - b" instead of "a + -1 b".
func splitNegative(e Expr) (bool, Expr) {
	switch v := e.(type) {
	case *Num:
		if v.IsNegative() {
			return true, numNeg(v)
		}
	case *Mul:
		if len(v.factors) > 0 {
			if c, ok := v.factors[0].(*Num); ok && c.IsNegative() {
				rest := make([]Expr, 0, len(v.factors))
				if !c.IsNegOne() {
					rest = append(rest, numNeg(c))
				}
				rest = append(rest, v.factors[1:]...)
				if len(rest) == 1 {
					return true, rest[0]
				}
				return true, &Mul{factors: rest}
			}
		}
	}
	return false, e
}

func (m *Mul) LaTeX() string {
	if len(m.factors) == 0 {
		return "1"
	}
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		if _, isAdd := f.(*Add); isAdd {
			parts[i] = "\\left(" + f.LaTeX() + "\\right)"
		} else {
			parts[i] = f.LaTeX()
		}
	}
	return strings.Join(parts, " ")
}

func (p *Pow) LaTeX() string {
	baseStr := p.base.LaTeX()
	switch b := p.base.(type) {
	case *Add, *Mul, *Pow:
		baseStr = "\\left(" + baseStr + "\\right)"
	case *Num:
		if b.IsNegative() || !b.IsInteger() {
			baseStr = "\\left(" + baseStr + "\\right)"
		}
	}
	return baseStr + "^{" + p.exp.LaTeX() + "}"
}

// latexNames maps recognized function names to their LaTeX commands.
var latexNames = map[string]string{
	"sin": "\\sin", "cos": "\\cos", "tan": "\\tan",
	"asin": "\\arcsin", "acos": "\\arccos", "atan": "\\arctan",
	"sinh": "\\sinh", "cosh": "\\cosh", "tanh": "\\tanh",
	"exp": "\\exp", "ln": "\\ln", "log": "\\log",
}

func (f *Func) LaTeX() string {
	arg := func(i int) string { return f.args[i].LaTeX() }
	joined := func() string {
		parts := make([]string, len(f.args))
		for i := range f.args {
			parts[i] = arg(i)
		}
		return strings.Join(parts, ", ")
	}

	if cmd, ok := latexNames[f.name]; ok && len(f.args) == 1 {
		return cmd + "\\left(" + arg(0) + "\\right)"
	}
	switch f.name {
	case "abs":
		if len(f.args) == 1 {
			return "\\left|" + arg(0) + "\\right|"
		}
	case "sqrt":
		if len(f.args) == 1 {
			return "\\sqrt{" + arg(0) + "}"
		}
	case "floor":
		if len(f.args) == 1 {
			return "\\left\\lfloor " + arg(0) + "\\right\\rfloor"
		}
	case "ceil":
		if len(f.args) == 1 {
			return "\\left\\lceil " + arg(0) + "\\right\\rceil"
		}
	case "binomial":
		if len(f.args) == 2 {
			return "\\binom{" + arg(0) + "}{" + arg(1) + "}"
		}
	case "fibonacci":
		return "F_{" + joined() + "}"
	case "lucas":
		return "L_{" + joined() + "}"
	case "Mod":
		if len(f.args) == 2 {
			return arg(0) + " \\bmod " + arg(1)
		}
	}
	return "\\operatorname{" + f.name + "}\\left(" + joined() + "\\right)"
}

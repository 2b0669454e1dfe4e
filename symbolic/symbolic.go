// Package symbolic is a small deterministic symbolic math kernel: exact
// rational arithmetic over math/big, canonical simplification with stable
// term ordering, and a default LaTeX printer.
//
// The kernel canonicalizes aggressively — products are sorted, numeric
// terms are folded, x/y becomes x*y**-1 — which is exactly why callers that
// care about presentation render structure themselves and hand the kernel
// only opaque atoms.
package symbolic

import (
	"math/big"
	"sort"
	"strings"
)

// Val is anything the kernel can parse and print: structural expressions
// plus literal container forms (tuples, lists, matrices).
type Val interface {
	String() string
	LaTeX() string
}

// Expr is a structural mathematical expression. Container forms like Tuple
// are Vals but not Exprs.
type Expr interface {
	Val
	Simplify() Expr
	Equal(other Expr) bool
	expr()
}

// IsExpr reports whether v is a structural expression.
func IsExpr(v Val) bool {
	_, ok := v.(Expr)
	return ok
}

// IsAdd reports whether v is additive at top level.
func IsAdd(v Val) bool {
	_, ok := v.(*Add)
	return ok
}

// String renders a value in the surface syntax the kernel itself parses.
func String(v Val) string { return v.String() }

// LaTeX renders a value in the kernel's default LaTeX form.
func LaTeX(v Val) string { return v.LaTeX() }

// ============================================================
// Num — exact rational number
// ============================================================

type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }
func F(p, q int64) *Num {
	if q == 0 {
		panic("symbolic: denominator is zero")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

func (n *Num) Simplify() Expr { return n }
func (n *Num) expr()          {}
func (n *Num) Equal(other Expr) bool {
	o, ok := other.(*Num)
	return ok && n.val.Cmp(o.val) == 0
}
func (n *Num) IsZero() bool     { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool      { return n.val.Cmp(ratOne) == 0 }
func (n *Num) IsNegOne() bool   { return n.val.Cmp(ratNegOne) == 0 }
func (n *Num) IsInteger() bool  { return n.val.IsInt() }
func (n *Num) IsNegative() bool { return n.val.Sign() < 0 }
func (n *Num) Rat() *big.Rat    { return new(big.Rat).Set(n.val) }

var (
	ratOne    = new(big.Rat).SetInt64(1)
	ratNegOne = new(big.Rat).SetInt64(-1)
)

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numNeg(a *Num) *Num    { return &Num{val: new(big.Rat).Neg(a.val)} }
func numRecip(a *Num) *Num {
	if a.IsZero() {
		panic("symbolic: division by zero")
	}
	return &Num{val: new(big.Rat).Inv(a.val)}
}

// intArg extracts a non-negative integer argument for the combinatorial
// evaluations, rejecting anything large enough to be a foot-gun.
func intArg(v Val) (int64, bool) {
	n, ok := v.(*Num)
	if !ok || !n.val.IsInt() || !n.val.Num().IsInt64() {
		return 0, false
	}
	i := n.val.Num().Int64()
	if i < 0 || i > 10000 {
		return 0, false
	}
	return i, true
}

// ============================================================
// Sym — symbolic variable
// ============================================================

type Sym struct{ name string }

func S(name string) *Sym { return &Sym{name: name} }

func (s *Sym) Simplify() Expr { return s }
func (s *Sym) expr()          {}
func (s *Sym) String() string { return s.name }
func (s *Sym) Name() string   { return s.name }
func (s *Sym) Equal(other Expr) bool {
	o, ok := other.(*Sym)
	return ok && s.name == o.name
}

// ============================================================
// Add — sum of terms
// ============================================================

type Add struct{ terms []Expr }

func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}
	numAccum := N(0)
	symCoeffs := map[string]*Num{}
	symOrder := []string{}
	others := []Expr{}
	addCoeff := func(name string, c *Num) {
		if _, seen := symCoeffs[name]; !seen {
			symOrder = append(symOrder, name)
			symCoeffs[name] = N(0)
		}
		symCoeffs[name] = numAdd(symCoeffs[name], c)
	}
	for _, t := range flat {
		switch v := t.(type) {
		case *Num:
			numAccum = numAdd(numAccum, v)
		case *Sym:
			addCoeff(v.name, N(1))
		case *Mul:
			// coeff*sym terms combine with bare symbols, so x - x is 0.
			if len(v.factors) == 2 {
				c, okc := v.factors[0].(*Num)
				s, oks := v.factors[1].(*Sym)
				if okc && oks {
					addCoeff(s.name, c)
					continue
				}
			}
			others = append(others, t)
		default:
			others = append(others, t)
		}
	}
	result := []Expr{}
	sort.Strings(symOrder)
	for _, name := range symOrder {
		coeff := symCoeffs[name]
		if coeff.IsZero() {
			continue
		}
		if coeff.IsOne() {
			result = append(result, S(name))
		} else {
			result = append(result, MulOf(coeff, S(name)))
		}
	}
	result = append(result, others...)
	if !numAccum.IsZero() {
		result = append(result, numAccum)
	}
	if len(result) == 0 {
		return N(0)
	}
	if len(result) == 1 {
		return result[0]
	}
	return &Add{terms: result}
}

func (a *Add) expr() {}

func (a *Add) String() string {
	if len(a.terms) == 0 {
		return "0"
	}
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

func (a *Add) Terms() []Expr { return a.terms }

// ============================================================
// Mul — product of factors
// ============================================================

type Mul struct{ factors []Expr }

func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}
	coeff := N(1)
	others := []Expr{}
	for _, f := range flat {
		if v, ok := f.(*Num); ok {
			coeff = numMul(coeff, v)
		} else {
			others = append(others, f)
		}
	}
	if coeff.IsZero() {
		return N(0)
	}
	if len(others) == 0 {
		return coeff
	}

	// Factors sort by their printed form, which fixes a stable order.
	type keyed struct {
		e   Expr
		key string
	}
	ks := make([]keyed, len(others))
	for i, e := range others {
		ks[i] = keyed{e: e, key: e.String()}
	}
	sort.Slice(ks, func(i, j int) bool { return ks[i].key < ks[j].key })
	sorted := make([]Expr, len(ks))
	for i := range ks {
		sorted[i] = ks[i].e
	}
	others = sorted

	if coeff.IsOne() {
		if len(others) == 1 {
			return others[0]
		}
		return &Mul{factors: others}
	}
	return &Mul{factors: append([]Expr{coeff}, others...)}
}

func (m *Mul) expr() {}

func (m *Mul) String() string {
	if len(m.factors) == 0 {
		return "1"
	}
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		if _, isAdd := f.(*Add); isAdd {
			parts[i] = "(" + f.String() + ")"
		} else {
			parts[i] = f.String()
		}
	}
	return strings.Join(parts, "*")
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

func (m *Mul) Factors() []Expr { return m.factors }

// ============================================================
// Pow — base**exponent
// ============================================================

type Pow struct{ base, exp Expr }

func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	// 0**0 is indeterminate and 0**negative divides by zero; both stay
	// unevaluated, as does a zero base under a symbolic exponent.
	if bn, ok := base.(*Num); ok && bn.IsZero() {
		if en, ok2 := exp.(*Num); ok2 && !en.IsZero() && !en.IsNegative() {
			return N(0)
		}
		return &Pow{base: base, exp: exp}
	}

	if en, ok := exp.(*Num); ok && en.IsZero() {
		return N(1)
	}
	if en, ok := exp.(*Num); ok && en.IsOne() {
		return base
	}

	if bn, ok := base.(*Num); ok && bn.IsOne() {
		return N(1)
	}
	if bn, ok := base.(*Num); ok {
		if en, ok2 := exp.(*Num); ok2 && en.IsInteger() && en.val.Num().IsInt64() {
			e := en.val.Num().Int64()
			if e >= 0 && e <= 20 {
				result := N(1)
				for i := int64(0); i < e; i++ {
					result = numMul(result, bn)
				}
				return result
			}
			if e < 0 && e >= -20 {
				result := N(1)
				for i := e; i < 0; i++ {
					result = numMul(result, bn)
				}
				return numRecip(result)
			}
		}
	}
	if inner, ok := base.(*Pow); ok {
		return PowOf(inner.base, MulOf(inner.exp, exp).Simplify())
	}
	return &Pow{base: base, exp: exp}
}

func (p *Pow) expr() {}

func (p *Pow) String() string {
	baseStr := p.base.String()
	switch p.base.(type) {
	case *Add, *Mul, *Pow:
		baseStr = "(" + baseStr + ")"
	}
	expStr := p.exp.String()
	switch p.exp.(type) {
	case *Add, *Mul, *Pow:
		expStr = "(" + expStr + ")"
	}
	return baseStr + "**" + expStr
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

func (p *Pow) Base() Expr     { return p.base }
func (p *Pow) Exponent() Expr { return p.exp }

// ============================================================
// Func — named function application
// ============================================================

// Func is an n-ary function application. Arguments are Vals, not Exprs: a
// call may legitimately take a tuple argument.
type Func struct {
	name string
	args []Val
}

func NewFunc(name string, args ...Val) Expr {
	return (&Func{name: name, args: args}).Simplify()
}

func (f *Func) expr()            {}
func (f *Func) FuncName() string { return f.name }
func (f *Func) Args() []Val      { return f.args }

func (f *Func) Simplify() Expr {
	args := make([]Val, len(f.args))
	for i, a := range f.args {
		if e, ok := a.(Expr); ok {
			args[i] = e.Simplify()
		} else {
			args[i] = a
		}
	}

	// Exact evaluations only. The kernel never falls back to floating
	// point: sqrt(5) stays sqrt(5).
	if out, ok := evalExact(f.name, args); ok {
		return out
	}
	return &Func{name: f.name, args: args}
}

func evalExact(name string, args []Val) (Expr, bool) {
	one := func() (*Num, bool) {
		if len(args) != 1 {
			return nil, false
		}
		n, ok := args[0].(*Num)
		return n, ok
	}
	switch name {
	case "abs":
		if n, ok := one(); ok {
			if n.IsNegative() {
				return numNeg(n), true
			}
			return n, true
		}
	case "sign":
		if n, ok := one(); ok {
			switch n.val.Sign() {
			case 1:
				return N(1), true
			case -1:
				return N(-1), true
			default:
				return N(0), true
			}
		}
	case "floor":
		if n, ok := one(); ok {
			q := new(big.Int).Div(n.val.Num(), n.val.Denom())
			return &Num{val: new(big.Rat).SetInt(q)}, true
		}
	case "ceil":
		if n, ok := one(); ok {
			q := new(big.Int).Div(n.val.Num(), n.val.Denom())
			if !n.val.IsInt() {
				q.Add(q, big.NewInt(1))
			}
			return &Num{val: new(big.Rat).SetInt(q)}, true
		}
	case "sin":
		if n, ok := one(); ok && n.IsZero() {
			return N(0), true
		}
	case "cos":
		if n, ok := one(); ok && n.IsZero() {
			return N(1), true
		}
	case "exp":
		if n, ok := one(); ok && n.IsZero() {
			return N(1), true
		}
	case "ln":
		if n, ok := one(); ok && n.IsOne() {
			return N(0), true
		}
	case "fibonacci":
		if len(args) == 1 {
			if i, ok := intArg(args[0]); ok {
				return &Num{val: new(big.Rat).SetInt(fibInt(i))}, true
			}
		}
	case "lucas":
		if len(args) == 1 {
			if i, ok := intArg(args[0]); ok {
				return &Num{val: new(big.Rat).SetInt(lucasInt(i))}, true
			}
		}
	case "factorial":
		if len(args) == 1 {
			if i, ok := intArg(args[0]); ok {
				return &Num{val: new(big.Rat).SetInt(new(big.Int).MulRange(1, i))}, true
			}
		}
	case "binomial":
		if len(args) == 2 {
			n, ok1 := intArg(args[0])
			k, ok2 := intArg(args[1])
			if ok1 && ok2 {
				return &Num{val: new(big.Rat).SetInt(new(big.Int).Binomial(n, k))}, true
			}
		}
	}
	return nil, false
}

func fibInt(n int64) *big.Int {
	a, b := big.NewInt(0), big.NewInt(1)
	for i := int64(0); i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a
}

func lucasInt(n int64) *big.Int {
	a, b := big.NewInt(2), big.NewInt(1)
	for i := int64(0); i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a
}

func (f *Func) String() string {
	parts := make([]string, len(f.args))
	for i, a := range f.args {
		parts[i] = a.String()
	}
	return f.name + "(" + strings.Join(parts, ", ") + ")"
}

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	if !ok || f.name != o.name || len(f.args) != len(o.args) {
		return false
	}
	for i := range f.args {
		fe, fok := f.args[i].(Expr)
		oe, ook := o.args[i].(Expr)
		if fok && ook {
			if !fe.Equal(oe) {
				return false
			}
			continue
		}
		if f.args[i].String() != o.args[i].String() {
			return false
		}
	}
	return true
}

// Package syntax parses the calculator surface language into an expression
// tree that remembers, for every node, the exact source substring it came
// from. Nothing is simplified or reordered: the tree is a faithful picture
// of what the author wrote.
package syntax

// Op identifies an operator. The set is closed; consumers switch over it
// exhaustively.
type Op int

const (
	OpInvalid Op = iota

	// binary
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpFloorDiv
	OpMod
	OpPow
	OpBitAnd
	OpBitOr
	OpBitXor
	OpLShift
	OpRShift

	// unary
	OpUAdd
	OpUSub
	OpInvert
	OpNot
)

var opNames = map[Op]string{
	OpAdd:      "+",
	OpSub:      "-",
	OpMul:      "*",
	OpDiv:      "/",
	OpFloorDiv: "//",
	OpMod:      "%",
	OpPow:      "**",
	OpBitAnd:   "&",
	OpBitOr:    "|",
	OpBitXor:   "^",
	OpLShift:   "<<",
	OpRShift:   ">>",
	OpUAdd:     "+",
	OpUSub:     "-",
	OpInvert:   "~",
	OpNot:      "not",
}

// String returns the surface spelling of the operator.
func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return "invalid"
}

// Node is an expression tree node. The implementations below are the
// complete set; the interface is sealed so a type switch over them cannot
// silently miss a variant added elsewhere.
type Node interface {
	// Pos and End are byte offsets of the node's source span. The span of
	// a parenthesized expression includes the parentheses, so Tree.Text
	// always returns a fragment that re-parses to the same tree.
	Pos() int
	End() int
	setSpan(pos, end int)
	node()
}

// Ident is a bound name.
type Ident struct {
	Name     string
	pos, end int
}

// Literal is a numeric literal. Value is the raw source text, preserved
// verbatim.
type Literal struct {
	Value    string
	pos, end int
}

// Unary is the application of a unary operator.
type Unary struct {
	Op       Op
	Operand  Node
	pos, end int
}

// Binary is the application of a binary operator.
type Binary struct {
	Op          Op
	Left, Right Node
	pos, end    int
}

// Call is a function or constructor application. The callee is always a
// plain identifier.
type Call struct {
	Fn       *Ident
	Args     []Node
	pos, end int
}

// Tuple is a parenthesized group of two or more comma-separated
// expressions. A parenthesized single expression is not a Tuple; the
// parentheses are transparent.
type Tuple struct {
	Elems    []Node
	pos, end int
}

// List is a bracketed sequence of expressions.
type List struct {
	Elems    []Node
	pos, end int
}

func (n *Ident) Pos() int   { return n.pos }
func (n *Ident) End() int   { return n.end }
func (n *Literal) Pos() int { return n.pos }
func (n *Literal) End() int { return n.end }
func (n *Unary) Pos() int   { return n.pos }
func (n *Unary) End() int   { return n.end }
func (n *Binary) Pos() int  { return n.pos }
func (n *Binary) End() int  { return n.end }
func (n *Call) Pos() int    { return n.pos }
func (n *Call) End() int    { return n.end }
func (n *Tuple) Pos() int   { return n.pos }
func (n *Tuple) End() int   { return n.end }
func (n *List) Pos() int    { return n.pos }
func (n *List) End() int    { return n.end }

func (n *Ident) setSpan(pos, end int)   { n.pos, n.end = pos, end }
func (n *Literal) setSpan(pos, end int) { n.pos, n.end = pos, end }
func (n *Unary) setSpan(pos, end int)   { n.pos, n.end = pos, end }
func (n *Binary) setSpan(pos, end int)  { n.pos, n.end = pos, end }
func (n *Call) setSpan(pos, end int)    { n.pos, n.end = pos, end }
func (n *Tuple) setSpan(pos, end int)   { n.pos, n.end = pos, end }
func (n *List) setSpan(pos, end int)    { n.pos, n.end = pos, end }

func (*Ident) node()   {}
func (*Literal) node() {}
func (*Unary) node()   {}
func (*Binary) node()  {}
func (*Call) node()    {}
func (*Tuple) node()   {}
func (*List) node()    {}

// Tree is a parsed expression together with its source text.
type Tree struct {
	Source string
	Root   Node
}

// Text returns the exact original substring the node was parsed from.
func (t *Tree) Text(n Node) string {
	return t.Source[n.Pos():n.End()]
}

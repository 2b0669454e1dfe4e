package syntax

import "fmt"

// Parse reads a single expression from src and returns it with its source
// attached. Trailing input after the expression is an error.
func Parse(src string) (*Tree, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	root, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if p.cur().Type != TokenEOF {
		return nil, p.unexpected(p.cur())
	}
	return &Tree{Source: src, Root: root}, nil
}

type parser struct {
	src  string
	toks []Token
	pos  int
}

func (p *parser) cur() Token { return p.toks[p.pos] }
func (p *parser) advance()   { p.pos++ }

func (p *parser) unexpected(tok Token) error {
	if tok.Type == TokenEOF {
		return fmt.Errorf("syntax: unexpected end of expression [%s]", p.src)
	}
	return fmt.Errorf("syntax: unexpected %q at offset %d in expression [%s]", tok.Text, tok.Index, p.src)
}

// Binding powers, loosest to tightest. Prefix operators sit between the
// multiplicative level and ** so that -x**2 parses as -(x**2) while -x*y
// parses as (-x)*y.
const (
	bpNot    = 4
	bpOr     = 10
	bpXor    = 20
	bpAnd    = 30
	bpShift  = 40
	bpAddSub = 50
	bpMulDiv = 60
	bpPrefix = 65
	bpPow    = 80
)

var binaryOps = map[string]struct {
	op Op
	bp int
}{
	"|":  {OpBitOr, bpOr},
	"^":  {OpBitXor, bpXor},
	"&":  {OpBitAnd, bpAnd},
	"<<": {OpLShift, bpShift},
	">>": {OpRShift, bpShift},
	"+":  {OpAdd, bpAddSub},
	"-":  {OpSub, bpAddSub},
	"*":  {OpMul, bpMulDiv},
	"/":  {OpDiv, bpMulDiv},
	"//": {OpFloorDiv, bpMulDiv},
	"%":  {OpMod, bpMulDiv},
	"**": {OpPow, bpPow},
}

var prefixOps = map[string]struct {
	op Op
	bp int
}{
	"+":   {OpUAdd, bpPrefix},
	"-":   {OpUSub, bpPrefix},
	"~":   {OpInvert, bpPrefix},
	"not": {OpNot, bpNot},
}

func (p *parser) parseExpr(minBP int) (Node, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.cur()
		if tok.Type != TokenOperator {
			return left, nil
		}
		info, ok := binaryOps[tok.Text]
		if !ok || info.bp <= minBP {
			return left, nil
		}
		p.advance()
		rightBP := info.bp
		if info.op == OpPow { // right associative
			rightBP--
		}
		right, err := p.parseExpr(rightBP)
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: info.op, Left: left, Right: right, pos: left.Pos(), end: right.End()}
	}
}

func (p *parser) parsePrefix() (Node, error) {
	tok := p.cur()
	if tok.Type == TokenOperator {
		info, ok := prefixOps[tok.Text]
		if !ok {
			return nil, p.unexpected(tok)
		}
		p.advance()
		operand, err := p.parseExpr(info.bp)
		if err != nil {
			return nil, err
		}
		return &Unary{Op: info.op, Operand: operand, pos: tok.Index, end: operand.End()}, nil
	}
	return p.parseAtom()
}

func (p *parser) parseAtom() (Node, error) {
	tok := p.cur()
	switch tok.Type {
	case TokenNumber:
		p.advance()
		return &Literal{Value: tok.Text, pos: tok.Index, end: tok.End}, nil

	case TokenIdent:
		p.advance()
		id := &Ident{Name: tok.Text, pos: tok.Index, end: tok.End}
		if p.cur().Type == TokenPunct && p.cur().Text == "(" {
			return p.parseCall(id)
		}
		return id, nil

	case TokenPunct:
		switch tok.Text {
		case "(":
			return p.parseGroup(tok)
		case "[":
			return p.parseList(tok)
		}
	}
	return nil, p.unexpected(tok)
}

func (p *parser) parseCall(fn *Ident) (Node, error) {
	p.advance() // consume (
	call := &Call{Fn: fn, pos: fn.Pos()}
	if p.cur().Type == TokenPunct && p.cur().Text == ")" {
		call.end = p.cur().End
		p.advance()
		return call, nil
	}
	for {
		arg, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
		tok := p.cur()
		if tok.Type != TokenPunct {
			return nil, p.unexpected(tok)
		}
		switch tok.Text {
		case ",":
			p.advance()
		case ")":
			call.end = tok.End
			p.advance()
			return call, nil
		default:
			return nil, p.unexpected(tok)
		}
	}
}

// parseGroup handles a parenthesized expression. A single expression keeps
// its own span (the parentheses are transparent); two or more elements form
// a Tuple spanning the parentheses.
func (p *parser) parseGroup(open Token) (Node, error) {
	p.advance() // consume (
	first, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	tok := p.cur()
	if tok.Type == TokenPunct && tok.Text == ")" {
		p.advance()
		// The parentheses are transparent in the tree but stay part of
		// the span, so the node's source text remains self-contained.
		first.setSpan(open.Index, tok.End)
		return first, nil
	}
	tuple := &Tuple{Elems: []Node{first}, pos: open.Index}
	for {
		tok = p.cur()
		if tok.Type != TokenPunct || tok.Text != "," {
			return nil, p.unexpected(tok)
		}
		p.advance()
		elem, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		tuple.Elems = append(tuple.Elems, elem)
		if t := p.cur(); t.Type == TokenPunct && t.Text == ")" {
			tuple.end = t.End
			p.advance()
			return tuple, nil
		}
	}
}

func (p *parser) parseList(open Token) (Node, error) {
	p.advance() // consume [
	list := &List{pos: open.Index}
	if t := p.cur(); t.Type == TokenPunct && t.Text == "]" {
		list.end = t.End
		p.advance()
		return list, nil
	}
	for {
		elem, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		list.Elems = append(list.Elems, elem)
		tok := p.cur()
		if tok.Type != TokenPunct {
			return nil, p.unexpected(tok)
		}
		switch tok.Text {
		case ",":
			p.advance()
		case "]":
			list.end = tok.End
			p.advance()
			return list, nil
		default:
			return nil, p.unexpected(tok)
		}
	}
}

package symbolic

import (
	"fmt"
	"math/big"

	"verbatex/syntax"
)

// Parse reads an expression in the surface syntax and returns its canonical
// kernel form. Arithmetic is normalized on the way in: subtraction becomes
// addition of a negated term, division becomes multiplication by an inverse
// power, and the result is simplified.
func Parse(text string) (Val, error) {
	tree, err := syntax.Parse(text)
	if err != nil {
		return nil, err
	}
	return lower(tree.Root)
}

// ParseExpr is Parse restricted to structural expressions.
func ParseExpr(text string) (Expr, error) {
	v, err := Parse(text)
	if err != nil {
		return nil, err
	}
	e, ok := v.(Expr)
	if !ok {
		return nil, fmt.Errorf("symbolic: %s is not a structural expression", v.String())
	}
	return e, nil
}

func lower(n syntax.Node) (Val, error) {
	switch n := n.(type) {
	case *syntax.Ident:
		return S(n.Name), nil

	case *syntax.Literal:
		rat, ok := new(big.Rat).SetString(n.Value)
		if !ok {
			return nil, fmt.Errorf("symbolic: bad numeric literal %q", n.Value)
		}
		return &Num{val: rat}, nil

	case *syntax.Unary:
		x, err := lowerExpr(n.Operand)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case syntax.OpUAdd:
			return x, nil
		case syntax.OpUSub:
			return MulOf(N(-1), x), nil
		case syntax.OpInvert:
			return NewFunc("invert", x), nil
		case syntax.OpNot:
			return NewFunc("not", x), nil
		}
		return nil, fmt.Errorf("symbolic: unary operator %s", n.Op)

	case *syntax.Binary:
		l, err := lowerExpr(n.Left)
		if err != nil {
			return nil, err
		}
		r, err := lowerExpr(n.Right)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case syntax.OpAdd:
			return AddOf(l, r), nil
		case syntax.OpSub:
			return AddOf(l, MulOf(N(-1), r)), nil
		case syntax.OpMul:
			return MulOf(l, r), nil
		case syntax.OpDiv:
			return MulOf(l, PowOf(r, N(-1))), nil
		case syntax.OpFloorDiv:
			return NewFunc("floor", MulOf(l, PowOf(r, N(-1)))), nil
		case syntax.OpMod:
			return NewFunc("Mod", l, r), nil
		case syntax.OpPow:
			return PowOf(l, r), nil
		case syntax.OpBitAnd:
			return NewFunc("and", l, r), nil
		case syntax.OpBitOr:
			return NewFunc("or", l, r), nil
		case syntax.OpBitXor:
			return NewFunc("xor", l, r), nil
		case syntax.OpLShift:
			return NewFunc("shiftLeft", l, r), nil
		case syntax.OpRShift:
			return NewFunc("shiftRight", l, r), nil
		}
		return nil, fmt.Errorf("symbolic: binary operator %s", n.Op)

	case *syntax.Call:
		if n.Fn.Name == "Matrix" && len(n.Args) == 1 {
			if rows, ok := n.Args[0].(*syntax.List); ok {
				return lowerMatrix(rows)
			}
		}
		args := make([]Val, len(n.Args))
		for i, a := range n.Args {
			v, err := lower(a)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return NewFunc(n.Fn.Name, args...), nil

	case *syntax.Tuple:
		elems, err := lowerAll(n.Elems)
		if err != nil {
			return nil, err
		}
		return NewTuple(elems...), nil

	case *syntax.List:
		elems, err := lowerAll(n.Elems)
		if err != nil {
			return nil, err
		}
		return NewList(elems...), nil
	}
	return nil, fmt.Errorf("symbolic: unhandled node %T", n)
}

func lowerExpr(n syntax.Node) (Expr, error) {
	v, err := lower(n)
	if err != nil {
		return nil, err
	}
	e, ok := v.(Expr)
	if !ok {
		return nil, fmt.Errorf("symbolic: %s is not a structural expression", v.String())
	}
	return e, nil
}

func lowerAll(nodes []syntax.Node) ([]Val, error) {
	elems := make([]Val, len(nodes))
	for i, n := range nodes {
		v, err := lower(n)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return elems, nil
}

func lowerMatrix(rows *syntax.List) (Val, error) {
	grid := make([][]Expr, len(rows.Elems))
	for i, r := range rows.Elems {
		row, ok := r.(*syntax.List)
		if !ok {
			return nil, fmt.Errorf("symbolic: matrix row %d is not a list", i)
		}
		grid[i] = make([]Expr, len(row.Elems))
		for j, entry := range row.Elems {
			e, err := lowerExpr(entry)
			if err != nil {
				return nil, err
			}
			grid[i][j] = e
		}
	}
	return NewMatrix(grid)
}

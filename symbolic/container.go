package symbolic

import (
	"errors"
	"strings"
)

var (
	errEmptyMatrix  = errors.New("symbolic: matrix has no entries")
	errRaggedMatrix = errors.New("symbolic: matrix rows have unequal length")
)

// Tuple is a parenthesized, comma-separated sequence of values. It is a Val
// but not an Expr: tuples carry structure, they do not participate in
// arithmetic.
type Tuple struct{ elems []Val }

func NewTuple(elems ...Val) *Tuple { return &Tuple{elems: elems} }

func (t *Tuple) Elems() []Val { return t.elems }

func (t *Tuple) String() string {
	parts := make([]string, len(t.elems))
	for i, e := range t.elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t *Tuple) LaTeX() string {
	parts := make([]string, len(t.elems))
	for i, e := range t.elems {
		parts[i] = e.LaTeX()
	}
	return "\\left(" + strings.Join(parts, ", ") + "\\right)"
}

// List is a bracketed sequence of values.
type List struct{ elems []Val }

func NewList(elems ...Val) *List { return &List{elems: elems} }

func (l *List) Elems() []Val { return l.elems }

func (l *List) String() string {
	parts := make([]string, len(l.elems))
	for i, e := range l.elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (l *List) LaTeX() string {
	parts := make([]string, len(l.elems))
	for i, e := range l.elems {
		parts[i] = e.LaTeX()
	}
	return "\\left[" + strings.Join(parts, ", ") + "\\right]"
}

// Matrix is a rectangular grid of expressions. Like Tuple it is a plain Val.
type Matrix struct {
	rows, cols int
	entries    []Expr
}

// NewMatrix builds a matrix from row slices. All rows must be the same
// length and non-empty.
func NewMatrix(rows [][]Expr) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errEmptyMatrix
	}
	cols := len(rows[0])
	entries := make([]Expr, 0, len(rows)*cols)
	for _, row := range rows {
		if len(row) != cols {
			return nil, errRaggedMatrix
		}
		for _, e := range row {
			entries = append(entries, e.Simplify())
		}
	}
	return &Matrix{rows: len(rows), cols: cols, entries: entries}, nil
}

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

func (m *Matrix) Get(i, j int) Expr {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic("symbolic: matrix index out of range")
	}
	return m.entries[i*m.cols+j]
}

func (m *Matrix) String() string {
	var b strings.Builder
	b.WriteString("Matrix([")
	for i := 0; i < m.rows; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("[")
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(m.Get(i, j).String())
		}
		b.WriteString("]")
	}
	b.WriteString("])")
	return b.String()
}

func (m *Matrix) LaTeX() string {
	var b strings.Builder
	b.WriteString("\\begin{pmatrix}")
	for i := 0; i < m.rows; i++ {
		if i > 0 {
			b.WriteString(" \\\\ ")
		}
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				b.WriteString(" & ")
			}
			b.WriteString(m.Get(i, j).LaTeX())
		}
	}
	b.WriteString("\\end{pmatrix}")
	return b.String()
}

package verbatex

import "verbatex/symbolic"

// Value is an opaque result produced by an Evaluator. The translator only
// ever asks it to print itself.
type Value interface {
	String() string
}

// Evaluator is the narrow capability surface the translator needs from a
// symbolic backend: parse a source fragment, classify the result, and
// render it in the backend's default LaTeX form. Anything implementing
// these four methods can stand in for the kernel, which the tests use to
// observe exactly what the translator hands the backend.
type Evaluator interface {
	Parse(text string) (Value, error)
	IsExpression(v Value) bool
	IsAdditive(v Value) bool
	LaTeX(v Value) string
}

// DefaultEvaluator backs the translator with the symbolic kernel.
type DefaultEvaluator struct{}

func (DefaultEvaluator) Parse(text string) (Value, error) {
	v, err := symbolic.Parse(text)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (DefaultEvaluator) IsExpression(v Value) bool {
	sv, ok := v.(symbolic.Val)
	return ok && symbolic.IsExpr(sv)
}

func (DefaultEvaluator) IsAdditive(v Value) bool {
	sv, ok := v.(symbolic.Val)
	return ok && symbolic.IsAdd(sv)
}

func (DefaultEvaluator) LaTeX(v Value) string {
	if sv, ok := v.(symbolic.Val); ok {
		return sv.LaTeX()
	}
	return v.String()
}

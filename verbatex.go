// Package verbatex renders arithmetic source expressions as LaTeX while
// preserving the structure the author wrote. 3-(1+2)/5 comes out as
// 3-\frac{1+2}{5}, not as the simplified value a symbolic engine would
// produce. The symbolic kernel is consulted only where structure is opaque:
// classifying summation bodies and rendering unrecognized function
// applications.
package verbatex

import (
	"errors"
	"fmt"
	"strings"

	"verbatex/syntax"
)

// ErrUnsupported marks constructs that parse but have no presentation
// form, such as a tuple outside call arguments.
var ErrUnsupported = errors.New("unsupported construct")

// dummyPrefix names the marker symbols substituted for structural call
// arguments while a function application is delegated to the evaluator.
// Input containing the prefix is rejected up front so a marker can never
// collide with a user symbol.
const dummyPrefix = "verbatexdummyvar"

// Render translates a source expression using the symbolic kernel as
// evaluator.
func Render(src string) (string, error) {
	return NewTranslator(nil).Render(src)
}

// Render parses src and translates it to LaTeX.
func (tr *Translator) Render(src string) (string, error) {
	if strings.Contains(src, dummyPrefix) {
		return "", fmt.Errorf("input contains reserved name %q", dummyPrefix)
	}
	t, err := syntax.Parse(src)
	if err != nil {
		return "", err
	}
	out, err := tr.Translate(t)
	if err != nil {
		return "", err
	}
	return cleanup(out), nil
}

// cleanup collapses the hard parentheses an exponent base carries when the
// base was already wrapped by precedence grouping. Applying it twice
// changes nothing.
func cleanup(s string) string {
	s = strings.ReplaceAll(s, `(\left(`, `\left(`)
	s = strings.ReplaceAll(s, `\right))`, `\right)`)
	return s
}

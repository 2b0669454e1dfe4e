package syntax

import (
	"fmt"
	"strings"
)

// TokenType classifies a lexed token.
type TokenType int

const (
	TokenIdent TokenType = iota
	TokenNumber
	TokenOperator
	TokenPunct
	TokenEOF
)

// Token is a lexed token together with the byte span it was read from.
// Index and End are offsets into the original input, so Text always equals
// input[Index:End] for identifiers, numbers and operators.
type Token struct {
	Index int
	End   int
	Type  TokenType
	Text  string
}

// Tokenize splits src into tokens. It returns an error for any character
// that has no meaning in the expression language.
func Tokenize(src string) ([]Token, error) {
	s := &scanner{input: src, length: len(src), index: -1}
	s.advance()
	var tokens []Token
	for {
		tok, err := s.scanToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

const eof rune = -1

type scanner struct {
	input  string
	length int
	peek   rune
	index  int
}

func newToken(index, end int, typ TokenType, text string) Token {
	return Token{Index: index, End: end, Type: typ, Text: text}
}

func (s *scanner) advance() {
	s.index++
	if s.index >= s.length {
		s.peek = eof
	} else {
		s.peek = rune(s.input[s.index])
	}
}

func (s *scanner) scanToken() (Token, error) {
	for s.peek != eof && s.peek <= ' ' {
		s.advance()
	}
	if s.peek == eof {
		return newToken(s.length, s.length, TokenEOF, ""), nil
	}

	start := s.index
	switch {
	case isIdentifierStart(s.peek):
		return s.scanIdentifier(start), nil
	case isDigit(s.peek):
		return s.scanNumber(start)
	}

	switch s.peek {
	case '.':
		s.advance()
		if isDigit(s.peek) {
			return s.scanNumber(start)
		}
		return Token{}, s.errorf(start, "unexpected character %q", '.')
	case '(', ')', '[', ']', ',':
		ch := s.peek
		s.advance()
		return newToken(start, s.index, TokenPunct, string(ch)), nil
	case '+', '-', '%', '&', '|', '^', '~':
		ch := s.peek
		s.advance()
		return newToken(start, s.index, TokenOperator, string(ch)), nil
	case '*':
		return s.scanDoubled(start, '*'), nil
	case '/':
		return s.scanDoubled(start, '/'), nil
	case '<':
		return s.scanShift(start, '<')
	case '>':
		return s.scanShift(start, '>')
	}

	return Token{}, s.errorf(start, "unexpected character %q", s.peek)
}

// scanDoubled handles the operators that exist in single and doubled form:
// * and **, / and //.
func (s *scanner) scanDoubled(start int, ch rune) Token {
	s.advance()
	op := string(ch)
	if s.peek == ch {
		s.advance()
		op += string(ch)
	}
	return newToken(start, s.index, TokenOperator, op)
}

// scanShift accepts << and >>; a lone < or > is not part of the language.
func (s *scanner) scanShift(start int, ch rune) (Token, error) {
	s.advance()
	if s.peek != ch {
		return Token{}, s.errorf(start, "unexpected character %q", ch)
	}
	s.advance()
	return newToken(start, s.index, TokenOperator, strings.Repeat(string(ch), 2)), nil
}

func (s *scanner) scanIdentifier(start int) Token {
	s.advance()
	for isIdentifierPart(s.peek) {
		s.advance()
	}
	str := s.input[start:s.index]
	if str == "not" {
		return newToken(start, s.index, TokenOperator, str)
	}
	return newToken(start, s.index, TokenIdent, str)
}

// scanNumber reads an integer or decimal literal, optionally with an
// exponent. The raw text is preserved; no numeric conversion happens here.
func (s *scanner) scanNumber(start int) (Token, error) {
	seenDot := s.input[start] == '.'
	for {
		switch {
		case isDigit(s.peek):
			s.advance()
		case s.peek == '.':
			if seenDot {
				return Token{}, s.errorf(s.index, "unexpected second decimal point in number")
			}
			seenDot = true
			s.advance()
		case s.peek == 'e' || s.peek == 'E':
			s.advance()
			if s.peek == '+' || s.peek == '-' {
				s.advance()
			}
			if !isDigit(s.peek) {
				return Token{}, s.errorf(s.index, "invalid exponent in number")
			}
			// The exponent is the last part of a literal; a dot after
			// it is as malformed as a second one in the mantissa.
			seenDot = true
		default:
			return newToken(start, s.index, TokenNumber, s.input[start:s.index]), nil
		}
	}
}

func (s *scanner) errorf(pos int, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("syntax: %s at offset %d in expression [%s]", msg, pos, s.input)
}

func isIdentifierStart(c rune) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isIdentifierPart(c rune) bool {
	return isIdentifierStart(c) || isDigit(c)
}

func isDigit(c rune) bool { return '0' <= c && c <= '9' }

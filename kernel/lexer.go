package kernel

import (
	"strings"

	"github.com/rommelDB/PSyclone/report"
)

// Lexer tokenizes a kernel-metadata declaration.  The declaration language
// is free-form: whitespace and line continuations ('&') separate tokens but
// carry no meaning, and '!' starts a comment running to the end of the line.
type Lexer struct {
	src  []rune
	pos  int
	line int
}

// NewLexer creates a lexer over the given declaration text.
func NewLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), line: 1}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return -1
	}
	return l.src[l.pos]
}

func (l *Lexer) skip() {
	if l.pos < len(l.src) {
		if l.src[l.pos] == '\n' {
			l.line++
		}
		l.pos++
	}
}

// NextToken retrieves the next token of the declaration, or an EOF token
// once the input is exhausted.
func (l *Lexer) NextToken() (Token, error) {
	for {
		c := l.peek()
		switch {
		case c == -1:
			return Token{Kind: EOF, Line: l.line}, nil
		case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '&':
			l.skip()
		case c == '!':
			for l.peek() != '\n' && l.peek() != -1 {
				l.skip()
			}
		case c == '(':
			l.skip()
			if l.peek() == '/' {
				l.skip()
				return Token{Kind: ARRAYSTART, Value: "(/", Line: l.line}, nil
			}
			return Token{Kind: LPAREN, Value: "(", Line: l.line}, nil
		case c == '/':
			l.skip()
			if l.peek() == ')' {
				l.skip()
				return Token{Kind: ARRAYEND, Value: "/)", Line: l.line}, nil
			}
			return Token{}, report.Parsef("unexpected character '/' in kernel metadata at line %d", l.line)
		case c == ')':
			l.skip()
			return Token{Kind: RPAREN, Value: ")", Line: l.line}, nil
		case c == ',':
			l.skip()
			return Token{Kind: COMMA, Value: ",", Line: l.line}, nil
		case c == '*':
			l.skip()
			return Token{Kind: STAR, Value: "*", Line: l.line}, nil
		case c == '=':
			l.skip()
			if l.peek() == '>' {
				l.skip()
				return Token{Kind: ARROW, Value: "=>", Line: l.line}, nil
			}
			return Token{Kind: ASSIGN, Value: "=", Line: l.line}, nil
		case c == ':':
			l.skip()
			if l.peek() != ':' {
				return Token{}, report.Parsef("unexpected character ':' in kernel metadata at line %d", l.line)
			}
			l.skip()
			return Token{Kind: DOUBLECOLON, Value: "::", Line: l.line}, nil
		case isDigit(c):
			return l.lexNumber(), nil
		case isIdentStart(c):
			return l.lexIdent(), nil
		default:
			return Token{}, report.Parsef("unexpected character '%c' in kernel metadata at line %d", c, l.line)
		}
	}
}

// lexNumber keeps the raw digit string, including leading zeros, since
// stencil encodings such as '011' are significant digit-for-digit.
func (l *Lexer) lexNumber() Token {
	var sb strings.Builder
	line := l.line
	for isDigit(l.peek()) {
		sb.WriteRune(l.peek())
		l.skip()
	}
	return Token{Kind: NUMBER, Value: sb.String(), Line: line}
}

func (l *Lexer) lexIdent() Token {
	var sb strings.Builder
	line := l.line
	for isIdentStart(l.peek()) || isDigit(l.peek()) {
		sb.WriteRune(l.peek())
		l.skip()
	}
	return Token{Kind: IDENT, Value: sb.String(), Line: line}
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isIdentStart(c rune) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

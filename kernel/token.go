package kernel

// TokenKind enumerates the token kinds of the metadata declaration language.
type TokenKind int

const (
	IDENT TokenKind = iota
	NUMBER

	LPAREN
	RPAREN
	COMMA
	STAR
	ASSIGN
	DOUBLECOLON
	ARROW
	ARRAYSTART // (/
	ARRAYEND   // /)

	EOF
)

func (tk TokenKind) String() string {
	switch tk {
	case IDENT:
		return "identifier"
	case NUMBER:
		return "number"
	case LPAREN:
		return "("
	case RPAREN:
		return ")"
	case COMMA:
		return ","
	case STAR:
		return "*"
	case ASSIGN:
		return "="
	case DOUBLECOLON:
		return "::"
	case ARROW:
		return "=>"
	case ARRAYSTART:
		return "(/"
	case ARRAYEND:
		return "/)"
	case EOF:
		return "end of input"
	default:
		return "unknown"
	}
}

// Token is a single lexeme of a metadata declaration.
type Token struct {
	Kind  TokenKind
	Value string
	Line  int
}

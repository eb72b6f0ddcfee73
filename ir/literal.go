package ir

import (
	"regexp"

	"github.com/rommelDB/PSyclone/report"
	"github.com/rommelDB/PSyclone/symbols"
)

var (
	intLiteralPattern  = regexp.MustCompile(`^[+-]?[0-9]+$`)
	realLiteralPattern = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?$`)
	boolLiteralPattern = regexp.MustCompile(`^(true|false)$`)
)

// Literal is a constant value of scalar type.  The value is kept in its
// textual form.
type Literal struct {
	BaseNode

	Value    string
	Datatype symbols.DataType
}

// NewLiteral creates a literal node, checking the value against the lexical
// form required by the given scalar type.
func NewLiteral(value string, datatype *symbols.ScalarType) (*Literal, error) {
	var pattern *regexp.Regexp
	switch datatype.Intrinsic {
	case symbols.IntegerKind:
		pattern = intLiteralPattern
	case symbols.RealKind:
		pattern = realLiteralPattern
	case symbols.BooleanKind:
		pattern = boolLiteralPattern
	}

	if pattern != nil && !pattern.MatchString(value) {
		return nil, report.Generationf(
			"a literal value '%s' does not conform to the format expected for a %s literal",
			value, datatype.Intrinsic)
	}

	lit := &Literal{Value: value, Datatype: datatype}
	lit.init(lit)
	return lit, nil
}

func (l *Literal) NodeName() string {
	return "Literal"
}

func (l *Literal) ChildValid(position int, child Node) bool {
	return false
}

func (l *Literal) ChildFormat() string {
	return "<LeafNode>"
}

func (l *Literal) dataNode() {}

// -----------------------------------------------------------------------------

// Convenience constructors for the common literal forms used when building
// synthesized expressions.

// IntLiteral creates an integer literal from its textual value.
func IntLiteral(value string) *Literal {
	lit, err := NewLiteral(value, symbols.IntegerType)
	if err != nil {
		panic(err)
	}
	return lit
}

// RealLiteral creates a real literal from its textual value.
func RealLiteral(value string) *Literal {
	lit, err := NewLiteral(value, symbols.RealType)
	if err != nil {
		panic(err)
	}
	return lit
}

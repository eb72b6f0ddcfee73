package access

import (
	"strconv"

	"github.com/rommelDB/PSyclone/ir"
	"github.com/rommelDB/PSyclone/report"
	"github.com/rommelDB/PSyclone/symbols"
)

// SameIndex reports whether two index expressions are structurally
// identical: equal literals, references to the same symbol, or the same
// operation applied to structurally identical operands.  Full ranges
// compare by their three sub-expressions.
func SameIndex(a, b ir.DataNode) bool {
	switch an := a.(type) {
	case *ir.Literal:
		bn, ok := b.(*ir.Literal)
		return ok && an.Value == bn.Value

	case *ir.Reference:
		bn, ok := b.(*ir.Reference)
		return ok && an.Symbol == bn.Symbol

	case *ir.BinaryOperation:
		bn, ok := b.(*ir.BinaryOperation)
		return ok && an.Operator == bn.Operator &&
			SameIndex(an.LHS(), bn.LHS()) && SameIndex(an.RHS(), bn.RHS())

	case *ir.UnaryOperation:
		bn, ok := b.(*ir.UnaryOperation)
		return ok && an.Operator == bn.Operator && SameIndex(an.Operand(), bn.Operand())

	case *ir.Range:
		bn, ok := b.(*ir.Range)
		return ok && SameIndex(an.Start(), bn.Start()) &&
			SameIndex(an.Stop(), bn.Stop()) && SameIndex(an.Step(), bn.Step())

	default:
		return false
	}
}

// AffineIndex is the decomposition of an array-index expression into a base
// symbol plus a literal offset.  Either part may be absent: a bare literal
// index has no symbol, a bare reference has offset zero.
type AffineIndex struct {
	Symbol *symbols.DataSymbol
	Offset int
}

// DecomposeIndex breaks an array-index expression used inside a task region
// into its affine form.  Index forms that would make the dependency clause
// unsound are rejected: a multiplication (or power) of two non-literal
// operands, and an addition or subtraction of two references.
func DecomposeIndex(index ir.DataNode) (AffineIndex, error) {
	switch node := index.(type) {
	case *ir.Literal:
		value, err := strconv.Atoi(node.Value)
		if err != nil {
			return AffineIndex{}, report.Generationf(
				"non-integer literal '%s' used as an index inside a TaskDirective which is not supported",
				node.Value)
		}
		return AffineIndex{Offset: value}, nil

	case *ir.Reference:
		return AffineIndex{Symbol: node.Symbol}, nil

	case *ir.ArrayReference:
		return AffineIndex{}, report.Generationf(
			"ArrayReference object is not allowed to appear in an Array Index expression inside a TaskDirective")

	case *ir.BinaryOperation:
		return decomposeBinop(node)

	case *ir.UnaryOperation:
		inner, err := DecomposeIndex(node.Operand())
		if err != nil {
			return AffineIndex{}, err
		}
		if node.Operator == ir.UnaryMinus {
			if inner.Symbol != nil {
				return AffineIndex{}, report.Generationf(
					"negated Reference used as an index inside a TaskDirective which is not supported")
			}
			inner.Offset = -inner.Offset
		}
		return inner, nil

	default:
		return AffineIndex{}, report.Generationf(
			"'%s' object is not allowed to appear in an Array Index expression inside a TaskDirective",
			index.NodeName())
	}
}

func decomposeBinop(node *ir.BinaryOperation) (AffineIndex, error) {
	if node.Operator != ir.Add && node.Operator != ir.Sub {
		return AffineIndex{}, report.Generationf(
			"Binary Operator of type %s used as an index inside a TaskDirective which is not supported",
			node.Operator)
	}

	lhs, lhsErr := DecomposeIndex(node.LHS())
	if lhsErr != nil {
		return AffineIndex{}, lhsErr
	}
	rhs, rhsErr := DecomposeIndex(node.RHS())
	if rhsErr != nil {
		return AffineIndex{}, rhsErr
	}

	if lhs.Symbol != nil && rhs.Symbol != nil {
		return AffineIndex{}, report.Generationf(
			"Children of BinaryOperation are of types Reference and Reference, expected one Reference and one Literal when used as an index inside a TaskDirective")
	}

	result := AffineIndex{Symbol: lhs.Symbol}
	if rhs.Symbol != nil {
		if node.Operator == ir.Sub {
			// literal - reference does not reduce to symbol + offset.
			return AffineIndex{}, report.Generationf(
				"subtraction of a Reference from a Literal used as an index inside a TaskDirective which is not supported")
		}
		result.Symbol = rhs.Symbol
	}

	if node.Operator == ir.Sub {
		result.Offset = lhs.Offset - rhs.Offset
	} else {
		result.Offset = lhs.Offset + rhs.Offset
	}
	return result, nil
}

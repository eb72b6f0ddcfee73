package ir

import (
	"strconv"

	"github.com/rommelDB/PSyclone/report"
	"github.com/rommelDB/PSyclone/symbols"
)

// Reference is a node referencing a data symbol by identity.
type Reference struct {
	BaseNode

	Symbol *symbols.DataSymbol
}

// NewReference creates a reference to the given symbol.
func NewReference(sym *symbols.DataSymbol) *Reference {
	ref := &Reference{Symbol: sym}
	ref.init(ref)
	return ref
}

func (r *Reference) NodeName() string {
	return "Reference"
}

func (r *Reference) ChildValid(position int, child Node) bool {
	return false
}

func (r *Reference) ChildFormat() string {
	return "<LeafNode>"
}

func (r *Reference) dataNode() {}

// -----------------------------------------------------------------------------

// ArrayReference is an access to one or more elements of an array.  Its
// children are the index expressions, one per declared dimension.
type ArrayReference struct {
	BaseNode

	Symbol *symbols.DataSymbol
}

// NewArrayReference creates an array access.  The symbol must be
// array-typed and the number of index expressions must match the declared
// dimensionality.  Each index is either a DataNode or a Range.
func NewArrayReference(sym *symbols.DataSymbol, indices []DataNode) (*ArrayReference, error) {
	atype, ok := sym.Datatype.(*symbols.ArrayType)
	if !ok {
		return nil, report.Generationf(
			"expecting the symbol '%s' to be an array, not '%s'",
			sym.Name(), sym.Datatype.String())
	}
	if len(indices) != len(atype.Shape) {
		return nil, report.Generationf(
			"the number of indices in the array reference to '%s' must match the declared dimensionality: expected %d but found %d",
			sym.Name(), len(atype.Shape), len(indices))
	}

	ref := &ArrayReference{Symbol: sym}
	ref.init(ref)
	for _, index := range indices {
		if err := ref.AddChild(index); err != nil {
			return nil, err
		}
	}
	return ref, nil
}

func (ar *ArrayReference) NodeName() string {
	return "ArrayReference"
}

func (ar *ArrayReference) ChildValid(position int, child Node) bool {
	return isData(child)
}

func (ar *ArrayReference) ChildFormat() string {
	return "[DataNode | Range]+"
}

func (ar *ArrayReference) dataNode() {}

// Indices returns the index expressions of the access.  An array access
// must always carry at least one index; a childless access indicates the
// tree was built inconsistently.
func (ar *ArrayReference) Indices() ([]DataNode, error) {
	if len(ar.Children()) == 0 {
		return nil, report.Internalf(
			"ArrayReference malformed or incomplete: must have one or more children representing array-index expressions but array '%s' has none",
			ar.Symbol.Name())
	}

	indices := make([]DataNode, len(ar.Children()))
	for i, child := range ar.Children() {
		dn, ok := child.(DataNode)
		if !ok {
			return nil, report.Internalf(
				"ArrayReference malformed or incomplete: child %d of array '%s' is a '%s', not an array-index expression",
				i, ar.Symbol.Name(), child.NodeName())
		}
		indices[i] = dn
	}
	return indices, nil
}

// isBound checks whether the index expression at the given dimension is a
// Range whose start (or stop, for the upper bound) is exactly the query of
// that same bound of this same array at that same dimension.
func (ar *ArrayReference) isBound(dim int, op BinaryOperator) bool {
	children := ar.Children()
	if dim >= len(children) {
		return false
	}

	rng, ok := children[dim].(*Range)
	if !ok {
		return false
	}

	var expr Node
	if op == LBound {
		expr = rng.Start()
	} else {
		expr = rng.Stop()
	}

	binop, ok := expr.(*BinaryOperation)
	if !ok || binop.Operator != op {
		return false
	}

	target, ok := binop.Children()[0].(*Reference)
	if !ok || target.Symbol != ar.Symbol {
		return false
	}

	lit, ok := binop.Children()[1].(*Literal)
	if !ok {
		return false
	}
	return lit.Value == strconv.Itoa(dim+1)
}

// IsLowerBound reports whether the index at the given dimension accesses
// from the array's own lower bound at that dimension.
func (ar *ArrayReference) IsLowerBound(dim int) bool {
	return ar.isBound(dim, LBound)
}

// IsUpperBound reports whether the index at the given dimension accesses up
// to the array's own upper bound at that dimension.
func (ar *ArrayReference) IsUpperBound(dim int) bool {
	return ar.isBound(dim, UBound)
}

// IsFullRange reports whether the index at the given dimension accesses the
// whole of that dimension: lower bound, upper bound, and unit step.  All
// three conditions are checked independently and all three must hold.
func (ar *ArrayReference) IsFullRange(dim int) bool {
	if !ar.IsLowerBound(dim) {
		return false
	}
	if !ar.IsUpperBound(dim) {
		return false
	}

	rng, ok := ar.Children()[dim].(*Range)
	if !ok {
		return false
	}
	step, ok := rng.Step().(*Literal)
	return ok && step.Value == "1"
}

// FullRangeFor builds the Range expression that selects the whole of the
// given dimension of the array.
func FullRangeFor(sym *symbols.DataSymbol, dim int) *Range {
	lower := NewBinaryOperation(LBound, NewReference(sym), IntLiteral(strconv.Itoa(dim+1)))
	upper := NewBinaryOperation(UBound, NewReference(sym), IntLiteral(strconv.Itoa(dim+1)))
	return NewRange(lower, upper, IntLiteral("1"))
}

// -----------------------------------------------------------------------------

// Member is one component access within a structure access chain.  Its
// children, if any, are index expressions followed optionally by a nested
// Member.
type Member struct {
	BaseNode

	MemberName string
}

// NewMember creates a component access with the given name.
func NewMember(name string) *Member {
	m := &Member{MemberName: name}
	m.init(m)
	return m
}

func (m *Member) NodeName() string {
	return "Member"
}

func (m *Member) ChildValid(position int, child Node) bool {
	if _, ok := child.(*Member); ok {
		return true
	}
	return isData(child)
}

func (m *Member) ChildFormat() string {
	return "[DataNode | Range]*, [Member]"
}

func (m *Member) dataNode() {}

// InnerMember returns the nested component access, or nil for the last
// component in the chain.
func (m *Member) InnerMember() *Member {
	for _, child := range m.Children() {
		if inner, ok := child.(*Member); ok {
			return inner
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

// StructureReference is an access to a component of a structure-typed
// symbol.  Its single child is the head of the component chain.
type StructureReference struct {
	BaseNode

	Symbol *symbols.DataSymbol
}

// NewStructureReference creates a structure access for the given symbol and
// component chain head.
func NewStructureReference(sym *symbols.DataSymbol, member *Member) (*StructureReference, error) {
	ref := &StructureReference{Symbol: sym}
	ref.init(ref)
	if err := ref.AddChild(member); err != nil {
		return nil, err
	}
	return ref, nil
}

func (sr *StructureReference) NodeName() string {
	return "StructureReference"
}

func (sr *StructureReference) ChildValid(position int, child Node) bool {
	if position != 0 {
		return false
	}
	_, ok := child.(*Member)
	return ok
}

func (sr *StructureReference) ChildFormat() string {
	return "Member"
}

func (sr *StructureReference) dataNode() {}

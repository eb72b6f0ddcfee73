package ir

// UnaryOperator enumerates the operators taking a single operand.
type UnaryOperator int

const (
	UnaryMinus UnaryOperator = iota
	UnaryPlus
	Not
)

func (op UnaryOperator) String() string {
	switch op {
	case UnaryMinus:
		return "-"
	case UnaryPlus:
		return "+"
	case Not:
		return ".NOT."
	default:
		return "?"
	}
}

// BinaryOperator enumerates the operators taking two operands, including the
// array-bound queries LBOUND and UBOUND (array, dimension).
type BinaryOperator int

const (
	Add BinaryOperator = iota
	Sub
	Mul
	Div
	Pow
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	And
	Or
	LBound
	UBound
)

func (op BinaryOperator) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Pow:
		return "**"
	case Eq:
		return "=="
	case Ne:
		return "/="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	case And:
		return ".AND."
	case Or:
		return ".OR."
	case LBound:
		return "LBOUND"
	case UBound:
		return "UBOUND"
	default:
		return "?"
	}
}

// -----------------------------------------------------------------------------

// UnaryOperation applies an operator to a single operand.
type UnaryOperation struct {
	BaseNode

	Operator UnaryOperator
}

// NewUnaryOperation creates a unary operation over the given operand.
func NewUnaryOperation(op UnaryOperator, operand DataNode) *UnaryOperation {
	uo := &UnaryOperation{Operator: op}
	uo.init(uo)
	if err := uo.AddChild(operand); err != nil {
		panic(err)
	}
	return uo
}

func (uo *UnaryOperation) NodeName() string {
	return "UnaryOperation"
}

func (uo *UnaryOperation) ChildValid(position int, child Node) bool {
	return position == 0 && isData(child)
}

func (uo *UnaryOperation) ChildFormat() string {
	return "DataNode"
}

func (uo *UnaryOperation) dataNode() {}

// Operand returns the single operand of the operation.
func (uo *UnaryOperation) Operand() DataNode {
	return uo.Children()[0].(DataNode)
}

// -----------------------------------------------------------------------------

// BinaryOperation applies an operator to two operands.
type BinaryOperation struct {
	BaseNode

	Operator BinaryOperator
}

// NewBinaryOperation creates a binary operation over the given operands.
func NewBinaryOperation(op BinaryOperator, lhs, rhs DataNode) *BinaryOperation {
	bo := &BinaryOperation{Operator: op}
	bo.init(bo)
	if err := bo.AddChild(lhs); err != nil {
		panic(err)
	}
	if err := bo.AddChild(rhs); err != nil {
		panic(err)
	}
	return bo
}

func (bo *BinaryOperation) NodeName() string {
	return "BinaryOperation"
}

func (bo *BinaryOperation) ChildValid(position int, child Node) bool {
	return position < 2 && isData(child)
}

func (bo *BinaryOperation) ChildFormat() string {
	return "DataNode, DataNode"
}

func (bo *BinaryOperation) dataNode() {}

// LHS returns the first operand of the operation.
func (bo *BinaryOperation) LHS() DataNode {
	return bo.Children()[0].(DataNode)
}

// RHS returns the second operand of the operation.
func (bo *BinaryOperation) RHS() DataNode {
	return bo.Children()[1].(DataNode)
}

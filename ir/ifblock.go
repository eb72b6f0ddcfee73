package ir

// IfBlock is a conditional statement.  Its children are the condition
// expression, the then-body schedule, and optionally an else-body schedule.
type IfBlock struct {
	BaseNode
}

// NewIfBlock creates a conditional.  The else body may be empty, in which
// case no else schedule is attached.
func NewIfBlock(condition DataNode, thenBody []Statement, elseBody []Statement) (*IfBlock, error) {
	ib := &IfBlock{}
	ib.init(ib)
	if err := ib.AddChild(condition); err != nil {
		return nil, err
	}

	thenSched, err := NewSchedule(thenBody...)
	if err != nil {
		return nil, err
	}
	if err := ib.AddChild(thenSched); err != nil {
		return nil, err
	}

	if len(elseBody) > 0 {
		elseSched, err := NewSchedule(elseBody...)
		if err != nil {
			return nil, err
		}
		if err := ib.AddChild(elseSched); err != nil {
			return nil, err
		}
	}
	return ib, nil
}

func (ib *IfBlock) NodeName() string {
	return "IfBlock"
}

func (ib *IfBlock) ChildValid(position int, child Node) bool {
	if position == 0 {
		return isData(child)
	}
	if position == 1 || position == 2 {
		_, ok := child.(*Schedule)
		return ok
	}
	return false
}

func (ib *IfBlock) ChildFormat() string {
	return "DataNode, Schedule [, Schedule]"
}

func (ib *IfBlock) statementNode() {}

// Condition returns the controlling expression.
func (ib *IfBlock) Condition() DataNode {
	return ib.Children()[0].(DataNode)
}

// ThenBody returns the schedule executed when the condition holds.
func (ib *IfBlock) ThenBody() *Schedule {
	return ib.Children()[1].(*Schedule)
}

// ElseBody returns the schedule executed otherwise, or nil when the
// conditional has no else part.
func (ib *IfBlock) ElseBody() *Schedule {
	if len(ib.Children()) < 3 {
		return nil
	}
	return ib.Children()[2].(*Schedule)
}

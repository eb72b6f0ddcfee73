package ir

import "github.com/rommelDB/PSyclone/report"

// Assignment assigns the value of its second child to the storage named by
// its first.
type Assignment struct {
	BaseNode
}

// NewAssignment creates an assignment.  The left-hand side must be a form
// of reference.
func NewAssignment(lhs, rhs DataNode) (*Assignment, error) {
	switch lhs.(type) {
	case *Reference, *ArrayReference, *StructureReference:
	default:
		return nil, report.Generationf(
			"the left-hand side of an assignment must be a reference but found '%s'",
			lhs.NodeName())
	}

	asg := &Assignment{}
	asg.init(asg)
	if err := asg.AddChild(lhs); err != nil {
		return nil, err
	}
	if err := asg.AddChild(rhs); err != nil {
		return nil, err
	}
	return asg, nil
}

func (a *Assignment) NodeName() string {
	return "Assignment"
}

func (a *Assignment) ChildValid(position int, child Node) bool {
	return position < 2 && isData(child)
}

func (a *Assignment) ChildFormat() string {
	return "DataNode, DataNode"
}

func (a *Assignment) statementNode() {}

// LHS returns the assigned-to reference.
func (a *Assignment) LHS() DataNode {
	return a.Children()[0].(DataNode)
}

// RHS returns the assigned expression.
func (a *Assignment) RHS() DataNode {
	return a.Children()[1].(DataNode)
}

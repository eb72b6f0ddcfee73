package ir

import "github.com/rommelDB/PSyclone/symbols"

// Call invokes a routine.  Its children are the actual arguments in call
// order.
type Call struct {
	BaseNode

	Routine *symbols.RoutineSymbol
}

// NewCall creates a call to the given routine with the given arguments.
func NewCall(routine *symbols.RoutineSymbol, args ...DataNode) (*Call, error) {
	call := &Call{Routine: routine}
	call.init(call)
	for _, arg := range args {
		if err := call.AddChild(arg); err != nil {
			return nil, err
		}
	}
	return call, nil
}

func (c *Call) NodeName() string {
	return "Call"
}

func (c *Call) ChildValid(position int, child Node) bool {
	return isData(child)
}

func (c *Call) ChildFormat() string {
	return "[DataNode]*"
}

func (c *Call) statementNode() {}

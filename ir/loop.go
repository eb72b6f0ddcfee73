package ir

import (
	"github.com/rommelDB/PSyclone/report"
	"github.com/rommelDB/PSyclone/symbols"
)

// Loop is a counted loop over an integer control variable.  Its children
// are, in fixed order, the start, stop, and step expressions followed by the
// body schedule.
type Loop struct {
	BaseNode

	Variable *symbols.DataSymbol
}

// NewLoop creates a loop with the given control variable, bounds, and body
// statements.
func NewLoop(variable *symbols.DataSymbol, start, stop, step DataNode, body ...Statement) (*Loop, error) {
	loop := &Loop{Variable: variable}
	loop.init(loop)
	if err := attachLoopChildren(loop, start, stop, step, body); err != nil {
		return nil, err
	}
	return loop, nil
}

func attachLoopChildren(loop Node, start, stop, step DataNode, body []Statement) error {
	for _, bound := range []DataNode{start, stop, step} {
		if err := loop.AddChild(bound); err != nil {
			return err
		}
	}

	sched, err := NewSchedule(body...)
	if err != nil {
		return err
	}
	return loop.AddChild(sched)
}

func (l *Loop) NodeName() string {
	return "Loop"
}

func (l *Loop) ChildValid(position int, child Node) bool {
	return loopChildValid(position, child)
}

func loopChildValid(position int, child Node) bool {
	if position < 3 {
		return isData(child)
	}
	if position == 3 {
		_, ok := child.(*Schedule)
		return ok
	}
	return false
}

func (l *Loop) ChildFormat() string {
	return "DataNode, DataNode, DataNode, Schedule"
}

func (l *Loop) statementNode() {}

// Start returns the initial value expression of the control variable.
func (l *Loop) Start() DataNode {
	return l.Children()[0].(DataNode)
}

// Stop returns the inclusive final value expression.
func (l *Loop) Stop() DataNode {
	return l.Children()[1].(DataNode)
}

// Step returns the increment expression.
func (l *Loop) Step() DataNode {
	return l.Children()[2].(DataNode)
}

// Body returns the loop body schedule.
func (l *Loop) Body() *Schedule {
	return l.Children()[3].(*Schedule)
}

// -----------------------------------------------------------------------------

// KernelLoop is a loop specialized to iterate over a domain-specific
// iteration space, produced from a generic Loop by the loop-specialization
// pass.
type KernelLoop struct {
	BaseNode

	Variable *symbols.DataSymbol

	// LoopType names the iteration space, e.g. "lon" or "lat".
	LoopType string
}

// NewKernelLoop creates a specialized loop.  The loop type must belong to
// the closed set of supported iteration spaces.
func NewKernelLoop(variable *symbols.DataSymbol, loopType string, start, stop, step DataNode, body ...Statement) (*KernelLoop, error) {
	if !validLoopType(loopType) {
		return nil, report.Generationf(
			"invalid loop type '%s'. Expected one of ['', 'lon', 'lat', 'levels', 'tracers']",
			loopType)
	}

	loop := &KernelLoop{Variable: variable, LoopType: loopType}
	loop.init(loop)
	if err := attachLoopChildren(loop, start, stop, step, body); err != nil {
		return nil, err
	}
	return loop, nil
}

// The empty loop type marks an iteration space that could not be
// classified.
func validLoopType(loopType string) bool {
	switch loopType {
	case "", "lon", "lat", "levels", "tracers":
		return true
	default:
		return false
	}
}

func (kl *KernelLoop) NodeName() string {
	return "KernelLoop"
}

func (kl *KernelLoop) ChildValid(position int, child Node) bool {
	return loopChildValid(position, child)
}

func (kl *KernelLoop) ChildFormat() string {
	return "DataNode, DataNode, DataNode, Schedule"
}

func (kl *KernelLoop) statementNode() {}

// Start returns the initial value expression of the control variable.
func (kl *KernelLoop) Start() DataNode {
	return kl.Children()[0].(DataNode)
}

// Stop returns the inclusive final value expression.
func (kl *KernelLoop) Stop() DataNode {
	return kl.Children()[1].(DataNode)
}

// Step returns the increment expression.
func (kl *KernelLoop) Step() DataNode {
	return kl.Children()[2].(DataNode)
}

// Body returns the loop body schedule.
func (kl *KernelLoop) Body() *Schedule {
	return kl.Children()[3].(*Schedule)
}

// -----------------------------------------------------------------------------

// InlinedKernel marks a loop body recognized as a bare kernel call region.
// Its single child is the schedule holding the original region statements.
type InlinedKernel struct {
	BaseNode

	// KernelName is the name of the called kernel routine.
	KernelName string
}

// NewInlinedKernel wraps the given statements as a kernel region.
func NewInlinedKernel(name string, body ...Statement) (*InlinedKernel, error) {
	ik := &InlinedKernel{KernelName: name}
	ik.init(ik)

	sched, err := NewSchedule(body...)
	if err != nil {
		return nil, err
	}
	if err := ik.AddChild(sched); err != nil {
		return nil, err
	}
	return ik, nil
}

func (ik *InlinedKernel) NodeName() string {
	return "InlinedKernel"
}

func (ik *InlinedKernel) ChildValid(position int, child Node) bool {
	if position != 0 {
		return false
	}
	_, ok := child.(*Schedule)
	return ok
}

func (ik *InlinedKernel) ChildFormat() string {
	return "Schedule"
}

func (ik *InlinedKernel) statementNode() {}

// Body returns the wrapped region schedule.
func (ik *InlinedKernel) Body() *Schedule {
	return ik.Children()[0].(*Schedule)
}

package ir

import (
	"github.com/rommelDB/PSyclone/symbols"
)

// Schedule is an ordered sequence of statements.
type Schedule struct {
	BaseNode
}

// NewSchedule creates a schedule over the given statements.
func NewSchedule(stmts ...Statement) (*Schedule, error) {
	sched := &Schedule{}
	sched.init(sched)
	for _, stmt := range stmts {
		if err := sched.AddChild(stmt); err != nil {
			return nil, err
		}
	}
	return sched, nil
}

func (s *Schedule) NodeName() string {
	return "Schedule"
}

func (s *Schedule) ChildValid(position int, child Node) bool {
	return isStatement(child)
}

func (s *Schedule) ChildFormat() string {
	return "[Statement]*"
}

// -----------------------------------------------------------------------------

// Routine is a named schedule with its own scope.
type Routine struct {
	BaseNode

	RoutineName string
	Table       *symbols.SymbolTable

	// IsProgram marks the entry-point routine of a program.
	IsProgram bool
}

// NewRoutine creates an empty routine with a fresh local scope.
func NewRoutine(name string) *Routine {
	rt := &Routine{
		RoutineName: name,
		Table:       symbols.NewSymbolTable(nil),
	}
	rt.init(rt)
	return rt
}

func (rt *Routine) NodeName() string {
	return "Routine"
}

func (rt *Routine) ChildValid(position int, child Node) bool {
	return isStatement(child)
}

func (rt *Routine) ChildFormat() string {
	return "[Statement]*"
}

// -----------------------------------------------------------------------------

// Container is a named collection of routines and nested containers with its
// own scope.
type Container struct {
	BaseNode

	ContainerName string
	Table         *symbols.SymbolTable
}

// NewContainer creates an empty container with a fresh scope.
func NewContainer(name string) *Container {
	ct := &Container{
		ContainerName: name,
		Table:         symbols.NewSymbolTable(nil),
	}
	ct.init(ct)
	return ct
}

func (ct *Container) NodeName() string {
	return "Container"
}

func (ct *Container) ChildValid(position int, child Node) bool {
	switch child.(type) {
	case *Routine, *Container:
		return true
	default:
		return false
	}
}

func (ct *Container) ChildFormat() string {
	return "[Routine | Container]*"
}

// AddRoutine attaches a routine and chains its scope to the container's.
func (ct *Container) AddRoutine(rt *Routine) error {
	if err := ct.AddChild(rt); err != nil {
		return err
	}
	rt.Table.SetParent(ct.Table)
	return nil
}

// -----------------------------------------------------------------------------

// CodeBlock holds source text for constructs outside the supported subset.
// The block is opaque: it has no children and is never analyzed, only
// carried through transformations and emitted verbatim.
type CodeBlock struct {
	BaseNode

	// Source is the unparsed text of the construct.
	Source string
}

// NewCodeBlock creates an opaque block around the given source text.
func NewCodeBlock(source string) *CodeBlock {
	cb := &CodeBlock{Source: source}
	cb.init(cb)
	return cb
}

func (cb *CodeBlock) NodeName() string {
	return "CodeBlock"
}

func (cb *CodeBlock) ChildValid(position int, child Node) bool {
	return false
}

func (cb *CodeBlock) ChildFormat() string {
	return "<LeafNode>"
}

func (cb *CodeBlock) statementNode() {}

func (cb *CodeBlock) dataNode() {}

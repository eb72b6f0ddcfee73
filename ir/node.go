package ir

import (
	"github.com/rommelDB/PSyclone/report"
)

// Node is the interface implemented by every node of the intermediate
// representation.  The tree is strict: each node has at most one parent, and
// each node kind declares which child kinds are valid at which positions.
type Node interface {
	// NodeName returns the kind name of the node for error reporting.
	NodeName() string

	// Parent returns the node's parent, or nil for a root.
	Parent() Node

	// Children returns the node's children in order.  The returned slice
	// is the node's own backing slice; callers must mutate through
	// AddChild, Detach, and ReplaceWith only.
	Children() []Node

	// ChildValid reports whether the given node may occupy the given
	// child position.
	ChildValid(position int, child Node) bool

	// ChildFormat describes the valid child layout for error messages.
	ChildFormat() string

	// Position returns the node's index within its parent's children.
	Position() int

	// AddChild, InsertChild, Detach, and ReplaceWith are the only legal
	// tree mutations; all of them preserve the single-parent invariant.
	AddChild(child Node) error
	InsertChild(position int, child Node) error
	Detach() Node
	ReplaceWith(other Node) error

	base() *BaseNode
}

// DataNode is a node that produces a value (an expression).
type DataNode interface {
	Node
	dataNode()
}

// Statement is a node that performs an action and produces no value.
type Statement interface {
	Node
	statementNode()
}

// -----------------------------------------------------------------------------

// BaseNode supplies the parent/children bookkeeping shared by all node
// kinds.  Each concrete kind embeds it and registers itself via init so that
// the child-validity hooks dispatch on the concrete type.
type BaseNode struct {
	self     Node
	parent   Node
	children []Node
}

// init binds the base to its embedding node.  Every constructor calls this
// exactly once before attaching children.
func (bn *BaseNode) init(self Node) {
	bn.self = self
}

func (bn *BaseNode) base() *BaseNode {
	return bn
}

func (bn *BaseNode) Parent() Node {
	return bn.parent
}

func (bn *BaseNode) Children() []Node {
	return bn.children
}

// Position returns the node's index within its parent's children.  A root
// node has position 0.
func (bn *BaseNode) Position() int {
	if bn.parent == nil {
		return 0
	}
	for i, child := range bn.parent.Children() {
		if child == bn.self {
			return i
		}
	}
	return 0
}

// AddChild appends a child, enforcing the single-parent invariant and the
// node kind's child-validity rules.
func (bn *BaseNode) AddChild(child Node) error {
	if child.Parent() != nil {
		return report.Generationf(
			"item '%s' can't be added as a child of '%s' because it is already a child of '%s'; detach it first",
			child.NodeName(), bn.self.NodeName(), child.Parent().NodeName())
	}
	if !bn.self.ChildValid(len(bn.children), child) {
		return report.Generationf(
			"item '%s' can't be child %d of '%s'. The valid format is: '%s'",
			child.NodeName(), len(bn.children), bn.self.NodeName(), bn.self.ChildFormat())
	}

	bn.children = append(bn.children, child)
	child.base().parent = bn.self
	return nil
}

// InsertChild places a child at the given position, shifting later children
// up.  The same invariants as AddChild apply.
func (bn *BaseNode) InsertChild(position int, child Node) error {
	if position < 0 || position > len(bn.children) {
		return report.Generationf(
			"position %d is out of range for inserting a child into '%s' which has %d children",
			position, bn.self.NodeName(), len(bn.children))
	}
	if child.Parent() != nil {
		return report.Generationf(
			"item '%s' can't be added as a child of '%s' because it is already a child of '%s'; detach it first",
			child.NodeName(), bn.self.NodeName(), child.Parent().NodeName())
	}
	if !bn.self.ChildValid(position, child) {
		return report.Generationf(
			"item '%s' can't be child %d of '%s'. The valid format is: '%s'",
			child.NodeName(), position, bn.self.NodeName(), bn.self.ChildFormat())
	}

	bn.children = append(bn.children, nil)
	copy(bn.children[position+1:], bn.children[position:])
	bn.children[position] = child
	child.base().parent = bn.self
	return nil
}

// Detach removes the node from its parent, leaving it a root.  Detaching a
// root is a no-op.
func (bn *BaseNode) Detach() Node {
	if bn.parent == nil {
		return bn.self
	}

	pb := bn.parent.base()
	for i, child := range pb.children {
		if child == bn.self {
			pb.children = append(pb.children[:i], pb.children[i+1:]...)
			break
		}
	}
	bn.parent = nil
	return bn.self
}

// ReplaceWith substitutes the given node for this one at the same position
// in the parent.  The replacement must be a root and must be valid at the
// position.
func (bn *BaseNode) ReplaceWith(other Node) error {
	if bn.parent == nil {
		return report.Generationf(
			"cannot replace a '%s' that has no parent", bn.self.NodeName())
	}
	if other.Parent() != nil {
		return report.Generationf(
			"item '%s' can't replace '%s' because it is already a child of '%s'; detach it first",
			other.NodeName(), bn.self.NodeName(), other.Parent().NodeName())
	}

	parent := bn.parent
	pos := bn.Position()
	if !parent.ChildValid(pos, other) {
		return report.Generationf(
			"item '%s' can't be child %d of '%s'. The valid format is: '%s'",
			other.NodeName(), pos, parent.NodeName(), parent.ChildFormat())
	}

	parent.base().children[pos] = other
	other.base().parent = parent
	bn.parent = nil
	return nil
}

// -----------------------------------------------------------------------------

// Walk collects all nodes of type T in the subtree rooted at the given node,
// in depth-first pre-order.  The root itself is included when it matches.
func Walk[T Node](root Node) []T {
	var found []T

	var visit func(n Node)
	visit = func(n Node) {
		if match, ok := n.(T); ok {
			found = append(found, match)
		}
		for _, child := range n.Children() {
			visit(child)
		}
	}
	visit(root)

	return found
}

// Ancestor finds the nearest ancestor of the node that has type T.
func Ancestor[T Node](n Node) (T, bool) {
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		if match, ok := cur.(T); ok {
			return match, true
		}
	}

	var zero T
	return zero, false
}

// Root returns the topmost ancestor of the node.
func Root(n Node) Node {
	cur := n
	for cur.Parent() != nil {
		cur = cur.Parent()
	}
	return cur
}

// isData reports whether a node is an expression node.
func isData(n Node) bool {
	_, ok := n.(DataNode)
	return ok
}

// isStatement reports whether a node is a statement node.
func isStatement(n Node) bool {
	_, ok := n.(Statement)
	return ok
}

// Package access computes ordered read/write access records for the
// variables referenced in an IR subtree.  The records drive the
// parallel-safety decisions made by the transformation passes.
package access

import (
	"github.com/rommelDB/PSyclone/ir"
	"github.com/rommelDB/PSyclone/symbols"
)

// AccessType tags a single access to a variable.
type AccessType int

const (
	Read AccessType = iota
	Write
	ReadWrite
)

func (at AccessType) String() string {
	switch at {
	case Read:
		return "READ"
	case Write:
		return "WRITE"
	case ReadWrite:
		return "READWRITE"
	default:
		return "UNKNOWN"
	}
}

// Access records one access to a variable: its type, the node at which it
// occurs, and, for array accesses, the index expressions used.
type Access struct {
	Type AccessType
	Node ir.Node

	indices []ir.DataNode
}

// Indices returns the index expressions used at the access site, or nil for
// a scalar access.  The list is only populated once all children of the
// reference node have been visited.
func (a *Access) Indices() []ir.DataNode {
	return a.indices
}

// Sequence is the ordered list of accesses to one symbol within the walked
// subtree.
type Sequence struct {
	Symbol   *symbols.DataSymbol
	Accesses []*Access
}

// FirstAccess returns the first access in the sequence.
func (s *Sequence) FirstAccess() *Access {
	return s.Accesses[0]
}

// IsWritten reports whether any access in the sequence writes the variable.
func (s *Sequence) IsWritten() bool {
	for _, acc := range s.Accesses {
		if acc.Type == Write || acc.Type == ReadWrite {
			return true
		}
	}
	return false
}

// IsRead reports whether any access in the sequence reads the variable.
func (s *Sequence) IsRead() bool {
	for _, acc := range s.Accesses {
		if acc.Type == Read || acc.Type == ReadWrite {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------

// Info holds the access sequences of every variable referenced in a walked
// subtree, keyed by symbol identity and ordered by first appearance.
type Info struct {
	order []*symbols.DataSymbol
	seqs  map[*symbols.DataSymbol]*Sequence
}

// Symbols returns the accessed symbols in order of first access.
func (info *Info) Symbols() []*symbols.DataSymbol {
	return info.order
}

// For returns the access sequence of the given symbol, or nil if the symbol
// is never accessed in the walked subtree.
func (info *Info) For(sym *symbols.DataSymbol) *Sequence {
	return info.seqs[sym]
}

func (info *Info) record(sym *symbols.DataSymbol, atype AccessType, node ir.Node) *Access {
	seq, ok := info.seqs[sym]
	if !ok {
		seq = &Sequence{Symbol: sym}
		info.seqs[sym] = seq
		info.order = append(info.order, sym)
	}

	acc := &Access{Type: atype, Node: node}
	seq.Accesses = append(seq.Accesses, acc)
	return acc
}

// -----------------------------------------------------------------------------

// CollectAll walks the subtree and accumulates the access sequences of
// every variable it references.
func CollectAll(root ir.Node) (*Info, error) {
	info := &Info{seqs: make(map[*symbols.DataSymbol]*Sequence)}
	if err := collect(root, info, Read); err != nil {
		return nil, err
	}
	return info, nil
}

// Collect walks the subtree and returns the access sequence for just the
// given symbol, or nil if the symbol is never accessed.
func Collect(root ir.Node, sym *symbols.DataSymbol) (*Sequence, error) {
	info, err := CollectAll(root)
	if err != nil {
		return nil, err
	}
	return info.For(sym), nil
}

// collect visits a node in the given access context.  For an array access
// the record is created first as a stub, the index children are visited as
// reads (which may themselves add accesses), and only then are the index
// expressions attached to the stub.  Later dependency checks rely on this
// record-then-attach order.
func collect(n ir.Node, info *Info, mode AccessType) error {
	switch node := n.(type) {
	case *ir.Reference:
		info.record(node.Symbol, mode, node)

	case *ir.ArrayReference:
		stub := info.record(node.Symbol, mode, node)
		for _, child := range node.Children() {
			if err := collect(child, info, Read); err != nil {
				return err
			}
		}
		indices, err := node.Indices()
		if err != nil {
			return err
		}
		stub.indices = indices

	case *ir.StructureReference:
		info.record(node.Symbol, mode, node)
		for _, child := range node.Children() {
			if err := collect(child, info, Read); err != nil {
				return err
			}
		}

	case *ir.Assignment:
		// Reads of the right-hand side happen before the write of the
		// target.
		if err := collect(node.RHS(), info, Read); err != nil {
			return err
		}
		if err := collect(node.LHS(), info, Write); err != nil {
			return err
		}

	case *ir.Loop:
		info.record(node.Variable, Write, node)
		for _, child := range node.Children() {
			if err := collect(child, info, Read); err != nil {
				return err
			}
		}

	case *ir.KernelLoop:
		info.record(node.Variable, Write, node)
		for _, child := range node.Children() {
			if err := collect(child, info, Read); err != nil {
				return err
			}
		}

	case *ir.CodeBlock:
		// Opaque: nothing to record.

	default:
		for _, child := range n.Children() {
			if err := collect(child, info, mode); err != nil {
				return err
			}
		}
	}

	return nil
}

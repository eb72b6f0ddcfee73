package ir

import "github.com/rommelDB/PSyclone/symbols"

// CopyNode returns a deep copy of the subtree rooted at the given node.
// The copy is a fresh root: node payloads are duplicated and children are
// copied recursively, while symbol bindings and symbol tables are shared
// with the original.
func CopyNode(n Node) Node {
	copied := shallowCopy(n)
	for _, child := range n.Children() {
		if err := copied.AddChild(CopyNode(child)); err != nil {
			// The original tree satisfied the same child-validity
			// rules, so attaching its copy cannot fail.
			panic(err)
		}
	}
	return copied
}

// CopyData copies an expression subtree.
func CopyData(n DataNode) DataNode {
	return CopyNode(n).(DataNode)
}

// CopyReplacing copies a subtree like CopyNode but substitutes a fresh
// replacement wherever the target node occurs.
func CopyReplacing(n, target Node, replacement func() Node) Node {
	if n == target {
		return replacement()
	}
	copied := shallowCopy(n)
	for _, child := range n.Children() {
		if err := copied.AddChild(CopyReplacing(child, target, replacement)); err != nil {
			panic(err)
		}
	}
	return copied
}

func shallowCopy(n Node) Node {
	switch node := n.(type) {
	case *Literal:
		c := &Literal{Value: node.Value, Datatype: node.Datatype}
		c.init(c)
		return c
	case *Reference:
		c := &Reference{Symbol: node.Symbol}
		c.init(c)
		return c
	case *ArrayReference:
		c := &ArrayReference{Symbol: node.Symbol}
		c.init(c)
		return c
	case *StructureReference:
		c := &StructureReference{Symbol: node.Symbol}
		c.init(c)
		return c
	case *Member:
		c := &Member{MemberName: node.MemberName}
		c.init(c)
		return c
	case *UnaryOperation:
		c := &UnaryOperation{Operator: node.Operator}
		c.init(c)
		return c
	case *BinaryOperation:
		c := &BinaryOperation{Operator: node.Operator}
		c.init(c)
		return c
	case *Range:
		c := &Range{}
		c.init(c)
		return c
	case *Assignment:
		c := &Assignment{}
		c.init(c)
		return c
	case *Schedule:
		c := &Schedule{}
		c.init(c)
		return c
	case *IfBlock:
		c := &IfBlock{}
		c.init(c)
		return c
	case *Loop:
		c := &Loop{Variable: node.Variable}
		c.init(c)
		return c
	case *KernelLoop:
		c := &KernelLoop{Variable: node.Variable, LoopType: node.LoopType}
		c.init(c)
		return c
	case *InlinedKernel:
		c := &InlinedKernel{KernelName: node.KernelName}
		c.init(c)
		return c
	case *Call:
		c := &Call{Routine: node.Routine}
		c.init(c)
		return c
	case *CodeBlock:
		c := &CodeBlock{Source: node.Source}
		c.init(c)
		return c
	case *Routine:
		c := &Routine{RoutineName: node.RoutineName, Table: node.Table, IsProgram: node.IsProgram}
		c.init(c)
		return c
	case *Container:
		c := &Container{ContainerName: node.ContainerName, Table: node.Table}
		c.init(c)
		return c
	case *ParallelDirective:
		c := &ParallelDirective{DefaultShared: node.DefaultShared}
		c.init(c)
		return c
	case *SingleDirective:
		c := &SingleDirective{NoWait: node.NoWait}
		c.init(c)
		return c
	case *TaskDirective:
		c := &TaskDirective{
			Private:      append([]*symbols.DataSymbol(nil), node.Private...),
			Firstprivate: append([]*symbols.DataSymbol(nil), node.Firstprivate...),
			Shared:       append([]*symbols.DataSymbol(nil), node.Shared...),
		}
		for _, dep := range node.InDepend {
			c.InDepend = append(c.InDepend, CopyData(dep))
		}
		for _, dep := range node.OutDepend {
			c.OutDepend = append(c.OutDepend, CopyData(dep))
		}
		c.init(c)
		return c
	case *ProfileRegion:
		c := &ProfileRegion{ModuleName: node.ModuleName, RegionName: node.RegionName}
		c.init(c)
		return c
	default:
		panic("CopyNode: unhandled node kind '" + n.NodeName() + "'")
	}
}

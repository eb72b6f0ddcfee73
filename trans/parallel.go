package trans

import (
	"github.com/rommelDB/PSyclone/ir"
	"github.com/rommelDB/PSyclone/report"
)

// wrapRegion detaches a run of consecutive siblings and re-attaches them as
// the body of the given directive, which takes their place.
func wrapRegion(name string, nodes []ir.Node, makeDirective func(...ir.Statement) (ir.Node, error)) error {
	parent, position, err := sameParentSiblings(name, nodes)
	if err != nil {
		return err
	}

	stmts := make([]ir.Statement, len(nodes))
	for i, node := range nodes {
		stmt, ok := node.(ir.Statement)
		if !ok {
			return report.Transformationf(
				"%s: a region can only contain statements but found '%s'",
				name, node.NodeName())
		}
		stmts[i] = stmt
	}

	for _, node := range nodes {
		node.Detach()
	}

	directive, err := makeDirective(stmts...)
	if err != nil {
		return err
	}
	return parent.InsertChild(position, directive)
}

// ParallelTrans wraps consecutive sibling statements in a parallel region.
type ParallelTrans struct{}

func (t *ParallelTrans) Name() string {
	return "ParallelTrans"
}

func (t *ParallelTrans) Validate(nodes ...ir.Node) error {
	_, _, err := sameParentSiblings(t.Name(), nodes)
	return err
}

func (t *ParallelTrans) Apply(nodes ...ir.Node) error {
	return wrapRegion(t.Name(), nodes, func(stmts ...ir.Statement) (ir.Node, error) {
		return ir.NewParallelDirective(stmts...)
	})
}

// SingleTrans wraps consecutive sibling statements in a single-thread
// region.  The region must end up inside a parallel region before task
// directives within it are lowered.
type SingleTrans struct{}

func (t *SingleTrans) Name() string {
	return "SingleTrans"
}

func (t *SingleTrans) Validate(nodes ...ir.Node) error {
	_, _, err := sameParentSiblings(t.Name(), nodes)
	return err
}

func (t *SingleTrans) Apply(nodes ...ir.Node) error {
	return wrapRegion(t.Name(), nodes, func(stmts ...ir.Statement) (ir.Node, error) {
		return ir.NewSingleDirective(stmts...)
	})
}

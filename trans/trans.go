// Package trans implements the structural rewrites applied to the IR:
// loop specialization, parallel-region and task insertion with computed
// clauses, profiling-region insertion, and adjoint generation from
// tangent-linear assignments.
package trans

import (
	"github.com/rommelDB/PSyclone/ir"
	"github.com/rommelDB/PSyclone/report"
)

// Transformation is the interface of every pass.  Validate never mutates
// the tree; Apply runs Validate first and fails fast without partial
// mutation.
type Transformation interface {
	Name() string
	Validate(node ir.Node) error
	Apply(node ir.Node) error
}

// RegionTransformation is the interface of passes that wrap a run of
// consecutive sibling statements in a region node instead of rewriting a
// single subtree.
type RegionTransformation interface {
	Name() string
	Validate(nodes ...ir.Node) error
	Apply(nodes ...ir.Node) error
}

var (
	_ Transformation = (*KernelLoopTrans)(nil)
	_ Transformation = (*TaskTrans)(nil)
	_ Transformation = (*AssignmentTrans)(nil)

	_ RegionTransformation = (*ParallelTrans)(nil)
	_ RegionTransformation = (*SingleTrans)(nil)
	_ RegionTransformation = (*ProfileTrans)(nil)
)

// ApplyAll runs the given passes over the node in order, stopping at the
// first failure.
func ApplyAll(node ir.Node, passes ...Transformation) error {
	for _, pass := range passes {
		if err := pass.Apply(node); err != nil {
			return err
		}
	}
	return nil
}

// sameParentSiblings checks that the given nodes are consecutive children
// of a single parent, a precondition of every region-wrapping pass.
func sameParentSiblings(name string, nodes []ir.Node) (ir.Node, int, error) {
	if len(nodes) == 0 {
		return nil, 0, report.Transformationf(
			"%s: at least one node is required to define a region", name)
	}

	parent := nodes[0].Parent()
	if parent == nil {
		return nil, 0, report.Transformationf(
			"%s: the supplied nodes must have a parent", name)
	}

	first := nodes[0].Position()
	for i, node := range nodes {
		if node.Parent() != parent {
			return nil, 0, report.Transformationf(
				"%s: the supplied nodes are not children of a single parent", name)
		}
		if node.Position() != first+i {
			return nil, 0, report.Transformationf(
				"%s: the supplied nodes are not consecutive children of their parent", name)
		}
	}

	return parent, first, nil
}

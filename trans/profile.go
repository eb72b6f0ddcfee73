package trans

import (
	"github.com/rommelDB/PSyclone/ir"
	"github.com/rommelDB/PSyclone/names"
	"github.com/rommelDB/PSyclone/report"
)

// ProfileTrans wraps code in profiling regions.  Each region carries a
// (module, region) name pair made unique by the transformation's namespace
// allocator, so repeated placements over the same routine never clash.
// Wrapping is purely additive: the wrapped statements keep their order and
// the region itself has no effect on program semantics.
type ProfileTrans struct {
	Names *names.NameSpace
}

// NewProfileTrans creates a profiling transformation with a fresh
// namespace.
func NewProfileTrans() *ProfileTrans {
	return &ProfileTrans{Names: names.NewNameSpace(false)}
}

func (t *ProfileTrans) Name() string {
	return "ProfileTrans"
}

func (t *ProfileTrans) Validate(nodes ...ir.Node) error {
	_, _, err := sameParentSiblings(t.Name(), nodes)
	return err
}

// Apply wraps the given consecutive sibling statements in one profiling
// region named after the enclosing routine.
func (t *ProfileTrans) Apply(nodes ...ir.Node) error {
	if err := t.Validate(nodes...); err != nil {
		return err
	}

	moduleName, regionRoot := t.regionContext(nodes[0])
	regionName := t.Names.CreateName(regionRoot, "", "")

	return wrapRegion(t.Name(), nodes, func(stmts ...ir.Statement) (ir.Node, error) {
		return ir.NewProfileRegion(moduleName, regionName, stmts...)
	})
}

// ApplyAuto places profiling regions over a routine according to the given
// options: "invokes" wraps the routine's whole body in one region,
// "kernels" wraps each outermost kernel loop in its own region.
func (t *ProfileTrans) ApplyAuto(routine *ir.Routine, options ...string) error {
	for _, option := range options {
		switch option {
		case "invokes", "kernels":
		default:
			return report.Generationf(
				"unrecognised option '%s', valid options are ['invokes', 'kernels']",
				option)
		}
	}

	for _, option := range options {
		var err error
		switch option {
		case "kernels":
			err = t.wrapKernels(routine)
		case "invokes":
			err = t.wrapBody(routine)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// wrapBody wraps all statements of the routine in a single region.
func (t *ProfileTrans) wrapBody(routine *ir.Routine) error {
	stmts := append([]ir.Node(nil), routine.Children()...)
	if len(stmts) == 0 {
		return nil
	}
	return t.Apply(stmts...)
}

// wrapKernels wraps each outermost kernel loop of the routine in its own
// region.  Loops nested inside another kernel loop are covered by their
// outermost ancestor's region.
func (t *ProfileTrans) wrapKernels(routine *ir.Routine) error {
	for _, loop := range ir.Walk[*ir.KernelLoop](routine) {
		if _, nested := ir.Ancestor[*ir.KernelLoop](loop); nested {
			continue
		}
		if err := t.Apply(loop); err != nil {
			return err
		}
	}
	return nil
}

// regionContext derives the (module, region-root) naming pair for a region
// from the scopes enclosing its first statement.
func (t *ProfileTrans) regionContext(node ir.Node) (string, string) {
	moduleName := "unknown_module"
	if container, ok := ir.Ancestor[*ir.Container](node); ok {
		moduleName = container.ContainerName
	}

	regionRoot := "region"
	if routine, ok := ir.Ancestor[*ir.Routine](node); ok {
		regionRoot = routine.RoutineName
	}
	return moduleName, regionRoot
}

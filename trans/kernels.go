package trans

import (
	"github.com/rommelDB/PSyclone/ir"
	"github.com/rommelDB/PSyclone/report"
)

// loopTypeFor maps a loop-control variable name to the iteration space it
// conventionally spans.
var loopTypeFor = map[string]string{
	"ji": "lon",
	"jj": "lat",
	"jk": "levels",
	"jn": "tracers",
	"jt": "tracers",
}

// KernelLoopTrans replaces every generic loop in a subtree with a
// specialized kernel loop and wraps loop bodies that match a bare kernel
// region shape in a kernel marker.  Loops are processed bottom-up; a loop
// is only specialized after every loop nested inside it has been, since the
// region-shape check must see fully-formed inner kernels.
type KernelLoopTrans struct{}

func (t *KernelLoopTrans) Name() string {
	return "KernelLoopTrans"
}

func (t *KernelLoopTrans) Validate(node ir.Node) error {
	if node == nil {
		return report.Transformationf("KernelLoopTrans: the supplied node must not be nil")
	}
	if _, ok := node.(ir.DataNode); ok {
		return report.Transformationf(
			"KernelLoopTrans cannot be applied to a '%s' node", node.NodeName())
	}
	if loop, ok := node.(*ir.Loop); ok && loop.Parent() == nil {
		return report.Transformationf(
			"KernelLoopTrans requires the supplied Loop to have a parent to attach its replacement to")
	}
	return nil
}

func (t *KernelLoopTrans) Apply(node ir.Node) error {
	if err := t.Validate(node); err != nil {
		return err
	}

	loops := ir.Walk[*ir.Loop](node)
	for i := len(loops) - 1; i >= 0; i-- {
		if err := t.specialize(loops[i]); err != nil {
			return err
		}
	}
	return nil
}

func (t *KernelLoopTrans) specialize(loop *ir.Loop) error {
	start := loop.Start()
	stop := loop.Stop()
	step := loop.Step()
	body := loop.Body()

	start.Detach()
	stop.Detach()
	step.Detach()
	stmts := popStatements(body)

	newLoop, err := ir.NewKernelLoop(loop.Variable, loopTypeFor[loop.Variable.Name()],
		start, stop, step, stmts...)
	if err != nil {
		return err
	}

	if err := loop.ReplaceWith(newLoop); err != nil {
		return err
	}

	if matchKernelBody(newLoop.Body()) {
		inner := popStatements(newLoop.Body())
		kern, err := ir.NewInlinedKernel("", inner...)
		if err != nil {
			return err
		}
		if err := newLoop.Body().AddChild(kern); err != nil {
			return err
		}
	}
	return nil
}

// popStatements detaches and returns all children of a schedule.
func popStatements(sched *ir.Schedule) []ir.Statement {
	children := append([]ir.Node(nil), sched.Children()...)
	stmts := make([]ir.Statement, len(children))
	for i, child := range children {
		stmts[i] = child.Detach().(ir.Statement)
	}
	return stmts
}

// matchKernelBody reports whether a loop body has the shape of a bare
// kernel region: non-empty, pure computation with no nested loops, opaque
// blocks, or directives.
func matchKernelBody(sched *ir.Schedule) bool {
	if len(sched.Children()) == 0 {
		return false
	}

	for _, stmt := range ir.Walk[ir.Statement](sched) {
		switch stmt.(type) {
		case *ir.Assignment, *ir.IfBlock, *ir.Call:
		default:
			return false
		}
	}
	return true
}

package trans

import (
	"testing"

	"github.com/rommelDB/PSyclone/ir"
	"github.com/rommelDB/PSyclone/symbols"
)

func intSym(name string) *symbols.DataSymbol {
	return symbols.NewDataSymbol(name, symbols.IntegerType)
}

func realSym(name string) *symbols.DataSymbol {
	return symbols.NewDataSymbol(name, symbols.RealType)
}

func realArray(t *testing.T, name string, ndims int) *symbols.DataSymbol {
	t.Helper()
	dims := make([]symbols.ArrayDimension, ndims)
	for i := range dims {
		dims[i] = symbols.Deferred
	}
	atype, err := symbols.NewArrayType(symbols.RealType, dims)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return symbols.NewDataSymbol(name, atype)
}

func mustAssign(t *testing.T, lhs, rhs ir.DataNode) *ir.Assignment {
	t.Helper()
	asg, err := ir.NewAssignment(lhs, rhs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return asg
}

func mustLoop(t *testing.T, variable *symbols.DataSymbol, start, stop, step ir.DataNode, body ...ir.Statement) *ir.Loop {
	t.Helper()
	loop, err := ir.NewLoop(variable, start, stop, step, body...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return loop
}

func mustIndex(t *testing.T, sym *symbols.DataSymbol, indices ...ir.DataNode) *ir.ArrayReference {
	t.Helper()
	ref, err := ir.NewArrayReference(sym, indices)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return ref
}

func TestLoopSpecialization(t *testing.T) {
	ji := intSym("ji")
	jj := intSym("jj")
	n := intSym("n")
	a := realArray(t, "a", 2)
	b := realArray(t, "b", 2)

	asg := mustAssign(t,
		mustIndex(t, a, ir.NewReference(ji), ir.NewReference(jj)),
		mustIndex(t, b, ir.NewReference(ji), ir.NewReference(jj)))
	inner := mustLoop(t, ji, ir.IntLiteral("1"), ir.NewReference(n), ir.IntLiteral("1"), asg)
	outer := mustLoop(t, jj, ir.IntLiteral("1"), ir.NewReference(n), ir.IntLiteral("1"), inner)

	routine := ir.NewRoutine("compute")
	if err := routine.AddChild(outer); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	trans := &KernelLoopTrans{}
	if err := trans.Apply(routine); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loops := ir.Walk[*ir.KernelLoop](routine)
	if len(loops) != 2 {
		t.Fatalf("got %d specialized loops, want 2", len(loops))
	}
	if loops[0].LoopType != "lat" || loops[1].LoopType != "lon" {
		t.Errorf("got loop types %q and %q, want lat and lon",
			loops[0].LoopType, loops[1].LoopType)
	}
	if len(ir.Walk[*ir.Loop](routine)) != 0 {
		t.Error("generic loops remain after specialization")
	}

	// Only the innermost body is a bare kernel region.
	innerBody := loops[1].Body().Children()
	if len(innerBody) != 1 {
		t.Fatalf("inner body has %d children", len(innerBody))
	}
	kernel, ok := innerBody[0].(*ir.InlinedKernel)
	if !ok {
		t.Fatalf("inner body holds a '%s', want an InlinedKernel", innerBody[0].NodeName())
	}
	if len(kernel.Body().Children()) != 1 {
		t.Error("the kernel region lost its statement")
	}

	outerBody := loops[0].Body().Children()
	if len(outerBody) != 1 {
		t.Fatalf("outer body has %d children", len(outerBody))
	}
	if _, ok := outerBody[0].(*ir.KernelLoop); !ok {
		t.Errorf("outer body holds a '%s', want the specialized inner loop",
			outerBody[0].NodeName())
	}
}

func TestLoopSpecializationUnknownVariable(t *testing.T) {
	idx := intSym("idx")
	x := realSym("x")

	loop := mustLoop(t, idx, ir.IntLiteral("1"), ir.IntLiteral("10"), ir.IntLiteral("1"),
		mustAssign(t, ir.NewReference(x), ir.RealLiteral("0.0")))
	sched, err := ir.NewSchedule(loop)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := (&KernelLoopTrans{}).Apply(sched); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loops := ir.Walk[*ir.KernelLoop](sched)
	if len(loops) != 1 {
		t.Fatalf("got %d specialized loops", len(loops))
	}
	if loops[0].LoopType != "" {
		t.Errorf("got loop type %q for an unrecognized variable, want empty", loops[0].LoopType)
	}
}

func TestLoopSpecializationSkipsOpaqueBodies(t *testing.T) {
	ji := intSym("ji")

	loop := mustLoop(t, ji, ir.IntLiteral("1"), ir.IntLiteral("10"), ir.IntLiteral("1"),
		ir.NewCodeBlock("write(*,*) ji"))
	sched, err := ir.NewSchedule(loop)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := (&KernelLoopTrans{}).Apply(sched); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loops := ir.Walk[*ir.KernelLoop](sched)
	if len(loops) != 1 {
		t.Fatalf("got %d specialized loops", len(loops))
	}
	if len(ir.Walk[*ir.InlinedKernel](sched)) != 0 {
		t.Error("a body containing a code block must not become a kernel region")
	}
}

func TestLoopSpecializationRequiresParent(t *testing.T) {
	ji := intSym("ji")
	n := intSym("n")
	a := realArray(t, "a", 1)
	b := realArray(t, "b", 1)

	asg := mustAssign(t, mustIndex(t, a, ir.NewReference(ji)), mustIndex(t, b, ir.NewReference(ji)))
	loop := mustLoop(t, ji, ir.IntLiteral("1"), ir.NewReference(n), ir.IntLiteral("1"), asg)

	// A loop with no parent has nowhere to attach its replacement, so the
	// pass must refuse it outright instead of gutting it.
	if err := (&KernelLoopTrans{}).Apply(loop); err == nil {
		t.Fatal("expected an error for a parentless loop")
	}
	if len(loop.Children()) != 4 {
		t.Fatalf("the rejected loop has %d children, want 4", len(loop.Children()))
	}
	if len(loop.Body().Children()) != 1 {
		t.Error("the rejected loop must keep its body statements")
	}
}

func TestLoopSpecializationRejectsExpressions(t *testing.T) {
	if err := (&KernelLoopTrans{}).Apply(ir.IntLiteral("1")); err == nil {
		t.Fatal("expected an error for an expression root")
	}
	if err := (&KernelLoopTrans{}).Validate(nil); err == nil {
		t.Fatal("expected an error for a nil node")
	}
}

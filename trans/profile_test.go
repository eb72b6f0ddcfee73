package trans

import (
	"strings"
	"testing"

	"github.com/rommelDB/PSyclone/ir"
)

func TestProfileWrapsRegion(t *testing.T) {
	x := realSym("x")
	y := realSym("y")

	first := mustAssign(t, ir.NewReference(x), ir.RealLiteral("0.0"))
	second := mustAssign(t, ir.NewReference(y), ir.RealLiteral("1.0"))

	routine := ir.NewRoutine("step_fields")
	container := ir.NewContainer("ocean_mod")
	if err := container.AddRoutine(routine); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, stmt := range []ir.Statement{first, second} {
		if err := routine.AddChild(stmt); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	trans := NewProfileTrans()
	if err := trans.Apply(first, second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(routine.Children()) != 1 {
		t.Fatalf("routine has %d children after wrapping", len(routine.Children()))
	}
	region, ok := routine.Children()[0].(*ir.ProfileRegion)
	if !ok {
		t.Fatalf("got a '%s', want a ProfileRegion", routine.Children()[0].NodeName())
	}
	if region.ModuleName != "ocean_mod" {
		t.Errorf("module name = %q", region.ModuleName)
	}
	if region.RegionName != "step_fields" {
		t.Errorf("region name = %q", region.RegionName)
	}

	body := region.Body().Children()
	if len(body) != 2 || body[0] != ir.Node(first) || body[1] != ir.Node(second) {
		t.Error("wrapping must keep the statements in order")
	}
}

func TestProfileNamesAreUnique(t *testing.T) {
	x := realSym("x")
	y := realSym("y")

	first := mustAssign(t, ir.NewReference(x), ir.RealLiteral("0.0"))
	second := mustAssign(t, ir.NewReference(y), ir.RealLiteral("1.0"))

	routine := ir.NewRoutine("work")
	for _, stmt := range []ir.Statement{first, second} {
		if err := routine.AddChild(stmt); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	trans := NewProfileTrans()
	if err := trans.Apply(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := trans.Apply(second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	regions := ir.Walk[*ir.ProfileRegion](routine)
	if len(regions) != 2 {
		t.Fatalf("got %d regions", len(regions))
	}
	if regions[0].RegionName == regions[1].RegionName {
		t.Errorf("region names must differ, both are %q", regions[0].RegionName)
	}
}

func TestProfileAutoKernels(t *testing.T) {
	ji := intSym("ji")
	jj := intSym("jj")
	a := realArray(t, "a", 1)

	makeLoop := func(v *ir.KernelLoop, err error) *ir.KernelLoop {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return v
	}
	loopA := makeLoop(ir.NewKernelLoop(ji, "lon",
		ir.IntLiteral("1"), ir.IntLiteral("10"), ir.IntLiteral("1"),
		mustAssign(t, mustIndex(t, a, ir.NewReference(ji)), ir.RealLiteral("0.0"))))
	loopB := makeLoop(ir.NewKernelLoop(jj, "lat",
		ir.IntLiteral("1"), ir.IntLiteral("10"), ir.IntLiteral("1"),
		mustAssign(t, mustIndex(t, a, ir.NewReference(jj)), ir.RealLiteral("1.0"))))

	routine := ir.NewRoutine("invoke_0")
	for _, loop := range []ir.Statement{loopA, loopB} {
		if err := routine.AddChild(loop); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	trans := NewProfileTrans()
	if err := trans.ApplyAuto(routine, "kernels"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	regions := ir.Walk[*ir.ProfileRegion](routine)
	if len(regions) != 2 {
		t.Fatalf("got %d regions, want one per kernel loop", len(regions))
	}
	for _, region := range regions {
		body := region.Body().Children()
		if len(body) != 1 {
			t.Fatalf("region body has %d children", len(body))
		}
		if _, ok := body[0].(*ir.KernelLoop); !ok {
			t.Errorf("region wraps a '%s', want a KernelLoop", body[0].NodeName())
		}
	}
}

func TestProfileUnknownOption(t *testing.T) {
	routine := ir.NewRoutine("invoke_0")

	err := NewProfileTrans().ApplyAuto(routine, "loops")
	if err == nil {
		t.Fatal("expected an error for an unknown option")
	}
	if !strings.Contains(err.Error(), "'loops'") ||
		!strings.Contains(err.Error(), "['invokes', 'kernels']") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestParallelAndSingleWrap(t *testing.T) {
	x := realSym("x")
	y := realSym("y")

	first := mustAssign(t, ir.NewReference(x), ir.RealLiteral("0.0"))
	second := mustAssign(t, ir.NewReference(y), ir.RealLiteral("1.0"))
	sched, err := ir.NewSchedule(first, second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := (&SingleTrans{}).Apply(first, second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	single, ok := sched.Children()[0].(*ir.SingleDirective)
	if !ok {
		t.Fatalf("got a '%s', want a SingleDirective", sched.Children()[0].NodeName())
	}
	if len(single.Body().Children()) != 2 {
		t.Error("the single region lost statements")
	}

	if err := (&ParallelTrans{}).Apply(single); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parallel, ok := sched.Children()[0].(*ir.ParallelDirective)
	if !ok {
		t.Fatalf("got a '%s', want a ParallelDirective", sched.Children()[0].NodeName())
	}
	if !parallel.DefaultShared {
		t.Error("parallel regions default to shared data")
	}
	if parallel.Body().Children()[0] != ir.Node(single) {
		t.Error("the parallel region must wrap the single region")
	}
}

func TestRegionRequiresConsecutiveSiblings(t *testing.T) {
	x := realSym("x")
	y := realSym("y")
	z := realSym("z")

	first := mustAssign(t, ir.NewReference(x), ir.RealLiteral("0.0"))
	middle := mustAssign(t, ir.NewReference(y), ir.RealLiteral("1.0"))
	last := mustAssign(t, ir.NewReference(z), ir.RealLiteral("2.0"))
	if _, err := ir.NewSchedule(first, middle, last); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := (&ParallelTrans{}).Validate(first, last)
	if err == nil {
		t.Fatal("expected an error for non-consecutive siblings")
	}
	if !strings.Contains(err.Error(), "consecutive") {
		t.Errorf("unexpected message: %v", err)
	}

	if err := (&ParallelTrans{}).Validate(); err == nil {
		t.Fatal("expected an error for an empty node list")
	}
}

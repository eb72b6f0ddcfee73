package access

import (
	"strings"
	"testing"

	"github.com/rommelDB/PSyclone/ir"
	"github.com/rommelDB/PSyclone/symbols"
)

func intSym(name string) *symbols.DataSymbol {
	return symbols.NewDataSymbol(name, symbols.IntegerType)
}

func arraySym(t *testing.T, name string, ndims int) *symbols.DataSymbol {
	t.Helper()
	dims := make([]symbols.ArrayDimension, ndims)
	for i := range dims {
		dims[i] = symbols.Deferred
	}
	atype, err := symbols.NewArrayType(symbols.IntegerType, dims)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return symbols.NewDataSymbol(name, atype)
}

func TestReadBeforeWriteOrdering(t *testing.T) {
	x := intSym("x")

	// x = x + 1: the read of the right-hand side precedes the write.
	rhs := ir.NewBinaryOperation(ir.Add, ir.NewReference(x), ir.IntLiteral("1"))
	asg, err := ir.NewAssignment(ir.NewReference(x), rhs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seq, err := Collect(asg, x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seq.Accesses) != 2 {
		t.Fatalf("got %d accesses", len(seq.Accesses))
	}
	if seq.Accesses[0].Type != Read || seq.Accesses[1].Type != Write {
		t.Errorf("got %s then %s, want READ then WRITE",
			seq.Accesses[0].Type, seq.Accesses[1].Type)
	}
	if seq.FirstAccess().Type != Read {
		t.Error("first access must be the read")
	}
	if !seq.IsWritten() || !seq.IsRead() {
		t.Error("the sequence both reads and writes x")
	}
}

func TestIndicesAttachedAfterChildren(t *testing.T) {
	a := arraySym(t, "a", 1)
	i := intSym("i")

	// a(a(i)) = 1: the outer access's record is created before its index
	// children are visited, so the inner access appears after it in the
	// sequence, yet the outer record still carries its index expressions.
	inner, err := ir.NewArrayReference(a, []ir.DataNode{ir.NewReference(i)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outer, err := ir.NewArrayReference(a, []ir.DataNode{inner})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	asg, err := ir.NewAssignment(outer, ir.IntLiteral("1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seq, err := Collect(asg, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seq.Accesses) != 2 {
		t.Fatalf("got %d accesses", len(seq.Accesses))
	}

	first, second := seq.Accesses[0], seq.Accesses[1]
	if first.Type != Write || first.Node != ir.Node(outer) {
		t.Error("the outer write must be recorded first")
	}
	if second.Type != Read || second.Node != ir.Node(inner) {
		t.Error("the inner read must be recorded during index traversal")
	}
	if len(first.Indices()) != 1 || len(second.Indices()) != 1 {
		t.Error("both accesses must carry their index expressions")
	}
}

func TestLoopAccesses(t *testing.T) {
	i := intSym("i")
	n := intSym("n")
	a := arraySym(t, "a", 1)

	elem, err := ir.NewArrayReference(a, []ir.DataNode{ir.NewReference(i)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body, err := ir.NewAssignment(elem, ir.IntLiteral("0"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loop, err := ir.NewLoop(i, ir.IntLiteral("1"), ir.NewReference(n), ir.IntLiteral("1"), body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := CollectAll(loop)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The control variable is written by the loop itself before any use.
	ivar := info.For(i)
	if ivar == nil || ivar.FirstAccess().Type != Write {
		t.Error("the loop must write its control variable first")
	}

	// The bound is only read.
	bound := info.For(n)
	if bound == nil || bound.IsWritten() || !bound.IsRead() {
		t.Error("the stop bound must be read-only")
	}

	// First-appearance order: i (loop), n (stop), a (body).
	syms := info.Symbols()
	if len(syms) != 3 || syms[0] != i || syms[1] != n || syms[2] != a {
		t.Errorf("unexpected symbol order: %v", symNames(syms))
	}
}

func symNames(syms []*symbols.DataSymbol) []string {
	names := make([]string, len(syms))
	for i, sym := range syms {
		names[i] = sym.Name()
	}
	return names
}

func TestSameIndex(t *testing.T) {
	i := intSym("i")
	j := intSym("j")

	cases := []struct {
		name string
		a, b ir.DataNode
		want bool
	}{
		{"equal literals", ir.IntLiteral("3"), ir.IntLiteral("3"), true},
		{"unequal literals", ir.IntLiteral("3"), ir.IntLiteral("4"), false},
		{"same symbol", ir.NewReference(i), ir.NewReference(i), true},
		{"different symbols", ir.NewReference(i), ir.NewReference(j), false},
		{"same offset",
			ir.NewBinaryOperation(ir.Add, ir.NewReference(i), ir.IntLiteral("32")),
			ir.NewBinaryOperation(ir.Add, ir.NewReference(i), ir.IntLiteral("32")),
			true},
		{"different offset",
			ir.NewBinaryOperation(ir.Add, ir.NewReference(i), ir.IntLiteral("32")),
			ir.NewBinaryOperation(ir.Add, ir.NewReference(i), ir.IntLiteral("64")),
			false},
		{"literal vs reference", ir.IntLiteral("1"), ir.NewReference(i), false},
	}

	for _, tc := range cases {
		if got := SameIndex(tc.a, tc.b); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDecomposeIndex(t *testing.T) {
	i := intSym("i")

	dec, err := DecomposeIndex(ir.IntLiteral("7"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dec.Symbol != nil || dec.Offset != 7 {
		t.Errorf("got %+v", dec)
	}

	dec, err = DecomposeIndex(ir.NewReference(i))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dec.Symbol != i || dec.Offset != 0 {
		t.Errorf("got %+v", dec)
	}

	dec, err = DecomposeIndex(
		ir.NewBinaryOperation(ir.Add, ir.NewReference(i), ir.IntLiteral("32")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dec.Symbol != i || dec.Offset != 32 {
		t.Errorf("got %+v", dec)
	}

	dec, err = DecomposeIndex(
		ir.NewBinaryOperation(ir.Sub, ir.NewReference(i), ir.IntLiteral("1")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dec.Symbol != i || dec.Offset != -1 {
		t.Errorf("got %+v", dec)
	}

	// Literal + reference commutes.
	dec, err = DecomposeIndex(
		ir.NewBinaryOperation(ir.Add, ir.IntLiteral("1"), ir.NewReference(i)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dec.Symbol != i || dec.Offset != 1 {
		t.Errorf("got %+v", dec)
	}
}

func TestDecomposeIndexErrors(t *testing.T) {
	i := intSym("i")
	j := intSym("j")

	_, err := DecomposeIndex(
		ir.NewBinaryOperation(ir.Mul, ir.NewReference(i), ir.NewReference(j)))
	if err == nil || !strings.Contains(err.Error(), "Binary Operator of type *") {
		t.Errorf("expected a multiplication error, got %v", err)
	}

	_, err = DecomposeIndex(
		ir.NewBinaryOperation(ir.Add, ir.NewReference(i), ir.NewReference(j)))
	if err == nil || !strings.Contains(err.Error(),
		"types Reference and Reference, expected one Reference and one Literal") {
		t.Errorf("expected a reference-pair error, got %v", err)
	}

	a := arraySym(t, "a", 1)
	nested, nerr := ir.NewArrayReference(a, []ir.DataNode{ir.NewReference(i)})
	if nerr != nil {
		t.Fatalf("unexpected error: %v", nerr)
	}
	_, err = DecomposeIndex(nested)
	if err == nil || !strings.Contains(err.Error(), "ArrayReference object is not allowed") {
		t.Errorf("expected a nested-array error, got %v", err)
	}
}

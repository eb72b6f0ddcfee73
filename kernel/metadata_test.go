package kernel

import (
	"strings"
	"testing"
)

const computeCuMetadata = `type, extends(kernel_type) :: compute_cu
  type(go_arg), dimension(3) :: meta_args = (/ &
    go_arg(GO_WRITE, GO_CU, GO_POINTWISE), &
    go_arg(GO_READ, GO_CT, GO_STENCIL(000, 011, 000)), &
    go_arg(GO_READ, GO_GRID_AREA_T) /)
  integer :: iterates_over = GO_ALL_PTS
  integer :: index_offset = GO_OFFSET_SW
contains
  procedure, nopass :: code => compute_cu_code
end type compute_cu
`

func TestParseMetadata(t *testing.T) {
	meta, err := NewMetadata(computeCuMetadata)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if meta.TypeName() != "compute_cu" {
		t.Errorf("type name = %q", meta.TypeName())
	}
	if meta.IteratesOver() != "GO_ALL_PTS" {
		t.Errorf("iterates_over = %q", meta.IteratesOver())
	}
	if meta.IndexOffset() != "GO_OFFSET_SW" {
		t.Errorf("index_offset = %q", meta.IndexOffset())
	}
	if meta.Code() != "compute_cu_code" {
		t.Errorf("code = %q", meta.Code())
	}

	args := meta.Args()
	if len(args) != 3 {
		t.Fatalf("got %d args", len(args))
	}

	field, ok := args[0].(*FieldArg)
	if !ok {
		t.Fatalf("arg 0 is %T", args[0])
	}
	if field.Access() != "GO_WRITE" || field.GridPoint() != "GO_CU" || field.Form() != "GO_POINTWISE" {
		t.Errorf("arg 0 = %+v", field)
	}
	if field.Stencil() != nil || field.IsScalar() || field.IsVector() {
		t.Error("arg 0 must be a plain pointwise field")
	}

	stenciled, ok := args[1].(*FieldArg)
	if !ok {
		t.Fatalf("arg 1 is %T", args[1])
	}
	stencil := stenciled.Stencil()
	if len(stencil) != 3 || stencil[0] != "000" || stencil[1] != "011" || stencil[2] != "000" {
		t.Errorf("stencil = %v", stencil)
	}

	grid, ok := args[2].(*GridArg)
	if !ok {
		t.Fatalf("arg 2 is %T", args[2])
	}
	if grid.Access() != "GO_READ" || grid.Name() != "GO_GRID_AREA_T" {
		t.Errorf("arg 2 = %+v", grid)
	}
}

func TestParseScalarAndVectorFields(t *testing.T) {
	meta, err := NewMetadata(`type, extends(kernel_type) :: mixed_args
  type(go_arg), dimension(2) :: meta_args = (/ &
    go_arg(GO_READ, GO_R_SCALAR, GO_POINTWISE), &
    go_arg(GO_READWRITE, GO_CT*3, GO_POINTWISE) /)
  integer :: iterates_over = GO_INTERNAL_PTS
  integer :: index_offset = GO_OFFSET_NE
contains
  procedure, nopass :: code => mixed_code
end type mixed_args
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scalar := meta.Args()[0].(*FieldArg)
	if !scalar.IsScalar() || scalar.IsVector() {
		t.Error("a scalar grid-point type must mark the argument as a scalar")
	}

	vector := meta.Args()[1].(*FieldArg)
	if !vector.IsVector() || vector.VectorLength() != 3 {
		t.Errorf("vector length = %d", vector.VectorLength())
	}
	if vector.IsScalar() {
		t.Error("a field vector is not a scalar")
	}
}

func TestParseOperatorArg(t *testing.T) {
	meta, err := NewMetadata(`type, extends(kernel_type) :: op_kern
  type(go_arg), dimension(1) :: meta_args = (/ &
    go_arg(GO_READ, GO_REAL, W0, W3, GO_POINTWISE) /)
  integer :: iterates_over = GO_ALL_PTS
  integer :: index_offset = GO_OFFSET_SW
contains
  procedure, nopass :: code => op_code
end type op_kern
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	op, ok := meta.Args()[0].(*OperatorArg)
	if !ok {
		t.Fatalf("arg is %T", meta.Args()[0])
	}
	if op.DataType() != "GO_REAL" || op.FromSpace() != "W0" || op.ToSpace() != "W3" {
		t.Errorf("operator = %+v", op)
	}
}

func TestRoundTripUnchanged(t *testing.T) {
	meta, err := NewMetadata(computeCuMetadata)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// An unmodified descriptor reproduces its declaration text exactly.
	if meta.Encoding() != computeCuMetadata {
		t.Error("round trip of an unchanged descriptor must be lossless")
	}
}

func TestSettersReserialize(t *testing.T) {
	meta, err := NewMetadata(computeCuMetadata)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := meta.SetIteratesOver("GO_INTERNAL_PTS"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	encoded := meta.Encoding()
	if !strings.Contains(encoded, "iterates_over = GO_INTERNAL_PTS") {
		t.Error("encoding must reflect the new iterates_over value")
	}
	// Fields not being changed survive the re-serialization.
	if !strings.Contains(encoded, "index_offset = GO_OFFSET_SW") ||
		!strings.Contains(encoded, "code => compute_cu_code") ||
		!strings.Contains(encoded, "GO_STENCIL(000, 011, 000)") {
		t.Errorf("unchanged fields must be preserved:\n%s", encoded)
	}

	// The re-serialized form parses back to an equivalent descriptor.
	reparsed, err := NewMetadata(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reparsed.IteratesOver() != "GO_INTERNAL_PTS" || len(reparsed.Args()) != 3 {
		t.Error("re-serialized metadata must parse to the same descriptor")
	}

	// Setter validation.
	if err := meta.SetIteratesOver("bogus"); err == nil {
		t.Error("expected an error for an invalid iterates_over value")
	}
	if err := meta.SetIndexOffset("go_offset_up"); err == nil ||
		!strings.Contains(err.Error(), "go_offset_sw") {
		t.Errorf("expected an error listing the allowed offsets, got %v", err)
	}
}

func TestMetadataSectionErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{
			"missing meta_args",
			`type :: k
  integer :: iterates_over = GO_ALL_PTS
  integer :: index_offset = GO_OFFSET_SW
contains
  procedure, nopass :: code => k_code
end type k`,
			"expecting 'meta_args' to be an entry",
		},
		{
			"missing iterates_over",
			`type :: k
  type(go_arg), dimension(1) :: meta_args = (/ go_arg(GO_READ, GO_GRID_AREA_T) /)
  integer :: index_offset = GO_OFFSET_SW
contains
  procedure, nopass :: code => k_code
end type k`,
			"expecting 'iterates_over' to be an entry",
		},
		{
			"duplicate index_offset",
			`type :: k
  type(go_arg), dimension(1) :: meta_args = (/ go_arg(GO_READ, GO_GRID_AREA_T) /)
  integer :: iterates_over = GO_ALL_PTS
  integer :: index_offset = GO_OFFSET_SW
  integer :: index_offset = GO_OFFSET_NE
contains
  procedure, nopass :: code => k_code
end type k`,
			"'index_offset' should only be defined once",
		},
		{
			"unknown section",
			`type :: k
  integer :: colour_map = GO_ALL_PTS
end type k`,
			"one of 'meta_args', 'iterates_over', or 'index_offset', but found 'colour_map'",
		},
		{
			"missing contains",
			`type :: k
  type(go_arg), dimension(1) :: meta_args = (/ go_arg(GO_READ, GO_GRID_AREA_T) /)
  integer :: iterates_over = GO_ALL_PTS
  integer :: index_offset = GO_OFFSET_SW
end type k`,
			"does not have a contains section",
		},
		{
			"two bound procedures",
			`type :: k
  type(go_arg), dimension(1) :: meta_args = (/ go_arg(GO_READ, GO_GRID_AREA_T) /)
  integer :: iterates_over = GO_ALL_PTS
  integer :: index_offset = GO_OFFSET_SW
contains
  procedure, nopass :: code => k_code
  procedure, nopass :: code => other_code
end type k`,
			"exactly one procedure binding",
		},
	}

	for _, tc := range cases {
		_, err := NewMetadata(tc.src)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: got %v, want message containing %q", tc.name, err, tc.want)
		}
	}
}

func TestArgumentArityErrors(t *testing.T) {
	// 4 entries match no category.
	src := `type :: k
  type(go_arg), dimension(1) :: meta_args = (/ go_arg(GO_READ, GO_CT, W0, GO_POINTWISE) /)
  integer :: iterates_over = GO_ALL_PTS
  integer :: index_offset = GO_OFFSET_SW
contains
  procedure, nopass :: code => k_code
end type k`
	_, err := NewMetadata(src)
	if err == nil || !strings.Contains(err.Error(), "should have 2, 3 or 5 arguments, but found 4") {
		t.Errorf("got %v", err)
	}
}

func TestVocabularyErrors(t *testing.T) {
	cases := []struct {
		name string
		arg  string
		want string
	}{
		{"bad access", "go_arg(GO_SCRIBBLE, GO_CT, GO_POINTWISE)",
			"first metadata entry for a field argument should be one of ['go_read', 'go_write', 'go_readwrite'], but found 'GO_SCRIBBLE'"},
		{"bad grid point", "go_arg(GO_READ, GO_XX, GO_POINTWISE)",
			"second metadata entry for a field argument should be one of"},
		{"bad form", "go_arg(GO_READ, GO_CT, GO_DIAGONAL)",
			"or 'go_stencil(...)', but found 'GO_DIAGONAL'"},
		{"bad grid property", "go_arg(GO_READ, GO_GRID_VOLUME)",
			"second metadata entry for a grid property argument should be one of"},
		{"bad operator space", "go_arg(GO_READ, GO_REAL, W9, W3, GO_POINTWISE)",
			"third metadata entry for an operator argument should be one of"},
	}

	for _, tc := range cases {
		src := `type :: k
  type(go_arg), dimension(1) :: meta_args = (/ ` + tc.arg + ` /)
  integer :: iterates_over = GO_ALL_PTS
  integer :: index_offset = GO_OFFSET_SW
contains
  procedure, nopass :: code => k_code
end type k`
		_, err := NewMetadata(src)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: got %v", tc.name, err)
		}
	}
}

func TestStencilErrors(t *testing.T) {
	badPattern := `type :: k
  type(go_arg), dimension(1) :: meta_args = (/ go_arg(GO_READ, GO_CT, GO_STENCIL(000, 021, 000)) /)
  integer :: iterates_over = GO_ALL_PTS
  integer :: index_offset = GO_OFFSET_SW
contains
  procedure, nopass :: code => k_code
end type k`
	_, err := NewMetadata(badPattern)
	if err == nil || !strings.Contains(err.Error(), "follow the pattern [01]{3}, but found '021'") {
		t.Errorf("got %v", err)
	}

	twoDims := `type :: k
  type(go_arg), dimension(1) :: meta_args = (/ go_arg(GO_READ, GO_CT, GO_STENCIL(000, 011)) /)
  integer :: iterates_over = GO_ALL_PTS
  integer :: index_offset = GO_OFFSET_SW
contains
  procedure, nopass :: code => k_code
end type k`
	_, err = NewMetadata(twoDims)
	if err == nil || !strings.Contains(err.Error(), "should contain 3 arguments, but found 2") {
		t.Errorf("got %v", err)
	}
}

func TestMetadataSymbol(t *testing.T) {
	sym, err := NewMetadataSymbol(computeCuMetadata)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sym.Name() != "compute_cu" {
		t.Errorf("symbol name = %q", sym.Name())
	}
	if sym.Meta.Code() != "compute_cu_code" {
		t.Errorf("code = %q", sym.Meta.Code())
	}
}

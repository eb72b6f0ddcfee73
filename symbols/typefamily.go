package symbols

import (
	"sort"
	"strings"

	"github.com/rommelDB/PSyclone/report"
)

// FamilyID identifies one member of the closed set of domain type families.
// Symbols created through a registry carry their family descriptor so that
// run-time classification never compares name strings.
type FamilyID int

const (
	// Generic scalar families, one per intrinsic kind.
	IntegerScalarFamily FamilyID = iota
	RealScalarFamily
	LogicalScalarFamily

	// Specific integer-scalar families describing mesh quantities.
	CellPositionFamily
	MeshHeightFamily
	NumberOfCellsFamily
	NumberOfDofsFamily
	NumberOfUniqueDofsFamily
	NumberOfFacesFamily
	NumberOfEdgesFamily
	NumberOfQrPointsInXyFamily
	NumberOfQrPointsInZFamily
	NumberOfQrPointsInFacesFamily
	NumberOfQrPointsInEdgesFamily

	// Field-data array families, one per intrinsic kind.
	RealFieldDataFamily
	IntegerFieldDataFamily
	LogicalFieldDataFamily

	// Other array families.
	OperatorFamily
	DofMapFamily
	BasisFunctionQrXyozFamily
	BasisFunctionQrFaceFamily
	BasisFunctionQrEdgeFamily
	DiffBasisFunctionQrXyozFamily
	DiffBasisFunctionQrFaceFamily
	DiffBasisFunctionQrEdgeFamily
	QrWeightsInXyFamily
	QrWeightsInZFamily
	QrWeightsInFacesFamily
	QrWeightsInEdgesFamily
)

// Family describes one type family: a name, the shape of the types its
// members carry, and the extra attributes every member must declare.  All
// families are built from the declarative tables below; no family is ever
// synthesized at run time.
type Family struct {
	ID   FamilyID
	Name string

	// Intrinsic and the precision symbol apply to the family's scalar
	// type (for array families, its element type).
	Intrinsic Intrinsic

	// NumDims is zero for scalar families and the required dimension
	// count for array families.
	NumDims int

	// Attributes lists the extra attribute names every member symbol must
	// supply at construction, e.g. "fs" for a function-space name.
	Attributes []string

	precision *DataSymbol
}

// IsArray reports whether members of the family are arrays.
func (f *Family) IsArray() bool {
	return f.NumDims > 0
}

// -----------------------------------------------------------------------------

// The declarative family tables.  Scalar rows name a family and its
// intrinsic kind; specific scalar rows additionally name extra attributes.
// Array rows name the element intrinsic, the dimension count, and the extra
// attributes.

type scalarRow struct {
	id        FamilyID
	name      string
	intrinsic Intrinsic
	attrs     []string
}

type arrayRow struct {
	id        FamilyID
	name      string
	intrinsic Intrinsic
	numDims   int
	attrs     []string
}

var scalarRows = []scalarRow{
	{IntegerScalarFamily, "IntegerScalar", IntegerKind, nil},
	{RealScalarFamily, "RealScalar", RealKind, nil},
	{LogicalScalarFamily, "LogicalScalar", BooleanKind, nil},

	{CellPositionFamily, "CellPosition", IntegerKind, nil},
	{MeshHeightFamily, "MeshHeight", IntegerKind, nil},
	{NumberOfCellsFamily, "NumberOfCells", IntegerKind, nil},
	{NumberOfDofsFamily, "NumberOfDofs", IntegerKind, []string{"fs"}},
	{NumberOfUniqueDofsFamily, "NumberOfUniqueDofs", IntegerKind, []string{"fs"}},
	{NumberOfFacesFamily, "NumberOfFaces", IntegerKind, nil},
	{NumberOfEdgesFamily, "NumberOfEdges", IntegerKind, nil},
	{NumberOfQrPointsInXyFamily, "NumberOfQrPointsInXy", IntegerKind, nil},
	{NumberOfQrPointsInZFamily, "NumberOfQrPointsInZ", IntegerKind, nil},
	{NumberOfQrPointsInFacesFamily, "NumberOfQrPointsInFaces", IntegerKind, nil},
	{NumberOfQrPointsInEdgesFamily, "NumberOfQrPointsInEdges", IntegerKind, nil},
}

var arrayRows = []arrayRow{
	{RealFieldDataFamily, "RealFieldData", RealKind, 1, []string{"fs"}},
	{IntegerFieldDataFamily, "IntegerFieldData", IntegerKind, 1, []string{"fs"}},
	{LogicalFieldDataFamily, "LogicalFieldData", BooleanKind, 1, []string{"fs"}},

	{OperatorFamily, "Operator", RealKind, 3, []string{"fs_from", "fs_to"}},
	{DofMapFamily, "DofMap", IntegerKind, 1, []string{"fs"}},
	{BasisFunctionQrXyozFamily, "BasisFunctionQrXyoz", RealKind, 4, []string{"fs"}},
	{BasisFunctionQrFaceFamily, "BasisFunctionQrFace", RealKind, 4, []string{"fs"}},
	{BasisFunctionQrEdgeFamily, "BasisFunctionQrEdge", RealKind, 4, []string{"fs"}},
	{DiffBasisFunctionQrXyozFamily, "DiffBasisFunctionQrXyoz", RealKind, 4, []string{"fs"}},
	{DiffBasisFunctionQrFaceFamily, "DiffBasisFunctionQrFace", RealKind, 4, []string{"fs"}},
	{DiffBasisFunctionQrEdgeFamily, "DiffBasisFunctionQrEdge", RealKind, 4, []string{"fs"}},
	{QrWeightsInXyFamily, "QrWeightsInXy", RealKind, 1, nil},
	{QrWeightsInZFamily, "QrWeightsInZ", RealKind, 1, nil},
	{QrWeightsInFacesFamily, "QrWeightsInFaces", RealKind, 1, nil},
	{QrWeightsInEdgesFamily, "QrWeightsInEdges", RealKind, 1, nil},
}

// -----------------------------------------------------------------------------

// FamilyRegistry holds the closed set of type-family descriptors together
// with the precision symbols their member types reference.  Registries are
// constructed explicitly and passed by reference to whatever components need
// them; there is no ambient global instance.
type FamilyRegistry struct {
	families map[FamilyID]*Family

	constants  *ContainerSymbol
	precisions map[Intrinsic]*DataSymbol
}

// NewFamilyRegistry builds a registry from the declarative family tables.
// The registry also creates the precision symbols (i_def, r_def, l_def)
// imported from the domain constants container, and binds each family's
// scalar type to the matching one.
func NewFamilyRegistry() *FamilyRegistry {
	constants := NewContainerSymbol("constants_mod")

	precisions := map[Intrinsic]*DataSymbol{
		IntegerKind: NewImportedSymbol("i_def", constants),
		RealKind:    NewImportedSymbol("r_def", constants),
		BooleanKind: NewImportedSymbol("l_def", constants),
	}

	reg := &FamilyRegistry{
		families:   make(map[FamilyID]*Family),
		constants:  constants,
		precisions: precisions,
	}

	for _, row := range scalarRows {
		reg.families[row.id] = &Family{
			ID:         row.id,
			Name:       row.name,
			Intrinsic:  row.intrinsic,
			Attributes: row.attrs,
			precision:  precisions[row.intrinsic],
		}
	}

	for _, row := range arrayRows {
		reg.families[row.id] = &Family{
			ID:         row.id,
			Name:       row.name,
			Intrinsic:  row.intrinsic,
			NumDims:    row.numDims,
			Attributes: row.attrs,
			precision:  precisions[row.intrinsic],
		}
	}

	return reg
}

// ConstantsContainer returns the container symbol from which the precision
// symbols are imported.
func (fr *FamilyRegistry) ConstantsContainer() *ContainerSymbol {
	return fr.constants
}

// PrecisionSymbol returns the precision symbol used by families of the given
// intrinsic kind.
func (fr *FamilyRegistry) PrecisionSymbol(intrinsic Intrinsic) *DataSymbol {
	return fr.precisions[intrinsic]
}

// Family returns the descriptor for the given family identity.
func (fr *FamilyRegistry) Family(id FamilyID) (*Family, error) {
	fam, ok := fr.families[id]
	if !ok {
		return nil, report.Typef("unknown type family identity '%d'", int(id))
	}
	return fam, nil
}

// scalarTypeFor builds the scalar type carried by members of the family
// (for array families, the element type).
func (fr *FamilyRegistry) scalarTypeFor(fam *Family) (*ScalarType, error) {
	return NewScalarType(fam.Intrinsic, SymbolPrecision{Symbol: fam.precision})
}

// checkAttributes verifies that the supplied attributes match the family's
// declared schema exactly.
func checkAttributes(fam *Family, attrs map[string]string) error {
	missing := []string{}
	for _, name := range fam.Attributes {
		if _, ok := attrs[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return report.Typef(
			"'%s' expected the attribute(s) '%s' to be supplied but they were not",
			fam.Name, strings.Join(missing, "', '"))
	}

	extra := []string{}
	for name := range attrs {
		found := false
		for _, want := range fam.Attributes {
			if name == want {
				found = true
				break
			}
		}
		if !found {
			extra = append(extra, name)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return report.Typef(
			"'%s' does not declare the attribute(s) '%s'",
			fam.Name, strings.Join(extra, "', '"))
	}

	return nil
}

// NewScalarSymbol creates a symbol belonging to a scalar family.  The
// supplied attributes must match the family's declared schema exactly.
func (fr *FamilyRegistry) NewScalarSymbol(id FamilyID, name string, attrs map[string]string) (*DataSymbol, error) {
	fam, err := fr.Family(id)
	if err != nil {
		return nil, err
	}
	if fam.IsArray() {
		return nil, report.Typef(
			"'%s' is an array family; use NewArraySymbol to create its members", fam.Name)
	}
	if err := checkAttributes(fam, attrs); err != nil {
		return nil, err
	}

	stype, err := fr.scalarTypeFor(fam)
	if err != nil {
		return nil, err
	}

	sym := NewDataSymbol(name, stype)
	sym.family = fam
	sym.Attributes = attrs
	return sym, nil
}

// NewArraySymbol creates a symbol belonging to an array family.  The number
// of supplied dimensions must match the family's declared dimensionality and
// the supplied attributes must match its schema exactly.
func (fr *FamilyRegistry) NewArraySymbol(id FamilyID, name string, dims []ArrayDimension, attrs map[string]string) (*DataSymbol, error) {
	fam, err := fr.Family(id)
	if err != nil {
		return nil, err
	}
	if !fam.IsArray() {
		return nil, report.Typef(
			"'%s' is a scalar family; use NewScalarSymbol to create its members", fam.Name)
	}
	if len(dims) != fam.NumDims {
		return nil, report.Typef(
			"'%s' expected the number of supplied dimensions to be %d but found %d",
			fam.Name, fam.NumDims, len(dims))
	}
	if err := checkAttributes(fam, attrs); err != nil {
		return nil, err
	}

	elem, err := fr.scalarTypeFor(fam)
	if err != nil {
		return nil, err
	}

	atype, err := NewArrayType(elem, dims)
	if err != nil {
		return nil, err
	}

	sym := NewDataSymbol(name, atype)
	sym.family = fam
	sym.Attributes = attrs
	return sym, nil
}

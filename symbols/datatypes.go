package symbols

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rommelDB/PSyclone/report"
)

// DataType is the parent interface for all type descriptors.
type DataType interface {
	// String returns a representative string of the type for purposes of
	// error reporting.
	String() string

	// Copy creates a new descriptor with the same properties as this one.
	// The returned descriptor is never reference-identical to the receiver.
	Copy() DataType
}

// -----------------------------------------------------------------------------

// Intrinsic enumerates the scalar intrinsic kinds supported by the IR.
type Intrinsic int

const (
	IntegerKind Intrinsic = iota
	RealKind
	BooleanKind
	CharacterKind
)

func (ik Intrinsic) String() string {
	switch ik {
	case IntegerKind:
		return "integer"
	case RealKind:
		return "real"
	case BooleanKind:
		return "boolean"
	case CharacterKind:
		return "character"
	default:
		return "unknown"
	}
}

// Precision describes the precision of a scalar type.  It is one of:
// ByteSize (an explicit positive byte count), DefaultPrecision (a named
// default-precision tag), or SymbolPrecision (a reference to an
// integer-typed symbol holding the precision at run time).
type Precision interface {
	precisionRepr() string
}

// ByteSize is a precision given as an explicit number of bytes.
type ByteSize int

func (bs ByteSize) precisionRepr() string {
	return strconv.Itoa(int(bs))
}

// DefaultPrecision is a named default-precision tag.
type DefaultPrecision int

const (
	Single DefaultPrecision = iota
	Double
)

func (dp DefaultPrecision) precisionRepr() string {
	if dp == Double {
		return "double"
	}
	return "single"
}

// SymbolPrecision is a precision held by another symbol at run time.  The
// referenced symbol must be of integer scalar (or deferred) type.
type SymbolPrecision struct {
	Symbol *DataSymbol
}

func (sp SymbolPrecision) precisionRepr() string {
	return sp.Symbol.Name()
}

// -----------------------------------------------------------------------------

// ScalarType describes a scalar datatype and its precision.
type ScalarType struct {
	Intrinsic Intrinsic
	Precision Precision
}

// NewScalarType constructs a scalar type descriptor.  It fails with a
// TypeError if the intrinsic kind is not a recognized tag or the precision is
// not one of {positive byte count, default-precision tag, integer-scalar
// symbol}.
func NewScalarType(intrinsic Intrinsic, precision Precision) (*ScalarType, error) {
	if intrinsic < IntegerKind || intrinsic > CharacterKind {
		return nil, report.Typef(
			"ScalarType expected 'intrinsic' to be a recognized intrinsic kind but found '%d'",
			int(intrinsic))
	}

	switch prec := precision.(type) {
	case ByteSize:
		if prec <= 0 {
			return nil, report.Typef(
				"the precision of a ScalarType specified as a number of bytes must be > 0 but found '%d'",
				int(prec))
		}
	case DefaultPrecision:
		if prec != Single && prec != Double {
			return nil, report.Typef(
				"ScalarType expected a default-precision tag of single or double but found '%d'",
				int(prec))
		}
	case SymbolPrecision:
		if prec.Symbol == nil {
			return nil, report.Typef(
				"a symbol used as the precision of a ScalarType must not be nil")
		}

		switch dt := prec.Symbol.Datatype.(type) {
		case *ScalarType:
			if dt.Intrinsic != IntegerKind {
				return nil, report.Typef(
					"a symbol used as the precision of a ScalarType must be of either deferred or scalar integer type but got: %s",
					dt.String())
			}
		case *DeferredType:
			// Precision not yet resolved: acceptable.
		default:
			return nil, report.Typef(
				"a symbol used as the precision of a ScalarType must be of either deferred or scalar integer type but got: %s",
				prec.Symbol.Datatype.String())
		}
	default:
		return nil, report.Typef(
			"ScalarType expected 'precision' to be a byte count, precision tag, or integer-scalar symbol but found '%T'",
			precision)
	}

	return &ScalarType{Intrinsic: intrinsic, Precision: precision}, nil
}

func (st *ScalarType) String() string {
	return fmt.Sprintf("Scalar<%s, %s>", st.Intrinsic, st.Precision.precisionRepr())
}

func (st *ScalarType) Copy() DataType {
	return &ScalarType{Intrinsic: st.Intrinsic, Precision: st.Precision}
}

// -----------------------------------------------------------------------------

// ArrayDimension describes one dimension specifier of an array type.
type ArrayDimension interface {
	dimensionRepr() string
}

// LiteralDimension is a dimension with a literal extent.
type LiteralDimension int

func (ld LiteralDimension) dimensionRepr() string {
	return strconv.Itoa(int(ld))
}

// SymbolDimension is a symbolic extent bound to a symbol.
type SymbolDimension struct {
	Symbol *DataSymbol
}

func (sd SymbolDimension) dimensionRepr() string {
	return sd.Symbol.Name()
}

// Extent enumerates array dimension extents that are unspecified at compile
// time.  When the extent must exist and is accessible via the run-time
// system it is Attribute.  When it may or may not be defined in the current
// scope (e.g. the array may need to be allocated) it is Deferred.
type Extent int

const (
	Deferred Extent = iota
	Attribute
)

func (ex Extent) dimensionRepr() string {
	if ex == Attribute {
		return "'attribute'"
	}
	return "'deferred'"
}

// ArrayType describes an array datatype: an element type plus an ordered
// list of dimension specifiers.  The dimension count is fixed at
// construction and never changes.
type ArrayType struct {
	ElementType DataType
	Shape       []ArrayDimension
}

// NewArrayType constructs an array type descriptor.  It fails with a
// TypeError if the element type is not a valid scalar or previously-defined
// descriptor, or the shape is empty.
func NewArrayType(elementType DataType, shape []ArrayDimension) (*ArrayType, error) {
	if elementType == nil {
		return nil, report.Typef(
			"ArrayType expected 'elementType' to be a DataType but found nil")
	}
	if _, nested := elementType.(*ArrayType); nested {
		return nil, report.Typef(
			"ArrayType expected a scalar or named element type but found the array type '%s'",
			elementType.String())
	}
	if len(shape) == 0 {
		return nil, report.Typef(
			"ArrayType expected 'shape' to contain at least one dimension but found none")
	}
	for i, dim := range shape {
		if dim == nil {
			return nil, report.Typef(
				"ArrayType dimension %d must be a literal extent, a symbol, or an extent tag but found nil", i+1)
		}
	}

	return &ArrayType{ElementType: elementType, Shape: shape}, nil
}

func (at *ArrayType) String() string {
	dims := make([]string, len(at.Shape))
	for i, dim := range at.Shape {
		dims[i] = dim.dimensionRepr()
	}

	return fmt.Sprintf("Array<%s, shape=[%s]>", at.ElementType.String(), strings.Join(dims, ", "))
}

// Copy performs a deep copy of the element type and a shallow copy of the
// dimension list.
func (at *ArrayType) Copy() DataType {
	shape := make([]ArrayDimension, len(at.Shape))
	copy(shape, at.Shape)

	return &ArrayType{ElementType: at.ElementType.Copy(), Shape: shape}
}

// -----------------------------------------------------------------------------

// DeferredType indicates that a type is not yet known.
type DeferredType struct{}

func (dt *DeferredType) String() string {
	return "DeferredType"
}

func (dt *DeferredType) Copy() DataType {
	return &DeferredType{}
}

// -----------------------------------------------------------------------------

func mustScalar(intrinsic Intrinsic, precision Precision) *ScalarType {
	st, err := NewScalarType(intrinsic, precision)
	if err != nil {
		panic(err)
	}
	return st
}

// Common scalar datatypes.
var (
	RealType      = mustScalar(RealKind, Single)
	RealDouble    = mustScalar(RealKind, Double)
	Real4Type     = mustScalar(RealKind, ByteSize(4))
	Real8Type     = mustScalar(RealKind, ByteSize(8))
	IntegerType   = mustScalar(IntegerKind, Single)
	Integer4Type  = mustScalar(IntegerKind, ByteSize(4))
	Integer8Type  = mustScalar(IntegerKind, ByteSize(8))
	BooleanType   = mustScalar(BooleanKind, Single)
	CharacterType = mustScalar(CharacterKind, ByteSize(1))
)

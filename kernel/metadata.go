// Package kernel parses and validates the metadata declarations that kernels
// attach to a derived type, describing their arguments, iteration space,
// and index-offset convention.
package kernel

import (
	"fmt"
	"strings"

	"github.com/rommelDB/PSyclone/report"
)

// Arg is one argument descriptor of a kernel-metadata declaration.  The
// concrete kind is determined solely by the entry count of its declaration:
// 2 entries describe a grid property, 3 a field (or scalar), and 5 an
// operator.
type Arg interface {
	// Access returns the declared access mode of the argument.
	Access() string

	encode() string
}

// GridArg describes a grid-property argument: an access mode and the name
// of the requested grid property.
type GridArg struct {
	access   string
	property string
}

func (ga *GridArg) Access() string {
	return ga.access
}

// Name returns the grid-property name.
func (ga *GridArg) Name() string {
	return ga.property
}

func (ga *GridArg) encode() string {
	return fmt.Sprintf("go_arg(%s, %s)", ga.access, ga.property)
}

// FieldArg describes a field argument: an access mode, a grid-point type,
// and an access form that is either a named pattern or an explicit stencil.
// A scalar grid-point type marks the argument as a plain scalar; a vector
// length greater than one marks it as a field vector.
type FieldArg struct {
	access       string
	gridPoint    string
	vectorLength int
	form         string
	stencil      []string
}

func (fa *FieldArg) Access() string {
	return fa.access
}

// GridPoint returns the grid-point type of the field.
func (fa *FieldArg) GridPoint() string {
	return fa.gridPoint
}

// Form returns the access-form name, or "go_stencil" for an explicit
// stencil.
func (fa *FieldArg) Form() string {
	return fa.form
}

// Stencil returns the three stencil dimension encodings, or nil when the
// form is a named pattern.
func (fa *FieldArg) Stencil() []string {
	return fa.stencil
}

// VectorLength returns the field-vector length, or 1 for a plain field.
func (fa *FieldArg) VectorLength() int {
	if fa.vectorLength == 0 {
		return 1
	}
	return fa.vectorLength
}

// IsScalar reports whether the argument is a plain scalar, i.e. its
// grid-point type is one of the scalar types.
func (fa *FieldArg) IsScalar() bool {
	return inSet(scalarGridTypes, fa.gridPoint)
}

// IsVector reports whether the argument is a field vector.
func (fa *FieldArg) IsVector() bool {
	return fa.vectorLength > 1
}

func (fa *FieldArg) encode() string {
	gridPoint := fa.gridPoint
	if fa.vectorLength > 1 {
		gridPoint = fmt.Sprintf("%s*%d", gridPoint, fa.vectorLength)
	}
	return fmt.Sprintf("go_arg(%s, %s, %s)", fa.access, gridPoint, encodeForm(fa.form, fa.stencil))
}

// OperatorArg describes an operator argument: an access mode, a data type,
// the function spaces it maps from and to, and an access form.
type OperatorArg struct {
	access    string
	dataType  string
	fromSpace string
	toSpace   string
	form      string
	stencil   []string
}

func (oa *OperatorArg) Access() string {
	return oa.access
}

// DataType returns the operator's data type.
func (oa *OperatorArg) DataType() string {
	return oa.dataType
}

// FromSpace returns the function space the operator maps from.
func (oa *OperatorArg) FromSpace() string {
	return oa.fromSpace
}

// ToSpace returns the function space the operator maps to.
func (oa *OperatorArg) ToSpace() string {
	return oa.toSpace
}

// Form returns the access-form name, or "go_stencil" for an explicit
// stencil.
func (oa *OperatorArg) Form() string {
	return oa.form
}

// Stencil returns the three stencil dimension encodings, or nil when the
// form is a named pattern.
func (oa *OperatorArg) Stencil() []string {
	return oa.stencil
}

func (oa *OperatorArg) encode() string {
	return fmt.Sprintf("go_arg(%s, %s, %s, %s, %s)",
		oa.access, oa.dataType, oa.fromSpace, oa.toSpace, encodeForm(oa.form, oa.stencil))
}

func encodeForm(form string, stencil []string) string {
	if stencil == nil {
		return form
	}
	return fmt.Sprintf("%s(%s)", form, strings.Join(stencil, ", "))
}

// -----------------------------------------------------------------------------

// Metadata is the parsed descriptor of one kernel-metadata declaration.
// The declaration text is parsed exactly once, at construction; the textual
// encoding is kept as a cache that is invalidated by setters and re-derived
// on demand.  Round-tripping an unmodified descriptor reproduces the
// original declaration text exactly.
type Metadata struct {
	typeName string
	extends  string

	args         []Arg
	iteratesOver string
	indexOffset  string
	code         string

	encoding string
}

// NewMetadata parses and validates a kernel-metadata declaration.
func NewMetadata(declaration string) (*Metadata, error) {
	parser, err := newParser(declaration)
	if err != nil {
		return nil, err
	}

	meta, err := parser.parseMetadata()
	if err != nil {
		return nil, err
	}

	meta.encoding = declaration
	return meta, nil
}

// TypeName returns the name of the declared metadata type.
func (m *Metadata) TypeName() string {
	return m.typeName
}

// Args returns the argument descriptors in declaration order.
func (m *Metadata) Args() []Arg {
	return m.args
}

// IteratesOver returns the iteration-space tag.
func (m *Metadata) IteratesOver() string {
	return m.iteratesOver
}

// SetIteratesOver replaces the iteration-space tag.
func (m *Metadata) SetIteratesOver(value string) error {
	if !inSet(validIteratesOver, value) {
		return report.Parsef("expected one of %s, but found '%s'",
			setString(validIteratesOver), value)
	}
	m.iteratesOver = value
	m.encoding = ""
	return nil
}

// IndexOffset returns the index-offset convention tag.
func (m *Metadata) IndexOffset() string {
	return m.indexOffset
}

// SetIndexOffset replaces the index-offset convention tag.
func (m *Metadata) SetIndexOffset(value string) error {
	if !inSet(validOffsetNames, value) {
		return report.Parsef("expected one of %s, but found '%s'",
			setString(validOffsetNames), value)
	}
	m.indexOffset = value
	m.encoding = ""
	return nil
}

// Code returns the name of the kernel's executable entry point.
func (m *Metadata) Code() string {
	return m.code
}

// SetCode replaces the entry-point routine name.
func (m *Metadata) SetCode(value string) error {
	if value == "" {
		return report.Parsef("the kernel procedure name must not be empty")
	}
	m.code = value
	m.encoding = ""
	return nil
}

// Encoding returns the textual form of the metadata.  For an unmodified
// descriptor this is the original declaration; once a setter has run, the
// encoding is re-serialized from the descriptor.
func (m *Metadata) Encoding() string {
	if m.encoding == "" {
		m.encoding = m.render()
	}
	return m.encoding
}

func (m *Metadata) String() string {
	return m.Encoding()
}

func (m *Metadata) render() string {
	var sb strings.Builder

	if m.extends != "" {
		fmt.Fprintf(&sb, "type, extends(%s) :: %s\n", m.extends, m.typeName)
	} else {
		fmt.Fprintf(&sb, "type :: %s\n", m.typeName)
	}

	fmt.Fprintf(&sb, "  type(go_arg), dimension(%d) :: meta_args = (/ &\n", len(m.args))
	for i, arg := range m.args {
		sep := ", &"
		if i == len(m.args)-1 {
			sep = " /)"
		}
		fmt.Fprintf(&sb, "    %s%s\n", arg.encode(), sep)
	}

	fmt.Fprintf(&sb, "  integer :: iterates_over = %s\n", m.iteratesOver)
	fmt.Fprintf(&sb, "  integer :: index_offset = %s\n", m.indexOffset)
	sb.WriteString("contains\n")
	fmt.Fprintf(&sb, "  procedure, nopass :: code => %s\n", m.code)
	fmt.Fprintf(&sb, "end type %s\n", m.typeName)

	return sb.String()
}

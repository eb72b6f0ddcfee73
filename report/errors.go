package report

import "fmt"

// ParseError is produced when textual kernel metadata is malformed or uses a
// token outside its closed allowed-value set.  The message always names the
// offending value and, where applicable, the allowed set.
type ParseError struct {
	Message string
}

func (pe *ParseError) Error() string {
	return pe.Message
}

// Parsef creates a new metadata parse error.
func Parsef(msg string, args ...interface{}) *ParseError {
	return &ParseError{Message: fmt.Sprintf(msg, args...)}
}

// -----------------------------------------------------------------------------

// TypeError is produced when a type descriptor is constructed with invalid
// arguments: an unrecognized intrinsic kind, a non-positive byte precision,
// a precision symbol that is not an integer scalar, etc.
type TypeError struct {
	Message string
}

func (te *TypeError) Error() string {
	return te.Message
}

// Typef creates a new type-construction error.
func Typef(msg string, args ...interface{}) *TypeError {
	return &TypeError{Message: fmt.Sprintf(msg, args...)}
}

// -----------------------------------------------------------------------------

// GenerationError is produced when an attempt is made to build or mutate an
// IR node in a way that violates its shape contract: wrong child count, wrong
// child type, an array reference whose index count does not match the
// symbol's dimensionality, and so on.  It is raised immediately at the
// construction/mutation call, never deferred to a later pass.
type GenerationError struct {
	Message string
}

func (ge *GenerationError) Error() string {
	return ge.Message
}

// Generationf creates a new structural generation error.
func Generationf(msg string, args ...interface{}) *GenerationError {
	return &GenerationError{Message: fmt.Sprintf(msg, args...)}
}

// -----------------------------------------------------------------------------

// TransformationError is produced by the Validate step of a transformation
// when the target subtree does not meet the transformation's preconditions.
// Validate never mutates, so a caller can test applicability safely.
type TransformationError struct {
	Message string
}

func (tre *TransformationError) Error() string {
	return tre.Message
}

// Transformationf creates a new transformation validation error.
func Transformationf(msg string, args ...interface{}) *TransformationError {
	return &TransformationError{Message: fmt.Sprintf(msg, args...)}
}

// -----------------------------------------------------------------------------

// TangentLinearError is produced when an assignment fails the tangent-linear
// preconditions of the adjoint transformation.  It is distinct from
// TransformationError so callers can tell "this code is not tangent-linear"
// apart from other validation failures.
type TangentLinearError struct {
	Message string
}

func (tle *TangentLinearError) Error() string {
	return tle.Message
}

// TangentLinearf creates a new tangent-linear precondition error.
func TangentLinearf(msg string, args ...interface{}) *TangentLinearError {
	return &TangentLinearError{Message: fmt.Sprintf(msg, args...)}
}

// -----------------------------------------------------------------------------

// InternalError indicates an invariant violation that should be unreachable
// given correct upstream construction: e.g. an array-access node with zero
// children.  These report a bug in an earlier pass, not malformed input, and
// are displayed differently from user-facing errors.
type InternalError struct {
	Message string
}

func (ie *InternalError) Error() string {
	return "internal error: " + ie.Message
}

// Internalf creates a new internal-consistency error.
func Internalf(msg string, args ...interface{}) *InternalError {
	return &InternalError{Message: fmt.Sprintf(msg, args...)}
}

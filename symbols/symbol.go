package symbols

import "fmt"

// Visibility enumerates the visibility of a symbol in the scope in which it
// is declared.
type Visibility int

const (
	Public Visibility = iota
	Private
)

func (v Visibility) String() string {
	if v == Private {
		return "private"
	}
	return "public"
}

// -----------------------------------------------------------------------------

// ArgumentAccess enumerates how a routine argument is accessed within the
// routine body.
type ArgumentAccess int

const (
	ReadAccess ArgumentAccess = iota
	WriteAccess
	ReadWriteAccess
	UnknownAccess
)

func (aa ArgumentAccess) String() string {
	switch aa {
	case ReadAccess:
		return "read"
	case WriteAccess:
		return "write"
	case ReadWriteAccess:
		return "readwrite"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------

// SymbolInterface describes how a symbol is brought into its scope: declared
// locally, imported from a container, or received as a routine argument.
type SymbolInterface interface {
	interfaceRepr() string
}

// LocalInterface marks a symbol declared in the local scope.
type LocalInterface struct{}

func (li LocalInterface) interfaceRepr() string {
	return "Local"
}

// ImportInterface marks a symbol imported from an external container.
type ImportInterface struct {
	Container *ContainerSymbol
}

func (ii ImportInterface) interfaceRepr() string {
	return fmt.Sprintf("Import(%s)", ii.Container.Name())
}

// ArgumentInterface marks a symbol received as a routine argument, recording
// its access mode.
type ArgumentInterface struct {
	Access ArgumentAccess
}

func (ai ArgumentInterface) interfaceRepr() string {
	return fmt.Sprintf("Argument(%s)", ai.Access)
}

// -----------------------------------------------------------------------------

// Symbol is the common interface of all symbol-table entries.  Symbol
// identity is pointer identity: two symbols with the same name are distinct
// entries unless they are the same pointer.
type Symbol interface {
	// Name returns the declared name of the symbol.  Names are matched
	// case-insensitively by symbol tables but preserved as declared.
	Name() string

	// Visibility returns the symbol's visibility in its declaring scope.
	Visibility() Visibility
}

// -----------------------------------------------------------------------------

// DataSymbol is a symbol with an associated datatype: a variable, a routine
// argument, or an imported entity.
type DataSymbol struct {
	name       string
	visibility Visibility

	// Datatype is the type descriptor of the symbol.  It may be a
	// DeferredType until resolution.
	Datatype DataType

	// Interface records how the symbol enters its scope.
	Interface SymbolInterface

	// ConstantValue holds the value of a compile-time constant, or nil.
	ConstantValue interface{}

	// Attributes holds the extra per-family attributes required by the
	// symbol's type family (e.g. function-space names), or nil.
	Attributes map[string]string

	family *Family
}

// NewDataSymbol creates a public, locally-declared data symbol.
func NewDataSymbol(name string, datatype DataType) *DataSymbol {
	return &DataSymbol{
		name:       name,
		visibility: Public,
		Datatype:   datatype,
		Interface:  LocalInterface{},
	}
}

// NewArgumentSymbol creates a data symbol received as a routine argument.
func NewArgumentSymbol(name string, datatype DataType, access ArgumentAccess) *DataSymbol {
	return &DataSymbol{
		name:       name,
		visibility: Public,
		Datatype:   datatype,
		Interface:  ArgumentInterface{Access: access},
	}
}

// NewImportedSymbol creates a data symbol of deferred type imported from the
// given container.
func NewImportedSymbol(name string, container *ContainerSymbol) *DataSymbol {
	return &DataSymbol{
		name:       name,
		visibility: Public,
		Datatype:   &DeferredType{},
		Interface:  ImportInterface{Container: container},
	}
}

func (ds *DataSymbol) Name() string {
	return ds.name
}

func (ds *DataSymbol) Visibility() Visibility {
	return ds.visibility
}

// SetVisibility changes the visibility of the symbol in its declaring scope.
func (ds *DataSymbol) SetVisibility(v Visibility) {
	ds.visibility = v
}

// Family returns the type family that generated the symbol, or nil if the
// symbol was constructed directly.
func (ds *DataSymbol) Family() *Family {
	return ds.family
}

// IsArgument reports whether the symbol enters its scope as a routine
// argument.
func (ds *DataSymbol) IsArgument() bool {
	_, ok := ds.Interface.(ArgumentInterface)
	return ok
}

// IsImport reports whether the symbol is imported from a container.
func (ds *DataSymbol) IsImport() bool {
	_, ok := ds.Interface.(ImportInterface)
	return ok
}

func (ds *DataSymbol) String() string {
	return fmt.Sprintf("%s: DataSymbol<%s, %s>", ds.name, ds.Datatype.String(), ds.Interface.interfaceRepr())
}

// -----------------------------------------------------------------------------

// ContainerSymbol represents an external container (a module) from which
// other symbols may be imported.  It owns no nested scope of its own.
type ContainerSymbol struct {
	name       string
	visibility Visibility

	// Wildcard reports whether the container is referenced with no
	// explicit import list, making all of its public symbols visible.
	Wildcard bool
}

// NewContainerSymbol creates a public container symbol.
func NewContainerSymbol(name string) *ContainerSymbol {
	return &ContainerSymbol{name: name, visibility: Public}
}

func (cs *ContainerSymbol) Name() string {
	return cs.name
}

func (cs *ContainerSymbol) Visibility() Visibility {
	return cs.visibility
}

func (cs *ContainerSymbol) String() string {
	return fmt.Sprintf("%s: ContainerSymbol", cs.name)
}

// -----------------------------------------------------------------------------

// RoutineSymbol represents a callable routine.
type RoutineSymbol struct {
	name       string
	visibility Visibility

	// Interface records how the routine enters its scope.
	Interface SymbolInterface
}

// NewRoutineSymbol creates a public, locally-declared routine symbol.
func NewRoutineSymbol(name string) *RoutineSymbol {
	return &RoutineSymbol{name: name, visibility: Public, Interface: LocalInterface{}}
}

func (rs *RoutineSymbol) Name() string {
	return rs.name
}

func (rs *RoutineSymbol) Visibility() Visibility {
	return rs.visibility
}

func (rs *RoutineSymbol) String() string {
	return fmt.Sprintf("%s: RoutineSymbol", rs.name)
}

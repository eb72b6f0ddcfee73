package symbols

import (
	"strconv"
	"strings"

	"github.com/rommelDB/PSyclone/report"
)

// SymbolTable maps names to symbols within one scope.  Names are matched
// case-insensitively.  Tables chain to the table of the enclosing scope, so
// a lookup that misses locally recurses outward until the outermost scope is
// exhausted.
type SymbolTable struct {
	parent *SymbolTable

	entries map[string]Symbol
	order   []string
}

// NewSymbolTable creates an empty symbol table.  The parent may be nil for
// an outermost scope.
func NewSymbolTable(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{
		parent:  parent,
		entries: make(map[string]Symbol),
	}
}

// Parent returns the table of the enclosing scope, or nil.
func (st *SymbolTable) Parent() *SymbolTable {
	return st.parent
}

// SetParent rebinds the table to a new enclosing scope.
func (st *SymbolTable) SetParent(parent *SymbolTable) {
	st.parent = parent
}

// Add inserts a symbol into the local scope.  It fails if a symbol with the
// same name (compared case-insensitively) is already declared locally.
func (st *SymbolTable) Add(sym Symbol) error {
	key := strings.ToLower(sym.Name())
	if _, ok := st.entries[key]; ok {
		return report.Generationf(
			"symbol table already contains a symbol with name '%s'", sym.Name())
	}

	st.entries[key] = sym
	st.order = append(st.order, key)
	return nil
}

// Lookup finds a symbol by name, searching the local scope first and then
// each enclosing scope in turn.
func (st *SymbolTable) Lookup(name string) (Symbol, error) {
	key := strings.ToLower(name)

	for table := st; table != nil; table = table.parent {
		if sym, ok := table.entries[key]; ok {
			return sym, nil
		}
	}

	return nil, report.Generationf("could not find '%s' in the symbol table", name)
}

// LocalLookup finds a symbol by name in the local scope only.
func (st *SymbolTable) LocalLookup(name string) (Symbol, error) {
	if sym, ok := st.entries[strings.ToLower(name)]; ok {
		return sym, nil
	}

	return nil, report.Generationf("could not find '%s' in the symbol table", name)
}

// Contains reports whether a symbol with the given name is visible from this
// scope.
func (st *SymbolTable) Contains(name string) bool {
	_, err := st.Lookup(name)
	return err == nil
}

// Remove deletes a locally-declared symbol by name.
func (st *SymbolTable) Remove(name string) error {
	key := strings.ToLower(name)
	if _, ok := st.entries[key]; !ok {
		return report.Generationf("could not find '%s' in the symbol table", name)
	}

	delete(st.entries, key)
	for i, k := range st.order {
		if k == key {
			st.order = append(st.order[:i], st.order[i+1:]...)
			break
		}
	}
	return nil
}

// Symbols returns the locally-declared symbols in declaration order.
func (st *SymbolTable) Symbols() []Symbol {
	syms := make([]Symbol, 0, len(st.order))
	for _, key := range st.order {
		syms = append(syms, st.entries[key])
	}
	return syms
}

// DataSymbols returns the locally-declared data symbols in declaration
// order.
func (st *SymbolTable) DataSymbols() []*DataSymbol {
	var syms []*DataSymbol
	for _, key := range st.order {
		if ds, ok := st.entries[key].(*DataSymbol); ok {
			syms = append(syms, ds)
		}
	}
	return syms
}

// ArgumentSymbols returns the locally-declared argument symbols in
// declaration order.
func (st *SymbolTable) ArgumentSymbols() []*DataSymbol {
	var args []*DataSymbol
	for _, ds := range st.DataSymbols() {
		if ds.IsArgument() {
			args = append(args, ds)
		}
	}
	return args
}

// ContainerSymbols returns the locally-declared container symbols in
// declaration order.
func (st *SymbolTable) ContainerSymbols() []*ContainerSymbol {
	var conts []*ContainerSymbol
	for _, key := range st.order {
		if cs, ok := st.entries[key].(*ContainerSymbol); ok {
			conts = append(conts, cs)
		}
	}
	return conts
}

// NewUniqueName derives a name not visible from this scope by appending
// numeric suffixes to the given root.
func (st *SymbolTable) NewUniqueName(root string) string {
	if !st.Contains(root) {
		return root
	}

	for i := 1; ; i++ {
		candidate := root + "_" + strconv.Itoa(i)
		if !st.Contains(candidate) {
			return candidate
		}
	}
}

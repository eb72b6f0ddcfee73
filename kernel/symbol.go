package kernel

import "github.com/rommelDB/PSyclone/symbols"

// MetadataSymbol is a symbol-table entry binding a kernel's metadata
// descriptor to the derived-type symbol it was declared on.
type MetadataSymbol struct {
	*symbols.DataSymbol

	Meta *Metadata
}

// NewMetadataSymbol parses the given declaration and wraps it as a symbol
// named after the declared metadata type.
func NewMetadataSymbol(declaration string) (*MetadataSymbol, error) {
	meta, err := NewMetadata(declaration)
	if err != nil {
		return nil, err
	}

	return &MetadataSymbol{
		DataSymbol: symbols.NewDataSymbol(meta.TypeName(), &symbols.DeferredType{}),
		Meta:       meta,
	}, nil
}

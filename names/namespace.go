// Package names allocates unique names for generated code constructs.
package names

import (
	"strconv"
	"strings"

	"github.com/rommelDB/PSyclone/report"
)

// NameSpace hands out names guaranteed unique within its lifetime.  Name
// comparison is case-insensitive unless the namespace is created
// case-sensitive.  Reserved names are never handed out.  A (context, label)
// pair always maps to the same name once issued.
type NameSpace struct {
	caseSensitive bool

	issued   map[string]bool
	reserved map[string]bool
	byLabel  map[string]string
}

// NewNameSpace creates an empty namespace.
func NewNameSpace(caseSensitive bool) *NameSpace {
	return &NameSpace{
		caseSensitive: caseSensitive,
		issued:        make(map[string]bool),
		reserved:      make(map[string]bool),
		byLabel:       make(map[string]string),
	}
}

func (ns *NameSpace) key(name string) string {
	if ns.caseSensitive {
		return name
	}
	return strings.ToLower(name)
}

// AddReservedName registers a name that must never be handed out.  Reserving
// a name that has already been issued fails, since the caller would then
// hold a clashing name.
func (ns *NameSpace) AddReservedName(name string) error {
	key := ns.key(name)
	if ns.issued[key] {
		return report.Generationf(
			"attempted to add reserved name '%s' to a namespace that has already used that name",
			name)
	}

	ns.reserved[key] = true
	return nil
}

// AddReservedNames registers several reserved names at once.
func (ns *NameSpace) AddReservedNames(names []string) error {
	for _, name := range names {
		if err := ns.AddReservedName(name); err != nil {
			return err
		}
	}
	return nil
}

// CreateName returns a unique name derived from the given root.  An empty
// root defaults to "anon".  When both a context and a label are supplied,
// the same pair always yields the name returned on its first use.
func (ns *NameSpace) CreateName(root, context, label string) string {
	if root == "" {
		root = "anon"
	}

	var labelKey string
	if context != "" && label != "" {
		labelKey = ns.key(context) + "\x00" + ns.key(label)
		if name, ok := ns.byLabel[labelKey]; ok {
			return name
		}
	}

	name := root
	for i := 1; ns.issued[ns.key(name)] || ns.reserved[ns.key(name)]; i++ {
		name = root + "_" + strconv.Itoa(i)
	}

	ns.issued[ns.key(name)] = true
	if labelKey != "" {
		ns.byLabel[labelKey] = name
	}
	return name
}

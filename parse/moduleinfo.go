// Package parse locates the source files of named Fortran modules and
// extracts the module-level facts the pipeline needs from them, chiefly
// which other modules each one uses.
package parse

import (
	"os"
	"regexp"
	"strings"

	"github.com/rommelDB/PSyclone/report"
)

// UsedModule is one use statement of a module: the used module's name and
// the imported symbols.  An empty symbol list denotes a wildcard use that
// imports everything.
type UsedModule struct {
	Name    string
	Symbols []string
}

// ModuleInfo describes one located module.  The source text and the use
// statements are read lazily and cached; the file is touched at most once.
type ModuleInfo struct {
	name string
	path string

	source    string
	sourceSet bool

	uses    []UsedModule
	usesSet bool
}

// Name returns the module's name as requested from the manager.
func (mi *ModuleInfo) Name() string {
	return mi.name
}

// FilePath returns the path of the file defining the module.
func (mi *ModuleInfo) FilePath() string {
	return mi.path
}

// Source returns the module's source text, reading the file on first use.
func (mi *ModuleInfo) Source() (string, error) {
	if !mi.sourceSet {
		data, err := os.ReadFile(mi.path)
		if err != nil {
			return "", report.Generationf(
				"could not read the source of module '%s' from '%s': %s",
				mi.name, mi.path, err)
		}
		mi.source = string(data)
		mi.sourceSet = true
	}
	return mi.source, nil
}

var usePattern = regexp.MustCompile(
	`^use(?:\s*,\s*intrinsic)?(?:\s*::)?\s+([a-z][a-z0-9_]*)\s*(?:,\s*only\s*:\s*(.*))?$`)

// UsedModules returns the (module, symbols) pairs of the module's use
// statements in source order.  A use statement without an only clause
// yields an empty symbol list.
func (mi *ModuleInfo) UsedModules() ([]UsedModule, error) {
	if mi.usesSet {
		return mi.uses, nil
	}

	source, err := mi.Source()
	if err != nil {
		return nil, err
	}

	mi.uses = []UsedModule{}
	for _, line := range logicalLines(source) {
		match := usePattern.FindStringSubmatch(strings.ToLower(line))
		if match == nil {
			continue
		}

		used := UsedModule{Name: match[1]}
		if match[2] != "" {
			for _, entry := range strings.Split(match[2], ",") {
				// A rename `local => original` imports the original name.
				if at := strings.LastIndex(entry, "=>"); at >= 0 {
					entry = entry[at+2:]
				}
				if name := strings.TrimSpace(entry); name != "" {
					used.Symbols = append(used.Symbols, name)
				}
			}
		}
		mi.uses = append(mi.uses, used)
	}
	mi.usesSet = true
	return mi.uses, nil
}

// logicalLines splits source text into statements, joining free-form
// continuation lines and stripping trailing comments.
func logicalLines(source string) []string {
	var lines []string
	var pending string

	for _, raw := range strings.Split(source, "\n") {
		if at := strings.IndexByte(raw, '!'); at >= 0 {
			raw = raw[:at]
		}
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if strings.HasSuffix(line, "&") {
			pending += strings.TrimSuffix(line, "&") + " "
			continue
		}

		lines = append(lines, strings.TrimSpace(pending+line))
		pending = ""
	}
	if pending != "" {
		lines = append(lines, strings.TrimSpace(pending))
	}
	return lines
}

package parse

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rommelDB/PSyclone/report"
)

// sourceSuffixes are the Fortran file extensions searched for a module, in
// preference order.
var sourceSuffixes = []string{".f90", ".F90"}

// ModuleManager resolves module names to source files by scanning a list of
// search paths.  Resolution results are cached: a module name is searched
// at most once, and all callers share the same ModuleInfo.
type ModuleManager struct {
	searchPaths []string
	modules     map[string]*ModuleInfo
}

// NewModuleManager creates a manager over the given search paths.
func NewModuleManager(searchPaths ...string) *ModuleManager {
	return &ModuleManager{
		searchPaths: append([]string(nil), searchPaths...),
		modules:     make(map[string]*ModuleInfo),
	}
}

// AddSearchPath appends a search path.  Paths are scanned in the order they
// were added.
func (mm *ModuleManager) AddSearchPath(path string) {
	mm.searchPaths = append(mm.searchPaths, path)
}

// Module resolves a module name to its defining file.  The module is looked
// up as <name>.f90 or <name>.F90 in each search path in order.
func (mm *ModuleManager) Module(name string) (*ModuleInfo, error) {
	key := strings.ToLower(name)
	if info, ok := mm.modules[key]; ok {
		return info, nil
	}

	for _, dir := range mm.searchPaths {
		for _, suffix := range sourceSuffixes {
			path := filepath.Join(dir, key+suffix)
			finfo, err := os.Stat(path)
			if err != nil || finfo.IsDir() {
				continue
			}

			info := &ModuleInfo{name: name, path: path}
			mm.modules[key] = info
			return info, nil
		}
	}

	return nil, report.Generationf(
		"could not find the source file of module '%s' in any of the search paths: [%s]",
		name, strings.Join(mm.searchPaths, ", "))
}

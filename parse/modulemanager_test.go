package parse

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeModule(t *testing.T, dir, name, source string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return path
}

func TestModuleResolution(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeModule(t, first, "kind_params_mod.f90", "module kind_params_mod\nend module\n")
	writeModule(t, second, "grid_mod.F90", "module grid_mod\nend module\n")

	mm := NewModuleManager(first)
	mm.AddSearchPath(second)

	info, err := mm.Module("kind_params_mod")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Name() != "kind_params_mod" {
		t.Errorf("name = %q", info.Name())
	}
	if filepath.Dir(info.FilePath()) != first {
		t.Errorf("resolved into %q, want the first search path", info.FilePath())
	}

	// Capitalized extension in a later path.
	if _, err := mm.Module("grid_mod"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same instance on repeated lookups.
	again, err := mm.Module("KIND_PARAMS_MOD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != info {
		t.Error("repeated lookups must share one ModuleInfo")
	}
}

func TestModuleNotFound(t *testing.T) {
	mm := NewModuleManager(t.TempDir())

	_, err := mm.Module("missing_mod")
	if err == nil {
		t.Fatal("expected an error for an unknown module")
	}
	if !strings.Contains(err.Error(), "'missing_mod'") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestSourceIsCached(t *testing.T) {
	dir := t.TempDir()
	path := writeModule(t, dir, "phys_mod.f90", "module phys_mod\nend module\n")

	mm := NewModuleManager(dir)
	info, err := mm.Module("phys_mod")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	source, err := info.Source()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Rewriting the file must not change the cached text.
	if err := os.WriteFile(path, []byte("module phys_mod\n! changed\nend module\n"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cached, err := info.Source()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cached != source {
		t.Error("the source must be read once and cached")
	}
}

func TestUsedModules(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "momentum_mod.f90", strings.Join([]string{
		"module momentum_mod",
		"  use kind_params_mod",
		"  use grid_mod, only: grid_type, go_offset_ne",
		"  use, intrinsic :: iso_fortran_env, only: real64",
		"  use field_mod, only: r2d_field, &",
		"       field_checksum",
		"  use alias_mod, only: local_name => original_name",
		"  implicit none",
		"contains",
		"end module momentum_mod",
	}, "\n"))

	mm := NewModuleManager(dir)
	info, err := mm.Module("momentum_mod")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uses, err := info.UsedModules()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(uses) != 5 {
		t.Fatalf("got %d use statements, want 5", len(uses))
	}

	// A use without an only clause is a wildcard: empty symbol list.
	if uses[0].Name != "kind_params_mod" || len(uses[0].Symbols) != 0 {
		t.Errorf("wildcard use parsed as %+v", uses[0])
	}
	if uses[1].Name != "grid_mod" ||
		strings.Join(uses[1].Symbols, ",") != "grid_type,go_offset_ne" {
		t.Errorf("only-list use parsed as %+v", uses[1])
	}
	if uses[2].Name != "iso_fortran_env" ||
		strings.Join(uses[2].Symbols, ",") != "real64" {
		t.Errorf("intrinsic use parsed as %+v", uses[2])
	}

	// Continuation lines join into one statement.
	if uses[3].Name != "field_mod" ||
		strings.Join(uses[3].Symbols, ",") != "r2d_field,field_checksum" {
		t.Errorf("continued use parsed as %+v", uses[3])
	}

	// A rename imports the original name.
	if uses[4].Name != "alias_mod" ||
		strings.Join(uses[4].Symbols, ",") != "original_name" {
		t.Errorf("renamed use parsed as %+v", uses[4])
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rommelDB/PSyclone/access"
)

func writeConfig(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "psyclone.toml")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		`default_api = "gocean"`,
		`kernel_naming = "single"`,
		`include_paths = ["kernels", "infrastructure"]`,
		``,
		`[apis.gocean]`,
		`access_mapping = { go_read = "read", go_write = "write" }`,
	}, "\n"))

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.KernelNaming != "single" {
		t.Errorf("kernel_naming = %q", cfg.KernelNaming)
	}
	if len(cfg.IncludePaths) != 2 || cfg.IncludePaths[0] != "kernels" {
		t.Errorf("include_paths = %v", cfg.IncludePaths)
	}
	// Settings absent from the file keep their defaults.
	if cfg.RootName != "psyir_tmp" {
		t.Errorf("root_name = %q", cfg.RootName)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("log_level = %q", cfg.LogLevel)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   string
	}{
		{
			"unknown api",
			`default_api = "psykal"`,
			"oneof",
		},
		{
			"unknown kernel naming",
			"default_api = \"gocean\"\nkernel_naming = \"per-file\"",
			"oneof",
		},
		{
			"bad access mapping",
			strings.Join([]string{
				`default_api = "gocean"`,
				`[apis.gocean]`,
				`access_mapping = { go_read = "reads" }`,
			}, "\n"),
			"oneof",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.source))
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("got %q, want it to mention %q", err.Error(), tc.want)
			}
		})
	}
}

func TestLoadMissingDefaultAPISection(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		`default_api = "lfric"`,
		`[apis.gocean]`,
		`access_mapping = { go_read = "read" }`,
	}, "\n"))

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected an error for a default api without a section")
	}
	if !strings.Contains(err.Error(), "[apis.lfric]") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestAccessMapping(t *testing.T) {
	cfg := Default()
	api, err := cfg.API("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := api.Access("go_readwrite")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != access.ReadWrite {
		t.Errorf("go_readwrite maps to %s", got)
	}

	if _, err := api.Access("go_sum"); err == nil {
		t.Fatal("expected an error for an undeclared access token")
	}
	if _, err := cfg.API("lfric"); err == nil {
		t.Fatal("expected an error for an unconfigured api")
	}
}

// Package config loads and validates the TOML configuration controlling
// the code-generation pipeline: the target API, naming conventions for
// generated code, module search paths, and per-API metadata vocabularies.
package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml"

	"github.com/rommelDB/PSyclone/access"
	"github.com/rommelDB/PSyclone/report"
)

// Config is the top-level configuration.
type Config struct {
	// DefaultAPI selects the API whose settings apply when a kernel does
	// not name one.
	DefaultAPI string `toml:"default_api" validate:"required,oneof=gocean lfric"`

	// KernelNaming controls how transformed kernel modules are renamed:
	// "multiple" gives each transformed kernel a fresh name, "single"
	// reuses one name per original kernel.
	KernelNaming string `toml:"kernel_naming" validate:"omitempty,oneof=multiple single"`

	// RootName is the root used for generated variable names.
	RootName string `toml:"root_name"`

	// IncludePaths are the directories searched for module source files.
	IncludePaths []string `toml:"include_paths"`

	// LogLevel selects the reporter verbosity.
	LogLevel string `toml:"log_level" validate:"omitempty,oneof=silent error warn verbose"`

	// APIs holds the per-API settings, keyed by API name.
	APIs map[string]*APIConfig `toml:"apis" validate:"dive"`
}

// APIConfig holds the settings of one API.
type APIConfig struct {
	// AccessMapping maps the API's metadata access tokens onto the access
	// model used by dependency analysis.
	AccessMapping map[string]string `toml:"access_mapping" validate:"dive,oneof=read write readwrite"`

	// GridProperties lists the grid-property names kernels of this API
	// may request.
	GridProperties []string `toml:"grid_properties"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		DefaultAPI:   "gocean",
		KernelNaming: "multiple",
		RootName:     "psyir_tmp",
		LogLevel:     "warn",
		APIs: map[string]*APIConfig{
			"gocean": {
				AccessMapping: map[string]string{
					"go_read":      "read",
					"go_write":     "write",
					"go_readwrite": "readwrite",
				},
				GridProperties: []string{
					"go_grid_area_t", "go_grid_area_u", "go_grid_area_v",
					"go_grid_mask_t", "go_grid_dx_t", "go_grid_dx_u",
					"go_grid_dx_v", "go_grid_dy_t", "go_grid_dy_u",
					"go_grid_dy_v", "go_grid_lat_u", "go_grid_lat_v",
					"go_grid_x_min_index", "go_grid_x_max_index",
					"go_grid_y_min_index", "go_grid_y_max_index",
				},
			},
		},
	}
}

// Load reads and validates a configuration file.  Settings absent from the
// file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, report.Generationf("unable to open config file at '%s': %s", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, report.Generationf("error parsing config file at '%s': %s", path, err)
	}

	if err := cfg.Check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Check validates the configuration's field constraints.
func (cfg *Config) Check() error {
	if err := validator.New().Struct(cfg); err != nil {
		if fieldErrors, ok := err.(validator.ValidationErrors); ok && len(fieldErrors) > 0 {
			fe := fieldErrors[0]
			return report.Generationf(
				"invalid config value for '%s': failed the '%s' constraint",
				fe.Namespace(), fe.Tag())
		}
		return err
	}

	if _, ok := cfg.APIs[cfg.DefaultAPI]; !ok {
		return report.Generationf(
			"the default api '%s' has no [apis.%s] section in the config",
			cfg.DefaultAPI, cfg.DefaultAPI)
	}
	return nil
}

// API returns the settings of the named API, or the default API's settings
// for an empty name.
func (cfg *Config) API(name string) (*APIConfig, error) {
	if name == "" {
		name = cfg.DefaultAPI
	}
	api, ok := cfg.APIs[name]
	if !ok {
		return nil, report.Generationf("unknown api '%s' requested from the config", name)
	}
	return api, nil
}

// Access maps one of the API's metadata access tokens onto the dependency
// analysis access model.
func (api *APIConfig) Access(token string) (access.AccessType, error) {
	switch api.AccessMapping[token] {
	case "read":
		return access.Read, nil
	case "write":
		return access.Write, nil
	case "readwrite":
		return access.ReadWrite, nil
	default:
		return access.Read, report.Generationf(
			"access token '%s' is not declared in the api's access mapping", token)
	}
}

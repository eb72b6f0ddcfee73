package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rommelDB/PSyclone/config"
	"github.com/rommelDB/PSyclone/kernel"
	"github.com/rommelDB/PSyclone/parse"
	"github.com/rommelDB/PSyclone/report"
)

type transformCmd struct {
	Source   string   `arg:"" help:"Path to the kernel source file." type:"existingfile"`
	Config   string   `help:"Path to the configuration file." short:"c" type:"existingfile"`
	API      string   `help:"Generation API to target; defaults to the configured default." short:"a"`
	Profile  []string `help:"Automatic profiling placements to apply (invokes, kernels)." short:"p"`
	Output   string   `help:"Write the canonical metadata encodings to this file." short:"o"`
	LogLevel string   `help:"Reporter verbosity." enum:",silent,error,warn,verbose" default:""`
}

func (c *transformCmd) Run() error {
	cfg := config.Default()
	if c.Config != "" {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	report.InitReporter(logLevelOf(cfg.LogLevel))

	api, err := cfg.API(c.API)
	if err != nil {
		return err
	}

	apiName := c.API
	if apiName == "" {
		apiName = cfg.DefaultAPI
	}
	report.ReportHeader(apiName, c.Profile)

	source, err := os.ReadFile(c.Source)
	if err != nil {
		return report.Generationf("unable to open source file at '%s': %s", c.Source, err)
	}

	// The file's own directory is searched before the configured paths.
	mm := parse.NewModuleManager(filepath.Dir(c.Source))
	for _, dir := range cfg.IncludePaths {
		mm.AddSearchPath(dir)
	}

	metas, err := c.processMetadata(string(source), api)
	if err != nil {
		report.ReportError(c.Source, err)
		return err
	}
	if len(metas) == 0 {
		report.ReportWarning(c.Source, "no kernel metadata declarations found")
	}

	c.resolveUses(mm, string(source))

	if report.AnyErrors() {
		return report.Generationf("errors were reported while processing '%s'", c.Source)
	}

	if c.Output != "" {
		encodings := make([]string, len(metas))
		for i, meta := range metas {
			encodings[i] = meta.Meta.Encoding()
		}
		payload := strings.Join(encodings, "\n")
		if err := os.WriteFile(c.Output, []byte(payload), 0o644); err != nil {
			return report.Generationf("unable to write output file at '%s': %s", c.Output, err)
		}
		report.ReportFinished(c.Output)
	}
	return nil
}

// processMetadata parses every kernel-metadata declaration in the source
// and checks its access tokens against the target API's access mapping.
func (c *transformCmd) processMetadata(source string, api *config.APIConfig) ([]*kernel.MetadataSymbol, error) {
	var metas []*kernel.MetadataSymbol
	for _, declaration := range metadataDeclarations(source) {
		meta, err := kernel.NewMetadataSymbol(declaration)
		if err != nil {
			return nil, err
		}

		for _, arg := range meta.Meta.Args() {
			if _, err := api.Access(arg.Access()); err != nil {
				report.ReportWarning(meta.Name(), err.Error())
			}
		}
		metas = append(metas, meta)
	}
	return metas, nil
}

// resolveUses locates the modules used by the source file, warning about
// any that cannot be found on the search paths.
func (c *transformCmd) resolveUses(mm *parse.ModuleManager, source string) {
	moduleName := strings.TrimSuffix(filepath.Base(c.Source), filepath.Ext(c.Source))
	info, err := mm.Module(moduleName)
	if err != nil {
		return
	}

	uses, err := info.UsedModules()
	if err != nil {
		report.ReportError(c.Source, err)
		return
	}
	for _, use := range uses {
		if _, err := mm.Module(use.Name); err != nil {
			report.ReportWarning(c.Source, "unable to locate used module '%s'", use.Name)
		}
	}
}

// metadataDeclarations extracts the text of each kernel-metadata derived
// type declaration from the source: a type extending kernel_type through
// its matching end type.
func metadataDeclarations(source string) []string {
	var declarations []string

	lines := strings.Split(source, "\n")
	start := -1
	for i, raw := range lines {
		line := strings.ToLower(strings.TrimSpace(raw))
		if start < 0 {
			if strings.HasPrefix(line, "type,") && strings.Contains(line, "extends(kernel_type)") {
				start = i
			}
			continue
		}
		if strings.HasPrefix(line, "end type") {
			declarations = append(declarations, strings.Join(lines[start:i+1], "\n"))
			start = -1
		}
	}
	return declarations
}

// Package cmd implements the command-line driver: argument parsing,
// configuration loading, reporter setup, and orchestration of the
// metadata-processing pipeline.
package cmd

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/rommelDB/PSyclone/report"
)

// Version identifies the release.
const Version = "0.1.0"

type cli struct {
	Transform transformCmd `cmd:"" help:"Process a kernel source file: validate its metadata and resolve its module dependencies."`
	Version   versionCmd   `cmd:"" help:"Print version information."`
}

type versionCmd struct{}

func (c *versionCmd) Run() error {
	fmt.Println(Version)
	return nil
}

// Execute runs the command-line application.
func Execute() {
	ctx := kong.Parse(&cli{},
		kong.Name("psyclone"),
		kong.Description("Source-to-source transformation tool for kernel-based Fortran codes."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// logLevelOf maps a configured log-level name onto the reporter's level.
func logLevelOf(name string) int {
	switch name {
	case "silent":
		return report.LogLevelSilent
	case "error":
		return report.LogLevelError
	case "warn":
		return report.LogLevelWarn
	default:
		return report.LogLevelVerbose
	}
}

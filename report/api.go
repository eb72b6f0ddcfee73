package report

import (
	"fmt"
	"os"
)

// ReportError reports a non-fatal error: malformed metadata, a structural
// violation, a failed transformation precondition.  The error value carries
// its own taxonomy (ParseError, GenerationError, ...) so the display can
// label it appropriately.
func ReportError(sourceName string, err error) {
	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		displayError(sourceName, err)
	}
}

// ReportWarning reports a warning associated with a named source or module.
func ReportWarning(sourceName, msg string, args ...interface{}) {
	rep.warningCount++

	if rep.logLevel > LogLevelError {
		displayWarning(sourceName, fmt.Sprintf(msg, args...))
	}
}

// ReportFatal reports a fatal error and exits.  These are expected errors
// that generally result from invalid configuration: a missing config file, an
// unknown API name, an unreadable kernel source path.
func ReportFatal(msg string, args ...interface{}) {
	if rep.logLevel > LogLevelSilent {
		displayFatal(fmt.Sprintf(msg, args...))
	}

	os.Exit(1)
}

// ReportICE reports an internal-consistency error.  These indicate a bug in
// an earlier pass, not malformed input, and are always displayed regardless
// of log level.
func ReportICE(msg string, args ...interface{}) {
	displayICE(fmt.Sprintf(msg, args...))

	os.Exit(-1)
}

// -----------------------------------------------------------------------------

// ReportHeader displays the pre-run header: the tool's configuration for
// this run.  Only displayed at the verbose log level.
func ReportHeader(api string, profiling []string) {
	if rep.logLevel == LogLevelVerbose {
		displayHeader(api, profiling)
	}
}

// ReportFinished displays the concluding message for a run.
func ReportFinished(outputPath string) {
	if rep.logLevel == LogLevelVerbose {
		displayFinished(rep.errorCount == 0, outputPath)
	}
}

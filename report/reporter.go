package report

// reporter tracks the log level and the outcome counters of a single run.
// The transformation pipeline is sequential, so the counters need no
// locking.
type reporter struct {
	logLevel int

	errorCount   int
	warningCount int
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays warnings and errors to the user (default).
	LogLevelVerbose        // Displays all run messages to the user.
)

// rep is the reporter for the current run.
var rep = &reporter{logLevel: LogLevelWarn}

// InitReporter starts a fresh run at the given log level, clearing the
// error and warning counts.
func InitReporter(logLevel int) {
	rep = &reporter{logLevel: logLevel}
}

// AnyErrors returns whether any errors were reported during the run.
// Errors are counted even when the log level suppresses their display.
func AnyErrors() bool {
	return rep.errorCount > 0
}

// WarningCount returns the number of warnings reported during the run.
func WarningCount() int {
	return rep.warningCount
}

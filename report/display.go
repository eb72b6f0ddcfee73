package report

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// errorLabel maps the error taxonomy onto a display label.
func errorLabel(err error) string {
	switch err.(type) {
	case *ParseError:
		return "Metadata Error"
	case *TypeError:
		return "Type Error"
	case *GenerationError:
		return "Generation Error"
	case *TangentLinearError:
		return "Tangent-Linear Error"
	case *TransformationError:
		return "Transformation Error"
	case *InternalError:
		return "Internal Error"
	default:
		return "Error"
	}
}

// displayError displays a non-fatal error labeled with its taxonomy kind.
func displayError(sourceName string, err error) {
	ErrorStyleBG.Print(errorLabel(err))
	if sourceName != "" {
		ErrorColorFG.Println(fmt.Sprintf(" [%s] %s", sourceName, err.Error()))
	} else {
		ErrorColorFG.Println(" " + err.Error())
	}
}

// displayWarning displays a warning message.
func displayWarning(sourceName, msg string) {
	WarnStyleBG.Print("Warning")
	if sourceName != "" {
		WarnColorFG.Println(fmt.Sprintf(" [%s] %s", sourceName, msg))
	} else {
		WarnColorFG.Println(" " + msg)
	}
}

// displayFatal displays a fatal error message.
func displayFatal(msg string) {
	ErrorStyleBG.Print("Fatal Error")
	ErrorColorFG.Println(" " + msg)
}

// displayICE displays an internal-consistency error.  These are never
// supposed to happen: they indicate a bug in an earlier pass.
func displayICE(msg string) {
	ErrorStyleBG.Print("Internal Error")
	ErrorColorFG.Println(" " + msg)
	fmt.Println("This error indicates a bug in the transformation pipeline, not in the input source.")
}

// -----------------------------------------------------------------------------

// displayHeader displays the pre-run configuration banner.
func displayHeader(api string, profiling []string) {
	InfoStyleBG.Print("Target API")
	InfoColorFG.Println(" " + api)

	if len(profiling) > 0 {
		InfoStyleBG.Print("Profiling")
		InfoColorFG.Println(" " + strings.Join(profiling, ", "))
	}
}

// displayFinished displays the concluding message for a run.
func displayFinished(ok bool, outputPath string) {
	if ok {
		SuccessStyleBG.Print("Done")
		SuccessColorFG.Println(" output written to " + outputPath)
	} else {
		ErrorStyleBG.Print("Failed")
		ErrorColorFG.Println(" errors were reported; no output written")
	}
}

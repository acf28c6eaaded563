package overlay

import "fmt"

// Exit statuses shared with the dtsugar command. StatusBadArguments and
// StatusInputError are raised by the CLI layer, never by the converter;
// they are declared here so every caller reads the codes from one table.
const (
	StatusOK            = 0
	StatusBadArguments  = 1
	StatusInputError    = 2
	StatusWarnings      = 3
	StatusForcedErrors  = 10
	StatusIllegalName   = 11
	StatusMissingTarget = 12
)

// Reporter receives diagnostics as they are raised. Line numbers are
// 1-based input line numbers. Fatal errors are not reported here; they
// travel up the call stack as *FatalError.
type Reporter interface {
	Warningf(line int, format string, args ...any)
	Errorf(line int, format string, args ...any)
}

type discardReporter struct{}

func (discardReporter) Warningf(int, string, ...any) {}
func (discardReporter) Errorf(int, string, ...any)   {}

// Diagnostics accumulates error and warning counts for one conversion run.
// The counters only ever grow; Status reads them once at end of stream.
type Diagnostics struct {
	Errors         int
	Warnings       int
	RootProperties int
}

// Status maps the accumulated counts to the process exit status. Errors
// reaching this point were suppressed by force mode, and they outrank
// warnings.
func (d Diagnostics) Status() int {
	switch {
	case d.Errors > 0:
		return StatusForcedErrors
	case d.Warnings > 0:
		return StatusWarnings
	default:
		return StatusOK
	}
}

// FatalError aborts a conversion at the offending line when force mode is
// off. Status is the exit status the run must report.
type FatalError struct {
	Line   int
	Status int
	Msg    string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

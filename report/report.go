// Package report presents conversion diagnostics on a terminal, keeping
// them on a separate stream from the transformed output.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/dhamidi/dtsugar/overlay"
)

var (
	errorLabel   = color.New(color.FgRed, color.Bold).SprintFunc()
	warningLabel = color.New(color.FgYellow, color.Bold).SprintFunc()
)

// Printer writes colored error and warning lines to a diagnostic stream.
// It implements overlay.Reporter.
type Printer struct {
	w    io.Writer
	name string // input name shown in prefixes, e.g. a file path or "<stdin>"
}

// NewPrinter returns a printer prefixing every diagnostic with name and
// the input line number.
func NewPrinter(w io.Writer, name string) *Printer {
	return &Printer{w: w, name: name}
}

func (p *Printer) Warningf(line int, format string, args ...any) {
	fmt.Fprintf(p.w, "%s:%d: %s %s\n", p.name, line, warningLabel("warning:"), fmt.Sprintf(format, args...))
}

func (p *Printer) Errorf(line int, format string, args ...any) {
	fmt.Fprintf(p.w, "%s:%d: %s %s\n", p.name, line, errorLabel("error:"), fmt.Sprintf(format, args...))
}

// Summary writes a one-line account of a finished run.
func (p *Printer) Summary(d overlay.Diagnostics) {
	fmt.Fprintf(p.w, "%s: %d error(s), %d warning(s), %d root propert%s\n",
		p.name, d.Errors, d.Warnings, d.RootProperties, plural(d.RootProperties, "y", "ies"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

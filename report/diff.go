package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// WriteDiff prints a line-level diff between the original and the
// converted source. It reports whether the two differ.
func WriteDiff(w io.Writer, from, to string) bool {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	changed := false
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffDelete:
			changed = true
			writeMarked(w, "-", d.Text, color.RedString)
		case diffpatch.DiffInsert:
			changed = true
			writeMarked(w, "+", d.Text, color.GreenString)
		case diffpatch.DiffEqual:
			writeMarked(w, " ", d.Text, fmt.Sprintf)
		}
	}
	return changed
}

func writeMarked(w io.Writer, mark, text string, paint func(format string, a ...interface{}) string) {
	if text == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		fmt.Fprintln(w, paint("%s%s", mark, line))
	}
}

package report

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/dtsugar/overlay"
)

func plainColors(t *testing.T) {
	t.Helper()
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })
}

func TestPrinterOutput(t *testing.T) {
	plainColors(t)

	var buf bytes.Buffer
	p := NewPrinter(&buf, "blink.dts")
	p.Warningf(3, "target-path not supported")
	p.Errorf(7, "illegal node name %q", "__fixups__")

	require.Equal(t,
		"blink.dts:3: warning: target-path not supported\n"+
			"blink.dts:7: error: illegal node name \"__fixups__\"\n",
		buf.String())
}

func TestPrinterSummary(t *testing.T) {
	plainColors(t)

	var buf bytes.Buffer
	p := NewPrinter(&buf, "<stdin>")
	p.Summary(overlay.Diagnostics{Errors: 1, Warnings: 2, RootProperties: 1})

	require.Equal(t, "<stdin>: 1 error(s), 2 warning(s), 1 root property\n", buf.String())
}

func TestWriteDiff(t *testing.T) {
	plainColors(t)

	var buf bytes.Buffer
	changed := WriteDiff(&buf, "a\nb\nc\n", "a\nx\nc\n")
	require.True(t, changed)
	require.Equal(t, " a\n-b\n+x\n c\n", buf.String())
}

func TestWriteDiffEqual(t *testing.T) {
	plainColors(t)

	var buf bytes.Buffer
	changed := WriteDiff(&buf, "a\nb\n", "a\nb\n")
	require.False(t, changed)
	require.Equal(t, " a\n b\n", buf.String())
}

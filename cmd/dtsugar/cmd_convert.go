package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/dtsugar/overlay"
	"github.com/dhamidi/dtsugar/report"
)

var log = commonlog.GetLogger("dtsugar")

func newConvertCmd() *cobra.Command {
	var (
		force       bool
		verbose     bool
		noIndentFix bool
		output      string
		overwrite   bool
		showDiff    bool
	)

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert an expanded overlay source to the sugar form",
		Long: `Convert a device-tree overlay written with explicit fragment@N and
__overlay__ wrapper nodes into the form where each fragment is a single
node named by its resolved target.

If a file is provided, it is read in full; otherwise the source is read
from stdin. The converted source goes to stdout unless -o, -w or --diff
says otherwise. Diagnostics always go to stderr.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if overwrite && len(args) == 0 {
				return &exitError{
					status: overlay.StatusBadArguments,
					err:    fmt.Errorf("-w requires a file argument"),
				}
			}
			if overwrite && output != "" {
				return &exitError{
					status: overlay.StatusBadArguments,
					err:    fmt.Errorf("-w and -o are mutually exclusive"),
				}
			}
			if verbose {
				commonlog.Configure(1, nil)
			}

			name, source, err := readInput(args)
			if err != nil {
				return &exitError{status: overlay.StatusInputError, err: err}
			}
			log.Infof("converting %s", name)

			printer := report.NewPrinter(os.Stderr, name)
			var buf bytes.Buffer
			diags, err := overlay.Convert(bytes.NewReader(source), &buf,
				convertOptions(printer, force, verbose, noIndentFix)...)
			if err != nil {
				return statusError(name, err)
			}
			if verbose {
				printer.Summary(diags)
			}

			switch {
			case showDiff:
				if !report.WriteDiff(os.Stdout, string(source), buf.String()) {
					fmt.Fprintln(os.Stderr, "no differences")
				}
			case overwrite:
				if err := os.WriteFile(args[0], buf.Bytes(), 0644); err != nil {
					return fmt.Errorf("write file: %w", err)
				}
			case output != "":
				if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			default:
				if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
					return fmt.Errorf("write stdout: %w", err)
				}
			}

			if status := diags.Status(); status != overlay.StatusOK {
				return &exitError{status: status}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "continue past structural errors with best-effort markers")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "report every warning and print a final summary")
	cmd.Flags().BoolVar(&noIndentFix, "no-indent-fix", false, "keep the original indentation")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the converted source to `file` instead of stdout")
	cmd.Flags().BoolVarP(&overwrite, "write", "w", false, "overwrite the input file in place")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "print a diff between input and output instead of the output")

	return cmd
}

func convertOptions(printer *report.Printer, force, verbose, noIndentFix bool) []overlay.Option {
	opts := []overlay.Option{overlay.WithReporter(printer)}
	if force {
		opts = append(opts, overlay.WithForce())
	}
	if verbose {
		opts = append(opts, overlay.WithVerbose())
	}
	if noIndentFix {
		opts = append(opts, overlay.WithoutIndentFix())
	}
	return opts
}

func readInput(args []string) (string, []byte, error) {
	if len(args) == 0 {
		source, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", nil, fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", source, nil
	}
	source, err := os.ReadFile(args[0])
	if err != nil {
		return "", nil, fmt.Errorf("read file: %w", err)
	}
	return args[0], source, nil
}

// statusError maps a conversion error to the exit status it must carry:
// fatal structural errors keep their own status, everything else is an
// input error.
func statusError(name string, err error) error {
	var fe *overlay.FatalError
	if errors.As(err, &fe) {
		return &exitError{status: fe.Status, err: fmt.Errorf("%s: %w", name, fe)}
	}
	return &exitError{status: overlay.StatusInputError, err: err}
}

package main

import (
	"bytes"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/dtsugar/overlay"
	"github.com/dhamidi/dtsugar/report"
)

func newCheckCmd() *cobra.Command {
	var (
		force   bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Validate an expanded overlay source without emitting output",
		Long: `Run the conversion and discard the result, reporting only the
diagnostics. The exit status is the same one convert would return.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, source, err := readInput(args)
			if err != nil {
				return &exitError{status: overlay.StatusInputError, err: err}
			}

			printer := report.NewPrinter(os.Stderr, name)
			diags, err := overlay.Convert(bytes.NewReader(source), io.Discard,
				convertOptions(printer, force, verbose, false)...)
			if err != nil {
				return statusError(name, err)
			}
			if verbose {
				printer.Summary(diags)
			}

			if status := diags.Status(); status != overlay.StatusOK {
				return &exitError{status: status}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "continue past structural errors")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "report every warning and print a final summary")

	return cmd
}

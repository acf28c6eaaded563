package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/dtsugar/overlay"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "dtsugar",
		Short:         "Convert device-tree overlay sources to the syntactic-sugar form",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newCheckCmd())

	if err := rootCmd.Execute(); err != nil {
		var xe *exitError
		if errors.As(err, &xe) {
			if xe.err != nil {
				fmt.Fprintln(os.Stderr, "dtsugar:", xe.err)
			}
			os.Exit(xe.status)
		}
		fmt.Fprintln(os.Stderr, "dtsugar:", err)
		os.Exit(overlay.StatusBadArguments)
	}
}

// exitError carries a specific process exit status out of a command. A nil
// err means the diagnostics were already reported and only the status is
// left to deliver.
type exitError struct {
	status int
	err    error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.status)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

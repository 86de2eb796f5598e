package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version = "0.1.0-dev"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use: "ionc",
	Short: "Compiler core driver for the ion language",
	Long: `ionc compiles ion sources (contract, script, predicate and library
program kinds) down to an allocated register-machine program and an ABI
description, printing diagnostics in source order.`,
	Version: Version,
}

// Execute runs the root command, returning any error the invoked
// subcommand produced so main can translate it to an exit code via
// ExitCode.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
`, GitCommit))
	rootCmd.AddCommand(buildCmd)
}

// driverError marks a failure in the driver itself (missing manifest,
// unreadable file) rather than in the compilation it was asked to run —
// assigns these exit code 2, distinct from diagnosticError's 1.
type driverError struct{ error }

func newDriverError(format string, args ...any) error {
	return driverError{fmt.Errorf(format, args...)}
}

// diagnosticError marks that the compilation ran to completion but
// emitted at least one error-level diagnostic.
type diagnosticError struct{ count int }

func (e diagnosticError) Error() string {
	return fmt.Sprintf("compilation failed with %d error-level diagnostic(s)", e.count)
}

// ExitCode maps an error returned from Execute to the process exit code
// defines: 0 success, 1 error-level diagnostic, 2 driver error.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch err.(type) {
	case driverError:
		return 2
	case diagnosticError:
		return 1
	default:
		return 2
	}
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}

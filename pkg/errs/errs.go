// Package errs centralizes the pipeline's exception-handling conventions so
// individual operations fail independently instead of aborting a whole run.
package errs

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
)

// HandleGitOperation runs fn and, on error, prints a one-line warning and
// logs the detail at debug level, returning the zero value instead of
// propagating the error. Use for operations where a single repository's
// git failure shouldn't abort the whole run (churn, blame, cache prebuild).
func HandleGitOperation[T any](operationName string, fn func() (T, error)) T {
	result, err := fn()
	if err != nil {
		fmt.Fprintf(os.Stdout, "   ⚠️  %s failed: %v\n", operationName, err)
		slog.Debug("git operation failed", "operation", operationName, "error", err)
		var zero T
		return zero
	}
	return result
}

// HandleReportGeneration runs fn and, on error, prints an error banner plus
// a full stack trace, returning the zero value instead of propagating the
// error. Use for the outer rendering/reporting stages where one report's
// failure shouldn't prevent the others from being produced.
func HandleReportGeneration[T any](operationName string, fn func() (T, error)) T {
	result, err := fn()
	if err != nil {
		fmt.Fprintf(os.Stderr, "\n❌ Error in %s: %v\n", operationName, err)
		os.Stderr.Write(debug.Stack())
		slog.Debug("report generation failed", "operation", operationName, "error", err, "stack", string(debug.Stack()))
		var zero T
		return zero
	}
	return result
}

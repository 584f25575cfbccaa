package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	stderr  io.Writer
	exit    func(int)
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		stderr:  os.Stderr,
		exit:    os.Exit,
	}
}

// WithStderr redirects the user-facing error line.
func (a *CLIErrorAdapter) WithStderr(w io.Writer) *CLIErrorAdapter {
	a.stderr = w
	return a
}

// WithExit replaces os.Exit, e.g. to return the code from a command runner.
func (a *CLIErrorAdapter) WithExit(exit func(int)) *CLIErrorAdapter {
	a.exit = exit
	return a
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if fbe, ok := As(err); ok {
		return a.exitCodeFromFontBuilder(fbe)
	}

	return 1
}

// exitCodeFromFontBuilder maps FontBuilderError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromFontBuilder(err *FontBuilderError) int {
	switch err.Category {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryTool:
		return 8 // External tool error
	case CategoryBuild, CategoryFileSystem:
		return 11 // Build error
	case CategoryRuntime:
		return 12 // Runtime error
	case CategoryCanceled:
		return 130
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if fbe, ok := As(err); ok {
		return a.formatFontBuilder(fbe)
	}

	return fmt.Sprintf("Error: %v", err)
}

// formatFontBuilder formats a FontBuilderError for display.
func (a *CLIErrorAdapter) formatFontBuilder(err *FontBuilderError) string {
	if a.verbose {
		return err.Error()
	}

	switch err.Category {
	case CategoryConfig, CategoryValidation:
		return err.Message
	default:
		if err.Cause != nil {
			return fmt.Sprintf("%s: %s: %v", err.Category, err.Message, err.Cause)
		}
		return fmt.Sprintf("%s: %s", err.Category, err.Message)
	}
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	exitCode := a.ExitCodeFor(err)
	message := a.FormatError(err)

	if a.shouldLog(err) {
		a.logError(err)
	}

	_, _ = fmt.Fprintf(a.stderr, "%s\n", message)
	a.exit(exitCode)
}

// shouldLog determines if an error should be logged.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}

	if fbe, ok := As(err); ok {
		return fbe.Category == CategoryInternal ||
			fbe.Category == CategoryRuntime
	}

	return true
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	if fbe, ok := As(err); ok {
		level := slogLevelFromSeverity(fbe.Severity)
		attrs := []slog.Attr{
			slog.String("category", string(fbe.Category)),
		}
		for k, v := range fbe.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
		if fbe.Cause != nil {
			attrs = append(attrs, slog.String("cause", fbe.Cause.Error()))
		}

		a.logger.LogAttrs(context.Background(), level, fbe.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

func slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

package cli

import (
	"errors"

	"github.com/yaklabco/goldif/pkg/runner"
)

// Exit codes for goldif.
const (
	// ExitSuccess indicates successful execution with no errors.
	ExitSuccess = 0

	// ExitParseErrors indicates parsing completed but found syntax errors.
	ExitParseErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrParseErrorsFound is returned when inputs contain syntax errors.
	ErrParseErrorsFound = errors.New("parse errors found")

	// ErrUnreadableInput is returned when inputs could not be read.
	ErrUnreadableInput = errors.New("unreadable input")

	// ErrIO marks failures reading inputs or writing outputs.
	ErrIO = errors.New("i/o error")

	// ErrInvalidUsage marks errors caused by bad flags or arguments.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrConfig marks configuration loading failures.
	ErrConfig = errors.New("configuration error")
)

// ExitCodeFromResult determines the exit code of a check run.
// Syntax errors take precedence over unreadable files.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasParseErrors() {
		return ExitParseErrors
	}
	if result.HasFailures() {
		return ExitIOError
	}
	return ExitSuccess
}

// errorForExitCode maps a result exit code to the error a command returns.
func errorForExitCode(code int) error {
	switch code {
	case ExitParseErrors:
		return ErrParseErrorsFound
	case ExitIOError:
		return ErrUnreadableInput
	default:
		return nil
	}
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrParseErrorsFound):
		return ExitParseErrors
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrUnreadableInput), errors.Is(err, ErrIO), errors.Is(err, runner.ErrNoInput):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// IsReported reports whether err only signals an outcome that was already
// written to the output.
func IsReported(err error) bool {
	return errors.Is(err, ErrParseErrorsFound) || errors.Is(err, ErrUnreadableInput)
}

package cli

import (
	"errors"

	"github.com/yaklabco/aspxloc/internal/configloader"
	"github.com/yaklabco/aspxloc/pkg/runner"
)

// Exit codes for aspxloc.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitLintErrors indicates the scan found error-level issues.
	ExitLintErrors = 1

	// ExitLintWarnings indicates the scan found warnings in strict mode.
	ExitLintWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates files that could not be read or parsed.
	ExitIOError = 74
)

// Errors that map to exit codes.
var (
	// ErrIssuesFound is returned when the scan finds error-level issues.
	ErrIssuesFound = errors.New("localization issues found")

	// ErrWarningsFound is returned in strict mode when the scan finds warnings.
	ErrWarningsFound = errors.New("localization warnings found")

	// ErrFilesFailed is returned when some files could not be checked.
	ErrFilesFailed = errors.New("some files could not be checked")

	// ErrInvalidUsage marks command-line usage errors.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrConfig marks configuration errors.
	ErrConfig = errors.New("configuration error")
)

// ExitCodeFromResult determines the exit code of a scan. Lint errors take
// precedence over strict-mode warnings, which take precedence over files
// that could not be checked.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	switch {
	case result.Stats.Errors() > 0:
		return ExitLintErrors
	case strict && result.Stats.Warnings() > 0:
		return ExitLintWarnings
	case result.Stats.FilesErrored > 0:
		return ExitIOError
	default:
		return ExitSuccess
	}
}

// errorForExitCode returns the sentinel error signalling code.
func errorForExitCode(code int) error {
	switch code {
	case ExitLintErrors:
		return ErrIssuesFound
	case ExitLintWarnings:
		return ErrWarningsFound
	case ExitIOError:
		return ErrFilesFailed
	default:
		return nil
	}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrIssuesFound):
		return ExitLintErrors
	case errors.Is(err, ErrWarningsFound):
		return ExitLintWarnings
	case errors.Is(err, ErrFilesFailed):
		return ExitIOError
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validationErr):
		return ExitConfigError
	default:
		return ExitInternalError
	}
}

// IsFindingsError reports whether err only signals scan findings, which the
// reporter has already printed.
func IsFindingsError(err error) bool {
	return errors.Is(err, ErrIssuesFound) || errors.Is(err, ErrWarningsFound) || errors.Is(err, ErrFilesFailed)
}

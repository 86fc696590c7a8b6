package cli

import (
	"errors"

	"github.com/yaklabco/headertool/pkg/runner"
)

// Exit codes for headertool.
const (
	// ExitSuccess indicates every file parsed.
	ExitSuccess = 0

	// ExitFailure indicates at least one file failed to parse, or a command
	// failed for a reason without a dedicated code.
	ExitFailure = 1

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates the report could not be written.
	ExitIOError = 74
)

var (
	// ErrParseFailed signals that some files failed to parse. The failures
	// have already been reported.
	ErrParseFailed = errors.New("one or more files failed to parse")

	// ErrConfig wraps configuration loading errors.
	ErrConfig = errors.New("failed to load configuration")

	// ErrOutput wraps report write errors.
	ErrOutput = errors.New("failed to write report")
)

// ExitCodeFromResult returns ExitFailure when any file failed.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasFailures() {
		return ExitFailure
	}
	return ExitSuccess
}

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrOutput):
		return ExitIOError
	default:
		return ExitFailure
	}
}

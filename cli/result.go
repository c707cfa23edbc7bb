package cli

// exitFailure is the exit code of a command whose input did not parse.
const exitFailure = 1

// CommandError reports a failure the command has already written out.
// main exits with ExitCode and prints nothing further; the cause stays
// reachable with errors.As for tests and log records.
type CommandError struct {
	exitCode int
	cause    error
}

// NewCommandError wraps cause, which has already been reported, with an
// exit code.
func NewCommandError(exitCode int, cause error) *CommandError {
	return &CommandError{exitCode: exitCode, cause: cause}
}

func (e *CommandError) Error() string {
	if e.cause == nil {
		return "command failed"
	}
	return "command failed: " + e.cause.Error()
}

func (e *CommandError) Unwrap() error {
	return e.cause
}

// ExitCode returns the process exit code for this failure.
func (e *CommandError) ExitCode() int {
	return e.exitCode
}

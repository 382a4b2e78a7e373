package errs

import (
	"github.com/cockroachdb/errors"
)

// Process exit codes.
const (
	ExitOK         = 0
	ExitViolations = 1
	ExitInternal   = 2
)

// exitCoder wraps an error and specifies an exit code.
type exitCoder struct {
	cause error
	code  int
}

func (e *exitCoder) Error() string { return e.cause.Error() }
func (e *exitCoder) Cause() error  { return e.cause }
func (e *exitCoder) Unwrap() error { return e.cause }

// WithExitCode attaches an exit code to an error.
func WithExitCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return &exitCoder{cause: err, code: code}
}

// ExitCode extracts the exit code from an error chain: 0 for nil, the
// attached code if any, 1 for gate failures and 2 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ec *exitCoder
	if errors.As(err, &ec) {
		return ec.code
	}
	if errors.Is(err, ErrViolations) || errors.Is(err, ErrGateFailed) {
		return ExitViolations
	}
	return ExitInternal
}

// Hints returns the user-facing hints attached anywhere in the chain.
func Hints(err error) []string {
	return errors.GetAllHints(err)
}

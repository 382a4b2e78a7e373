// Package errs defines the error taxonomy shared by the scanner, the
// rewriter and the CLI, and maps errors to process exit codes.
package errs

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Sentinels for errors.Is checks.
var (
	ErrParse           = errors.New("parse error")
	ErrRenameCollision = errors.New("rename collision")
	ErrIO              = errors.New("i/o error")
	ErrRootUnreadable  = errors.New("root path is unreadable")
	ErrViolations      = errors.New("naming violations found")
	ErrGateFailed      = errors.New("enforcement gate failed")
)

// ParseError reports a file that could not be tokenised or balanced.
// The file is skipped; the run continues.
type ParseError struct {
	Path     string
	Line     uint32
	Column   uint32
	Message  string
	Problems int
}

func (e *ParseError) Error() string {
	if e.Problems > 1 {
		return fmt.Sprintf("%s:%d:%d: %s (and %d more)", e.Path, e.Line, e.Column, e.Message, e.Problems-1)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
}

// NewParseError returns a ParseError marked with ErrParse.
func NewParseError(path string, line, col uint32, msg string, problems int) error {
	return errors.Mark(&ParseError{Path: path, Line: line, Column: col, Message: msg, Problems: problems}, ErrParse)
}

// RenameCollisionError reports a rename that was not performed.
type RenameCollisionError struct {
	Original string
	Target   string
	Reason   string
	// Paths lists files involved in the conflict, if any.
	Paths []string
}

func (e *RenameCollisionError) Error() string {
	msg := fmt.Sprintf("cannot rename %s to %s: %s", e.Original, e.Target, e.Reason)
	if len(e.Paths) > 0 {
		msg += " (" + strings.Join(e.Paths, ", ") + ")"
	}
	return msg
}

// NewRenameCollision returns a RenameCollisionError marked with ErrRenameCollision.
func NewRenameCollision(original, target, reason string, paths ...string) error {
	return errors.Mark(&RenameCollisionError{Original: original, Target: target, Reason: reason, Paths: paths}, ErrRenameCollision)
}

// IOError reports a failed file system operation. Fatal is set when the
// failure affects the scan root itself.
type IOError struct {
	Path  string
	Op    string
	Fatal bool
	Err   error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// NewIOError wraps err as a non-fatal IOError.
func NewIOError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return errors.Mark(&IOError{Path: path, Op: op, Err: err}, ErrIO)
}

// RootError wraps a failure to read the scan root. It is fatal and exits with 2.
func RootError(path string, err error) error {
	if err == nil {
		return nil
	}
	wrapped := errors.Mark(&IOError{Path: path, Op: "read root", Fatal: true, Err: err}, ErrIO)
	wrapped = errors.Mark(wrapped, ErrRootUnreadable)
	wrapped = errors.WithHint(wrapped, "check that --root points to a readable directory")
	return WithExitCode(wrapped, ExitInternal)
}

// IsFatal reports whether err must abort the whole run.
func IsFatal(err error) bool {
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return ioErr.Fatal
	}
	return errors.Is(err, ErrRootUnreadable)
}

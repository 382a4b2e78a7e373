package errs

import (
	"io/fs"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"violations", errors.Wrap(ErrViolations, "3 violations"), ExitViolations},
		{"gate", errors.WithStack(ErrGateFailed), ExitViolations},
		{"root", RootError("/missing", fs.ErrNotExist), ExitInternal},
		{"explicit", WithExitCode(errors.New("boom"), 7), 7},
		{"unknown", errors.New("boom"), ExitInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Fatalf("ExitCode = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRootErrorIsFatalAndHinted(t *testing.T) {
	err := RootError("/missing", fs.ErrNotExist)
	if !IsFatal(err) {
		t.Fatalf("root error must be fatal")
	}
	if !errors.Is(err, ErrRootUnreadable) || !errors.Is(err, ErrIO) {
		t.Fatalf("root error must carry both sentinels")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("root error must keep its cause")
	}
	if len(Hints(err)) == 0 {
		t.Fatalf("expected a hint")
	}
}

func TestTypedErrors(t *testing.T) {
	perr := NewParseError("src/a.ts", 3, 9, "unterminated string literal", 2)
	var pe *ParseError
	if !errors.As(perr, &pe) || !errors.Is(perr, ErrParse) {
		t.Fatalf("expected ParseError marked with ErrParse")
	}
	if got, want := perr.Error(), "src/a.ts:3:9: unterminated string literal (and 1 more)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	cerr := NewRenameCollision("IUser", "User", "User is already declared", "src/user.ts")
	var ce *RenameCollisionError
	if !errors.As(cerr, &ce) || ce.Target != "User" || !errors.Is(cerr, ErrRenameCollision) {
		t.Fatalf("expected RenameCollisionError, got %v", cerr)
	}

	ierr := NewIOError("write", "src/a.ts", fs.ErrPermission)
	if IsFatal(ierr) || !errors.Is(ierr, ErrIO) || !errors.Is(ierr, fs.ErrPermission) {
		t.Fatalf("single-file IO error must be non-fatal and keep its cause")
	}
	if NewIOError("write", "x", nil) != nil {
		t.Fatalf("nil cause must yield nil")
	}
}

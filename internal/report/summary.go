package report

import (
	"sort"

	"github.com/cockroachdb/errors"

	"lintnames/internal/errs"
	"lintnames/internal/fix"
	"lintnames/internal/rules"
)

// Mode is what the run was asked to do.
type Mode uint8

const (
	ModeCheck Mode = iota
	ModeFix
	// ModeDiff renders fixes without writing; violations stay unresolved.
	ModeDiff
)

func (m Mode) String() string {
	switch m {
	case ModeFix:
		return "fix"
	case ModeDiff:
		return "diff"
	}
	return "check"
}

// Input is everything the reporter needs from a finished run.
type Input struct {
	Root         string
	Mode         Mode
	CI           bool
	FilesScanned int
	CacheHits    int
	Violations   []rules.Violation
	ParseErrors  []error
	// IOErrors are walk and load failures from the scan.
	IOErrors []error
	// Fix is nil in check mode.
	Fix *fix.Result
}

// Count is one row of a per-rule or per-file breakdown.
type Count struct {
	Key string `json:"key"`
	N   int    `json:"n"`
}

// Summary aggregates a run.
type Summary struct {
	Mode           Mode    `json:"-"`
	CI             bool    `json:"ci"`
	FilesScanned   int     `json:"files_scanned"`
	CacheHits      int     `json:"cache_hits,omitempty"`
	Violations     int     `json:"violations"`
	Unresolved     int     `json:"unresolved"`
	ByRule         []Count `json:"by_rule"`
	ByFile         []Count `json:"by_file"`
	ParseErrors    int     `json:"parse_errors"`
	IOErrors       int     `json:"io_errors"`
	Conflicts      int     `json:"conflicts"`
	WriteErrors    int     `json:"write_errors"`
	RenamesApplied int     `json:"renames_applied"`
	FilesChanged   int     `json:"files_changed"`

	Entries      []Entry          `json:"-"`
	ConflictList []fix.Conflict   `json:"-"`
	ParseErrList []error          `json:"-"`
	WriteErrList []error          `json:"-"`
	IOErrList    []error          `json:"-"`
	ChangedFiles []fix.FileChange `json:"-"`
}

// Build computes the summary of a run.
func Build(in Input) *Summary {
	s := &Summary{
		Mode:         in.Mode,
		CI:           in.CI,
		FilesScanned: in.FilesScanned,
		CacheHits:    in.CacheHits,
		Violations:   len(in.Violations),
		ParseErrors:  len(in.ParseErrors),
		IOErrors:     len(in.IOErrors),
		Entries:      Entries(in.Root, in.Violations),
		ParseErrList: in.ParseErrors,
		IOErrList:    in.IOErrors,
	}

	byRule := make(map[string]int)
	byFile := make(map[string]int)
	for _, e := range s.Entries {
		byRule[e.Rule]++
		byFile[e.File]++
	}
	for _, r := range rules.All() {
		if n := byRule[r.ID]; n > 0 {
			s.ByRule = append(s.ByRule, Count{Key: r.ID, N: n})
		}
	}
	s.ByFile = sortedCounts(byFile)

	if in.Fix != nil {
		s.Conflicts = len(in.Fix.Conflicts)
		s.ConflictList = in.Fix.Conflicts
		s.WriteErrors = len(in.Fix.WriteErrors)
		s.WriteErrList = in.Fix.WriteErrors
		s.ChangedFiles = in.Fix.Changes
		s.FilesChanged = len(in.Fix.Changes)
		if in.Mode == ModeFix {
			s.RenamesApplied = len(in.Fix.Applied)
		}
	}

	switch {
	case in.Mode == ModeFix && in.Fix != nil:
		for _, v := range in.Violations {
			if !in.Fix.Renamed(v.Decl.Name) {
				s.Unresolved++
			}
		}
	default:
		s.Unresolved = s.Violations
	}
	return s
}

func sortedCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, n := range m {
		out = append(out, Count{Key: k, N: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// FileErrors counts parse, read and write failures, which fail the gate under --ci.
func (s *Summary) FileErrors() int {
	return s.ParseErrors + s.IOErrors + s.WriteErrors
}

// Gate returns nil when the run passes, otherwise an error that maps to
// exit code 1 through errs.ExitCode.
func (s *Summary) Gate() error {
	if s.CI && s.FileErrors() > 0 {
		err := errors.Newf("%d parse error(s), %d read error(s), %d write error(s)", s.ParseErrors, s.IOErrors, s.WriteErrors)
		err = errors.WithHint(err, "enforcement mode treats unreadable or unwritable files as failures")
		return errors.Mark(err, errs.ErrGateFailed)
	}
	if s.Unresolved > 0 {
		err := errors.Newf("%d naming violation(s)", s.Unresolved)
		if s.Mode != ModeFix {
			err = errors.WithHint(err, "run with --fix to rename them")
		}
		return errors.Mark(err, errs.ErrViolations)
	}
	return nil
}

// ExitCode is 0 when the gate passes and 1 otherwise.
func (s *Summary) ExitCode() int {
	return errs.ExitCode(s.Gate())
}

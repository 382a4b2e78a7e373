package diag

import "lintnames/internal/source"

// findingKey identifies one finding: the same rule firing on the same span
// with the same text.
type findingKey struct {
	code Code
	span source.Span
	msg  string
}

// DedupReporter forwards each finding once. Severity is not part of the key:
// a repeated finding keeps the severity it was first reported with.
type DedupReporter struct {
	next       Reporter
	seen       map[findingKey]struct{}
	suppressed int
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[findingKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []*Fix) {
	if r == nil {
		return
	}
	key := findingKey{code: code, span: primary, msg: msg}
	if _, dup := r.seen[key]; dup {
		r.suppressed++
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes, fixes)
	}
}

// Suppressed returns how many repeated findings were dropped.
func (r *DedupReporter) Suppressed() int {
	if r == nil {
		return 0
	}
	return r.suppressed
}

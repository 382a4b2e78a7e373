package fix

import (
	"fmt"

	"lintnames/internal/decl"
	"lintnames/internal/diag"
	"lintnames/internal/source"
)

// Option mutates a fix during construction.
type Option func(*diag.Fix)

// WithApplicability overrides applicability metadata.
func WithApplicability(app diag.FixApplicability) Option {
	return func(f *diag.Fix) {
		f.Applicability = app
	}
}

// Preferred marks the fix as the preferred suggestion.
func Preferred() Option {
	return func(f *diag.Fix) {
		f.IsPreferred = true
	}
}

// WithID sets a stable identifier.
func WithID(id string) Option {
	return func(f *diag.Fix) {
		f.ID = id
	}
}

func applyOptions(f *diag.Fix, opts []Option) *diag.Fix {
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// ReplaceSpan replaces the text under span, guarded by expect.
func ReplaceSpan(title string, span source.Span, text, expect string, opts ...Option) *diag.Fix {
	f := &diag.Fix{
		Title:         title,
		Applicability: diag.FixApplicabilityAlwaysSafe,
		Edits:         []diag.TextEdit{{Span: span, NewText: text, OldText: expect}},
	}
	return applyOptions(f, opts)
}

// RenameFix rewrites every site to target. Each edit is guarded by the
// spelling found at scan time.
func RenameFix(original, target string, sites []decl.Site, opts ...Option) *diag.Fix {
	edits := make([]diag.TextEdit, 0, len(sites))
	for _, s := range sites {
		edits = append(edits, diag.TextEdit{Span: s.Span, NewText: target, OldText: s.Text})
	}
	f := &diag.Fix{
		ID:            "rename:" + original,
		Title:         fmt.Sprintf("rename %s to %s", original, target),
		Applicability: diag.FixApplicabilitySafeWithHeuristics,
		Edits:         edits,
	}
	return applyOptions(f, opts)
}

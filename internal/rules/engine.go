package rules

import (
	"fmt"
	"slices"

	"github.com/cockroachdb/errors"

	"lintnames/internal/decl"
	"lintnames/internal/diag"
)

// Violation pairs a declaration with a rule it breaks. Suggested is the
// canonical name; it is empty when no valid name remains.
type Violation struct {
	Decl      *decl.Declaration
	Rule      *Rule
	Suggested string
}

// Fixable reports whether a rename can be attempted.
func (v Violation) Fixable() bool {
	return v.Suggested != ""
}

type Options struct {
	// Disabled lists rule IDs to skip.
	Disabled []string
	// Allow exempts exact identifiers from every rule.
	Allow []string
}

// Engine evaluates declarations against the enabled rules.
type Engine struct {
	rules []*Rule
	allow map[string]struct{}
}

// NewEngine builds an engine. Unknown rule IDs in Disabled are an error.
func NewEngine(opts Options) (*Engine, error) {
	for _, id := range opts.Disabled {
		if _, ok := Lookup(id); !ok {
			return nil, errors.Newf("unknown rule %q", id)
		}
	}
	e := &Engine{allow: make(map[string]struct{}, len(opts.Allow))}
	for _, r := range builtin {
		if !slices.Contains(opts.Disabled, r.ID) {
			e.rules = append(e.rules, r)
		}
	}
	for _, name := range opts.Allow {
		e.allow[decl.Normalize(name)] = struct{}{}
	}
	return e, nil
}

// Rules returns the enabled rules in evaluation order.
func (e *Engine) Rules() []*Rule {
	return slices.Clone(e.rules)
}

// Canonical applies the enabled rules in order until none matches.
// Every step shortens the name, so the loop terminates.
func (e *Engine) Canonical(name string) string {
	for {
		changed := false
		for _, r := range e.rules {
			if next := r.Rewrite(name); next != name {
				name = next
				changed = true
			}
		}
		if !changed {
			return name
		}
	}
}

// Evaluate returns one violation per matching rule, in rule order.
func (e *Engine) Evaluate(d *decl.Declaration) []Violation {
	if d == nil {
		return nil
	}
	if _, ok := e.allow[d.Name]; ok {
		return nil
	}
	var out []Violation
	var suggested string
	for _, r := range e.rules {
		if !r.Pattern.MatchString(d.Name) {
			continue
		}
		if out == nil {
			suggested = e.Canonical(d.Name)
		}
		out = append(out, Violation{Decl: d, Rule: r, Suggested: suggested})
	}
	return out
}

// EvaluateAll evaluates every declaration and returns the violations in
// declaration order.
func (e *Engine) EvaluateAll(decls []*decl.Declaration) []Violation {
	var out []Violation
	for _, d := range decls {
		out = append(out, e.Evaluate(d)...)
	}
	return out
}

// Report emits one diagnostic per violation.
func Report(r diag.Reporter, v Violation) {
	d := v.Decl
	msg := fmt.Sprintf("%s %s: %s", d.Kind, d.Name, v.Rule.Summary)
	b := diag.ReportWarning(r, v.Rule.Code, d.Site.Span, msg)
	if !v.Fixable() {
		b.WithNote(d.Site.Span, "no valid name remains after removing the prefix or suffix")
		b.Emit()
		return
	}
	edits := make([]diag.TextEdit, 0, len(d.References)+1)
	for _, site := range append([]decl.Site{d.Site}, d.References...) {
		edits = append(edits, diag.TextEdit{Span: site.Span, NewText: v.Suggested, OldText: site.Text})
	}
	b.WithFixSuggestion(&diag.Fix{
		ID:            fmt.Sprintf("%s:%s", v.Rule.ID, d.Name),
		Title:         fmt.Sprintf("rename %s to %s", d.Name, v.Suggested),
		Applicability: diag.FixApplicabilitySafeWithHeuristics,
		IsPreferred:   true,
		Edits:         edits,
	})
	b.Emit()
}

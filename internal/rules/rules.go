// Package rules holds the naming rules and the engine that evaluates
// declarations against them.
package rules

import (
	"regexp"
	"strings"

	"lintnames/internal/diag"
)

// Rule is a naming pattern plus the rewrite that removes the offending part.
type Rule struct {
	ID      string
	Code    diag.Code
	Pattern *regexp.Regexp
	Summary string
	rewrite func(string) string
}

// Rewrite applies the rule's correction to name. Names the rule does not
// match are returned unchanged.
func (r *Rule) Rewrite(name string) string {
	if !r.Pattern.MatchString(name) {
		return name
	}
	return r.rewrite(name)
}

// Rule IDs, in evaluation order.
const (
	InterfacePrefix = "interface-prefix"
	TypePrefix      = "type-prefix"
	DtoSuffix       = "dto-suffix"
)

var builtin = []*Rule{
	{
		ID:      InterfacePrefix,
		Code:    diag.NameInterfacePrefix,
		Pattern: regexp.MustCompile(`^I[A-Z]`),
		Summary: "no I prefix on type names",
		rewrite: func(s string) string { return s[1:] },
	},
	{
		ID:      TypePrefix,
		Code:    diag.NameTypePrefix,
		Pattern: regexp.MustCompile(`^T[A-Z]`),
		Summary: "no T prefix on type names",
		rewrite: func(s string) string { return s[1:] },
	},
	{
		ID:      DtoSuffix,
		Code:    diag.NameDtoSuffix,
		Pattern: regexp.MustCompile(`Dto$`),
		Summary: "no Dto suffix on type names",
		rewrite: func(s string) string { return strings.TrimSuffix(s, "Dto") },
	},
}

// All returns the fixed rule set in evaluation order.
func All() []*Rule {
	out := make([]*Rule, len(builtin))
	copy(out, builtin)
	return out
}

// Lookup finds a rule by ID.
func Lookup(id string) (*Rule, bool) {
	for _, r := range builtin {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

package fix

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"lintnames/internal/decl"
	"lintnames/internal/diag"
	"lintnames/internal/driver"
	"lintnames/internal/errs"
	"lintnames/internal/rules"
	"lintnames/internal/source"
	"lintnames/internal/token"
)

// Reason says why a rename was not performed.
type Reason string

const (
	ReasonCollision   Reason = "collision"
	ReasonUnfixable   Reason = "unfixable"
	ReasonUnparsable  Reason = "unparsable-reference"
	ReasonGuard       Reason = "guard-mismatch"
	ReasonWriteFailed Reason = "write-failure"
)

// Code maps the reason to its diagnostic code.
func (r Reason) Code() diag.Code {
	switch r {
	case ReasonCollision:
		return diag.FixRenameCollision
	case ReasonUnfixable:
		return diag.FixUnfixableName
	case ReasonUnparsable:
		return diag.FixUnparsableReference
	case ReasonGuard:
		return diag.FixGuardMismatch
	case ReasonWriteFailed:
		return diag.FixWithdrawn
	}
	return diag.FixInfo
}

// Rename renames one identifier everywhere: all of its declarations and
// every other site that spells it.
type Rename struct {
	Original string
	Target   string
	// Rules are the IDs of the rules the name broke, in rule order.
	Rules []string
	Decls []*decl.Declaration
	Sites []decl.Site
}

// Files returns the touched files in ascending ID order.
func (r *Rename) Files() []source.FileID {
	var out []source.FileID
	for _, s := range r.Sites {
		if !slices.Contains(out, s.File) {
			out = append(out, s.File)
		}
	}
	slices.Sort(out)
	return out
}

// Paths returns the touched file paths.
func (r *Rename) Paths() []string {
	var out []string
	for _, s := range r.Sites {
		if !slices.Contains(out, s.Path) {
			out = append(out, s.Path)
		}
	}
	sort.Strings(out)
	return out
}

// Fix is the rename as a guarded multi-file edit.
func (r *Rename) Fix() *diag.Fix {
	return RenameFix(r.Original, r.Target, r.Sites, Preferred())
}

// Conflict is a rename that was not performed.
type Conflict struct {
	Original string
	Target   string
	Reason   Reason
	// Err is a RenameCollisionError or an IOError.
	Err  error
	Decl *decl.Declaration
}

// Plan is the outcome of collision detection.
type Plan struct {
	Renames   []*Rename
	Conflicts []Conflict
}

type group struct {
	name      string
	suggested string
	rules     []string
	decls     []*decl.Declaration
}

// PlanRenames turns violations into renames, one per original identifier,
// and moves every rename that cannot be done safely into Conflicts. It
// needs the complete index: collisions are decided tree-wide.
func PlanRenames(idx *driver.Index, violations []rules.Violation) *Plan {
	groups := groupViolations(violations)

	targets := make(map[string][]string)
	for _, g := range groups {
		if g.suggested != "" {
			targets[g.suggested] = append(targets[g.suggested], g.name)
		}
	}

	plan := &Plan{}
	for _, g := range groups {
		r := &Rename{
			Original: g.name,
			Target:   g.suggested,
			Rules:    g.rules,
			Decls:    g.decls,
			Sites:    idx.Sites(g.name),
		}
		if reason, err := checkRename(idx, r, targets[g.suggested]); err != nil {
			plan.Conflicts = append(plan.Conflicts, Conflict{
				Original: r.Original,
				Target:   r.Target,
				Reason:   reason,
				Err:      err,
				Decl:     g.decls[0],
			})
			continue
		}
		plan.Renames = append(plan.Renames, r)
	}
	return plan
}

func groupViolations(violations []rules.Violation) []*group {
	var order []*group
	byName := make(map[string]*group)
	for _, v := range violations {
		g, ok := byName[v.Decl.Name]
		if !ok {
			g = &group{name: v.Decl.Name, suggested: v.Suggested}
			byName[v.Decl.Name] = g
			order = append(order, g)
		}
		if !slices.Contains(g.rules, v.Rule.ID) {
			g.rules = append(g.rules, v.Rule.ID)
		}
		if !slices.Contains(g.decls, v.Decl) {
			g.decls = append(g.decls, v.Decl)
		}
	}
	sort.SliceStable(order, func(i, j int) bool { return order[i].name < order[j].name })
	return order
}

func checkRename(idx *driver.Index, r *Rename, sameTarget []string) (Reason, error) {
	collide := func(reason string, paths ...string) (Reason, error) {
		return ReasonCollision, errs.NewRenameCollision(r.Original, r.Target, reason, paths...)
	}

	if r.Target == "" {
		return ReasonUnfixable, errs.NewRenameCollision(r.Original, r.Target, "no valid name remains")
	}
	if token.IsReservedWord(r.Target) {
		return collide("target is a reserved word")
	}
	if IsBuiltinType(r.Target) {
		return collide("target is a built-in global type")
	}
	if len(sameTarget) > 1 {
		others := slices.DeleteFunc(slices.Clone(sameTarget), func(s string) bool { return s == r.Original })
		return collide(fmt.Sprintf("%s would be renamed to the same name", strings.Join(others, ", ")))
	}
	if declared := idx.TypeDeclared(r.Target); len(declared) > 0 {
		return collide("target is already declared", sitePaths(declared)...)
	}
	var bound []string
	for _, id := range r.Files() {
		if idx.Bound(id, r.Target) {
			bound = append(bound, idx.FileSet.Get(id).Path)
		}
	}
	if len(bound) > 0 {
		return collide("target is already bound in a file the rename touches", bound...)
	}
	// цель уже встречается в затронутом файле, даже если объявлена вне дерева
	touched := r.Files()
	var used []string
	for _, s := range idx.Sites(r.Target) {
		if slices.Contains(touched, s.File) && !slices.Contains(used, s.Path) {
			used = append(used, s.Path)
		}
	}
	if len(used) > 0 {
		return collide("target is already used in a file the rename touches", used...)
	}
	if mentions := idx.Mentions(r.Original); len(mentions) > 0 {
		paths := make([]string, 0, len(mentions))
		for _, f := range mentions {
			paths = append(paths, f.Path)
		}
		err := errs.NewRenameCollision(r.Original, r.Target, "referenced from a file that could not be parsed", paths...)
		return ReasonUnparsable, errors.WithHint(err, "fix the parse errors and run again")
	}
	return "", nil
}

func sitePaths(sites []decl.Site) []string {
	var out []string
	for _, s := range sites {
		if !slices.Contains(out, s.Path) {
			out = append(out, s.Path)
		}
	}
	return out
}

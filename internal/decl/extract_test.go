package decl

import (
	"fmt"
	"slices"
	"testing"

	"lintnames/internal/diag"
	"lintnames/internal/source"
)

func extractString(t *testing.T, src string) Facts {
	t.Helper()
	fs := source.NewFileSet()
	return Extract(fs.Get(fs.AddVirtual("test.ts", []byte(src))))
}

func bindingSet(f Facts) []string {
	out := make([]string, 0, len(f.Bindings))
	for _, b := range f.Bindings {
		out = append(out, fmt.Sprintf("%s:%s", b.Name, b.Kind))
	}
	slices.Sort(out)
	return out
}

func identCount(f Facts, name string) int {
	n := 0
	for _, id := range f.Idents {
		if id.Name == name {
			n++
		}
	}
	return n
}

func TestExtractDeclarationsAndBindings(t *testing.T) {
	src := `import { Base, type IMeta as Meta } from "./base";
import * as NS from "./ns";
import Def, { other } from "./def";
export interface IUser<TKey extends string = string> extends Base {
  id: TKey;
  type: string;
}
type TUserDto = { user: IUser };
export declare type Pair<A, B> = [A, B];
class UserService { find(u: IUser): TUserDto { return null!; } }
const enum Color { Red }
namespace App.Models { }
function* gen<T>() {}
const { a, b: c, d = fallback, ...rest } = obj, [x, , y] = arr;
let single: IUser | undefined;
obj.interface;
`
	facts := extractString(t, src)
	if !facts.Parsed() {
		t.Fatalf("unexpected problems: %+v", facts.Problems)
	}

	wantDecls := []Decl{
		{Name: "IUser", Kind: KindInterface, Exported: true},
		{Name: "TUserDto", Kind: KindTypeAlias},
		{Name: "Pair", Kind: KindTypeAlias, Exported: true, Ambient: true},
	}
	if len(facts.Declarations) != len(wantDecls) {
		t.Fatalf("expected %d declarations, got %+v", len(wantDecls), facts.Declarations)
	}
	for i, want := range wantDecls {
		got := facts.Declarations[i]
		if got.Name != want.Name || got.Kind != want.Kind || got.Exported != want.Exported || got.Ambient != want.Ambient {
			t.Errorf("decl %d: got %+v, want %+v", i, got, want)
		}
		if src[got.Start:got.End] != want.Name {
			t.Errorf("decl %d: span covers %q", i, src[got.Start:got.End])
		}
	}

	wantBindings := []string{
		"A:type parameter", "App:namespace", "B:type parameter", "Base:import",
		"Color:enum", "Def:import", "IUser:interface", "Meta:import", "Models:namespace",
		"NS:import", "Pair:type alias", "T:type parameter", "TKey:type parameter",
		"TUserDto:type alias", "UserService:class", "a:variable", "c:variable",
		"d:variable", "gen:function", "other:import", "rest:variable", "single:variable",
		"x:variable", "y:variable",
	}
	if got := bindingSet(facts); !slices.Equal(got, wantBindings) {
		t.Fatalf("bindings mismatch:\n got %v\nwant %v", got, wantBindings)
	}

	if n := identCount(facts, "IUser"); n != 4 {
		t.Fatalf("expected 4 IUser identifiers, got %d", n)
	}
	if n := identCount(facts, "fallback"); n != 1 {
		t.Fatalf("default values are identifiers too, got %d", n)
	}
}

func TestTypeKeywordOutsideAliases(t *testing.T) {
	src := `import type { IUser } from "./u";
import type Def from "./d";
let x = { type: 1 };
x.type = 2;
type X = 1 extends 2 ? 1 : 2;
type A<T>= T[];
`
	facts := extractString(t, src)
	var names []string
	for _, d := range facts.Declarations {
		names = append(names, d.Name)
	}
	if want := []string{"X", "A"}; !slices.Equal(names, want) {
		t.Fatalf("declarations: got %v, want %v", names, want)
	}
	want := []string{"A:type alias", "Def:import", "IUser:import", "T:type parameter", "X:type alias", "x:variable"}
	if got := bindingSet(facts); !slices.Equal(got, want) {
		t.Fatalf("bindings: got %v, want %v", got, want)
	}
}

func TestUnparsableFileHasNoFacts(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"unclosed brace", "interface IUser { id: string", diag.SynUnclosedDelimiter},
		{"stray close", "type TId = string; }", diag.SynUnexpectedClose},
		{"mismatch", "const a = (1];", diag.SynMismatchedClose},
		{"lexical", "interface IUser {}\nconst s = `abc", diag.LexUnterminatedTemplate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facts := extractString(t, tt.src)
			if facts.Parsed() {
				t.Fatalf("expected problems")
			}
			if len(facts.Declarations) != 0 || len(facts.Idents) != 0 || len(facts.Bindings) != 0 {
				t.Fatalf("unparsable file must contribute nothing: %+v", facts)
			}
			codes := make([]diag.Code, 0, len(facts.Problems))
			for _, p := range facts.Problems {
				codes = append(codes, diag.Code(p.Code))
			}
			if !slices.Contains(codes, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code.ID(), codes)
			}
		})
	}
}

func TestIdentifiersAreNFCNormalised(t *testing.T) {
	composed := "Caf\u00e9"
	decomposed := "Cafe\u0301"
	facts := extractString(t, "interface I"+composed+" {}\nlet v: I"+decomposed+";\n")
	if n := identCount(facts, "I"+composed); n != 2 {
		t.Fatalf("expected both spellings to normalise to one name, got %d", n)
	}
	last := facts.Idents[len(facts.Idents)-1]
	if last.Text != "I"+decomposed || last.Spelling() != "I"+decomposed {
		t.Fatalf("expected source spelling to be kept, got %+v", last)
	}
}

func TestBindingKindTypeLevel(t *testing.T) {
	for _, k := range []BindingKind{BindInterface, BindTypeAlias, BindClass, BindEnum, BindNamespace} {
		if !k.IsTypeLevel() {
			t.Errorf("%s should be type-level", k)
		}
	}
	for _, k := range []BindingKind{BindFunction, BindVariable, BindImport, BindTypeParam} {
		if k.IsTypeLevel() {
			t.Errorf("%s should not be type-level", k)
		}
	}
}

package lexer

import (
	"strings"
	"testing"

	"lintnames/internal/diag"
	"lintnames/internal/source"
	"lintnames/internal/token"
)

func TestTokenTooLongTriggersDiagnosticAndStops(t *testing.T) {
	content := "x = " + strings.Repeat("a", maxTokenLength+1) + " y"
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("long.ts", []byte(content)))

	bag := diag.NewBag(4)
	lx := New(file, Options{Reporter: &diag.BagReporter{Bag: bag}})

	lx.Next() // x
	lx.Next() // =
	if tok := lx.Next(); tok.Kind != token.Invalid {
		t.Fatalf("expected invalid token, got %v", tok.Kind)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexTokenTooLong {
		t.Fatalf("expected a single LexTokenTooLong, got %+v", bag.Items())
	}
	if lx.Errors() != 1 {
		t.Fatalf("expected error counter 1, got %d", lx.Errors())
	}
	if next := lx.Next(); next.Kind != token.EOF {
		t.Fatalf("expected EOF after long token, got %v", next.Kind)
	}
}

func TestTokenAtLimitAllowed(t *testing.T) {
	content := strings.Repeat("b", maxTokenLength)
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("limit.ts", []byte(content)))

	bag := diag.NewBag(1)
	lx := New(file, Options{Reporter: &diag.BagReporter{Bag: bag}})
	if tok := lx.Next(); tok.Kind != token.Ident {
		t.Fatalf("expected ident token, got %v", tok.Kind)
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
}

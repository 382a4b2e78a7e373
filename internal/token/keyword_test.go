package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"interface": KwInterface,
		"type":      KwType,
		"namespace": KwNamespace,
		"declare":   KwDeclare,
		"import":    KwImport,
		"typeof":    KwTypeof,
		"satisfies": KwSatisfies,
		"return":    KwReturn,
	}

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	// Заведомо НЕ ключевые слова
	notKw := []string{"Interface", "TYPE", "string", "number", "User", "IUser", "any", "never", ""}
	for _, s := range notKw {
		if k, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) = %v, expected not a keyword", s, k)
		}
	}
}

func TestEveryKeywordHasText(t *testing.T) {
	for k := kwBegin + 1; k < kwEnd; k++ {
		if _, ok := keywordText[k]; !ok {
			t.Errorf("keyword kind %d has no text", k)
		}
	}
}

func TestIsReservedWord(t *testing.T) {
	if !IsReservedWord("class") || !IsReservedWord("enum") {
		t.Fatalf("class and enum are reserved")
	}
	if IsReservedWord("type") || IsReservedWord("Type") {
		t.Fatalf("type is contextual and Type is not a keyword")
	}
}

package token_test

import (
	"testing"

	"lintnames/internal/source"
	"lintnames/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{
		token.NumberLit, token.StringLit, token.NoSubstTemplate,
		token.TemplateHead, token.TemplateMiddle, token.TemplateTail, token.RegexLit,
	}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwLet, token.Plus, token.LParen}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestIsPunctOrOp(t *testing.T) {
	ops := []token.Kind{
		token.LParen, token.RBrace, token.Semicolon, token.DotDotDot, token.QuestionDot,
		token.Nullish, token.FatArrow, token.OpAssign, token.EqEqEq, token.BangEqEq,
		token.StarStar, token.Slash, token.Shl, token.Tilde, token.Hash,
	}
	for _, k := range ops {
		if !tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be punct/op", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwIf, token.NumberLit, token.RegexLit}
	for _, k := range non {
		if tok(k).IsPunctOrOp() {
			t.Fatalf("%v must NOT be punct/op", k)
		}
	}
}

func TestIdentLike(t *testing.T) {
	if !tok(token.Ident).IsIdentLike() || !tok(token.KwType).IsIdentLike() {
		t.Fatalf("Ident and contextual keywords should be ident-like")
	}
	if tok(token.KwClass).IsIdentLike() {
		t.Fatalf("reserved keyword must not be ident-like")
	}
}

func TestEndsExpression(t *testing.T) {
	division := []token.Kind{token.Ident, token.RParen, token.RBracket, token.NumberLit, token.KwThis, token.KwOf}
	for _, k := range division {
		if !tok(k).EndsExpression() {
			t.Errorf("%v should end an expression", k)
		}
	}
	regex := []token.Kind{token.KwReturn, token.KwTypeof, token.LParen, token.Assign, token.Comma, token.KwAwait}
	for _, k := range regex {
		if tok(k).EndsExpression() {
			t.Errorf("%v should allow a regex to follow", k)
		}
	}
}

func TestKindString(t *testing.T) {
	if got := token.KwInterface.String(); got != "Kw(interface)" {
		t.Fatalf("got %q", got)
	}
	if got := token.TemplateHead.String(); got != "TemplateHead" {
		t.Fatalf("got %q", got)
	}
}

package token

import (
	"lintnames/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, string, template or regex literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, StringLit, NoSubstTemplate, TemplateHead, TemplateMiddle, TemplateTail, RegexLit:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= LParen && t.Kind <= Hash
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsIdentLike reports whether the token may name something: an identifier
// or a contextual keyword used in identifier position.
func (t Token) IsIdentLike() bool {
	return t.Kind == Ident || t.Kind.IsContextual()
}

// EndsExpression reports whether a '/' after this token is a division
// rather than the start of a regular expression literal.
func (t Token) EndsExpression() bool {
	switch t.Kind {
	case Ident, PrivateName, NumberLit, StringLit, NoSubstTemplate, TemplateTail, RegexLit,
		RParen, RBracket, RBrace, PlusPlus, MinusMinus,
		KwThis, KwSuper, KwTrue, KwFalse, KwNull:
		return true
	}
	// `of`, `as`, `type` and friends usually act as names in expression position
	return t.Kind.IsContextual() && t.Kind != KwAwait && t.Kind != KwYield
}

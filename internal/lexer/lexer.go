package lexer

import (
	"fmt"

	"lintnames/internal/diag"
	"lintnames/internal/source"
	"lintnames/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
	prev   token.Token    // последний значимый токен, нужен для regex
	errors int

	// глубина {} и стек глубин, на которых открыты подстановки ${ в шаблонах
	braceDepth int
	templates  []int
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		prev:   token.Token{Kind: token.Invalid},
	}
}

// Next возвращает следующий значимый токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	// Leading из hold к EOF не приклеиваем
	if lx.cursor.EOF() {
		if len(lx.templates) > 0 {
			sp := lx.emptySpan()
			lx.errLex(diag.LexUnterminatedTemplate, sp, "unterminated template substitution")
			lx.templates = nil
		}
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '.' && isDec(lx.cursor.PeekAt(1)):
		tok = lx.scanNumber()

	case ch == '"' || ch == '\'':
		tok = lx.scanString(ch)

	case ch == '`':
		tok = lx.scanTemplate(true)

	case ch == '}' && lx.inTemplateSubst():
		lx.templates = lx.templates[:len(lx.templates)-1]
		tok = lx.scanTemplate(false)

	case ch == '#':
		tok = lx.scanPrivateName()

	case ch == '/' && !lx.prev.EndsExpression():
		tok = lx.scanRegex()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	if tok.Span.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, tok.Span, fmt.Sprintf("token longer than %d bytes", maxTokenLength))
		lx.cursor.SkipToEnd()
		tok = token.Token{Kind: token.Invalid, Span: tok.Span}
	}

	switch tok.Kind {
	case token.LBrace:
		lx.braceDepth++
	case token.RBrace:
		if lx.braceDepth > 0 {
			lx.braceDepth--
		}
	case token.TemplateHead, token.TemplateMiddle:
		lx.templates = append(lx.templates, lx.braceDepth)
	}

	tok.Leading = lx.hold
	lx.hold = nil
	lx.prev = tok
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Errors returns how many lexical errors were reported so far.
func (lx *Lexer) Errors() int {
	return lx.errors
}

// All lexes the whole file and returns every significant token, EOF excluded.
func All(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/4)
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

func (lx *Lexer) inTemplateSubst() bool {
	n := len(lx.templates)
	return n > 0 && lx.templates[n-1] == lx.braceDepth
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
}

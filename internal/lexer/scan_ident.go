package lexer

import (
	"fmt"

	"lintnames/internal/diag"
	"lintnames/internal/token"
)

// scanIdentOrKeyword сканирует идентификатор и проверяет его через LookupKeyword.
// Ключевые слова регистрозависимые. Token.Text это ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		return lx.emit(token.Invalid, start)
	}
	if r < utf8RuneSelf {
		lx.cursor.Bump()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	} else {
		if !isIdentStartRune(r) {
			lx.bumpRune()
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", r))
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		lx.bumpRune()
	}
	// хвост может смешивать ASCII и Unicode
	for {
		b := lx.cursor.Peek()
		if isIdentContinueByte(b) {
			lx.cursor.Bump()
			continue
		}
		if b < utf8RuneSelf {
			break
		}
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}

	tok := lx.emit(token.Ident, start)
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}

// scanPrivateName handles #name class members; a lone '#' is punctuation.
func (lx *Lexer) scanPrivateName() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '#'
	b := lx.cursor.Peek()
	if !isIdentStartByte(b) && b < utf8RuneSelf {
		return lx.emit(token.Hash, start)
	}
	name := lx.scanIdentOrKeyword()
	if name.Kind == token.Invalid {
		return name
	}
	return lx.emit(token.PrivateName, start)
}

package lexer

import (
	"lintnames/internal/diag"
	"lintnames/internal/token"
)

// scanRegex сканирует /body/flags. Вызывается, только если '/' стоит там, где
// выражение ещё не завершено (см. token.Token.EndsExpression).
func (lx *Lexer) scanRegex() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	inClass := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\n':
			return lx.unterminatedRegex(start)
		case b == '\\':
			lx.cursor.Bump()
			if lx.cursor.Peek() == '\n' {
				return lx.unterminatedRegex(start)
			}
		case b == '[':
			inClass = true
		case b == ']':
			inClass = false
		case b == '/' && !inClass:
			lx.cursor.Bump()
			for isIdentContinueByte(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			return lx.emit(token.RegexLit, start)
		}
		lx.cursor.Bump()
	}
	return lx.unterminatedRegex(start)
}

func (lx *Lexer) unterminatedRegex(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedRegex, sp, "unterminated regular expression literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

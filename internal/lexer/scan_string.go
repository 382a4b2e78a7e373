package lexer

import (
	"lintnames/internal/diag"
	"lintnames/internal/token"
)

// scanString сканирует '...' и "..." литералы. Escape-последовательности не
// валидируются: достаточно пропустить байт после '\'. Перенос строки без '\'
// завершает литерал с ошибкой.
func (lx *Lexer) scanString(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // открывающая кавычка
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case quote:
			lx.cursor.Bump()
			return lx.emit(token.StringLit, start)
		case '\\':
			lx.cursor.Bump()
			lx.cursor.Bump()
			continue
		case '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// scanTemplate сканирует часть шаблонной строки. fromBacktick=true означает начало
// (`...), иначе продолжение после '}' закрывающего подстановку.
func (lx *Lexer) scanTemplate(fromBacktick bool) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '`' или '}'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '`':
			lx.cursor.Bump()
			if fromBacktick {
				return lx.emit(token.NoSubstTemplate, start)
			}
			return lx.emit(token.TemplateTail, start)
		case b == '\\':
			lx.cursor.Bump()
			lx.cursor.Bump()
			continue
		case b == '$' && lx.cursor.PeekAt(1) == '{':
			lx.cursor.Bump()
			lx.cursor.Bump()
			if fromBacktick {
				return lx.emit(token.TemplateHead, start)
			}
			return lx.emit(token.TemplateMiddle, start)
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedTemplate, sp, "unterminated template literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

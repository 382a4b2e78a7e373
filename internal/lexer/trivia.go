package lexer

import (
	"lintnames/internal/diag"
	"lintnames/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
//   - пробелы, табы и Unicode-пробелы коалесцируются в один TriviaSpace
//   - последовательные '\n' коалесцируются в один TriviaNewline
//   - //... до \n -> TriviaLineComment
//   - /* ... */ -> TriviaBlockComment, /** ... */ -> TriviaDocBlock (без вложенности)
//   - #! в самом начале файла -> TriviaShebang
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	if lx.cursor.Off == 0 && lx.tryN("#!") {
		lx.skipLine()
		lx.pushTrivia(token.TriviaShebang, 0)
	}
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case b == ' ' || b == '\t' || b == '\v' || b == '\f' || lx.atSpaceRune():
			for {
				b2 := lx.cursor.Peek()
				if b2 == ' ' || b2 == '\t' || b2 == '\v' || b2 == '\f' {
					lx.cursor.Bump()
					continue
				}
				if lx.atSpaceRune() {
					lx.bumpRune()
					continue
				}
				break
			}
			lx.pushTrivia(token.TriviaSpace, start)
			continue

		case b == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
			continue

		case b == '/' && lx.cursor.PeekAt(1) == '/':
			lx.skipLine()
			lx.pushTrivia(token.TriviaLineComment, start)
			continue

		case b == '/' && lx.cursor.PeekAt(1) == '*':
			lx.scanBlockComment(start)
			continue
		}

		// нет больше trivia
		break
	}
}

func (lx *Lexer) atSpaceRune() bool {
	if lx.cursor.Peek() < utf8RuneSelf {
		return false
	}
	r, _ := lx.peekRune()
	return isSpaceRune(r)
}

func (lx *Lexer) skipLine() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) scanBlockComment(start Mark) {
	lx.cursor.Bump()
	lx.cursor.Bump()
	kind := token.TriviaBlockComment
	// "/**/" это пустой комментарий, не doc
	if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) != '/' {
		kind = token.TriviaDocBlock
	}
	closed := false
	for !lx.cursor.EOF() {
		if lx.tryN("*/") {
			closed = true
			break
		}
		lx.cursor.Bump()
	}
	if !closed {
		lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
	}
	lx.pushTrivia(kind, start)
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

package lexer

import (
	"lintnames/internal/diag"
	"lintnames/internal/token"
)

// Поддержка: 0, 123, 1_000, 0b..., 0o..., 0x..., 1.5, .5, 1e-3, 10n.
// Неверные формы репортятся, токен по возможности завершаем.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.Peek() == '0' {
		var digit func(byte) bool
		switch lx.cursor.PeekAt(1) {
		case 'b', 'B':
			digit = func(b byte) bool { return b == '0' || b == '1' }
		case 'o', 'O':
			digit = func(b byte) bool { return b >= '0' && b <= '7' }
		case 'x', 'X':
			digit = isHex
		}
		if digit != nil {
			lx.cursor.Bump()
			lx.cursor.Bump()
			if n := lx.eatDigits(digit); n == 0 {
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexBadNumber, sp, "expected digits after radix prefix")
				return lx.emit(token.Invalid, start)
			}
			lx.cursor.Eat('n')
			return lx.emit(token.NumberLit, start)
		}
	}

	lx.eatDigits(isDec)
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		lx.eatDigits(isDec)
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if lx.eatDigits(isDec) == 0 {
			lx.cursor.Reset(mark)
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "expected exponent digits")
			return lx.emit(token.Invalid, start)
		}
	}
	lx.cursor.Eat('n')
	return lx.emit(token.NumberLit, start)
}

// eatDigits consumes digits and '_' separators and returns how many digits it saw.
func (lx *Lexer) eatDigits(digit func(byte) bool) int {
	n := 0
	for {
		b := lx.cursor.Peek()
		switch {
		case digit(b):
			n++
		case b == '_' && n > 0:
		default:
			return n
		}
		lx.cursor.Bump()
	}
}

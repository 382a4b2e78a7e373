package lexer

import (
	"fmt"

	"lintnames/internal/diag"
	"lintnames/internal/token"
)

type opEntry struct {
	text string
	kind token.Kind
}

// Жадность: сначала длинные последовательности, затем короткие.
// '>' всегда отдельный токен: ">>" внутри generic-аргументов не склеиваем.
var multiOps = []opEntry{
	{">>>=", token.OpAssign},
	{"===", token.EqEqEq},
	{"!==", token.BangEqEq},
	{"**=", token.OpAssign},
	{"<<=", token.OpAssign},
	{">>=", token.OpAssign},
	{"&&=", token.OpAssign},
	{"||=", token.OpAssign},
	{"??=", token.OpAssign},
	{"...", token.DotDotDot},
	{"=>", token.FatArrow},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"++", token.PlusPlus},
	{"--", token.MinusMinus},
	{"**", token.StarStar},
	{"<<", token.Shl},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"??", token.Nullish},
	{"+=", token.OpAssign},
	{"-=", token.OpAssign},
	{"*=", token.OpAssign},
	{"/=", token.OpAssign},
	{"%=", token.OpAssign},
	{"&=", token.OpAssign},
	{"|=", token.OpAssign},
	{"^=", token.OpAssign},
}

var singleOps = [utf8RuneSelf]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	';': token.Semicolon,
	',': token.Comma,
	'.': token.Dot,
	'?': token.Question,
	':': token.Colon,
	'@': token.At,
	'=': token.Assign,
	'<': token.Lt,
	'>': token.Gt,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	'~': token.Tilde,
	'!': token.Bang,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	// "?." но не "?.5" (тернарник с дробью)
	if lx.cursor.Peek() == '?' && lx.cursor.PeekAt(1) == '.' && !isDec(lx.cursor.PeekAt(2)) {
		lx.tryN("?.")
		return lx.emit(token.QuestionDot, start)
	}
	for _, op := range multiOps {
		if lx.tryN(op.text) {
			return lx.emit(op.kind, start)
		}
	}

	ch := lx.cursor.Bump()
	if ch < utf8RuneSelf {
		if k := singleOps[ch]; k != token.Invalid {
			return lx.emit(k, start)
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", ch))
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

package decl

import (
	"fmt"

	"lintnames/internal/diag"
	"lintnames/internal/token"
)

type openDelim struct {
	kind  token.Kind
	start uint32
	end   uint32
}

var closerOf = map[token.Kind]token.Kind{
	token.LParen:   token.RParen,
	token.LBracket: token.RBracket,
	token.LBrace:   token.RBrace,
}

// checkBalance проверяет парность (), [], {}. Шаблонные подстановки
// лексер уже сбалансировал сам.
func checkBalance(toks []token.Token) []Problem {
	var (
		stack    []openDelim
		problems []Problem
	)
	for _, tok := range toks {
		switch tok.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			stack = append(stack, openDelim{kind: tok.Kind, start: tok.Span.Start, end: tok.Span.End})
		case token.RParen, token.RBracket, token.RBrace:
			if len(stack) == 0 {
				problems = append(problems, Problem{
					Code:    uint16(diag.SynUnexpectedClose),
					Start:   tok.Span.Start,
					End:     tok.Span.End,
					Message: fmt.Sprintf("unexpected '%s'", tok.Text),
				})
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if closerOf[top.kind] != tok.Kind {
				problems = append(problems, Problem{
					Code:    uint16(diag.SynMismatchedClose),
					Start:   tok.Span.Start,
					End:     tok.Span.End,
					Message: fmt.Sprintf("'%s' closes '%s'", tok.Text, top.kind),
				})
			}
		}
	}
	for _, open := range stack {
		problems = append(problems, Problem{
			Code:    uint16(diag.SynUnclosedDelimiter),
			Start:   open.start,
			End:     open.end,
			Message: fmt.Sprintf("unclosed '%s'", open.kind),
		})
	}
	return problems
}

package lexer

import (
	"lintnames/internal/diag"
	"lintnames/internal/source"
)

// maxTokenLength caps a single token; longer input is reported and skipped.
const maxTokenLength = 1 << 20

type Options struct {
	Reporter diag.Reporter // может быть nil, тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	lx.errors++
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil, nil)
	}
}

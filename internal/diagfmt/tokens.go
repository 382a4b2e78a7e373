package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"lintnames/internal/source"
	"lintnames/internal/token"
)

// TokenOutput is one token of the tokenize dump.
type TokenOutput struct {
	Kind     string   `json:"kind"`
	Text     string   `json:"text,omitempty"`
	Start    uint32   `json:"start"`
	End      uint32   `json:"end"`
	Line     uint32   `json:"line"`
	Col      uint32   `json:"col"`
	Leading  []string `json:"leading,omitempty"`
	Comments []string `json:"comments,omitempty"`
}

func tokenOutput(tok token.Token, fs *source.FileSet) TokenOutput {
	start, _ := fs.Resolve(tok.Span)
	out := TokenOutput{
		Kind:  tok.Kind.String(),
		Text:  tok.Text,
		Start: tok.Span.Start,
		End:   tok.Span.End,
		Line:  start.Line,
		Col:   start.Col,
	}
	for _, tr := range tok.Leading {
		out.Leading = append(out.Leading, tr.Kind.String())
		switch tr.Kind {
		case token.TriviaLineComment, token.TriviaBlockComment, token.TriviaDocBlock:
			out.Comments = append(out.Comments, tr.Text)
		}
	}
	return out
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		var b strings.Builder
		fmt.Fprintf(&b, "%3d: %-15s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(&b, " %q", tok.Text)
		}
		fmt.Fprintf(&b, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if len(tok.Leading) > 0 {
			leading := make([]string, 0, len(tok.Leading))
			for _, trivia := range tok.Leading {
				leading = append(leading, trivia.Kind.String())
			}
			fmt.Fprintf(&b, " (leading: %s)", strings.Join(leading, ", "))
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, tokenOutput(tok, fs))
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

package decl

import (
	"lintnames/internal/diag"
	"lintnames/internal/lexer"
	"lintnames/internal/source"
	"lintnames/internal/token"
)

// problemCollector adapts lexer diagnostics into Problems.
type problemCollector struct {
	problems []Problem
}

func (c *problemCollector) Report(code diag.Code, _ diag.Severity, primary source.Span, msg string, _ []diag.Note, _ []*diag.Fix) {
	c.problems = append(c.problems, Problem{Code: uint16(code), Start: primary.Start, End: primary.End, Message: msg})
}

// Extract lexes file and collects its facts.
func Extract(file *source.File) Facts {
	col := &problemCollector{}
	toks := lexer.All(file, lexer.Options{Reporter: col})
	return FromTokens(toks, col.problems)
}

// FromTokens builds facts from an already lexed stream. Lexical problems are
// passed in; delimiter balance is checked here.
func FromTokens(toks []token.Token, lexProblems []Problem) Facts {
	facts := Facts{Tokens: len(toks)}
	facts.Problems = append(facts.Problems, lexProblems...)
	facts.Problems = append(facts.Problems, checkBalance(toks)...)
	if len(facts.Problems) > 0 {
		return facts
	}
	w := walker{toks: toks, facts: &facts}
	w.run()
	return facts
}

type walker struct {
	toks  []token.Token
	facts *Facts
}

func (w *walker) run() {
	for i, tok := range w.toks {
		if tok.Kind == token.Ident {
			w.addIdent(tok)
		}
		if w.afterMember(i) {
			continue
		}
		switch tok.Kind {
		case token.KwInterface:
			w.interfaceDecl(i)
		case token.KwType:
			w.typeAlias(i)
		case token.KwClass:
			w.named(i, BindClass)
		case token.KwEnum:
			w.named(i, BindEnum)
		case token.KwFunction:
			w.function(i)
		case token.KwNamespace, token.KwModule:
			w.namespace(i)
		case token.KwConst, token.KwLet, token.KwVar:
			w.variables(i)
		case token.KwImport:
			w.importClause(i)
		}
	}
}

func (w *walker) at(i int) token.Token {
	if i < 0 || i >= len(w.toks) {
		return token.Token{Kind: token.EOF}
	}
	return w.toks[i]
}

func (w *walker) identAt(i int) (token.Token, bool) {
	tok := w.at(i)
	return tok, tok.Kind == token.Ident
}

// afterMember: obj.type, a?.interface: имена свойств, не объявления.
func (w *walker) afterMember(i int) bool {
	k := w.at(i - 1).Kind
	return k == token.Dot || k == token.QuestionDot
}

func (w *walker) addIdent(tok token.Token) {
	name := Normalize(tok.Text)
	id := Ident{Name: name, Start: tok.Span.Start, End: tok.Span.End}
	if name != tok.Text {
		id.Text = tok.Text
	}
	w.facts.Idents = append(w.facts.Idents, id)
}

func (w *walker) bind(tok token.Token, kind BindingKind) {
	w.facts.Bindings = append(w.facts.Bindings, Binding{
		Name:  Normalize(tok.Text),
		Kind:  kind,
		Start: tok.Span.Start,
		End:   tok.Span.End,
	})
}

func (w *walker) declare(i int, name token.Token, kind Kind) {
	w.facts.Declarations = append(w.facts.Declarations, Decl{
		Name:     Normalize(name.Text),
		Kind:     kind,
		Start:    name.Span.Start,
		End:      name.Span.End,
		Exported: w.hasModifier(i, token.KwExport),
		Ambient:  w.hasModifier(i, token.KwDeclare),
	})
}

// hasModifier looks back over declaration modifiers preceding position i.
func (w *walker) hasModifier(i int, want token.Kind) bool {
	for j := i - 1; j >= 0; j-- {
		switch k := w.toks[j].Kind; k {
		case want:
			return true
		case token.KwExport, token.KwDeclare, token.KwDefault, token.KwAbstract, token.KwConst:
			continue
		default:
			return false
		}
	}
	return false
}

func (w *walker) interfaceDecl(i int) {
	name, ok := w.identAt(i + 1)
	if !ok {
		return
	}
	w.declare(i, name, KindInterface)
	w.bind(name, BindInterface)
	w.typeParams(i + 2)
}

// typeAlias распознаёт "type Name =" и "type Name<...> =". Всё прочее
// (import type {...}, свойство type: ...) пропускается.
func (w *walker) typeAlias(i int) {
	name, ok := w.identAt(i + 1)
	if !ok {
		return
	}
	next := w.at(i + 2)
	switch next.Kind {
	case token.Assign:
	case token.Lt:
		if !w.typeParamsThenAssign(i + 2) {
			return
		}
	default:
		return
	}
	w.declare(i, name, KindTypeAlias)
	w.bind(name, BindTypeAlias)
	w.typeParams(i + 2)
}

func (w *walker) typeParamsThenAssign(j int) bool {
	depth := 0
	for ; j < len(w.toks); j++ {
		switch w.toks[j].Kind {
		case token.Lt:
			depth++
		case token.Gt:
			depth--
			if depth == 0 {
				return w.at(j+1).Kind == token.Assign
			}
		case token.GtEq:
			// "type A<T>= ..." лексится как '>='
			depth--
			return depth == 0
		case token.Semicolon:
			return false
		}
	}
	return false
}

// typeParams binds the names of a <...> parameter list starting at j.
func (w *walker) typeParams(j int) {
	if w.at(j).Kind != token.Lt {
		return
	}
	depth := 0
	for ; j < len(w.toks); j++ {
		tok := w.toks[j]
		switch tok.Kind {
		case token.Lt:
			depth++
			continue
		case token.Gt, token.GtEq:
			depth--
			if depth == 0 {
				return
			}
			continue
		case token.Semicolon:
			return
		}
		if depth != 1 || tok.Kind != token.Ident {
			continue
		}
		prev, next := w.at(j-1).Kind, w.at(j+1).Kind
		leading := prev == token.Lt || prev == token.Comma || prev == token.KwIn ||
			prev == token.KwConst || (prev == token.Ident && w.at(j-1).Text == "out")
		trailing := next == token.Comma || next == token.Gt || next == token.GtEq ||
			next == token.KwExtends || next == token.Assign
		if leading && trailing {
			w.bind(tok, BindTypeParam)
		}
	}
}

func (w *walker) named(i int, kind BindingKind) {
	name, ok := w.identAt(i + 1)
	if !ok {
		return
	}
	w.bind(name, kind)
	w.typeParams(i + 2)
}

func (w *walker) function(i int) {
	j := i + 1
	if w.at(j).Kind == token.Star {
		j++
	}
	name, ok := w.identAt(j)
	if !ok {
		return
	}
	w.bind(name, BindFunction)
	w.typeParams(j + 1)
}

// namespace A.B.C связывает каждый сегмент; module "x" пропускается.
func (w *walker) namespace(i int) {
	j := i + 1
	for {
		name, ok := w.identAt(j)
		if !ok {
			return
		}
		w.bind(name, BindNamespace)
		if w.at(j+1).Kind != token.Dot {
			return
		}
		j += 2
	}
}

func (w *walker) variables(i int) {
	j := i + 1
	for {
		switch w.at(j).Kind {
		case token.Ident:
			w.bind(w.toks[j], BindVariable)
			j++
		case token.LBrace, token.LBracket:
			j = w.pattern(j)
		default:
			return
		}
		j = w.skipDeclarator(j)
		if j < 0 {
			return
		}
		j++
	}
}

// pattern binds the names of a destructuring pattern starting at j and
// returns the index just past it.
func (w *walker) pattern(j int) int {
	depth := 0
	skipAt := -1 // глубина, на которой пропускаем значение по умолчанию
	for ; j < len(w.toks); j++ {
		tok := w.toks[j]
		switch tok.Kind {
		case token.LBrace, token.LBracket, token.LParen:
			depth++
			continue
		case token.RBrace, token.RBracket, token.RParen:
			depth--
			if skipAt > depth {
				skipAt = -1
			}
			if depth == 0 {
				return j + 1
			}
			continue
		case token.Comma:
			if depth == skipAt {
				skipAt = -1
			}
			continue
		case token.Assign:
			if skipAt < 0 {
				skipAt = depth
			}
			continue
		}
		if skipAt >= 0 || tok.Kind != token.Ident {
			continue
		}
		switch w.at(j + 1).Kind {
		case token.Comma, token.RBrace, token.RBracket, token.Assign:
			w.bind(tok, BindVariable)
		}
	}
	return j
}

var statementStarts = map[token.Kind]bool{
	token.KwConst: true, token.KwLet: true, token.KwVar: true, token.KwFunction: true,
	token.KwClass: true, token.KwInterface: true, token.KwExport: true, token.KwImport: true,
	token.KwReturn: true, token.KwIf: true, token.KwFor: true, token.KwWhile: true,
	token.KwEnum: true, token.KwNamespace: true, token.KwDeclare: true,
}

// skipDeclarator skips a type annotation and initializer. It returns the
// index of the comma that starts the next declarator, or -1.
func (w *walker) skipDeclarator(j int) int {
	depth := 0
	for ; j < len(w.toks); j++ {
		switch k := w.toks[j].Kind; {
		case k == token.LParen || k == token.LBracket || k == token.LBrace:
			depth++
		case k == token.RParen || k == token.RBracket || k == token.RBrace:
			if depth == 0 {
				return -1
			}
			depth--
		case depth > 0:
		case k == token.Comma:
			return j
		case k == token.Semicolon || statementStarts[k]:
			return -1
		}
	}
	return -1
}

func (w *walker) importClause(i int) {
	j := i + 1
	if w.at(j).Kind == token.KwType {
		switch w.at(j + 1).Kind {
		case token.Ident, token.LBrace, token.Star:
			j++
		}
	}
	if name, ok := w.identAt(j); ok {
		w.bind(name, BindImport)
		j++
		if w.at(j).Kind != token.Comma {
			return
		}
		j++
	}
	switch w.at(j).Kind {
	case token.Star:
		if w.at(j+1).Kind == token.KwAs {
			if name, ok := w.identAt(j + 2); ok {
				w.bind(name, BindImport)
			}
		}
	case token.LBrace:
		w.importSpecifiers(j + 1)
	}
}

// { a, type B, c as D, "x-y" as E }
func (w *walker) importSpecifiers(j int) {
	for j < len(w.toks) {
		tok := w.toks[j]
		switch tok.Kind {
		case token.RBrace:
			return
		case token.Comma:
			j++
			continue
		case token.KwType:
			if next := w.at(j + 1).Kind; next != token.Comma && next != token.RBrace && next != token.KwAs {
				j++
				continue
			}
		}
		if w.at(j+1).Kind == token.KwAs {
			if alias, ok := w.identAt(j + 2); ok {
				w.bind(alias, BindImport)
			}
			j += 3
			continue
		}
		if tok.Kind == token.Ident {
			w.bind(tok, BindImport)
		}
		j++
	}
}

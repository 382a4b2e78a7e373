package token

var keywords = map[string]Kind{
	"abstract":   KwAbstract,
	"as":         KwAs,
	"async":      KwAsync,
	"await":      KwAwait,
	"break":      KwBreak,
	"case":       KwCase,
	"catch":      KwCatch,
	"class":      KwClass,
	"const":      KwConst,
	"continue":   KwContinue,
	"debugger":   KwDebugger,
	"declare":    KwDeclare,
	"default":    KwDefault,
	"delete":     KwDelete,
	"do":         KwDo,
	"else":       KwElse,
	"enum":       KwEnum,
	"export":     KwExport,
	"extends":    KwExtends,
	"false":      KwFalse,
	"finally":    KwFinally,
	"for":        KwFor,
	"from":       KwFrom,
	"function":   KwFunction,
	"if":         KwIf,
	"implements": KwImplements,
	"import":     KwImport,
	"in":         KwIn,
	"instanceof": KwInstanceof,
	"interface":  KwInterface,
	"keyof":      KwKeyof,
	"let":        KwLet,
	"module":     KwModule,
	"namespace":  KwNamespace,
	"new":        KwNew,
	"null":       KwNull,
	"of":         KwOf,
	"return":     KwReturn,
	"satisfies":  KwSatisfies,
	"super":      KwSuper,
	"switch":     KwSwitch,
	"this":       KwThis,
	"throw":      KwThrow,
	"true":       KwTrue,
	"try":        KwTry,
	"type":       KwType,
	"typeof":     KwTypeof,
	"var":        KwVar,
	"void":       KwVoid,
	"while":      KwWhile,
	"with":       KwWith,
	"yield":      KwYield,
}

var keywordText = func() map[Kind]string {
	out := make(map[Kind]string, len(keywords))
	for text, k := range keywords {
		out[k] = text
	}
	return out
}()

// contextual keywords may also be used as plain identifiers.
var contextual = map[Kind]bool{
	KwAbstract:   true,
	KwAs:         true,
	KwAsync:      true,
	KwAwait:      true,
	KwDeclare:    true,
	KwFrom:       true,
	KwImplements: true,
	KwInterface:  true,
	KwKeyof:      true,
	KwLet:        true,
	KwModule:     true,
	KwNamespace:  true,
	KwOf:         true,
	KwSatisfies:  true,
	KwType:       true,
	KwYield:      true,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые, только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// IsContextual reports whether the keyword can also appear as an identifier.
func (k Kind) IsContextual() bool {
	return contextual[k]
}

// IsReservedWord reports whether s can never be used as a type name.
func IsReservedWord(s string) bool {
	k, ok := keywords[s]
	return ok && !contextual[k]
}

// Package decl extracts naming facts from a TypeScript token stream:
// interface and type alias declarations, the names bound in each file and
// every identifier occurrence.
//
// Facts carry plain byte offsets so that they can be cached independently
// of the FileSet that produced them.
package decl

import (
	"golang.org/x/text/unicode/norm"
)

// Kind is the kind of a checked declaration.
type Kind uint8

const (
	KindInterface Kind = iota + 1
	KindTypeAlias
)

func (k Kind) String() string {
	switch k {
	case KindInterface:
		return "interface"
	case KindTypeAlias:
		return "type alias"
	}
	return "unknown"
}

// BindingKind classifies a name introduced into a file's scope.
type BindingKind uint8

const (
	BindInterface BindingKind = iota + 1
	BindTypeAlias
	BindClass
	BindEnum
	BindNamespace
	BindFunction
	BindVariable
	BindImport
	BindTypeParam
)

func (k BindingKind) String() string {
	switch k {
	case BindInterface:
		return "interface"
	case BindTypeAlias:
		return "type alias"
	case BindClass:
		return "class"
	case BindEnum:
		return "enum"
	case BindNamespace:
		return "namespace"
	case BindFunction:
		return "function"
	case BindVariable:
		return "variable"
	case BindImport:
		return "import"
	case BindTypeParam:
		return "type parameter"
	}
	return "unknown"
}

// IsTypeLevel reports whether the binding declares a name in the type space
// that is visible outside of its file.
func (k BindingKind) IsTypeLevel() bool {
	switch k {
	case BindInterface, BindTypeAlias, BindClass, BindEnum, BindNamespace:
		return true
	}
	return false
}

// Decl is an interface or type alias declaration found in one file.
type Decl struct {
	Name     string `msgpack:"n"`
	Kind     Kind   `msgpack:"k"`
	Start    uint32 `msgpack:"s"`
	End      uint32 `msgpack:"e"`
	Exported bool   `msgpack:"x,omitempty"`
	Ambient  bool   `msgpack:"a,omitempty"`
}

// Binding is any name a file introduces.
type Binding struct {
	Name  string      `msgpack:"n"`
	Kind  BindingKind `msgpack:"k"`
	Start uint32      `msgpack:"s"`
	End   uint32      `msgpack:"e"`
}

// Ident is one identifier token. Text holds the source spelling only when
// it differs from the normalised Name.
type Ident struct {
	Name  string `msgpack:"n"`
	Text  string `msgpack:"t,omitempty"`
	Start uint32 `msgpack:"s"`
	End   uint32 `msgpack:"e"`
}

// Spelling returns the identifier exactly as written in the source.
func (id Ident) Spelling() string {
	if id.Text != "" {
		return id.Text
	}
	return id.Name
}

// Problem is a lexical or structural error recorded for a file.
type Problem struct {
	Code    uint16 `msgpack:"c"`
	Start   uint32 `msgpack:"s"`
	End     uint32 `msgpack:"e"`
	Message string `msgpack:"m"`
}

// Facts is everything the later phases need to know about one file.
// A file with problems is unparsable: it carries no declarations,
// bindings or identifiers.
type Facts struct {
	Declarations []Decl    `msgpack:"d"`
	Bindings     []Binding `msgpack:"b"`
	Idents       []Ident   `msgpack:"i"`
	Problems     []Problem `msgpack:"p"`
	Tokens       int       `msgpack:"t"`
}

// Parsed reports whether the file lexed and balanced cleanly.
func (f *Facts) Parsed() bool {
	return len(f.Problems) == 0
}

// Normalize returns the NFC form used to compare identifiers.
func Normalize(name string) string {
	if norm.NFC.IsNormalString(name) {
		return name
	}
	return norm.NFC.String(name)
}

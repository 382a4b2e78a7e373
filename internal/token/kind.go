package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// PrivateName represents a class private name such as #count.
	PrivateName

	kwBegin
	KwAbstract
	KwAs
	KwAsync
	KwAwait
	KwBreak
	KwCase
	KwCatch
	KwClass
	KwConst
	KwContinue
	KwDebugger
	KwDeclare
	KwDefault
	KwDelete
	KwDo
	KwElse
	KwEnum
	KwExport
	KwExtends
	KwFalse
	KwFinally
	KwFor
	KwFrom
	KwFunction
	KwIf
	KwImplements
	KwImport
	KwIn
	KwInstanceof
	KwInterface
	KwKeyof
	KwLet
	KwModule
	KwNamespace
	KwNew
	KwNull
	KwOf
	KwReturn
	KwSatisfies
	KwSuper
	KwSwitch
	KwThis
	KwThrow
	KwTrue
	KwTry
	KwType
	KwTypeof
	KwVar
	KwVoid
	KwWhile
	KwWith
	KwYield
	kwEnd

	// NumberLit represents a numeric literal, including bigint suffixes.
	NumberLit
	// StringLit represents a single- or double-quoted string literal.
	StringLit
	// NoSubstTemplate is a template literal without substitutions: `text`.
	NoSubstTemplate
	// TemplateHead is the part of a template up to the first "${".
	TemplateHead
	// TemplateMiddle is the part between "}" and the next "${".
	TemplateMiddle
	// TemplateTail is the part from the last "}" to the closing backtick.
	TemplateTail
	// RegexLit represents a regular expression literal with its flags.
	RegexLit

	LParen      // (
	RParen      // )
	LBrace      // {
	RBrace      // }
	LBracket    // [
	RBracket    // ]
	Semicolon   // ;
	Comma       // ,
	Dot         // .
	DotDotDot   // ...
	Question    // ?
	QuestionDot // ?.
	Nullish     // ??
	Colon       // :
	At          // @
	FatArrow    // =>
	Assign      // =
	OpAssign    // += -= *= /= %= **= <<= >>= >>>= &= |= ^= &&= ||= ??=
	EqEq        // ==
	EqEqEq      // ===
	BangEq      // !=
	BangEqEq    // !==
	Lt          // <
	LtEq        // <=
	Gt          // >
	GtEq        // >=
	Plus        // +
	Minus       // -
	Star        // *
	StarStar    // **
	Slash       // /
	Percent     // %
	PlusPlus    // ++
	MinusMinus  // --
	Shl         // <<
	Amp         // &
	Pipe        // |
	Caret       // ^
	Tilde       // ~
	Bang        // !
	AndAnd      // &&
	OrOr        // ||
	Hash        // # outside of a private name
)

var kindNames = map[Kind]string{
	Invalid:         "Invalid",
	EOF:             "EOF",
	Ident:           "Ident",
	PrivateName:     "PrivateName",
	NumberLit:       "NumberLit",
	StringLit:       "StringLit",
	NoSubstTemplate: "NoSubstTemplate",
	TemplateHead:    "TemplateHead",
	TemplateMiddle:  "TemplateMiddle",
	TemplateTail:    "TemplateTail",
	RegexLit:        "RegexLit",
	LParen:          "(",
	RParen:          ")",
	LBrace:          "{",
	RBrace:          "}",
	LBracket:        "[",
	RBracket:        "]",
	Semicolon:       ";",
	Comma:           ",",
	Dot:             ".",
	DotDotDot:       "...",
	Question:        "?",
	QuestionDot:     "?.",
	Nullish:         "??",
	Colon:           ":",
	At:              "@",
	FatArrow:        "=>",
	Assign:          "=",
	OpAssign:        "op=",
	EqEq:            "==",
	EqEqEq:          "===",
	BangEq:          "!=",
	BangEqEq:        "!==",
	Lt:              "<",
	LtEq:            "<=",
	Gt:              ">",
	GtEq:            ">=",
	Plus:            "+",
	Minus:           "-",
	Star:            "*",
	StarStar:        "**",
	Slash:           "/",
	Percent:         "%",
	PlusPlus:        "++",
	MinusMinus:      "--",
	Shl:             "<<",
	Amp:             "&",
	Pipe:            "|",
	Caret:           "^",
	Tilde:           "~",
	Bang:            "!",
	AndAnd:          "&&",
	OrOr:            "||",
	Hash:            "#",
}

func (k Kind) String() string {
	if k.IsKeyword() {
		return "Kw(" + keywordText[k] + ")"
	}
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Kind(?)"
}

// IsKeyword reports whether the kind is a reserved or contextual keyword.
func (k Kind) IsKeyword() bool {
	return k > kwBegin && k < kwEnd
}

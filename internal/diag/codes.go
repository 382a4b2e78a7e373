package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedTemplate     Code = 1005
	LexUnterminatedRegex        Code = 1006
	LexTokenTooLong             Code = 1007

	// Структурные (баланс скобок)
	SynInfo              Code = 2000
	SynUnexpectedClose   Code = 2001
	SynUnclosedDelimiter Code = 2002
	SynMismatchedClose   Code = 2003

	// Правила именования
	NameInfo            Code = 3000
	NameInterfacePrefix Code = 3001
	NameTypePrefix      Code = 3002
	NameDtoSuffix       Code = 3003

	// Ввод-вывод
	IOInfo          Code = 4000
	IOLoadFileError Code = 4001
	IOWriteError    Code = 4002
	IOWalkError     Code = 4003

	// Переименование
	FixInfo                Code = 5000
	FixRenameCollision     Code = 5001
	FixUnfixableName       Code = 5002
	FixUnparsableReference Code = 5003
	FixGuardMismatch       Code = 5004
	FixWithdrawn           Code = 5005
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number literal",
	LexUnterminatedTemplate:     "Unterminated template literal",
	LexUnterminatedRegex:        "Unterminated regular expression literal",
	LexTokenTooLong:             "Token too long",

	SynInfo:              "Structure information",
	SynUnexpectedClose:   "Unexpected closing delimiter",
	SynUnclosedDelimiter: "Unclosed delimiter",
	SynMismatchedClose:   "Mismatched closing delimiter",

	NameInfo:            "Naming information",
	NameInterfacePrefix: "Type name has an I prefix",
	NameTypePrefix:      "Type name has a T prefix",
	NameDtoSuffix:       "Type name has a Dto suffix",

	IOInfo:          "I/O information",
	IOLoadFileError: "Failed to read file",
	IOWriteError:    "Failed to write file",
	IOWalkError:     "Failed to walk directory",

	FixInfo:                "Rename information",
	FixRenameCollision:     "Rename target collides with an existing name",
	FixUnfixableName:       "Name cannot be fixed automatically",
	FixUnparsableReference: "Identifier is referenced from an unparsable file",
	FixGuardMismatch:       "Source changed under a rename edit",
	FixWithdrawn:           "Rename withdrawn after a write failure",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("NAM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("FIX%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// IsParseFailure reports whether the code marks a file as unparsable.
func (c Code) IsParseFailure() bool {
	return c > LexInfo && c < NameInfo && c != SynInfo
}

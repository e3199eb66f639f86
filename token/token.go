// Package token defines the tagged-token alphabet the tokenizer
// produces and the parser consumes. A Token is a small value type: a
// Kind discriminator plus whichever payload field that kind uses.
// Tokens compare by value (Equal), matching the "tokens are
// value-equal; containers compare by their payloads" invariant.
package token

import (
	"fmt"

	"github.com/comfylang/comfyc/sourcemap"
)

// Kind discriminates the closed set of token shapes the lexer can
// produce.
type Kind int

const (
	Unknown Kind = iota
	EOF

	// structural punctuation
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semicolon
	Colon
	Equals

	// keywords
	KwFn
	KwAsm
	KwMut

	// type keywords
	KwBool
	KwChar
	KwStr
	KwInt8
	KwInt16
	KwInt32

	// literal containers, sized/typed at lex time
	BoolContainer
	CharContainer
	StrContainer
	Int8Container
	Int16Container
	Int32Container

	Identifier
	Syscall
	InlineAsm
)

var kindNames = map[Kind]string{
	Unknown:         "Unknown",
	EOF:             "EOF",
	LParen:          "(",
	RParen:          ")",
	LBrace:          "{",
	RBrace:          "}",
	LBracket:        "[",
	RBracket:        "]",
	Comma:           ",",
	Semicolon:       ";",
	Colon:           ":",
	Equals:          "=",
	KwFn:            "fn",
	KwAsm:           "asm",
	KwMut:           "mut",
	KwBool:          "bool",
	KwChar:          "char",
	KwStr:           "str",
	KwInt8:          "int8",
	KwInt16:         "int16",
	KwInt32:         "int32",
	BoolContainer:   "BoolContainer",
	CharContainer:   "CharContainer",
	StrContainer:    "StrContainer",
	Int8Container:   "Int8Container",
	Int16Container:  "Int16Container",
	Int32Container:  "Int32Container",
	Identifier:      "Identifier",
	Syscall:         "Syscall",
	InlineAsm:       "InlineAsm",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps the closed set of recognized identifiers to their
// keyword/type-keyword token kind. Anything not in this table lexes as
// a plain Identifier.
var Keywords = map[string]Kind{
	"fn":    KwFn,
	"asm":   KwAsm,
	"mut":   KwMut,
	"bool":  KwBool,
	"char":  KwChar,
	"str":   KwStr,
	"int8":  KwInt8,
	"int16": KwInt16,
	"int32": KwInt32,
}

// Token is a value-typed tagged token. Only the fields relevant to Kind
// are meaningful; the rest are zero.
type Token struct {
	Kind Kind
	Pos  sourcemap.Position

	// Identifier / Syscall payload, and the raw text for Unknown.
	Name string

	// literal container payloads
	Bool  bool
	Char  rune
	Str   string
	Int8  int8
	Int16 int16
	Int32 int32
}

// Simple builds a zero-payload token of the given structural or
// keyword kind.
func Simple(kind Kind, pos sourcemap.Position) Token {
	return Token{Kind: kind, Pos: pos}
}

func NewIdentifier(name string, pos sourcemap.Position) Token {
	return Token{Kind: Identifier, Name: name, Pos: pos}
}

func NewSyscall(name string, pos sourcemap.Position) Token {
	return Token{Kind: Syscall, Name: name, Pos: pos}
}

func NewBool(v bool, pos sourcemap.Position) Token {
	return Token{Kind: BoolContainer, Bool: v, Pos: pos}
}

func NewChar(v rune, pos sourcemap.Position) Token {
	return Token{Kind: CharContainer, Char: v, Pos: pos}
}

func NewStr(v string, pos sourcemap.Position) Token {
	return Token{Kind: StrContainer, Str: v, Pos: pos}
}

func NewInt8(v int8, pos sourcemap.Position) Token {
	return Token{Kind: Int8Container, Int8: v, Pos: pos}
}

func NewInt16(v int16, pos sourcemap.Position) Token {
	return Token{Kind: Int16Container, Int16: v, Pos: pos}
}

func NewInt32(v int32, pos sourcemap.Position) Token {
	return Token{Kind: Int32Container, Int32: v, Pos: pos}
}

func NewUnknown(text string, pos sourcemap.Position) Token {
	return Token{Kind: Unknown, Name: text, Pos: pos}
}

// IsTypeKeyword reports whether the token is one of bool/char/str/
// int8/int16/int32.
func (t Token) IsTypeKeyword() bool {
	switch t.Kind {
	case KwBool, KwChar, KwStr, KwInt8, KwInt16, KwInt32:
		return true
	default:
		return false
	}
}

// IsLiteralContainer reports whether the token carries a typed literal
// value.
func (t Token) IsLiteralContainer() bool {
	switch t.Kind {
	case BoolContainer, CharContainer, StrContainer, Int8Container, Int16Container, Int32Container:
		return true
	default:
		return false
	}
}

// Equal compares two tokens by kind and payload, ignoring position:
// tokens are value-equal regardless of where they were lexed from.
func (t Token) Equal(other Token) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case Identifier, Syscall, Unknown:
		return t.Name == other.Name
	case BoolContainer:
		return t.Bool == other.Bool
	case CharContainer:
		return t.Char == other.Char
	case StrContainer:
		return t.Str == other.Str
	case Int8Container:
		return t.Int8 == other.Int8
	case Int16Container:
		return t.Int16 == other.Int16
	case Int32Container:
		return t.Int32 == other.Int32
	default:
		return true
	}
}

func (t Token) String() string {
	switch t.Kind {
	case Identifier:
		return fmt.Sprintf("Identifier(%s)", t.Name)
	case Syscall:
		return fmt.Sprintf("Syscall(%s)", t.Name)
	case Unknown:
		return fmt.Sprintf("Unknown(%q)", t.Name)
	case BoolContainer:
		return fmt.Sprintf("BoolContainer(%v)", t.Bool)
	case CharContainer:
		return fmt.Sprintf("CharContainer(%q)", t.Char)
	case StrContainer:
		return fmt.Sprintf("StrContainer(%q)", t.Str)
	case Int8Container:
		return fmt.Sprintf("Int8Container(%d)", t.Int8)
	case Int16Container:
		return fmt.Sprintf("Int16Container(%d)", t.Int16)
	case Int32Container:
		return fmt.Sprintf("Int32Container(%d)", t.Int32)
	default:
		return t.Kind.String()
	}
}

// ByteWidth returns the declared-type byte width used by the generator
// for .bss reservations: bool/char/int8 = 1, int16 = 2, int32/str = 4
// (str is pointer-sized).
func ByteWidth(typeKeyword Kind) (int, bool) {
	switch typeKeyword {
	case KwBool, KwChar, KwInt8:
		return 1, true
	case KwInt16:
		return 2, true
	case KwInt32, KwStr:
		return 4, true
	default:
		return 0, false
	}
}

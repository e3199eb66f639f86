// Package ast defines the typed, tagged abstract syntax tree the
// parser builds and the generator walks. Each shape from the data
// model in spec.md §3 is its own Go struct implementing Node (or, for
// syscall bodies, SyscallBody); there is no single interface{}-typed
// variant field the way a sum type in a dynamic language might do it.
package ast

import "github.com/comfylang/comfyc/token"

// Node is implemented by every statement-level and value-level AST
// shape. It carries no behavior: it exists purely to let Program and
// FunctionDefinition hold heterogeneous children the way the spec's
// "statements" and "internal value containers" groupings require.
type Node interface {
	astNode()
}

// Program is the root node: a sequence of function definitions and
// nothing else. The parser never places a bare statement at this
// level.
type Program struct {
	Functions []*FunctionDefinition
}

func (*Program) astNode() {}

// Type names a declared or parameter type and whether it was declared
// mutable.
type Type struct {
	Base    token.Kind // one of token.KwBool .. token.KwInt32
	Mutable bool
}

// Param is a function parameter: a name plus its declared type.
// (spec.md calls this "Identifier(name, Type) — function parameter".)
type Param struct {
	Name string
	Type Type
}

// FunctionDefinition is a named function with parameters and a body of
// statements. The generator renames "main" to "_start" and mangles
// every declaration inside the body under this function's name.
type FunctionDefinition struct {
	Name   string
	Params []Param
	Body   []Node
}

func (*FunctionDefinition) astNode() {}

// VariableDeclaration declares a variable with an initializer, which
// is either a literal value container or a Syscall whose return value
// seeds the variable.
type VariableDeclaration struct {
	Name string
	Init Node // one of the I* containers, or *Syscall
	Type Type
}

func (*VariableDeclaration) astNode() {}

// VariableBufferDeclaration declares storage with no initializer. Per
// spec.md §3 this must always be mutable; the parser rejects the
// buffer form when it was not preceded by `mut`.
type VariableBufferDeclaration struct {
	Name string
	Type Type
}

func (*VariableBufferDeclaration) astNode() {}

// VariableAssignment rebinds an already-declared variable to a new
// literal value.
type VariableAssignment struct {
	Name  string
	Value Node // one of the I* containers
}

func (*VariableAssignment) astNode() {}

// InlineAsm carries a sequence of raw assembly lines, stored verbatim
// and never validated.
type InlineAsm struct {
	Lines []string
}

func (*InlineAsm) astNode() {}

// Syscall wraps one of the five specialized call shapes under its
// source name ("write", "read", "open", "exit", "sysinfo").
type Syscall struct {
	Name string
	Body SyscallBody
}

func (*Syscall) astNode() {}

// SyscallBody is implemented by the five fixed-arity syscall argument
// shapes.
type SyscallBody interface {
	syscallBody()
}

// Write is `$write(fd, data)`: fd is an int literal or identifier,
// data is a string literal or identifier.
type Write struct {
	Fd   token.Token
	Data token.Token
}

func (*Write) syscallBody() {}

// Read is `$read(fd, buffer)`: fd is an int literal or identifier,
// buffer is always an identifier.
type Read struct {
	Fd     token.Token
	Buffer token.Token
}

func (*Read) syscallBody() {}

// Open is `$open(path, flags, mode)`.
type Open struct {
	Path  token.Token
	Flags token.Token
	Mode  token.Token
}

func (*Open) syscallBody() {}

// Exit is `$exit(code)`.
type Exit struct {
	Code token.Token
}

func (*Exit) syscallBody() {}

// Sysinfo is `$sysinfo(buffer)`.
type Sysinfo struct {
	Buffer token.Token
}

func (*Sysinfo) syscallBody() {}

// Internal value containers. These are the typed literal values that
// can appear as a VariableDeclaration/VariableAssignment's right-hand
// side once the parser has matched them against the declared type.
type (
	IBool  struct{ Value bool }
	IChar  struct{ Value rune }
	IStr   struct{ Value string }
	IInt8  struct{ Value int8 }
	IInt16 struct{ Value int16 }
	IInt32 struct{ Value int32 }
)

func (*IBool) astNode()  {}
func (*IChar) astNode()  {}
func (*IStr) astNode()   {}
func (*IInt8) astNode()  {}
func (*IInt16) astNode() {}
func (*IInt32) astNode() {}

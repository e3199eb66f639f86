// Copyright 2024 comfylang Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package diagnostic defines the fatal error kinds every pass of the
// pipeline can raise. All of them are terminal: the pipeline has no
// recovery or multi-error reporting, so the first diagnostic produced
// is the only one the caller ever sees.
package diagnostic

import (
	"fmt"

	"github.com/comfylang/comfyc/sourcemap"
)

// IoError wraps a failure to read or canonicalize a file.
type IoError struct {
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("cannot read %q: %v", e.Path, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

// CircularInclude is raised when a file is about to be expanded while
// it is already on the current expansion stack.
type CircularInclude struct {
	Path string
}

func (e *CircularInclude) Error() string {
	return fmt.Sprintf("circular include detected: %s", e.Path)
}

// UnmatchedConditional covers an unclosed #if, or a stray #else/#endif
// with no matching #if, in either case detected at end of file or at
// the offending line.
type UnmatchedConditional struct {
	File   string
	Detail string
}

func (e *UnmatchedConditional) Error() string {
	if e.File == "" {
		return fmt.Sprintf("unmatched conditional: %s", e.Detail)
	}
	return fmt.Sprintf("unmatched conditional in %s: %s", e.File, e.Detail)
}

// UnresolvedInclude is raised when a named include cannot be found on
// any search path.
type UnresolvedInclude struct {
	Name string
}

func (e *UnresolvedInclude) Error() string {
	return fmt.Sprintf("unresolved include: %s", e.Name)
}

// UnexpectedToken is raised by the parser's consume contract whenever
// the current token does not match what the grammar rule expected.
type UnexpectedToken struct {
	Expected string
	Found    string
	At       sourcemap.Position
}

func (e *UnexpectedToken) Error() string {
	if e.At.IsZero() {
		return fmt.Sprintf("expected %s, found %s", e.Expected, e.Found)
	}
	return fmt.Sprintf("%s: expected %s, found %s", e.At, e.Expected, e.Found)
}

// UnsupportedConstruct is raised for a construct the compiler has no
// lowering for: by the generator for an AST node such as a mutable
// string, and by the parser for a function call statement.
type UnsupportedConstruct struct {
	Node string
}

func (e *UnsupportedConstruct) Error() string {
	return fmt.Sprintf("unsupported construct in code generation: %s", e.Node)
}

// UnknownSyscall is raised when a `$name` does not name one of the
// fixed set of built-in system calls.
type UnknownSyscall struct {
	Name string
}

func (e *UnknownSyscall) Error() string {
	return fmt.Sprintf("unknown syscall: %s", e.Name)
}

// UnknownArchitecture is raised when the configured target architecture
// has no registered back end.
type UnknownArchitecture struct {
	Name string
}

func (e *UnknownArchitecture) Error() string {
	return fmt.Sprintf("unknown architecture: %s", e.Name)
}

// IntegerOutOfRange is raised when an integer literal exceeds the range
// of a 32-bit signed integer.
type IntegerOutOfRange struct {
	Literal string
}

func (e *IntegerOutOfRange) Error() string {
	return fmt.Sprintf("integer literal out of range: %s", e.Literal)
}

// UnrecognizedCharacter is raised by the tokenizer when it meets a
// character outside the closed set the lexer recognizes. Lexing fails
// immediately rather than deferring the failure to the parser's next
// consume.
type UnrecognizedCharacter struct {
	Char rune
	At   sourcemap.Position
}

func (e *UnrecognizedCharacter) Error() string {
	return fmt.Sprintf("%s: unrecognized character %q", e.At, e.Char)
}

// ErrEmptyCharLiteral is raised for the ambiguous `''` form, which has
// no well-defined character value and is rejected outright.
type ErrEmptyCharLiteral struct {
	At sourcemap.Position
}

func (e *ErrEmptyCharLiteral) Error() string {
	return fmt.Sprintf("%s: empty character literal '' is not a valid char", e.At)
}

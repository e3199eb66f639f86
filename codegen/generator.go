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

// Package codegen implements the tree-walking lowerer: it walks the
// AST and emits a three-section GAS program (.rodata, .bss, .text)
// with function-scoped label mangling, constant pooling, and the
// ARM32 EABI syscall convention.
//
// The generator carries no hidden "current function name" field
// mutated during traversal. Every lowering function instead takes the
// enclosing function's mangled name ("scope") as an explicit
// parameter, so nothing about a compilation is ambient.
package codegen

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/comfylang/comfyc/arch"
	"github.com/comfylang/comfyc/ast"
	"github.com/comfylang/comfyc/diagnostic"
	"github.com/comfylang/comfyc/token"
)

// Generator walks a *ast.Program and lowers it to GAS text for one
// target architecture. A Generator is created fresh per compilation;
// it holds no state that survives past one Generate call.
type Generator struct {
	backend arch.Backend
	writer  *sectionWriter
	rnd     *rand.Rand
}

// New builds a Generator targeting backend. rnd is the source for
// synthetic str_XXXXXXXX labels; pass nil to seed from the current
// time.
func New(backend arch.Backend, rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{backend: backend, writer: newSectionWriter(), rnd: rnd}
}

// Generate lowers program for archName and renders the final GAS
// text. archName is resolved through the arch registry, so an
// unsupported target fails fast with UnknownArchitecture.
func Generate(program *ast.Program, archName string) (string, error) {
	backend, err := arch.Get(archName)
	if err != nil {
		return "", err
	}
	g := New(backend, nil)
	if err := g.generateProgram(program); err != nil {
		return "", err
	}
	return g.writer.render(), nil
}

func mangle(scope, name string) string {
	return scope + "_" + name
}

func (g *Generator) generateProgram(p *ast.Program) error {
	for _, fn := range p.Functions {
		if err := g.generateFunction(fn); err != nil {
			return err
		}
	}
	return nil
}

// generateFunction emits the function's label (mangling "main" to
// "_start"), reserves .bss storage for each parameter under the
// mangled name, and lowers the body in that function's scope.
func (g *Generator) generateFunction(fn *ast.FunctionDefinition) error {
	scope := fn.Name
	if scope == "main" {
		scope = "_start"
	}
	g.writer.pushText(scope + ":")

	for _, param := range fn.Params {
		width, ok := token.ByteWidth(param.Type.Base)
		if !ok {
			return &diagnostic.UnsupportedConstruct{Node: "parameter of unsupported type"}
		}
		g.writer.declareBSS(mangle(scope, param.Name), width)
	}

	for _, stmt := range fn.Body {
		if err := g.generateStatement(scope, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) generateStatement(scope string, node ast.Node) error {
	switch n := node.(type) {
	case *ast.VariableDeclaration:
		return g.generateVariableDeclaration(scope, n)
	case *ast.VariableBufferDeclaration:
		return g.generateVariableBufferDeclaration(scope, n)
	case *ast.VariableAssignment:
		return g.generateVariableAssignment(scope, n)
	case *ast.InlineAsm:
		g.generateInlineAsm(n)
		return nil
	case *ast.Syscall:
		return g.generateSyscall(scope, n)
	default:
		return &diagnostic.UnsupportedConstruct{Node: fmt.Sprintf("%T", node)}
	}
}

// generateVariableDeclaration lowers a declared variable: an immutable
// string gets a .rodata .asciz + _len pair, a syscall initializer
// seeds a 4-byte .bss slot from syscall_ret_val, and every other
// literal is either pooled into .rodata (immutable) or reserved in
// .bss and stored via a register (mutable).
func (g *Generator) generateVariableDeclaration(scope string, decl *ast.VariableDeclaration) error {
	label := mangle(scope, decl.Name)

	switch init := decl.Init.(type) {
	case *ast.IStr:
		if decl.Type.Mutable {
			return &diagnostic.UnsupportedConstruct{Node: "mutable string variable " + decl.Name}
		}
		g.writer.rodataStringWithLen(label, init.Value)
		return nil

	case *ast.Syscall:
		g.writer.declareBSS(label, 4)
		if err := g.generateSyscall(scope, init); err != nil {
			return err
		}
		g.loadSyscallReturnInto(label)
		return nil

	default:
		value, err := numericValue(init)
		if err != nil {
			return err
		}
		width, ok := token.ByteWidth(decl.Type.Base)
		if !ok {
			return &diagnostic.UnsupportedConstruct{Node: "variable of unsupported type"}
		}
		if decl.Type.Mutable {
			g.writer.declareBSS(label, width)
			g.materializeAndStore(label, value)
		} else {
			g.writer.rodataWord(label, value)
		}
		return nil
	}
}

// generateVariableBufferDeclaration reserves raw storage with a _len
// sibling. A buffer is parsed only in 'mut' form (ast invariant), so
// the only remaining rejection here is a string buffer, which would
// otherwise violate "string variables are always immutable" by
// offering mutable storage for one.
func (g *Generator) generateVariableBufferDeclaration(scope string, buf *ast.VariableBufferDeclaration) error {
	if buf.Type.Base == token.KwStr {
		return &diagnostic.UnsupportedConstruct{Node: "mutable string buffer " + buf.Name}
	}
	width, ok := token.ByteWidth(buf.Type.Base)
	if !ok {
		return &diagnostic.UnsupportedConstruct{Node: "buffer of unsupported type"}
	}
	g.writer.declareBSSWithLen(mangle(scope, buf.Name), width)
	return nil
}

// generateVariableAssignment re-materializes the new literal and
// stores it to the already-reserved label. There is no symbol table
// to confirm the target was declared mutable, so reassigning a
// string, the one case that can never be valid, is rejected directly.
func (g *Generator) generateVariableAssignment(scope string, asn *ast.VariableAssignment) error {
	if _, isStr := asn.Value.(*ast.IStr); isStr {
		return &diagnostic.UnsupportedConstruct{Node: "assignment to string variable " + asn.Name}
	}
	value, err := numericValue(asn.Value)
	if err != nil {
		return err
	}
	g.materializeAndStore(mangle(scope, asn.Name), value)
	return nil
}

// generateInlineAsm emits the verbatim-lines block between a pair of
// marker comments; contents are never validated.
func (g *Generator) generateInlineAsm(asm *ast.InlineAsm) {
	g.writer.pushText("\t@ ===Inline Assembly===")
	for _, line := range asm.Lines {
		g.writer.pushText("\t" + line)
	}
	g.writer.pushText("\t@ =====================\n")
}

// generateSyscall dispatches to the per-syscall lowering. Every shape
// except Exit stores its result to syscall_ret_val immediately after
// the svc instruction; Exit never returns, so it skips the store.
func (g *Generator) generateSyscall(scope string, sc *ast.Syscall) error {
	number, err := g.backend.SyscallNumber(sc.Name)
	if err != nil {
		return err
	}

	switch body := sc.Body.(type) {
	case *ast.Write:
		return g.generateWrite(scope, number, body)
	case *ast.Read:
		return g.generateRead(scope, number, body)
	case *ast.Exit:
		return g.generateExit(scope, number, body)
	case *ast.Open:
		return g.generateOpen(scope, number, body)
	case *ast.Sysinfo:
		return g.generateSysinfo(scope, number, body)
	default:
		return &diagnostic.UnknownSyscall{Name: sc.Name}
	}
}

// generateWrite implements $write(fd, data). When fd is an identifier,
// a dereferencing sequence is required (the variable holds the fd
// value, not its own address), so this case is built as one inline
// instruction block rather than composed from the backend's generic
// Syscall3 the way fd-is-literal is. The fd-is-identifier label is
// mangled the same way every other identifier reference in this
// generator is.
func (g *Generator) generateWrite(scope string, number int, w *ast.Write) error {
	dataPtr, dataLen, err := g.stringOrIdentLabel(scope, w.Data)
	if err != nil {
		return err
	}

	if w.Fd.Kind == token.Identifier {
		fdLabel := mangle(scope, w.Fd.Name)
		g.writer.pushText(fmt.Sprintf(
			"\tmov r7, #%d\n\tldr r0, =%s\n\tldr r0, [r0]\n\tldr r1, =%s\n\tldr r2, =%s\n\tsvc #0\n",
			number, fdLabel, dataPtr, dataLen,
		))
	} else {
		fdArg, err := g.argString(scope, w.Fd)
		if err != nil {
			return err
		}
		g.writer.pushText(g.backend.Syscall3(number, fdArg, dataPtr, dataLen))
	}

	g.storeSyscallReturn()
	return nil
}

// generateRead implements $read(fd, buffer). buffer is always an
// identifier (the parser enforces this); fd follows the generic
// materialization rule.
func (g *Generator) generateRead(scope string, number int, r *ast.Read) error {
	fdArg, err := g.argString(scope, r.Fd)
	if err != nil {
		return err
	}
	label := mangle(scope, r.Buffer.Name)
	g.writer.pushText(g.backend.Syscall2(number, fdArg, label))
	g.storeSyscallReturn()
	return nil
}

// generateExit implements $exit(code). It never returns, so it skips
// the syscall_ret_val store every other syscall performs.
func (g *Generator) generateExit(scope string, number int, e *ast.Exit) error {
	codeArg, err := g.argString(scope, e.Code)
	if err != nil {
		return err
	}
	g.writer.pushText(g.backend.Syscall1(number, codeArg))
	return nil
}

// generateOpen implements $open(path, flags, mode). path may be a
// string literal (pooled into a fresh .rodata entry) or an identifier;
// flags and mode follow the generic materialization rule.
func (g *Generator) generateOpen(scope string, number int, o *ast.Open) error {
	pathPtr, _, err := g.stringOrIdentLabel(scope, o.Path)
	if err != nil {
		return err
	}
	flagsArg, err := g.argString(scope, o.Flags)
	if err != nil {
		return err
	}
	modeArg, err := g.argString(scope, o.Mode)
	if err != nil {
		return err
	}
	g.writer.pushText(g.backend.Syscall3(number, pathPtr, flagsArg, modeArg))
	g.storeSyscallReturn()
	return nil
}

// generateSysinfo implements $sysinfo(buffer).
func (g *Generator) generateSysinfo(scope string, number int, s *ast.Sysinfo) error {
	label := mangle(scope, s.Buffer.Name)
	g.writer.pushText(g.backend.Syscall1(number, label))
	g.storeSyscallReturn()
	return nil
}

// argString renders a fixed-arity syscall argument for the backend's
// generic materialization rule: a decimal literal passes through
// as-is, an identifier becomes its mangled label.
func (g *Generator) argString(scope string, tok token.Token) (string, error) {
	switch tok.Kind {
	case token.Int8Container:
		return strconv.Itoa(int(tok.Int8)), nil
	case token.Int16Container:
		return strconv.Itoa(int(tok.Int16)), nil
	case token.Int32Container:
		return strconv.Itoa(int(tok.Int32)), nil
	case token.Identifier:
		return mangle(scope, tok.Name), nil
	default:
		return "", &diagnostic.UnsupportedConstruct{Node: "syscall argument " + tok.String()}
	}
}

// stringOrIdentLabel resolves a write/open string-or-identifier
// argument to its pointer and length labels. A string literal is
// pooled into a fresh .rodata entry under a synthetic name; an
// identifier's own mangled label and its _len sibling are reused
// directly.
func (g *Generator) stringOrIdentLabel(scope string, tok token.Token) (ptr, length string, err error) {
	switch tok.Kind {
	case token.StrContainer:
		name := generateStrVarname(g.rnd)
		g.writer.rodataStringWithLen(name, tok.Str)
		return name, name + "_len", nil
	case token.Identifier:
		label := mangle(scope, tok.Name)
		return label, label + "_len", nil
	default:
		return "", "", &diagnostic.UnsupportedConstruct{Node: "syscall argument " + tok.String()}
	}
}

// materializeAndStore loads an immediate into r0 and stores it to
// label, the sequence a mutable numeric declaration or a later
// assignment both use.
func (g *Generator) materializeAndStore(label string, value int32) {
	g.writer.pushText(fmt.Sprintf("\tmov r0, #%d\n\tldr r1, =%s\n\tstr r0, [r1]\n", value, label))
}

// storeSyscallReturn stores r0 to the common syscall_ret_val buffer.
func (g *Generator) storeSyscallReturn() {
	g.writer.pushText(fmt.Sprintf("\t@ Store syscall return value\n\tldr r4, =%s\n\tstr r0, [r4]\n", syscallRetVal))
}

// loadSyscallReturnInto moves syscall_ret_val into label; used right
// after a syscall-initialized variable declaration generates its call.
func (g *Generator) loadSyscallReturnInto(label string) {
	g.writer.pushText(fmt.Sprintf(
		"\t@ Load syscall return value into %s\n\tldr r5, =%s\n\tldr r0, [r5]\n\tldr r5, =%s\n\tstr r0, [r5]\n",
		label, syscallRetVal, label,
	))
}

// numericValue extracts the int32 payload of a literal value
// container, widening bool/char to their integer encodings: booleans
// are encoded as 0/1, chars as their code-point integer.
func numericValue(node ast.Node) (int32, error) {
	switch v := node.(type) {
	case *ast.IBool:
		if v.Value {
			return 1, nil
		}
		return 0, nil
	case *ast.IChar:
		return int32(v.Value), nil
	case *ast.IInt8:
		return int32(v.Value), nil
	case *ast.IInt16:
		return int32(v.Value), nil
	case *ast.IInt32:
		return v.Value, nil
	default:
		return 0, &diagnostic.UnsupportedConstruct{Node: fmt.Sprintf("%T", node)}
	}
}

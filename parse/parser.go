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

// Package parse implements the recursive-descent parser: a
// 1-token-lookahead parser over the tokenizer's output, with a strict
// consume-by-kind contract and per-syscall sub-parsers for the five
// fixed-arity built-in calls.
package parse

import (
	"github.com/comfylang/comfyc/ast"
	"github.com/comfylang/comfyc/diagnostic"
	"github.com/comfylang/comfyc/token"
)

// Parser walks a token slice with a single current-token lookahead.
// There is no backtracking: every grammar rule either consumes what it
// expects or returns a fatal error.
type Parser struct {
	tokens []token.Token
	pos    int
}

// New builds a Parser over a token sequence produced by lex.Tokenize.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse builds a Parser over tokens and parses the whole program in
// one call, the entry point most callers want.
func Parse(tokens []token.Token) (*ast.Program, error) {
	return New(tokens).ParseProgram()
}

// ParseProgram parses the whole token stream as the §6 EBNF grammar's
// `program := func_def*`, then requires (and consumes) the trailing
// EOF, matching the round-trip invariant in spec.md §8.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	var functions []*ast.FunctionDefinition

	for p.current().Kind != token.EOF {
		if p.current().Kind != token.KwFn {
			return nil, p.unexpected("fn")
		}
		fn, err := p.parseFunctionDefinition()
		if err != nil {
			return nil, err
		}
		functions = append(functions, fn)
	}

	if _, err := p.expect(token.EOF); err != nil {
		return nil, err
	}

	return &ast.Program{Functions: functions}, nil
}

func (p *Parser) current() token.Token {
	return p.tokens[p.pos]
}

// expect consumes the current token if its Kind matches, or returns a
// fatal UnexpectedToken. This is the parser's whole error-recovery
// strategy: there isn't one.
func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	cur := p.current()
	if cur.Kind != kind {
		return token.Token{}, p.unexpected(kind.String())
	}
	p.pos++
	return cur, nil
}

func (p *Parser) expectIdentifier() (string, error) {
	cur := p.current()
	if cur.Kind != token.Identifier {
		return "", p.unexpected("identifier")
	}
	p.pos++
	return cur.Name, nil
}

func (p *Parser) unexpected(expected string) error {
	cur := p.current()
	return &diagnostic.UnexpectedToken{Expected: expected, Found: cur.String(), At: cur.Pos}
}

func (p *Parser) unsupported(what string) error {
	return &diagnostic.UnsupportedConstruct{Node: what}
}

func (p *Parser) parseFunctionDefinition() (*ast.FunctionDefinition, error) {
	if _, err := p.expect(token.KwFn); err != nil {
		return nil, err
	}

	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}

	var params []ast.Param
	for p.current().Kind != token.RParen {
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		params = append(params, param)

		if p.current().Kind == token.Comma {
			p.pos++
		}
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	var body []ast.Node
	for p.current().Kind != token.RBrace {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}

	return &ast.FunctionDefinition{Name: name, Params: params, Body: body}, nil
}

func (p *Parser) parseParam() (ast.Param, error) {
	mutable := false
	if p.current().Kind == token.KwMut {
		p.pos++
		mutable = true
	}

	typeTok := p.current()
	if !typeTok.IsTypeKeyword() {
		return ast.Param{}, p.unexpected("a parameter type")
	}
	p.pos++

	name, err := p.expectIdentifier()
	if err != nil {
		return ast.Param{}, err
	}

	return ast.Param{Name: name, Type: ast.Type{Base: typeTok.Kind, Mutable: mutable}}, nil
}

// parseStatement implements the grammar's
// `stmt := var_decl | var_buf_decl | assign | syscall ';' | inline_asm`.
// A nested `fn` is not a valid statement: function definitions are
// only allowed at the program's top level.
func (p *Parser) parseStatement() (ast.Node, error) {
	cur := p.current()
	switch {
	case cur.Kind == token.Syscall:
		return p.parseSyscallStatement()
	case cur.Kind == token.KwMut || cur.IsTypeKeyword():
		return p.parseVariableDeclaration()
	case cur.Kind == token.Identifier:
		return p.parseIdentifierStatement()
	case cur.Kind == token.KwAsm:
		return p.parseInlineAsm()
	default:
		return nil, p.unexpected("a statement")
	}
}

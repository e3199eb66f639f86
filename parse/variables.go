package parse

import (
	"github.com/comfylang/comfyc/ast"
	"github.com/comfylang/comfyc/token"
)

// parseVariableDeclaration handles both declaration forms:
//
//	TYPE IDENT = LITERAL ;   (var_decl)
//	mut TYPE IDENT ;         (var_buf_decl, mut mandatory)
func (p *Parser) parseVariableDeclaration() (ast.Node, error) {
	mutable := false
	if p.current().Kind == token.KwMut {
		p.pos++
		mutable = true
	}

	typeTok := p.current()
	if !typeTok.IsTypeKeyword() {
		return nil, p.unexpected("a type")
	}
	p.pos++

	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}

	if p.current().Kind == token.Semicolon {
		if !mutable {
			return nil, p.unexpected("'=' (an immutable buffer declaration has no initializer to omit)")
		}
		p.pos++
		return &ast.VariableBufferDeclaration{
			Name: name,
			Type: ast.Type{Base: typeTok.Kind, Mutable: true},
		}, nil
	}

	if _, err := p.expect(token.Equals); err != nil {
		return nil, err
	}

	var init ast.Node
	switch {
	case p.current().IsLiteralContainer():
		init, err = p.parseLiteralForType(typeTok.Kind)
	case p.current().Kind == token.Syscall:
		init, err = p.parseSyscallNode()
	default:
		return nil, p.unexpected("a literal or syscall initializer")
	}
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}

	return &ast.VariableDeclaration{
		Name: name,
		Init: init,
		Type: ast.Type{Base: typeTok.Kind, Mutable: mutable},
	}, nil
}

// parseLiteralForType matches the current literal container against a
// declared type, applying the widening-only rule from spec.md §9: a
// narrower integer container may stand in for a wider declared type,
// never the reverse.
func (p *Parser) parseLiteralForType(declared token.Kind) (ast.Node, error) {
	cur := p.current()

	switch declared {
	case token.KwBool:
		if cur.Kind != token.BoolContainer {
			return nil, p.unexpected("a boolean literal")
		}
		p.pos++
		return &ast.IBool{Value: cur.Bool}, nil

	case token.KwChar:
		if cur.Kind != token.CharContainer {
			return nil, p.unexpected("a character literal")
		}
		p.pos++
		return &ast.IChar{Value: cur.Char}, nil

	case token.KwStr:
		if cur.Kind != token.StrContainer {
			return nil, p.unexpected("a string literal")
		}
		p.pos++
		return &ast.IStr{Value: cur.Str}, nil

	case token.KwInt8:
		if cur.Kind != token.Int8Container {
			return nil, p.unexpected("an int8 literal")
		}
		p.pos++
		return &ast.IInt8{Value: cur.Int8}, nil

	case token.KwInt16:
		switch cur.Kind {
		case token.Int8Container:
			p.pos++
			return &ast.IInt16{Value: int16(cur.Int8)}, nil
		case token.Int16Container:
			p.pos++
			return &ast.IInt16{Value: cur.Int16}, nil
		default:
			return nil, p.unexpected("an int8 or int16 literal")
		}

	case token.KwInt32:
		switch cur.Kind {
		case token.Int8Container:
			p.pos++
			return &ast.IInt32{Value: int32(cur.Int8)}, nil
		case token.Int16Container:
			p.pos++
			return &ast.IInt32{Value: int32(cur.Int16)}, nil
		case token.Int32Container:
			p.pos++
			return &ast.IInt32{Value: cur.Int32}, nil
		default:
			return nil, p.unexpected("an int8, int16, or int32 literal")
		}

	default:
		return nil, p.unexpected("a supported variable type")
	}
}

// parseIdentifierStatement handles `IDENT = LITERAL ;` (assignment)
// and rejects `IDENT ( ... )`, an acknowledged gap: user-to-user
// function calls are not implemented (spec.md §9).
func (p *Parser) parseIdentifierStatement() (ast.Node, error) {
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}

	switch p.current().Kind {
	case token.Equals:
		return p.parseVariableAssignment(name)
	case token.LParen:
		return nil, p.unsupported("function call " + name + "(...)")
	default:
		return nil, p.unexpected("'=' or '('")
	}
}

// parseVariableAssignment has no declared-type context to widen
// against (the parser carries no symbol table), so the assigned
// literal is tagged with its own container's exact width, matching
// original_source's parse_variable_assignment.
func (p *Parser) parseVariableAssignment(name string) (*ast.VariableAssignment, error) {
	if _, err := p.expect(token.Equals); err != nil {
		return nil, err
	}

	cur := p.current()
	var value ast.Node
	switch cur.Kind {
	case token.BoolContainer:
		value = &ast.IBool{Value: cur.Bool}
	case token.CharContainer:
		value = &ast.IChar{Value: cur.Char}
	case token.StrContainer:
		value = &ast.IStr{Value: cur.Str}
	case token.Int8Container:
		value = &ast.IInt8{Value: cur.Int8}
	case token.Int16Container:
		value = &ast.IInt16{Value: cur.Int16}
	case token.Int32Container:
		value = &ast.IInt32{Value: cur.Int32}
	default:
		return nil, p.unexpected("a literal value")
	}
	p.pos++

	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}

	return &ast.VariableAssignment{Name: name, Value: value}, nil
}

func (p *Parser) parseInlineAsm() (*ast.InlineAsm, error) {
	if _, err := p.expect(token.KwAsm); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	var lines []string
	for p.current().Kind != token.RBrace {
		if p.current().Kind != token.StrContainer {
			return nil, p.unexpected("a string literal in the inline asm block")
		}
		lines = append(lines, p.current().Str)
		p.pos++

		if p.current().Kind == token.Comma {
			p.pos++
		}
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}

	return &ast.InlineAsm{Lines: lines}, nil
}

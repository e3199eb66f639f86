package parse

import (
	"github.com/comfylang/comfyc/ast"
	"github.com/comfylang/comfyc/diagnostic"
	"github.com/comfylang/comfyc/token"
)

// parseSyscallStatement parses a syscall used as a statement:
// `$NAME(args) ;`. The mandatory trailing semicolon is consumed here,
// not by the syscall body parsers, because a syscall used as a
// variable-declaration initializer must NOT consume it (the enclosing
// var_decl rule owns that semicolon instead).
func (p *Parser) parseSyscallStatement() (*ast.Syscall, error) {
	node, err := p.parseSyscallNode()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return node, nil
}

// parseSyscallNode dispatches on the `$name` token's name to the
// matching fixed-arity sub-parser, then wraps the result.
func (p *Parser) parseSyscallNode() (*ast.Syscall, error) {
	name := p.current().Name

	var body ast.SyscallBody
	var err error
	switch name {
	case "write":
		body, err = p.parseSysWrite()
	case "read":
		body, err = p.parseSysRead()
	case "exit":
		body, err = p.parseSysExit()
	case "open":
		body, err = p.parseSysOpen()
	case "sysinfo":
		body, err = p.parseSysSysinfo()
	default:
		return nil, &diagnostic.UnknownSyscall{Name: name}
	}
	if err != nil {
		return nil, err
	}

	return &ast.Syscall{Name: name, Body: body}, nil
}

func (p *Parser) expectSyscallNamed(name string) error {
	cur := p.current()
	if cur.Kind != token.Syscall || cur.Name != name {
		return p.unexpected("$" + name)
	}
	p.pos++
	return nil
}

// parseIntOrIdentifier accepts an int literal of any width or a plain
// identifier — the shape every fd/code/flags/mode argument uses.
func (p *Parser) parseIntOrIdentifier(context string) (token.Token, error) {
	cur := p.current()
	switch cur.Kind {
	case token.Int8Container, token.Int16Container, token.Int32Container, token.Identifier:
		p.pos++
		return cur, nil
	default:
		return token.Token{}, p.unexpected(context + " (a number or an identifier)")
	}
}

func (p *Parser) parseStringOrIdentifier(context string) (token.Token, error) {
	cur := p.current()
	switch cur.Kind {
	case token.StrContainer, token.Identifier:
		p.pos++
		return cur, nil
	default:
		return token.Token{}, p.unexpected(context + " (a string literal or an identifier)")
	}
}

// parseSysWrite: $write(fd, data)
func (p *Parser) parseSysWrite() (*ast.Write, error) {
	if err := p.expectSyscallNamed("write"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}

	fd, err := p.parseIntOrIdentifier("file descriptor")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Comma); err != nil {
		return nil, err
	}

	data, err := p.parseStringOrIdentifier("write data")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}

	return &ast.Write{Fd: fd, Data: data}, nil
}

// parseSysRead: $read(fd, buffer). buffer must be an identifier.
func (p *Parser) parseSysRead() (*ast.Read, error) {
	if err := p.expectSyscallNamed("read"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}

	fd, err := p.parseIntOrIdentifier("file descriptor")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Comma); err != nil {
		return nil, err
	}

	buffer, err := p.expect(token.Identifier)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}

	return &ast.Read{Fd: fd, Buffer: buffer}, nil
}

// parseSysExit: $exit(code)
func (p *Parser) parseSysExit() (*ast.Exit, error) {
	if err := p.expectSyscallNamed("exit"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}

	code, err := p.parseIntOrIdentifier("exit code")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}

	return &ast.Exit{Code: code}, nil
}

// parseSysOpen: $open(path, flags, mode)
func (p *Parser) parseSysOpen() (*ast.Open, error) {
	if err := p.expectSyscallNamed("open"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}

	path, err := p.parseStringOrIdentifier("path")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Comma); err != nil {
		return nil, err
	}

	flags, err := p.parseIntOrIdentifier("flags")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Comma); err != nil {
		return nil, err
	}

	mode, err := p.parseIntOrIdentifier("mode")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}

	return &ast.Open{Path: path, Flags: flags, Mode: mode}, nil
}

// parseSysSysinfo: $sysinfo(buffer). buffer must be an identifier.
func (p *Parser) parseSysSysinfo() (*ast.Sysinfo, error) {
	if err := p.expectSyscallNamed("sysinfo"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}

	buffer, err := p.expect(token.Identifier)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}

	return &ast.Sysinfo{Buffer: buffer}, nil
}

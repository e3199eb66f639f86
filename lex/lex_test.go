package lex

import (
	"errors"
	"testing"

	"github.com/comfylang/comfyc/diagnostic"
	"github.com/comfylang/comfyc/token"
)

func mustTokenize(t *testing.T, src string) []token.Token {
	t.Helper()
	tokens, err := Tokenize("test.cfy", src)
	if err != nil {
		t.Fatalf("Tokenize(%q) returned error: %v", src, err)
	}
	return tokens
}

func TestTokenizeEndsWithExactlyOneEOF(t *testing.T) {
	tokens := mustTokenize(t, "fn main() {}")
	if tokens[len(tokens)-1].Kind != token.EOF {
		t.Fatalf("last token should be EOF, got %v", tokens[len(tokens)-1])
	}
	for _, tok := range tokens[:len(tokens)-1] {
		if tok.Kind == token.EOF {
			t.Fatalf("EOF appeared before the end of the stream: %v", tokens)
		}
	}
}

func TestIntegerLiteralSizing(t *testing.T) {
	cases := []struct {
		literal  string
		wantKind token.Kind
	}{
		{"0", token.Int8Container},
		{"127", token.Int8Container},
		{"128", token.Int16Container},
		{"32767", token.Int16Container},
		{"32768", token.Int32Container},
		{"2147483647", token.Int32Container},
	}

	for _, tc := range cases {
		tokens := mustTokenize(t, tc.literal)
		if tokens[0].Kind != tc.wantKind {
			t.Errorf("literal %q: got kind %v, want %v", tc.literal, tokens[0].Kind, tc.wantKind)
		}
	}
}

func TestIntegerLiteralOutOfRangeIsFatal(t *testing.T) {
	_, err := Tokenize("test.cfy", "2147483648")
	var outOfRange *diagnostic.IntegerOutOfRange
	if !errors.As(err, &outOfRange) {
		t.Errorf("expected IntegerOutOfRange, got %T: %v", err, err)
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	tokens := mustTokenize(t, "fn mut asm bool char str int8 int16 int32 foo true false")
	wantKinds := []token.Kind{
		token.KwFn, token.KwMut, token.KwAsm,
		token.KwBool, token.KwChar, token.KwStr, token.KwInt8, token.KwInt16, token.KwInt32,
		token.Identifier, token.BoolContainer, token.BoolContainer, token.EOF,
	}
	if len(tokens) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(wantKinds), tokens)
	}
	for i, want := range wantKinds {
		if tokens[i].Kind != want {
			t.Errorf("token %d: got %v, want %v", i, tokens[i].Kind, want)
		}
	}
}

func TestStringLiteralNoEscapeProcessing(t *testing.T) {
	tokens := mustTokenize(t, `"hi\nthere"`)
	if tokens[0].Kind != token.StrContainer {
		t.Fatalf("expected StrContainer, got %v", tokens[0].Kind)
	}
	if tokens[0].Str != `hi\nthere` {
		t.Errorf("got %q, want literal backslash-n preserved", tokens[0].Str)
	}
}

func TestLineCommentTerminatesAtNewline(t *testing.T) {
	tokens := mustTokenize(t, "1 // a comment with fn mut keywords\n2")
	if tokens[0].Kind != token.Int8Container || tokens[0].Int8 != 1 {
		t.Fatalf("first token wrong: %v", tokens[0])
	}
	if tokens[1].Kind != token.Int8Container || tokens[1].Int8 != 2 {
		t.Fatalf("second token wrong: %v", tokens[1])
	}
}

func TestSyscallToken(t *testing.T) {
	tokens := mustTokenize(t, "$write")
	if tokens[0].Kind != token.Syscall || tokens[0].Name != "write" {
		t.Fatalf("got %v, want Syscall(write)", tokens[0])
	}
}

func TestCharLiteral(t *testing.T) {
	tokens := mustTokenize(t, "'a'")
	if tokens[0].Kind != token.CharContainer || tokens[0].Char != 'a' {
		t.Fatalf("got %v, want CharContainer('a')", tokens[0])
	}
}

func TestEmptyCharLiteralIsRejected(t *testing.T) {
	_, err := Tokenize("test.cfy", "''")
	var empty *diagnostic.ErrEmptyCharLiteral
	if !errors.As(err, &empty) {
		t.Fatalf("expected ErrEmptyCharLiteral, got %T: %v", err, err)
	}
}

func TestUnrecognizedCharacterIsFatal(t *testing.T) {
	_, err := Tokenize("test.cfy", "#")
	var unrec *diagnostic.UnrecognizedCharacter
	if !errors.As(err, &unrec) {
		t.Fatalf("expected UnrecognizedCharacter, got %T: %v", err, err)
	}
}

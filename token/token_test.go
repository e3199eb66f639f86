package token

import (
	"testing"

	"github.com/comfylang/comfyc/sourcemap"
)

func sourcemapAt(line, column int) sourcemap.Position {
	return sourcemap.Position{Line: line, Column: column}
}

func TestTokenEqualIgnoresPosition(t *testing.T) {
	cases := []struct {
		name string
		a, b Token
		want bool
	}{
		{"identical identifiers", NewIdentifier("x", sourcemapAt(1, 1)), NewIdentifier("x", sourcemapAt(5, 9)), true},
		{"different identifier names", NewIdentifier("x", sourcemapAt(1, 1)), NewIdentifier("y", sourcemapAt(1, 1)), false},
		{"same int8 value", NewInt8(5, sourcemapAt(1, 1)), NewInt8(5, sourcemapAt(2, 2)), true},
		{"different int8 value", NewInt8(5, sourcemapAt(1, 1)), NewInt8(6, sourcemapAt(1, 1)), false},
		{"int8 vs int16 differ by kind even with same numeric value", NewInt8(5, sourcemapAt(1, 1)), NewInt16(5, sourcemapAt(1, 1)), false},
		{"simple kinds ignore payload", Simple(LParen, sourcemapAt(1, 1)), Simple(LParen, sourcemapAt(9, 9)), true},
		{"different simple kinds", Simple(LParen, sourcemapAt(1, 1)), Simple(RParen, sourcemapAt(1, 1)), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Equal(tc.b); got != tc.want {
				t.Errorf("Equal() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestByteWidth(t *testing.T) {
	cases := []struct {
		kind      Kind
		wantWidth int
		wantOK    bool
	}{
		{KwBool, 1, true},
		{KwChar, 1, true},
		{KwInt8, 1, true},
		{KwInt16, 2, true},
		{KwInt32, 4, true},
		{KwStr, 4, true},
		{KwFn, 0, false},
	}

	for _, tc := range cases {
		width, ok := ByteWidth(tc.kind)
		if width != tc.wantWidth || ok != tc.wantOK {
			t.Errorf("ByteWidth(%v) = (%d, %v), want (%d, %v)", tc.kind, width, ok, tc.wantWidth, tc.wantOK)
		}
	}
}

func TestIsTypeKeywordAndIsLiteralContainer(t *testing.T) {
	if !Simple(KwInt32, sourcemapAt(0, 0)).IsTypeKeyword() {
		t.Error("KwInt32 should be a type keyword")
	}
	if Simple(KwFn, sourcemapAt(0, 0)).IsTypeKeyword() {
		t.Error("KwFn should not be a type keyword")
	}
	if !NewInt32(1, sourcemapAt(0, 0)).IsLiteralContainer() {
		t.Error("Int32Container should be a literal container")
	}
	if NewIdentifier("x", sourcemapAt(0, 0)).IsLiteralContainer() {
		t.Error("Identifier should not be a literal container")
	}
}

package sourcemap

import "testing"

func TestPositionString(t *testing.T) {
	p := Position{File: "main.cfy", Line: 3, Column: 5}
	if got, want := p.String(), "main.cfy:3:5"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	p = Position{Line: 3, Column: 5}
	if got, want := p.String(), "3:5"; got != want {
		t.Errorf("String() with no file = %q, want %q", got, want)
	}
}

func TestPositionIsZero(t *testing.T) {
	if !(Position{}).IsZero() {
		t.Error("zero-value Position should report IsZero")
	}
	if (Position{Line: 1}).IsZero() {
		t.Error("Position with a line set should not report IsZero")
	}
}

package kterm

import (
	"bytes"
	"testing"
)

func TestCopySelectionUTF8RoundTrip(t *testing.T) {
	// Scenario 8 (spec §8): "UTF-8 copy round-trip" — a snowman (U+2603)
	// written, selected, and copied must emit the raw bytes E2 98 83.
	term := NewTerminal(WithSize(24, 80))
	run(term, 0, "Hi ☃!")

	term.SetSelection(0, Position{Row: 0, Col: 3}, Position{Row: 0, Col: 3})
	got := term.CopySelection(0)

	want := []byte{0xE2, 0x98, 0x83}
	if !bytes.Equal(got, want) {
		t.Errorf("CopySelection = % x, want % x", got, want)
	}
}

func TestSelectionMultiLine(t *testing.T) {
	term := NewTerminal(WithSize(24, 80))
	run(term, 0, "abc\r\ndef")

	term.SetSelection(0, Position{Row: 0, Col: 1}, Position{Row: 1, Col: 1})
	got := string(term.CopySelection(0))

	want := "bc\nde"
	if got != want {
		t.Errorf("multi-line selection = %q, want %q", got, want)
	}
}

func TestSelectionNormalizesReverseOrder(t *testing.T) {
	term := NewTerminal(WithSize(24, 80))
	run(term, 0, "abcdef")

	// End given before start: SetSelection must swap them.
	term.SetSelection(0, Position{Row: 0, Col: 4}, Position{Row: 0, Col: 1})
	got := string(term.CopySelection(0))

	want := "bcde"
	if got != want {
		t.Errorf("reverse-order selection = %q, want %q", got, want)
	}
}

func TestClearSelectionEmptiesCopy(t *testing.T) {
	term := NewTerminal(WithSize(24, 80))
	run(term, 0, "abc")
	term.SetSelection(0, Position{Row: 0, Col: 0}, Position{Row: 0, Col: 2})
	term.ClearSelection(0)

	if got := term.CopySelection(0); len(got) != 0 {
		t.Errorf("CopySelection after Clear = %q, want empty", got)
	}
}

func TestIsSelectedBounds(t *testing.T) {
	s := NewSession(0, 24, 80, ConformanceVT220, NoopScrollback{})
	s.SetSelection(Position{Row: 1, Col: 2}, Position{Row: 1, Col: 5})

	cases := []struct {
		row, col int
		want     bool
	}{
		{1, 1, false},
		{1, 2, true},
		{1, 5, true},
		{1, 6, false},
		{0, 3, false},
	}
	for _, c := range cases {
		if got := s.IsSelected(c.row, c.col); got != c.want {
			t.Errorf("IsSelected(%d,%d) = %v, want %v", c.row, c.col, got, c.want)
		}
	}
}

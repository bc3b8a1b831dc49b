package kterm

import "testing"

func TestVT52ModeSwitch(t *testing.T) {
	// Scenario 7 (spec §8): resetting DECANM (CSI ?2 l) enters VT52 grammar;
	// ESC < returns to ANSI/CSI grammar, and the very next byte after each
	// switch is interpreted under the new grammar with no extra delay.
	term := NewTerminal(WithSize(24, 80), WithLevel(ConformanceVT220))
	s := term.ActiveSession()

	if !s.modes.Has(ModeDECANM) {
		t.Fatal("a freshly constructed VT220 session must start with DECANM set (ANSI grammar)")
	}

	run(term, 0, "\x1B[?2l") // enter VT52
	if s.modes.Has(ModeDECANM) {
		t.Fatal("CSI ?2l did not reset DECANM")
	}

	// Under VT52 grammar, "ESC H" is cursor-home, not a CSI-style sequence.
	run(term, 0, "\x1BH")
	if s.cursor.Row != 0 || s.cursor.Col != 0 {
		t.Errorf("VT52 ESC H -> cursor (%d,%d), want (0,0)", s.cursor.Row, s.cursor.Col)
	}

	run(term, 0, "\x1BC\x1BC\x1BB")
	if s.cursor.Row != 1 || s.cursor.Col != 2 {
		t.Errorf("after VT52 moves, cursor (%d,%d), want (1,2)", s.cursor.Row, s.cursor.Col)
	}

	// Under VT52 grammar "[" is not a CSI introducer: ESC swallows it as an
	// unrecognized one-byte VT52 command (silently ignored), and the "H"
	// that follows prints as a literal character rather than moving home.
	row, col := s.cursor.Row, s.cursor.Col
	run(term, 0, "\x1B[H")
	textCell := mustCell(t, term, 0, row, col)
	if textCell.Codepoint != 'H' {
		t.Errorf("expected literal 'H' printed at (%d,%d) under VT52 grammar, got %q", row, col, textCell.Codepoint)
	}

	run(term, 0, "\x1B<") // return to ANSI mode
	if !s.modes.Has(ModeDECANM) {
		t.Fatal("ESC < did not set DECANM back")
	}

	// The very next byte is parsed as ANSI/CSI again, with no stale state.
	run(term, 0, "\x1B[2J\x1B[3;3H"+"Z")
	z := mustCell(t, term, 0, 2, 2)
	if z.Codepoint != 'Z' {
		t.Errorf("after returning to ANSI mode, CUP+print failed: (2,2) = %q, want 'Z'", z.Codepoint)
	}
}

func TestVT52DirectCursorAddress(t *testing.T) {
	term := NewTerminal(WithSize(24, 80))
	s := term.ActiveSession()
	run(term, 0, "\x1B[?2l")

	// ESC Y row col, each offset by 037 (0x1F) per VT52 direct cursor addressing.
	row, col := byte(5+0o37), byte(10+0o37)
	run(term, 0, "\x1BY"+string(row)+string(col))

	if s.cursor.Row != 5 || s.cursor.Col != 10 {
		t.Errorf("cursor = (%d,%d), want (5,10)", s.cursor.Row, s.cursor.Col)
	}
}

func TestVT52IdentifyResponse(t *testing.T) {
	term := NewTerminal(WithSize(24, 80))
	run(term, 0, "\x1B[?2l\x1BZ")
	resp := term.DrainResponse(0)
	if string(resp) != "\x1b/Z" {
		t.Errorf("VT52 identify response = %q, want %q", resp, "\x1b/Z")
	}
}

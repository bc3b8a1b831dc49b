package kterm

import "testing"

// run pushes data through one session's pipeline, parses it, and flushes
// the resulting operations, mirroring the write/update/flush cycle a host
// drives in production (spec §6.3).
func run(t *Terminal, session int, data string) {
	t.Write([]byte(data))
	t.Update()
	t.FlushOps(session)
}

func mustCell(t *testing.T, term *Terminal, session, row, col int) Cell {
	t.Helper()
	c, ok := term.Cell(session, row, col)
	if !ok {
		t.Fatalf("Cell(%d,%d,%d) out of range", session, row, col)
	}
	return c
}

func TestCursorMovementVTTEST(t *testing.T) {
	// Scenario 1 (spec §8): CUP then relative moves interleaved with prints.
	term := NewTerminal(WithSize(24, 80))
	run(term, 0, "\x1B[2J\x1B[H\x1B[10;10H"+"A"+"\x1B[2A"+"B"+"\x1B[2B"+"C"+"\x1B[2D"+"D")

	cases := []struct {
		row, col int
		want     rune
	}{
		{9, 9, 'A'},
		{7, 10, 'B'},
		{9, 11, 'C'},
		{9, 10, 'D'},
	}
	for _, c := range cases {
		cell := mustCell(t, term, 0, c.row, c.col)
		if cell.Codepoint != c.want {
			t.Errorf("(%d,%d) = %q, want %q", c.row, c.col, cell.Codepoint, c.want)
		}
	}
}

func TestReverseVideoSGR(t *testing.T) {
	// Scenario 2 (spec §8).
	term := NewTerminal(WithSize(24, 80))
	run(term, 0, "\x1B[2J\x1B[H\x1B[7mReverse\x1B[0mNormal")

	r := mustCell(t, term, 0, 0, 0)
	if r.Codepoint != 'R' || !r.HasFlag(CellFlagReverse) {
		t.Errorf("(0,0) = %q reverse=%v, want 'R' reverse=true", r.Codepoint, r.HasFlag(CellFlagReverse))
	}
	n := mustCell(t, term, 0, 0, 7)
	if n.Codepoint != 'N' || n.HasFlag(CellFlagReverse) {
		t.Errorf("(0,7) = %q reverse=%v, want 'N' reverse=false", n.Codepoint, n.HasFlag(CellFlagReverse))
	}
}

func TestDECCOLMWithDECNCSM(t *testing.T) {
	// Scenario 3 (spec §8): ?40 ALLOW_80_132 + ?95 DECNCSM, then DECSCPP to 132.
	term := NewTerminal(WithSize(24, 80), WithLevel(ConformanceVT420))
	run(term, 0, "\x1B[?40h\x1B[?95h"+"Hello World")

	s := term.ActiveSession()
	s.cursor.Row, s.cursor.Col = 5, 5

	run(term, 0, "\x1B[132$|")

	if s.Cols() != 132 {
		t.Errorf("cols = %d, want 132", s.Cols())
	}
	if s.cursor.Row != 5 || s.cursor.Col != 5 {
		t.Errorf("cursor = (%d,%d), want (5,5)", s.cursor.Row, s.cursor.Col)
	}
	h := mustCell(t, term, 0, 0, 0)
	if h.Codepoint != 'H' {
		t.Errorf("(0,0) = %q, want 'H' (DECNCSM should skip the clear)", h.Codepoint)
	}
}

func TestDECCRADefaultBottomRight(t *testing.T) {
	// Scenario 4 (spec §8).
	term := NewTerminal(WithSize(24, 80), WithLevel(ConformanceVT420))
	run(term, 0, "C")
	run(term, 0, "\x1B[1;1;;;1;2;1$v")

	c := mustCell(t, term, 0, 1, 0)
	if c.Codepoint != 'C' {
		t.Errorf("(1,0) = %q, want 'C'", c.Codepoint)
	}
}

func TestBackpressureXoffXon(t *testing.T) {
	// Scenario 9 (spec §8).
	term := NewTerminal(WithSize(24, 80))
	s := term.ActiveSession()
	s.modes.Set(ModeDECXRLM)

	cap := s.pipeline.Capacity()
	big := make([]byte, cap*95/100)
	for i := range big {
		big[i] = 'a'
	}

	term.Write(big)
	term.Update()
	resp := term.DrainResponse(0)
	if !containsByte(resp, 0x13) {
		t.Fatalf("expected XOFF (0x13) in response after crossing high watermark, got %x", resp)
	}

	for s.pipeline.Occupancy() > 0.05 {
		term.Update()
	}
	term.Write([]byte("x"))
	term.Update()
	resp = term.DrainResponse(0)
	if !containsByte(resp, 0x11) {
		t.Fatalf("expected XON (0x11) in response after draining below low watermark, got %x", resp)
	}
}

func containsByte(b []byte, target byte) bool {
	for _, x := range b {
		if x == target {
			return true
		}
	}
	return false
}

func TestDecoupling(t *testing.T) {
	// spec §8 invariant "Decoupling".
	term := NewTerminal(WithSize(24, 80))
	term.Write([]byte("X"))
	term.Update()
	// Not flushed yet: the grid must still show whatever was there before.
	before := mustCell(t, term, 0, 0, 0)
	if before.Codepoint == 'X' {
		t.Fatalf("cell shows 'X' before flush; decoupling invariant violated")
	}
	term.FlushOps(0)
	after := mustCell(t, term, 0, 0, 0)
	if after.Codepoint != 'X' {
		t.Errorf("after flush, (0,0) = %q, want 'X'", after.Codepoint)
	}
}

func TestDECSTRIdempotence(t *testing.T) {
	// spec §8 invariant "Idempotence".
	term := NewTerminal(WithSize(24, 80), WithLevel(ConformanceVT420))
	run(term, 0, "\x1B[?40h\x1B[132$|\x1B[31mX")
	run(term, 0, "\x1B[!p") // DECSTR
	s := term.ActiveSession()
	first := *s
	run(term, 0, "\x1B[!p") // DECSTR again

	if s.level != first.level {
		t.Errorf("level changed across repeated DECSTR")
	}
	if s.modes != first.modes {
		t.Errorf("modes changed across repeated DECSTR")
	}
	if s.margins != first.margins {
		t.Errorf("margins changed across repeated DECSTR")
	}
}

func TestMultiSessionIndependence(t *testing.T) {
	term := NewTerminal(WithSize(24, 80), WithSessionCount(2))
	term.SetActiveSession(0)
	run(term, 0, "A")
	term.SetActiveSession(1)
	run(term, 1, "B")

	a := mustCell(t, term, 0, 0, 0)
	b := mustCell(t, term, 1, 0, 0)
	if a.Codepoint != 'A' {
		t.Errorf("session 0 (0,0) = %q, want 'A'", a.Codepoint)
	}
	if b.Codepoint != 'B' {
		t.Errorf("session 1 (0,0) = %q, want 'B'", b.Codepoint)
	}
}

func TestResizeAppliesNewDimensions(t *testing.T) {
	term := NewTerminal(WithSize(24, 80))
	term.Resize(10, 10)
	s := term.ActiveSession()
	if s.Rows() != 10 || s.Cols() != 10 {
		t.Fatalf("Resize did not take effect: %dx%d", s.Rows(), s.Cols())
	}
}

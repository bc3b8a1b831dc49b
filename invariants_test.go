package kterm

import "testing"

func TestWideCharPairing(t *testing.T) {
	// spec §8 invariant: a wide character's leading cell carries
	// CellFlagWide, immediately followed by a CellFlagWideCont cell holding
	// the same codepoint.
	term := NewTerminal(WithSize(24, 80))
	run(term, 0, "中文") // two CJK ideographs, each 2 columns wide

	lead := mustCell(t, term, 0, 0, 0)
	cont := mustCell(t, term, 0, 0, 1)
	lead2 := mustCell(t, term, 0, 0, 2)

	if !lead.IsWide() || lead.Codepoint != '中' {
		t.Errorf("(0,0) = %+v, want wide U+4E2D", lead)
	}
	if !cont.IsWideCont() || cont.Codepoint != '中' {
		t.Errorf("(0,1) = %+v, want wide-cont U+4E2D", cont)
	}
	if !lead2.IsWide() || lead2.Codepoint != '文' {
		t.Errorf("(0,2) = %+v, want wide U+6587", lead2)
	}
}

func TestDirtyRectMonotoneUnion(t *testing.T) {
	// spec §8 invariant: a flush never shrinks the accumulated dirty rectangle.
	term := NewTerminal(WithSize(24, 80))

	term.Write([]byte("\x1B[10;10HA"))
	term.Update()
	r1 := term.FlushOps(0)

	term.Write([]byte("\x1B[1;1HB"))
	term.Update()
	r2 := term.FlushOps(0)

	if r2.Top > r1.Top || r2.Left > r1.Left {
		t.Errorf("dirty rect shrank: r1=%+v r2=%+v", r1, r2)
	}
	if r2.Bottom < r1.Bottom || r2.Right < r1.Right {
		t.Errorf("union did not extend to cover both writes: r1=%+v r2=%+v", r1, r2)
	}
}

func TestSoftFontDECDLDRoundTrip(t *testing.T) {
	// spec §8 invariant: a DECDLD payload loaded over DCS { ... ST can be
	// read back from the atlas: the first glyph slot holds rows and the
	// atlas is marked dirty.
	term := NewTerminal(WithSize(24, 80), WithLevel(ConformanceVT420))
	// DCS 1;1;1;10;1;0;16 { Pfn Pcn Pe Pcmw Pw Pt Pcmh ...
	run(term, 0, "\x1BP1;1;1;10;1;0;16{A/BBBBBB\x1B\\")

	s := term.ActiveSession()
	glyph, ok := s.softFont.Glyph(1)
	if !ok {
		t.Fatal("expected glyph 1 to be populated after DECDLD")
	}
	if len(glyph.Rows) == 0 {
		t.Error("glyph has no rows recorded")
	}
	if !s.softFont.Dirty {
		t.Error("softFont.Dirty = false after EndLoad, want true")
	}
}

func TestProtectedCellAtomicityOnErase(t *testing.T) {
	// spec §8 invariant: a rectangular erase that would touch a protected
	// cell is discarded as a whole rather than partially applied.
	term := NewTerminal(WithSize(24, 80), WithLevel(ConformanceVT420))
	run(term, 0, "\x1B[2J\x1B[HABC")

	s := term.ActiveSession()
	buf := s.ActiveBuffer()
	cell := buf.Cell(0, 1)
	cell.SetFlag(CellFlagProtected)

	run(term, 0, "\x1B[1;1;1;3${") // DECSERA over the protected run

	a := mustCell(t, term, 0, 0, 0)
	b := mustCell(t, term, 0, 0, 1)
	c := mustCell(t, term, 0, 0, 2)
	if a.Codepoint != 'A' || b.Codepoint != 'B' || c.Codepoint != 'C' {
		t.Errorf("erase touching a protected cell was not fully discarded: got %q %q %q", a.Codepoint, b.Codepoint, c.Codepoint)
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	// spec §8 invariant: cursor coordinates never leave [0,rows) x [0,cols).
	term := NewTerminal(WithSize(5, 5))
	run(term, 0, "\x1B[999;999H")

	s := term.ActiveSession()
	if s.cursor.Row < 0 || s.cursor.Row >= s.Rows() {
		t.Errorf("cursor.Row = %d out of [0,%d)", s.cursor.Row, s.Rows())
	}
	if s.cursor.Col < 0 || s.cursor.Col >= s.Cols() {
		t.Errorf("cursor.Col = %d out of [0,%d)", s.cursor.Col, s.Cols())
	}
}

func TestCombiningMarkAttaches(t *testing.T) {
	// spec §8 invariant: a combining mark attaches to the previous cell
	// rather than occupying a column of its own.
	term := NewTerminal(WithSize(24, 80))
	run(term, 0, "e\u0301") // 'e' + combining acute accent, decomposed

	e := mustCell(t, term, 0, 0, 0)
	next := mustCell(t, term, 0, 0, 1)
	if e.Codepoint != 'e' {
		t.Errorf("(0,0) = %q, want base 'e' left intact", e.Codepoint)
	}
	if len(e.Combining) != 1 || e.Combining[0] != '\u0301' {
		t.Errorf("(0,0).Combining = %v, want [U+0301]", e.Combining)
	}
	if next.Codepoint != 0 {
		t.Errorf("(0,1) = %q, want empty (combining mark must not occupy its own column)", next.Codepoint)
	}
}

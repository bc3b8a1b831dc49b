package kterm

// writeRune implements the GROUND-state placement rules for one decoded
// codepoint: pending-wrap resolution, wide-character placement, and
// combining-mark attachment (spec §3 Cell invariants, §4.2 "Wide-character
// width", §4.5 "Wide char placement").
func writeRune(t *Terminal, s *Session, r rune) {
	if isCombiningRune(r) {
		attachCombining(s, r)
		return
	}

	box := activeMarginBox(s)
	width := 1
	if s.cursor.Charsets[s.cursor.GL] == CharsetUTF8 || true {
		width = runeWidth(r)
		if width == 0 {
			width = 1
		}
	}

	resolveWrap(s, box, width)

	row, col := s.cursor.Row, s.cursor.Col
	cell := s.cursor.Template.Cell
	cell.Codepoint = mapCharset(s.cursor.activeCharset(), r)

	if width == 2 {
		s.ops.Enqueue(Operation{Kind: OpWriteWide, X: col, Y: row, Cell: cell})
		advanceCursorBy(s, box, 2)
	} else {
		s.ops.Enqueue(Operation{Kind: OpWrite, X: col, Y: row, Cell: cell})
		advanceCursorBy(s, box, 1)
	}
}

func attachCombining(s *Session, r rune) {
	col := s.cursor.Col - 1
	row := s.cursor.Row
	if col < 0 {
		return
	}
	s.ops.Enqueue(Operation{Kind: OpAttachCombining, X: col, Y: row, Combining: r})
}

// resolveWrap applies the deferred pending_wrap flag: if set and the next
// printable doesn't fit before the right edge of the margin box, advance to
// the next line first (spec §3 "pending_wrap flag delays the wrap until the
// next printable arrives").
func resolveWrap(s *Session, box MarginBox, width int) {
	if !s.cursor.PendingWrap {
		return
	}
	s.cursor.PendingWrap = false
	if !s.modes.Has(ModeDECAWM) {
		return
	}
	s.cursor.Col = box.Left
	if s.cursor.Row >= box.Bottom {
		s.ActiveBuffer().ScrollUp(box.Top, box.Bottom+1, 1)
	} else {
		s.cursor.Row++
	}
	s.ActiveBuffer().SetWrapped(prevRow(box, s.cursor.Row), true)
}

func prevRow(box MarginBox, row int) int {
	if row == box.Top {
		return box.Top
	}
	return row - 1
}

func advanceCursorBy(s *Session, box MarginBox, width int) {
	s.cursor.Col += width
	if s.cursor.Col > box.Right {
		s.cursor.Col = box.Right
		if s.modes.Has(ModeDECAWM) {
			s.cursor.PendingWrap = true
		}
	}
}

func activeMarginBox(s *Session) MarginBox {
	if s.modes.Has(ModeDECLRMM) {
		return s.margins
	}
	return MarginBox{Top: s.margins.Top, Bottom: s.margins.Bottom, Left: 0, Right: s.Cols() - 1}
}

// activeCharset resolves which of G0-G3 GL currently reads from, honoring a
// pending single-shift (SS2/SS3) for exactly one character (spec §4.2
// "Charset shifts").
func (c *Cursor) activeCharset() Charset {
	if c.SingleShiftActive {
		c.SingleShiftActive = false
		return c.Charsets[c.SingleShift]
	}
	return c.Charsets[c.GL]
}

// mapCharset applies the DEC Special Graphics substitution table when that
// charset is active; all other charsets pass the codepoint through (spec
// §4.2 "Designators ... select charsets").
func mapCharset(cs Charset, r rune) rune {
	if cs != CharsetDECSpecialGraphics {
		return r
	}
	if mapped, ok := decSpecialGraphics[r]; ok {
		return mapped
	}
	return r
}

// decSpecialGraphics maps the VT100 line-drawing character set's ASCII
// range (0x5F-0x7E) to the Unicode box-drawing codepoints it represents.
var decSpecialGraphics = map[rune]rune{
	'_': ' ', '`': '◆', 'a': '▒', 'b': '␉', 'c': '␌', 'd': '␍', 'e': '␊',
	'f': '°', 'g': '±', 'h': '␤', 'i': '␋', 'j': '┘', 'k': '┐', 'l': '┌',
	'm': '└', 'n': '┼', 'o': '⎺', 'p': '⎻', 'q': '─', 'r': '⎼', 's': '⎽',
	't': '├', 'u': '┤', 'v': '┴', 'w': '┬', 'x': '│', 'y': '≤', 'z': '≥',
	'{': 'π', '|': '≠', '}': '£', '~': '·',
}

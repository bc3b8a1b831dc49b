package kterm

// vt52State is the parallel state machine active while DEC mode ?2
// (DECANM) is reset (spec §4.2 "VT52 mode"). It is deliberately separate
// from the go-vte-backed ANSI machine rather than a mode flag inside it,
// since VT52's ESC grammar (bare letters, no CSI) is incompatible with
// ECMA-48 intermediates.
type vt52State struct {
	inEsc   bool
	awaitY  bool
	awaitRow bool
	row     int
}

func (v *vt52State) feed(b byte, t *Terminal, s *Session) {
	switch {
	case v.awaitY:
		if v.awaitRow {
			v.row = int(b) - 037
			v.awaitRow = false
		} else {
			col := int(b) - 037
			s.cursor.Row = clamp(v.row, 0, s.Rows()-1)
			s.cursor.Col = clamp(col, 0, s.Cols()-1)
			v.awaitY = false
		}
		return
	case v.inEsc:
		v.inEsc = false
		v.dispatch(b, t, s)
		return
	case b == 0x1b:
		v.inEsc = true
		return
	default:
		writeRune(t, s, rune(b))
	}
}

func (v *vt52State) dispatch(b byte, t *Terminal, s *Session) {
	box := activeMarginBox(s)
	switch b {
	case 'A':
		s.cursor.Row = clamp(s.cursor.Row-1, box.Top, box.Bottom)
	case 'B':
		s.cursor.Row = clamp(s.cursor.Row+1, box.Top, box.Bottom)
	case 'C':
		s.cursor.Col = clamp(s.cursor.Col+1, box.Left, box.Right)
	case 'D':
		s.cursor.Col = clamp(s.cursor.Col-1, box.Left, box.Right)
	case 'H':
		s.cursor.Row, s.cursor.Col = box.Top, box.Left
	case 'I':
		if s.cursor.Row == box.Top {
			s.ActiveBuffer().ScrollDown(box.Top, box.Bottom+1, 1)
		} else {
			s.cursor.Row--
		}
	case 'J':
		s.ops.Enqueue(Operation{Kind: OpEraseRect, Rect: Rect{s.cursor.Row, s.cursor.Col, s.Rows() - 1, s.Cols() - 1}})
	case 'K':
		s.ops.Enqueue(Operation{Kind: OpEraseRect, Rect: Rect{s.cursor.Row, s.cursor.Col, s.cursor.Row, s.Cols() - 1}})
	case 'Y':
		v.awaitY = true
		v.awaitRow = true
	case 'Z':
		// VT52 identify has no 8-bit C1 form (VT52 predates S8C1T), so it
		// bypasses queueReply and is always sent 7-bit.
		s.response.QueueString("\x1b/Z")
	case '<':
		s.modes.Set(ModeDECANM) // return to ANSI mode
	case '=':
		// enter alternate (application) keypad mode; no core-owned state changes
	case '>':
		// exit alternate keypad mode
	}
}

package kterm

// csiDispatch maps one CSI final byte, together with its collected
// intermediates/private marker and parameter list, to a handler (spec §4.3
// "Command Dispatcher": "organised as three tables (CSI, ESC, DCS) ...").
func csiDispatch(t *Terminal, s *Session, params []int, intermediates []byte, final rune) {
	marker := csiMarker(intermediates)
	switch marker {
	case '?':
		csiDECPrivate(t, s, params, final)
		return
	case '!':
		if final == 'p' {
			s.Reset() // DECSTR
		}
		return
	case '"':
		if final == 'q' {
			setProtectedAttr(s, paramOr(params, 0, 0))
		}
		return
	case '$':
		csiDollar(s, params, final)
		return
	case '*':
		if final == 'y' {
			csiDECRQCRA(s, params) // DECRQCRA: Pid;Pg;Pt;Pl;Pb;Pr * y
		}
		return
	case '>':
		if final == 'c' {
			queueReply(s, s.profile.DA2)
		}
		return
	case '=':
		if final == 'c' {
			queueReply(s, s.profile.DA3)
		}
		return
	}

	box := activeMarginBox(s)
	switch final {
	case 'A': // CUU
		moveCursor(s, box, -paramOr(params, 0, 1), 0)
	case 'B': // CUD
		moveCursor(s, box, paramOr(params, 0, 1), 0)
	case 'C': // CUF
		moveCursor(s, box, 0, paramOr(params, 0, 1))
	case 'D': // CUB
		moveCursor(s, box, 0, -paramOr(params, 0, 1))
	case 'E': // CNL
		moveCursor(s, box, paramOr(params, 0, 1), 0)
		s.cursor.Col = box.Left
	case 'F': // CPL
		moveCursor(s, box, -paramOr(params, 0, 1), 0)
		s.cursor.Col = box.Left
	case 'G', '`': // CHA / HPA
		setCursorCol(s, box, paramOr(params, 0, 1)-1)
	case 'd': // VPA
		setCursorRow(s, box, paramOr(params, 0, 1)-1)
	case 'H', 'f': // CUP / HVP
		row, col := translate(box, s.cursor.OriginMode, paramOr(params, 0, 1)-1, paramOr(params, 1, 1)-1)
		setCursorRow(s, box, row)
		setCursorCol(s, box, col)
	case 'I': // CHT
		n := paramOr(params, 0, 1)
		for i := 0; i < n; i++ {
			s.cursor.Col = s.ActiveBuffer().NextTabStop(s.cursor.Col)
		}
	case 'Z': // CBT
		n := paramOr(params, 0, 1)
		for i := 0; i < n; i++ {
			s.cursor.Col = s.ActiveBuffer().PrevTabStop(s.cursor.Col)
		}
	case 'J': // ED
		csiErase(s, box, paramOr(params, 0, 0), true)
	case 'K': // EL
		csiErase(s, box, paramOr(params, 0, 0), false)
	case 'L': // IL
		n := paramOr(params, 0, 1)
		s.ops.Enqueue(Operation{Kind: OpInsertLines, AtY: s.cursor.Row, N: n, Rect: Rect{box.Top, box.Left, box.Bottom, box.Right}})
	case 'M': // DL
		n := paramOr(params, 0, 1)
		s.ops.Enqueue(Operation{Kind: OpDeleteLines, AtY: s.cursor.Row, N: n, Rect: Rect{box.Top, box.Left, box.Bottom, box.Right}})
	case '@': // ICH
		n := paramOr(params, 0, 1)
		s.ops.Enqueue(Operation{Kind: OpInsertChars, AtY: s.cursor.Row, AtX: s.cursor.Col, N: n, Rect: Rect{Right: box.Right}})
	case 'P': // DCH
		n := paramOr(params, 0, 1)
		s.ops.Enqueue(Operation{Kind: OpDeleteChars, AtY: s.cursor.Row, AtX: s.cursor.Col, N: n, Rect: Rect{Right: box.Right}})
	case 'X': // ECH
		n := paramOr(params, 0, 1)
		s.ops.Enqueue(Operation{Kind: OpEraseChars, AtY: s.cursor.Row, AtX: s.cursor.Col, N: n})
	case 'S': // SU
		n := paramOr(params, 0, 1)
		s.ops.Enqueue(Operation{Kind: OpScrollUp, N: n, Rect: Rect{box.Top, box.Left, box.Bottom, box.Right}})
	case 'T': // SD
		n := paramOr(params, 0, 1)
		s.ops.Enqueue(Operation{Kind: OpScrollDown, N: n, Rect: Rect{box.Top, box.Left, box.Bottom, box.Right}})
	case 'g': // TBC
		csiTBC(s, paramOr(params, 0, 0))
	case 'm': // SGR
		applySGR(s, params)
	case 'h': // SM (ANSI)
		setANSIModes(s, params, true)
	case 'l': // RM (ANSI)
		setANSIModes(s, params, false)
	case 'n': // DSR
		csiDSR(s, paramOr(params, 0, 0))
	case 'c': // DA1
		if paramOr(params, 0, 0) == 0 {
			queueReply(s, s.profile.DA1)
		}
	case 'r': // DECSTBM
		top := paramOr(params, 0, 1) - 1
		bottom := paramOr(params, 1, s.Rows()) - 1
		if top < bottom {
			s.margins.Top, s.margins.Bottom = top, bottom
			s.cursor.Row, s.cursor.Col = translate(s.margins, s.cursor.OriginMode, 0, 0)
		}
	case 's': // DECSLRM when DECLRMM set, else ANSI.SYS cursor-save
		if s.modes.Has(ModeDECLRMM) {
			left := paramOr(params, 0, 1) - 1
			right := paramOr(params, 1, s.Cols()) - 1
			if left < right {
				s.margins.Left, s.margins.Right = left, right
			}
		} else {
			s.savedCursor = s.cursor.Snapshot()
			s.hasSaved = true
		}
	case 'u': // ANSI.SYS cursor-restore
		if s.hasSaved {
			s.cursor.Restore(s.savedCursor)
		}
	}
}

func csiMarker(intermediates []byte) byte {
	if len(intermediates) == 0 {
		return 0
	}
	return intermediates[0]
}

func moveCursor(s *Session, box MarginBox, dRow, dCol int) {
	s.cursor.Row = clamp(s.cursor.Row+dRow, box.Top, box.Bottom)
	s.cursor.Col = clamp(s.cursor.Col+dCol, box.Left, box.Right)
	s.cursor.PendingWrap = false
}

func setCursorCol(s *Session, box MarginBox, col int) {
	s.cursor.Col = clamp(col, box.Left, box.Right)
	s.cursor.PendingWrap = false
}

func setCursorRow(s *Session, box MarginBox, row int) {
	s.cursor.Row = clamp(row, box.Top, box.Bottom)
	s.cursor.PendingWrap = false
}

func csiErase(s *Session, box MarginBox, mode int, isDisplay bool) {
	buf := s.ActiveBuffer()
	switch mode {
	case 0:
		if isDisplay {
			s.ops.Enqueue(Operation{Kind: OpEraseRect, Rect: Rect{s.cursor.Row, s.cursor.Col, s.Rows() - 1, s.Cols() - 1}})
		} else {
			s.ops.Enqueue(Operation{Kind: OpEraseRect, Rect: Rect{s.cursor.Row, s.cursor.Col, s.cursor.Row, s.Cols() - 1}})
		}
	case 1:
		if isDisplay {
			s.ops.Enqueue(Operation{Kind: OpEraseRect, Rect: Rect{0, 0, s.cursor.Row, s.cursor.Col}})
		} else {
			s.ops.Enqueue(Operation{Kind: OpEraseRect, Rect: Rect{s.cursor.Row, 0, s.cursor.Row, s.cursor.Col}})
		}
	case 2:
		if isDisplay {
			s.ops.Enqueue(Operation{Kind: OpEraseRect, Rect: Rect{0, 0, s.Rows() - 1, s.Cols() - 1}})
		} else {
			s.ops.Enqueue(Operation{Kind: OpEraseRect, Rect: Rect{s.cursor.Row, 0, s.cursor.Row, s.Cols() - 1}})
		}
	case 3:
		if isDisplay {
			buf.ClearScrollback()
		}
	}
}

func csiTBC(s *Session, mode int) {
	switch mode {
	case 0:
		s.ActiveBuffer().ClearTabStop(s.cursor.Col)
	case 3:
		s.ActiveBuffer().ClearAllTabStops()
	}
}

func csiDSR(s *Session, mode int) {
	switch mode {
	case 5:
		queueReply(s, "\x1b[0n")
	case 6:
		row, col := s.cursor.Row, s.cursor.Col
		if s.cursor.OriginMode {
			row -= s.margins.Top
			col -= s.margins.Left
		}
		queueReply(s, "\x1b[" + itoa(row+1) + ";" + itoa(col+1) + "R")
	}
}

func setProtectedAttr(s *Session, mode int) {
	// DECSCA: 1 or 2 mark subsequent writes protected, 0 clears it.
	s.cursor.Template.Cell.SetFlagIf(CellFlagProtected, mode == 1 || mode == 2)
}

package kterm

// escDispatch handles ESC sequences: single final byte plus any collected
// intermediates (spec §4.3 "ESC" table). Charset designators ( ) * +
// followed by a final byte are the densest case.
func escDispatch(t *Terminal, s *Session, intermediates []byte, final byte) {
	if len(intermediates) > 0 {
		switch intermediates[0] {
		case '(', ')', '*', '+':
			designateCharset(s, intermediates[0], final)
			return
		case ' ':
			// S7C1T / S8C1T: ESC SP F (7-bit) / ESC SP G (8-bit) affect reply
			// encoding only (spec §4.2), tracked as a plain session flag.
			s.eightBitControls = final == 'G'
			return
		case '#':
			if final == '8' {
				s.ActiveBuffer().FillWithE() // DECALN
			}
			return
		}
	}

	box := activeMarginBox(s)
	switch final {
	case '7':
		s.savedCursor = s.cursor.Snapshot()
		s.hasSaved = true
	case '8':
		if s.hasSaved {
			s.cursor.Restore(s.savedCursor)
		}
	case 'c':
		s.Reset()
	case 'D':
		lineFeed(s, box)
	case 'E':
		lineFeed(s, box)
		s.cursor.Col = box.Left
	case 'H':
		s.ActiveBuffer().SetTabStop(s.cursor.Col)
	case 'M':
		reverseIndex(s, box)
	case 'N':
		s.cursor.SingleShift = CharsetIndexG2
		s.cursor.SingleShiftActive = true
	case 'O':
		s.cursor.SingleShift = CharsetIndexG3
		s.cursor.SingleShiftActive = true
	case 'Z':
		queueReply(s, s.profile.DA1)
	case '=', '>':
		// Application/normal keypad mode; no core-owned state beyond the
		// input encoder, which is an outer-shell concern (spec §1).
	}
}

func designateCharset(s *Session, intro byte, final byte) {
	idx := map[byte]CharsetIndex{'(': CharsetIndexG0, ')': CharsetIndexG1, '*': CharsetIndexG2, '+': CharsetIndexG3}[intro]
	cs, ok := charsetFromFinal(final)
	if !ok {
		return // unknown final is ignored, spec §4.2
	}
	s.cursor.Charsets[idx] = cs
}

func charsetFromFinal(final byte) (Charset, bool) {
	switch final {
	case 'B':
		return CharsetASCII, true
	case '0':
		return CharsetDECSpecialGraphics, true
	case 'A':
		return CharsetUK, true
	case '<':
		return CharsetLatin1, true
	case 'G':
		return CharsetUTF8, true
	}
	return 0, false
}

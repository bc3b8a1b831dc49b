package kterm

// setANSIModes applies SM/RM for the standard (non-private) mode set.
func setANSIModes(s *Session, params []int, set bool) {
	for _, p := range params {
		if mode, ok := ansiModeNumber(p); ok {
			s.modes.SetTo(mode, set)
		}
	}
}

// csiDECPrivate applies CSI ? Pn h/l and the private-marker reports (DECRQM,
// DECRQPKU) that share the '?' marker (spec §4.3 "Modes", "Reports").
func csiDECPrivate(t *Terminal, s *Session, params []int, final rune) {
	switch final {
	case 'h':
		for _, p := range params {
			setDECMode(t, s, p, true)
		}
	case 'l':
		for _, p := range params {
			setDECMode(t, s, p, false)
		}
	case 'p':
		// DECRQM, DEC-private form: CSI ? Pd $ p -> CSI ? Pd ; Ps $ y
		// (spec §4.3 "Reports": "DECRQM reports a mode's state in the
		// standard quadrivalent reply"). The '$' intermediate that
		// precedes the final byte is not separately inspected since no
		// other DEC-private sequence ends in 'p'.
		pd := paramOr(params, 0, 0)
		ps := 0
		if mode, ok := decPrivateModeNumber(pd); ok {
			if s.modes.Has(mode) {
				ps = 1
			} else {
				ps = 2
			}
		}
		queueReply(s, "\x1b[?" + itoa(pd) + ";" + itoa(ps) + "$y")
	case 'w':
		// DECRQPKU: CSI ? Pf $ w -> one DCS Key;Locked;body ST reply per key
		// (spec §4.3 "Reports").
		csiDECRQPKU(s, params)
	}
}

func setDECMode(t *Terminal, s *Session, n int, on bool) {
	mode, ok := decPrivateModeNumber(n)
	if !ok {
		t.diagnostics.Warn(s.index, "unsupported-sequence", "DEC private mode "+itoa(n))
		return
	}
	switch n {
	case 3: // DECCOLM, gated on ?40 ALLOW_80_132 (spec §4.3 "Modes")
		if s.modes.Has(ModeAllow80132) {
			applyDECCOLM(s, on)
		}
		return
	case 6: // DECOM
		s.cursor.OriginMode = on
		s.cursor.Row, s.cursor.Col = translate(s.margins, on, 0, 0)
		return
	case 47, 1047:
		if on {
			s.EnterAltScreen(false, false)
		} else {
			if n == 1047 && s.onAlt {
				s.alternate.ClearAll()
			}
			s.ExitAltScreen(false)
		}
		return
	case 1049:
		if on {
			s.EnterAltScreen(true, true)
		} else {
			s.ExitAltScreen(true)
		}
		return
	case 25:
		s.cursor.Visible = on
	}
	s.modes.SetTo(mode, on)
}

// applyDECCOLM resizes between 80 and 132 columns. Clearing is skipped when
// DECNCSM (mode 95) is set (spec §4.3 "?3 DECCOLM resizes the grid subject
// to ?40 ALLOW_80_132 and optionally skips clearing when ?95 DECNCSM is set").
func applyDECCOLM(s *Session, wide bool) {
	cols := 80
	if wide {
		cols = 132
	}
	row, col := s.cursor.Row, s.cursor.Col
	s.Resize(s.Rows(), cols)
	if !s.modes.Has(ModeDECNCSM) {
		s.ActiveBuffer().ClearAll()
	}
	s.cursor.Row, s.cursor.Col = row, col
	s.modes.SetTo(ModeDECCOLM, wide)
}

package kterm

import vte "github.com/danielgatis/go-vte"

// performer adapts one (Terminal, Session, Parser) triple to go-vte's
// Perform interface for the duration of a single Advance call (spec §4.3
// "Command Dispatcher"). It is cheap to construct and carries no state of
// its own beyond the three pointers.
type performer struct {
	t *Terminal
	s *Session
	p *Parser
}

var _ vte.Perform = (*performer)(nil)

func (pf *performer) Print(r rune) {
	writeRune(pf.t, pf.s, r)
}

func (pf *performer) Execute(b byte) {
	execControl(pf.t, pf.s, b)
}

func (pf *performer) Hook(params *vte.Params, intermediates []byte, ignore bool, action rune) {
	dcsHook(pf.t, pf.s, params, intermediates, ignore, action)
}

func (pf *performer) Put(b byte) {
	dcsPut(pf.s, b)
}

func (pf *performer) Unhook() {
	dcsUnhook(pf.t, pf.s)
}

func (pf *performer) OscDispatch(params [][]byte, bellTerminated bool) {
	oscDispatch(pf.t, pf.s, params, bellTerminated)
}

func (pf *performer) CsiDispatch(params *vte.Params, intermediates []byte, ignore bool, action rune) {
	if ignore {
		return
	}
	csiDispatch(pf.t, pf.s, paramGroups(params), intermediates, action)
}

func (pf *performer) EscDispatch(intermediates []byte, ignore bool, b byte) {
	if ignore {
		return
	}
	escDispatch(pf.t, pf.s, intermediates, b)
}

// paramGroups flattens go-vte's Params iterator into one []int slice. Colon
// subparameters are collapsed to their first value, except after 38/48/58,
// whose colon form ("38:5:n", "38:2:r:g:b", "38:2:cs:r:g:b") is expanded
// into the semicolon shape ("38;5;n", "38;2;r;g;b") that applySGR reads.
func paramGroups(params *vte.Params) []int {
	if params == nil {
		return nil
	}
	var out []int
	for _, group := range params.Iter() {
		if len(group) == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, int(group[0]))
		if len(group) > 1 && (group[0] == 38 || group[0] == 48 || group[0] == 58) {
			sub := group[1:]
			if sub[0] == 2 && len(sub) > 4 {
				out = append(out, 2) // drop the colour-space id before r:g:b
				sub = sub[len(sub)-3:]
			}
			for _, v := range sub {
				out = append(out, int(v))
			}
		}
	}
	return out
}

func paramOr(params []int, idx, def int) int {
	if idx >= len(params) || params[idx] == 0 {
		return def
	}
	return params[idx]
}

func paramAt(params []int, idx int) (int, bool) {
	if idx >= len(params) {
		return 0, false
	}
	return params[idx], true
}

// execControl handles the C0/C1 set that executes immediately regardless
// of the enclosing parser state (spec §4.2 "Control execution").
func execControl(t *Terminal, s *Session, b byte) {
	box := activeMarginBox(s)
	switch b {
	case 0x07: // BEL
		t.bell.Ring()
	case 0x08: // BS
		if s.cursor.Col > box.Left {
			s.cursor.Col--
		}
		s.cursor.PendingWrap = false
	case 0x09: // HT
		s.cursor.Col = s.ActiveBuffer().NextTabStop(s.cursor.Col)
	case 0x0A, 0x0B, 0x0C: // LF, VT, FF
		lineFeed(s, box)
		if s.modes.Has(ModeLNM) {
			s.cursor.Col = box.Left
		}
	case 0x0D: // CR
		s.cursor.Col = box.Left
		s.cursor.PendingWrap = false
	case 0x05: // ENQ
		s.response.QueueString("")
	case 0x0E: // SO
		s.cursor.GL = CharsetIndexG1
	case 0x0F: // SI
		s.cursor.GL = CharsetIndexG0
	case 0x84: // IND (8-bit)
		lineFeed(s, box)
	case 0x85: // NEL (8-bit)
		lineFeed(s, box)
		s.cursor.Col = box.Left
	case 0x88: // HTS (8-bit)
		s.ActiveBuffer().SetTabStop(s.cursor.Col)
	case 0x8D: // RI (8-bit)
		reverseIndex(s, box)
	case 0x8E:
		s.cursor.SingleShift = CharsetIndexG2
		s.cursor.SingleShiftActive = true
	case 0x8F:
		s.cursor.SingleShift = CharsetIndexG3
		s.cursor.SingleShiftActive = true
	}
}

func lineFeed(s *Session, box MarginBox) {
	if s.cursor.Row >= box.Bottom {
		s.ActiveBuffer().ScrollUp(box.Top, box.Bottom+1, 1)
	} else {
		s.cursor.Row++
	}
}

func reverseIndex(s *Session, box MarginBox) {
	if s.cursor.Row <= box.Top {
		s.ActiveBuffer().ScrollDown(box.Top, box.Bottom+1, 1)
	} else {
		s.cursor.Row--
	}
}

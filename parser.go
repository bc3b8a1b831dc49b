package kterm

import vte "github.com/danielgatis/go-vte"

// stringKind identifies which of the three APC/PM/SOS string types a Parser
// is currently collecting (spec §4.2 lists APC_STRING, PM_STRING, and
// SOS_STRING as distinct parser states).
type stringKind int

const (
	stringKindNone stringKind = iota
	stringKindAPC
	stringKindPM
	stringKindSOS
)

// Parser wraps one go-vte state machine per session, adding the VT52
// parallel mode, UTF-8 combining-mark attachment, and APC/PM/SOS string
// collection the spec requires on top of go-vte's ANSI/CSI/DCS/OSC grammar
// (spec §4.2 "Parser / State Machine"). go-vte already performs C0/C1,
// CSI/DCS/OSC, and UTF-8 ground decoding (it pulls in go-utf8 the same way
// the teacher's dependency chain does); everything VT52-specific is layered
// here because go-vte has no concept of it. There is no separate ANSI.SYS
// grammar; its CSI s/u cursor save/restore is handled by the CSI dispatcher.
// APC/PM/SOS are likewise layered here rather than left to go-vte:
// go-vte (like the vte crate it ports) folds all three into one
// "ignore and discard until ST" state with no dispatch callback, so a
// sequence like Kitty's `APC G ... ST` would otherwise vanish silently.
type Parser struct {
	inner *vte.Parser
	vt52  vt52State

	collecting stringKind
	buf        []byte
	sawEsc     bool // previous byte was ESC, awaiting '_'/'^'/'X' or forwarding
	collectEsc bool // while collecting, previous byte was ESC, awaiting '\' (ST)
}

func NewParser() *Parser {
	return &Parser{inner: vte.NewParser()}
}

// Advance feeds data through the parser for session s, dispatching against
// Terminal t. It processes byte-by-byte so a VT52<->ANSI mode switch mid
// stream (spec §4.2 "switching into VT52 does not immediately enter the
// VT52 sub-state") takes effect on the very next byte.
func (p *Parser) Advance(t *Terminal, s *Session, data []byte) {
	perf := &performer{t: t, s: s, p: p}
	for _, b := range data {
		if b == 0x18 || b == 0x1A { // CAN / SUB: abort in-progress sequence (§4.2)
			p.inner = vte.NewParser()
			p.vt52 = vt52State{}
			p.collecting = stringKindNone
			p.buf = nil
			p.sawEsc = false
			p.collectEsc = false
			continue
		}

		if p.collecting != stringKindNone {
			p.feedCollecting(t, s, b)
			continue
		}

		if !s.modes.Has(ModeDECANM) {
			p.vt52.feed(b, t, s)
			continue
		}

		if p.sawEsc {
			p.sawEsc = false
			switch b {
			case '_':
				p.startCollecting(stringKindAPC)
				continue
			case '^':
				p.startCollecting(stringKindPM)
				continue
			case 'X':
				p.startCollecting(stringKindSOS)
				continue
			}
			p.inner.Advance(perf, b)
			continue
		}

		switch b {
		case 0x1b:
			p.sawEsc = true
			p.inner.Advance(perf, b)
		case 0x9f: // 8-bit APC
			p.startCollecting(stringKindAPC)
		case 0x9e: // 8-bit PM
			p.startCollecting(stringKindPM)
		case 0x98: // 8-bit SOS
			p.startCollecting(stringKindSOS)
		default:
			p.inner.Advance(perf, b)
		}
	}
}

func (p *Parser) startCollecting(kind stringKind) {
	p.collecting = kind
	p.buf = p.buf[:0]
	p.collectEsc = false
}

// feedCollecting accumulates one byte of an APC/PM/SOS string body, watching
// for its 7-bit (ESC \) or 8-bit (0x9C) string terminator.
func (p *Parser) feedCollecting(t *Terminal, s *Session, b byte) {
	switch {
	case b == 0x9c:
		p.finishCollecting(t, s)
	case p.collectEsc:
		p.collectEsc = false
		if b == '\\' {
			p.finishCollecting(t, s)
			return
		}
		p.buf = append(p.buf, 0x1b, b)
	case b == 0x1b:
		p.collectEsc = true
	default:
		p.buf = append(p.buf, b)
	}
}

// finishCollecting dispatches one complete APC/PM/SOS payload and resets
// go-vte's inner parser, which was left stalled in its Escape state when
// the introducer byte was swallowed before reaching it.
func (p *Parser) finishCollecting(t *Terminal, s *Session) {
	kind := p.collecting
	payload := p.buf
	p.collecting = stringKindNone
	p.buf = nil
	p.inner = vte.NewParser()

	switch kind {
	case stringKindAPC:
		dispatchAPC(t, s, payload)
	case stringKindPM:
		t.pm.Receive(payload)
	case stringKindSOS:
		t.sos.Receive(payload)
	}
}

// dispatchAPC routes a complete APC string: a leading 'G' marks Kitty
// graphics (spec §4.6 "Kitty (`APC G ... ST`)"); anything else passes
// through to the host's APCProvider verbatim, matching the teacher's
// ApplicationCommandReceived/handleKittyGraphics split (handler.go).
func dispatchAPC(t *Terminal, s *Session, payload []byte) {
	if len(payload) > 0 && payload[0] == 'G' {
		cmd := parseKittyAPC(payload[1:])
		s.kitty.Apply(cmd, t.diagnostics, s.index)
		return
	}
	t.apc.Receive(payload)
}

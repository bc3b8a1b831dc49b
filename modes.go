package kterm

// Mode identifies a single terminal mode bit, addressed either by its ANSI
// (SM/RM) number or its DEC private (?) number (spec §3 "Mode register").
type Mode uint64

const (
	// ANSI standard modes (ESC [ Pn h/l)
	ModeKAM  Mode = 1 << iota // Keyboard Action Mode
	ModeIRM                   // Insert/Replace
	ModeSRM                   // Send/Receive (local echo)
	ModeLNM                   // Linefeed/Newline

	// DEC private modes (ESC [ ? Pn h/l)
	ModeDECCKM   // Cursor keys application mode
	ModeDECANM   // ANSI/VT52 mode
	ModeDECCOLM  // 80/132 column mode
	ModeDECSCLM  // Smooth scroll
	ModeDECSCNM  // Screen reverse video
	ModeDECOM    // Origin mode
	ModeDECAWM   // Autowrap
	ModeDECARM   // Autorepeat
	ModeDECPFF   // Print form feed
	ModeDECPEX   // Printer extent
	ModeDECTCEM  // Text cursor enable
	ModeDECNRCM  // National replacement character set
	ModeDECNCSM  // No clearing screen on DECCOLM
	ModeDECLRMM  // Left/right margin mode
	ModeDECXRLM  // Transmit rate limiting (DECXRLM backpressure, §4.2)
	ModeDECBKM   // Backarrow key sends BS when set, DEL when reset
	ModeDECKBUM  // Keyboard usage mode: data-processing (set) vs typewriter (reset)
	ModeDECESKM  // Encryption session key mode
	ModeDECHDPXM // Half-duplex mode
	ModeMouseX10 // X10 mouse reporting
	ModeMouseVT200
	ModeMouseBtnEvent
	ModeMouseAnyEvent
	ModeMouseUTF8
	ModeMouseSGR
	ModeMouseURXVT
	ModeFocusEvent
	ModeAltScreenBuf   // 1047/47: alternate screen buffer
	ModeAltScreenSave  // 1049: alt screen + cursor save/restore
	ModeBracketedPaste // 2004
	ModeSixelScrolling
	ModeSixelPrivateColor
	ModeAllow80132 // ?40: permit DECCOLM to resize between 80/132 columns
)

// ModeRegister is the 64-bit bitset holding every mode flag for one session
// (spec §3: "modes are stored as a single bitset keyed by mode number").
type ModeRegister uint64

func (m ModeRegister) Has(bit Mode) bool    { return uint64(m)&uint64(bit) != 0 }
func (m *ModeRegister) Set(bit Mode)        { *m |= ModeRegister(bit) }
func (m *ModeRegister) Clear(bit Mode)      { *m &^= ModeRegister(bit) }
func (m *ModeRegister) SetTo(bit Mode, v bool) {
	if v {
		m.Set(bit)
	} else {
		m.Clear(bit)
	}
}

// DefaultModeRegister returns the mode bits a freshly reset VT100-class-or-
// higher session carries (DECANM, DECAWM, DECARM, and DECTCEM on; everything
// else off). DECANM on means the parser starts in ANSI/CSI grammar rather
// than VT52 grammar (spec §8 scenario 7: "\x1B[?2l" — resetting DECANM — is
// what *enters* VT52 mode, so it must start set).
func DefaultModeRegister() ModeRegister {
	var m ModeRegister
	m.Set(ModeDECANM)
	m.Set(ModeDECAWM)
	m.Set(ModeDECARM)
	m.Set(ModeDECTCEM)
	return m
}

// ansiModeNumber / decPrivateModeNumber map wire numbers from CSI Pn h/l
// (and CSI ? Pn h/l) to Mode bits. Unknown numbers return (0, false); the
// dispatcher treats that as an unsupported-sequence diagnostic (§7.1).
func ansiModeNumber(n int) (Mode, bool) {
	switch n {
	case 2:
		return ModeKAM, true
	case 4:
		return ModeIRM, true
	case 12:
		return ModeSRM, true
	case 20:
		return ModeLNM, true
	}
	return 0, false
}

func decPrivateModeNumber(n int) (Mode, bool) {
	switch n {
	case 1:
		return ModeDECCKM, true
	case 2:
		return ModeDECANM, true
	case 3:
		return ModeDECCOLM, true
	case 4:
		return ModeDECSCLM, true
	case 5:
		return ModeDECSCNM, true
	case 6:
		return ModeDECOM, true
	case 7:
		return ModeDECAWM, true
	case 8:
		return ModeDECARM, true
	case 18:
		return ModeDECPFF, true
	case 19:
		return ModeDECPEX, true
	case 25:
		return ModeDECTCEM, true
	case 40:
		return ModeAllow80132, true
	case 42:
		return ModeDECNRCM, true
	case 47:
		return ModeAltScreenBuf, true
	case 67:
		return ModeDECBKM, true
	case 68:
		return ModeDECKBUM, true
	case 69:
		return ModeDECLRMM, true
	case 73:
		return ModeDECESKM, true
	case 88:
		return ModeDECXRLM, true
	case 95:
		return ModeDECNCSM, true
	case 96:
		return ModeDECHDPXM, true
	case 1000:
		return ModeMouseX10, true
	case 1002:
		return ModeMouseBtnEvent, true
	case 1003:
		return ModeMouseAnyEvent, true
	case 1004:
		return ModeFocusEvent, true
	case 1005:
		return ModeMouseUTF8, true
	case 1006:
		return ModeMouseSGR, true
	case 1015:
		return ModeMouseURXVT, true
	case 1047:
		return ModeAltScreenBuf, true
	case 1049:
		return ModeAltScreenSave, true
	case 2004:
		return ModeBracketedPaste, true
	case 8452:
		return ModeSixelScrolling, true
	}
	return 0, false
}

package kterm

// InputKind classifies an InputEvent (spec §3 "Input event").
type InputKind int

const (
	InputKeyPress InputKind = iota
	InputKeyRelease
	InputMouseDown
	InputMouseUp
	InputMouseMove
	InputMouseWheel
	InputFocusIn
	InputFocusOut
	InputPaste
)

// MouseButton identifies which mouse button an event concerns.
type MouseButton int

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonMiddle
	MouseButtonRight
)

// KeyModifier is a bitmask of held modifier keys.
type KeyModifier uint8

const (
	ModShift KeyModifier = 1 << iota
	ModAlt
	ModCtrl
	ModMeta
)

// InputEvent carries one user-input occurrence from the outer shell into
// the session's encoder (spec §3 "Input event").
type InputEvent struct {
	Kind      InputKind
	KeyCode   int
	Scancode  int
	Modifiers KeyModifier
	Button    MouseButton
	X, Y      int
	Wheel     int
	Literal   string // pre-encoded sequence literal, bypasses the encoder when non-empty
}

// InputQueue is a bounded FIFO of InputEvent per session (spec §3).
type InputQueue struct {
	events   []InputEvent
	capacity int
	dropped  uint64
}

const defaultInputQueueCapacity = 256

func NewInputQueue(capacity int) *InputQueue {
	if capacity <= 0 {
		capacity = defaultInputQueueCapacity
	}
	return &InputQueue{capacity: capacity}
}

// Push appends an event, dropping the newest on overflow (§7.2).
func (q *InputQueue) Push(ev InputEvent) bool {
	if len(q.events) >= q.capacity {
		q.dropped++
		return false
	}
	q.events = append(q.events, ev)
	return true
}

// PopAll drains and returns all queued events in arrival order.
func (q *InputQueue) PopAll() []InputEvent {
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

func (q *InputQueue) Len() int         { return len(q.events) }
func (q *InputQueue) Dropped() uint64  { return q.dropped }

// EncodeEvent turns an InputEvent into the byte sequence the host should
// receive, honoring DECCKM (application cursor keys), DECBKM (backarrow
// key BS/DEL swap), and the choice between SGR and legacy byte mouse
// encoding; the UTF-8 (1005) mouse encoding is not produced (spec §4.3
// "Keyboard / locking").
func EncodeEvent(ev InputEvent, modes ModeRegister) []byte {
	if ev.Literal != "" {
		return []byte(ev.Literal)
	}
	switch ev.Kind {
	case InputKeyPress:
		return encodeKey(ev, modes)
	case InputMouseDown, InputMouseUp, InputMouseMove, InputMouseWheel:
		return encodeMouse(ev, modes)
	default:
		return nil
	}
}

func encodeKey(ev InputEvent, modes ModeRegister) []byte {
	cursorIntro := byte('[')
	if modes.Has(ModeDECCKM) {
		cursorIntro = 'O'
	}
	switch ev.KeyCode {
	case KeyUp:
		return []byte{0x1b, cursorIntro, 'A'}
	case KeyDown:
		return []byte{0x1b, cursorIntro, 'B'}
	case KeyRight:
		return []byte{0x1b, cursorIntro, 'C'}
	case KeyLeft:
		return []byte{0x1b, cursorIntro, 'D'}
	case KeyHome:
		return []byte{0x1b, cursorIntro, 'H'}
	case KeyEnd:
		return []byte{0x1b, cursorIntro, 'F'}
	case KeyBackspace:
		// DECBKM (spec §4.3 "Keyboard / locking"): set sends BS (0x08),
		// reset (the default) sends DEL (0x7F).
		if modes.Has(ModeDECBKM) {
			return []byte{0x08}
		}
		return []byte{0x7f}
	}
	if ev.KeyCode > 0 && ev.KeyCode < 0x110000 {
		return []byte(string(rune(ev.KeyCode)))
	}
	return nil
}

// Key codes for the navigation cluster; full keymap encoding beyond these is
// an outer-shell concern (spec §1 Non-goals: no real input device model).
const (
	KeyUp = -(iota + 1)
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyBackspace
)

func encodeMouse(ev InputEvent, modes ModeRegister) []byte {
	if !modes.Has(ModeMouseX10) && !modes.Has(ModeMouseBtnEvent) && !modes.Has(ModeMouseAnyEvent) {
		return nil
	}
	btn := 0
	switch ev.Button {
	case MouseButtonMiddle:
		btn = 1
	case MouseButtonRight:
		btn = 2
	}
	if ev.Kind == InputMouseWheel {
		btn = 64
		if ev.Wheel < 0 {
			btn = 65
		}
	}
	final := byte('M')
	if ev.Kind == InputMouseUp {
		final = 'm'
	}
	if modes.Has(ModeMouseSGR) {
		return []byte(sgrMouseSeq(btn, ev.X+1, ev.Y+1, final))
	}
	return []byte{0x1b, '[', 'M', byte(32 + btn), byte(32 + ev.X + 1), byte(32 + ev.Y + 1)}
}

func sgrMouseSeq(btn, x, y int, final byte) string {
	return "\x1b[<" + itoa(btn) + ";" + itoa(x) + ";" + itoa(y) + string(final)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

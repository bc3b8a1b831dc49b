package kterm

// Session is one unit of emulation: an independent grid, cursor, margins,
// modes, pipeline, and response buffer, sharing a palette and conformance
// defaults with its owning Terminal (spec §3 "Session").
type Session struct {
	index int

	primary   *Buffer
	alternate *Buffer
	onAlt     bool

	cursor      *Cursor
	savedCursor SavedCursor
	hasSaved    bool
	sgrStack    sgrStack

	margins    MarginBox
	modes      ModeRegister
	level      ConformanceLevel
	profile    conformanceProfile

	pipeline *Pipeline
	input    *InputQueue
	response *ResponseSink

	ops   *OpQueue
	dirty Rect

	sixel     SixelState
	kitty     KittyState
	softFont  SoftFontState
	selection Selection

	// Gateway per-subprotocol routing; -1 means "this session".
	gatewayRegisSession     int
	gatewayTektronixSession int
	gatewayKittySession     int
	gatewaySixelSession     int

	recording RecordingProvider

	eightBitControls bool // S8C1T: emit replies as 8-bit C1 instead of 7-bit ESC form

	// In-progress DCS collection (spec §4.3 "DCS" table); activeDCSKind is
	// the distinguishing final byte ('q' Sixel, '{' softfont, '|' DECUDK,
	// '$' DECRQSS, 0 generic/Gateway) set by Hook and cleared by Unhook.
	activeDCSKind    byte
	dcsRawBuf        []byte
	programmableKeys map[int]udkEntry
}

// udkEntry is one DECUDK-defined function key: its lock state and the
// hex-encoded body string it transmits (spec §4.3 "DECRQPKU reports
// programmable key sequences as `DCS Key;Locked;body ST`").
type udkEntry struct {
	Locked bool
	Body   string
}

// NewSession builds a session at the given conformance level with rows x cols
// buffers and the supplied scrollback storage for the primary buffer.
func NewSession(index, rows, cols int, level ConformanceLevel, scrollback ScrollbackProvider) *Session {
	profile := profileFor(level)
	s := &Session{
		index:                   index,
		primary:                 NewBufferWithStorage(rows, cols, scrollback),
		alternate:               NewBuffer(rows, cols),
		cursor:                  NewCursor(),
		margins:                 DefaultMarginBox(rows, cols),
		modes:                   profile.DefaultModes,
		level:                   level,
		profile:                 profile,
		pipeline:                NewPipeline(defaultPipelineCapacity),
		input:                   NewInputQueue(defaultInputQueueCapacity),
		response:                NewResponseSink(defaultResponseBufferCapacity),
		ops:                     NewOpQueue(),
		recording:               NoopRecording{},
		gatewayRegisSession:     -1,
		gatewayTektronixSession: -1,
		gatewayKittySession:     -1,
		gatewaySixelSession:     -1,
	}
	s.sixel = newSixelState()
	s.kitty = newKittyState()
	s.softFont = newSoftFontState(rows)
	return s
}

// ActiveBuffer returns the buffer currently receiving writes (primary or alternate).
func (s *Session) ActiveBuffer() *Buffer {
	if s.onAlt {
		return s.alternate
	}
	return s.primary
}

func (s *Session) Rows() int { return s.ActiveBuffer().Rows() }
func (s *Session) Cols() int { return s.ActiveBuffer().Cols() }

// EnterAltScreen switches to the alternate buffer. clear wipes it first
// (mode 1049; mode 1047 instead clears it on exit); saveCursor additionally snapshots
// the cursor the way DECSC would.
func (s *Session) EnterAltScreen(clear, saveCursor bool) {
	if s.onAlt {
		return
	}
	if saveCursor {
		s.savedCursor = s.cursor.Snapshot()
		s.hasSaved = true
	}
	if clear {
		s.alternate.ClearAll()
	}
	s.onAlt = true
}

// ExitAltScreen restores the primary buffer. restoreCursor undoes the
// EnterAltScreen cursor snapshot (mode 1049 exit semantics).
func (s *Session) ExitAltScreen(restoreCursor bool) {
	if !s.onAlt {
		return
	}
	s.onAlt = false
	if restoreCursor && s.hasSaved {
		s.cursor.Restore(s.savedCursor)
		s.hasSaved = false
	}
}

// Resize reallocates both buffers and migrates the margin box; queued ops
// referencing rows/cols beyond the new size are dropped by the flusher
// (spec §4.4 "Resize ops ... queued cell ops for rows/cols that no longer
// exist are dropped").
func (s *Session) Resize(rows, cols int) {
	s.primary.Resize(rows, cols)
	s.alternate.Resize(rows, cols)
	s.margins = DefaultMarginBox(rows, cols)
	s.cursor.Row = clamp(s.cursor.Row, 0, rows-1)
	s.cursor.Col = clamp(s.cursor.Col, 0, cols-1)
	s.dirty = Rect{}
}

// Reset restores modes, margins, tab stops, SGR, and graphics overlays to
// this session's conformance-level defaults (RIS / DECSTR semantics, §4.3).
// Idempotent per the spec §8 "Idempotence" invariant: applying it twice
// leaves the same state as applying it once.
func (s *Session) Reset() {
	s.profile = profileFor(s.level)
	s.modes = s.profile.DefaultModes
	s.margins = DefaultMarginBox(s.Rows(), s.Cols())
	s.cursor = NewCursor()
	s.hasSaved = false
	s.sgrStack = sgrStack{}
	s.primary.ResetTabStopsDefault()
	s.alternate.ResetTabStopsDefault()
	s.sixel = newSixelState()
	s.kitty = newKittyState()
	s.softFont = newSoftFontState(s.Rows())
	s.gatewayRegisSession = -1
	s.gatewayTektronixSession = -1
	s.gatewayKittySession = -1
	s.gatewaySixelSession = -1
}

// SetLevel changes conformance level, refreshing the default-mode profile
// without disturbing current screen contents or cursor position.
func (s *Session) SetLevel(level ConformanceLevel) {
	s.level = level
	s.profile = profileFor(level)
}

func (s *Session) Level() ConformanceLevel      { return s.level }
func (s *Session) Profile() conformanceProfile  { return s.profile }
func (s *Session) Modes() *ModeRegister         { return &s.modes }

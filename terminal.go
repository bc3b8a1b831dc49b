package kterm

import "sync"

const (
	DefaultRows     = 24
	DefaultCols     = 80
	kMaxSessions    = 4
)

// Config holds the construction-time parameters for a Terminal, assembled
// via the functional-options pattern (spec §6.3 "create(config) -> Terminal").
type Config struct {
	Rows, Cols    int
	Level         ConformanceLevel
	SessionCount  int
	Scrollback    int
	Bell          BellProvider
	Title         TitleProvider
	APC           APCProvider
	PM            PMProvider
	SOS           SOSProvider
	Clipboard     ClipboardProvider
	Recording     RecordingProvider
	Diagnostics   DiagnosticsProvider
	Size          SizeProvider
	GatewayFn     func(payload string)
	Answerback    string
}

// Option configures a Terminal at construction time.
type Option func(*Config)

func WithSize(rows, cols int) Option { return func(c *Config) { c.Rows, c.Cols = rows, cols } }
func WithLevel(level ConformanceLevel) Option { return func(c *Config) { c.Level = level } }
func WithSessionCount(n int) Option { return func(c *Config) { c.SessionCount = n } }
func WithScrollback(lines int) Option { return func(c *Config) { c.Scrollback = lines } }
func WithBell(p BellProvider) Option { return func(c *Config) { c.Bell = p } }
func WithTitle(p TitleProvider) Option { return func(c *Config) { c.Title = p } }
func WithAPC(p APCProvider) Option { return func(c *Config) { c.APC = p } }
func WithPM(p PMProvider) Option { return func(c *Config) { c.PM = p } }
func WithSOS(p SOSProvider) Option { return func(c *Config) { c.SOS = p } }
func WithClipboard(p ClipboardProvider) Option { return func(c *Config) { c.Clipboard = p } }
func WithRecording(p RecordingProvider) Option { return func(c *Config) { c.Recording = p } }
func WithDiagnostics(p DiagnosticsProvider) Option { return func(c *Config) { c.Diagnostics = p } }
func WithSizeProvider(p SizeProvider) Option { return func(c *Config) { c.Size = p } }
func WithGatewayCallback(fn func(payload string)) Option { return func(c *Config) { c.GatewayFn = fn } }
func WithAnswerback(s string) Option { return func(c *Config) { c.Answerback = s } }

func defaultConfig() Config {
	return Config{
		Rows: DefaultRows, Cols: DefaultCols,
		Level:        ConformanceVT220,
		SessionCount: 1,
		Bell:         NoopBell{}, Title: NoopTitle{},
		APC: NoopAPC{}, PM: NoopPM{}, SOS: NoopSOS{},
		Clipboard: NoopClipboard{}, Recording: NoopRecording{},
		Diagnostics: NoopDiagnostics{}, Size: NoopSizeProvider{},
	}
}

// Terminal owns a small, fixed-bound array of Session values sharing one
// Palette and an active-session index (spec §3 "Session", §9 "Model as an
// explicit Terminal value owning a small vector of Session values"). All
// operations are safe for concurrent use by one producer and one consumer
// goroutine via internal locking, matching the teacher's Terminal (terminal.go).
type Terminal struct {
	mu sync.RWMutex

	sessions      [kMaxSessions]*Session
	sessionCount  int
	activeSession int

	palette Palette

	gateway     GatewayState
	gatewayFn   func(payload string)
	diagnostics DiagnosticsProvider

	bell      BellProvider
	title     TitleProvider
	apc       APCProvider
	pm        PMProvider
	sos       SOSProvider
	clipboard ClipboardProvider
	recording  RecordingProvider
	size       SizeProvider
	answerback string

	parsers [kMaxSessions]*Parser
}

// NewTerminal constructs a Terminal per opts, defaulting to one VT220
// session sized 80x24 (spec §6.3 "create(config) -> Terminal").
func NewTerminal(opts ...Option) *Terminal {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.SessionCount <= 0 {
		cfg.SessionCount = 1
	}
	if cfg.SessionCount > kMaxSessions {
		cfg.SessionCount = kMaxSessions
	}

	t := &Terminal{
		sessionCount: cfg.SessionCount,
		palette:      DefaultPalette,
		gateway:      NewGatewayState(),
		gatewayFn:    cfg.GatewayFn,
		diagnostics:  cfg.Diagnostics,
		bell:         cfg.Bell, title: cfg.Title,
		apc: cfg.APC, pm: cfg.PM, sos: cfg.SOS,
		clipboard: cfg.Clipboard, recording: cfg.Recording,
		size: cfg.Size, answerback: cfg.Answerback,
	}
	if t.diagnostics == nil {
		t.diagnostics = NoopDiagnostics{}
	}

	var sb ScrollbackProvider = NoopScrollback{}
	for i := 0; i < cfg.SessionCount; i++ {
		t.sessions[i] = NewSession(i, cfg.Rows, cfg.Cols, cfg.Level, sb)
		if cfg.Scrollback > 0 {
			t.sessions[i].primary.SetMaxScrollback(cfg.Scrollback)
		}
		if t.sessions[i].profile.ForceCGA {
			t.palette = CGAPalette
		}
		t.parsers[i] = NewParser()
	}
	return t
}

// Destroy releases a Terminal's resources. The core performs no external
// I/O and holds no OS handles, so this is a no-op retained for API symmetry
// with spec §6.3 "destroy(Terminal)".
func (t *Terminal) Destroy() {}

func (t *Terminal) session(index int) *Session {
	if index < 0 || index >= t.sessionCount {
		return nil
	}
	return t.sessions[index]
}

// ActiveSession returns the session currently receiving printable text.
func (t *Terminal) ActiveSession() *Session {
	return t.session(t.activeSession)
}

// SetActiveSession switches which session receives Write/PushInputEvent calls.
func (t *Terminal) SetActiveSession(index int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if index < 0 || index >= t.sessionCount {
		return false
	}
	t.activeSession = index
	return true
}

// Write pushes bytes into the active session's input pipeline (spec §6.3 "write(bytes)").
func (t *Terminal) Write(data []byte) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.ActiveSession()
	if s == nil {
		return 0
	}
	if t.recording != nil {
		t.recording.Record(data)
	}
	n := s.pipeline.Push(data)
	if sig := s.pipeline.BackpressureSignal(); sig != 0 && s.modes.Has(ModeDECXRLM) {
		s.response.Queue([]byte{sig})
	}
	return n
}

// PushInputEvent encodes ev per the active session's modes and pushes the
// resulting bytes into that session's pipeline (spec §6.3 "push_input_event(event)").
func (t *Terminal) PushInputEvent(ev InputEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.ActiveSession()
	if s == nil {
		return
	}
	s.input.Push(ev)
	if encoded := EncodeEvent(ev, s.modes); encoded != nil {
		s.pipeline.Push(encoded)
	}
}

// Update drains each session's pipeline through its parser, enqueuing
// operations onto that session's OpQueue (spec §6.3 "update()").
func (t *Terminal) Update() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := 0; i < t.sessionCount; i++ {
		s := t.sessions[i]
		p := t.parsers[i]
		const chunk = 4096
		for {
			data := s.pipeline.Drain(chunk)
			if len(data) == 0 {
				break
			}
			p.Advance(t, s, data)
			s.pipeline.Advance(len(data))
		}
	}
}

// FlushOps applies session's queued operations to its active screen buffer,
// widening its dirty rectangle (spec §6.3 "flush_ops(session)").
func (t *Terminal) FlushOps(session int) Rect {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.session(session)
	if s == nil {
		return Rect{}
	}
	r := s.ops.Flush(s.ActiveBuffer())
	s.dirty = s.dirty.Union(r)
	return s.dirty
}

// DirtyRect returns and resets a session's accumulated dirty rectangle.
func (t *Terminal) DirtyRect(session int) Rect {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.session(session)
	if s == nil {
		return Rect{}
	}
	r := s.dirty
	s.dirty = Rect{}
	s.ActiveBuffer().ClearAllDirty()
	return r
}

// DrainResponse returns and clears a session's buffered-mode response bytes
// (spec §6.3 "drain_response(session) -> bytes").
func (t *Terminal) DrainResponse(session int) []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.session(session)
	if s == nil {
		return nil
	}
	return s.response.Drain()
}

// SetOutputSink switches a session to streaming response mode (spec §6.3
// "set_output_sink(fn, ctx)"; ctx is the Go closure's captured state).
func (t *Terminal) SetOutputSink(session int, fn func(data []byte)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s := t.session(session); s != nil {
		s.response.SetOutputSink(fn)
	}
}

// Resize changes every session's grid to rows x cols (spec §6.3 "resize(cols, rows)").
func (t *Terminal) Resize(rows, cols int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := 0; i < t.sessionCount; i++ {
		t.sessions[i].Resize(rows, cols)
	}
}

// SetLevel changes one session's conformance level (spec §6.3 "set_level(session, level)").
func (t *Terminal) SetLevel(session int, level ConformanceLevel) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s := t.session(session); s != nil {
		s.SetLevel(level)
		if s.profile.ForceCGA {
			t.palette = CGAPalette
		}
	}
}

// SetFont is a host-adapter hint; the core has no font rasterizer (spec §1
// Non-goals), so this only records the soft-font Dscs name for reporting.
func (t *Terminal) SetFont(session int, name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s := t.session(session); s != nil {
		s.softFont.Dscs = name
	}
}

// SetGatewayCallback installs the handler invoked for Gateway messages
// whose class is not "KTERM" (spec §6.3 "set_gateway_callback(fn)").
func (t *Terminal) SetGatewayCallback(fn func(payload string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gatewayFn = fn
}

// Query exposes read-only screen inspection for tests (spec §6.3 "query(...)").
func (t *Terminal) Query(session int) (cursorRow, cursorCol int, level ConformanceLevel, ok bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s := t.session(session)
	if s == nil {
		return 0, 0, 0, false
	}
	return s.cursor.Row, s.cursor.Col, s.level, true
}

// SetSelection activates session's text selection, in reading order.
func (t *Terminal) SetSelection(session int, start, end Position) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s := t.session(session); s != nil {
		s.SetSelection(start, end)
	}
}

// ClearSelection deactivates session's text selection.
func (t *Terminal) ClearSelection(session int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s := t.session(session); s != nil {
		s.ClearSelection()
	}
}

// CopySelection returns session's active selection as raw UTF-8 bytes,
// ready to forward to a host clipboard (spec §8 scenario 8).
func (t *Terminal) CopySelection(session int) []byte {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if s := t.session(session); s != nil {
		return s.CopySelection()
	}
	return nil
}

// Cell is a read-only accessor for tests (spec §6.3 "query(...) for
// read-only screen inspection used by tests").
func (t *Terminal) Cell(session, row, col int) (Cell, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s := t.session(session)
	if s == nil {
		return Cell{}, false
	}
	c := s.ActiveBuffer().Cell(row, col)
	if c == nil {
		return Cell{}, false
	}
	return *c, true
}

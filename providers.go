package kterm

// --- Bell Provider ---

// BellProvider handles bell/beep events triggered by BEL (0x07).
type BellProvider interface {
	Ring()
}

type NoopBell struct{}

func (NoopBell) Ring() {}

// --- Title Provider ---

// TitleProvider handles window title changes (OSC 0, 1, 2).
type TitleProvider interface {
	SetTitle(title string)
	PushTitle()
	PopTitle()
}

type NoopTitle struct{}

func (NoopTitle) SetTitle(title string) {}
func (NoopTitle) PushTitle()            {}
func (NoopTitle) PopTitle()             {}

// --- APC / PM / SOS Providers ---
//
// These deliver the raw payload of Application Program Command, Privacy
// Message, and Start-of-String sequences verbatim, matching the teacher's
// APCProvider/PMProvider/SOSProvider passthrough pattern (providers.go).
// Kitty graphics (§4.6) rides the APC channel: an APC string starting with
// 'G' goes to Kitty, any other APC string to the APCProvider, and PM and SOS
// strings to their own providers. Gateway payloads of a class other than
// "KTERM" do not come here; they go to the Gateway callback.

type APCProvider interface{ Receive(data []byte) }
type PMProvider interface{ Receive(data []byte) }
type SOSProvider interface{ Receive(data []byte) }

type NoopAPC struct{}
type NoopPM struct{}
type NoopSOS struct{}

func (NoopAPC) Receive(data []byte) {}
func (NoopPM) Receive(data []byte)  {}
func (NoopSOS) Receive(data []byte) {}

// --- Clipboard Provider ---

// ClipboardProvider handles OSC 52 clipboard read/write.
type ClipboardProvider interface {
	Read(clipboard byte) string
	Write(clipboard byte, data []byte)
}

type NoopClipboard struct{}

func (NoopClipboard) Read(clipboard byte) string        { return "" }
func (NoopClipboard) Write(clipboard byte, data []byte) {}

// --- Scrollback Provider ---

// ScrollbackProvider stores lines scrolled off the top of the primary
// buffer (spec §4.5 "Scrollback": a fixed-capacity ring).
type ScrollbackProvider interface {
	Push(line []Cell)
	Len() int
	Line(index int) []Cell
	Clear()
	SetMaxLines(max int)
	MaxLines() int
}

type NoopScrollback struct{}

func (NoopScrollback) Push(line []Cell)      {}
func (NoopScrollback) Len() int              { return 0 }
func (NoopScrollback) Line(index int) []Cell { return nil }
func (NoopScrollback) Clear()                {}
func (NoopScrollback) SetMaxLines(max int)   {}
func (NoopScrollback) MaxLines() int         { return 0 }

// --- Recording Provider ---

// RecordingProvider captures raw input bytes before parsing, for replay/debugging.
type RecordingProvider interface {
	Record(data []byte)
	Data() []byte
	Clear()
}

type NoopRecording struct{}

func (NoopRecording) Record([]byte) {}
func (NoopRecording) Data() []byte  { return nil }
func (NoopRecording) Clear()        {}

// --- Diagnostics Provider ---

// DiagnosticsProvider receives structured warnings: unknown Gateway
// commands and keys, unsupported DEC private modes, and Kitty memory-budget
// denials. Pipeline and response-buffer overflow are not reported here;
// dropped bytes are only counted.
// Grounded on the same no-op-by-default provider shape as Bell/Title/APC
// rather than a logging library, since the teacher pulls in no logging
// dependency and the core must stay host-agnostic about where diagnostics
// are surfaced.
type DiagnosticsProvider interface {
	Warn(session int, code string, detail string)
}

type NoopDiagnostics struct{}

func (NoopDiagnostics) Warn(session int, code, detail string) {}

// --- Size Provider ---

// SizeProvider answers pixel-level geometry queries (cell size in pixels)
// for the soft-font glyph-metric cache (§3 Graphics state → Soft font).
type SizeProvider interface {
	CellSizePixels() (width, height int)
}

type NoopSizeProvider struct{}

func (NoopSizeProvider) CellSizePixels() (int, int) { return 0, 0 }

var (
	_ BellProvider        = NoopBell{}
	_ TitleProvider        = NoopTitle{}
	_ APCProvider          = NoopAPC{}
	_ PMProvider           = NoopPM{}
	_ SOSProvider          = NoopSOS{}
	_ ClipboardProvider    = NoopClipboard{}
	_ ScrollbackProvider   = NoopScrollback{}
	_ RecordingProvider    = NoopRecording{}
	_ DiagnosticsProvider  = NoopDiagnostics{}
	_ SizeProvider         = NoopSizeProvider{}
)

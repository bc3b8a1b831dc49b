// Package kterm provides a headless, embeddable VT/xterm-compatible
// terminal emulator core.
//
// This package emulates the state of a terminal without any display or I/O
// of its own, making it ideal for:
//   - Building terminal multiplexers, recorders, and web-based terminals
//   - Testing terminal applications without a real PTY
//   - Driving multiple independent terminal sessions (e.g. tmux-style panes)
//     from one process
//
// # Quick Start
//
// Create a terminal and write escape sequences to it:
//
//	term := kterm.NewTerminal(kterm.WithSize(24, 80))
//	term.Write([]byte("\x1b[31mHello \x1b[32mWorld\x1b[0m!"))
//	term.Update()
//	term.FlushOps(0)
//	cell, _ := term.Cell(0, 0, 0)
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [Terminal]: owns up to four [Session] values sharing one [Palette]
//   - [Session]: one screen's cursor, margins, modes, and pair of [Buffer]s
//     (primary and alternate)
//   - [Parser]: a per-session wrapper around go-vte's state machine, adding
//     the VT52 sub-mode and APC/PM/SOS string collection (there is no
//     separate ANSI.SYS grammar)
//   - [Buffer]: a 2D grid of [Cell] values with scrollback
//   - [OpQueue]: the deferred write queue a session's buffer mutations pass
//     through before becoming visible, so protected-cell and dirty-rect
//     bookkeeping happen once at flush time rather than on every write
//
// # Terminal lifecycle
//
// Terminal is the main entry point, constructed with the functional-options
// pattern:
//
//	term := kterm.NewTerminal(
//	    kterm.WithSize(24, 80),
//	    kterm.WithLevel(kterm.ConformanceVT220),
//	    kterm.WithSessionCount(2),
//	    kterm.WithScrollback(1000),
//	    kterm.WithBell(myBellProvider),
//	    kterm.WithGatewayCallback(myGatewayHandler),
//	)
//
// A host drives a session in four steps, matching the pipeline->parser->
// opqueue->buffer separation described in the package design:
//
//	term.Write(bytesFromPTY)      // push raw bytes into the input pipeline
//	term.Update()                 // parse pending bytes into queued operations
//	rect := term.FlushOps(0)      // apply queued operations, widen dirty rect
//	out := term.DrainResponse(0)  // bytes the session wants written back (e.g. DA/DSR replies)
//
// Write and PushInputEvent are safe to call from a producer goroutine while
// Update/FlushOps run on a consumer goroutine; Terminal serializes access
// internally.
//
// # Providers
//
// Side effects the core cannot perform itself (ringing a bell, setting a
// window title, reading/writing a clipboard, persisting scrollback) are
// delegated to small provider interfaces supplied via options
// ([BellProvider], [TitleProvider], [ClipboardProvider], [APCProvider],
// [PMProvider], [SOSProvider], [RecordingProvider], [DiagnosticsProvider],
// [SizeProvider]). [ScrollbackProvider] has no option; it is installed on a
// buffer with [Buffer.SetScrollbackProvider]. Every
// provider defaults to a no-op implementation, so a host only needs to
// supply the ones it cares about.
//
// # Conformance levels
//
// A session's [ConformanceLevel] (VT52 through VT525, XTERM, or ANSI.SYS)
// gates which escape sequences and modes are recognized; [Terminal.SetLevel]
// changes it at runtime. Switching into VT52 does not reset the parser mid
// stream — the next byte is simply interpreted under VT52 grammar instead
// of ANSI/CSI grammar.
//
// # Gateway protocol
//
// A DCS-wrapped control channel (`GATE;Class;Id;Command;Params`) lets an
// embedding host extend the terminal without inventing a new escape
// sequence: messages whose class is "KTERM" are handled internally (e.g.
// SET;LEVEL to change conformance at runtime); everything else is forwarded
// to the callback installed via [WithGatewayCallback] or
// [Terminal.SetGatewayCallback].
//
// # Graphics
//
// Sixel and Kitty graphics payloads are parsed and accumulated
// ([SixelState], [KittyState]) but never rasterized to pixels — turning
// parsed strips/frames into an image is left to the host's render adapter.
//
// # Selection
//
// [Terminal.SetSelection] marks a reading-order text region on one
// session's active buffer; [Terminal.CopySelection] extracts it as raw
// UTF-8 bytes ready to hand to a host clipboard.
package kterm

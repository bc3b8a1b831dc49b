package kterm

import "strconv"

// oscDispatch handles OSC Ps ; Pt sequences. Only a handful of numbers are
// core-owned (title, clipboard, hyperlink); everything else is ignored
// without aborting the sequence (spec §4.3 references OSC only indirectly
// via "a small set of OSC number dispatches").
func oscDispatch(t *Terminal, s *Session, params [][]byte, bellTerminated bool) {
	if len(params) == 0 {
		return
	}
	n, err := strconv.Atoi(string(params[0]))
	if err != nil {
		return
	}
	switch n {
	case 0, 2:
		if len(params) > 1 {
			t.title.SetTitle(string(params[1]))
		}
	case 1:
		if len(params) > 1 {
			t.title.SetTitle(string(params[1])) // icon name; no separate core slot
		}
	case 8:
		oscHyperlink(s, params)
	case 52:
		oscClipboard(t, s, params)
	case 112:
		// OSC 112: reset text cursor color; no core-owned palette slot beyond DefaultForeground/Background.
	}
}

func oscHyperlink(s *Session, params [][]byte) {
	if len(params) < 3 {
		s.cursor.Template.Cell.Hyperlink = nil
		return
	}
	uri := string(params[2])
	if uri == "" {
		s.cursor.Template.Cell.Hyperlink = nil
		return
	}
	id := ""
	for _, kv := range splitBytes(params[1], ':') {
		if len(kv) > 3 && string(kv[:3]) == "id=" {
			id = string(kv[3:])
		}
	}
	s.cursor.Template.Cell.Hyperlink = &Hyperlink{ID: id, URI: uri}
}

// oscClipboard implements OSC 52: `Pc;Pd` where Pc selects the clipboard
// buffer (c, p, q, s, 0-7) and Pd is base64 data, or `?` to request a read.
func oscClipboard(t *Terminal, s *Session, params [][]byte) {
	if len(params) < 2 {
		return
	}
	selector := byte('c')
	if len(params[0]) > 0 {
		selector = params[0][0]
	}
	if string(params[1]) == "?" {
		data := t.clipboard.Read(selector)
		queueReply(s, "\x1b]52;" + string(selector) + ";" + encodeBase64(data) + "\x07")
		return
	}
	decoded := decodeBase64(string(params[1]))
	t.clipboard.Write(selector, decoded)
}

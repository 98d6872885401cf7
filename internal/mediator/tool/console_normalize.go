package tool

import "strings"

// interpretEscapes expands the closed set of backslash escapes the
// console line discipline recognizes: \n \r \t \x1b \r\n.
// Anything else is passed through literally.
func interpretEscapes(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		switch {
		case strings.HasPrefix(s[i:], `\r\n`):
			b.WriteString("\r\n")
			i += 3
		case strings.HasPrefix(s[i:], `\x1b`):
			b.WriteByte(0x1b)
			i += 3
		case s[i+1] == 'n':
			b.WriteByte('\n')
			i++
		case s[i+1] == 'r':
			b.WriteByte('\r')
			i++
		case s[i+1] == 't':
			b.WriteByte('\t')
			i++
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// toCRLF converts every lone LF or lone CR into CRLF, leaving existing
// CRLF pairs untouched. This is the only line-ending normalization
// applied to outbound console data; the multiplexer never touches it.
func toCRLF(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				b.WriteString("\r\n")
				i++
				continue
			}
			b.WriteString("\r\n")
		case '\n':
			b.WriteString("\r\n")
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// normalizeOutbound applies escape interpretation (unless raw) then
// CRLF normalization, producing the exact bytes written to a console
// session.
func normalizeOutbound(data string, raw bool) []byte {
	if !raw {
		data = interpretEscapes(data)
	}
	return []byte(toCRLF(data))
}

// keystrokes maps the closed key-name vocabulary send_keystroke accepts
// to the literal bytes a terminal would emit.
var keystrokes = map[string]string{
	"up":       "\x1b[A",
	"down":     "\x1b[B",
	"right":    "\x1b[C",
	"left":     "\x1b[D",
	"home":     "\x1b[H",
	"end":      "\x1b[F",
	"pageup":   "\x1b[5~",
	"pagedown": "\x1b[6~",

	"enter":     "\r\n",
	"backspace": "\x7f",
	"delete":    "\x1b[3~",
	"tab":       "\t",
	"esc":       "\x1b",

	"ctrl_c": "\x03",
	"ctrl_d": "\x04",
	"ctrl_z": "\x1a",
	"ctrl_a": "\x01",
	"ctrl_e": "\x05",

	"f1":  "\x1bOP",
	"f2":  "\x1bOQ",
	"f3":  "\x1bOR",
	"f4":  "\x1bOS",
	"f5":  "\x1b[15~",
	"f6":  "\x1b[17~",
	"f7":  "\x1b[18~",
	"f8":  "\x1b[19~",
	"f9":  "\x1b[20~",
	"f10": "\x1b[21~",
	"f11": "\x1b[23~",
	"f12": "\x1b[24~",
}

package console

import "regexp"

// ansiPattern matches the CSI and simple-ESC sequence family: ESC followed
// by a single "simple" final byte in [@-Z\-_], or ESC [ then parameter and
// intermediate bytes then a final byte in [@-~].
var ansiPattern = regexp.MustCompile("\x1b(?:[@-Z\\\\-_]|\\[[0-?]*[ -/]*[@-~])")

// threeOrMoreLF collapses runs of three-or-more LFs to exactly two.
var threeOrMoreLF = regexp.MustCompile("\n{3,}")

// stripANSI applies the normalization pipeline console reads use: strip
// ANSI escapes, fold CRLF/CR to LF, then collapse long blank runs. Raw
// bytes in the buffer are never mutated; this only applies at read time.
func stripANSI(raw []byte) string {
	s := ansiPattern.ReplaceAllString(string(raw), "")
	s = crlfPattern.ReplaceAllString(s, "\n")
	s = loneCRPattern.ReplaceAllString(s, "\n")
	s = threeOrMoreLF.ReplaceAllString(s, "\n\n")
	return s
}

var (
	crlfPattern   = regexp.MustCompile("\r\n")
	loneCRPattern = regexp.MustCompile("\r")
)

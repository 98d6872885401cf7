package console

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripANSI_RemovesCSIAndSimpleEscapes(t *testing.T) {
	raw := []byte("\x1b[31mred\x1b[0m text\x1bM done")
	got := stripANSI(raw)
	assert.NotContains(t, got, "\x1b")
	assert.Contains(t, got, "red")
	assert.Contains(t, got, "text")
	assert.Contains(t, got, "done")
}

func TestStripANSI_FoldsCRLFAndLoneCR(t *testing.T) {
	raw := []byte("line1\r\nline2\rline3")
	got := stripANSI(raw)
	assert.False(t, strings.Contains(got, "\r"))
	assert.Equal(t, "line1\nline2\nline3", got)
}

func TestStripANSI_CollapsesLongBlankRuns(t *testing.T) {
	raw := []byte("a\n\n\n\n\nb")
	got := stripANSI(raw)
	assert.Equal(t, "a\n\nb", got)
}

func TestStripANSI_PreservesShortBlankRuns(t *testing.T) {
	raw := []byte("a\n\nb")
	got := stripANSI(raw)
	assert.Equal(t, "a\n\nb", got)
}

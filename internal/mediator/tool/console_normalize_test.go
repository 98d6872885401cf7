package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpretEscapes(t *testing.T) {
	assert.Equal(t, "a\nb", interpretEscapes(`a\nb`))
	assert.Equal(t, "a\r\nb", interpretEscapes(`a\r\nb`))
	assert.Equal(t, "a\x1bb", interpretEscapes(`a\x1bb`))
	assert.Equal(t, "a\\qb", interpretEscapes(`a\qb`))
}

func TestToCRLF_NormalizesLoneLineEndings(t *testing.T) {
	assert.Equal(t, "a\r\nb\r\nc", toCRLF("a\nb\rc"))
	assert.Equal(t, "a\r\nb", toCRLF("a\r\nb"))
}

func TestNormalizeOutbound_RawSkipsEscapeInterpretation(t *testing.T) {
	assert.Equal(t, []byte(`a\nb`), normalizeOutbound(`a\nb`, true))
	assert.Equal(t, []byte("a\r\nb"), normalizeOutbound(`a\nb`, false))
}

func TestKeystrokes_CoverTheDocumentedVocabulary(t *testing.T) {
	names := []string{
		"up", "down", "left", "right", "home", "end", "pageup", "pagedown",
		"enter", "backspace", "delete", "tab", "esc",
		"ctrl_c", "ctrl_d", "ctrl_z", "ctrl_a", "ctrl_e",
		"f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8", "f9", "f10", "f11", "f12",
	}
	for _, name := range names {
		seq, ok := keystrokes[name]
		assert.True(t, ok, "missing keystroke %q", name)
		assert.NotEmpty(t, seq)
	}
}

func TestKeystrokes_NoFabricatedEntries(t *testing.T) {
	_, ok := keystrokes["ctrl_x"]
	assert.False(t, ok, "ctrl_x is not part of the documented vocabulary")
}

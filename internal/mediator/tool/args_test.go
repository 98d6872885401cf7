package tool

import (
	"testing"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/errorx"
	"github.com/stretchr/testify/assert"
)

func TestRequireString(t *testing.T) {
	args := map[string]interface{}{"name": "R1", "blank": "", "num": 3.0}

	v, rec := requireString(args, "name")
	assert.Nil(t, rec)
	assert.Equal(t, "R1", v)

	_, rec = requireString(args, "missing")
	assert.Equal(t, errorx.MissingParameter, rec.ErrorCode)

	_, rec = requireString(args, "blank")
	assert.Equal(t, errorx.InvalidParameter, rec.ErrorCode)

	_, rec = requireString(args, "num")
	assert.Equal(t, errorx.InvalidParameter, rec.ErrorCode)
}

func TestGetString_DefaultsWhenAbsentOrWrongType(t *testing.T) {
	args := map[string]interface{}{"name": "R1", "num": 3.0}
	assert.Equal(t, "R1", getString(args, "name", "fallback"))
	assert.Equal(t, "fallback", getString(args, "missing", "fallback"))
	assert.Equal(t, "fallback", getString(args, "num", "fallback"))
}

func TestGetFloatAndGetInt_CoerceStringsAndInts(t *testing.T) {
	args := map[string]interface{}{"f": 2.5, "i": 4, "s": "7", "bad": "nope"}
	assert.Equal(t, 2.5, getFloat(args, "f", 0))
	assert.Equal(t, 4.0, getFloat(args, "i", 0))
	assert.Equal(t, 7.0, getFloat(args, "s", 0))
	assert.Equal(t, 9.0, getFloat(args, "missing", 9))
	assert.Equal(t, 0.0, getFloat(args, "bad", 0))

	assert.Equal(t, 4, getInt(args, "i", 0))
	assert.Equal(t, 7, getInt(args, "s", 0))
}

func TestAsMapAndAsSlice(t *testing.T) {
	m, ok := asMap(map[string]interface{}{"a": 1})
	assert.True(t, ok)
	assert.Equal(t, 1, m["a"])

	_, ok = asMap("not a map")
	assert.False(t, ok)

	s, ok := asSlice([]interface{}{1, 2})
	assert.True(t, ok)
	assert.Len(t, s, 2)
}

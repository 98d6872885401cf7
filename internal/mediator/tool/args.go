// Package tool is the Tool Handlers component: one handler
// per agent-visible operation, wrapping the emulator client, console
// multiplexer, and link validator/executor behind a canonical
// success/ErrorRecord envelope, dispatched through a table of
// {name -> handler} entries.
package tool

import (
	"fmt"
	"strconv"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/errorx"
)

func missingParam(name string) *errorx.Record {
	return errorx.Newf(errorx.MissingParameter, fmt.Sprintf("missing required parameter %q", name)).
		WithSuggestion(fmt.Sprintf("supply %q in the tool arguments", name))
}

func invalidParam(name, reason string) *errorx.Record {
	return errorx.Newf(errorx.InvalidParameter, fmt.Sprintf("invalid parameter %q: %s", name, reason))
}

func requireString(args map[string]interface{}, name string) (string, *errorx.Record) {
	v, ok := args[name]
	if !ok {
		return "", missingParam(name)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", invalidParam(name, "must be a non-empty string")
	}
	return s, nil
}

func getString(args map[string]interface{}, name, def string) string {
	if v, ok := args[name].(string); ok {
		return v
	}
	return def
}

func getOptionalString(args map[string]interface{}, name string) (string, bool) {
	v, ok := args[name].(string)
	return v, ok
}

func getBool(args map[string]interface{}, name string, def bool) bool {
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}

func getFloat(args map[string]interface{}, name string, def float64) float64 {
	switch v := args[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getInt(args map[string]interface{}, name string, def int) int {
	return int(getFloat(args, name, float64(def)))
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asInt(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(n)
		return i
	}
	return 0
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	m, ok := v.(map[string]interface{})
	return m, ok
}

func asSlice(v interface{}) ([]interface{}, bool) {
	s, ok := v.([]interface{})
	return s, ok
}

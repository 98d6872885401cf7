package tool

import (
	"context"
	"sort"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/app"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/errorx"
)

// Handler implements one agent-visible operation. It returns either a
// JSON-serializable success value or a Record, never both (set_connection
// is the one structural exception, encoding its own completed/failed split
// inside the success value).
type Handler func(ctx context.Context, deps *app.Context, args map[string]interface{}) (interface{}, *errorx.Record)

// Spec names and documents one tool for the transport layer's catalogue.
type Spec struct {
	Name        string
	Description string
	Handler     Handler
}

var registry = map[string]Spec{}

func register(spec Spec) {
	registry[spec.Name] = spec
}

// Get looks up a tool by name.
func Get(name string) (Spec, bool) {
	s, ok := registry[name]
	return s, ok
}

// All returns every registered tool, sorted by name, for catalogue
// enumeration at transport startup.
func All() []Spec {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)

	specs := make([]Spec, 0, len(names))
	for _, n := range names {
		specs = append(specs, registry[n])
	}
	return specs
}

// Dispatch runs the named tool, or returns a structured error if it is
// unknown — the agent-facing surface is always an envelope, never a Go
// panic or an unhandled "tool not found".
func Dispatch(ctx context.Context, deps *app.Context, name string, args map[string]interface{}) (interface{}, *errorx.Record) {
	spec, ok := Get(name)
	if !ok {
		return nil, errorx.Newf(errorx.InvalidParameter, "unknown tool "+name).
			WithSuggestion("call query_resource(\"templates://\") style catalogue discovery or check the tool name spelling")
	}
	return spec.Handler(ctx, deps, args)
}

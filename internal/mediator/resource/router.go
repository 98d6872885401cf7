// Package resource is a read-only GET-style view over emulator and
// session state, dispatched by URI scheme and path through an explicit
// Go switch per scheme.
package resource

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/app"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/errorx"
)

var supportedPatterns = []string{
	"projects://", "projects://{pid}", "projects://{pid}/nodes/", "projects://{pid}/nodes/{nid}",
	"projects://{pid}/nodes/{nid}/template", "projects://{pid}/links/", "projects://{pid}/drawings/",
	"projects://{pid}/snapshots/", "projects://{pid}/readme", "projects://{pid}/topology",
	"templates://", "templates://{tid}",
	"sessions://console[/{node}]", "sessions://ssh[/{node}[/history|/buffer]]", "sessions://audit",
	"proxies://[{proxy_id}]",
}

// Query dispatches a resource URI to its read-only handler. Unknown
// schemes or path shapes produce an error enumerating the supported
// patterns.
func Query(ctx context.Context, deps *app.Context, rawURI string) (interface{}, *errorx.Record) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return nil, unsupportedURI(rawURI)
	}
	segs := splitPath(u.Path)

	switch u.Scheme {
	case "projects":
		return routeProjects(ctx, deps, u.Host, segs)
	case "templates":
		return routeTemplates(ctx, deps, u.Host, segs)
	case "sessions":
		return routeSessions(ctx, deps, u.Host, segs)
	case "proxies":
		return routeProxies(ctx, deps, u.Host, segs)
	default:
		return nil, unsupportedURI(rawURI)
	}
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func unsupportedURI(raw string) *errorx.Record {
	return errorx.Newf(errorx.InvalidParameter, fmt.Sprintf("unsupported resource uri %q", raw)).
		WithSuggestion("see the supported resource uri patterns").
		WithContext(map[string]interface{}{"patterns": supportedPatterns})
}

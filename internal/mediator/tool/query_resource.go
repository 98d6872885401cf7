package tool

import (
	"context"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/app"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/errorx"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/resource"
)

func init() {
	register(Spec{Name: "query_resource", Description: "Read one of the projects://, templates://, sessions://, or proxies:// resource URIs.", Handler: handleQueryResource})
}

func handleQueryResource(ctx context.Context, deps *app.Context, args map[string]interface{}) (interface{}, *errorx.Record) {
	uri, rec := requireString(args, "uri")
	if rec != nil {
		return nil, rec
	}
	return resource.Query(ctx, deps, uri)
}

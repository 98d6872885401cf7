package resource

import (
	"context"
	"fmt"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/app"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/errorx"
)

func routeProxies(ctx context.Context, deps *app.Context, proxyID string, segs []string) (interface{}, *errorx.Record) {
	registry, err := deps.SSHProxy.Registry(ctx)
	if err != nil {
		return nil, errorx.FromAny(err)
	}
	if proxyID == "" {
		return registry, nil
	}

	for _, entry := range registry {
		if fmt.Sprint(entry["id"]) == proxyID {
			return entry, nil
		}
	}
	return nil, errorx.New(errorx.InvalidParameter).WithDetails(fmt.Sprintf("no proxy registered with id %q", proxyID))
}

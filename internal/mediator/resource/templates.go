package resource

import (
	"context"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/app"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/errorx"
)

func routeTemplates(ctx context.Context, deps *app.Context, tid string, segs []string) (interface{}, *errorx.Record) {
	if tid == "" {
		templates, err := deps.Emulator.GetTemplates(ctx)
		if err != nil {
			return nil, errorx.FromAny(err)
		}
		return templates, nil
	}

	template, err := deps.Emulator.GetTemplate(ctx, tid)
	if err != nil {
		return nil, errorx.FromAny(err)
	}
	return template, nil
}

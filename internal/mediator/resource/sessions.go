package resource

import (
	"context"
	"fmt"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/app"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/errorx"
)

func routeSessions(ctx context.Context, deps *app.Context, kind string, segs []string) (interface{}, *errorx.Record) {
	switch kind {
	case "console":
		return routeConsoleSessions(deps, segs)
	case "ssh":
		return routeSSHSessions(ctx, deps, segs)
	case "audit":
		return routeAudit(deps)
	default:
		return nil, unsupportedURI("sessions://" + kind)
	}
}

func routeConsoleSessions(deps *app.Context, segs []string) (interface{}, *errorx.Record) {
	if len(segs) == 0 {
		return deps.Console.ListSessions(), nil
	}

	node := segs[0]
	output, err := deps.Console.GetOutputByNode(node)
	if err != nil {
		return nil, errorx.FromAny(err)
	}
	return map[string]interface{}{
		"node_name": node,
		"connected": deps.Console.IsConnectedByNode(node),
		"accessed":  deps.Console.HasAccessedTerminalByNode(node),
		"output":    output,
	}, nil
}

func routeSSHSessions(ctx context.Context, deps *app.Context, segs []string) (interface{}, *errorx.Record) {
	if len(segs) == 0 {
		sessions, err := deps.SSHProxy.Sessions(ctx)
		if err != nil {
			return nil, errorx.FromAny(err)
		}
		return sessions, nil
	}

	node := segs[0]
	if len(segs) == 1 {
		status, err := deps.SSHProxy.Status(ctx, node)
		if err != nil {
			return nil, errorx.FromAny(err)
		}
		return status, nil
	}

	switch segs[1] {
	case "history":
		history, err := deps.SSHProxy.History(ctx, node)
		if err != nil {
			return nil, errorx.FromAny(err)
		}
		return history, nil
	case "buffer":
		buffer, err := deps.SSHProxy.Buffer(ctx, node)
		if err != nil {
			return nil, errorx.FromAny(err)
		}
		return map[string]string{"node_name": node, "buffer": buffer}, nil
	default:
		return nil, unsupportedURI(fmt.Sprintf("sessions://ssh/%s/%s", node, segs[1]))
	}
}

// routeAudit exposes the boltdb-backed operation log for local debugging
// only — it is never listed in the agent-facing tool
// catalogue, only reachable via a direct resource URI.
func routeAudit(deps *app.Context) (interface{}, *errorx.Record) {
	entries, err := deps.Audit.Recent(100)
	if err != nil {
		return nil, errorx.Newf(errorx.InternalError, err.Error())
	}
	return entries, nil
}

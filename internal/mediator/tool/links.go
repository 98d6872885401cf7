package tool

import (
	"context"
	"time"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/app"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/errorx"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/link"
)

const linkOpTimeout = 30 * time.Second

func init() {
	register(Spec{Name: "get_links", Description: "List links in the current project.", Handler: handleGetLinks})
	register(Spec{Name: "set_connection", Description: "Validate and execute a batch of connect/disconnect link operations.", Handler: handleSetConnection})
}

func handleGetLinks(ctx context.Context, deps *app.Context, args map[string]interface{}) (interface{}, *errorx.Record) {
	projectID, rec := currentProject(ctx, deps)
	if rec != nil {
		return nil, rec
	}
	links, err := deps.Emulator.GetLinks(ctx, projectID)
	if err != nil {
		return nil, errorx.FromAny(err)
	}
	return links, nil
}

func parseLinkOp(raw interface{}, index int) (link.Op, *errorx.Record) {
	m, ok := asMap(raw)
	if !ok {
		return link.Op{}, invalidParam("operations", "each entry must be an object")
	}

	action, _ := m["action"].(string)
	switch action {
	case "connect":
		nodeA, ok := m["node_a"].(string)
		if !ok || nodeA == "" {
			return link.Op{}, invalidParam("operations[].node_a", "required for connect")
		}
		nodeB, ok := m["node_b"].(string)
		if !ok || nodeB == "" {
			return link.Op{}, invalidParam("operations[].node_b", "required for connect")
		}
		op := link.ConnectOp{
			NodeA:    nodeA,
			NodeB:    nodeB,
			PortA:    asInt(m["port_a"]),
			PortB:    asInt(m["port_b"]),
			AdapterA: m["adapter_a"],
			AdapterB: m["adapter_b"],
		}
		return link.Op{Connect: &op}, nil
	case "disconnect":
		linkID, ok := m["link_id"].(string)
		if !ok || linkID == "" {
			return link.Op{}, invalidParam("operations[].link_id", "required for disconnect")
		}
		return link.Op{Disconnect: &link.DisconnectOp{LinkID: linkID}}, nil
	default:
		return link.Op{}, invalidParam("operations[].action", "must be \"connect\" or \"disconnect\"")
	}
}

func handleSetConnection(ctx context.Context, deps *app.Context, args map[string]interface{}) (interface{}, *errorx.Record) {
	projectID, rec := currentProject(ctx, deps)
	if rec != nil {
		return nil, rec
	}

	rawOps, ok := asSlice(args["operations"])
	if !ok || len(rawOps) == 0 {
		return nil, missingParam("operations")
	}

	ops := make([]link.Op, 0, len(rawOps))
	for i, raw := range rawOps {
		op, rec := parseLinkOp(raw, i)
		if rec != nil {
			return nil, rec
		}
		ops = append(ops, op)
	}

	nodes, err := deps.Emulator.GetNodes(ctx, projectID)
	if err != nil {
		return nil, errorx.FromAny(err)
	}
	links, err := deps.Emulator.GetLinks(ctx, projectID)
	if err != nil {
		return nil, errorx.FromAny(err)
	}

	snap := link.NewSnapshot(nodes, links)
	validation := snap.Validate(ops)
	if !validation.Valid {
		return link.Result{
			Completed: nil,
			Failed: &link.FailedOperation{
				Index:  validation.FailedIndex,
				Action: ops[validation.FailedIndex].Action(),
				Op:     rawOps[validation.FailedIndex],
				Reason: validation.Reason,
			},
		}, nil
	}

	result := snap.Execute(ctx, deps.Emulator, projectID, ops, validation.Resolved, linkOpTimeout)
	return result, nil
}

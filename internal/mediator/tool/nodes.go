package tool

import (
	"context"
	"encoding/json"
	"time"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/app"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/emulator"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/errorx"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/model"
	"github.com/tidwall/sjson"
)

func init() {
	register(Spec{Name: "list_nodes", Description: "List nodes in the current project.", Handler: handleListNodes})
	register(Spec{Name: "get_node_details", Description: "Fetch one node's full detail.", Handler: handleGetNodeDetails})
	register(Spec{Name: "set_node", Description: "Update node properties and/or issue a lifecycle action.", Handler: handleSetNode})
	register(Spec{Name: "create_node", Description: "Create a node from a template.", Handler: handleCreateNode})
	register(Spec{Name: "delete_node", Description: "Delete a node from the project.", Handler: handleDeleteNode})
	register(Spec{Name: "configure_node_network", Description: "Update a node's network-facing properties and optionally register an SSH proxy route.", Handler: handleConfigureNodeNetwork})
	register(Spec{Name: "get_node_file", Description: "Read a file from a node's filesystem.", Handler: handleGetNodeFile})
	register(Spec{Name: "write_node_file", Description: "Write a file to a node's filesystem.", Handler: handleWriteNodeFile})
}

func handleListNodes(ctx context.Context, deps *app.Context, args map[string]interface{}) (interface{}, *errorx.Record) {
	projectID, rec := currentProject(ctx, deps)
	if rec != nil {
		return nil, rec
	}
	nodes, err := deps.Emulator.GetNodes(ctx, projectID)
	if err != nil {
		return nil, errorx.FromAny(err)
	}
	return nodes, nil
}

func handleGetNodeDetails(ctx context.Context, deps *app.Context, args map[string]interface{}) (interface{}, *errorx.Record) {
	projectID, rec := currentProject(ctx, deps)
	if rec != nil {
		return nil, rec
	}
	node, rec := resolveNode(ctx, deps, projectID, args)
	if rec != nil {
		return nil, rec
	}
	return node, nil
}

// buildPropertyPatch assembles the PUT body for set_node from typed tool
// arguments using sjson, so the patch is built incrementally without
// round-tripping the node's full properties struct.
func buildPropertyPatch(args map[string]interface{}) (map[string]interface{}, error) {
	raw := []byte("{}")
	var err error

	if name, ok := getOptionalString(args, "name"); ok && name != "" {
		if raw, err = sjson.SetBytes(raw, "name", name); err != nil {
			return nil, err
		}
	}
	for _, field := range []string{"ram", "cpus", "adapters", "console_type"} {
		if v, ok := args[field]; ok {
			if raw, err = sjson.SetBytes(raw, field, v); err != nil {
				return nil, err
			}
		}
	}
	if pos, ok := asMap(args["position"]); ok {
		for _, field := range []string{"x", "y", "z", "locked"} {
			if v, ok := pos[field]; ok {
				if raw, err = sjson.SetBytes(raw, "x."+field, v); err != nil {
					return nil, err
				}
			}
		}
		// x.* is a scratch prefix holding the position fields; flatten
		// them back to top level.
		var scratch map[string]interface{}
		if err := json.Unmarshal(raw, &scratch); err != nil {
			return nil, err
		}
		if x, ok := scratch["x"].(map[string]interface{}); ok {
			delete(scratch, "x")
			for k, v := range x {
				scratch[k] = v
			}
			flat, err := json.Marshal(scratch)
			if err != nil {
				return nil, err
			}
			raw = flat
		}
	}

	var patch map[string]interface{}
	if err := json.Unmarshal(raw, &patch); err != nil {
		return nil, err
	}
	return patch, nil
}

func handleSetNode(ctx context.Context, deps *app.Context, args map[string]interface{}) (interface{}, *errorx.Record) {
	projectID, rec := currentProject(ctx, deps)
	if rec != nil {
		return nil, rec
	}
	node, rec := resolveNode(ctx, deps, projectID, args)
	if rec != nil {
		return nil, rec
	}

	if _, renaming := args["name"]; renaming && node.Status != model.RunStateStopped {
		return nil, errorx.New(errorx.NodeRunning).
			WithDetails("renaming requires the node to be stopped").
			WithSuggestion("call set_node(action=\"stop\") first")
	}

	patch, buildErr := buildPropertyPatch(args)
	if buildErr != nil {
		return nil, invalidParam("properties", buildErr.Error())
	}

	var err error
	if len(patch) > 0 {
		node, err = deps.Emulator.UpdateNode(ctx, projectID, node.ID, patch)
		if err != nil {
			return nil, errorx.FromAny(err)
		}
	}

	action, hasAction := getOptionalString(args, "action")
	if !hasAction || action == "" {
		return node, nil
	}

	switch action {
	case "start":
		node, err = deps.Emulator.DoNodeAction(ctx, projectID, node.ID, emulator.ActionStart)
	case "stop":
		node, err = deps.Emulator.DoNodeAction(ctx, projectID, node.ID, emulator.ActionStop)
	case "suspend":
		node, err = deps.Emulator.DoNodeAction(ctx, projectID, node.ID, emulator.ActionSuspend)
	case "reload":
		node, err = deps.Emulator.DoNodeAction(ctx, projectID, node.ID, emulator.ActionReload)
	case "restart":
		node, err = restartNode(ctx, deps, projectID, node.ID)
	default:
		return nil, invalidParam("action", "must be one of start, stop, suspend, reload, restart")
	}
	if err != nil {
		return nil, errorx.FromAny(err)
	}
	return node, nil
}

// restartNode composes stop, a bounded poll for confirmed stop, and
// start.
func restartNode(ctx context.Context, deps *app.Context, projectID, nodeID string) (model.Node, error) {
	if _, err := deps.Emulator.DoNodeAction(ctx, projectID, nodeID, emulator.ActionStop); err != nil {
		return model.Node{}, err
	}

	var node model.Node
	for i := 0; i < 3; i++ {
		select {
		case <-ctx.Done():
			return model.Node{}, ctx.Err()
		case <-time.After(5 * time.Second):
		}
		n, err := deps.Emulator.GetNode(ctx, projectID, nodeID)
		if err == nil {
			node = n
			if node.Status == model.RunStateStopped {
				break
			}
		}
	}

	return deps.Emulator.DoNodeAction(ctx, projectID, nodeID, emulator.ActionStart)
}

func handleCreateNode(ctx context.Context, deps *app.Context, args map[string]interface{}) (interface{}, *errorx.Record) {
	projectID, rec := currentProject(ctx, deps)
	if rec != nil {
		return nil, rec
	}
	templateID, rec := requireString(args, "template_id")
	if rec != nil {
		return nil, rec
	}

	placement := map[string]interface{}{
		"x": getInt(args, "x", 0),
		"y": getInt(args, "y", 0),
	}
	if name, ok := getOptionalString(args, "name"); ok && name != "" {
		placement["name"] = name
	}

	node, err := deps.Emulator.CreateNodeFromTemplate(ctx, projectID, templateID, placement)
	if err != nil {
		return nil, errorx.FromAny(err)
	}
	return node, nil
}

func handleDeleteNode(ctx context.Context, deps *app.Context, args map[string]interface{}) (interface{}, *errorx.Record) {
	projectID, rec := currentProject(ctx, deps)
	if rec != nil {
		return nil, rec
	}
	node, rec := resolveNode(ctx, deps, projectID, args)
	if rec != nil {
		return nil, rec
	}
	if err := deps.Emulator.DeleteNode(ctx, projectID, node.ID); err != nil {
		return nil, errorx.FromAny(err)
	}
	return map[string]interface{}{"node_id": node.ID, "deleted": true}, nil
}

// handleConfigureNodeNetwork applies the same property patch set_node
// builds (name, ram, cpus, adapters, console_type, position; there is no
// NIC-type field) and, when the caller supplies a "proxy" field,
// registers that node's SSH-proxy route — the two steps the SSH setup
// workflow prompt walks an agent through.
func handleConfigureNodeNetwork(ctx context.Context, deps *app.Context, args map[string]interface{}) (interface{}, *errorx.Record) {
	projectID, rec := currentProject(ctx, deps)
	if rec != nil {
		return nil, rec
	}
	node, rec := resolveNode(ctx, deps, projectID, args)
	if rec != nil {
		return nil, rec
	}

	patch, buildErr := buildPropertyPatch(args)
	if buildErr != nil {
		return nil, invalidParam("properties", buildErr.Error())
	}

	result := map[string]interface{}{"node_id": node.ID}

	if len(patch) > 0 {
		updated, err := deps.Emulator.UpdateNode(ctx, projectID, node.ID, patch)
		if err != nil {
			return nil, errorx.FromAny(err)
		}
		result["node"] = updated
	} else {
		result["node"] = node
	}

	if proxyURL, ok := getOptionalString(args, "proxy"); ok && proxyURL != "" {
		deps.SSHProxy.SetRoute(node.Name, proxyURL)
		result["ssh_proxy_route"] = map[string]string{"node_name": node.Name, "proxy_url": proxyURL}
	}

	return result, nil
}

func handleGetNodeFile(ctx context.Context, deps *app.Context, args map[string]interface{}) (interface{}, *errorx.Record) {
	projectID, rec := currentProject(ctx, deps)
	if rec != nil {
		return nil, rec
	}
	node, rec := resolveNode(ctx, deps, projectID, args)
	if rec != nil {
		return nil, rec
	}
	path, rec := requireString(args, "path")
	if rec != nil {
		return nil, rec
	}

	data, err := deps.Emulator.ReadNodeFile(ctx, projectID, node.ID, path)
	if err != nil {
		return nil, errorx.FromAny(err)
	}
	return map[string]interface{}{"node_id": node.ID, "path": path, "content": string(data)}, nil
}

func handleWriteNodeFile(ctx context.Context, deps *app.Context, args map[string]interface{}) (interface{}, *errorx.Record) {
	projectID, rec := currentProject(ctx, deps)
	if rec != nil {
		return nil, rec
	}
	node, rec := resolveNode(ctx, deps, projectID, args)
	if rec != nil {
		return nil, rec
	}
	path, rec := requireString(args, "path")
	if rec != nil {
		return nil, rec
	}
	content, rec := requireString(args, "content")
	if rec != nil {
		return nil, rec
	}

	if err := deps.Emulator.WriteNodeFile(ctx, projectID, node.ID, path, []byte(content)); err != nil {
		return nil, errorx.FromAny(err)
	}
	return map[string]interface{}{"node_id": node.ID, "path": path, "written": true}, nil
}

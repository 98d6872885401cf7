package tool

import (
	"context"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/app"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/errorx"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/model"
)

// currentProject resolves the project a handler should target: the
// process-wide current id if set, otherwise an auto-connect to the
// single opened project. Returns a structured error when neither is
// available.
func currentProject(ctx context.Context, deps *app.Context) (string, *errorx.Record) {
	if id := deps.CurrentProjectID(); id != "" {
		return id, nil
	}

	projects, err := deps.Emulator.GetProjects(ctx)
	if err != nil {
		return "", errorx.FromAny(err)
	}

	var opened []model.Project
	for _, p := range projects {
		if p.IsOpened() {
			opened = append(opened, p)
		}
	}
	if len(opened) == 1 {
		deps.SetCurrentProjectID(opened[0].ID)
		return opened[0].ID, nil
	}
	if len(opened) == 0 {
		return "", errorx.New(errorx.ProjectNotFound).
			WithDetails("no project is currently opened").
			WithSuggestion("call open_project() or create_project() first")
	}
	return "", errorx.New(errorx.InvalidParameter).
		WithDetails("more than one project is opened; the current project is ambiguous").
		WithSuggestion("call open_project(project_id) to pick one explicitly")
}

// resolveNode finds a node by node_id or, failing that, by name within
// the project, the two identifiers tool callers are allowed to use
// interchangeably.
func resolveNode(ctx context.Context, deps *app.Context, projectID string, args map[string]interface{}) (model.Node, *errorx.Record) {
	nodes, err := deps.Emulator.GetNodes(ctx, projectID)
	if err != nil {
		return model.Node{}, errorx.FromAny(err)
	}

	if id, ok := getOptionalString(args, "node_id"); ok && id != "" {
		for _, n := range nodes {
			if n.ID == id {
				return n, nil
			}
		}
		return model.Node{}, errorx.New(errorx.NodeNotFound).
			WithSuggestion("call list_nodes() for valid node ids")
	}

	name, ok := getOptionalString(args, "node_name")
	if !ok || name == "" {
		return model.Node{}, missingParam("node_id or node_name")
	}
	for _, n := range nodes {
		if n.Name == name {
			return n, nil
		}
	}
	return model.Node{}, errorx.New(errorx.NodeNotFound).
		WithDetails("node names are case-sensitive").
		WithSuggestion("call list_nodes() for case-sensitive names")
}

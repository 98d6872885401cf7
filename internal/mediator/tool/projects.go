package tool

import (
	"context"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/app"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/errorx"
)

func init() {
	register(Spec{Name: "list_projects", Description: "List every project known to the emulator.", Handler: handleListProjects})
	register(Spec{Name: "open_project", Description: "Open a project by id or name and make it current.", Handler: handleOpenProject})
	register(Spec{Name: "create_project", Description: "Create a new project and make it current.", Handler: handleCreateProject})
	register(Spec{Name: "close_project", Description: "Close the current (or named) project.", Handler: handleCloseProject})
}

func handleListProjects(ctx context.Context, deps *app.Context, args map[string]interface{}) (interface{}, *errorx.Record) {
	projects, err := deps.Emulator.GetProjects(ctx)
	if err != nil {
		return nil, errorx.FromAny(err)
	}
	return projects, nil
}

func handleOpenProject(ctx context.Context, deps *app.Context, args map[string]interface{}) (interface{}, *errorx.Record) {
	id, ok := getOptionalString(args, "project_id")
	if !ok || id == "" {
		name, ok := getOptionalString(args, "name")
		if !ok || name == "" {
			return nil, missingParam("project_id or name")
		}
		projects, err := deps.Emulator.GetProjects(ctx)
		if err != nil {
			return nil, errorx.FromAny(err)
		}
		found := false
		for _, p := range projects {
			if p.Name == name {
				id = p.ID
				found = true
				break
			}
		}
		if !found {
			return nil, errorx.New(errorx.ProjectNotFound).WithSuggestion("call list_projects() for valid names")
		}
	}

	project, err := deps.Emulator.OpenProject(ctx, id)
	if err != nil {
		return nil, errorx.FromAny(err)
	}
	deps.SetCurrentProjectID(project.ID)
	return project, nil
}

func handleCreateProject(ctx context.Context, deps *app.Context, args map[string]interface{}) (interface{}, *errorx.Record) {
	name, rec := requireString(args, "name")
	if rec != nil {
		return nil, rec
	}

	project, err := deps.Emulator.CreateProject(ctx, name)
	if err != nil {
		return nil, errorx.FromAny(err)
	}
	deps.SetCurrentProjectID(project.ID)
	return project, nil
}

func handleCloseProject(ctx context.Context, deps *app.Context, args map[string]interface{}) (interface{}, *errorx.Record) {
	id, ok := getOptionalString(args, "project_id")
	if !ok || id == "" {
		id = deps.CurrentProjectID()
		if id == "" {
			return nil, errorx.New(errorx.ProjectNotFound).WithDetails("no project is currently opened")
		}
	}

	if err := deps.Emulator.CloseProject(ctx, id); err != nil {
		return nil, errorx.FromAny(err)
	}
	if deps.CurrentProjectID() == id {
		deps.ClearCurrentProjectID()
	}
	return map[string]interface{}{"project_id": id, "status": "closed"}, nil
}

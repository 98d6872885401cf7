package tool

import (
	"context"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/app"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/errorx"
)

func init() {
	register(Spec{Name: "list_drawings", Description: "List drawings in the current project.", Handler: handleListDrawings})
	register(Spec{Name: "create_drawing", Description: "Add a drawing to the current project.", Handler: handleCreateDrawing})
	register(Spec{Name: "update_drawing", Description: "Update an existing drawing.", Handler: handleUpdateDrawing})
	register(Spec{Name: "delete_drawing", Description: "Delete a drawing.", Handler: handleDeleteDrawing})
}

func handleListDrawings(ctx context.Context, deps *app.Context, args map[string]interface{}) (interface{}, *errorx.Record) {
	projectID, rec := currentProject(ctx, deps)
	if rec != nil {
		return nil, rec
	}
	drawings, err := deps.Emulator.GetDrawings(ctx, projectID)
	if err != nil {
		return nil, errorx.FromAny(err)
	}
	return drawings, nil
}

func drawingPayload(args map[string]interface{}) map[string]interface{} {
	payload := map[string]interface{}{}
	for _, field := range []string{"svg", "x", "y", "z", "rotation", "locked"} {
		if v, ok := args[field]; ok {
			payload[field] = v
		}
	}
	return payload
}

func handleCreateDrawing(ctx context.Context, deps *app.Context, args map[string]interface{}) (interface{}, *errorx.Record) {
	projectID, rec := currentProject(ctx, deps)
	if rec != nil {
		return nil, rec
	}
	if _, ok := getOptionalString(args, "svg"); !ok {
		return nil, missingParam("svg")
	}

	drawing, err := deps.Emulator.CreateDrawing(ctx, projectID, drawingPayload(args))
	if err != nil {
		return nil, errorx.FromAny(err)
	}
	return drawing, nil
}

func handleUpdateDrawing(ctx context.Context, deps *app.Context, args map[string]interface{}) (interface{}, *errorx.Record) {
	projectID, rec := currentProject(ctx, deps)
	if rec != nil {
		return nil, rec
	}
	drawingID, rec := requireString(args, "drawing_id")
	if rec != nil {
		return nil, rec
	}

	drawing, err := deps.Emulator.UpdateDrawing(ctx, projectID, drawingID, drawingPayload(args))
	if err != nil {
		return nil, errorx.FromAny(err)
	}
	return drawing, nil
}

func handleDeleteDrawing(ctx context.Context, deps *app.Context, args map[string]interface{}) (interface{}, *errorx.Record) {
	projectID, rec := currentProject(ctx, deps)
	if rec != nil {
		return nil, rec
	}
	drawingID, rec := requireString(args, "drawing_id")
	if rec != nil {
		return nil, rec
	}

	if err := deps.Emulator.DeleteDrawing(ctx, projectID, drawingID); err != nil {
		return nil, errorx.FromAny(err)
	}
	return map[string]interface{}{"drawing_id": drawingID, "deleted": true}, nil
}

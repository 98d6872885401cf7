package emulator

import (
	"context"
	"fmt"
)

// Drawing is a free-form annotation (rectangle, text, ellipse, SVG) drawn
// on a project's topology canvas.
type Drawing struct {
	ID       string `json:"drawing_id"`
	SVG      string `json:"svg"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Z        int    `json:"z"`
	Rotation int    `json:"rotation"`
	Locked   bool   `json:"locked"`
}

// GetDrawings lists all drawings in a project.
func (c *Client) GetDrawings(ctx context.Context, projectID string) ([]Drawing, error) {
	var drawings []Drawing
	err := c.do(ctx, "GET", fmt.Sprintf("/v3/projects/%s/drawings", projectID), nil, &drawings)
	return drawings, err
}

// CreateDrawing adds a new drawing to the project.
func (c *Client) CreateDrawing(ctx context.Context, projectID string, payload map[string]interface{}) (Drawing, error) {
	var d Drawing
	err := c.do(ctx, "POST", fmt.Sprintf("/v3/projects/%s/drawings", projectID), payload, &d)
	return d, err
}

// UpdateDrawing applies a partial update to an existing drawing.
func (c *Client) UpdateDrawing(ctx context.Context, projectID, drawingID string, payload map[string]interface{}) (Drawing, error) {
	var d Drawing
	err := c.do(ctx, "PUT", fmt.Sprintf("/v3/projects/%s/drawings/%s", projectID, drawingID), payload, &d)
	return d, err
}

// DeleteDrawing removes a drawing from the project.
func (c *Client) DeleteDrawing(ctx context.Context, projectID, drawingID string) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/v3/projects/%s/drawings/%s", projectID, drawingID), nil, nil)
}

package emulator

import (
	"context"
	"fmt"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/model"
)

// GetProjects lists all projects known to the emulator.
func (c *Client) GetProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := c.do(ctx, "GET", "/v3/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject creates a new project with the given name.
func (c *Client) CreateProject(ctx context.Context, name string) (model.Project, error) {
	var p model.Project
	err := c.do(ctx, "POST", "/v3/projects", map[string]string{"name": name}, &p)
	return p, err
}

// OpenProject opens the project, matching the emulator's POST
// /v3/projects/{id}/open.
func (c *Client) OpenProject(ctx context.Context, projectID string) (model.Project, error) {
	var p model.Project
	err := c.do(ctx, "POST", fmt.Sprintf("/v3/projects/%s/open", projectID), map[string]string{}, &p)
	return p, err
}

// CloseProject closes the project.
func (c *Client) CloseProject(ctx context.Context, projectID string) error {
	return c.do(ctx, "POST", fmt.Sprintf("/v3/projects/%s/close", projectID), map[string]string{}, nil)
}

// Snapshot describes a saved project snapshot.
type Snapshot struct {
	ID        string `json:"snapshot_id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// ListSnapshots lists a project's snapshots.
func (c *Client) ListSnapshots(ctx context.Context, projectID string) ([]Snapshot, error) {
	var snaps []Snapshot
	err := c.do(ctx, "GET", fmt.Sprintf("/v3/projects/%s/snapshots", projectID), nil, &snaps)
	return snaps, err
}

// GetReadme fetches the project's README text, empty string if none is
// set (the emulator returns 404 for a missing README; callers treat
// that as empty rather than an error).
func (c *Client) GetReadme(ctx context.Context, projectID string) (string, error) {
	var out struct {
		Content string `json:"content"`
	}
	err := c.do(ctx, "GET", fmt.Sprintf("/v3/projects/%s/files/README.txt", projectID), nil, &out)
	if err != nil {
		if ae, ok := err.(*apiError); ok && ae.Status == 404 {
			return "", nil
		}
		return "", err
	}
	return out.Content, nil
}

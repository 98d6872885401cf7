package emulator

import (
	"context"
	"fmt"
	"time"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/model"
)

// GetLinks lists all links in a project.
func (c *Client) GetLinks(ctx context.Context, projectID string) ([]model.Link, error) {
	var links []model.Link
	err := c.do(ctx, "GET", fmt.Sprintf("/v3/projects/%s/links", projectID), nil, &links)
	return links, err
}

// CreateLink creates a link between two endpoints. Link operations are
// occasionally slow on the emulator side, so callers pick their own
// timeout rather than inheriting the client's default.
func (c *Client) CreateLink(ctx context.Context, projectID string, endpoints []model.LinkEndpoint, timeout time.Duration) (model.Link, error) {
	ctx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	payload := map[string]interface{}{"nodes": endpointsToWire(endpoints)}
	var link model.Link
	err := c.do(ctx, "POST", fmt.Sprintf("/v3/projects/%s/links", projectID), payload, &link)
	return link, err
}

// DeleteLink removes a link.
func (c *Client) DeleteLink(ctx context.Context, projectID, linkID string, timeout time.Duration) error {
	ctx, cancel := withTimeout(ctx, timeout)
	defer cancel()
	return c.do(ctx, "DELETE", fmt.Sprintf("/v3/projects/%s/links/%s", projectID, linkID), nil, nil)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, func()) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

func endpointsToWire(endpoints []model.LinkEndpoint) []map[string]interface{} {
	wire := make([]map[string]interface{}, 0, len(endpoints))
	for _, e := range endpoints {
		wire = append(wire, map[string]interface{}{
			"node_id":        e.NodeID,
			"adapter_number": e.AdapterNumber,
			"port_number":    e.PortNumber,
		})
	}
	return wire
}

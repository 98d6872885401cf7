package emulator

import (
	"context"
	"fmt"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/model"
)

// GetNodes lists all nodes in a project.
func (c *Client) GetNodes(ctx context.Context, projectID string) ([]model.Node, error) {
	var nodes []model.Node
	err := c.do(ctx, "GET", fmt.Sprintf("/v3/projects/%s/nodes", projectID), nil, &nodes)
	return nodes, err
}

// GetNode fetches one node's detail.
func (c *Client) GetNode(ctx context.Context, projectID, nodeID string) (model.Node, error) {
	var n model.Node
	err := c.do(ctx, "GET", fmt.Sprintf("/v3/projects/%s/nodes/%s", projectID, nodeID), nil, &n)
	return n, err
}

// CreateNodeFromTemplate creates a node from a template.
func (c *Client) CreateNodeFromTemplate(ctx context.Context, projectID, templateID string, placement map[string]interface{}) (model.Node, error) {
	var n model.Node
	err := c.do(ctx, "POST", fmt.Sprintf("/v3/projects/%s/templates/%s", projectID, templateID), placement, &n)
	return n, err
}

// UpdateNode applies a partial property update.
func (c *Client) UpdateNode(ctx context.Context, projectID, nodeID string, properties map[string]interface{}) (model.Node, error) {
	var n model.Node
	err := c.do(ctx, "PUT", fmt.Sprintf("/v3/projects/%s/nodes/%s", projectID, nodeID), properties, &n)
	return n, err
}

// DeleteNode removes a node from the project.
func (c *Client) DeleteNode(ctx context.Context, projectID, nodeID string) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/v3/projects/%s/nodes/%s", projectID, nodeID), nil, nil)
}

// NodeAction is one of the lifecycle actions the emulator exposes per node.
type NodeAction string

const (
	ActionStart   NodeAction = "start"
	ActionStop    NodeAction = "stop"
	ActionSuspend NodeAction = "suspend"
	ActionReload  NodeAction = "reload"
)

// DoNodeAction issues start/stop/suspend/reload against a node.
func (c *Client) DoNodeAction(ctx context.Context, projectID, nodeID string, action NodeAction) (model.Node, error) {
	var n model.Node
	err := c.do(ctx, "POST", fmt.Sprintf("/v3/projects/%s/nodes/%s/%s", projectID, nodeID, action), map[string]string{}, &n)
	return n, err
}

// ReadNodeFile reads a file from a node's filesystem.
func (c *Client) ReadNodeFile(ctx context.Context, projectID, nodeID, path string) ([]byte, error) {
	var buf []byte
	err := c.doRaw(ctx, "GET", fmt.Sprintf("/v3/projects/%s/nodes/%s/files/%s", projectID, nodeID, path), nil, &buf)
	return buf, err
}

// WriteNodeFile writes a file to a node's filesystem.
func (c *Client) WriteNodeFile(ctx context.Context, projectID, nodeID, path string, content []byte) error {
	return c.doRawBody(ctx, "POST", fmt.Sprintf("/v3/projects/%s/nodes/%s/files/%s", projectID, nodeID, path), content)
}

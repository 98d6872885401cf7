package emulator

import (
	"context"
	"fmt"
)

// Template is a node template as exposed by the emulator's template
// catalog.
type Template struct {
	ID       string                 `json:"template_id"`
	Name     string                 `json:"name"`
	Category string                 `json:"category"`
	Raw      map[string]interface{} `json:"-"`
}

// GetTemplates lists all node templates registered with the emulator.
func (c *Client) GetTemplates(ctx context.Context) ([]Template, error) {
	var templates []Template
	err := c.do(ctx, "GET", "/v3/templates", nil, &templates)
	return templates, err
}

// GetTemplate fetches a single template's detail.
func (c *Client) GetTemplate(ctx context.Context, templateID string) (Template, error) {
	var t Template
	err := c.do(ctx, "GET", fmt.Sprintf("/v3/templates/%s", templateID), nil, &t)
	return t, err
}

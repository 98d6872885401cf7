// Package sshproxy is the client for the SSH-proxy sidecar: a separate
// HTTP service that executes SSH sessions on behalf of the agent,
// addressed through its own per-node routing table.
package sshproxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/errorx"
)

const defaultTimeout = 30 * time.Second

// Client proxies SSH operations to the sidecar, routing per node via a
// process-wide SSHProxyMap owned by the app context and
// falling back to a default base URL when a node has no explicit route.
type Client struct {
	httpClient *http.Client
	defaultURL string

	mu     sync.RWMutex
	routes map[string]string // node name -> proxy base URL
}

// New builds a Client with the given default proxy base URL.
func New(defaultBaseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		defaultURL: defaultBaseURL,
		routes:     make(map[string]string),
	}
}

// SetRoute records node_name → proxy_url, consulted by every subsequent
// SSH operation on that node.
func (c *Client) SetRoute(nodeName, proxyURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.routes[nodeName] = proxyURL
}

func (c *Client) baseURLFor(nodeName string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if url, ok := c.routes[nodeName]; ok {
		return url
	}
	return c.defaultURL
}

func (c *Client) do(ctx context.Context, nodeName, method, path string, body interface{}, out interface{}) error {
	base := c.baseURLFor(nodeName)

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return errorx.Tag(errorx.InternalError, "encode request: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, base+path, reader)
	if err != nil {
		return errorx.Tag(errorx.InternalError, "build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errorx.Tag(errorx.SSHConnectionFailed, "%v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errorx.Tag(errorx.SSHConnectionFailed, "read response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorx.Tag(errorx.SSHConnectionFailed, "proxy returned %d: %s", resp.StatusCode, string(data))
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errorx.Tag(errorx.SSHConnectionFailed, "decode response: %v", err)
	}
	return nil
}

// Health checks the sidecar's /health endpoint using the default base
// URL (routing is per-node; health is a proxy-wide probe).
func (c *Client) Health(ctx context.Context) (map[string]interface{}, error) {
	var out map[string]interface{}
	err := c.do(ctx, "", "GET", "/health", nil, &out)
	return out, err
}

// Registry lists lab proxies the sidecar has discovered.
func (c *Client) Registry(ctx context.Context) ([]map[string]interface{}, error) {
	var out []map[string]interface{}
	err := c.do(ctx, "", "GET", "/proxy/registry", nil, &out)
	return out, err
}

// Sessions lists live SSH sessions known to the sidecar.
func (c *Client) Sessions(ctx context.Context) ([]map[string]interface{}, error) {
	var out []map[string]interface{}
	err := c.do(ctx, "", "GET", "/ssh/sessions", nil, &out)
	return out, err
}

// Status fetches the SSH session status for a node.
func (c *Client) Status(ctx context.Context, nodeName string) (map[string]interface{}, error) {
	var out map[string]interface{}
	err := c.do(ctx, nodeName, "GET", fmt.Sprintf("/ssh/status/%s", nodeName), nil, &out)
	return out, err
}

// History fetches the SSH command history for a node.
func (c *Client) History(ctx context.Context, nodeName string) ([]map[string]interface{}, error) {
	var out []map[string]interface{}
	err := c.do(ctx, nodeName, "GET", fmt.Sprintf("/ssh/history/%s", nodeName), nil, &out)
	return out, err
}

// Buffer fetches the accumulated SSH output buffer for a node.
func (c *Client) Buffer(ctx context.Context, nodeName string) (string, error) {
	var out struct {
		Buffer string `json:"buffer"`
	}
	err := c.do(ctx, nodeName, "GET", fmt.Sprintf("/ssh/buffer/%s", nodeName), nil, &out)
	return out.Buffer, err
}

// Execute runs a command over SSH on behalf of the agent.
func (c *Client) Execute(ctx context.Context, nodeName string, payload map[string]interface{}) (map[string]interface{}, error) {
	var out map[string]interface{}
	err := c.do(ctx, nodeName, "POST", "/ssh", payload, &out)
	return out, err
}

// TFTP issues a TFTP transfer request via the sidecar.
func (c *Client) TFTP(ctx context.Context, nodeName string, payload map[string]interface{}) (map[string]interface{}, error) {
	var out map[string]interface{}
	err := c.do(ctx, nodeName, "POST", "/tftp", payload, &out)
	return out, err
}

// HTTPClient issues an HTTP-through-proxy request via the sidecar.
func (c *Client) HTTPClient(ctx context.Context, nodeName string, payload map[string]interface{}) (map[string]interface{}, error) {
	var out map[string]interface{}
	err := c.do(ctx, nodeName, "POST", "/http-client", payload, &out)
	return out, err
}

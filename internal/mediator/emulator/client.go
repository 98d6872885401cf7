// Package emulator is the client for every outbound HTTP call to the
// network-emulation platform's v3 REST API. Retry and backoff are left
// entirely to callers; a single call here never retries itself.
package emulator

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
	"github.com/tidwall/gjson"
)

const defaultTimeout = 30 * time.Second

// Client is an authenticated HTTP client for the emulator's v3 API. It
// owns its own http.Client and bearer token.
type Client struct {
	baseURL  string
	username string
	password string

	httpClient *http.Client

	mu             sync.RWMutex
	token          string
	isConnected    bool
	connectionErr  string
	authInFlight   bool
	authInFlightCh chan struct{}
}

// Config configures a new Client.
type Config struct {
	Host      string
	Port      int
	UseHTTPS  bool
	VerifySSL bool
	Username  string
	Password  string
	Timeout   time.Duration
}

// New builds a Client from Config, scaled down to the single struct
// this leaf component needs.
func New(cfg Config) *Client {
	scheme := "http"
	if cfg.UseHTTPS {
		scheme = "https"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := http.DefaultTransport
	if cfg.UseHTTPS && !cfg.VerifySSL {
		transport = insecureTransport()
	}

	return &Client{
		baseURL:    fmt.Sprintf("%s://%s:%d", scheme, cfg.Host, cfg.Port),
		username:   cfg.Username,
		password:   cfg.Password,
		httpClient: &http.Client{Timeout: timeout, Transport: transport},
	}
}

// IsConnected reports the outcome of the last call made through this
// client, auth or otherwise.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isConnected
}

// ConnectionError is the last observed error text, if any.
func (c *Client) ConnectionError() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connectionErr
}

func (c *Client) setOutcome(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.isConnected = false
		c.connectionErr = err.Error()
		return
	}
	c.isConnected = true
	c.connectionErr = ""
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// apiError carries the emulator's error tagged with a stable error-code
// category so tool handlers can map it straight onto the error taxonomy
// without re-sniffing the HTTP status.
type apiError struct {
	Code    errorx.Code
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrorCode satisfies errorx's coded interface so tool/resource handlers
// can convert any emulator failure to a Record with errorx.FromAny
// without re-sniffing this package's concrete error type.
func (e *apiError) ErrorCode() (errorx.Code, string) {
	return e.Code, e.Message
}

// AsAPIError extracts the tagged category/message, if err came from this
// client's do().
func AsAPIError(err error) (code errorx.Code, message string, ok bool) {
	ae, ok := err.(*apiError)
	if !ok {
		return "", "", false
	}
	return ae.Code, ae.Message, true
}

// do issues an authenticated request and decodes a 2xx JSON response into
// out (nil out is fine for DELETE/empty-body calls). 204/empty bodies
// yield a nil decode, not a parse failure.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &apiError{Code: errorx.InternalError, Message: fmt.Sprintf("encode request: %v", err)}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &apiError{Code: errorx.InternalError, Message: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	if tok := c.currentToken(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		wrapped := &apiError{Code: errorx.GNS3Unreachable, Message: err.Error()}
		c.setOutcome(wrapped)
		return wrapped
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		wrapped := &apiError{Code: errorx.GNS3Unreachable, Message: fmt.Sprintf("read response: %v", err)}
		c.setOutcome(wrapped)
		return wrapped
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := extractMessage(data)
		wrapped := &apiError{Code: errorx.GNS3APIError, Status: resp.StatusCode, Message: msg}
		c.setOutcome(wrapped)
		return wrapped
	}

	c.setOutcome(nil)

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &apiError{Code: errorx.GNS3APIError, Message: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}

// doRaw issues an authenticated request and returns the raw response body,
// used for node file transfer where the payload is not JSON.
func (c *Client) doRaw(ctx context.Context, method, path string, body io.Reader, out *[]byte) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &apiError{Code: errorx.InternalError, Message: fmt.Sprintf("build request: %v", err)}
	}
	if tok := c.currentToken(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		wrapped := &apiError{Code: errorx.GNS3Unreachable, Message: err.Error()}
		c.setOutcome(wrapped)
		return wrapped
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		wrapped := &apiError{Code: errorx.GNS3Unreachable, Message: fmt.Sprintf("read response: %v", err)}
		c.setOutcome(wrapped)
		return wrapped
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		wrapped := &apiError{Code: errorx.GNS3APIError, Status: resp.StatusCode, Message: extractMessage(data)}
		c.setOutcome(wrapped)
		return wrapped
	}

	c.setOutcome(nil)
	*out = data
	return nil
}

// doRawBody uploads a raw byte payload (non-JSON) to path.
func (c *Client) doRawBody(ctx context.Context, method, path string, content []byte) error {
	return c.doRaw(ctx, method, path, bytes.NewReader(content), &[]byte{})
}

// extractMessage pulls a human message out of an error body: a top-level
// "message" field when present (the emulator's convention), otherwise
// the raw body text.
func extractMessage(body []byte) string {
	if len(body) == 0 {
		return "empty error body"
	}
	if msg := gjson.GetBytes(body, "message"); msg.Exists() && msg.String() != "" {
		return msg.String()
	}
	return string(body)
}

package emulator

import "context"

// VersionInfo is the emulator's own reported version, distinct from this mediator's own version surfaced by
// pkg/version.
type VersionInfo struct {
	Version string `json:"version"`
	Local   bool   `json:"local"`
}

// GetVersion queries the emulator's /v3/version endpoint. Unlike every
// other call in this package it does not require a bearer token, so
// operators can use it as a liveness probe before authenticating.
func (c *Client) GetVersion(ctx context.Context) (VersionInfo, error) {
	var v VersionInfo
	err := c.do(ctx, "GET", "/v3/version", nil, &v)
	return v, err
}

// GetSymbol fetches the raw bytes of a symbol's icon (PNG or SVG) via
// GET /v3/symbols/{id}/raw.
func (c *Client) GetSymbol(ctx context.Context, symbolID string) ([]byte, error) {
	var buf []byte
	err := c.doRaw(ctx, "GET", "/v3/symbols/"+symbolID+"/raw", nil, &buf)
	return buf, err
}

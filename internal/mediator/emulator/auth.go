package emulator

import (
	"context"
	"time"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/errorx"
)

type authResponse struct {
	AccessToken string `json:"access_token"`
}

// Authenticate performs the credential exchange and stores the bearer token on success.
//
// When retry is false it makes a single attempt and returns its outcome.
// When retry is true it makes up to maxRetries attempts in total,
// retryInterval apart (0 means unlimited).
//
// Concurrent callers are serialized: only one refresh is ever in
// flight, so a burst of callers hitting an expired token never issues
// duplicate refreshes.
func (c *Client) Authenticate(ctx context.Context, retry bool, retryInterval time.Duration, maxRetries int) error {
	if !c.acquireAuthSlot() {
		c.waitForAuthSlot()
		if c.IsConnected() {
			return nil
		}
		return &apiError{Code: errorx.AuthFailed, Message: c.ConnectionError()}
	}
	defer c.releaseAuthSlot()

	attempt := 0
	for {
		attempt++
		err := c.authenticateOnce(ctx)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		if maxRetries > 0 && attempt >= maxRetries {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryInterval):
		}
	}
}

func (c *Client) authenticateOnce(ctx context.Context) error {
	var resp authResponse
	err := c.do(ctx, "POST", "/v3/access/users/authenticate", map[string]string{
		"username": c.username,
		"password": c.password,
	}, &resp)
	if err != nil {
		return err
	}
	if resp.AccessToken == "" {
		wrapped := &apiError{Code: errorx.AuthFailed, Message: "emulator returned an empty access token"}
		c.setOutcome(wrapped)
		return wrapped
	}

	c.mu.Lock()
	c.token = resp.AccessToken
	c.mu.Unlock()
	c.setOutcome(nil)
	return nil
}

// acquireAuthSlot returns true if the caller won the right to perform the
// actual HTTP exchange; false means a refresh is already in flight and
// the caller should wait on it instead.
func (c *Client) acquireAuthSlot() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.authInFlight {
		return false
	}
	c.authInFlight = true
	c.authInFlightCh = make(chan struct{})
	return true
}

func (c *Client) releaseAuthSlot() {
	c.mu.Lock()
	ch := c.authInFlightCh
	c.authInFlight = false
	c.authInFlightCh = nil
	c.mu.Unlock()
	if ch != nil {
		close(ch)
	}
}

func (c *Client) waitForAuthSlot() {
	c.mu.RLock()
	ch := c.authInFlightCh
	c.mu.RUnlock()
	if ch == nil {
		return
	}
	<-ch
}

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, handler http.HandlerFunc) *Context {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	opts := config.NewOptions()
	opts.Emulator.Host = u.Hostname()
	opts.Emulator.Port = port
	opts.Emulator.Password = "admin"
	opts.Audit.Path = filepath.Join(t.TempDir(), "audit.db")

	cfg := &Config{Options: opts}
	c, err := cfg.Complete().New()
	require.NoError(t, err)
	t.Cleanup(c.Shutdown)
	return c
}

func TestContext_CurrentProjectIDRoundTrips(t *testing.T) {
	c := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {})
	assert.Equal(t, "", c.CurrentProjectID())

	c.SetCurrentProjectID("p1")
	assert.Equal(t, "p1", c.CurrentProjectID())

	c.ClearCurrentProjectID()
	assert.Equal(t, "", c.CurrentProjectID())
}

func TestContext_AuthLoopAutoDetectsSingleOpenedProject(t *testing.T) {
	c := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v3/access/users/authenticate":
			w.Write([]byte(`{"access_token":"tok"}`))
		case "/v3/projects":
			w.Write([]byte(`[{"project_id":"p1","name":"Test LAB","status":"opened"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	c.Start(context.Background())

	require.Eventually(t, func() bool {
		return c.CurrentProjectID() == "p1"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestContext_SSHProxyDefaultResolvesFromEmulatorHost(t *testing.T) {
	opts := config.NewOptions()
	opts.Emulator.Host = "gns3.example"
	opts.Audit.Path = filepath.Join(t.TempDir(), "audit.db")

	cfg := &Config{Options: opts}
	c, err := cfg.Complete().New()
	require.NoError(t, err)
	defer c.Shutdown()

	assert.Contains(t, opts.SSHProxy.DefaultBaseURL, "gns3.example")
}

package emulator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/errorx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	c := New(Config{Host: u.Hostname(), Port: port, Username: "admin", Password: "admin", Timeout: 2 * time.Second})
	return c, srv.Close
}

func TestAuthenticate_Success(t *testing.T) {
	c, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/access/users/authenticate", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-123"}`))
	})
	defer closeFn()

	err := c.Authenticate(context.Background(), false, 0, 0)
	require.NoError(t, err)
	assert.True(t, c.IsConnected())
	assert.Equal(t, "tok-123", c.currentToken())
}

func TestAuthenticate_EmptyTokenFails(t *testing.T) {
	c, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":""}`))
	})
	defer closeFn()

	err := c.Authenticate(context.Background(), false, 0, 0)
	require.Error(t, err)
	assert.False(t, c.IsConnected())

	code, _, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, errorx.AuthFailed, code)
}

func TestDo_MapsNon2xxToGNS3APIError(t *testing.T) {
	c, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"project not found"}`))
	})
	defer closeFn()

	_, err := c.GetProjects(context.Background())
	require.Error(t, err)
	code, msg, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, errorx.GNS3APIError, code)
	assert.Equal(t, "project not found", msg)
}

func TestDo_EmptyBodyIsNotAnError(t *testing.T) {
	c, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	defer closeFn()

	err := c.CloseProject(context.Background(), "pid-1")
	require.NoError(t, err)
}

func TestGetReadme_404IsEmptyNotError(t *testing.T) {
	c, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"no such file"}`))
	})
	defer closeFn()

	text, err := c.GetReadme(context.Background(), "pid-1")
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestGetReadme_OtherErrorsPropagate(t *testing.T) {
	c, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"boom"}`))
	})
	defer closeFn()

	_, err := c.GetReadme(context.Background(), "pid-1")
	require.Error(t, err)
}

func TestUnreachable_MapsToGNS3Unreachable(t *testing.T) {
	c := New(Config{Host: "127.0.0.1", Port: 1, Timeout: 200 * time.Millisecond})
	_, err := c.GetProjects(context.Background())
	require.Error(t, err)
	code, _, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, errorx.GNS3Unreachable, code)
}

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContextForAuth(t *testing.T, serverURL string) *Context {
	t.Helper()
	u, err := url.Parse(serverURL)
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

func TestBackoffSeconds_CapsAtLastEntryAfterFiveFailures(t *testing.T) {
	// spec boundary B3: after 5 consecutive failures the delay is 300s
	// and every subsequent failure stays there.
	idx := 0
	delays := make([]int, 0, 7)
	for i := 0; i < 7; i++ {
		delays = append(delays, backoffSeconds[idx])
		if idx < len(backoffSeconds)-1 {
			idx++
		}
	}
	assert.Equal(t, []int{5, 10, 30, 60, 300, 300, 300}, delays)
}

func TestAuthLoop_RetriesAfterFailedAttempt(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&attempts, 1)
		if n == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"access_token":"tok"}`))
	}))
	defer srv.Close()

	c := newTestContextForAuth(t, srv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		c.authLoop(ctx)
		close(done)
	}()

	// The first attempt fails, so the second one follows after
	// backoffSeconds[0] (5s).
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&attempts) >= 2
	}, 7*time.Second, 10*time.Millisecond)

	cancel()
	<-done
}

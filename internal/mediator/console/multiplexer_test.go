package console

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConsole starts a loopback TCP listener that echoes every byte it
// receives back to the connecting client, standing in for a node's
// telnet console in tests.
func fakeConsole(t *testing.T) (host string, port int, stop func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var wg sync.WaitGroup
	done := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				buf := make([]byte, 4096)
				for {
					n, err := c.Read(buf)
					if n > 0 {
						_, _ = c.Write(buf[:n])
					}
					if err != nil {
						return
					}
				}
			}(conn)
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return "127.0.0.1", addr.Port, func() {
		close(done)
		_ = ln.Close()
		wg.Wait()
	}
}

func TestMultiplexer_ConnectSendDiff(t *testing.T) {
	host, port, stop := fakeConsole(t)
	defer stop()

	m := New()
	id, err := m.Connect(context.Background(), host, port, "R1")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.NoError(t, m.Send(id, []byte("hello\n")))

	require.Eventually(t, func() bool {
		out, err := m.GetOutput(id)
		return err == nil && out != ""
	}, 2*time.Second, 10*time.Millisecond)

	diff1, err := m.GetDiff(id)
	require.NoError(t, err)
	assert.Contains(t, diff1, "hello")

	diff2, err := m.GetDiff(id)
	require.NoError(t, err)
	assert.Equal(t, "", diff2)
}

func TestMultiplexer_ConnectIsIdempotentPerNode(t *testing.T) {
	host, port, stop := fakeConsole(t)
	defer stop()

	m := New()
	id1, err := m.Connect(context.Background(), host, port, "R1")
	require.NoError(t, err)
	id2, err := m.Connect(context.Background(), host, port, "R1")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
}

func TestMultiplexer_ConcurrentConnectConverges(t *testing.T) {
	host, port, stop := fakeConsole(t)
	defer stop()

	m := New()
	const n = 8
	ids := make([]string, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			id, err := m.Connect(context.Background(), host, port, "R1")
			require.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		assert.Equal(t, ids[0], ids[i])
	}
}

func TestMultiplexer_DisconnectRemovesIndexEntry(t *testing.T) {
	host, port, stop := fakeConsole(t)
	defer stop()

	m := New()
	id, err := m.Connect(context.Background(), host, port, "R1")
	require.NoError(t, err)

	require.NoError(t, m.DisconnectByNode("R1"))

	_, err = m.GetOutput(id)
	assert.Error(t, err)

	id2, err := m.Connect(context.Background(), host, port, "R1")
	require.NoError(t, err)
	assert.NotEqual(t, id, id2)
}

func TestMultiplexer_BufferTrimResetsCursor(t *testing.T) {
	sess := newSession("R1", "127.0.0.1", 0, nopConn{})

	sess.append(make([]byte, bufferCap-10))
	sess.cursor = bufferCap - 10

	sess.append(make([]byte, 20))

	sess.mu.Lock()
	cursor := sess.cursor
	length := len(sess.buffer)
	sess.mu.Unlock()

	assert.Equal(t, 0, cursor)
	assert.LessOrEqual(t, length, trimTo+20)
}

type nopConn struct{ net.Conn }

func (nopConn) Write(b []byte) (int, error) { return len(b), nil }
func (nopConn) Close() error                { return nil }

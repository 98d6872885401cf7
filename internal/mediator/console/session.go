// Package console is a pool of long-lived telnet connections to node
// consoles, each backed by a background ingestion task and a trimmed
// ring buffer with cursor-based diff reads.
package console

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	bufferCap     = 10 * 1024 * 1024 // 10 MiB cap on a session's buffer
	trimTo        = bufferCap / 2    // trim target: half the cap
	readChunkSize = 4096             // 4 KiB ingestion reads
	expiryAge     = 30 * time.Minute
	sweepInterval = 5 * time.Minute
)

// Session is a single telnet console connection owned exclusively by the
// Multiplexer.
type Session struct {
	ID       string
	NodeName string
	Host     string
	Port     int

	conn net.Conn

	mu       sync.Mutex
	buffer   []byte
	cursor   int
	accessed bool

	createdAt    time.Time
	lastActivity time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

func newSession(nodeName, host string, port int, conn net.Conn) *Session {
	now := time.Now()
	return &Session{
		ID:           uuid.NewString(),
		NodeName:     nodeName,
		Host:         host,
		Port:         port,
		conn:         conn,
		createdAt:    now,
		lastActivity: now,
		done:         make(chan struct{}),
	}
}

// append adds freshly ingested bytes to the buffer, trimming to half the
// cap when the cap is exceeded. On trim, the cursor is reset to 0
// unconditionally rather than shifted to track the discarded prefix;
// the only cost is re-reading some already-read bytes once per half
// buffer of traffic, which is cheap next to the complexity of shifting
// a live cursor under concurrent reads.
func (s *Session) append(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer = append(s.buffer, data...)
	s.lastActivity = time.Now()
	if len(s.buffer) > bufferCap {
		discard := len(s.buffer) - trimTo
		s.buffer = append([]byte(nil), s.buffer[discard:]...)
		s.cursor = 0
	}
}

// output returns the whole buffer, ANSI-stripped, without advancing the
// cursor.
func (s *Session) output() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessed = true
	s.lastActivity = time.Now()
	return stripANSI(s.buffer)
}

// diff returns buffer[cursor:], ANSI-stripped, then advances the cursor
// to the end of the buffer.
func (s *Session) diff() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessed = true
	s.lastActivity = time.Now()
	if s.cursor > len(s.buffer) {
		s.cursor = len(s.buffer)
	}
	chunk := s.buffer[s.cursor:]
	s.cursor = len(s.buffer)
	return stripANSI(chunk)
}

func (s *Session) hasAccessed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessed
}

func (s *Session) idleSince() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.lastActivity)
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

func (s *Session) write(data []byte) error {
	s.touch()
	_, err := s.conn.Write(data)
	return err
}

func (s *Session) close() {
	if s.cancel != nil {
		s.cancel()
	}
	_ = s.conn.Close()
	<-s.done
}

package console

import (
	"context"
	"sync"
	"time"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/errorx"
	"github.com/chistokhinsv/gns3-mcp-go/pkg/logger"
)

// Multiplexer owns every live Session and the node-name↔session-id index.
type Multiplexer struct {
	mu       sync.Mutex
	sessions map[string]*Session // session id -> session
	byNode   map[string]string   // node name -> session id
}

// New builds an empty Multiplexer.
func New() *Multiplexer {
	return &Multiplexer{
		sessions: make(map[string]*Session),
		byNode:   make(map[string]string),
	}
}

// Connect opens (or returns the existing) session for a node. Two
// concurrent callers racing for the same node name converge on one
// winner; the loser closes its own streams and adopts the winner's id.
func (m *Multiplexer) Connect(ctx context.Context, host string, port int, nodeName string) (string, error) {
	m.mu.Lock()
	if id, ok := m.byNode[nodeName]; ok {
		m.mu.Unlock()
		return id, nil
	}
	m.mu.Unlock()

	conn, err := dialTelnet(ctx, host, port)
	if err != nil {
		return "", errorx.Tag(errorx.ConsoleConnectionError, "dial %s:%d for node %q: %v", host, port, nodeName, err)
	}

	sess := newSession(nodeName, host, port, conn)

	m.mu.Lock()
	if id, ok := m.byNode[nodeName]; ok {
		m.mu.Unlock()
		_ = conn.Close()
		return id, nil
	}
	m.sessions[sess.ID] = sess
	m.byNode[nodeName] = sess.ID
	m.mu.Unlock()

	sessCtx, cancel := context.WithCancel(context.Background())
	sess.cancel = cancel
	go m.ingest(sessCtx, sess)

	return sess.ID, nil
}

// ingest is the dedicated background task reading a session's inbound
// stream in 4 KiB chunks until EOF or cancellation. It never
// takes the session-map lock, mutating only its own session.
func (m *Multiplexer) ingest(ctx context.Context, sess *Session) {
	defer close(sess.done)
	buf := make([]byte, readChunkSize)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		_ = sess.conn.SetReadDeadline(time.Now().Add(time.Second))
		n, err := sess.conn.Read(buf)
		if n > 0 {
			sess.append(append([]byte(nil), buf[:n]...))
		}
		if err != nil {
			if ne, ok := err.(interface{ Timeout() bool }); ok && ne.Timeout() {
				continue
			}
			logger.Debug("console ingestion for %s (%s) ended: %v", sess.NodeName, sess.ID, err)
			return
		}
	}
}

// Send writes raw bytes to a session. Line-ending normalization is the
// tool handler layer's job exclusively; the multiplexer never transforms
// outbound data.
func (m *Multiplexer) Send(sessionID string, data []byte) error {
	sess, ok := m.get(sessionID)
	if !ok {
		return errorx.Tag(errorx.ConsoleDisconnected, "unknown console session %q", sessionID)
	}
	return sess.write(data)
}

// SendByNode looks up the node's session id and writes to it.
func (m *Multiplexer) SendByNode(nodeName string, data []byte) error {
	id, ok := m.sessionIDByNode(nodeName)
	if !ok {
		return errorx.Tag(errorx.ConsoleDisconnected, "no console session for node %q", nodeName)
	}
	return m.Send(id, data)
}

// GetOutput returns the entire ANSI-stripped buffer without advancing
// the cursor.
func (m *Multiplexer) GetOutput(sessionID string) (string, error) {
	sess, ok := m.get(sessionID)
	if !ok {
		return "", errorx.Tag(errorx.ConsoleDisconnected, "unknown console session %q", sessionID)
	}
	return sess.output(), nil
}

// GetOutputByNode is the node-name convenience form of GetOutput.
func (m *Multiplexer) GetOutputByNode(nodeName string) (string, error) {
	id, ok := m.sessionIDByNode(nodeName)
	if !ok {
		return "", errorx.Tag(errorx.ConsoleDisconnected, "no console session for node %q", nodeName)
	}
	return m.GetOutput(id)
}

// GetDiff returns unread buffer content, ANSI-stripped, and advances the
// cursor.
func (m *Multiplexer) GetDiff(sessionID string) (string, error) {
	sess, ok := m.get(sessionID)
	if !ok {
		return "", errorx.Tag(errorx.ConsoleDisconnected, "unknown console session %q", sessionID)
	}
	return sess.diff(), nil
}

// GetDiffByNode is the node-name convenience form of GetDiff.
func (m *Multiplexer) GetDiffByNode(nodeName string) (string, error) {
	id, ok := m.sessionIDByNode(nodeName)
	if !ok {
		return "", errorx.Tag(errorx.ConsoleDisconnected, "no console session for node %q", nodeName)
	}
	return m.GetDiff(id)
}

// HasAccessedTerminal reports whether a read has ever been performed on
// this session.
func (m *Multiplexer) HasAccessedTerminal(sessionID string) bool {
	sess, ok := m.get(sessionID)
	if !ok {
		return false
	}
	return sess.hasAccessed()
}

// HasAccessedTerminalByNode is the node-name convenience form.
func (m *Multiplexer) HasAccessedTerminalByNode(nodeName string) bool {
	id, ok := m.sessionIDByNode(nodeName)
	if !ok {
		return false
	}
	return m.HasAccessedTerminal(id)
}

// IsConnectedByNode reports whether a live console session exists for
// the given node name, without touching cursor or access-tracking state.
func (m *Multiplexer) IsConnectedByNode(nodeName string) bool {
	_, ok := m.sessionIDByNode(nodeName)
	return ok
}

// Disconnect closes a single session and removes it from the index.
func (m *Multiplexer) Disconnect(sessionID string) error {
	m.mu.Lock()
	sess, ok := m.sessions[sessionID]
	if !ok {
		m.mu.Unlock()
		return errorx.Tag(errorx.ConsoleDisconnected, "unknown console session %q", sessionID)
	}
	delete(m.sessions, sessionID)
	delete(m.byNode, sess.NodeName)
	m.mu.Unlock()

	sess.close()
	return nil
}

// DisconnectByNode is the node-name convenience form of Disconnect.
func (m *Multiplexer) DisconnectByNode(nodeName string) error {
	id, ok := m.sessionIDByNode(nodeName)
	if !ok {
		return errorx.Tag(errorx.ConsoleDisconnected, "no console session for node %q", nodeName)
	}
	return m.Disconnect(id)
}

// CleanupExpired disconnects every session idle for more than 30
// minutes, invoked every 5 minutes by a task owned by the
// app context.
func (m *Multiplexer) CleanupExpired() {
	for _, id := range m.expiredSessionIDs() {
		if err := m.Disconnect(id); err != nil {
			logger.Debug("console cleanup: %v", err)
		}
	}
}

func (m *Multiplexer) expiredSessionIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var expired []string
	for id, sess := range m.sessions {
		if sess.idleSince() > expiryAge {
			expired = append(expired, id)
		}
	}
	return expired
}

// CloseAll cancels every ingestion task, closes every stream, and drops
// the session map. Cancellation is best-effort: a
// failure closing one session never prevents closing the rest.
func (m *Multiplexer) CloseAll() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		sessions = append(sessions, sess)
	}
	m.sessions = make(map[string]*Session)
	m.byNode = make(map[string]string)
	m.mu.Unlock()

	for _, sess := range sessions {
		sess.close()
	}
}

// SessionInfo is the read-only listing shape the resource router exposes
// for sessions://console.
type SessionInfo struct {
	ID           string    `json:"session_id"`
	NodeName     string    `json:"node_name"`
	Host         string    `json:"host"`
	Port         int       `json:"port"`
	Accessed     bool      `json:"accessed"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}

// ListSessions returns a snapshot of every live console session.
func (m *Multiplexer) ListSessions() []SessionInfo {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		sessions = append(sessions, sess)
	}
	m.mu.Unlock()

	infos := make([]SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		sess.mu.Lock()
		infos = append(infos, SessionInfo{
			ID:           sess.ID,
			NodeName:     sess.NodeName,
			Host:         sess.Host,
			Port:         sess.Port,
			Accessed:     sess.accessed,
			CreatedAt:    sess.createdAt,
			LastActivity: sess.lastActivity,
		})
		sess.mu.Unlock()
	}
	return infos
}

func (m *Multiplexer) get(sessionID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[sessionID]
	return sess, ok
}

func (m *Multiplexer) sessionIDByNode(nodeName string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byNode[nodeName]
	return id, ok
}

package errorx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllCodesRegistered(t *testing.T) {
	codes := []Code{
		ProjectNotFound, NodeNotFound, LinkNotFound, TemplateNotFound, DrawingNotFound, SnapshotNotFound,
		InvalidParameter, MissingParameter, PortInUse, NodeRunning, NodeStopped, InvalidNodeState, InvalidAdapter, InvalidPort,
		GNS3Unreachable, GNS3APIError, ConsoleDisconnected, ConsoleConnectionError, SSHConnectionFailed, SSHDisconnected,
		AuthFailed, TokenExpired, InvalidCredentials,
		InternalError, Timeout, OperationFailed,
	}
	for _, c := range codes {
		_, ok := registry[c]
		assert.True(t, ok, "code %s missing from registry", c)
		assert.NotEmpty(t, c.DefaultMessage())
		assert.NotEmpty(t, c.CategoryOf())
	}
}

func TestNew_PopulatesDefaults(t *testing.T) {
	r := New(NodeNotFound)
	assert.Equal(t, NodeNotFound, r.ErrorCode)
	assert.Equal(t, "node not found", r.Error)
	assert.False(t, r.Timestamp.IsZero())
	assert.NotEmpty(t, r.ServerVersion)
}

func TestNewf_OverridesMessage(t *testing.T) {
	r := Newf(InvalidAdapter, "unknown port \"ETH0\" on R1")
	assert.Equal(t, InvalidAdapter, r.ErrorCode)
	assert.Equal(t, "unknown port \"ETH0\" on R1", r.Error)
}

func TestChaining(t *testing.T) {
	r := New(PortInUse).
		WithDetails("adapter 0 port 0 already connected").
		WithSuggestion("call get_links() to inspect the existing link").
		WithContext(map[string]interface{}{"node": "R1"})

	assert.Equal(t, "adapter 0 port 0 already connected", r.Details)
	assert.Equal(t, "call get_links() to inspect the existing link", r.SuggestedAction)
	assert.Equal(t, "R1", r.Context["node"])
}

func TestTag_RoundTrips(t *testing.T) {
	err := Tag(NodeNotFound, "node %q not found in project %q", "R1", "pid-1")
	code, msg, ok := AsTagged(err)
	assert.True(t, ok)
	assert.Equal(t, NodeNotFound, code)
	assert.Contains(t, msg, "R1")
}

package link

import (
	"context"
	"testing"
	"time"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/errorx"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func r1r2Topology() ([]model.Node, []model.Link) {
	r1 := model.Node{
		ID: "n1", Name: "R1",
		Ports: []model.Port{
			{AdapterNumber: 0, PortNumber: 0, Name: "eth0"},
			{AdapterNumber: 0, PortNumber: 1, Name: "eth1"},
			{AdapterNumber: 1, PortNumber: 0, Name: "GigabitEthernet0/0"},
		},
	}
	r2 := model.Node{
		ID: "n2", Name: "R2",
		Ports: []model.Port{
			{AdapterNumber: 0, PortNumber: 0, Name: "eth0"},
		},
	}
	return []model.Node{r1, r2}, nil
}

func TestResolveAdapter_ByName(t *testing.T) {
	nodes, links := r1r2Topology()
	s := NewSnapshot(nodes, links)

	res, err := s.ResolveAdapter("R1", "eth1", 0)
	require.NoError(t, err)
	assert.Equal(t, AdapterResolution{AdapterNumber: 0, PortNumber: 1, PortName: "eth1"}, res)
}

func TestResolveAdapter_CaseSensitive(t *testing.T) {
	nodes, links := r1r2Topology()
	s := NewSnapshot(nodes, links)

	_, err := s.ResolveAdapter("R1", "ETH0", 0)
	require.Error(t, err)
	code, msg, ok := errorx.AsTagged(err)
	require.True(t, ok)
	assert.Equal(t, errorx.InvalidAdapter, code)
	assert.Contains(t, msg, "case-sensitive")
}

func TestResolveAdapter_IntegerBypassesNameLookup(t *testing.T) {
	nodes, links := r1r2Topology()
	s := NewSnapshot(nodes, links)

	res, err := s.ResolveAdapter("R1", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.AdapterNumber)
	assert.Equal(t, 0, res.PortNumber)
}

func existingLinkTopology() ([]model.Node, []model.Link) {
	nodes, _ := r1r2Topology()
	links := []model.Link{
		{
			ID: "L1",
			Endpoints: []model.LinkEndpoint{
				{NodeID: "n1", AdapterNumber: 0, PortNumber: 0},
				{NodeID: "n2", AdapterNumber: 0, PortNumber: 0},
			},
		},
	}
	return nodes, links
}

func TestValidate_PortInUseRejectsWholeBatch(t *testing.T) {
	nodes, links := existingLinkTopology()
	s := NewSnapshot(nodes, links)

	ops := []Op{
		{Connect: &ConnectOp{NodeA: "R1", NodeB: "R2", PortA: 0, PortB: 0, AdapterA: 0, AdapterB: 0}},
	}
	result := s.Validate(ops)
	assert.False(t, result.Valid)
	assert.Equal(t, 0, result.FailedIndex)
	assert.Equal(t, errorx.PortInUse, result.Code)
}

func TestValidate_DisconnectThenReconnectSameBatch(t *testing.T) {
	nodes, links := existingLinkTopology()
	s := NewSnapshot(nodes, links)

	ops := []Op{
		{Disconnect: &DisconnectOp{LinkID: "L1"}},
		{Connect: &ConnectOp{NodeA: "R1", NodeB: "R2", PortA: 0, PortB: 0, AdapterA: 0, AdapterB: 0}},
	}
	result := s.Validate(ops)
	require.True(t, result.Valid)
	require.Len(t, result.Resolved, 2)
	assert.Nil(t, result.Resolved[0])
	require.NotNil(t, result.Resolved[1])
}

func TestValidate_UnknownNodeFails(t *testing.T) {
	nodes, links := r1r2Topology()
	s := NewSnapshot(nodes, links)

	ops := []Op{
		{Connect: &ConnectOp{NodeA: "Ghost", NodeB: "R2", PortA: 0, PortB: 0}},
	}
	result := s.Validate(ops)
	assert.False(t, result.Valid)
	assert.Equal(t, errorx.NodeNotFound, result.Code)
}

func TestValidate_UnknownLinkFails(t *testing.T) {
	nodes, links := r1r2Topology()
	s := NewSnapshot(nodes, links)

	result := s.Validate([]Op{{Disconnect: &DisconnectOp{LinkID: "does-not-exist"}}})
	assert.False(t, result.Valid)
	assert.Equal(t, errorx.LinkNotFound, result.Code)
}

type fakeLinker struct {
	createErr error
	deleteErr error
	created   []model.LinkEndpoint
}

func (f *fakeLinker) CreateLink(ctx context.Context, projectID string, endpoints []model.LinkEndpoint, timeout time.Duration) (model.Link, error) {
	if f.createErr != nil {
		return model.Link{}, f.createErr
	}
	f.created = endpoints
	return model.Link{ID: "new-link", Endpoints: endpoints}, nil
}

func (f *fakeLinker) DeleteLink(ctx context.Context, projectID, linkID string, timeout time.Duration) error {
	return f.deleteErr
}

func TestExecute_DisconnectThenConnect_Succeeds(t *testing.T) {
	nodes, links := existingLinkTopology()
	s := NewSnapshot(nodes, links)

	ops := []Op{
		{Disconnect: &DisconnectOp{LinkID: "L1"}},
		{Connect: &ConnectOp{NodeA: "R1", NodeB: "R2", PortA: 0, PortB: 0, AdapterA: 0, AdapterB: 0}},
	}
	validation := s.Validate(ops)
	require.True(t, validation.Valid)

	fl := &fakeLinker{}
	result := s.Execute(context.Background(), fl, "pid-1", ops, validation.Resolved, time.Second)

	assert.Nil(t, result.Failed)
	require.Len(t, result.Completed, 2)
	assert.Equal(t, "disconnect", result.Completed[0].Action)
	assert.Equal(t, "connect", result.Completed[1].Action)
	assert.Equal(t, "new-link", result.Completed[1].LinkID)
}

func TestExecute_StopsAtFirstFailureNoRollback(t *testing.T) {
	nodes, links := r1r2Topology()
	nodes[1].Ports = append(nodes[1].Ports, model.Port{AdapterNumber: 0, PortNumber: 1, Name: "eth1"})
	s := NewSnapshot(nodes, links)

	ops := []Op{
		{Connect: &ConnectOp{NodeA: "R1", NodeB: "R2", PortA: 0, PortB: 0, AdapterA: 0, AdapterB: 0}},
		{Connect: &ConnectOp{NodeA: "R1", NodeB: "R2", PortA: 1, PortB: 1, AdapterA: 0, AdapterB: 0}},
	}
	validation := s.Validate(ops)
	require.True(t, validation.Valid)

	fl := &fakeLinker{}
	callCount := 0
	wrapped := &countingLinker{inner: fl, fail: 1, count: &callCount}
	result := s.Execute(context.Background(), wrapped, "pid-1", ops, validation.Resolved, time.Second)

	require.NotNil(t, result.Failed)
	assert.Equal(t, 1, result.Failed.Index)
	assert.Len(t, result.Completed, 1)
}

type countingLinker struct {
	inner Linker
	fail  int
	count *int
}

func (c *countingLinker) CreateLink(ctx context.Context, projectID string, endpoints []model.LinkEndpoint, timeout time.Duration) (model.Link, error) {
	idx := *c.count
	*c.count++
	if idx == c.fail {
		return model.Link{}, assertErr{"boom"}
	}
	return c.inner.CreateLink(ctx, projectID, endpoints, timeout)
}

func (c *countingLinker) DeleteLink(ctx context.Context, projectID, linkID string, timeout time.Duration) error {
	return c.inner.DeleteLink(ctx, projectID, linkID, timeout)
}

type assertErr struct{ msg string }

func (e assertErr) Error() string { return e.msg }

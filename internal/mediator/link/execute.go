package link

import (
	"context"
	"time"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/model"
)

// CompletedOperation records one successfully executed batch entry.
type CompletedOperation struct {
	Index     int    `json:"index"`
	Action    string `json:"action"`
	LinkID    string `json:"link_id,omitempty"`
	NodeA     string `json:"node_a,omitempty"`
	NodeB     string `json:"node_b,omitempty"`
	AdapterA  int    `json:"adapter_a,omitempty"`
	AdapterB  int    `json:"adapter_b,omitempty"`
	PortA     int    `json:"port_a,omitempty"`
	PortB     int    `json:"port_b,omitempty"`
	PortAName string `json:"port_a_name,omitempty"`
	PortBName string `json:"port_b_name,omitempty"`
}

// FailedOperation records the single batch entry whose execution failed,
// stopping the remaining entries in the batch.
type FailedOperation struct {
	Index  int         `json:"index"`
	Action string      `json:"action"`
	Op     interface{} `json:"operation"`
	Reason string      `json:"reason"`
}

// Result is the batched operation's outcome envelope, the one
// structural exception to the rest of the mediator's all-or-nothing
// success/error split: it reports both the operations that completed
// and the one that failed.
type Result struct {
	Completed []CompletedOperation `json:"completed"`
	Failed    *FailedOperation     `json:"failed"`
}

// Linker is the subset of the emulator client the executor needs; kept
// as an interface so link tests don't require a live HTTP server.
type Linker interface {
	CreateLink(ctx context.Context, projectID string, endpoints []model.LinkEndpoint, timeout time.Duration) (model.Link, error)
	DeleteLink(ctx context.Context, projectID, linkID string, timeout time.Duration) error
}

// Execute runs a validated batch in submission order against em,
// stopping at the first failure. Callers must only pass a batch that already
// passed Validate — Execute trusts the resolved adapter numbers and the
// node-by-name snapshot, re-resolving nothing.
func (s *Snapshot) Execute(ctx context.Context, em Linker, projectID string, ops []Op, resolved []*resolvedConnect, linkTimeout time.Duration) Result {
	var completed []CompletedOperation

	for idx, op := range ops {
		if op.Connect != nil {
			rc := resolved[idx]
			nodeA, _ := s.nodeByName(rc.op.NodeA)
			nodeB, _ := s.nodeByName(rc.op.NodeB)

			endpoints := []model.LinkEndpoint{
				{NodeID: nodeA.ID, NodeName: rc.op.NodeA, AdapterNumber: rc.adapterA.AdapterNumber, PortNumber: rc.op.PortA},
				{NodeID: nodeB.ID, NodeName: rc.op.NodeB, AdapterNumber: rc.adapterB.AdapterNumber, PortNumber: rc.op.PortB},
			}

			newLink, err := em.CreateLink(ctx, projectID, endpoints, linkTimeout)
			if err != nil {
				return Result{Completed: completed, Failed: &FailedOperation{
					Index: idx, Action: "connect", Op: rc.op, Reason: err.Error(),
				}}
			}

			completed = append(completed, CompletedOperation{
				Index: idx, Action: "connect", LinkID: newLink.ID,
				NodeA: rc.op.NodeA, NodeB: rc.op.NodeB,
				AdapterA: rc.adapterA.AdapterNumber, AdapterB: rc.adapterB.AdapterNumber,
				PortA: rc.op.PortA, PortB: rc.op.PortB,
				PortAName: rc.adapterA.PortName, PortBName: rc.adapterB.PortName,
			})
			continue
		}

		dc := op.Disconnect
		if err := em.DeleteLink(ctx, projectID, dc.LinkID, linkTimeout); err != nil {
			return Result{Completed: completed, Failed: &FailedOperation{
				Index: idx, Action: "disconnect", Op: dc, Reason: err.Error(),
			}}
		}
		completed = append(completed, CompletedOperation{Index: idx, Action: "disconnect", LinkID: dc.LinkID})
	}

	return Result{Completed: completed, Failed: nil}
}

package link

import (
	"fmt"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/errorx"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/model"
)

// ConnectOp is a batch entry requesting a new link between two named
// nodes. AdapterA/AdapterB hold whatever the caller supplied — an int or
// a port name — resolved against the snapshot during validation.
type ConnectOp struct {
	NodeA, NodeB       string
	PortA, PortB       int
	AdapterA, AdapterB interface{}
}

// DisconnectOp is a batch entry requesting an existing link's removal.
type DisconnectOp struct {
	LinkID string
}

// Op is one batch entry: exactly one of Connect or Disconnect is set.
type Op struct {
	Connect    *ConnectOp
	Disconnect *DisconnectOp
}

// Action names the kind of operation, used in result records.
func (o Op) Action() string {
	if o.Connect != nil {
		return "connect"
	}
	return "disconnect"
}

// resolvedConnect carries a ConnectOp plus its resolved adapter numbers,
// computed once during validation and reused during execution so the
// two phases never resolve names differently.
type resolvedConnect struct {
	op       ConnectOp
	adapterA AdapterResolution
	adapterB AdapterResolution
}

// ValidationResult is the outcome of validating one batch: either every
// operation is valid (Resolved holds a per-index parallel slice, nil
// entries for disconnects) or the first failing index and reason are
// reported.
type ValidationResult struct {
	Valid       bool
	FailedIndex int
	Reason      string
	Code        errorx.Code
	Resolved    []*resolvedConnect // index-aligned with the batch; nil for disconnects
}

// Validate checks every operation in the batch against the snapshot, in
// order, stopping at the first invalid one. Port occupancy is tracked in
// a working copy that advances as each op is accepted — a disconnect
// frees its link's ports immediately, a connect occupies its target
// ports immediately — so a later op in the batch sees the effect of an
// earlier one. The snapshot itself (nodes, links, adapter names) is
// read-only throughout and is reused unchanged for Execute.
func (s *Snapshot) Validate(ops []Op) ValidationResult {
	resolved := make([]*resolvedConnect, len(ops))
	working := s.clone()

	for idx, op := range ops {
		if op.Connect != nil {
			rc, code, reason := s.validateConnect(*op.Connect, working)
			if reason != "" {
				return ValidationResult{FailedIndex: idx, Reason: reason, Code: code}
			}
			nodeA, _ := s.nodeByName(rc.op.NodeA)
			nodeB, _ := s.nodeByName(rc.op.NodeB)
			pending := fmt.Sprintf("pending-op-%d", idx)
			working.occupy(nodeA.ID, rc.adapterA.AdapterNumber, rc.op.PortA, pending)
			working.occupy(nodeB.ID, rc.adapterB.AdapterNumber, rc.op.PortB, pending)
			resolved[idx] = rc
			continue
		}

		if code, reason := s.validateDisconnect(*op.Disconnect); reason != "" {
			return ValidationResult{FailedIndex: idx, Reason: reason, Code: code}
		}
		s.free(working, op.Disconnect.LinkID)
	}

	return ValidationResult{Valid: true, Resolved: resolved}
}

func (s *Snapshot) validateConnect(op ConnectOp, working portOccupancy) (*resolvedConnect, errorx.Code, string) {
	nodeA, ok := s.nodeByName(op.NodeA)
	if !ok {
		return nil, errorx.NodeNotFound, fmt.Sprintf("node %q not found in project", op.NodeA)
	}
	nodeB, ok := s.nodeByName(op.NodeB)
	if !ok {
		return nil, errorx.NodeNotFound, fmt.Sprintf("node %q not found in project", op.NodeB)
	}

	adapterA, err := s.ResolveAdapter(op.NodeA, op.AdapterA, op.PortA)
	if err != nil {
		code, msg, _ := errorx.AsTagged(err)
		return nil, code, msg
	}
	adapterB, err := s.ResolveAdapter(op.NodeB, op.AdapterB, op.PortB)
	if err != nil {
		code, msg, _ := errorx.AsTagged(err)
		return nil, code, msg
	}

	if linkID := working.linkUsing(nodeA.ID, adapterA.AdapterNumber, op.PortA); linkID != "" {
		return nil, errorx.PortInUse, fmt.Sprintf(
			"port %s adapter %d port %d is already connected (link: %s); call get_links() then disconnect with set_connection([{action: disconnect, link_id: %q}])",
			op.NodeA, adapterA.AdapterNumber, op.PortA, linkID, linkID)
	}
	if linkID := working.linkUsing(nodeB.ID, adapterB.AdapterNumber, op.PortB); linkID != "" {
		return nil, errorx.PortInUse, fmt.Sprintf(
			"port %s adapter %d port %d is already connected (link: %s); call get_links() then disconnect with set_connection([{action: disconnect, link_id: %q}])",
			op.NodeB, adapterB.AdapterNumber, op.PortB, linkID, linkID)
	}

	if reason := validatePortExists(nodeA, adapterA.AdapterNumber, op.PortA, op.NodeA); reason != "" {
		return nil, errorx.InvalidPort, reason
	}
	if reason := validatePortExists(nodeB, adapterB.AdapterNumber, op.PortB, op.NodeB); reason != "" {
		return nil, errorx.InvalidPort, reason
	}

	return &resolvedConnect{op: op, adapterA: adapterA, adapterB: adapterB}, "", ""
}

func (s *Snapshot) validateDisconnect(op DisconnectOp) (errorx.Code, string) {
	if _, ok := s.linkByID(op.LinkID); !ok {
		return errorx.LinkNotFound, fmt.Sprintf("link %q not found in project", op.LinkID)
	}
	return "", ""
}

// validatePortExists confirms (adapter, port) appears in the node's
// published port list. Nodes that publish no ports are unvalidated at
// this step.
func validatePortExists(node model.Node, adapter, port int, nodeName string) string {
	if len(node.Ports) == 0 {
		return ""
	}
	if _, ok := node.FindPort(adapter, port); ok {
		return ""
	}

	byAdapter := map[int][]int{}
	for _, p := range node.Ports {
		byAdapter[p.AdapterNumber] = append(byAdapter[p.AdapterNumber], p.PortNumber)
	}
	return fmt.Sprintf("node %s has no port at adapter %d port %d; available: %v", nodeName, adapter, port, byAdapter)
}

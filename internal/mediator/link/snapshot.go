// Package link implements two-phase batched mutation of link topology:
// resolve adapter names and validate the whole batch against one
// snapshot, then execute in order with no rollback on failure.
package link

import "github.com/chistokhinsv/gns3-mcp-go/internal/mediator/model"

// portKey addresses one physical port on one node.
type portKey struct {
	adapter int
	port    int
}

// Snapshot is the view of topology state a batch is validated against.
// Node, link, and adapter-name lookups are fixed at construction time,
// but port occupancy is walked forward op-by-op during Validate (see
// portOccupancy) so a batch that frees a port and immediately reuses it
// validates correctly.
type Snapshot struct {
	nodesByName map[string]model.Node
	nodesByID   map[string]model.Node
	linksByID   map[string]model.Link

	portUsage    map[string]map[portKey]string // node_id -> port -> link_id using it
	adapterNames map[string]map[string]portKey // node_name -> port_name -> (adapter, port)
}

// NewSnapshot builds a Snapshot from the emulator's current nodes and
// links, precomputing the lookup tables batch validation needs.
func NewSnapshot(nodes []model.Node, links []model.Link) *Snapshot {
	s := &Snapshot{
		nodesByName:  make(map[string]model.Node, len(nodes)),
		nodesByID:    make(map[string]model.Node, len(nodes)),
		linksByID:    make(map[string]model.Link, len(links)),
		portUsage:    make(map[string]map[portKey]string),
		adapterNames: make(map[string]map[string]portKey),
	}

	for _, n := range nodes {
		s.nodesByName[n.Name] = n
		s.nodesByID[n.ID] = n

		if len(n.Ports) == 0 {
			continue
		}
		names := make(map[string]portKey, len(n.Ports))
		for _, p := range n.Ports {
			if p.Name != "" {
				names[p.Name] = portKey{adapter: p.AdapterNumber, port: p.PortNumber}
			}
		}
		s.adapterNames[n.Name] = names
	}

	for _, l := range links {
		s.linksByID[l.ID] = l
		for _, ep := range l.Endpoints {
			key := portKey{adapter: ep.AdapterNumber, port: ep.PortNumber}
			if s.portUsage[ep.NodeID] == nil {
				s.portUsage[ep.NodeID] = make(map[portKey]string)
			}
			s.portUsage[ep.NodeID][key] = l.ID
		}
	}

	return s
}

// nodeByName returns the node and whether it exists.
func (s *Snapshot) nodeByName(name string) (model.Node, bool) {
	n, ok := s.nodesByName[name]
	return n, ok
}

// linkByID returns the link and whether it exists.
func (s *Snapshot) linkByID(id string) (model.Link, bool) {
	l, ok := s.linksByID[id]
	return l, ok
}

// linkUsing returns the link id occupying a (node, adapter, port) tuple as
// of when the snapshot was taken, or "" if the port was free. Used by
// read-only reporting; batch validation tracks occupancy separately
// through portOccupancy since it must reflect ops already accepted
// earlier in the same batch.
func (s *Snapshot) linkUsing(nodeID string, adapter, port int) string {
	ports, ok := s.portUsage[nodeID]
	if !ok {
		return ""
	}
	return ports[portKey{adapter: adapter, port: port}]
}

// portOccupancy is a working copy of port usage that Validate advances
// op-by-op: freeing a disconnected link's ports and occupying a
// connect's target ports as soon as that op is accepted, so a later op
// in the same batch sees the effect of an earlier one.
type portOccupancy map[string]map[portKey]string

// clone seeds a working copy from the snapshot's as-of-batch-start state.
func (s *Snapshot) clone() portOccupancy {
	working := make(portOccupancy, len(s.portUsage))
	for nodeID, ports := range s.portUsage {
		copied := make(map[portKey]string, len(ports))
		for k, v := range ports {
			copied[k] = v
		}
		working[nodeID] = copied
	}
	return working
}

// linkUsing returns the link id occupying a (node, adapter, port) tuple
// in the working occupancy, or "" if the port is free.
func (o portOccupancy) linkUsing(nodeID string, adapter, port int) string {
	ports, ok := o[nodeID]
	if !ok {
		return ""
	}
	return ports[portKey{adapter: adapter, port: port}]
}

// occupy marks a port as used by linkID.
func (o portOccupancy) occupy(nodeID string, adapter, port int, linkID string) {
	if o[nodeID] == nil {
		o[nodeID] = make(map[portKey]string)
	}
	o[nodeID][portKey{adapter: adapter, port: port}] = linkID
}

// free clears whichever ports were occupied by linkID, using the
// snapshot's link records to find them.
func (s *Snapshot) free(o portOccupancy, linkID string) {
	l, ok := s.linksByID[linkID]
	if !ok {
		return
	}
	for _, ep := range l.Endpoints {
		if ports, ok := o[ep.NodeID]; ok {
			delete(ports, portKey{adapter: ep.AdapterNumber, port: ep.PortNumber})
		}
	}
}

package model

// Port is addressable on a node by (AdapterNumber, PortNumber); Name is a
// human convenience that may repeat across nodes but not within one node.
type Port struct {
	AdapterNumber int    `json:"adapter_number"`
	PortNumber    int    `json:"port_number"`
	Name          string `json:"name,omitempty"`
}

// Console describes a node's telnet console endpoint.
type Console struct {
	Host string `json:"host"`
	Port int    `json:"port"`
	Type string `json:"console_type,omitempty"`
}

// Position is the node's geometric placement on the topology canvas.
type Position struct {
	X      int  `json:"x"`
	Y      int  `json:"y"`
	Z      int  `json:"z"`
	Locked bool `json:"locked"`
}

// RunState enumerates a node's lifecycle state.
type RunState string

const (
	RunStateStarted   RunState = "started"
	RunStateStopped   RunState = "stopped"
	RunStateSuspended RunState = "suspended"
)

// Node is a member of a project. Ports is nil when the
// emulator did not publish a port list for this node type; validators
// must treat that as "unvalidated", never as "zero ports".
type Node struct {
	ID       string   `json:"node_id"`
	Name     string   `json:"name"`
	Type     string   `json:"node_type"`
	Status   RunState `json:"status"`
	Console  Console  `json:"console"`
	Position Position `json:"position"`
	Ports    []Port   `json:"ports,omitempty"`

	// Properties carries node-type-specific fields (ram, cpus, adapters, …)
	// the emulator returns alongside the stable envelope above. Kept as a
	// raw map because its shape varies per node type; callers that need a
	// specific field reach into it with gjson/sjson (see emulator package).
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// HasPublishedPorts reports whether this node type exposes an explicit
// port list. Node types without one (cloud, NAT) address ports purely
// by adapter number.
func (n Node) HasPublishedPorts() bool {
	return n.Ports != nil
}

// FindPort looks up a port by (adapter, port) pair.
func (n Node) FindPort(adapter, port int) (Port, bool) {
	for _, p := range n.Ports {
		if p.AdapterNumber == adapter && p.PortNumber == port {
			return p, true
		}
	}
	return Port{}, false
}

// FindPortByName looks up a port by its case-sensitive human name.
func (n Node) FindPortByName(name string) (Port, bool) {
	for _, p := range n.Ports {
		if p.Name == name {
			return p, true
		}
	}
	return Port{}, false
}

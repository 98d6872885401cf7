package link

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/errorx"
)

const maxListedPortNames = 15

// AdapterResolution is the resolved (adapter_number, port_number,
// canonical_port_name) for a (node_name, adapter_spec) pair.
type AdapterResolution struct {
	AdapterNumber int
	PortNumber    int
	PortName      string
}

// ResolveAdapter resolves a caller-supplied adapter specifier, which is
// either a non-negative integer (bypasses name lookup entirely) or a
// port name (case-sensitive lookup against the node's published ports).
func (s *Snapshot) ResolveAdapter(nodeName string, spec interface{}, callerPort int) (AdapterResolution, error) {
	switch v := spec.(type) {
	case int:
		return s.resolveNumeric(v, callerPort), nil
	case int64:
		return s.resolveNumeric(int(v), callerPort), nil
	case float64:
		return s.resolveNumeric(int(v), callerPort), nil
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return s.resolveNumeric(n, callerPort), nil
		}
		return s.resolveNamed(nodeName, v)
	default:
		return AdapterResolution{}, errorx.Tag(errorx.InvalidAdapter, "adapter specifier must be an integer or a port name, got %T", spec)
	}
}

func (s *Snapshot) resolveNumeric(adapter, callerPort int) AdapterResolution {
	return AdapterResolution{
		AdapterNumber: adapter,
		PortNumber:    callerPort,
		PortName:      fmt.Sprintf("adapter%d/%d", adapter, callerPort),
	}
}

func (s *Snapshot) resolveNamed(nodeName, portName string) (AdapterResolution, error) {
	names, ok := s.adapterNames[nodeName]
	if !ok {
		return AdapterResolution{}, errorx.Tag(errorx.InvalidAdapter, "node %q has no port information available", nodeName)
	}
	key, ok := names[portName]
	if !ok {
		return AdapterResolution{}, errorx.Tag(errorx.InvalidAdapter, "unknown port %q on node %q (case-sensitive); available: %s", portName, nodeName, availablePortNames(names))
	}
	return AdapterResolution{AdapterNumber: key.adapter, PortNumber: key.port, PortName: portName}, nil
}

func availablePortNames(names map[string]portKey) string {
	all := make([]string, 0, len(names))
	for n := range names {
		all = append(all, n)
	}
	sort.Strings(all)

	if len(all) <= maxListedPortNames {
		return fmt.Sprintf("%v", all)
	}
	return fmt.Sprintf("%v (and %d more)", all[:maxListedPortNames], len(all)-maxListedPortNames)
}

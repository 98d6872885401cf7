package link

import (
	"fmt"
	"sort"
	"strings"
)

// PortInfo returns a human-readable rundown of a node's ports and their
// in-use/free status.
func (s *Snapshot) PortInfo(nodeName string) (string, bool) {
	node, ok := s.nodeByName(nodeName)
	if !ok {
		return "", false
	}
	if len(node.Ports) == 0 {
		return fmt.Sprintf("node %s has no port information available", nodeName), true
	}

	byAdapter := map[int][]string{}
	for _, p := range node.Ports {
		status := "free"
		if s.linkUsing(node.ID, p.AdapterNumber, p.PortNumber) != "" {
			status = "in use"
		}
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("port%d", p.PortNumber)
		}
		byAdapter[p.AdapterNumber] = append(byAdapter[p.AdapterNumber], fmt.Sprintf("  %d: %s (%s)", p.PortNumber, name, status))
	}

	adapters := make([]int, 0, len(byAdapter))
	for a := range byAdapter {
		adapters = append(adapters, a)
	}
	sort.Ints(adapters)

	var b strings.Builder
	fmt.Fprintf(&b, "Ports on %s:\n", nodeName)
	for _, a := range adapters {
		lines := byAdapter[a]
		sort.Strings(lines)
		fmt.Fprintf(&b, "Adapter %d:\n", a)
		for _, l := range lines {
			b.WriteString(l)
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n"), true
}

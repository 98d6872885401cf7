// Package prompt holds parameterized instructional text returned
// verbatim to agents, no logic beyond template substitution.
package prompt

import (
	"fmt"
	"sort"
	"strings"
)

// Prompt names one workflow prompt and renders it against caller
// arguments.
type Prompt struct {
	Name        string
	Description string
	Arguments   []string
	Render      func(args map[string]string) string
}

var registry = map[string]Prompt{
	"topology_discovery": {
		Name:        "topology_discovery",
		Description: "Walks an agent through orienting itself in an unfamiliar project's topology.",
		Arguments:   []string{"project_id"},
		Render:      renderTopologyDiscovery,
	},
	"ssh_setup": {
		Name:        "ssh_setup",
		Description: "Walks an agent through configuring a node's network, registering an SSH proxy route, and confirming reachability.",
		Arguments:   []string{"node_name", "proxy_url"},
		Render:      renderSSHSetup,
	},
}

// Get looks up a prompt by name.
func Get(name string) (Prompt, bool) {
	p, ok := registry[name]
	return p, ok
}

// All returns every registered prompt, sorted by name.
func All() []Prompt {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	prompts := make([]Prompt, 0, len(names))
	for _, n := range names {
		prompts = append(prompts, registry[n])
	}
	return prompts
}

func renderTopologyDiscovery(args map[string]string) string {
	pid := args["project_id"]
	if pid == "" {
		pid = "{project_id}"
	}
	return strings.TrimSpace(fmt.Sprintf(`
Orient yourself in this project before making changes:

1. Call query_resource("projects://%s/topology") to get every node, every
   link, and a per-node port report in one call.
2. Cross-reference node run-states: nodes reporting "started" already have
   a usable console; "stopped" nodes need set_node(action="start") first.
3. For any node you intend to cable, read its entry in the topology
   response's port_reports map before calling set_connection — it
   already lists which ports are free.
4. Only after you understand the existing topology should you submit a
   set_connection batch. A disconnect and the reconnect that reuses its
   ports can go in the same batch — validation walks operations in
   order and accounts for each one's effect before checking the next.
`, pid))
}

func renderSSHSetup(args map[string]string) string {
	node := args["node_name"]
	if node == "" {
		node = "{node_name}"
	}
	proxy := args["proxy_url"]
	if proxy == "" {
		proxy = "{proxy_url}"
	}
	return strings.TrimSpace(fmt.Sprintf(`
Setting up SSH reachability for node %s:

1. Call configure_node_network(node_name=%q, proxy=%q) to set the node's
   network-facing properties and register its SSH-proxy route in one
   call — every later SSH operation on this node routes through %s.
2. Confirm the node has booted and has an IP address by calling
   send_and_wait_console(node_name=%q, data="\n", pattern="login:",
   timeout=60) — this blocks until the login prompt appears or the
   timeout elapses.
3. Once reachable, SSH operations for this node (query_resource under
   sessions://ssh/%s, or the sidecar's own execute endpoint) will be
   routed to the proxy registered in step 1 instead of the default.
`, node, node, proxy, proxy, node, node))
}

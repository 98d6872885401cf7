package transport

import "github.com/mark3labs/mcp-go/server"

// ServeStdio runs the mediator over the stdio transport, the default
// northbound surface for a locally-spawned agent process.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

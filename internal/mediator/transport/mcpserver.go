// Package transport adapts the tool/resource/prompt registries onto the
// northbound surfaces a running mediator exposes: stdio and HTTP.
package transport

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/app"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/errorx"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/prompt"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/resource"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/tool"
	"github.com/chistokhinsv/gns3-mcp-go/pkg/logger"
	"github.com/chistokhinsv/gns3-mcp-go/pkg/version"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// staticResources lists the resource:// roots that are registered as
// real MCP resources; everything below a root (per-project, per-node,
// per-session detail) is reached through the query_resource tool
// instead, since that URI grammar has variable-depth segments that
// don't map onto mcp-go's fixed resource templates.
var staticResources = []struct {
	uri, name, description string
}{
	{"projects://", "projects", "Every open and closed project known to the emulator."},
	{"templates://", "templates", "Every node template registered with the emulator."},
	{"sessions://console", "console-sessions", "Every active console multiplexer session."},
	{"sessions://ssh", "ssh-sessions", "Every active SSH-proxy session."},
	{"proxies://", "proxies", "Lab SSH proxies discovered by the SSH-proxy sidecar."},
}

// NewMCPServer builds the protocol server and registers every tool,
// static resource, and workflow prompt the mediator exposes.
func NewMCPServer(deps *app.Context) *server.MCPServer {
	s := server.NewMCPServer("gns3-mcp", version.String(),
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	for _, spec := range tool.All() {
		registerTool(s, deps, spec)
	}
	for _, r := range staticResources {
		registerResource(s, deps, r.uri, r.name, r.description)
	}
	for _, p := range prompt.All() {
		registerPrompt(s, p)
	}

	return s
}

func registerTool(s *server.MCPServer, deps *app.Context, spec tool.Spec) {
	mcpTool := mcp.NewTool(spec.Name, mcp.WithDescription(spec.Description))
	s.AddTool(mcpTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		result, rec := tool.Dispatch(ctx, deps, spec.Name, args)
		if auditErr := deps.Audit.Record(spec.Name, args, recordToErr(rec)); auditErr != nil {
			logger.Warn("audit record for %s: %v", spec.Name, auditErr)
		}
		if rec != nil {
			return jsonToolResult(rec), nil
		}
		return jsonToolResult(result), nil
	})
}

func registerResource(s *server.MCPServer, deps *app.Context, uri, name, description string) {
	res := mcp.NewResource(uri, name, mcp.WithResourceDescription(description), mcp.WithMIMEType("application/json"))
	s.AddResource(res, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		value, rec := resource.Query(ctx, deps, req.Params.URI)
		if rec != nil {
			return nil, fmt.Errorf("%s: %s", rec.ErrorCode, rec.Error)
		}
		data, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode resource %s: %w", req.Params.URI, err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: req.Params.URI, MIMEType: "application/json", Text: string(data)},
		}, nil
	})
}

func registerPrompt(s *server.MCPServer, p prompt.Prompt) {
	var opts []mcp.PromptOption
	opts = append(opts, mcp.WithPromptDescription(p.Description))
	for _, arg := range p.Arguments {
		opts = append(opts, mcp.WithArgument(arg))
	}

	s.AddPrompt(mcp.NewPrompt(p.Name, opts...), func(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		text := p.Render(req.Params.Arguments)
		return mcp.NewGetPromptResult(p.Description, []mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleAssistant, mcp.NewTextContent(text)),
		}), nil
	})
}

// jsonToolResult serializes either a success value or an *errorx.Record
// to the JSON document the tool-invocation surface returns as its
// result text.
func jsonToolResult(v interface{}) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf(`{"error_code":%q,"error":%q}`, errorx.InternalError, err.Error()))
	}
	return mcp.NewToolResultText(string(data))
}

func recordToErr(rec *errorx.Record) error {
	if rec == nil {
		return nil
	}
	return fmt.Errorf("%s: %s", rec.ErrorCode, rec.Error)
}

package tool

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/app"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/errorx"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/model"
)

const sendAndWaitPollInterval = 500 * time.Millisecond

func init() {
	register(Spec{Name: "send_console", Description: "Send data to a node's console.", Handler: handleSendConsole})
	register(Spec{Name: "read_console", Description: "Read buffered output from a node's console.", Handler: handleReadConsole})
	register(Spec{Name: "send_and_wait_console", Description: "Send data then poll for a regex match in console output.", Handler: handleSendAndWaitConsole})
	register(Spec{Name: "send_keystroke", Description: "Send a named key (arrow keys, function keys, control characters) to a node's console.", Handler: handleSendKeystroke})
	register(Spec{Name: "disconnect_console", Description: "Close a node's console session.", Handler: handleDisconnectConsole})
	register(Spec{Name: "get_console_status", Description: "Report whether a node has a live console session.", Handler: handleGetConsoleStatus})
}

// ensureConsoleSession resolves the node and connects its console
// session if one is not already live, reusing an existing session
// otherwise.
func ensureConsoleSession(ctx context.Context, deps *app.Context, projectID string, args map[string]interface{}) (model.Node, *errorx.Record) {
	node, rec := resolveNode(ctx, deps, projectID, args)
	if rec != nil {
		return model.Node{}, rec
	}
	if node.Console.Host == "" {
		return model.Node{}, errorx.New(errorx.ConsoleConnectionError).
			WithDetails(fmt.Sprintf("node %q has no console endpoint published", node.Name))
	}
	if _, err := deps.Console.Connect(ctx, node.Console.Host, node.Console.Port, node.Name); err != nil {
		return model.Node{}, errorx.FromAny(err)
	}
	return node, nil
}

func handleSendConsole(ctx context.Context, deps *app.Context, args map[string]interface{}) (interface{}, *errorx.Record) {
	projectID, rec := currentProject(ctx, deps)
	if rec != nil {
		return nil, rec
	}
	node, rec := ensureConsoleSession(ctx, deps, projectID, args)
	if rec != nil {
		return nil, rec
	}
	data, rec := requireString(args, "data")
	if rec != nil {
		return nil, rec
	}
	raw := getBool(args, "raw", false)

	if err := deps.Console.SendByNode(node.Name, normalizeOutbound(data, raw)); err != nil {
		return nil, errorx.FromAny(err)
	}
	return map[string]interface{}{"node_name": node.Name, "sent": true}, nil
}

func handleReadConsole(ctx context.Context, deps *app.Context, args map[string]interface{}) (interface{}, *errorx.Record) {
	projectID, rec := currentProject(ctx, deps)
	if rec != nil {
		return nil, rec
	}
	node, rec := ensureConsoleSession(ctx, deps, projectID, args)
	if rec != nil {
		return nil, rec
	}

	mode := getString(args, "mode", "diff")
	var out string
	var err error
	switch mode {
	case "diff":
		out, err = deps.Console.GetDiffByNode(node.Name)
	case "output":
		out, err = deps.Console.GetOutputByNode(node.Name)
	default:
		return nil, invalidParam("mode", "must be \"diff\" or \"output\"")
	}
	if err != nil {
		return nil, errorx.FromAny(err)
	}
	return map[string]interface{}{"node_name": node.Name, "mode": mode, "output": out}, nil
}

func handleSendAndWaitConsole(ctx context.Context, deps *app.Context, args map[string]interface{}) (interface{}, *errorx.Record) {
	projectID, rec := currentProject(ctx, deps)
	if rec != nil {
		return nil, rec
	}
	node, rec := ensureConsoleSession(ctx, deps, projectID, args)
	if rec != nil {
		return nil, rec
	}
	data, rec := requireString(args, "data")
	if rec != nil {
		return nil, rec
	}
	pattern, rec := requireString(args, "pattern")
	if rec != nil {
		return nil, rec
	}
	raw := getBool(args, "raw", false)
	timeoutSeconds := getFloat(args, "timeout", 30)

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, invalidParam("pattern", err.Error())
	}

	if err := deps.Console.SendByNode(node.Name, normalizeOutbound(data, raw)); err != nil {
		return nil, errorx.FromAny(err)
	}

	start := time.Now()
	deadline := start.Add(time.Duration(timeoutSeconds * float64(time.Second)))
	var accumulated strings.Builder

	ticker := time.NewTicker(sendAndWaitPollInterval)
	defer ticker.Stop()

	for {
		chunk, err := deps.Console.GetDiffByNode(node.Name)
		if err != nil {
			return nil, errorx.FromAny(err)
		}
		accumulated.WriteString(chunk)

		if re.MatchString(accumulated.String()) {
			return map[string]interface{}{
				"pattern_found":    true,
				"timeout_occurred": false,
				"wait_time":        time.Since(start).Seconds(),
				"output":           accumulated.String(),
			}, nil
		}
		if time.Now().After(deadline) {
			return map[string]interface{}{
				"pattern_found":    false,
				"timeout_occurred": true,
				"wait_time":        time.Since(start).Seconds(),
				"output":           accumulated.String(),
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, errorx.New(errorx.Timeout).WithDetails("caller context cancelled while waiting")
		case <-ticker.C:
		}
	}
}

func handleSendKeystroke(ctx context.Context, deps *app.Context, args map[string]interface{}) (interface{}, *errorx.Record) {
	projectID, rec := currentProject(ctx, deps)
	if rec != nil {
		return nil, rec
	}
	node, rec := ensureConsoleSession(ctx, deps, projectID, args)
	if rec != nil {
		return nil, rec
	}
	key, rec := requireString(args, "key")
	if rec != nil {
		return nil, rec
	}

	sequence, ok := keystrokes[key]
	if !ok {
		return nil, invalidParam("key", fmt.Sprintf("unknown key name %q", key))
	}

	if err := deps.Console.SendByNode(node.Name, []byte(sequence)); err != nil {
		return nil, errorx.FromAny(err)
	}
	return map[string]interface{}{"node_name": node.Name, "key": key, "sent": true}, nil
}

func handleDisconnectConsole(ctx context.Context, deps *app.Context, args map[string]interface{}) (interface{}, *errorx.Record) {
	projectID, rec := currentProject(ctx, deps)
	if rec != nil {
		return nil, rec
	}
	node, rec := resolveNode(ctx, deps, projectID, args)
	if rec != nil {
		return nil, rec
	}

	if err := deps.Console.DisconnectByNode(node.Name); err != nil {
		return nil, errorx.FromAny(err)
	}
	return map[string]interface{}{"node_name": node.Name, "disconnected": true}, nil
}

func handleGetConsoleStatus(ctx context.Context, deps *app.Context, args map[string]interface{}) (interface{}, *errorx.Record) {
	projectID, rec := currentProject(ctx, deps)
	if rec != nil {
		return nil, rec
	}
	node, rec := resolveNode(ctx, deps, projectID, args)
	if rec != nil {
		return nil, rec
	}

	return map[string]interface{}{
		"node_name":             node.Name,
		"console_host":          node.Console.Host,
		"console_port":          node.Console.Port,
		"connected":             deps.Console.IsConnectedByNode(node.Name),
		"has_accessed_terminal": deps.Console.HasAccessedTerminalByNode(node.Name),
	}, nil
}

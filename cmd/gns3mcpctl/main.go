// Command gns3mcpctl is the operator debug CLI: a small set of
// subcommands that exercise the mediator's own packages directly
// (no running server required) to inspect projects, tail a console, or
// preview a workflow prompt's rendered text.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/chistokhinsv/gns3-mcp-go/cmd/gns3mcpctl/cmd"
)

func main() {
	if err := cmd.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

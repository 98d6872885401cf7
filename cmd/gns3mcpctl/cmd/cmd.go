// Package cmd is gns3mcpctl's command tree: a cobra root command that
// groups diagnostic subcommands talking to the mediator's own packages
// in-process, with no server framework in between.
package cmd

import (
	"github.com/chistokhinsv/gns3-mcp-go/pkg/version"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the gns3mcpctl command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:     "gns3mcpctl",
		Short:   "gns3mcpctl inspects a gns3-mcp mediator's emulator state from the operator's terminal",
		Version: version.String(),
	}

	root.AddCommand(newProjectsCommand())
	root.AddCommand(newConsoleCommand())
	root.AddCommand(newPromptsCommand())
	root.AddCommand(newVersionCommand())

	return root
}

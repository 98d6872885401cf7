package cmd

import (
	"fmt"
	"strings"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/prompt"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

func newPromptsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompts",
		Short: "Inspect the mediator's workflow prompts",
	}
	cmd.AddCommand(newPromptsListCommand())
	cmd.AddCommand(newPromptsShowCommand())
	return cmd
}

func newPromptsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every registered workflow prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range prompt.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", p.Name, p.Description)
			}
			return nil
		},
	}
}

func newPromptsShowCommand() *cobra.Command {
	var promptArgs []string
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Render a workflow prompt's instructional text, markdown-formatted for the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := prompt.Get(args[0])
			if !ok {
				return fmt.Errorf("no prompt named %q", args[0])
			}

			values := map[string]string{}
			for _, kv := range promptArgs {
				parts := strings.SplitN(kv, "=", 2)
				if len(parts) != 2 {
					return fmt.Errorf("invalid --arg %q, expected key=value", kv)
				}
				values[parts[0]] = parts[1]
			}

			text := p.Render(values)
			fmt.Fprintln(cmd.OutOrStdout(), renderMarkdown(text))
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&promptArgs, "arg", nil, "A key=value pair to substitute into the prompt template (repeatable).")
	return cmd
}

// renderMarkdown renders prompt text for terminal display.
func renderMarkdown(text string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithColorProfile(termenv.ANSI256),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return text
	}
	rendered, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(rendered, "\n")
}

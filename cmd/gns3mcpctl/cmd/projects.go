package cmd

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func newProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Inspect emulator projects",
	}
	cmd.AddCommand(newProjectsListCommand())
	cmd.AddCommand(newProjectsNodesCommand())
	return cmd
}

func newProjectsListCommand() *cobra.Command {
	flags := newConnectFlags()
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every project the emulator knows about",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			appCtx, err := flags.build(ctx)
			if err != nil {
				return err
			}
			defer appCtx.Shutdown()

			projects, err := appCtx.Emulator.GetProjects(ctx)
			if err != nil {
				return fmt.Errorf("list projects: %w", err)
			}

			table := uitable.New()
			table.AddRow("PROJECT_ID", "NAME", "STATUS")
			for _, p := range projects {
				table.AddRow(p.ID, p.Name, p.Status)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
	flags.addTo(cmd.Flags())
	return cmd
}

func newProjectsNodesCommand() *cobra.Command {
	flags := newConnectFlags()
	cmd := &cobra.Command{
		Use:   "nodes <project_id>",
		Short: "List every node in a project, with run state and console endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			appCtx, err := flags.build(ctx)
			if err != nil {
				return err
			}
			defer appCtx.Shutdown()

			nodes, err := appCtx.Emulator.GetNodes(ctx, args[0])
			if err != nil {
				return fmt.Errorf("list nodes: %w", err)
			}

			table := uitable.New()
			table.AddRow("NODE_ID", "NAME", "TYPE", "STATUS", "CONSOLE")
			for _, n := range nodes {
				table.AddRow(n.ID, n.Name, n.Type, n.Status, fmt.Sprintf("%s:%d", n.Console.Host, n.Console.Port))
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
	flags.addTo(cmd.Flags())
	return cmd
}

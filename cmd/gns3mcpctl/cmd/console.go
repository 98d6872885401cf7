package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

// tailPollInterval matches the poll cadence send_and_wait_console uses
// internally (tool/console.go's sendAndWaitPollInterval) so an operator
// watching live output sees the same latency an agent would.
const tailPollInterval = 500 * time.Millisecond

func newConsoleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Work with a node's console session",
	}
	cmd.AddCommand(newConsoleTailCommand())
	return cmd
}

func newConsoleTailCommand() *cobra.Command {
	var projectID string
	flags := newConnectFlags()
	cmd := &cobra.Command{
		Use:   "tail <node_name>",
		Short: "Connect to a node's console and stream its output until Ctrl+C",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			nodeName := args[0]

			appCtx, err := flags.build(ctx)
			if err != nil {
				return err
			}
			defer appCtx.Shutdown()

			if projectID == "" {
				projects, err := appCtx.Emulator.GetProjects(ctx)
				if err != nil {
					return fmt.Errorf("list projects: %w", err)
				}
				var opened []string
				for _, p := range projects {
					if p.IsOpened() {
						opened = append(opened, p.ID)
					}
				}
				if len(opened) == 1 {
					projectID = opened[0]
				}
			}
			if projectID == "" {
				return fmt.Errorf("no project specified and no single opened project to default to; pass --project")
			}

			nodes, err := appCtx.Emulator.GetNodes(ctx, projectID)
			if err != nil {
				return fmt.Errorf("list nodes: %w", err)
			}
			var host string
			var port int
			var found bool
			for _, n := range nodes {
				if n.Name == nodeName {
					host, port, found = n.Console.Host, n.Console.Port, true
					break
				}
			}
			if !found {
				return fmt.Errorf("no node named %q in project %s", nodeName, projectID)
			}

			if !appCtx.Console.IsConnectedByNode(nodeName) {
				if _, err := appCtx.Console.Connect(ctx, host, port, nodeName); err != nil {
					return fmt.Errorf("connect to console: %w", err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "tailing console for %s (%s:%d), Ctrl+C to stop\n\n", nodeName, host, port)

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

			ticker := time.NewTicker(tailPollInterval)
			defer ticker.Stop()
			for {
				select {
				case <-stop:
					return nil
				case <-ticker.C:
					chunk, err := appCtx.Console.GetDiffByNode(nodeName)
					if err != nil {
						return fmt.Errorf("read console: %w", err)
					}
					if chunk != "" {
						fmt.Fprint(cmd.OutOrStdout(), chunk)
					}
				}
			}
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "Project id (defaults to the single opened project, if there is exactly one).")
	flags.addTo(cmd.Flags())
	return cmd
}

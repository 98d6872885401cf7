// Command gns3-mcp is the mediator server binary: it assembles the app
// context, wires the tool/resource/prompt registries onto a transport,
// and serves until interrupted, following a single
// Config→Complete→New→Start lifecycle since this binary owns one
// process-wide dependency graph, not a pluggable server framework.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/app"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/config"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/transport"
	"github.com/chistokhinsv/gns3-mcp-go/pkg/logger"
	"github.com/chistokhinsv/gns3-mcp-go/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	configFile := prescanConfigFlag(os.Args[1:])

	opts := config.NewOptions()
	if err := config.Load(opts, configFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cmd := newRootCommand(opts, configFile)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// prescanConfigFlag resolves --config before cobra's normal flag parse
// runs, so config.Load can overlay file values under the flag defaults
// per its own documented precedence order.
func prescanConfigFlag(args []string) string {
	fs := pflag.NewFlagSet("prescan", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	var configFile string
	fs.StringVar(&configFile, "config", "", "")
	_ = fs.Parse(args)
	return configFile
}

func newRootCommand(opts *config.Options, configFile string) *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:     "gns3-mcp",
		Short:   "gns3-mcp exposes a network emulator as an MCP tool surface for agents",
		Version: version.String(),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.SetLevel(logLevel)
			return run(opts)
		},
	}

	cmd.Flags().String("config", configFile, "Path to a YAML or JSON config file.")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, or error.")
	opts.AddFlags(cmd.Flags())

	return cmd
}

func run(opts *config.Options) error {
	if err := opts.Complete(); err != nil {
		return err
	}
	if errs := opts.Validate(); len(errs) > 0 {
		return errors.Join(errs...)
	}
	if opts.Transport.APIKey == "" {
		opts.Transport.APIKey = os.Getenv("MCP_API_KEY")
	}

	appCtx, err := (&app.Config{Options: opts}).Complete().New()
	if err != nil {
		return fmt.Errorf("build app context: %w", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	appCtx.Start(context.Background())

	go func() {
		<-stop
		logger.Info("received interrupt, shutting down")
		appCtx.Shutdown()
		os.Exit(130)
	}()

	mcpServer := transport.NewMCPServer(appCtx)

	if opts.Transport.Transport == "http" {
		handler := transport.NewHTTPHandler(mcpServer, transport.HTTPConfig{
			APIKey: opts.Transport.APIKey,
			Debug:  opts.Transport.Debug,
		})
		addr := fmt.Sprintf("%s:%d", opts.Transport.HTTPHost, opts.Transport.HTTPPort)
		logger.Info("serving MCP over HTTP on %s", addr)
		if err := http.ListenAndServe(addr, handler); err != nil {
			return fmt.Errorf("http transport: %w", err)
		}
		return nil
	}

	logger.Info("serving MCP over stdio")
	if err := transport.ServeStdio(mcpServer); err != nil {
		return fmt.Errorf("stdio transport: %w", err)
	}
	appCtx.Shutdown()
	return nil
}

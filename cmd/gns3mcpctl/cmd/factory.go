package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/app"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/config"
	"github.com/spf13/pflag"
)

// connectFlags holds the subset of config.Options an operator needs to
// point gns3mcpctl at a running emulator: a thin flag set bound
// directly onto the real Options struct, not a parallel copy.
type connectFlags struct {
	opts *config.Options
}

func newConnectFlags() *connectFlags {
	return &connectFlags{opts: config.NewOptions()}
}

func (f *connectFlags) addTo(fs *pflag.FlagSet) {
	f.opts.Emulator.AddFlags(fs)
	f.opts.Audit.AddFlags(fs)
}

// build authenticates once and returns a usable app.Context; the caller
// must call Shutdown when done. Unlike the server binary, gns3mcpctl
// never calls Start — there is no background auth loop or console
// sweep for a one-shot operator command.
func (f *connectFlags) build(ctx context.Context) (*app.Context, error) {
	if err := f.opts.Emulator.Complete(); err != nil {
		return nil, err
	}
	if errs := f.opts.Emulator.Validate(); len(errs) > 0 {
		return nil, errs[0]
	}

	appCtx, err := (&app.Config{Options: f.opts}).Complete().New()
	if err != nil {
		return nil, fmt.Errorf("build app context: %w", err)
	}

	authCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := appCtx.Emulator.Authenticate(authCtx, true, 2*time.Second, 3); err != nil {
		appCtx.Shutdown()
		return nil, fmt.Errorf("authenticate with emulator: %w", err)
	}
	return appCtx, nil
}

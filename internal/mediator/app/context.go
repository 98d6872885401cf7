// Package app owns the lifetime of the emulator client, console
// multiplexer, SSH-proxy client, audit store, and the process-wide
// current-project-id and SSHProxyMap, assembled through a
// Config→Complete→New bootstrap sequence.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/audit"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/config"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/console"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/emulator"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/sshproxy"
	"github.com/chistokhinsv/gns3-mcp-go/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Config is the pre-build configuration for Context, mirroring the
// teacher's Config→Complete→New idiom.
type Config struct {
	Options *config.Options
}

type completedConfig struct {
	*Config
}

// Complete fills in anything Config needs resolved before New can run
// (the SSH-proxy default URL depends on the emulator host).
func (c *Config) Complete() *completedConfig {
	c.Options.SSHProxy.ResolveDefault(c.Options.Emulator.Host)
	return &completedConfig{c}
}

// Context is the assembled dependency graph tool and resource handlers
// resolve against.
type Context struct {
	Emulator *emulator.Client
	Console  *console.Multiplexer
	SSHProxy *sshproxy.Client
	Audit    *audit.Store

	opts *config.Options

	mu               sync.RWMutex
	currentProjectID string

	tasks  *errgroup.Group
	cancel context.CancelFunc
}

// New builds a Context from a completed Config; it does not yet start
// any background task (call Start for that), keeping construction
// separate from lifecycle.
func (c *completedConfig) New() (*Context, error) {
	opts := c.Options

	em := emulator.New(emulator.Config{
		Host:      opts.Emulator.Host,
		Port:      opts.Emulator.Port,
		UseHTTPS:  opts.Emulator.UseHTTPS,
		VerifySSL: opts.Emulator.VerifySSL,
		Username:  opts.Emulator.Username,
		Password:  opts.Emulator.Password,
		Timeout:   opts.Emulator.Timeout,
	})

	auditStore, err := audit.Open(opts.Audit.Path)
	if err != nil {
		return nil, fmt.Errorf("open audit store: %w", err)
	}

	return &Context{
		Emulator: em,
		Console:  console.New(),
		SSHProxy: sshproxy.New(opts.SSHProxy.DefaultBaseURL),
		Audit:    auditStore,
		opts:     opts,
	}, nil
}

// CurrentProjectID returns the process-wide current project id, or ""
// if none is set.
func (ctx *Context) CurrentProjectID() string {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.currentProjectID
}

// SetCurrentProjectID updates the process-wide current project id.
// Project handlers call this on list/open/create/close.
func (ctx *Context) SetCurrentProjectID(id string) {
	ctx.mu.Lock()
	ctx.currentProjectID = id
	ctx.mu.Unlock()
}

// ClearCurrentProjectID resets the slot to unset, e.g. on detected
// closure during validation.
func (ctx *Context) ClearCurrentProjectID() {
	ctx.SetCurrentProjectID("")
}

// Start spawns the background authentication loop and the periodic
// console cleanup task. Both run until Shutdown cancels them.
func (ctx *Context) Start(parent context.Context) {
	runCtx, cancel := context.WithCancel(parent)
	ctx.cancel = cancel

	g, gctx := errgroup.WithContext(runCtx)
	ctx.tasks = g

	g.Go(func() error {
		ctx.authLoop(gctx)
		return nil
	})
	g.Go(func() error {
		ctx.cleanupLoop(gctx)
		return nil
	})
}

// Shutdown cancels all background tasks, awaits them, then tears down
// owned resources in order: cancel tasks, close all console sessions,
// close the audit store. The emulator's HTTP client is not closed
// explicitly.
func (ctx *Context) Shutdown() {
	if ctx.cancel != nil {
		ctx.cancel()
	}
	if ctx.tasks != nil {
		_ = ctx.tasks.Wait()
	}
	ctx.Console.CloseAll()
	if err := ctx.Audit.Close(); err != nil {
		logger.Warn("closing audit store: %v", err)
	}
}

func (ctx *Context) cleanupLoop(gctx context.Context) {
	ticker := time.NewTicker(ctx.opts.Console.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-gctx.Done():
			return
		case <-ticker.C:
			ctx.Console.CleanupExpired()
		}
	}
}

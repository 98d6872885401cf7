package app

import (
	"context"
	"time"

	"github.com/chistokhinsv/gns3-mcp-go/pkg/logger"
)

// backoffSeconds is the fixed retry backoff schedule: index advances on
// failure, capped at the last entry, and resets to 0 on the first
// success.
var backoffSeconds = []int{5, 10, 30, 60, 300}

const (
	authAttemptTimeout = 3 * time.Second
	keepAliveSleep     = 300 * time.Second
)

// authLoop is the background authentication task. It lets the tool
// server accept calls immediately at startup: handlers either
// succeed once authentication completes, or observe IsConnected()==false
// and return a structured unreachable error.
func (ctx *Context) authLoop(gctx context.Context) {
	backoffIdx := 0

	for {
		attemptCtx, cancel := context.WithTimeout(gctx, authAttemptTimeout)
		err := ctx.Emulator.Authenticate(attemptCtx, false, 0, 0)
		cancel()

		if err == nil {
			backoffIdx = 0
			ctx.autoDetectProject(gctx)
			if !sleepOrDone(gctx, keepAliveSleep) {
				return
			}
			continue
		}

		logger.Debug("background authentication failed: %v", err)
		delay := time.Duration(backoffSeconds[backoffIdx]) * time.Second
		if backoffIdx < len(backoffSeconds)-1 {
			backoffIdx++
		}
		if !sleepOrDone(gctx, delay) {
			return
		}
	}
}

// autoDetectProject sets current_project_id when exactly one project
// reports status "opened" and no project is currently selected.
func (ctx *Context) autoDetectProject(gctx context.Context) {
	if ctx.CurrentProjectID() != "" {
		return
	}

	projects, err := ctx.Emulator.GetProjects(gctx)
	if err != nil {
		logger.Debug("auto-detect project: list projects failed: %v", err)
		return
	}

	var opened []string
	for _, p := range projects {
		if p.IsOpened() {
			opened = append(opened, p.ID)
		}
	}
	if len(opened) == 1 {
		ctx.SetCurrentProjectID(opened[0])
		logger.Info("auto-detected current project %s", opened[0])
	}
}

// sleepOrDone waits for d or cancellation, returning false if the
// context was cancelled first (so the caller exits cleanly).
func sleepOrDone(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

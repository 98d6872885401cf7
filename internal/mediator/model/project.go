// Package model declares the entities exchanged with the agent and
// parsed from the emulator. These are plain data types; the
// packages that own their lifecycle (console, link, app) live elsewhere.
package model

// Project is a named container opened at most once at a time in the
// mediator.
type Project struct {
	ID     string `json:"project_id"`
	Name   string `json:"name"`
	Status string `json:"status"` // "opened" or "closed"
}

// IsOpened reports whether the emulator currently has this project open.
func (p Project) IsOpened() bool {
	return p.Status == "opened"
}

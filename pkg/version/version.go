// Package version holds the mediator's semver, surfaced in every
// ErrorRecord and via the HTTP /version endpoint and the
// gns3mcpctl version subcommand.
package version

// GitVersion is overridden at build time via -ldflags
// "-X github.com/chistokhinsv/gns3-mcp-go/pkg/version.GitVersion=v1.2.3".
var GitVersion = "0.1.0-dev"

// String returns the semver string used in ErrorRecord.ServerVersion.
func String() string {
	return GitVersion
}

package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// AuditOptions configures the boltdb-backed operation audit log.
type AuditOptions struct {
	Path string `json:"path" mapstructure:"path"`
}

// NewAuditOptions returns the documented default path.
func NewAuditOptions() *AuditOptions {
	return &AuditOptions{Path: "gns3-mcp-audit.db"}
}

// AddFlags registers the audit store flags.
func (o *AuditOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Path, "audit.path", o.Path, "Path to the boltdb-backed operation audit store.")
}

// Validate checks structural correctness.
func (o *AuditOptions) Validate() []error {
	if o.Path == "" {
		return []error{fmt.Errorf("audit.path is required")}
	}
	return nil
}

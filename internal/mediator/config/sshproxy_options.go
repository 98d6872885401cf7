package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// SSHProxyOptions configures the default base URL for the SSH-proxy
// sidecar collaborator.
type SSHProxyOptions struct {
	DefaultBaseURL string `json:"default_base_url" mapstructure:"default_base_url"`
}

// NewSSHProxyOptions returns an empty DefaultBaseURL; ResolveDefault
// later fills it as http://<emulator host>:8022.
func NewSSHProxyOptions() *SSHProxyOptions {
	return &SSHProxyOptions{DefaultBaseURL: ""}
}

// AddFlags registers the SSH-proxy flags.
func (o *SSHProxyOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.DefaultBaseURL, "ssh-proxy-url", o.DefaultBaseURL, "Default SSH-proxy base URL (falls back to emulator host on port 8022 if unset).")
}

// Validate is a no-op placeholder; an empty URL is valid and resolved
// against the emulator host at app-context construction time.
func (o *SSHProxyOptions) Validate() []error {
	return nil
}

// ResolveDefault fills DefaultBaseURL from the emulator host when unset.
func (o *SSHProxyOptions) ResolveDefault(emulatorHost string) {
	if o.DefaultBaseURL == "" {
		o.DefaultBaseURL = fmt.Sprintf("http://%s:8022", emulatorHost)
	}
}

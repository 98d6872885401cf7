package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// TransportOptions selects and configures the northbound tool-invocation
// transport.
type TransportOptions struct {
	Transport string `json:"transport" mapstructure:"transport"` // "stdio" or "http"
	HTTPHost  string `json:"http_host" mapstructure:"http_host"`
	HTTPPort  int    `json:"http_port" mapstructure:"http_port"`
	APIKey    string `json:"-" mapstructure:"api_key"`
	Debug     bool   `json:"debug" mapstructure:"debug"`
}

// NewTransportOptions returns the documented defaults: stdio transport.
func NewTransportOptions() *TransportOptions {
	return &TransportOptions{
		Transport: "stdio",
		HTTPHost:  "0.0.0.0",
		HTTPPort:  8765,
	}
}

// AddFlags registers the transport selection flags.
func (o *TransportOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Transport, "transport", o.Transport, "Tool-invocation transport: stdio or http.")
	fs.StringVar(&o.HTTPHost, "http-host", o.HTTPHost, "HTTP transport bind host.")
	fs.IntVar(&o.HTTPPort, "http-port", o.HTTPPort, "HTTP transport bind port.")
	fs.BoolVar(&o.Debug, "debug", o.Debug, "Expose pprof debug routes on the HTTP transport.")
}

// Validate checks structural correctness.
func (o *TransportOptions) Validate() []error {
	var errs []error
	if o.Transport != "stdio" && o.Transport != "http" {
		errs = append(errs, fmt.Errorf("transport must be \"stdio\" or \"http\", got %q", o.Transport))
	}
	if o.Transport == "http" && (o.HTTPPort <= 0 || o.HTTPPort > 65535) {
		errs = append(errs, fmt.Errorf("http port %d out of range", o.HTTPPort))
	}
	return errs
}

// Package config aggregates the mediator's configuration surface using
// an Options/AddFlags/Validate/Complete idiom, with spf13/pflag flags
// layered under spf13/viper so flags, environment, a config file, and
// defaults all resolve through one call.
package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Options is the top-level configuration aggregate, one sub-struct per
// concern.
type Options struct {
	Emulator  *EmulatorOptions  `json:"emulator" mapstructure:"emulator"`
	Console   *ConsoleOptions   `json:"console" mapstructure:"console"`
	Transport *TransportOptions `json:"transport" mapstructure:"transport"`
	SSHProxy  *SSHProxyOptions  `json:"ssh_proxy" mapstructure:"ssh_proxy"`
	Audit     *AuditOptions     `json:"audit" mapstructure:"audit"`
}

// NewOptions builds an Options aggregate with every sub-struct at its
// documented default.
func NewOptions() *Options {
	return &Options{
		Emulator:  NewEmulatorOptions(),
		Console:   NewConsoleOptions(),
		Transport: NewTransportOptions(),
		SSHProxy:  NewSSHProxyOptions(),
		Audit:     NewAuditOptions(),
	}
}

// AddFlags registers every sub-option's flags onto fs.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.Emulator.AddFlags(fs)
	o.Console.AddFlags(fs)
	o.Transport.AddFlags(fs)
	o.SSHProxy.AddFlags(fs)
	o.Audit.AddFlags(fs)
}

// Validate runs every sub-option's Validate and aggregates errors.
func (o *Options) Validate() []error {
	var errs []error
	errs = append(errs, o.Emulator.Validate()...)
	errs = append(errs, o.Console.Validate()...)
	errs = append(errs, o.Transport.Validate()...)
	errs = append(errs, o.SSHProxy.Validate()...)
	errs = append(errs, o.Audit.Validate()...)
	return errs
}

// Complete fills in any value that can only be resolved after flags and
// environment have both been read, such as a password sourced from the
// environment rather than a flag default.
func (o *Options) Complete() error {
	if err := o.Emulator.Complete(); err != nil {
		return fmt.Errorf("emulator options: %w", err)
	}
	return nil
}

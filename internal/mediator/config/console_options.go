package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// ConsoleOptions holds console tuning values. Only SweepInterval is
// applied (it drives the app context's cleanup task). BufferCapBytes and
// ExpiryAge are validated but not passed to the multiplexer, which uses
// its own fixed 10 MiB buffer cap and 30-minute expiry.
type ConsoleOptions struct {
	BufferCapBytes int           `json:"buffer_cap_bytes" mapstructure:"buffer_cap_bytes"`
	ExpiryAge      time.Duration `json:"expiry_age" mapstructure:"expiry_age"`
	SweepInterval  time.Duration `json:"sweep_interval" mapstructure:"sweep_interval"`
}

// NewConsoleOptions returns the default tuning: 10 MiB buffer, 30
// minute expiry, 5 minute sweep.
func NewConsoleOptions() *ConsoleOptions {
	return &ConsoleOptions{
		BufferCapBytes: 10 * 1024 * 1024,
		ExpiryAge:      30 * time.Minute,
		SweepInterval:  5 * time.Minute,
	}
}

// AddFlags registers the console tuning flags.
func (o *ConsoleOptions) AddFlags(fs *pflag.FlagSet) {
	fs.IntVar(&o.BufferCapBytes, "console.buffer-cap-bytes", o.BufferCapBytes, "Per-session console ring buffer cap, in bytes (validated only; the multiplexer's cap is fixed).")
	fs.DurationVar(&o.ExpiryAge, "console.expiry-age", o.ExpiryAge, "Idle duration after which a console session is swept (validated only; the multiplexer's expiry is fixed).")
	fs.DurationVar(&o.SweepInterval, "console.sweep-interval", o.SweepInterval, "Interval between expiry sweeps.")
}

// Validate checks structural correctness.
func (o *ConsoleOptions) Validate() []error {
	var errs []error
	if o.BufferCapBytes <= 0 {
		errs = append(errs, fmt.Errorf("console buffer cap must be positive"))
	}
	if o.ExpiryAge <= 0 {
		errs = append(errs, fmt.Errorf("console expiry age must be positive"))
	}
	if o.SweepInterval <= 0 {
		errs = append(errs, fmt.Errorf("console sweep interval must be positive"))
	}
	return errs
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
)

// EmulatorOptions configures the connection to the network-emulation
// platform.
type EmulatorOptions struct {
	Host      string        `json:"host" mapstructure:"host"`
	Port      int           `json:"port" mapstructure:"port"`
	Username  string        `json:"username" mapstructure:"username"`
	Password  string        `json:"-" mapstructure:"password"`
	UseHTTPS  bool          `json:"use_https" mapstructure:"use_https"`
	VerifySSL bool          `json:"verify_ssl" mapstructure:"verify_ssl"`
	Timeout   time.Duration `json:"timeout" mapstructure:"timeout"`
}

// NewEmulatorOptions returns the documented defaults.
func NewEmulatorOptions() *EmulatorOptions {
	return &EmulatorOptions{
		Host:      "localhost",
		Port:      3080,
		Username:  "admin",
		VerifySSL: true,
		Timeout:   30 * time.Second,
	}
}

// AddFlags registers the emulator connection flags.
func (o *EmulatorOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Host, "host", o.Host, "Emulator host.")
	fs.IntVar(&o.Port, "port", o.Port, "Emulator port.")
	fs.StringVar(&o.Username, "username", o.Username, "Emulator username.")
	fs.StringVar(&o.Password, "password", o.Password, "Emulator password (discouraged — prefer PASSWORD or GNS3_PASSWORD env).")
	fs.BoolVar(&o.UseHTTPS, "use-https", o.UseHTTPS, "Use HTTPS to reach the emulator.")
	fs.BoolVar(&o.VerifySSL, "verify-ssl", o.VerifySSL, "Verify the emulator's TLS certificate.")
}

// Complete reads the password from the environment when the flag was
// left empty, checking GNS3_PASSWORD then PASSWORD.
func (o *EmulatorOptions) Complete() error {
	if o.Password != "" {
		return nil
	}
	if v := os.Getenv("GNS3_PASSWORD"); v != "" {
		o.Password = v
		return nil
	}
	if v := os.Getenv("PASSWORD"); v != "" {
		o.Password = v
		return nil
	}
	return fmt.Errorf("no emulator credential: set --password, PASSWORD, or GNS3_PASSWORD")
}

// Validate checks structural correctness only; Complete handles the
// credential requirement since it depends on environment lookup order.
func (o *EmulatorOptions) Validate() []error {
	var errs []error
	if o.Host == "" {
		errs = append(errs, fmt.Errorf("emulator host is required"))
	}
	if o.Port <= 0 || o.Port > 65535 {
		errs = append(errs, fmt.Errorf("emulator port %d out of range", o.Port))
	}
	return errs
}

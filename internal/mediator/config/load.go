package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load overlays an optional config file onto opts (already populated
// with struct defaults by NewOptions). Call AddFlags after Load so
// cobra's flag defaults reflect the file, then let cobra's own flag
// parsing apply the highest-precedence layer — CLI flags — directly
// onto the same struct fields pflag.*Var bound them to.
//
// Environment-variable precedence is handled per-field rather than via
// a blanket viper.AutomaticEnv overlay: EmulatorOptions.Complete reads
// PASSWORD/GNS3_PASSWORD itself, the one setting with a documented
// environment-variable fallback.
func Load(opts *Options, configFile string) error {
	if configFile == "" {
		return nil
	}
	v := viper.New()
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %s: %w", configFile, err)
	}
	if err := v.Unmarshal(opts); err != nil {
		return fmt.Errorf("unmarshal config file %s: %w", configFile, err)
	}
	return nil
}

package config

import "errors"

// ObservabilityConfig controls the optional New Relic integration.
type ObservabilityConfig struct {
	Enabled     bool   `koanf:"enabled"`
	LicenseKey  string `koanf:"license_key"`
	ServiceName string `koanf:"service_name"`
	Environment string `koanf:"environment"`
}

// DefaultObservabilityConfig returns the disabled default.
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{Enabled: false}
}

// Validate checks that an enabled config carries everything the agent needs.
func (o *ObservabilityConfig) Validate() error {
	if !o.Enabled {
		return nil
	}
	if o.LicenseKey == "" {
		return errors.New("observability enabled but license_key is empty")
	}
	if o.ServiceName == "" {
		return errors.New("observability enabled but service_name is empty")
	}
	return nil
}

package observability

import "time"

// Config is the configuration block for observability exporters.
type Config struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string        `yaml:"endpoint" mapstructure:"endpoint" validate:"required_if=Enabled true"`
	Insecure   bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64       `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	Interval   time.Duration `yaml:"interval" mapstructure:"interval" validate:"gte=0"`
}

// ApplyDefaults fills unset exporter settings.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.Interval == 0 {
		c.Interval = 15 * time.Second
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
}

// TracerConfig builds a tracer configuration for the named service.
func (c Config) TracerConfig(serviceName, version, environment string) TracerConfig {
	tc := DefaultTracerConfig(serviceName)
	tc.ServiceVersion = version
	tc.Environment = environment
	tc.Endpoint = c.Endpoint
	tc.Insecure = c.Insecure
	tc.SampleRate = c.SampleRate
	return tc
}

// MeterConfig builds a meter configuration for the named service.
func (c Config) MeterConfig(serviceName, version, environment string) MeterConfig {
	mc := DefaultMeterConfig(serviceName)
	mc.ServiceVersion = version
	mc.Environment = environment
	mc.Endpoint = c.Endpoint
	mc.Insecure = c.Insecure
	mc.Interval = c.Interval
	return mc
}

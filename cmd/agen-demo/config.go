package main

import (
	"fmt"
	"time"

	"github.com/statewalker/statewalker-utils/bridge"
	"github.com/statewalker/statewalker-utils/config"
	"github.com/statewalker/statewalker-utils/logger"
	"github.com/statewalker/statewalker-utils/observability"
	"github.com/statewalker/statewalker-utils/version"
)

// Config is the agen-demo configuration.
type Config struct {
	config.BaseConfig `yaml:",inline" mapstructure:",squash"`

	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Producer      ProducerConfig       `yaml:"producer" mapstructure:"producer"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ProducerConfig shapes the simulated producer and the consumer's queue.
type ProducerConfig struct {
	// Count is the number of messages produced before completing.
	Count int `yaml:"count" mapstructure:"count" validate:"gte=1"`
	// MaxDelay bounds the random pause before each produced message and
	// after each consumed one.
	MaxDelay time.Duration `yaml:"max_delay" mapstructure:"max_delay" validate:"gte=0"`
	// Policy is the queue policy: fifo, latest or drop-oldest.
	Policy string `yaml:"policy" mapstructure:"policy" validate:"oneof=fifo latest drop-oldest"`
	// Capacity bounds the drop-oldest queue.
	Capacity int `yaml:"capacity" mapstructure:"capacity" validate:"gte=0"`
	// Await makes the producer wait for each message to be consumed.
	Await bool `yaml:"await" mapstructure:"await"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "agen-demo"
	}
	if c.Version == "" {
		c.Version = version.Get().Version
	}
	c.BaseConfig.ApplyDefaults()
	c.Logging.ApplyDefaults()
	c.Observability.ApplyDefaults()

	if c.Producer.Count == 0 {
		c.Producer.Count = 100
	}
	if c.Producer.MaxDelay == 0 {
		c.Producer.MaxDelay = time.Second
	}
	if c.Producer.Policy == "" {
		c.Producer.Policy = bridge.PolicyFIFO
	}
	if c.Producer.Policy == bridge.PolicyDropOldest && c.Producer.Capacity == 0 {
		c.Producer.Capacity = 10
	}
}

// Validate checks struct tags, then the settings tags cannot express.
func (c *Config) Validate() error {
	if err := config.Validate(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if _, err := bridge.PolicyFor[string](c.Producer.Policy, c.Producer.Capacity); err != nil {
		return fmt.Errorf("config.producer: %w", err)
	}
	return nil
}

// Package config loads and validates service configuration.
//
// LoadConfig reads config.yml with Viper, layers environment variables (and an
// optional .env file loaded with godotenv) on top, and unmarshals the result
// into the caller's struct. Validate checks `validate:"..."` struct tags with
// go-playground/validator and reports failures as an INVALID_INPUT AppError.
//
// # Usage
//
//	var cfg DemoConfig
//	if err := config.LoadConfig("agen-demo", &cfg); err != nil { ... }
//	cfg.ApplyDefaults()
//	if err := config.Validate(&cfg); err != nil { ... }
//
// Environment variables override file values: PRODUCER_MAX_DELAY sets
// producer.max_delay.
package config

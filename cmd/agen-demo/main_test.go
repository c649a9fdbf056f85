package main

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/statewalker/statewalker-utils/bridge"
	apperrors "github.com/statewalker/statewalker-utils/errors"
	"github.com/statewalker/statewalker-utils/logger"
)

func testConfig() Config {
	cfg := Config{
		Logging:  logger.Config{Level: "error", Output: "discard"},
		Producer: ProducerConfig{Count: 20, MaxDelay: 2 * time.Millisecond, Await: true},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestConfig_Defaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Name != serviceName || cfg.Producer.Policy != bridge.PolicyFIFO || cfg.Producer.Count != 100 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Version == "" {
		t.Error("expected version from build info")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown policy", func(c *Config) { c.Producer.Policy = "lifo" }},
		{"negative count", func(c *Config) { c.Producer.Count = -1 }},
		{"drop-oldest without capacity", func(c *Config) {
			c.Producer.Policy = bridge.PolicyDropOldest
			c.Producer.Capacity = 0
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if !apperrors.HasCode(err, apperrors.ErrCodeInvalidInput) {
				t.Errorf("expected INVALID_INPUT, got %v", err)
			}
		})
	}
}

func TestConsume_AwaitingProducerDeliversEverything(t *testing.T) {
	cfg := testConfig()
	seq, err := newSequence(cfg.Producer, logger.Nop(), bridge.WithLogger(logger.Nop()))
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	summary, err := consume(context.Background(), cfg.Producer, seq, func(msg string) { got = append(got, msg) })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Received != cfg.Producer.Count || len(got) != cfg.Producer.Count {
		t.Fatalf("expected %d messages, got %d", cfg.Producer.Count, summary.Received)
	}
	for i, msg := range got {
		if want := fmt.Sprintf("Hello - %d", i); msg != want {
			t.Fatalf("message %d: expected %q, got %q", i, want, msg)
		}
	}
	if summary.Stats.Discarded != 0 {
		t.Errorf("expected nothing discarded, got %d", summary.Stats.Discarded)
	}
}

func TestConsume_LatestPolicyMayDrop(t *testing.T) {
	cfg := testConfig()
	cfg.Producer.Policy = bridge.PolicyLatest
	cfg.Producer.Await = false
	cfg.Producer.MaxDelay = 0

	seq, err := newSequence(cfg.Producer, logger.Nop(), bridge.WithLogger(logger.Nop()))
	if err != nil {
		t.Fatal(err)
	}
	summary, err := consume(context.Background(), cfg.Producer, seq, func(string) {})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Received > cfg.Producer.Count {
		t.Errorf("received more than produced: %d", summary.Received)
	}
	if got := summary.Stats.Delivered + summary.Stats.Discarded; got != summary.Stats.Pushed {
		t.Errorf("every push must settle: pushed=%d delivered+discarded=%d", summary.Stats.Pushed, got)
	}
}

func TestConsume_CancelStopsProducer(t *testing.T) {
	cfg := testConfig()
	cfg.Producer.Count = 1000
	seq, err := newSequence(cfg.Producer, logger.Nop(), bridge.WithLogger(logger.Nop()))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	received := 0
	_, err = consume(ctx, cfg.Producer, seq, func(string) {
		received++
		if received == 3 {
			cancel()
		}
	})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	if seq.State() != bridge.StateClosed {
		t.Errorf("expected sequence closed, got %s", seq.State())
	}
}

// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

// Package config provides configuration loading for the instrument approval service.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete service configuration
type Config struct {
	NATS      NATSConfig      `yaml:"nats"`
	Approvals ApprovalsConfig `yaml:"approvals"`
	Retry     RetryConfig     `yaml:"retry"`
}

// NATSConfig configures the NATS connection
type NATSConfig struct {
	// URL is the NATS server URL
	URL string `yaml:"url"`
	// Timeout is the connection and request timeout
	Timeout time.Duration `yaml:"timeout"`
	// MaxReconnect is the maximum number of reconnect attempts
	MaxReconnect int `yaml:"max_reconnect"`
	// ReconnectWait is the wait between reconnect attempts
	ReconnectWait time.Duration `yaml:"reconnect_wait"`
}

// ApprovalsConfig configures the approval workflow feature
type ApprovalsConfig struct {
	// Enabled toggles the whole approval workflow. Read once at startup and
	// passed into the orchestrators; never consulted as ambient state.
	Enabled bool `yaml:"enabled"`
}

// RetryConfig bounds the optimistic-concurrency retry of vote transactions
type RetryConfig struct {
	// MaxAttempts is the conflict retry budget for one vote transaction
	MaxAttempts int `yaml:"max_attempts"`
	// BaseDelay is the initial backoff delay
	BaseDelay time.Duration `yaml:"base_delay"`
	// MaxDelay caps the backoff delay
	MaxDelay time.Duration `yaml:"max_delay"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		NATS: NATSConfig{
			URL:           "nats://localhost:4222",
			Timeout:       10 * time.Second,
			MaxReconnect:  3,
			ReconnectWait: 2 * time.Second,
		},
		Approvals: ApprovalsConfig{
			Enabled: true,
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			BaseDelay:   50 * time.Millisecond,
			MaxDelay:    500 * time.Millisecond,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.NATS.URL == "" {
		return fmt.Errorf("nats.url is required")
	}
	if c.NATS.Timeout <= 0 {
		return fmt.Errorf("nats.timeout must be positive")
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1")
	}
	if c.Retry.BaseDelay <= 0 || c.Retry.MaxDelay < c.Retry.BaseDelay {
		return fmt.Errorf("retry delays must be positive and max_delay >= base_delay")
	}
	return nil
}

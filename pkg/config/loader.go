// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/councilsuite/instrument-approval-service/pkg/constants"
)

// Load loads configuration with layered precedence:
// 1. Default config
// 2. YAML file named by APPROVAL_CONFIG_FILE (optional)
// 3. Environment variable overrides (NATS_URL, ENABLE_APPROVALS)
func Load() (*Config, error) {
	config := DefaultConfig()

	path := os.Getenv(constants.EnvConfigFile)
	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
		slog.Debug("loaded config file", "path", path)
		config = fileConfig
	}

	if url := os.Getenv(constants.EnvNATSURL); url != "" {
		config.NATS.URL = url
	}
	if enabled := os.Getenv(constants.EnvApprovalsEnabled); enabled == "true" || enabled == "false" {
		config.Approvals.Enabled = enabled == "true"
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadFromFile reads a YAML configuration file over the defaults, so a partial
// file only overrides the keys it names.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	return config, nil
}

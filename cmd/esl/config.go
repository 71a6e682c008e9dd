// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

// cliConfig is the shape of the --config file: JSON-with-comments, parsed
// with github.com/tailscale/hujson and standardized into plain JSON for
// encoding/json.Unmarshal.
type cliConfig struct {
	Debug      bool     `json:"debug"`
	Extensions []string `json:"extensions"`
}

// loadConfig reads and parses the config file at path.
func loadConfig(path string) (*cliConfig, error) {
	huJSONData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %v", path, err)
	}
	jsonData, err := hujson.Standardize(huJSONData)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %v", path, err)
	}
	cfg := new(cliConfig)
	if err := json.Unmarshal(jsonData, cfg); err != nil {
		return nil, fmt.Errorf("read config %s: %v", path, err)
	}
	return cfg, nil
}

// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    *cliConfig
	}{
		{
			name:    "Plain",
			content: `{"debug": true, "extensions": ["basic", "math"]}` + "\n",
			want:    &cliConfig{Debug: true, Extensions: []string{"basic", "math"}},
		},
		{
			name: "WithComments",
			content: `{
				// only the basic builtins, no float/table helpers
				"extensions": ["basic"],
			}` + "\n",
			want: &cliConfig{Extensions: []string{"basic"}},
		},
		{
			name:    "Empty",
			content: `{}` + "\n",
			want:    &cliConfig{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.jwcc")
			if err := os.WriteFile(path, []byte(test.content), 0o666); err != nil {
				t.Fatal(err)
			}

			got, err := loadConfig(path)
			if err != nil {
				t.Fatal("loadConfig:", err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("-want +got:\n%s", diff)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "does-not-exist.jwcc"))
	if err == nil {
		t.Fatal("loadConfig: expected an error for a missing file")
	}
}

// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// extensionListFlag is a pflag.Value backing --extension: a repeatable or
// comma-separated flag naming which extension groups (see
// selectExtensionGroup) to install, overriding any "extensions" list from
// a --config file.
type extensionListFlag struct {
	names *[]string
}

func (f extensionListFlag) String() string {
	if f.names == nil {
		return ""
	}
	return strings.Join(*f.names, ",")
}

func (f extensionListFlag) Set(s string) error {
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := selectExtensionGroup(name); !ok {
			return fmt.Errorf("unknown extension group %q", name)
		}
		*f.names = append(*f.names, name)
	}
	return nil
}

func (f extensionListFlag) Type() string { return "stringList" }

var _ pflag.Value = extensionListFlag{}

// registerExtensionFlag adds --extension to fs, appending to the
// destination slice each time it is passed.
func registerExtensionFlag(fs *pflag.FlagSet, dest *[]string) {
	fs.Var(extensionListFlag{names: dest}, "extension", "install only the named extension `group`s (repeatable, comma-separated); default is all groups")
}

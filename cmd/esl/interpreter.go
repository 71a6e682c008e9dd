// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/go-esl/esl/esl"
	"github.com/go-esl/esl/extensions"
	"github.com/go-esl/esl/value"
)

// newInterpreter builds an esl.Interpreter for code, applying this
// process's --debug flag and, if the config file or the --extension flag
// names an "extensions" list, restricting the installed builtins to exactly those groups
// instead of the default full set.
func newInterpreter(g *globalConfig, code string) (*esl.Interpreter, error) {
	if len(g.cliConfig.Extensions) == 0 {
		return esl.New(code, esl.WithDebug(g.cliConfig.Debug))
	}

	interp, err := esl.New(code, esl.WithDebug(g.cliConfig.Debug), esl.WithoutDefaultExtensions())
	if err != nil {
		return nil, err
	}
	for _, name := range g.cliConfig.Extensions {
		group, ok := selectExtensionGroup(name)
		if !ok {
			return nil, fmt.Errorf("unknown extension group %q", name)
		}
		interp.AddExtensions(group)
	}
	return interp, nil
}

func selectExtensionGroup(name string) (map[string]value.Value, bool) {
	switch name {
	case "basic":
		return extensions.Basic(), true
	case "math":
		return extensions.Math(), true
	case "table":
		return extensions.Table(), true
	case "python_list":
		return extensions.PythonList(), true
	case "python_datetime":
		return extensions.PythonDatetime(), true
	case "python_timedelta":
		return extensions.PythonTimedelta(), true
	case "python_decimal":
		return extensions.PythonDecimal(), true
	default:
		return nil, false
	}
}

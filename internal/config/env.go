// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// envKeyDelimiter stands in for [KeyDelimiter] in environment variable names,
// e.g. Application__MaxRequestBodySize.
const envKeyDelimiter = "__"

// envSource exposes every process environment variable as a configuration
// key.
type envSource struct {
	environ []string
}

func newEnvSource(environ []string) *envSource {
	return &envSource{environ: environ}
}

func (s *envSource) Info() SourceInfo {
	return SourceInfo{
		Name: "environment",
		Rank: RankEnvironment,
	}
}

func (s *envSource) Load() (map[string]string, error) {
	values := make(map[string]string, len(s.environ))
	for _, kv := range s.environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		values[strings.ReplaceAll(name, envKeyDelimiter, KeyDelimiter)] = value
	}

	return values, nil
}

// parseEnv populates cfg from the effective configuration using the
// caarlos0/env library. Struct fields are mapped via their `env` and
// `envPrefix` tags defined on [StructuredConfig] and its nested types; the
// lookup environment is the configuration projected by
// [Configuration.environ], not the process environment.
//
// Returns a wrapped error if a value cannot be converted to the target type.
func parseEnv(cfg any, effective *Configuration) error {
	err := env.ParseWithOptions(cfg, env.Options{
		Environment: effective.environ(),
	})
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}

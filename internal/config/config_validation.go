// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

var logLevels = map[string]struct{}{
	"trace": {},
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// validate checks that the bound [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.MaxRequestBodySize.Valid && cfg.App.MaxRequestBodySize.Value < 0 {
		return fmt.Errorf("%w: MaxRequestBodySize must not be negative, got %d",
			ErrInvalidAppConfigs, cfg.App.MaxRequestBodySize.Value)
	}

	if (cfg.Server.CertFile == "") != (cfg.Server.KeyFile == "") {
		return fmt.Errorf("%w: CertFile and KeyFile must be set together", ErrInvalidServerConfigs)
	}

	if cfg.Server.ShutdownTimeout < 0 || cfg.Server.ReadHeaderTimeout < 0 {
		return fmt.Errorf("%w: timeouts must not be negative", ErrInvalidServerConfigs)
	}

	if _, ok := logLevels[strings.ToLower(cfg.Logging.Level)]; !ok {
		return fmt.Errorf("%w: unknown level %q", ErrInvalidLoggingConfigs, cfg.Logging.Level)
	}

	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Errors returned while building and validating the configuration.
var (
	// ErrRequiredFileMissing indicates that a required file source (the base
	// settings file, or an overlay that was explicitly requested) does not
	// exist.
	ErrRequiredFileMissing = errors.New("required configuration file is missing")

	// ErrInvalidConfigFile indicates that a configuration file could not be
	// parsed or its root is not a JSON object.
	ErrInvalidConfigFile = errors.New("invalid configuration file")

	// ErrInvalidAppConfigs indicates invalid values in the Application section
	// (for example, a negative MaxRequestBodySize).
	ErrInvalidAppConfigs = errors.New("invalid application configuration")

	// ErrInvalidServerConfigs indicates invalid listener settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")

	// ErrInvalidLoggingConfigs indicates an unknown log level.
	ErrInvalidLoggingConfigs = errors.New("invalid logging configuration")
)

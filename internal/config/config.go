// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	// BaseFilePath is the location of the required base settings file,
	// relative to the content root.
	BaseFilePath = "App_Data/appsettings.json"

	// OverlayFlagKey must be set (to any non-empty value) together with
	// OverlayDirectoryKey for the overlay file to be loaded.
	OverlayFlagKey = "appsettings"

	// OverlayDirectoryKey names the App_Data sub-directory holding the
	// overlay settings file.
	OverlayDirectoryKey = "Directory"
)

func overlayFilePath(dir string) string {
	return filepath.Join("App_Data", dir, "appsettings.json")
}

// StructuredConfig is the typed projection of the effective [Configuration].
// It is built once at startup and is read-only afterwards.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: upper-cased key name, with `__` standing for `:`.
type StructuredConfig struct {
	// App holds the `Application` section consumed by the host limit applier.
	App AppConfig `envPrefix:"APPLICATION__"`

	// Server holds the listener settings.
	Server Server `envPrefix:"SERVER__"`

	// Logging holds the log sink settings.
	Logging Logging `envPrefix:"LOGGING__"`

	effective *Configuration
}

// AppConfig is the `Application` section of the configuration.
type AppConfig struct {
	// AllowNonAsciiCharInHeaders switches response header encoding to UTF-8.
	// Key: Application:AllowNonAsciiCharInHeaders
	AllowNonAsciiCharInHeaders bool `env:"ALLOWNONASCIICHARINHEADERS" json:"allow_non_ascii_char_in_headers"`

	// MaxRequestBodySize caps request bodies (raw and multipart) in bytes.
	// Key: Application:MaxRequestBodySize
	MaxRequestBodySize OptionalInt64 `env:"MAXREQUESTBODYSIZE" json:"max_request_body_size"`
}

// Server holds network and timeout settings for the listener.
type Server struct {
	// Address is the TCP address the listener binds to.
	// Key: Server:Address
	Address NetAddress `env:"ADDRESS" envDefault:"0.0.0.0:5001" json:"address"`

	// CertFile and KeyFile locate the TLS certificate and private key.
	// Keys: Server:CertFile, Server:KeyFile
	CertFile string `env:"CERTFILE" json:"cert_file"`
	KeyFile  string `env:"KEYFILE" json:"key_file"`

	// ReadHeaderTimeout bounds the time allowed to read request headers.
	// Key: Server:ReadHeaderTimeout
	ReadHeaderTimeout time.Duration `env:"READHEADERTIMEOUT" envDefault:"10s" json:"read_header_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	// Key: Server:ShutdownTimeout
	ShutdownTimeout time.Duration `env:"SHUTDOWNTIMEOUT" envDefault:"10s" json:"shutdown_timeout"`
}

// Logging holds the log sink settings.
type Logging struct {
	// Level is the minimum level emitted: debug, info, warn or error.
	// Key: Logging:Level
	Level string `env:"LEVEL" envDefault:"debug" json:"level"`
}

// Effective returns the merged configuration the struct was bound from.
func (cfg *StructuredConfig) Effective() *Configuration {
	return cfg.effective
}

// OptionalInt64 is an integer setting that may be absent.
type OptionalInt64 struct {
	Value int64
	Valid bool
}

// Some returns a present OptionalInt64.
func Some(v int64) OptionalInt64 {
	return OptionalInt64{Value: v, Valid: true}
}

// UnmarshalText implements encoding.TextUnmarshaler. It is only called for
// keys that are defined, so an absent key leaves Valid false.
func (o *OptionalInt64) UnmarshalText(text []byte) error {
	v, err := strconv.ParseInt(string(text), 10, 64)
	if err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// MarshalJSON renders an absent value as null.
func (o OptionalInt64) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Load builds the effective configuration from every source in rank order:
// base file, overlay file, environment, command line.
//
// baseDir is the content root the App_Data paths are resolved against; args
// are the command-line arguments without the program name.
func Load(baseDir string, args []string) (*Configuration, error) {
	return newConfigBuilder(baseDir, args, os.Environ()).
		withBaseFile().
		withOverlay().
		withEnv().
		withCommandLine().
		build()
}

// GetStructuredConfig loads the effective configuration with [Load], binds it
// to a [StructuredConfig] and validates the result.
func GetStructuredConfig(baseDir string, args []string) (*StructuredConfig, error) {
	effective, err := Load(baseDir, args)
	if err != nil {
		return nil, err
	}

	return Bind(effective)
}

// Bind projects an effective configuration onto a [StructuredConfig].
func Bind(effective *Configuration) (*StructuredConfig, error) {
	cfg := &StructuredConfig{effective: effective}
	if err := parseEnv(cfg, effective); err != nil {
		return nil, fmt.Errorf("error binding configuration: %w", err)
	}

	return cfg, cfg.validate()
}

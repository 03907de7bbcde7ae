package service

import (
	"context"

	"github.com/MKhiriev/go-web-host/internal/config"
)

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) BuildInfo
}

// ConfigService tracks the configuration published by the reload watcher.
// The startup AppConfig is never replaced; only reloadable settings such as
// the log level follow the new snapshots.
type ConfigService interface {
	Status(ctx context.Context) ConfigStatus

	// Apply consumes the outcome of a reload attempt. It returns the error
	// that made the attempt unusable, if any.
	Apply(cfg *config.Configuration, err error) error
}

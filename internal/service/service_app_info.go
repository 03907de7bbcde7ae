package service

import (
	"context"

	"github.com/MKhiriev/go-web-host/internal/logger"
)

// BuildInfo is stamped into the binary with -ldflags.
type BuildInfo struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

type appInfoService struct {
	info BuildInfo

	logger *logger.Logger
}

func NewAppInfoService(info BuildInfo, logger *logger.Logger) (AppInfoService, error) {
	if info.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		info:   info,
		logger: logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.info.Version
}

func (s *appInfoService) GetBuildInfo(ctx context.Context) BuildInfo {
	return s.info
}

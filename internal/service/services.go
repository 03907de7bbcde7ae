package service

import (
	"github.com/MKhiriev/go-web-host/internal/config"
	"github.com/MKhiriev/go-web-host/internal/logger"
)

// Services is the registry handed to the request pipeline and to the task
// registrar.
type Services struct {
	AppInfoService AppInfoService
	ConfigService  ConfigService
}

func NewServices(info BuildInfo, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(info, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AppInfoService: appInfoService,
		ConfigService:  NewConfigService(cfg, logger),
	}, nil
}

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-web-host/internal/config"
	"github.com/MKhiriev/go-web-host/internal/logger"
)

// ConfigStatus describes the configuration currently in effect.
type ConfigStatus struct {
	Keys      int       `json:"keys"`
	Sources   []string  `json:"sources"`
	LogLevel  string    `json:"logLevel"`
	LoadedAt  time.Time `json:"loadedAt"`
	Reloads   int       `json:"reloads"`
	LastError string    `json:"lastError,omitempty"`
}

type configService struct {
	mu     sync.RWMutex
	status ConfigStatus

	logger *logger.Logger
}

func NewConfigService(cfg *config.StructuredConfig, logger *logger.Logger) ConfigService {
	s := &configService{logger: logger}
	if cfg.Effective() != nil {
		s.status = statusOf(cfg.Effective())
	}
	s.status.LogLevel = cfg.Logging.Level
	return s
}

func (s *configService) Status(ctx context.Context) ConfigStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := s.status
	status.Sources = append([]string(nil), s.status.Sources...)
	return status
}

func (s *configService) Apply(cfg *config.Configuration, err error) error {
	var level string
	if err == nil {
		level, err = s.applyLogging(cfg)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.status.Reloads++
	if err != nil {
		s.status.LastError = err.Error()
		return err
	}

	reloads := s.status.Reloads
	s.status = statusOf(cfg)
	s.status.Reloads = reloads
	s.status.LogLevel = level
	return nil
}

func (s *configService) applyLogging(cfg *config.Configuration) (string, error) {
	bound, err := config.Bind(cfg)
	if err != nil {
		return "", fmt.Errorf("reloaded configuration rejected: %w", err)
	}

	if err = logger.SetLevel(bound.Logging.Level); err != nil {
		return "", fmt.Errorf("reloaded configuration rejected: %w", err)
	}

	s.logger.Info().Str("level", bound.Logging.Level).Msg("log level applied")
	return bound.Logging.Level, nil
}

func statusOf(cfg *config.Configuration) ConfigStatus {
	status := ConfigStatus{
		Keys:     cfg.Len(),
		LoadedAt: time.Now(),
	}
	for _, source := range cfg.Sources() {
		status.Sources = append(status.Sources, source.Info().Name)
	}
	return status
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"github.com/MKhiriev/go-web-host/internal/config"
	"github.com/MKhiriev/go-web-host/internal/logger"
	"github.com/MKhiriev/go-web-host/internal/metrics"
	"github.com/MKhiriev/go-web-host/internal/service"
)

// RegisterTasks schedules the host's background tasks on workers. It is
// called once at startup, after the services are built and before the
// listener accepts traffic.
//
// The configuration watcher re-reads reloadable settings files and hands
// every new snapshot to the config service.
func RegisterTasks(
	workers *Workers,
	services *service.Services,
	cfg *config.StructuredConfig,
	m *metrics.Metrics,
	logger *logger.Logger,
) {
	watcher := config.NewWatcher(cfg.Effective(), logger, func(next *config.Configuration, err error) {
		if applyErr := services.ConfigService.Apply(next, err); applyErr != nil {
			logger.Warn().Err(applyErr).Msg("configuration reload not applied")
			m.RecordConfigReload(metrics.StatusError)
			return
		}
		m.RecordConfigReload(metrics.StatusSuccess)
	})

	workers.Register(watcher)
	logger.Info().Int("workers", workers.Len()).Msg("background tasks registered")
}

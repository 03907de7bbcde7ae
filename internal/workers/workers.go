package workers

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-web-host/internal/logger"
	"github.com/MKhiriev/go-web-host/internal/metrics"
)

type Workers struct {
	mu      sync.Mutex
	workers []Worker
	wg      sync.WaitGroup

	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewWorkers(metrics *metrics.Metrics, logger *logger.Logger) *Workers {
	return &Workers{
		metrics: metrics,
		logger:  logger,
	}
}

// Register adds workers to the registry. Workers registered after Run are
// not started.
func (w *Workers) Register(workers ...Worker) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.workers = append(w.workers, workers...)
}

// Len returns the number of registered workers.
func (w *Workers) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.workers)
}

// Run starts every registered worker in its own goroutine and returns.
// Workers stop when ctx is cancelled; use Wait to block until they are done.
func (w *Workers) Run(ctx context.Context) {
	w.mu.Lock()
	workers := append([]Worker(nil), w.workers...)
	w.mu.Unlock()

	for _, worker := range workers {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			w.run(ctx, worker)
		}()
	}
}

// Wait blocks until every started worker has returned.
func (w *Workers) Wait() {
	w.wg.Wait()
}

func (w *Workers) run(ctx context.Context, worker Worker) {
	name := worker.Name()
	log := w.logger.With().Str("worker", name).Logger()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Err(fmt.Errorf("%v", r)).Msg("worker panicked")
			w.metrics.RecordWorkerFailure(name, "panic")
		}
	}()

	log.Info().Msg("worker started")
	err := worker.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("worker failed")
		w.metrics.RecordWorkerFailure(name, "error")
		return
	}
	log.Info().Msg("worker stopped")
}

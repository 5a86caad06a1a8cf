package workers

import (
	"fmt"

	"github.com/MKhiriev/go-tour-booking/internal/config"
	"github.com/MKhiriev/go-tour-booking/internal/logger"
	"github.com/MKhiriev/go-tour-booking/internal/metrics"
	"github.com/MKhiriev/go-tour-booking/internal/ratelimit"
	"github.com/MKhiriev/go-tour-booking/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers schedules the maintenance jobs enabled in cfg.Workers. An
// empty cron spec disables its job. limiter may be nil when requests are
// limited by a shared store that expires keys by itself. m may be nil.
func NewWorkers(users store.UserRepository, limiter *ratelimit.Memory, m *metrics.Metrics, cfg *config.StructuredConfig, logger *logger.Logger) (*Workers, error) {
	var jobs []job

	if spec := cfg.Workers.ResetTokenCleanup; spec != "" {
		jobs = append(jobs, newResetTokenCleanup(users, spec))
	}
	if spec := cfg.Workers.LimiterCleanup; spec != "" && limiter != nil {
		jobs = append(jobs, newLimiterCleanup(limiter, cfg.Server.RateLimitWindow, spec))
	}

	ws := &Workers{}
	if len(jobs) == 0 {
		logger.Info().Msg("no background jobs are scheduled")
		return ws, nil
	}

	scheduler, err := newCronWorker(jobs, m, logger)
	if err != nil {
		return nil, fmt.Errorf("error scheduling background jobs: %w", err)
	}
	ws.workers = append(ws.workers, scheduler)

	return ws, nil
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Stop stops the workers in reverse start order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}

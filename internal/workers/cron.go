// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-tour-booking/internal/logger"
	"github.com/MKhiriev/go-tour-booking/internal/metrics"
)

// jobTimeout bounds a single job run.
const jobTimeout = 5 * time.Minute

// cronWorker runs jobs on their cron schedules. Overlapping runs of the same
// job are skipped and panics are recovered.
type cronWorker struct {
	cron    *cron.Cron
	metrics *metrics.Metrics
	logger  *logger.Logger

	// ctx is cancelled by Stop to abort jobs in flight.
	ctx    context.Context
	cancel context.CancelFunc
}

func newCronWorker(jobs []job, m *metrics.Metrics, l *logger.Logger) (*cronWorker, error) {
	cl := cronLogger{l: l}

	ctx, cancel := context.WithCancel(context.Background())
	w := &cronWorker{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		metrics: m,
		logger:  l,
		ctx:     ctx,
		cancel:  cancel,
	}

	for _, j := range jobs {
		if _, err := w.cron.AddFunc(j.spec, w.wrap(j)); err != nil {
			cancel()
			return nil, fmt.Errorf("invalid schedule %q of job %s: %w", j.spec, j.name, err)
		}
		l.Info().Str("job", j.name).Str("schedule", j.spec).Msg("background job scheduled")
	}

	return w, nil
}

// wrap runs j with a job-scoped logger and a timeout, and records the
// outcome.
func (w *cronWorker) wrap(j job) func() {
	return func() {
		jl := w.logger.GetChildLogger()
		jl.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("job", j.name)
		})

		ctx, cancel := context.WithTimeout(jl.WithContext(w.ctx), jobTimeout)
		defer cancel()

		start := time.Now()
		err := j.run(ctx)
		duration := time.Since(start)

		if w.metrics != nil {
			w.metrics.RecordJob(j.name, err, duration)
		}
		if err != nil {
			jl.Err(err).Dur("duration", duration).Msg("background job failed")
		}
	}
}

func (w *cronWorker) Run() {
	w.cron.Start()
}

func (w *cronWorker) Stop() {
	w.cancel()
	<-w.cron.Stop().Done()
}

// cronLogger adapts the application logger to [cron.Logger].
type cronLogger struct {
	l *logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-tour-booking/internal/adapter"
	"github.com/MKhiriev/go-tour-booking/internal/config"
	"github.com/MKhiriev/go-tour-booking/internal/handler"
	"github.com/MKhiriev/go-tour-booking/internal/logger"
	"github.com/MKhiriev/go-tour-booking/internal/metrics"
	"github.com/MKhiriev/go-tour-booking/internal/ratelimit"
	"github.com/MKhiriev/go-tour-booking/internal/server"
	"github.com/MKhiriev/go-tour-booking/internal/service"
	"github.com/MKhiriev/go-tour-booking/internal/store"
	"github.com/MKhiriev/go-tour-booking/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const startupTimeout = 30 * time.Second

func main() {
	printBuildInfo()

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("tour-booking-server").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewEnvLogger("tour-booking-server", cfg.App.IsDevelopment())
	log.Debug().Str("env", cfg.App.Env).Str("address", cfg.Server.HTTPAddress).Msg("received configs")

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	limiter, memLimiter, closeLimiter, err := newLimiter(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating rate limiter")
	}
	defer closeLimiter()

	m := metrics.New()
	mailer := adapter.NewMailer(cfg.Adapter.Mail, log)
	services := service.NewServices(storages, mailer, cfg.App, log)

	handlers, err := handler.NewHandlers(services, limiter, m, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	jobs, err := workers.NewWorkers(storages.Users, memLimiter, m, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating workers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	jobs.Run()
	srv.RunServer()
	jobs.Stop()
}

// newLimiter shares counters through Redis when an address is configured
// and keeps them in memory otherwise. The in-memory limiter is also returned
// so that its idle buckets can be cleaned up by a background job.
func newLimiter(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (ratelimit.Limiter, *ratelimit.Memory, func(), error) {
	if cfg.Server.RateLimit == 0 {
		return nil, nil, func() {}, nil
	}

	redisCfg := cfg.Storage.Redis
	if redisCfg.Address == "" {
		mem := ratelimit.NewMemory(cfg.Server.RateLimit, cfg.Server.RateLimitWindow)
		return mem, mem, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Address,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, nil, fmt.Errorf("error connecting to redis at %s: %w", redisCfg.Address, err)
	}
	log.Info().Str("address", redisCfg.Address).Msg("rate limiter uses redis")

	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Err(err).Msg("error closing redis client")
		}
	}
	return ratelimit.NewRedis(client, cfg.Server.RateLimit, cfg.Server.RateLimitWindow), nil, closeFn, nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}

package handler

import (
	"github.com/MKhiriev/go-tour-booking/internal/config"
	"github.com/MKhiriev/go-tour-booking/internal/handler/grpc"
	"github.com/MKhiriev/go-tour-booking/internal/handler/http"
	"github.com/MKhiriev/go-tour-booking/internal/logger"
	"github.com/MKhiriev/go-tour-booking/internal/metrics"
	"github.com/MKhiriev/go-tour-booking/internal/ratelimit"
	"github.com/MKhiriev/go-tour-booking/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers creates the handler of every transport that has an address
// in cfg.Server. limiter and m may be nil to disable rate limiting and
// metrics.
func NewHandlers(services *service.Services, limiter ratelimit.Limiter, m *metrics.Metrics, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, limiter, m, cfg.App, cfg.Server, logger)
	}
	if cfg.Server.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}

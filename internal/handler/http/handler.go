package http

import (
	"time"

	"github.com/MKhiriev/go-tour-booking/internal/config"
	"github.com/MKhiriev/go-tour-booking/internal/logger"
	"github.com/MKhiriev/go-tour-booking/internal/metrics"
	"github.com/MKhiriev/go-tour-booking/internal/ratelimit"
	"github.com/MKhiriev/go-tour-booking/internal/service"
)

// Handler serves the REST API.
type Handler struct {
	services *service.Services
	limiter  ratelimit.Limiter
	metrics  *metrics.Metrics

	development    bool
	secureCookies  bool
	cookieDuration time.Duration
	bodyLimit      int64
	trustProxy     bool

	logger *logger.Logger
}

// NewHandler creates the REST handler. A nil limiter disables rate
// limiting and nil metrics disable instrumentation and /metrics.
func NewHandler(services *service.Services, limiter ratelimit.Limiter, m *metrics.Metrics, app config.App, srv config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		limiter:        limiter,
		metrics:        m,
		development:    app.IsDevelopment(),
		secureCookies:  !app.IsDevelopment(),
		cookieDuration: app.CookieDuration,
		bodyLimit:      srv.BodyLimit,
		trustProxy:     srv.TrustProxy,
		logger:         logger,
	}
}

package server

import (
	"log"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-tour-booking/internal/logger"
)

// newStdLogger routes net/http's internal error log through l.
func newStdLogger(l *logger.Logger) *log.Logger {
	child := l.GetChildLogger()
	child.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("component", "net/http")
	})
	return log.New(child, "", 0)
}

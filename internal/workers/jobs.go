package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-tour-booking/internal/logger"
	"github.com/MKhiriev/go-tour-booking/internal/ratelimit"
	"github.com/MKhiriev/go-tour-booking/internal/store"
)

const (
	jobResetTokenCleanup = "reset_token_cleanup"
	jobLimiterCleanup    = "limiter_cleanup"
)

// job is a named task run on a cron schedule.
type job struct {
	name string
	spec string
	run  func(ctx context.Context) error
}

// newResetTokenCleanup clears password reset tokens that have expired, so
// that stale hashes do not linger in the users table.
func newResetTokenCleanup(users store.UserRepository, spec string) job {
	return job{
		name: jobResetTokenCleanup,
		spec: spec,
		run: func(ctx context.Context) error {
			purged, err := users.PurgeExpiredResetTokens(ctx, time.Now())
			if err != nil {
				return err
			}
			logger.FromContext(ctx).Info().Int64("purged", purged).Msg("expired reset tokens purged")
			return nil
		},
	}
}

// newLimiterCleanup drops rate limiter buckets idle for longer than idle.
func newLimiterCleanup(limiter *ratelimit.Memory, idle time.Duration, spec string) job {
	return job{
		name: jobLimiterCleanup,
		spec: spec,
		run: func(ctx context.Context) error {
			removed := limiter.Cleanup(idle)
			logger.FromContext(ctx).Debug().
				Int("removed", removed).
				Int("remaining", limiter.Len()).
				Msg("idle rate limiter buckets removed")
			return nil
		},
	}
}

package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ghuser/fnbrowser/pkg/config"
	"github.com/ghuser/fnbrowser/pkg/logger"
)

// RetryPolicy bounds how often a failing handler is re-run for one delivery.
// Delays double after each failed attempt.
type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
}

// DefaultRetryPolicy makes three attempts, waiting 1s then 2s.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, BaseDelay: time.Second}

// RetryPolicyFromConfig reads EVENTS_MAX_ATTEMPTS and EVENTS_RETRY_DELAY,
// using DefaultRetryPolicy for unset values.
func RetryPolicyFromConfig(cfg *config.Config) RetryPolicy {
	p := DefaultRetryPolicy
	if cfg.EventsMaxAttempts > 0 {
		p.Attempts = cfg.EventsMaxAttempts
	}
	if cfg.EventsRetryDelay > 0 {
		p.BaseDelay = cfg.EventsRetryDelay
	}
	return p
}

type permanentError struct{ err error }

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying, e.g. an undecodable payload.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var p permanentError
	return errors.As(err, &p)
}

// Run calls fn until it succeeds, returns a permanent error, ctx ends or the
// attempts are used up. It returns nil on success and the last error otherwise.
func (p RetryPolicy) Run(ctx context.Context, fn func(context.Context) error, log logger.Logger) error {
	attempts := max(p.Attempts, 1)
	delay := p.BaseDelay
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if IsPermanent(err) {
			return fmt.Errorf("events: handler failed permanently: %w", err)
		}
		if attempt == attempts {
			break
		}
		log.WarnContext(ctx, "events: handler failed, retrying",
			"attempt", attempt,
			"max_attempts", attempts,
			"next_delay", delay,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return fmt.Errorf("events: handler failed after %d attempts: %w", attempts, err)
}

package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"

	"github.com/ghuser/fnbrowser/pkg/config"
)

// SetupSentry initializes the Sentry SDK. No-ops if DSN is empty.
func SetupSentry(cfg *config.Config) error {
	if cfg.SentryDSN == "" {
		return nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          cfg.ServiceName + "@" + cfg.ServiceVersion,
		ServerName:       cfg.ServiceName,
		TracesSampleRate: cfg.SentryTracesSampleRate,
		BeforeSend:       dropCanceled,
	}); err != nil {
		return fmt.Errorf("sentry init: %w", err)
	}
	return nil
}

// dropCanceled discards events for aborted work: superseded catalog fetches
// and requests whose client went away.
func dropCanceled(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
	if hint != nil && hint.OriginalException != nil && errors.Is(hint.OriginalException, context.Canceled) {
		return nil
	}
	return event
}

// CaptureError reports err tagged with the component that hit it. It uses the
// request hub when ctx carries one. Without SetupSentry it does nothing.
func CaptureError(ctx context.Context, component string, err error) {
	if err == nil {
		return
	}
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub().Clone()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("component", component)
		hub.CaptureException(err)
	})
}

// SentryFlush flushes buffered events before process exit.
func SentryFlush() {
	sentry.Flush(2 * time.Second)
}

// SentryMiddleware captures panics. Repanic is set so the outer Recovery
// middleware still writes the 500.
func SentryMiddleware() func(http.Handler) http.Handler {
	return sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle
}

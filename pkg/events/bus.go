// Package events is the Postgres-backed event bus carrying catalog.refreshed
// and search.committed between the API and the worker.
//
// All instances sharing a service name form one consumer group, so each
// message is handled once. The API publishes through a forwarder outbox so
// an event written in a business transaction survives a crash; the worker
// publishes nothing and uses the plain bus.
//
// Trace context travels in message metadata and every delivery runs in a
// consumer span linked to the publisher's trace.
package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/fnbrowser/pkg/config"
	"github.com/ghuser/fnbrowser/pkg/logger"
)

const (
	shutdownTimeout = 30 * time.Second
	errBuffer       = 100
	forwarderTopic  = "_forwarder_queue"
	forwarderGroup  = "forwarder-consumer"
	tracerName      = "github.com/ghuser/fnbrowser/events"
)

// Handler processes one delivered message.
type Handler func(ctx context.Context, msg *message.Message) error

// EventBus publishes and consumes messages through watermill-sql tables.
type EventBus struct {
	publisher  message.Publisher // forwarder-wrapped in outbox mode
	subscriber *watermillsql.Subscriber
	fwd        *forwarder.Forwarder
	db         *sql.DB
	log        logger.Logger
	wlog       *slogAdapter
	retry      RetryPolicy
	wg         sync.WaitGroup
	outbox     bool
}

// NewEventBus returns a bus that publishes straight to topic tables.
func NewEventBus(cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return newEventBus(cfg, log, false)
}

// NewEventBusWithForwarder returns a bus whose publishes go to the outbox
// queue. Call StartForwarder to relay them to their topics.
func NewEventBusWithForwarder(cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return newEventBus(cfg, log, true)
}

func newEventBus(cfg *config.Config, log logger.Logger, outbox bool) (*EventBus, error) {
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("events: open db: %w", err)
	}
	q := &EventBus{
		db:     db,
		log:    log,
		wlog:   &slogAdapter{log: log},
		retry:  RetryPolicyFromConfig(cfg),
		outbox: outbox,
	}

	pub, err := q.sqlPublisher(db, true)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("events: new publisher: %w", err)
	}
	q.publisher = q.wrapOutbox(pub)

	q.subscriber, err = q.sqlSubscriber(cfg.ServiceName + "-consumer")
	if err != nil {
		_ = pub.Close()
		_ = db.Close()
		return nil, fmt.Errorf("events: new subscriber: %w", err)
	}
	return q, nil
}

func (q *EventBus) sqlPublisher(db watermillsql.ContextExecutor, initSchema bool) (*watermillsql.Publisher, error) {
	return watermillsql.NewPublisher(db, watermillsql.PublisherConfig{
		SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
		AutoInitializeSchema: initSchema,
	}, q.wlog)
}

func (q *EventBus) sqlSubscriber(group string) (*watermillsql.Subscriber, error) {
	return watermillsql.NewSubscriber(q.db, watermillsql.SubscriberConfig{
		SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
		ConsumerGroup:    group,
	}, q.wlog)
}

func (q *EventBus) wrapOutbox(pub message.Publisher) message.Publisher {
	if !q.outbox {
		return pub
	}
	return forwarder.NewPublisher(pub, forwarder.PublisherConfig{ForwarderTopic: forwarderTopic})
}

// StartForwarder relays the outbox queue to the target topics until ctx ends.
// It returns once the relay is running.
func (q *EventBus) StartForwarder(ctx context.Context) error {
	if !q.outbox {
		return errors.New("events: StartForwarder called on non-forwarder EventBus")
	}
	if q.fwd != nil {
		return errors.New("events: forwarder already started")
	}

	fwdSub, err := q.sqlSubscriber(forwarderGroup)
	if err != nil {
		return fmt.Errorf("events: new forwarder subscriber: %w", err)
	}
	targetPub, err := q.sqlPublisher(q.db, true)
	if err != nil {
		_ = fwdSub.Close()
		return fmt.Errorf("events: new forwarder target publisher: %w", err)
	}
	fwd, err := forwarder.NewForwarder(fwdSub, targetPub, q.wlog, forwarder.Config{ForwarderTopic: forwarderTopic})
	if err != nil {
		_ = targetPub.Close()
		_ = fwdSub.Close()
		return fmt.Errorf("events: create forwarder: %w", err)
	}
	q.fwd = fwd

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		if err := fwd.Run(ctx); err != nil {
			q.log.ErrorContext(ctx, "events: forwarder stopped with error", "error", err)
			return
		}
		q.log.InfoContext(ctx, "events: forwarder stopped")
	}()

	select {
	case <-fwd.Running():
		q.log.InfoContext(ctx, "events: forwarder started")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("events: context cancelled waiting for forwarder: %w", ctx.Err())
	}
}

// DB returns the bus connection for transactional publishing with NewTxPublisher.
func (q *EventBus) DB() *sql.DB {
	return q.db
}

// NewTxPublisher returns a publisher that writes inside tx, so a snapshot
// row and its catalog.refreshed event commit together. Tables already exist
// by then, so schema initialization is off.
func (q *EventBus) NewTxPublisher(tx *sql.Tx) (message.Publisher, error) {
	pub, err := q.sqlPublisher(tx, false)
	if err != nil {
		return nil, fmt.Errorf("events: new tx publisher: %w", err)
	}
	return q.wrapOutbox(pub), nil
}

// Publish sends msgs to topic with the trace context of ctx in their metadata.
func (q *EventBus) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	injectTrace(ctx, msgs)
	if err := q.publisher.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe delivers topic messages to handler in a goroutine until ctx ends
// or the bus closes. A message is Acked when handler succeeds and Nacked once
// the retry policy gives up; the final error is sent on the returned channel,
// which callers must drain. Close waits for in-flight handlers.
func (q *EventBus) Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error) {
	ch, err := q.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", topic, err)
	}

	errCh := make(chan error, errBuffer)
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		defer close(errCh)
		for msg := range ch {
			if err := q.deliver(ctx, topic, msg, handler); err != nil {
				msg.Nack()
				select {
				case errCh <- err:
				default:
					q.log.ErrorContext(ctx, "events: error channel full, dropping error", "error", err, "topic", topic)
				}
				continue
			}
			msg.Ack()
		}
	}()
	return errCh, nil
}

func (q *EventBus) deliver(ctx context.Context, topic string, msg *message.Message, handler Handler) error {
	msgCtx, span := otel.Tracer(tracerName).Start(extractTrace(ctx, msg), "events.consume "+topic,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.destination.name", topic),
			attribute.String("messaging.message.id", msg.UUID),
		),
	)
	defer span.End()

	err := q.retry.Run(msgCtx, func(ctx context.Context) error { return handler(ctx, msg) }, q.log)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "handler failed")
	}
	return err
}

func injectTrace(ctx context.Context, msgs []*message.Message) {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for _, msg := range msgs {
		for k, v := range carrier {
			msg.Metadata.Set(k, v)
		}
	}
}

func extractTrace(ctx context.Context, msg *message.Message) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(msg.Metadata))
}

// Ping checks the bus database connection.
func (q *EventBus) Ping(ctx context.Context) error {
	if err := q.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping db: %w", err)
	}
	return nil
}

// Close stops the subscriber and forwarder, waits up to 30s for in-flight
// handlers, then closes the publisher and database.
func (q *EventBus) Close() error {
	if err := q.subscriber.Close(); err != nil {
		return fmt.Errorf("events: close subscriber: %w", err)
	}
	if q.fwd != nil {
		if err := q.fwd.Close(); err != nil {
			return fmt.Errorf("events: close forwarder: %w", err)
		}
	}

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		q.log.Error("events: timed out waiting for in-flight handlers to complete")
	}

	if err := q.publisher.Close(); err != nil {
		return fmt.Errorf("events: close publisher: %w", err)
	}
	return q.db.Close()
}

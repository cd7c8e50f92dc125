package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ghuser/fnbrowser/pkg/logger"
	"github.com/ghuser/fnbrowser/pkg/telemetry"
	cosmeticdomain "github.com/ghuser/fnbrowser/services/cosmetic/domain"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/models"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/repositories"
)

// CatalogState is the lifecycle state of the served collection.
type CatalogState string

const (
	CatalogIdle    CatalogState = "idle"
	CatalogLoading CatalogState = "loading"
	CatalogReady   CatalogState = "ready"
	CatalogFailed  CatalogState = "failed"
)

// Status is a point-in-time view of the catalog lifecycle.
type Status struct {
	State CatalogState `json:"state"`
	// Slow is set once a fetch has run longer than the advisory threshold. The
	// fetch keeps running.
	Slow bool `json:"slow"`
	// Error is the last fetch failure, if the last fetch failed.
	Error string `json:"error,omitempty"`
	// RetryIn counts down after a failure. It is informational only.
	RetryIn time.Duration `json:"-"`
	// Count is the size of the collection currently served, possibly stale.
	Count     int       `json:"count"`
	FetchedAt time.Time `json:"fetched_at,omitzero"`
	// FromSnapshot reports that the served collection was restored from storage.
	FromSnapshot bool `json:"from_snapshot"`
}

// CatalogOptions tune a CatalogService. Zero values use the defaults.
type CatalogOptions struct {
	AdvisoryAfter  time.Duration // default 15s
	RetryCountdown time.Duration // default 15s
	Metrics        *telemetry.CatalogMetrics
}

// CatalogService owns the single served Collection. A fetch replaces it
// wholesale; a newer Refresh aborts any fetch still in flight and Close
// aborts everything. Aborted fetches never change state.
type CatalogService struct {
	source    repositories.CosmeticSource
	snapshots repositories.SnapshotRepository
	log       logger.Logger
	metrics   *telemetry.CatalogMetrics

	advisoryAfter  time.Duration
	retryCountdown time.Duration
	now            func() time.Time

	mu           sync.RWMutex
	collection   *models.Collection
	state        CatalogState
	slow         bool
	lastErr      error
	failedAt     time.Time
	fetchedAt    time.Time
	fromSnapshot bool
	gen          uint64
	cancel       context.CancelFunc
	closed       bool
	listeners    map[uint64]func(*models.Collection)
	nextListener uint64

	wg sync.WaitGroup
}

// NewCatalogService returns an idle CatalogService. snapshots may be nil.
func NewCatalogService(source repositories.CosmeticSource, snapshots repositories.SnapshotRepository, log logger.Logger, opts CatalogOptions) *CatalogService {
	if opts.AdvisoryAfter <= 0 {
		opts.AdvisoryAfter = 15 * time.Second
	}
	if opts.RetryCountdown <= 0 {
		opts.RetryCountdown = 15 * time.Second
	}
	return &CatalogService{
		source:         source,
		snapshots:      snapshots,
		log:            log,
		metrics:        opts.Metrics,
		advisoryAfter:  opts.AdvisoryAfter,
		retryCountdown: opts.RetryCountdown,
		now:            time.Now,
		state:          CatalogIdle,
		listeners:      make(map[uint64]func(*models.Collection)),
	}
}

// Restore serves the latest persisted snapshot until a fetch succeeds. It is
// a no-op when a collection is already loaded or no snapshot exists.
func (s *CatalogService) Restore(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}
	snap, err := s.snapshots.Latest(ctx)
	if errors.Is(err, cosmeticdomain.ErrCatalogNotLoaded) {
		return nil
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.collection != nil || s.closed {
		s.mu.Unlock()
		return nil
	}
	c := models.NewCollection(snap.Items)
	s.collection = c
	s.fetchedAt = snap.FetchedAt
	s.fromSnapshot = true
	if s.state == CatalogIdle {
		s.state = CatalogReady
	}
	listeners := s.listenersLocked()
	s.mu.Unlock()

	s.log.InfoContext(ctx, "catalog restored from snapshot", "snapshot_id", snap.ID, "items", c.Len())
	s.metrics.RecordItems(ctx, c.Len())
	notify(listeners, c)
	return nil
}

// Refresh aborts any fetch in flight and starts a new one. The returned
// channel is closed when the new fetch has finished, whatever its outcome.
func (s *CatalogService) Refresh() <-chan struct{} {
	_, done := s.refresh()
	return done
}

func (s *CatalogService) refresh() (uint64, <-chan struct{}) {
	done := make(chan struct{})

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(done)
		return 0, done
	}
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.gen++
	gen := s.gen
	s.cancel = cancel
	s.state = CatalogLoading
	s.slow = false
	s.lastErr = nil
	s.wg.Add(1)
	s.mu.Unlock()

	go s.fetch(ctx, cancel, gen, done)
	return gen, done
}

// Load refreshes and waits for the result. It returns the fetch error, or
// ctx.Err() if ctx ends first (the fetch keeps running). A fetch aborted by
// Close or by a newer Refresh yields context.Canceled.
func (s *CatalogService) Load(ctx context.Context) error {
	gen, done := s.refresh()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed || s.gen != gen {
		return context.Canceled
	}
	return s.lastErr
}

func (s *CatalogService) fetch(ctx context.Context, cancel context.CancelFunc, gen uint64, done chan<- struct{}) {
	defer s.wg.Done()
	defer close(done)
	defer cancel()

	advisory := time.AfterFunc(s.advisoryAfter, func() {
		s.mu.Lock()
		flagged := s.gen == gen && s.state == CatalogLoading && !s.closed
		if flagged {
			s.slow = true
		}
		s.mu.Unlock()
		if flagged {
			s.log.WarnContext(ctx, "catalog fetch is taking longer than expected", "after", s.advisoryAfter)
		}
	})
	defer advisory.Stop()

	start := s.now()
	items, err := s.source.FetchAll(ctx)
	elapsed := s.now().Sub(start)

	s.mu.Lock()
	if s.gen != gen || s.closed || ctx.Err() != nil {
		s.mu.Unlock()
		s.metrics.RecordFetch(context.Background(), telemetry.OutcomeAborted, elapsed)
		s.log.DebugContext(ctx, "catalog fetch aborted", "elapsed", elapsed)
		return
	}
	s.slow = false
	if err != nil {
		s.state = CatalogFailed
		s.lastErr = err
		s.failedAt = s.now()
		s.mu.Unlock()
		s.metrics.RecordFetch(ctx, telemetry.OutcomeFailure, elapsed)
		s.log.ErrorContext(ctx, "catalog fetch failed", "error", err, "elapsed", elapsed)
		telemetry.CaptureError(ctx, "catalog", err)
		return
	}
	c := models.NewCollection(items)
	s.collection = c
	s.state = CatalogReady
	s.fetchedAt = s.now()
	s.fromSnapshot = false
	fetchedAt := s.fetchedAt
	listeners := s.listenersLocked()
	s.mu.Unlock()

	s.metrics.RecordFetch(ctx, telemetry.OutcomeSuccess, elapsed)
	s.metrics.RecordItems(ctx, c.Len())
	s.log.InfoContext(ctx, "catalog loaded", "items", c.Len(), "elapsed", elapsed)
	notify(listeners, c)

	if s.snapshots != nil {
		saveCtx, cancelSave := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancelSave()
		if _, err := s.snapshots.Save(saveCtx, items, fetchedAt); err != nil {
			s.log.WarnContext(ctx, "catalog snapshot not saved", "error", err)
		}
	}
}

// Collection returns the served collection or ErrCatalogNotLoaded.
func (s *CatalogService) Collection() (*models.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.collection == nil {
		return nil, cosmeticdomain.ErrCatalogNotLoaded
	}
	return s.collection, nil
}

// Status reports the lifecycle state.
func (s *CatalogService) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		State:        s.state,
		Slow:         s.slow,
		Count:        s.collection.Len(),
		FetchedAt:    s.fetchedAt,
		FromSnapshot: s.fromSnapshot,
	}
	if s.state == CatalogFailed && s.lastErr != nil {
		st.Error = s.lastErr.Error()
		if left := s.retryCountdown - s.now().Sub(s.failedAt); left > 0 {
			st.RetryIn = left.Truncate(time.Second)
		}
	}
	return st
}

// CatalogHealth reports the state name and served item count for /health.
func (s *CatalogService) CatalogHealth() (string, int) {
	st := s.Status()
	return string(st.State), st.Count
}

// Subscribe registers fn to receive every newly served collection. The
// returned func removes the subscription.
func (s *CatalogService) Subscribe(fn func(*models.Collection)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Close aborts outstanding fetches and waits for them to return. State is
// not touched afterwards.
func (s *CatalogService) Close() {
	s.mu.Lock()
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *CatalogService) listenersLocked() []func(*models.Collection) {
	out := make([]func(*models.Collection), 0, len(s.listeners))
	for _, fn := range s.listeners {
		out = append(out, fn)
	}
	return out
}

func notify(listeners []func(*models.Collection), c *models.Collection) {
	for _, fn := range listeners {
		fn(c)
	}
}

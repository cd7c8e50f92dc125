// Package browse runs one visitor's live browse session over a WebSocket:
// filter changes reset the window, scrolling reveals more pages, and the
// randomizer pushes each shuffle step as it fires.
package browse

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/ghuser/fnbrowser/pkg/logger"
	"github.com/ghuser/fnbrowser/services/cosmetic/application/services"
	cosmeticdomain "github.com/ghuser/fnbrowser/services/cosmetic/domain"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/models"
	domainsvcs "github.com/ghuser/fnbrowser/services/cosmetic/domain/services"
)

const (
	writeTimeout   = 10 * time.Second
	statusInterval = time.Second
)

// Conn is the part of *websocket.Conn a Session uses.
type Conn interface {
	ReadJSON(v any) error
	WriteJSON(v any) error
	SetWriteDeadline(t time.Time) error
}

// Options configure a Session. Search and Viewed may be nil.
type Options struct {
	Visitor  string
	PageSize int
	Catalog  *services.CatalogService
	Query    *services.QueryService
	Search   *services.SearchService
	Viewed   *services.ViewedService
	Log      logger.Logger
	// ShuffleOptions are passed to the session's Shuffler.
	ShuffleOptions []domainsvcs.ShuffleOption
}

// Session owns the browse state of one connection. Reads happen on the Run
// goroutine; writes may come from shuffle timers and the status loop and are
// serialized.
type Session struct {
	conn     Conn
	opts     Options
	log      logger.Logger
	policy   *bluemonday.Policy
	shuffler *domainsvcs.Shuffler

	writeMu sync.Mutex

	mu     sync.Mutex
	window *domainsvcs.Window
	query  string
	facets models.Facets
	view   []models.Cosmetic

	refresh chan struct{}
}

// NewSession returns a Session bound to conn.
func NewSession(conn Conn, opts Options) *Session {
	s := &Session{
		conn:    conn,
		opts:    opts,
		log:     opts.Log.With("visitor_id", opts.Visitor),
		policy:  bluemonday.StrictPolicy(),
		window:  domainsvcs.NewWindow(opts.PageSize),
		facets:  models.AllFacets(),
		refresh: make(chan struct{}, 1),
	}
	s.shuffler = domainsvcs.NewShuffler(s, opts.ShuffleOptions...)
	return s
}

// Run serves the session until the connection fails or ctx ends. It always
// returns a non-nil error describing why the session ended.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.shuffler.Close()

	unsubscribe := s.opts.Catalog.Subscribe(func(*models.Collection) {
		select {
		case s.refresh <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	s.resetView()
	s.sendWindow()
	s.sendStatus(s.opts.Catalog.Status())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.watch(ctx)
	}()
	defer func() {
		cancel()
		wg.Wait()
	}()

	for {
		var msg ClientMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			return err
		}
		s.handle(ctx, msg)
	}
}

// watch pushes catalog status changes and re-filters when a new collection
// is served.
func (s *Session) watch(ctx context.Context) {
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()
	last := s.opts.Catalog.Status()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.refresh:
			s.resetView()
			s.sendWindow()
		case <-ticker.C:
		}
		st := s.opts.Catalog.Status()
		if st.State != last.State || st.Slow != last.Slow || st.Error != last.Error ||
			st.Count != last.Count || st.RetryIn.Truncate(time.Second) != last.RetryIn.Truncate(time.Second) {
			s.sendStatus(st)
			last = st
		}
	}
}

func (s *Session) handle(ctx context.Context, msg ClientMessage) {
	switch msg.Type {
	case TypeFilter:
		s.filter(msg.Query, msg.Facets)
	case TypeScroll:
		s.mu.Lock()
		grew := s.window.OnScroll(msg.Position, msg.ContentLength)
		s.mu.Unlock()
		if grew {
			s.sendWindow()
		}
	case TypeLoadMore:
		s.mu.Lock()
		grew := s.window.LoadMore()
		s.mu.Unlock()
		if grew {
			s.sendWindow()
		}
	case TypeRandomize:
		s.mu.Lock()
		view := s.view
		s.mu.Unlock()
		s.shuffler.Start(view)
	case TypeView:
		s.openDetail(ctx, msg.ID)
	default:
		s.sendError("unknown message type " + msg.Type)
	}
}

func (s *Session) filter(query string, facets models.Facets) {
	if err := s.opts.Query.Facets().Validate(facets); err != nil {
		s.sendError(err.Error())
		return
	}
	s.mu.Lock()
	s.query = query
	s.facets = facets.Normalize()
	s.mu.Unlock()

	s.resetView()
	s.sendWindow()
	if s.opts.Search != nil {
		s.opts.Search.Submit(s.opts.Visitor, query)
	}
}

// resetView re-runs the filter against the served collection and rewinds
// the window to its first page.
func (s *Session) resetView() {
	s.mu.Lock()
	defer s.mu.Unlock()
	view, err := s.opts.Query.View(s.query, s.facets)
	if err != nil {
		view = nil
	}
	s.view = view
	s.window.Reset(view)
}

func (s *Session) openDetail(ctx context.Context, id string) {
	detail, err := s.opts.Query.Detail(id)
	if err != nil {
		s.sendError(err.Error())
		return
	}
	s.shuffler.Select(detail.Cosmetic)
	s.send(DetailMessage{Type: TypeDetail, Detail: detail})
	s.recordViewed(ctx, id)
}

func (s *Session) recordViewed(ctx context.Context, id string) {
	if s.opts.Viewed == nil {
		return
	}
	if err := s.opts.Viewed.Record(ctx, s.opts.Visitor, id); err != nil && !errors.Is(err, cosmeticdomain.ErrCosmeticNotFound) {
		s.log.WarnContext(ctx, "recently viewed not saved", "cosmetic_id", id, "error", err)
	}
}

// OnStep implements domainsvcs.ShuffleListener.
func (s *Session) OnStep(step int, candidate models.Cosmetic) {
	s.send(ShuffleStepMessage{Type: TypeShuffleStep, Step: step, Steps: domainsvcs.ShuffleSteps, Item: candidate})
}

// OnSettled implements domainsvcs.ShuffleListener.
func (s *Session) OnSettled(chosen models.Cosmetic, n domainsvcs.Notification) {
	related, err := s.opts.Query.Related(chosen.ID, domainsvcs.DefaultRelatedLimit)
	if err != nil {
		related = nil
	}
	n.Title = s.policy.Sanitize(n.Title)
	n.Description = s.policy.Sanitize(n.Description)
	s.send(SettledMessage{
		Type:         TypeSettled,
		Detail:       services.DetailOf(chosen, related),
		Notification: n,
	})
	s.recordViewed(context.Background(), chosen.ID)
}

func (s *Session) sendWindow() {
	s.mu.Lock()
	msg := WindowMessage{
		Type:    TypeWindow,
		Items:   s.window.Items(),
		Page:    s.window.Page(),
		Total:   s.window.Total(),
		HasMore: s.window.HasMore(),
		Loading: s.window.IsLoading(),
	}
	s.mu.Unlock()
	s.send(msg)
}

func (s *Session) sendStatus(st services.Status) {
	s.send(StatusMessage{
		Type:           TypeStatus,
		State:          st.State,
		Slow:           st.Slow,
		Error:          st.Error,
		RetryInSeconds: int(st.RetryIn / time.Second),
		Count:          st.Count,
	})
}

func (s *Session) sendError(msg string) {
	s.send(ErrorMessage{Type: TypeError, Error: msg})
}

func (s *Session) send(v any) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		s.log.Debug("browse: set write deadline", "error", err)
		return
	}
	if err := s.conn.WriteJSON(v); err != nil {
		s.log.Debug("browse: write failed", "error", err)
	}
}

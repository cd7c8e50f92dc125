package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/fnbrowser/pkg/events"
	"github.com/ghuser/fnbrowser/pkg/logger"
	domainevents "github.com/ghuser/fnbrowser/services/cosmetic/domain/events"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/repositories"
	domainsvcs "github.com/ghuser/fnbrowser/services/cosmetic/domain/services"
)

// DefaultSearchDebounce is how long a search must stay unchanged before it is committed.
const DefaultSearchDebounce = time.Second

// PopularLimit is the number of entries returned by Popular.
const PopularLimit = 10

// Publisher publishes messages to a topic. *events.EventBus satisfies it.
type Publisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// AfterFunc schedules f after d and returns a stop function. time.AfterFunc
// adapted by realAfterFunc is the production implementation.
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

func realAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// SearchService keeps each visitor's recent searches. Submitted searches are
// debounced per visitor: only the last one within the window is committed.
type SearchService struct {
	history   repositories.HistoryStore
	popular   repositories.PopularSearches // nil disables the ranking
	publisher Publisher                    // nil disables search.committed events
	log       logger.Logger
	debounce  time.Duration
	afterFunc AfterFunc

	mu      sync.Mutex
	seq     uint64
	pending map[string]pendingCommit
	wg      sync.WaitGroup
}

type pendingCommit struct {
	seq  uint64
	stop func() bool
}

// NewSearchService returns a SearchService. popular and publisher may be nil.
func NewSearchService(history repositories.HistoryStore, popular repositories.PopularSearches, publisher Publisher, log logger.Logger, debounce time.Duration) *SearchService {
	if debounce <= 0 {
		debounce = DefaultSearchDebounce
	}
	return &SearchService{
		history:   history,
		popular:   popular,
		publisher: publisher,
		log:       log,
		debounce:  debounce,
		afterFunc: realAfterFunc,
		pending:   make(map[string]pendingCommit),
	}
}

// Recent returns the visitor's recent searches, most recent first.
func (s *SearchService) Recent(ctx context.Context, visitor string) ([]string, error) {
	list, err := s.history.Recent(ctx, visitor)
	if err != nil {
		return nil, fmt.Errorf("recent searches: %w", err)
	}
	return list, nil
}

// Submit schedules query to be committed after the debounce window,
// replacing any commit still pending for visitor. Blank queries cancel the
// pending commit.
func (s *SearchService) Submit(visitor, query string) {
	query = strings.TrimSpace(query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pending[visitor]; ok {
		if p.stop() {
			s.wg.Done()
		}
		delete(s.pending, visitor)
	}
	if query == "" {
		return
	}

	s.seq++
	seq := s.seq
	s.wg.Add(1)
	stop := s.afterFunc(s.debounce, func() {
		defer s.wg.Done()
		s.mu.Lock()
		// superseded between firing and acquiring the lock
		if p, ok := s.pending[visitor]; !ok || p.seq != seq {
			s.mu.Unlock()
			return
		}
		delete(s.pending, visitor)
		s.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := s.Commit(ctx, visitor, query); err != nil {
			s.log.WarnContext(ctx, "search commit failed", "error", err)
		}
	})
	s.pending[visitor] = pendingCommit{seq: seq, stop: stop}
}

// Commit pushes query onto the visitor's recent searches immediately and
// publishes search.committed. Blank queries leave the list unchanged.
func (s *SearchService) Commit(ctx context.Context, visitor, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.Recent(ctx, visitor)
	}

	list, err := s.history.Update(ctx, visitor, func(list []string) []string {
		return domainsvcs.PushRecentSearch(list, query)
	})
	if err != nil {
		return nil, fmt.Errorf("save recent searches: %w", err)
	}

	if s.publisher != nil {
		if err := s.publishCommitted(ctx, visitor, query); err != nil {
			s.log.WarnContext(ctx, "search.committed not published", "error", err)
		}
	}
	return list, nil
}

// Remove deletes query from the visitor's recent searches.
func (s *SearchService) Remove(ctx context.Context, visitor, query string) ([]string, error) {
	list, err := s.history.Update(ctx, visitor, func(list []string) []string {
		return domainsvcs.RemoveRecent(list, query)
	})
	if err != nil {
		return nil, fmt.Errorf("save recent searches: %w", err)
	}
	return list, nil
}

// Clear forgets every recent search of the visitor.
func (s *SearchService) Clear(ctx context.Context, visitor string) error {
	if err := s.history.Clear(ctx, visitor); err != nil {
		return fmt.Errorf("clear recent searches: %w", err)
	}
	return nil
}

// Popular returns the most committed searches across visitors.
func (s *SearchService) Popular(ctx context.Context) ([]repositories.SearchCount, error) {
	if s.popular == nil {
		return []repositories.SearchCount{}, nil
	}
	top, err := s.popular.Top(ctx, PopularLimit)
	if err != nil {
		return nil, fmt.Errorf("popular searches: %w", err)
	}
	return top, nil
}

// Close drops pending commits and waits for commits already running.
func (s *SearchService) Close() {
	s.mu.Lock()
	for visitor, p := range s.pending {
		if p.stop() {
			s.wg.Done()
		}
		delete(s.pending, visitor)
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *SearchService) publishCommitted(ctx context.Context, visitor, query string) error {
	event := domainevents.SearchCommittedEvent{
		EventID:    uuid.New(),
		Version:    1,
		VisitorID:  visitor,
		Query:      query,
		OccurredAt: time.Now().UTC(),
	}
	msg, err := events.NewJSONMessage(event)
	if err != nil {
		return err
	}
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	return s.publisher.Publish(ctx, domainevents.TopicSearchCommitted, msg)
}

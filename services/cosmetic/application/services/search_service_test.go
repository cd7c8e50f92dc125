package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/fnbrowser/pkg/events"
	"github.com/ghuser/fnbrowser/pkg/logger"
	domainevents "github.com/ghuser/fnbrowser/services/cosmetic/domain/events"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/repositories"
)

// manualTimers stands in for time.AfterFunc; scheduled callbacks only run on fire.
type manualTimers struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	f       func()
	d       time.Duration
	stopped bool
	fired   bool
}

func (m *manualTimers) after(d time.Duration, f func()) func() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{f: f, d: d}
	m.timers = append(m.timers, t)
	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		if t.fired || t.stopped {
			return false
		}
		t.stopped = true
		return true
	}
}

// fire runs every timer that is neither stopped nor fired yet and reports how many ran.
func (m *manualTimers) fire() int {
	m.mu.Lock()
	var due []*manualTimer
	for _, t := range m.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	m.mu.Unlock()
	for _, t := range due {
		t.f()
	}
	return len(due)
}

func newSearch(t *testing.T) (*SearchService, *memHistory, *recordingPublisher, *manualTimers) {
	t.Helper()
	history := newMemHistory()
	pub := newRecordingPublisher()
	timers := &manualTimers{}
	svc := NewSearchService(history, nil, pub, logger.Discard(), 0)
	svc.afterFunc = timers.after
	t.Cleanup(svc.Close)
	return svc, history, pub, timers
}

func TestSearchService_DebounceCommitsOnlyLatest(t *testing.T) {
	svc, history, pub, timers := newSearch(t)

	svc.Submit("v1", "p")
	svc.Submit("v1", "pe")
	svc.Submit("v1", "peely")

	require.Empty(t, history.get("v1"), "nothing is committed before the window elapses")
	require.Equal(t, 1, timers.fire())
	require.Equal(t, []string{"peely"}, history.get("v1"))

	msgs := pub.published(domainevents.TopicSearchCommitted)
	require.Len(t, msgs, 1)
	evt, err := events.DecodeJSON[domainevents.SearchCommittedEvent](msgs[0])
	require.NoError(t, err)
	require.Equal(t, "peely", evt.Query)
	require.Equal(t, "v1", evt.VisitorID)
	require.Equal(t, 1, evt.Version)
}

func TestSearchService_DefaultDebounceWindow(t *testing.T) {
	svc, _, _, timers := newSearch(t)
	svc.Submit("v1", "peely")

	timers.mu.Lock()
	defer timers.mu.Unlock()
	require.Len(t, timers.timers, 1)
	require.Equal(t, DefaultSearchDebounce, timers.timers[0].d)
	require.Equal(t, time.Second, DefaultSearchDebounce)
}

func TestSearchService_VisitorsDebounceIndependently(t *testing.T) {
	svc, history, _, timers := newSearch(t)

	svc.Submit("v1", "peely")
	svc.Submit("v2", "jonesy")
	require.Equal(t, 2, timers.fire())

	require.Equal(t, []string{"peely"}, history.get("v1"))
	require.Equal(t, []string{"jonesy"}, history.get("v2"))
}

func TestSearchService_BlankSubmitCancelsPending(t *testing.T) {
	svc, history, _, timers := newSearch(t)

	svc.Submit("v1", "peely")
	svc.Submit("v1", "   ")
	require.Zero(t, timers.fire())
	require.Empty(t, history.get("v1"))
}

func TestSearchService_CloseDropsPending(t *testing.T) {
	svc, history, _, timers := newSearch(t)

	svc.Submit("v1", "peely")
	svc.Close()
	require.Zero(t, timers.fire())
	require.Empty(t, history.get("v1"))
}

func TestSearchService_CommitKeepsFiveDistinct(t *testing.T) {
	svc, _, _, _ := newSearch(t)
	ctx := context.Background()

	for i := 1; i <= 6; i++ {
		_, err := svc.Commit(ctx, "v1", fmt.Sprintf("q%d", i))
		require.NoError(t, err)
	}
	list, err := svc.Commit(ctx, "v1", "q4")
	require.NoError(t, err)
	require.Equal(t, []string{"q4", "q6", "q5", "q3", "q2"}, list)

	recent, err := svc.Recent(ctx, "v1")
	require.NoError(t, err)
	require.Equal(t, list, recent)
}

func TestSearchService_CommitBlankIsNoop(t *testing.T) {
	svc, history, pub, _ := newSearch(t)
	history.lists["v1"] = []string{"peely"}

	list, err := svc.Commit(context.Background(), "v1", "  ")
	require.NoError(t, err)
	require.Equal(t, []string{"peely"}, list)
	require.Empty(t, pub.published(domainevents.TopicSearchCommitted))
}

func TestSearchService_RemoveAndClear(t *testing.T) {
	svc, history, _, _ := newSearch(t)
	ctx := context.Background()
	history.lists["v1"] = []string{"c", "b", "a"}

	list, err := svc.Remove(ctx, "v1", "b")
	require.NoError(t, err)
	require.Equal(t, []string{"c", "a"}, list)

	require.NoError(t, svc.Clear(ctx, "v1"))
	recent, err := svc.Recent(ctx, "v1")
	require.NoError(t, err)
	require.Empty(t, recent)
}

func TestSearchService_ConcurrentCommitsKeepEveryQuery(t *testing.T) {
	svc, history, _, _ := newSearch(t)
	queries := []string{"peely", "jonesy", "raven", "drift", "midas"}

	var wg sync.WaitGroup
	for _, q := range queries {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Commit(context.Background(), "v1", q)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.ElementsMatch(t, queries, history.get("v1"))
}

func TestSearchService_StoreErrors(t *testing.T) {
	svc, history, _, _ := newSearch(t)
	history.err = errBoom

	_, err := svc.Recent(context.Background(), "v1")
	require.ErrorIs(t, err, errBoom)
	_, err = svc.Commit(context.Background(), "v1", "peely")
	require.ErrorIs(t, err, errBoom)
}

func TestSearchService_Popular(t *testing.T) {
	history := newMemHistory()
	without := NewSearchService(history, nil, nil, logger.Discard(), 0)
	defer without.Close()
	top, err := without.Popular(context.Background())
	require.NoError(t, err)
	require.NotNil(t, top)
	require.Empty(t, top)

	counts := make([]repositories.SearchCount, 12)
	for i := range counts {
		counts[i] = repositories.SearchCount{Query: fmt.Sprintf("q%d", i), Count: int64(100 - i)}
	}
	with := NewSearchService(history, &fakePopular{top: counts}, nil, logger.Discard(), 0)
	defer with.Close()
	top, err = with.Popular(context.Background())
	require.NoError(t, err)
	require.Len(t, top, PopularLimit)
	require.Equal(t, "q0", top[0].Query)
}

func TestSearchService_RealTimer(t *testing.T) {
	history := newMemHistory()
	svc := NewSearchService(history, nil, nil, logger.Discard(), 20*time.Millisecond)
	defer svc.Close()

	svc.Submit("v1", "pee")
	svc.Submit("v1", "peely")
	require.Eventually(t, func() bool {
		return len(history.get("v1")) == 1
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, []string{"peely"}, history.get("v1"))
}

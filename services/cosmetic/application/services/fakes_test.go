package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/fnbrowser/pkg/logger"
	cosmeticdomain "github.com/ghuser/fnbrowser/services/cosmetic/domain"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/models"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/repositories"
)

func cosmetic(id, name, rarity, typ string) models.Cosmetic {
	return models.Cosmetic{
		ID:     id,
		Name:   name,
		Rarity: models.Tag{Value: rarity},
		Type:   models.Tag{Value: typ},
	}
}

func inSet(c models.Cosmetic, set string) models.Cosmetic {
	c.Set = &models.Tag{Value: set}
	return c
}

func ids(items []models.Cosmetic) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

// outfits returns n common outfits with ids o01..oNN.
func outfits(n int) []models.Cosmetic {
	out := make([]models.Cosmetic, n)
	for i := range out {
		out[i] = cosmetic(fmt.Sprintf("o%02d", i+1), fmt.Sprintf("Outfit %d", i+1), "common", "outfit")
	}
	return out
}

// fakeSource serves FetchAll through fetch and FetchSet from sets.
type fakeSource struct {
	mu       sync.Mutex
	fetch    func(ctx context.Context) ([]models.Cosmetic, error)
	sets     map[string][]models.Cosmetic
	setErr   error
	setCalls int
}

func staticSource(items []models.Cosmetic) *fakeSource {
	return &fakeSource{fetch: func(context.Context) ([]models.Cosmetic, error) { return items, nil }}
}

func (f *fakeSource) FetchAll(ctx context.Context) ([]models.Cosmetic, error) {
	f.mu.Lock()
	fetch := f.fetch
	f.mu.Unlock()
	return fetch(ctx)
}

func (f *fakeSource) FetchSet(_ context.Context, name string) ([]models.Cosmetic, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls++
	if f.setErr != nil {
		return nil, f.setErr
	}
	return f.sets[name], nil
}

func (f *fakeSource) setCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setCalls
}

// memSnapshots is an in-memory SnapshotRepository.
type memSnapshots struct {
	mu    sync.Mutex
	saved []*repositories.Snapshot
	err   error
}

func (m *memSnapshots) Save(_ context.Context, items []models.Cosmetic, fetchedAt time.Time) (*repositories.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	snap := &repositories.Snapshot{ID: uuid.New(), Items: items, FetchedAt: fetchedAt}
	m.saved = append(m.saved, snap)
	return snap, nil
}

func (m *memSnapshots) Latest(context.Context) (*repositories.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.saved) == 0 {
		return nil, cosmeticdomain.ErrCatalogNotLoaded
	}
	return m.saved[len(m.saved)-1], nil
}

func (m *memSnapshots) Get(_ context.Context, id uuid.UUID) (*repositories.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.saved {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, cosmeticdomain.ErrCatalogNotLoaded
}

func (m *memSnapshots) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saved)
}

// memHistory is an in-memory HistoryStore.
type memHistory struct {
	mu    sync.Mutex
	lists map[string][]string
	err   error
}

func newMemHistory() *memHistory {
	return &memHistory{lists: make(map[string][]string)}
}

func (m *memHistory) Recent(_ context.Context, owner string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return slices.Clone(m.lists[owner]), nil
}

func (m *memHistory) Update(_ context.Context, owner string, fn func([]string) []string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	list := fn(slices.Clone(m.lists[owner]))
	m.lists[owner] = slices.Clone(list)
	return list, nil
}

func (m *memHistory) Clear(_ context.Context, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lists, owner)
	return nil
}

func (m *memHistory) get(owner string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.lists[owner])
}

// memSetCache is an in-memory SetCache.
type memSetCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemSetCache() *memSetCache {
	return &memSetCache{entries: make(map[string][]byte)}
}

func (m *memSetCache) Get(_ context.Context, name string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.entries[name]
	return b, ok, nil
}

func (m *memSetCache) Set(_ context.Context, name string, items []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[name] = items
	return nil
}

// recordingPublisher keeps every published message per topic.
type recordingPublisher struct {
	mu   sync.Mutex
	msgs map[string][]*message.Message
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{msgs: make(map[string][]*message.Message)}
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, msgs ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs[topic] = append(p.msgs[topic], msgs...)
	return nil
}

func (p *recordingPublisher) published(topic string) []*message.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.msgs[topic])
}

type fakePopular struct {
	top []repositories.SearchCount
}

func (f *fakePopular) Increment(context.Context, string) error { return nil }

func (f *fakePopular) Top(_ context.Context, n int) ([]repositories.SearchCount, error) {
	return f.top[:min(n, len(f.top))], nil
}

var errBoom = errors.New("boom")

// loadedCatalog returns a CatalogService already serving items.
func loadedCatalog(t *testing.T, items []models.Cosmetic) *CatalogService {
	t.Helper()
	svc := NewCatalogService(staticSource(items), nil, logger.Discard(), CatalogOptions{})
	t.Cleanup(svc.Close)
	require.NoError(t, svc.Load(context.Background()))
	return svc
}

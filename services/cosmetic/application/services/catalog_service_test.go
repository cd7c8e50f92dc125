package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ghuser/fnbrowser/pkg/logger"
	cosmeticdomain "github.com/ghuser/fnbrowser/services/cosmetic/domain"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/models"
)

func TestCatalogService_NotLoaded(t *testing.T) {
	svc := NewCatalogService(staticSource(nil), nil, logger.Discard(), CatalogOptions{})
	defer svc.Close()

	_, err := svc.Collection()
	require.ErrorIs(t, err, cosmeticdomain.ErrCatalogNotLoaded)
	require.Equal(t, CatalogIdle, svc.Status().State)
}

func TestCatalogService_LoadSuccess(t *testing.T) {
	snaps := &memSnapshots{}
	svc := NewCatalogService(staticSource(outfits(3)), snaps, logger.Discard(), CatalogOptions{})
	defer svc.Close()

	require.NoError(t, svc.Load(context.Background()))

	c, err := svc.Collection()
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())

	st := svc.Status()
	require.Equal(t, CatalogReady, st.State)
	require.Equal(t, 3, st.Count)
	require.False(t, st.Slow)
	require.False(t, st.FromSnapshot)
	require.False(t, st.FetchedAt.IsZero())
	require.Equal(t, 1, snaps.count(), "successful fetch is persisted")
}

func TestCatalogService_SnapshotFailureDoesNotFailRefresh(t *testing.T) {
	snaps := &memSnapshots{err: errBoom}
	svc := NewCatalogService(staticSource(outfits(2)), snaps, logger.Discard(), CatalogOptions{})
	defer svc.Close()

	require.NoError(t, svc.Load(context.Background()))
	require.Equal(t, CatalogReady, svc.Status().State)
}

func TestCatalogService_FailureKeepsStaleCollection(t *testing.T) {
	src := staticSource(outfits(2))
	svc := NewCatalogService(src, nil, logger.Discard(), CatalogOptions{RetryCountdown: 15 * time.Second})
	defer svc.Close()
	require.NoError(t, svc.Load(context.Background()))

	failedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	now := failedAt
	svc.now = func() time.Time { return now }
	src.mu.Lock()
	src.fetch = func(context.Context) ([]models.Cosmetic, error) { return nil, cosmeticdomain.ErrUpstream }
	src.mu.Unlock()

	require.ErrorIs(t, svc.Load(context.Background()), cosmeticdomain.ErrUpstream)

	now = failedAt.Add(4500 * time.Millisecond)
	st := svc.Status()
	require.Equal(t, CatalogFailed, st.State)
	require.Contains(t, st.Error, cosmeticdomain.ErrUpstream.Error())
	require.Equal(t, 10*time.Second, st.RetryIn)
	require.Equal(t, 2, st.Count, "previous collection keeps serving")

	c, err := svc.Collection()
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	now = failedAt.Add(time.Minute)
	require.Zero(t, svc.Status().RetryIn)
}

// blockingFetch returns a fetch that blocks until release is closed or its
// context ends, recording whether it observed cancellation.
func blockingFetch(items []models.Cosmetic, release <-chan struct{}, cancelled *atomic.Bool) func(context.Context) ([]models.Cosmetic, error) {
	return func(ctx context.Context) ([]models.Cosmetic, error) {
		select {
		case <-release:
			return items, nil
		case <-ctx.Done():
			cancelled.Store(true)
			return nil, ctx.Err()
		}
	}
}

func TestCatalogService_RefreshAbortsInFlightFetch(t *testing.T) {
	var cancelled atomic.Bool
	var calls atomic.Int32
	slow := blockingFetch(outfits(5), make(chan struct{}), &cancelled)
	src := &fakeSource{fetch: func(ctx context.Context) ([]models.Cosmetic, error) {
		if calls.Add(1) == 1 {
			return slow(ctx)
		}
		return outfits(2), nil
	}}
	svc := NewCatalogService(src, nil, logger.Discard(), CatalogOptions{})
	defer svc.Close()

	first := svc.Refresh()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	second := svc.Refresh()

	<-first
	<-second
	require.True(t, cancelled.Load(), "superseded fetch is cancelled")

	st := svc.Status()
	require.Equal(t, CatalogReady, st.State)
	require.Empty(t, st.Error, "aborted fetch is not an error")
	require.Equal(t, 2, st.Count)
}

func TestCatalogService_LoadSupersededByRefresh(t *testing.T) {
	var cancelled atomic.Bool
	var calls atomic.Int32
	release := make(chan struct{})
	slow := blockingFetch(outfits(5), make(chan struct{}), &cancelled)
	src := &fakeSource{fetch: func(ctx context.Context) ([]models.Cosmetic, error) {
		if calls.Add(1) == 1 {
			return slow(ctx)
		}
		<-release
		return outfits(2), nil
	}}
	svc := NewCatalogService(src, nil, logger.Discard(), CatalogOptions{})
	defer svc.Close()

	loaded := make(chan error, 1)
	go func() { loaded <- svc.Load(context.Background()) }()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	second := svc.Refresh()

	select {
	case err := <-loaded:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Load did not return after being superseded")
	}
	_, err := svc.Collection()
	require.ErrorIs(t, err, cosmeticdomain.ErrCatalogNotLoaded, "nothing is served yet")

	close(release)
	<-second
	require.Equal(t, 2, svc.Status().Count)
}

func TestCatalogService_SlowAdvisory(t *testing.T) {
	release := make(chan struct{})
	var cancelled atomic.Bool
	src := &fakeSource{fetch: blockingFetch(outfits(1), release, &cancelled)}
	svc := NewCatalogService(src, nil, logger.Discard(), CatalogOptions{AdvisoryAfter: 10 * time.Millisecond})
	defer svc.Close()

	done := svc.Refresh()
	require.Eventually(t, func() bool { return svc.Status().Slow }, time.Second, 5*time.Millisecond)
	require.Equal(t, CatalogLoading, svc.Status().State, "fetch keeps running after the advisory")

	close(release)
	<-done
	st := svc.Status()
	require.Equal(t, CatalogReady, st.State)
	require.False(t, st.Slow)
}

func TestCatalogService_CloseAbortsWithoutStateChange(t *testing.T) {
	var cancelled atomic.Bool
	src := &fakeSource{fetch: blockingFetch(outfits(1), make(chan struct{}), &cancelled)}
	svc := NewCatalogService(src, nil, logger.Discard(), CatalogOptions{})

	done := svc.Refresh()
	svc.Close()
	<-done

	require.True(t, cancelled.Load())
	st := svc.Status()
	require.NotEqual(t, CatalogFailed, st.State)
	require.Empty(t, st.Error)

	// Refresh after Close is a no-op.
	<-svc.Refresh()
	require.Equal(t, st.State, svc.Status().State)
}

func TestCatalogService_RestoreFromSnapshot(t *testing.T) {
	snaps := &memSnapshots{}
	fetchedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	_, err := snaps.Save(context.Background(), outfits(4), fetchedAt)
	require.NoError(t, err)

	svc := NewCatalogService(staticSource(nil), snaps, logger.Discard(), CatalogOptions{})
	defer svc.Close()

	require.NoError(t, svc.Restore(context.Background()))
	st := svc.Status()
	require.Equal(t, CatalogReady, st.State)
	require.True(t, st.FromSnapshot)
	require.Equal(t, 4, st.Count)
	require.True(t, fetchedAt.Equal(st.FetchedAt))
}

func TestCatalogService_RestoreWithoutSnapshot(t *testing.T) {
	svc := NewCatalogService(staticSource(nil), &memSnapshots{}, logger.Discard(), CatalogOptions{})
	defer svc.Close()

	require.NoError(t, svc.Restore(context.Background()))
	require.Equal(t, CatalogIdle, svc.Status().State)
}

func TestCatalogService_Subscribe(t *testing.T) {
	svc := NewCatalogService(staticSource(outfits(3)), nil, logger.Discard(), CatalogOptions{})
	defer svc.Close()

	var got atomic.Int32
	unsubscribe := svc.Subscribe(func(c *models.Collection) { got.Store(int32(c.Len())) })

	require.NoError(t, svc.Load(context.Background()))
	require.EqualValues(t, 3, got.Load())

	unsubscribe()
	got.Store(0)
	require.NoError(t, svc.Load(context.Background()))
	require.Zero(t, got.Load())
}

func TestCatalogService_CatalogHealth(t *testing.T) {
	svc := loadedCatalog(t, outfits(7))
	state, items := svc.CatalogHealth()
	require.Equal(t, "ready", state)
	require.Equal(t, 7, items)
}

package jobs_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voyagedesk/travel-api/internal/domain"
	"github.com/voyagedesk/travel-api/internal/jobs"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeExpirer struct {
	calls int
	n     int64
	err   error
}

func (f *fakeExpirer) DeactivateExpired(ctx context.Context) (int64, error) {
	f.calls++
	return f.n, f.err
}

type fakeTourLister struct {
	before time.Time
	tours  []domain.TourDTO
}

func (f *fakeTourLister) ListExpired(ctx context.Context, before time.Time) ([]domain.TourDTO, error) {
	f.before = before
	return f.tours, nil
}

type fakeImageFailer struct {
	ttl    time.Duration
	failed int
	err    error
}

func (f *fakeImageFailer) FailStalePending(ctx context.Context, ttl time.Duration) (int, error) {
	f.ttl = ttl
	return f.failed, f.err
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

func TestScheduler_AddJob(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	require.NoError(t, s.AddJob("b", "@every 1h", func() {}))
	require.NoError(t, s.AddJob("a", "0 5 0 * * *", func() {}))
	require.NoError(t, s.AddJob("c", "5 0 * * *", func() {}))

	assert.Equal(t, []string{"a", "b", "c"}, s.JobNames())

	err := s.AddJob("a", "@hourly", func() {})
	assert.ErrorContains(t, err, "already exists")

	err = s.AddJob("bad", "not a cron", func() {})
	assert.Error(t, err)
	assert.NotContains(t, s.JobNames(), "bad")
}

func TestScheduler_RemoveJob(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())
	require.NoError(t, s.AddJob("cleanup", "@every 10m", func() {}))

	require.NoError(t, s.RemoveJob("cleanup"))
	assert.Empty(t, s.JobNames())
	assert.Error(t, s.RemoveJob("cleanup"))

	_, ok := s.NextRun("cleanup")
	assert.False(t, ok)
}

func TestScheduler_RunNow(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	var runs atomic.Int32
	require.NoError(t, s.AddJob("expiry", "0 5 0 * * *", func() { runs.Add(1) }))

	require.NoError(t, s.RunNow("expiry"))
	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 10*time.Millisecond)

	assert.Error(t, s.RunNow("missing"))
}

func TestScheduler_StartStop(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())
	require.NoError(t, s.AddJob("daily", "0 5 0 * * *", func() {}))

	s.Start()
	next, ok := s.NextRun("daily")
	require.True(t, ok)
	assert.True(t, next.After(time.Now()))

	select {
	case <-s.Stop().Done():
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestExpiryJob_Run(t *testing.T) {
	logger, logs := observedLogger()
	expiry := "2026-07-01"
	discounts := &fakeExpirer{n: 2}
	tours := &fakeTourLister{tours: []domain.TourDTO{{ID: uuid.New(), Title: "Rome", ExpiryDate: &expiry}}}

	job := jobs.NewExpiryJob(discounts, tours, logger, time.Minute)
	job.Run()

	assert.Equal(t, 1, discounts.calls)
	assert.Equal(t, 0, tours.before.Hour())
	assert.Equal(t, time.UTC, tours.before.Location())

	assert.Equal(t, 1, logs.FilterMessage("tour expired").Len())
	done := logs.FilterMessage("expiry job completed").All()
	require.Len(t, done, 1)
	assert.Equal(t, int64(2), done[0].ContextMap()["discounts_deactivated"])
	assert.Equal(t, int64(1), done[0].ContextMap()["tours_expired"])
}

func TestExpiryJob_DiscountErrorStillChecksTours(t *testing.T) {
	logger, logs := observedLogger()
	discounts := &fakeExpirer{err: errors.New("db down")}
	tours := &fakeTourLister{}

	jobs.NewExpiryJob(discounts, tours, logger, time.Minute).Run()

	assert.Equal(t, 1, logs.FilterMessage("discount expiry failed").Len())
	assert.False(t, tours.before.IsZero())
}

func TestRegisterExpiryJob(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())
	discounts := &fakeExpirer{}

	require.NoError(t, jobs.RegisterExpiryJob(s, discounts, nil, zap.NewNop(), "0 5 0 * * *", time.Minute, false))
	assert.Equal(t, []string{jobs.ExpiryJobName}, s.JobNames())
	assert.Zero(t, discounts.calls)

	err := jobs.RegisterExpiryJob(s, discounts, nil, zap.NewNop(), "0 5 0 * * *", time.Minute, true)
	assert.Error(t, err)
}

func TestPendingImageJob_Run(t *testing.T) {
	t.Run("logs failed slots", func(t *testing.T) {
		logger, logs := observedLogger()
		images := &fakeImageFailer{failed: 3}

		jobs.NewPendingImageJob(images, 30*time.Minute, logger, time.Minute).Run()

		assert.Equal(t, 30*time.Minute, images.ttl)
		entries := logs.FilterMessage("pending image cleanup completed").All()
		require.Len(t, entries, 1)
		assert.Equal(t, int64(3), entries[0].ContextMap()["images_failed"])
	})

	t.Run("quiet when nothing was stale", func(t *testing.T) {
		logger, logs := observedLogger()
		jobs.NewPendingImageJob(&fakeImageFailer{}, time.Hour, logger, time.Minute).Run()
		assert.Zero(t, logs.FilterMessage("pending image cleanup completed").Len())
	})

	t.Run("logs errors", func(t *testing.T) {
		logger, logs := observedLogger()
		jobs.NewPendingImageJob(&fakeImageFailer{err: errors.New("boom")}, time.Hour, logger, time.Minute).Run()
		assert.Equal(t, 1, logs.FilterMessage("pending image cleanup failed").Len())
	})
}

package adminaudit_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	adminaudit "github.com/goliatone/go-admin-audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetentionPurgeExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("returns the number of purged records", func(t *testing.T) {
		store := new(MockAuditLogs)
		store.On("DeleteExpired", ctx, now).Return(3, nil)

		retention := adminaudit.NewRetention(store, nil)
		count, err := retention.PurgeExpired(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
		store.AssertExpectations(t)
	})

	t.Run("empty purge is a no-op", func(t *testing.T) {
		store := new(MockAuditLogs)
		store.On("DeleteExpired", ctx, now).Return(0, nil)

		retention := adminaudit.NewRetention(store, nil)
		count, err := retention.PurgeExpired(ctx, now)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		store := new(MockAuditLogs)
		store.On("DeleteExpired", ctx, now).Return(0, adminaudit.ErrRetentionFailed)

		retention := adminaudit.NewRetention(store, nil)
		count, err := retention.PurgeExpired(ctx, now)
		require.ErrorIs(t, err, adminaudit.ErrRetentionFailed)
		assert.Zero(t, count)
	})
}

type countingAuditLogs struct {
	MockAuditLogs
	deletes atomic.Int64
}

func (c *countingAuditLogs) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	c.deletes.Add(1)
	return 0, nil
}

func TestRetentionStart(t *testing.T) {
	store := &countingAuditLogs{}

	cfg := adminaudit.SimpleConfig{PurgeInterval: 10 * time.Millisecond}
	retention := adminaudit.NewRetention(store, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		retention.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return store.deletes.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("retention loop did not stop on context cancellation")
	}
}

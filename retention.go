package adminaudit

import (
	"context"
	"time"
)

// Retention deletes audit records past their expiry. One instance serves
// both invocation paths: the scheduled daily loop and the explicit
// root-only purge. The two may interleave freely since every purge scopes
// its deletes to the snapshot of now taken at invocation start.
type Retention struct {
	store    AuditLogs
	interval time.Duration
	logger   Logger
}

func NewRetention(store AuditLogs, cfg Config) *Retention {
	interval := 24 * time.Hour
	if cfg != nil && cfg.GetPurgeInterval() > 0 {
		interval = cfg.GetPurgeInterval()
	}
	return &Retention{
		store:    store,
		interval: interval,
		logger:   defLogger{},
	}
}

func (r *Retention) WithLogger(logger Logger) *Retention {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// PurgeExpired deletes every record whose expiry is at or before now and
// returns the number removed. Re-invocation with no newly expired records
// is a no-op.
func (r *Retention) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	count, err := r.store.DeleteExpired(ctx, now)
	if err != nil {
		return 0, err
	}

	if count > 0 {
		r.logger.Info("purged expired audit records", "count", count)
	} else {
		r.logger.Debug("no expired audit records to purge")
	}

	return count, nil
}

// Start runs the purge on the configured interval until ctx is canceled.
// A failed cycle is logged and retried only on the next scheduled run.
// Start blocks; run it from a goroutine owned by process lifecycle
// management, after the store is ready.
func (r *Retention) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("retention loop stopped")
			return
		case <-ticker.C:
			if _, err := r.PurgeExpired(ctx, time.Now()); err != nil {
				r.logger.Error("scheduled purge failed", "error", err)
			}
		}
	}
}

package adminaudit

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// AuditFilter narrows the audit query surface. A zero filter returns the
// default view: admin-authored records only, newest first, first page.
type AuditFilter struct {
	PrincipalID int64
	// Role filters by the author's current role. When empty the query
	// excludes root-authored records; pass RoleRoot explicitly to see them.
	Role   Role
	Start  time.Time
	End    time.Time
	Offset int
	Limit  int
}

// DefaultAuditPageSize bounds unpaginated audit queries.
const DefaultAuditPageSize = 100

// AuditLogs is the persistence collaborator for audit records: independent
// inserts on the request path, filtered reads for reporting, and bulk
// deletes for retention. No operation reads-modifies-writes, so the store
// needs no locking beyond the database's own guarantees.
type AuditLogs interface {
	Insert(ctx context.Context, record *AuditRecord) error
	Query(ctx context.Context, filter AuditFilter) ([]*AuditRecord, int, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// BunAuditLogs implements AuditLogs on a bun database.
type BunAuditLogs struct {
	db *bun.DB
}

var _ AuditLogs = (*BunAuditLogs)(nil)

func NewAuditLogsRepository(db *bun.DB) *BunAuditLogs {
	return &BunAuditLogs{db: db}
}

func (s *BunAuditLogs) Insert(ctx context.Context, record *AuditRecord) error {
	if _, err := s.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return errors.Wrap(err, ErrAuditWriteFailed.Category, ErrAuditWriteFailed.Message).
			WithTextCode(ErrAuditWriteFailed.TextCode)
	}
	return nil
}

// Query returns one page of records plus the total count matching the
// filter. The principal join is best-effort: records whose author was
// deleted drop out of the filtered view rather than failing the query.
func (s *BunAuditLogs) Query(ctx context.Context, filter AuditFilter) ([]*AuditRecord, int, error) {
	records := []*AuditRecord{}

	q := s.db.NewSelect().
		Model(&records).
		Relation("Principal")

	if filter.PrincipalID != 0 {
		q = q.Where("?TableAlias.user_id = ?", filter.PrincipalID)
	}

	role := filter.Role
	if role == "" {
		// the unfiltered view hides root activity
		role = RoleAdmin
	}
	q = q.Where("principal.role = ?", string(role))

	if !filter.Start.IsZero() {
		q = q.Where("?TableAlias.timestamp >= ?", filter.Start)
	}
	if !filter.End.IsZero() {
		q = q.Where("?TableAlias.timestamp <= ?", filter.End)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultAuditPageSize
	}

	total, err := q.
		Order("timestamp DESC").
		Offset(filter.Offset).
		Limit(limit).
		ScanAndCount(ctx)

	if err != nil {
		return nil, 0, errors.Wrap(err, errors.CategoryInternal, "failed to query audit records")
	}

	return records, total, nil
}

// DeleteExpired removes every record whose expiry is at or before now and
// reports how many went away. Records written after the now snapshot are
// never targeted, which keeps concurrent purges idempotent.
func (s *BunAuditLogs) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.NewDelete().
		Model((*AuditRecord)(nil)).
		Where("expires_at <= ?", now).
		Exec(ctx)

	if err != nil {
		return 0, errors.Wrap(err, ErrRetentionFailed.Category, ErrRetentionFailed.Message).
			WithTextCode(ErrRetentionFailed.TextCode)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, errors.CategoryInternal, "failed to count purged records")
	}

	return count, nil
}

package adminaudit

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Principals resolves credential subjects to principal records. The store
// is read-mostly; Create and TrackLogin exist for the registration and
// login surfaces.
type Principals interface {
	ResolveByUsername(ctx context.Context, username string) (*Principal, error)
	ResolveByEmail(ctx context.Context, email string) (*Principal, error)
	Create(ctx context.Context, record *Principal) (*Principal, error)
	TrackLogin(ctx context.Context, record *LoginRecord) error
}

// BunPrincipals implements Principals on a bun database.
type BunPrincipals struct {
	db *bun.DB
}

var _ Principals = (*BunPrincipals)(nil)

func NewPrincipalsRepository(db *bun.DB) *BunPrincipals {
	return &BunPrincipals{db: db}
}

func (s *BunPrincipals) ResolveByUsername(ctx context.Context, username string) (*Principal, error) {
	return s.resolve(ctx, "?TableAlias.username = ?", username)
}

func (s *BunPrincipals) ResolveByEmail(ctx context.Context, email string) (*Principal, error) {
	return s.resolve(ctx, "?TableAlias.email = ?", email)
}

func (s *BunPrincipals) resolve(ctx context.Context, where string, value any) (*Principal, error) {
	record := &Principal{}
	err := s.db.NewSelect().
		Model(record).
		Where(where, value).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPrincipalNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to resolve principal")
	}

	return record, nil
}

func (s *BunPrincipals) Create(ctx context.Context, record *Principal) (*Principal, error) {
	if _, err := s.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create principal")
	}
	return record, nil
}

func (s *BunPrincipals) TrackLogin(ctx context.Context, record *LoginRecord) error {
	if _, err := s.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to track login")
	}
	return nil
}

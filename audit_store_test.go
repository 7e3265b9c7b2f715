package adminaudit_test

import (
	"context"
	"testing"
	"time"

	adminaudit "github.com/goliatone/go-admin-audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogsInsert(t *testing.T) {
	bunDB := setupTestDB(t)
	principals := adminaudit.NewPrincipalsRepository(bunDB)
	audits := adminaudit.NewAuditLogsRepository(bunDB)
	ctx := context.Background()

	ana := seedPrincipal(t, principals, "ana", adminaudit.RoleAdmin, true)

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	record := adminaudit.NewAuditRecord(ana.ID, "/api/admin/settings", "GET", 200, "192.0.2.10", now)
	require.NoError(t, audits.Insert(ctx, record))

	got, total, err := audits.Query(ctx, adminaudit.AuditFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, "/api/admin/settings", got[0].Endpoint)
	assert.Equal(t, 200, got[0].StatusCode)
	assert.Equal(t, now.Add(adminaudit.RetentionWindow).Unix(), got[0].ExpiresAt.Unix())
}

func TestAuditLogsQuery(t *testing.T) {
	bunDB := setupTestDB(t)
	principals := adminaudit.NewPrincipalsRepository(bunDB)
	audits := adminaudit.NewAuditLogsRepository(bunDB)
	ctx := context.Background()

	ana := seedPrincipal(t, principals, "ana", adminaudit.RoleAdmin, true)
	ray := seedPrincipal(t, principals, "ray", adminaudit.RoleRoot, true)

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	seed := []*adminaudit.AuditRecord{
		adminaudit.NewAuditRecord(ana.ID, "/api/admin/settings", "GET", 200, "192.0.2.10", base),
		adminaudit.NewAuditRecord(ana.ID, "/api/users/7", "DELETE", 404, "192.0.2.10", base.Add(time.Hour)),
		adminaudit.NewAuditRecord(ray.ID, "/api/services", "POST", 201, "192.0.2.20", base.Add(2*time.Hour)),
	}
	for _, r := range seed {
		require.NoError(t, audits.Insert(ctx, r))
	}

	t.Run("default view hides root and sorts newest first", func(t *testing.T) {
		got, total, err := audits.Query(ctx, adminaudit.AuditFilter{})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, got, 2)
		assert.Equal(t, "/api/users/7", got[0].Endpoint)
		assert.Equal(t, "/api/admin/settings", got[1].Endpoint)
		require.NotNil(t, got[0].Principal)
		assert.Equal(t, "ana", got[0].Principal.Username)
	})

	t.Run("explicit root filter surfaces root activity", func(t *testing.T) {
		got, total, err := audits.Query(ctx, adminaudit.AuditFilter{Role: adminaudit.RoleRoot})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, got, 1)
		assert.Equal(t, "/api/services", got[0].Endpoint)
	})

	t.Run("principal filter", func(t *testing.T) {
		got, total, err := audits.Query(ctx, adminaudit.AuditFilter{PrincipalID: ana.ID})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, got, 2)
	})

	t.Run("time range filter", func(t *testing.T) {
		got, total, err := audits.Query(ctx, adminaudit.AuditFilter{
			Start: base.Add(30 * time.Minute),
			End:   base.Add(90 * time.Minute),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, got, 1)
		assert.Equal(t, "/api/users/7", got[0].Endpoint)
	})

	t.Run("pagination", func(t *testing.T) {
		got, total, err := audits.Query(ctx, adminaudit.AuditFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, got, 1)
		assert.Equal(t, "/api/admin/settings", got[0].Endpoint)
	})
}

func TestAuditLogsDeleteExpired(t *testing.T) {
	bunDB := setupTestDB(t)
	principals := adminaudit.NewPrincipalsRepository(bunDB)
	audits := adminaudit.NewAuditLogsRepository(bunDB)
	ctx := context.Background()

	ana := seedPrincipal(t, principals, "ana", adminaudit.RoleAdmin, true)

	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	old := adminaudit.NewAuditRecord(ana.ID, "/api/admin/old", "GET", 200, "192.0.2.10", now.Add(-adminaudit.RetentionWindow-time.Hour))
	edge := adminaudit.NewAuditRecord(ana.ID, "/api/admin/edge", "GET", 200, "192.0.2.10", now.Add(-adminaudit.RetentionWindow))
	fresh := adminaudit.NewAuditRecord(ana.ID, "/api/admin/fresh", "GET", 200, "192.0.2.10", now.Add(-time.Hour))
	for _, r := range []*adminaudit.AuditRecord{old, edge, fresh} {
		require.NoError(t, audits.Insert(ctx, r))
	}

	count, err := audits.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	got, total, err := audits.Query(ctx, adminaudit.AuditFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, "/api/admin/fresh", got[0].Endpoint)

	// a second pass over the same snapshot finds nothing
	count, err = audits.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, count)
}

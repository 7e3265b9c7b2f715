package adminaudit_test

import (
	"context"
	"time"

	adminaudit "github.com/goliatone/go-admin-audit"
	"github.com/stretchr/testify/mock"
)

// MockTokenService implements adminaudit.TokenService for testing
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Issue(subject string, role adminaudit.Role, ttl ...time.Duration) (string, error) {
	args := m.Called(subject, role, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Verify(tokenString string) (adminaudit.AuthClaims, error) {
	args := m.Called(tokenString)
	if claims := args.Get(0); claims != nil {
		return claims.(adminaudit.AuthClaims), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockPrincipals implements adminaudit.Principals for testing
type MockPrincipals struct {
	mock.Mock
}

func (m *MockPrincipals) ResolveByUsername(ctx context.Context, username string) (*adminaudit.Principal, error) {
	args := m.Called(ctx, username)
	if p := args.Get(0); p != nil {
		return p.(*adminaudit.Principal), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPrincipals) ResolveByEmail(ctx context.Context, email string) (*adminaudit.Principal, error) {
	args := m.Called(ctx, email)
	if p := args.Get(0); p != nil {
		return p.(*adminaudit.Principal), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPrincipals) Create(ctx context.Context, record *adminaudit.Principal) (*adminaudit.Principal, error) {
	args := m.Called(ctx, record)
	if p := args.Get(0); p != nil {
		return p.(*adminaudit.Principal), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPrincipals) TrackLogin(ctx context.Context, record *adminaudit.LoginRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// MockAuditLogs implements adminaudit.AuditLogs for testing
type MockAuditLogs struct {
	mock.Mock
}

func (m *MockAuditLogs) Insert(ctx context.Context, record *adminaudit.AuditRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAuditLogs) Query(ctx context.Context, filter adminaudit.AuditFilter) ([]*adminaudit.AuditRecord, int, error) {
	args := m.Called(ctx, filter)
	if records := args.Get(0); records != nil {
		return records.([]*adminaudit.AuditRecord), args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *MockAuditLogs) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return int64(args.Int(0)), args.Error(1)
}

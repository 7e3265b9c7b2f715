// Package auditware observes every inbound request and records privileged
// access to sensitive endpoints. It decides independently from the
// authorization guard: the request's outcome is never affected by anything
// that happens here.
package auditware

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	adminaudit "github.com/goliatone/go-admin-audit"
)

// TokenVerifier mirrors adminaudit.TokenService.Verify so callers can plug
// any verifier without pulling in the full service surface.
type TokenVerifier interface {
	Verify(tokenString string) (adminaudit.AuthClaims, error)
}

// PrincipalResolver is the single read the interceptor needs: a durable
// numeric identity for the credential's subject.
type PrincipalResolver interface {
	ResolveByUsername(ctx context.Context, username string) (*adminaudit.Principal, error)
}

// RecordWriter persists one record per audited request.
type RecordWriter interface {
	Insert(ctx context.Context, record *adminaudit.AuditRecord) error
}

type Config struct {
	// Skip short-circuits auditing for a request when it returns true.
	Skip func(c *fiber.Ctx) bool

	// APIPrefix scopes candidates; requests outside it are never audited.
	APIPrefix string

	// SensitivePaths are the fragments that mark a path as auditable.
	SensitivePaths []string

	// Tokens decodes the bearer credential. Required.
	Tokens TokenVerifier

	// Principals resolves the subject after the response. Required.
	Principals PrincipalResolver

	// Store receives the audit record. Required.
	Store RecordWriter

	Logger adminaudit.Logger

	// Now is the clock used for timestamp and expiry. Defaults to time.Now.
	Now func() time.Time
}

// New returns the access audit middleware. Register it ahead of the
// handler chain; unaudited paths pass through with a prefix check only.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Skip != nil && cfg.Skip(c) {
			return c.Next()
		}

		path := c.Path()
		if !cfg.auditableCandidate(path) {
			return c.Next()
		}

		raw := bearerToken(c)
		if raw == "" {
			return c.Next()
		}

		claims, err := cfg.Tokens.Verify(raw)
		if err != nil {
			// a bad credential is the guard's problem, not ours
			return c.Next()
		}

		if !claims.Role().Auditable() {
			return c.Next()
		}

		// capture request attributes before the handler can mutate them
		method := c.Method()
		ip := c.IP()

		err = c.Next()

		// the record carries the actual outcome, so it is written only
		// after the response is produced
		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}

		cfg.record(c.UserContext(), claims.Subject(), path, method, status, ip)

		return err
	}
}

// record is the contained tail of the interceptor: resolution or write
// failures are logged and swallowed so they can never fail the request.
func (cfg Config) record(ctx context.Context, subject, endpoint, method string, status int, ip string) {
	principal, err := cfg.Principals.ResolveByUsername(ctx, subject)
	if err != nil {
		cfg.Logger.Debug("audit skipped, subject did not resolve", "subject", subject, "error", err)
		return
	}

	rec := adminaudit.NewAuditRecord(principal.ID, endpoint, method, status, ip, cfg.Now())
	if err := cfg.Store.Insert(ctx, rec); err != nil {
		cfg.Logger.Error("audit write failed", "endpoint", endpoint, "error", err)
	}
}

func (cfg Config) auditableCandidate(path string) bool {
	if !strings.HasPrefix(path, cfg.APIPrefix) {
		return false
	}
	for _, fragment := range cfg.SensitivePaths {
		if strings.Contains(path, fragment) {
			return true
		}
	}
	return false
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func configDefault(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Tokens == nil {
		panic("AUDIT: middleware configuration: Tokens is required.")
	}
	if cfg.Principals == nil {
		panic("AUDIT: middleware configuration: Principals is required.")
	}
	if cfg.Store == nil {
		panic("AUDIT: middleware configuration: Store is required.")
	}

	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/api/"
	}
	if len(cfg.SensitivePaths) == 0 {
		cfg.SensitivePaths = adminaudit.DefaultSensitivePaths()
	}
	if cfg.Logger == nil {
		cfg.Logger = adminaudit.DefaultLogger()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return cfg
}

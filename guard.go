package adminaudit

import (
	"context"
)

// Guard derives yes/no authorization decisions for request handlers. It is
// composed as a precondition check; the audit interceptor deliberately
// never consults it, so a request can be authorized without being audited
// and vice versa.
type Guard struct {
	tokens     TokenService
	principals Principals
	logger     Logger
}

func NewGuard(tokens TokenService, principals Principals) *Guard {
	return &Guard{
		tokens:     tokens,
		principals: principals,
		logger:     defLogger{},
	}
}

func (g *Guard) WithLogger(logger Logger) *Guard {
	if logger != nil {
		g.logger = logger
	}
	return g
}

// RequireAuthenticated verifies the raw bearer credential, resolves its
// subject, and rejects inactive principals. Failures propagate to the
// caller before any handler logic runs.
func (g *Guard) RequireAuthenticated(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, ErrInvalidCredential
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	principal, err := g.principals.ResolveByUsername(ctx, claims.Subject())
	if err != nil {
		return nil, err
	}

	if !principal.IsActive {
		g.logger.Debug("authentication rejected, principal inactive", "subject", principal.Username)
		return nil, ErrPrincipalInactive
	}

	return principal, nil
}

// RequireRole is a pure comparison against the allowed set. Root passes an
// admin gate through the explicit superset rule in Role.Satisfies; an
// admin never passes a root gate.
func (g *Guard) RequireRole(principal *Principal, allowed ...Role) (*Principal, error) {
	if principal == nil {
		return nil, ErrInvalidCredential
	}

	if !principal.Role.Satisfies(allowed...) {
		return nil, ErrForbidden
	}

	return principal, nil
}

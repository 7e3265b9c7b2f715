package adminaudit

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims is the verified content of a credential. Verification is
// purely cryptographic/structural; nothing here implies the subject still
// resolves to an active principal.
type AuthClaims interface {
	Subject() string
	Role() Role
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims
type JWTClaims struct {
	jwt.RegisteredClaims
	UserRole string `json:"role,omitempty"`
}

// Verify interface compliance
var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim, the principal's username.
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// Role returns the embedded role claim. It may be invalid when the token
// was minted elsewhere; callers gate on Role.IsValid or Role.Auditable.
func (c *JWTClaims) Role() Role {
	return Role(c.UserRole)
}

func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

package adminaudit

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// TokenService issues and verifies signed, time-limited credentials. It is
// stateless: the only shared value is the immutable signing secret, so a
// single instance is safe for any number of concurrent callers.
type TokenService interface {
	// Issue produces a signed token embedding subject and role, expiring
	// ttl from now. When ttl is omitted the configured default applies.
	Issue(subject string, role Role, ttl ...time.Duration) (string, error)

	// Verify validates signature, structure, and expiration. It never
	// consults a store; a verified credential may still belong to a
	// deleted or deactivated principal.
	Verify(tokenString string) (AuthClaims, error)
}

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	signingKey      []byte
	signingMethod   jwt.SigningMethod
	tokenExpiration int
	issuer          string
	audience        jwt.ClaimStrings
	logger          Logger
}

// NewTokenService creates a new TokenService instance. tokenExpiration is
// the default credential TTL in minutes.
func NewTokenService(signingKey []byte, tokenExpiration int, issuer string, audience jwt.ClaimStrings, logger Logger) TokenService {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenServiceImpl{
		signingKey:      signingKey,
		signingMethod:   jwt.SigningMethodHS256,
		tokenExpiration: tokenExpiration,
		issuer:          issuer,
		audience:        audience,
		logger:          logger,
	}
}

// NewTokenServiceFromConfig builds a TokenService from a Config. Only HMAC
// signing methods are honored; anything else keeps the HS256 default.
func NewTokenServiceFromConfig(cfg Config, logger Logger) TokenService {
	svc := NewTokenService(
		[]byte(cfg.GetSigningKey()),
		cfg.GetTokenExpiration(),
		cfg.GetIssuer(),
		cfg.GetAudience(),
		logger,
	).(*TokenServiceImpl)

	if method := jwt.GetSigningMethod(cfg.GetSigningMethod()); method != nil {
		if _, ok := method.(*jwt.SigningMethodHMAC); ok {
			svc.signingMethod = method
		}
	}

	return svc
}

// Issue creates a signed JWT for the given subject and role
func (ts *TokenServiceImpl) Issue(subject string, role Role, ttl ...time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("subject must not be empty", errors.CategoryBadInput)
	}

	expiresIn := time.Duration(ts.tokenExpiration) * time.Minute
	if len(ttl) > 0 && ttl[0] != 0 {
		expiresIn = ttl[0]
	}
	if expiresIn < 0 {
		return "", errors.New("token TTL must be non-negative", errors.CategoryBadInput)
	}

	now := time.Now()
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   subject,
			Audience:  ts.audience,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
		UserRole: string(role),
	}

	ensureTokenID(&claims.RegisteredClaims)

	return ts.SignClaims(claims)
}

// SignClaims signs arbitrary JWT claims using the configured signing key.
func (ts *TokenServiceImpl) SignClaims(claims *JWTClaims) (string, error) {
	if claims == nil {
		return "", errors.New("claims must not be nil", errors.CategoryInternal)
	}

	token := jwt.NewWithClaims(ts.signingMethod, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Verify parses and validates a token string, returning structured claims
func (ts *TokenServiceImpl) Verify(tokenString string) (AuthClaims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 2)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}
	if len(ts.audience) > 0 {
		parserOptions = append(parserOptions, jwt.WithAudience(ts.audience...))
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService verify encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).WithTextCode(ErrTokenMalformed.TextCode)
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	ts.logger.Error("TokenService verify could not decode or validate claims")
	return nil, ErrInvalidCredential
}

func ensureTokenID(claims *jwt.RegisteredClaims) {
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}
}

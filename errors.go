package adminaudit

import "github.com/goliatone/go-errors"

const (
	TextCodeInvalidCredential = "auth_invalid_credential"
	TextCodeTokenExpired      = "auth_token_expired"
	TextCodeTokenMalformed    = "auth_token_malformed"
	TextCodePrincipalNotFound = "auth_principal_not_found"
	TextCodePrincipalInactive = "auth_principal_inactive"
	TextCodeForbidden         = "auth_forbidden"
	TextCodeLoginFailed       = "auth_login_failed"
	TextCodeAuditWriteFailed  = "audit_write_failed"
	TextCodeRetentionFailed   = "audit_retention_failed"
)

// ErrInvalidCredential is returned when a credential fails structural or
// cryptographic validation.
var ErrInvalidCredential = errors.New("could not validate credentials", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredential).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when the credential's expiration claim has passed.
var ErrTokenExpired = errors.New("credential expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned for tokens that cannot be parsed or carry a
// bad signature.
var ErrTokenMalformed = errors.New("credential malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrPrincipalNotFound is returned when a credential subject resolves to no
// principal record.
var ErrPrincipalNotFound = errors.New("principal not found", errors.CategoryNotFound).
	WithTextCode(TextCodePrincipalNotFound).
	WithCode(errors.CodeNotFound)

// ErrPrincipalInactive is returned when the resolved principal has been
// deactivated. For authorization purposes an inactive principal is treated
// the same as a missing one.
var ErrPrincipalInactive = errors.New("principal is inactive", errors.CategoryAuth).
	WithTextCode(TextCodePrincipalInactive).
	WithCode(errors.CodeBadRequest)

// ErrForbidden is returned when the principal's role does not satisfy the
// gate's allowed set.
var ErrForbidden = errors.New("insufficient role", errors.CategoryAuth).
	WithTextCode(TextCodeForbidden).
	WithCode(errors.CodeForbidden)

// ErrLoginFailed is returned for bad identifier/password combinations. It is
// deliberately indistinguishable between the two.
var ErrLoginFailed = errors.New("invalid username or password", errors.CategoryAuth).
	WithTextCode(TextCodeLoginFailed).
	WithCode(errors.CodeUnauthorized)

// ErrAuditWriteFailed marks a failed audit record insert. It is internal
// only: the interceptor logs it and never lets it reach the caller.
var ErrAuditWriteFailed = errors.New("failed to persist audit record", errors.CategoryInternal).
	WithTextCode(TextCodeAuditWriteFailed)

// ErrRetentionFailed marks a failed purge cycle. Internal only; the
// scheduler logs it and retries on the next scheduled run.
var ErrRetentionFailed = errors.New("failed to purge expired audit records", errors.CategoryInternal).
	WithTextCode(TextCodeRetentionFailed)

// ErrNoEmptyString rejects empty passwords before hashing.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest)

// ErrMismatchedHashAndPassword is the generic bcrypt comparison failure.
var ErrMismatchedHashAndPassword = errors.New("password does not match", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

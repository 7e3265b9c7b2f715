package adminaudit

import (
	"time"

	"github.com/uptrace/bun"
)

// RetentionWindow is the fixed lifetime of an AuditRecord. The expiry is
// computed exactly once, at write time, as timestamp + RetentionWindow; it
// is never recomputed. Note this is a fixed 90-day interval, not a calendar
// "+3 months".
const RetentionWindow = 90 * 24 * time.Hour

// Principal is an administrative user able to hold credentials. Records are
// owned by the persistence layer; this core only reads them.
type Principal struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	Username     string    `bun:"username,notnull,unique" json:"username"`
	Email        string    `bun:"email,notnull,unique" json:"email"`
	PasswordHash string    `bun:"hashed_password" json:"-"`
	Role         Role      `bun:"role,notnull" json:"role"`
	IsActive     bool      `bun:"is_active" json:"is_active"`
	CreatedAt    time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// LoginRecord is one successful login, kept for the login history view.
type LoginRecord struct {
	bun.BaseModel `bun:"table:login_history,alias:lh"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	PrincipalID int64     `bun:"user_id,notnull" json:"user_id"`
	LoginTime   time.Time `bun:"login_time,nullzero,default:current_timestamp" json:"login_time"`
	IPAddress   string    `bun:"ip_address" json:"ip_address"`
	UserAgent   string    `bun:"user_agent" json:"user_agent"`
}

// AuditRecord is one audited privileged request. Records are created only
// by the access audit interceptor, never updated in place, and deleted only
// by retention or an explicit privileged purge. The principal reference is
// weak: deleting a principal leaves its records behind and the join is
// best-effort at query time.
type AuditRecord struct {
	bun.BaseModel `bun:"table:admin_access_logs,alias:aal"`

	ID          int64      `bun:"id,pk,autoincrement" json:"id"`
	PrincipalID int64      `bun:"user_id,notnull" json:"user_id"`
	Principal   *Principal `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Endpoint    string     `bun:"endpoint,notnull" json:"endpoint"`
	Method      string     `bun:"method,notnull" json:"method"`
	StatusCode  int        `bun:"status_code,notnull" json:"status_code"`
	IPAddress   string     `bun:"ip_address" json:"ip_address"`
	Timestamp   time.Time  `bun:"timestamp,notnull" json:"timestamp"`
	ExpiresAt   time.Time  `bun:"expires_at,notnull" json:"expires_at"`
}

// NewAuditRecord builds a record for one observed request. The expiry
// invariant lives here so every write path computes it the same way.
func NewAuditRecord(principalID int64, endpoint, method string, statusCode int, ip string, now time.Time) *AuditRecord {
	return &AuditRecord{
		PrincipalID: principalID,
		Endpoint:    endpoint,
		Method:      method,
		StatusCode:  statusCode,
		IPAddress:   ip,
		Timestamp:   now,
		ExpiresAt:   now.Add(RetentionWindow),
	}
}

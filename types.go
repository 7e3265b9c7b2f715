package adminaudit

import (
	"fmt"
	"strings"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Config holds the options every component is constructed with. There is no
// hidden process-wide state; the signing secret, token TTL, and audit path
// set all travel through here.
type Config interface {
	GetSigningKey() string
	GetSigningMethod() string
	GetTokenExpiration() int
	GetIssuer() string
	GetAudience() []string
	GetAPIPrefix() string
	GetSensitivePaths() []string
	GetPurgeInterval() time.Duration
}

// SimpleConfig is a plain value implementation of Config.
type SimpleConfig struct {
	SigningKey      string
	SigningMethod   string
	TokenExpiration int
	Issuer          string
	Audience        []string
	APIPrefix       string
	SensitivePaths  []string
	PurgeInterval   time.Duration
}

func (c SimpleConfig) GetSigningKey() string { return c.SigningKey }

func (c SimpleConfig) GetSigningMethod() string {
	if c.SigningMethod == "" {
		return "HS256"
	}
	return c.SigningMethod
}

// GetTokenExpiration returns the credential TTL in minutes.
func (c SimpleConfig) GetTokenExpiration() int {
	if c.TokenExpiration <= 0 {
		return 30
	}
	return c.TokenExpiration
}

func (c SimpleConfig) GetIssuer() string { return c.Issuer }

func (c SimpleConfig) GetAudience() []string { return c.Audience }

func (c SimpleConfig) GetAPIPrefix() string {
	if c.APIPrefix == "" {
		return "/api/"
	}
	return c.APIPrefix
}

func (c SimpleConfig) GetSensitivePaths() []string {
	if len(c.SensitivePaths) == 0 {
		return DefaultSensitivePaths()
	}
	return c.SensitivePaths
}

func (c SimpleConfig) GetPurgeInterval() time.Duration {
	if c.PurgeInterval <= 0 {
		return 24 * time.Hour
	}
	return c.PurgeInterval
}

// DefaultSensitivePaths returns the administrative resource fragments whose
// endpoints are subject to access auditing.
func DefaultSensitivePaths() []string {
	return []string{"admin", "users", "services", "orders", "blogs", "dashboard"}
}

// DefaultLogger returns the stdout fallback logger components use when no
// Logger is configured.
func DefaultLogger() Logger {
	return defLogger{}
}

type defLogger struct{}

func (d defLogger) Error(message string, args ...any) {
	fmt.Print("[ERR] AUDIT " + logline(message, args...))
}

func (d defLogger) Info(message string, args ...any) {
	fmt.Print("[INF] AUDIT " + logline(message, args...))
}

func (d defLogger) Debug(message string, args ...any) {
	fmt.Print("[DBG] AUDIT " + logline(message, args...))
}

// logline renders trailing arguments as key=value pairs, the way structured
// loggers consume them.
func logline(message string, args ...any) string {
	var b strings.Builder
	b.WriteString(message)
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}
	if len(args)%2 == 1 {
		fmt.Fprintf(&b, " %v", args[len(args)-1])
	}
	b.WriteByte('\n')
	return b.String()
}

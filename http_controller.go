package adminaudit

import (
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// RouteRegistrar captures the fiber router methods used by the controller.
type RouteRegistrar interface {
	Get(path string, handlers ...fiber.Handler) fiber.Router
	Post(path string, handlers ...fiber.Handler) fiber.Router
	Delete(path string, handlers ...fiber.Handler) fiber.Router
}

// HTTPController exposes the JSON surface of the audit core: login and
// registration, the current principal, the privileged audit-log query, and
// the on-demand purge.
type HTTPController struct {
	tokens     TokenService
	principals Principals
	audits     AuditLogs
	retention  *Retention
	guard      *Guard
	logger     Logger
}

func NewHTTPController(guard *Guard, tokens TokenService, principals Principals, audits AuditLogs, retention *Retention) *HTTPController {
	return &HTTPController{
		tokens:     tokens,
		principals: principals,
		audits:     audits,
		retention:  retention,
		guard:      guard,
		logger:     defLogger{},
	}
}

func (c *HTTPController) WithLogger(logger Logger) *HTTPController {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// RegisterRoutes mounts the controller on the given router.
func (c *HTTPController) RegisterRoutes(r RouteRegistrar) {
	r.Post("/api/auth/login", c.Login)
	r.Post("/api/auth/register", c.Register)
	r.Get("/api/auth/me", c.Me)
	r.Get("/api/users/access-logs/admin", c.AccessLogs)
	r.Delete("/api/users/access-logs/cleanup", c.Cleanup)
}

// LoginPayload is the login request body.
type LoginPayload struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (p LoginPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&p.Password, validation.Required, validation.Length(1, 100)),
	)
}

// RegisterPayload is the root-only principal creation body.
type RegisterPayload struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
}

func (p RegisterPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&p.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&p.Password, validation.Required, validation.Length(8, 100)),
	)
}

// TokenResponse is the login response body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login verifies the password and issues a credential. A successful login
// leaves a login-history row behind, best effort.
func (c *HTTPController) Login(ctx *fiber.Ctx) error {
	payload := LoginPayload{}
	if err := ctx.BodyParser(&payload); err != nil {
		return c.respondError(ctx, errors.Wrap(err, errors.CategoryBadInput, "could not parse login payload").
			WithCode(errors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return c.respondError(ctx, errors.Wrap(err, errors.CategoryValidation, "invalid login payload").
			WithCode(errors.CodeBadRequest))
	}

	principal, err := c.principals.ResolveByUsername(ctx.UserContext(), payload.Username)
	if err != nil {
		// indistinguishable from a bad password on purpose
		return c.respondError(ctx, ErrLoginFailed)
	}

	if err := ComparePasswordAndHash(payload.Password, principal.PasswordHash); err != nil {
		return c.respondError(ctx, ErrLoginFailed)
	}

	if !principal.IsActive {
		return c.respondError(ctx, ErrPrincipalInactive)
	}

	token, err := c.tokens.Issue(principal.Username, principal.Role)
	if err != nil {
		return c.respondError(ctx, err)
	}

	if err := c.principals.TrackLogin(ctx.UserContext(), &LoginRecord{
		PrincipalID: principal.ID,
		LoginTime:   time.Now(),
		IPAddress:   ctx.IP(),
		UserAgent:   ctx.Get(fiber.HeaderUserAgent),
	}); err != nil {
		c.logger.Error("failed to track login", "username", principal.Username, "error", err)
	}

	return ctx.JSON(TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Register creates a new principal. Root only.
func (c *HTTPController) Register(ctx *fiber.Ctx) error {
	if _, err := c.requireRole(ctx, RoleRoot); err != nil {
		return c.respondError(ctx, err)
	}

	payload := RegisterPayload{}
	if err := ctx.BodyParser(&payload); err != nil {
		return c.respondError(ctx, errors.Wrap(err, errors.CategoryBadInput, "could not parse register payload").
			WithCode(errors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return c.respondError(ctx, errors.Wrap(err, errors.CategoryValidation, "invalid register payload").
			WithCode(errors.CodeBadRequest))
	}

	role := RoleAdmin
	if payload.Role != "" {
		parsed, ok := ParseRole(payload.Role)
		if !ok {
			return c.respondError(ctx, errors.New("unknown role", errors.CategoryValidation).
				WithCode(errors.CodeBadRequest))
		}
		role = parsed
	}

	if _, err := c.principals.ResolveByUsername(ctx.UserContext(), payload.Username); err == nil {
		return c.respondError(ctx, errors.New("username already exists", errors.CategoryValidation).
			WithCode(errors.CodeConflict))
	}
	if _, err := c.principals.ResolveByEmail(ctx.UserContext(), payload.Email); err == nil {
		return c.respondError(ctx, errors.New("email already exists", errors.CategoryValidation).
			WithCode(errors.CodeConflict))
	}

	hash, err := HashPassword(payload.Password)
	if err != nil {
		return c.respondError(ctx, err)
	}

	principal, err := c.principals.Create(ctx.UserContext(), &Principal{
		Username:     payload.Username,
		Email:        payload.Email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	})
	if err != nil {
		return c.respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(principal)
}

// Me returns the authenticated principal.
func (c *HTTPController) Me(ctx *fiber.Ctx) error {
	principal, err := c.guard.RequireAuthenticated(ctx.UserContext(), bearerFromCtx(ctx))
	if err != nil {
		return c.respondError(ctx, err)
	}
	return ctx.JSON(principal)
}

// AccessLogs serves the audit reporting surface. Root only. Supports
// user_id, role, start_date, end_date, skip, and limit query parameters;
// the total match count travels in the X-Total-Count header. Without an
// explicit role filter, root-authored records stay hidden.
func (c *HTTPController) AccessLogs(ctx *fiber.Ctx) error {
	if _, err := c.requireRole(ctx, RoleRoot); err != nil {
		return c.respondError(ctx, err)
	}

	filter := AuditFilter{
		PrincipalID: int64(ctx.QueryInt("user_id")),
		Offset:      ctx.QueryInt("skip"),
		Limit:       ctx.QueryInt("limit", DefaultAuditPageSize),
	}

	if role := ctx.Query("role"); role != "" {
		parsed, ok := ParseRole(role)
		if !ok {
			return c.respondError(ctx, errors.New("unknown role filter", errors.CategoryValidation).
				WithCode(errors.CodeBadRequest))
		}
		filter.Role = parsed
	}

	var err error
	if filter.Start, err = parseTimeParam(ctx.Query("start_date")); err != nil {
		return c.respondError(ctx, err)
	}
	if filter.End, err = parseTimeParam(ctx.Query("end_date")); err != nil {
		return c.respondError(ctx, err)
	}

	records, total, err := c.audits.Query(ctx.UserContext(), filter)
	if err != nil {
		return c.respondError(ctx, err)
	}

	ctx.Set("X-Total-Count", strconv.Itoa(total))
	return ctx.JSON(records)
}

// Cleanup triggers an on-demand purge of expired audit records. Root only.
func (c *HTTPController) Cleanup(ctx *fiber.Ctx) error {
	if _, err := c.requireRole(ctx, RoleRoot); err != nil {
		return c.respondError(ctx, err)
	}

	if _, err := c.retention.PurgeExpired(ctx.UserContext(), time.Now()); err != nil {
		return c.respondError(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *HTTPController) requireRole(ctx *fiber.Ctx, allowed ...Role) (*Principal, error) {
	principal, err := c.guard.RequireAuthenticated(ctx.UserContext(), bearerFromCtx(ctx))
	if err != nil {
		return nil, err
	}
	return c.guard.RequireRole(principal, allowed...)
}

func (c *HTTPController) respondError(ctx *fiber.Ctx, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "unexpected server error").
			WithCode(errors.CodeInternal)
	}

	c.logger.Debug(
		"request rejected",
		"path", ctx.Path(),
		"text_code", richErr.TextCode,
		"error", richErr.Message,
	)

	status := richErr.Code
	if status == 0 {
		status = fiber.StatusInternalServerError
	}

	return ctx.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"message":   richErr.Message,
			"text_code": richErr.TextCode,
		},
	})
}

func parseTimeParam(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errors.Wrap(err, errors.CategoryValidation, "invalid time filter, expected RFC3339").
			WithCode(errors.CodeBadRequest)
	}
	return t, nil
}

func bearerFromCtx(ctx *fiber.Ctx) string {
	header := ctx.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

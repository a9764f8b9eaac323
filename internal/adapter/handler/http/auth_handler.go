package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/wekeepgrowing/audit-service/internal/domain/errors"
	"github.com/wekeepgrowing/audit-service/internal/domain/provider"
)

// AuthHandler proxies credential operations to the hosted auth service.
type AuthHandler struct {
	provider provider.AuthProvider
	logger   *zap.Logger
}

// NewAuthHandler returns a new instance of AuthHandler.
func NewAuthHandler(p provider.AuthProvider, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		provider: p,
		logger:   logger,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type emailRequest struct {
	Email string `json:"email"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
			"code":  "INVALID_BODY",
		})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Email and password are required",
			"code":  "VALIDATION_ERROR",
		})
	}

	session, err := h.provider.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return h.respondAuthError(c, err)
	}

	return c.JSON(http.StatusOK, session)
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
			"code":  "INVALID_BODY",
		})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Email and password are required",
			"code":  "VALIDATION_ERROR",
		})
	}

	user, err := h.provider.SignUp(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return h.respondAuthError(c, err)
	}

	return c.JSON(http.StatusCreated, user)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	token := bearerToken(c)
	if token == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error": "Authorization header is required",
			"code":  "MISSING_AUTH_HEADER",
		})
	}

	if err := h.provider.SignOut(c.Request().Context(), token); err != nil {
		return h.respondAuthError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ResetPassword handles POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req emailRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
			"code":  "INVALID_BODY",
		})
	}
	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Email is required",
			"code":  "VALIDATION_ERROR",
		})
	}

	if err := h.provider.ResetPassword(c.Request().Context(), req.Email); err != nil {
		return h.respondAuthError(c, err)
	}

	// Always report success so the endpoint cannot be used to probe accounts.
	return c.JSON(http.StatusOK, echo.Map{
		"message": "If an account exists for that email, a reset link has been sent",
	})
}

// Session handles GET /auth/session
func (h *AuthHandler) Session(c echo.Context) error {
	token := bearerToken(c)
	if token == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error": "Authorization header is required",
			"code":  "MISSING_AUTH_HEADER",
		})
	}

	user, err := h.provider.GetUser(c.Request().Context(), token)
	if err != nil {
		return h.respondAuthError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) respondAuthError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrAuthFailed):
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error": "Authentication failed",
			"code":  "AUTH_FAILED",
		})
	case errors.Is(err, apperrors.ErrUpstreamService):
		h.logger.Error("Auth provider unreachable", zap.Error(err))
		return c.JSON(http.StatusBadGateway, echo.Map{
			"error": "Authentication service is unavailable",
			"code":  "UPSTREAM_ERROR",
		})
	default:
		h.logger.Error("Unexpected auth error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Internal server error",
			"code":  "INTERNAL",
		})
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/espinosa98/rifa-backend/config"
	"github.com/espinosa98/rifa-backend/internal/dto"
	"github.com/espinosa98/rifa-backend/internal/service"
	"github.com/espinosa98/rifa-backend/pkg/response"
)

// AuthHandler serves the admin authentication endpoints.
type AuthHandler struct {
	cfg     *config.Config
	authSvc service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(cfg *config.Config, authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{cfg: cfg, authSvc: authSvc}
}

// Register creates an admin account, gated by the register key.
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.Created(c, result)
}

// Login issues a session token. The token goes out both in the body (API
// clients) and as an HTTP-only cookie (browser sessions).
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	h.setSessionCookie(c, result.AccessToken, result.ExpiresIn)
	response.OK(c, result)
}

// Logout revokes the current token and clears the session cookie.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenID := c.GetString("token_id")
	expiresAt, _ := c.Get("token_expires_at")
	expiry, _ := expiresAt.(time.Time)

	if err := h.authSvc.Logout(c.Request.Context(), tokenID, expiry); err != nil {
		response.InternalError(c)
		return
	}

	h.setSessionCookie(c, "", -1)
	response.OK(c, nil)
}

// GetCurrentAccount returns the authenticated account.
// GET /api/v1/auth/me
func (h *AuthHandler) GetCurrentAccount(c *gin.Context) {
	accountID, ok := MustGetAccountID(c)
	if !ok {
		return
	}

	result, err := h.authSvc.GetCurrent(c.Request.Context(), accountID)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	cookie := h.cfg.Auth.Cookie
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookie.Name, token, maxAge, "/", cookie.Domain, cookie.Secure, true)
}

func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, 11001, "wrong email or password")
	case errors.Is(err, service.ErrRegisterKeyInvalid):
		response.Forbidden(c, 11002, "wrong register key")
	case errors.Is(err, service.ErrAccountExists):
		response.Conflict(c, 11003, "username or email already registered")
	case errors.Is(err, service.ErrPasswordPolicy):
		response.BadRequest(c, 11004, "password must contain a lowercase letter, an uppercase letter, a digit and a special character")
	case errors.Is(err, service.ErrAccountNotFound):
		response.NotFound(c, 11005, "account not found")
	default:
		response.InternalError(c)
	}
}

package handler

import (
	"net/http"
	"time"

	"auth-gateway/internal/auth"
	"auth-gateway/internal/auth/strategy"
	"auth-gateway/internal/logger"
	"auth-gateway/internal/session"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	strategies   *strategy.Registry
	sessionStore session.Store
	codec        *auth.Codec

	sessionTTL time.Duration
	cookieOpts session.CookieOptions
}

func NewHandler(
	registry *strategy.Registry,
	sessionStore session.Store,
	codec *auth.Codec,
	sessionTTL time.Duration,
	cookieOpts session.CookieOptions,
) *Handler {
	return &Handler{
		strategies:   registry,
		sessionStore: sessionStore,
		codec:        codec,
		sessionTTL:   sessionTTL,
		cookieOpts:   cookieOpts,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
}

func (h *Handler) LoginPage(c *gin.Context) {
	c.String(http.StatusOK, "You got the login page!\n")
}

func (h *Handler) Logout(c *gin.Context) {
	// Delete session from store (best-effort), then clear the cookie.
	cookie, err := c.Request.Cookie(session.CookieName)
	if err == nil && cookie.Value != "" {
		if err := h.sessionStore.Delete(c.Request.Context(), cookie.Value); err != nil {
			logger.Warn("failed to delete session on logout", map[string]any{
				"error": err.Error(),
			})
		}
	}

	session.ClearCookie(c.Writer, h.cookieOpts)

	// Idempotent response
	c.Status(http.StatusNoContent)
}

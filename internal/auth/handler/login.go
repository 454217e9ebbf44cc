package handler

import (
	"errors"
	"net/http"
	"time"

	"auth-gateway/internal/auth"
	"auth-gateway/internal/logger"
	"auth-gateway/internal/session"

	"github.com/gin-gonic/gin"
)

// invalidCredentialsBody is sent verbatim for every rejected login,
// whatever the root cause, so callers cannot tell "no such user" from
// "wrong password".
const invalidCredentialsBody = "Invalid credentials.\n"

type loginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Login drives one authentication attempt: verify the credentials,
// bind the identity to a fresh session, redirect to the protected
// endpoint. Exactly one response is written per request.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "invalid request\n")
		return
	}

	local, err := h.strategies.Get("local")
	if err != nil {
		c.String(http.StatusInternalServerError, "internal server error\n")
		return
	}

	user, err := local.Authenticate(c.Request.Context(), req.Email, req.Password)

	if errors.Is(err, auth.ErrInvalidCredentials) {
		// Rejection, not an error: plain response, no session mutation.
		c.String(http.StatusOK, invalidCredentialsBody)
		return
	}
	if err != nil {
		// Infrastructure failure must not be disguised as a rejection.
		logger.Error("credential verification failed", map[string]any{
			"error": err.Error(),
		})
		c.String(http.StatusInternalServerError, "internal server error\n")
		return
	}

	// Regenerate the session id on privilege change: the identity is
	// bound to a fresh session and the old record is dropped.
	if cookie, cErr := c.Request.Cookie(session.CookieName); cErr == nil && cookie.Value != "" {
		if dErr := h.sessionStore.Delete(c.Request.Context(), cookie.Value); dErr != nil {
			logger.Warn("failed to drop pre-login session", map[string]any{
				"error": dErr.Error(),
			})
		}
	}

	now := time.Now()
	sess := session.Session{
		SessionID: session.NewID(),
		Token:     h.codec.Serialize(user),
		CreatedAt: now,
		ExpiresAt: now.Add(h.sessionTTL),
	}

	if err := h.sessionStore.Create(c.Request.Context(), sess); err != nil {
		logger.Error("failed to persist session", map[string]any{
			"error": err.Error(),
		})
		c.String(http.StatusInternalServerError, "internal server error\n")
		return
	}

	session.SetCookie(c.Writer, sess.SessionID, sess.ExpiresAt, h.cookieOpts)

	logger.Info("login succeeded", map[string]any{
		"user_id": user.ID,
	})

	c.Redirect(http.StatusFound, "/authrequired")
}

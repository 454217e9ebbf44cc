package middleware

import (
	"context"
	"net/http"
	"time"

	"auth-gateway/internal/auth"
	"auth-gateway/internal/directory"
	"auth-gateway/internal/session"
)

// unexported, collision-proof context key
type identityContextKeyType struct{}

var identityKey = identityContextKeyType{}

// UserFromContext extracts the authenticated user from context.
func UserFromContext(ctx context.Context) (*directory.User, bool) {
	u, ok := ctx.Value(identityKey).(*directory.User)
	return u, ok
}

type AuthMiddleware struct {
	Store session.Store
	Codec *auth.Codec

	// SessionTTL bounds sessions issued by EnsureSession.
	SessionTTL time.Duration
	// DeniedPath is where unauthenticated requests are redirected.
	DeniedPath string
	CookieOpts session.CookieOptions
}

func NewAuthMiddleware(
	store session.Store,
	codec *auth.Codec,
	ttl time.Duration,
	cookieOpts session.CookieOptions,
) *AuthMiddleware {
	return &AuthMiddleware{
		Store:      store,
		Codec:      codec,
		SessionTTL: ttl,
		DeniedPath: "/",
		CookieOpts: cookieOpts,
	}
}

// EnsureSession issues a fresh unauthenticated session to any request
// that does not already carry a known one.
func (a *AuthMiddleware) EnsureSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(session.CookieName); err == nil && cookie.Value != "" {
			if sess, err := a.Store.Get(r.Context(), cookie.Value); err == nil && sess != nil {
				next.ServeHTTP(w, r)
				return
			}
		}

		now := time.Now()
		sess := session.Session{
			SessionID: session.NewID(),
			CreatedAt: now,
			ExpiresAt: now.Add(a.SessionTTL),
		}

		// Best-effort: a request that cannot get a session recorded can
		// still be served, it just stays unauthenticated.
		if err := a.Store.Create(r.Context(), sess); err == nil {
			session.SetCookie(w, sess.SessionID, sess.ExpiresAt, a.CookieOpts)
			replaceRequestCookie(r, sess.SessionID)
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAuth gates protected resources. A denied request is redirected
// to DeniedPath; the protected content is never rendered and no
// distinguishing error leaks.
func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Read session cookie
		cookie, err := r.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			a.deny(w, r)
			return
		}

		sessionID := cookie.Value

		// 2. Load session. A store failure is an outage, not a deny.
		sess, err := a.Store.Get(r.Context(), sessionID)
		if err != nil {
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if sess == nil {
			a.deny(w, r)
			return
		}

		// 3. Enforce session expiry
		if time.Now().After(sess.ExpiresAt) {
			_ = a.Store.Delete(r.Context(), sessionID)
			a.deny(w, r)
			return
		}

		// 4. An unbound or stale identity token is "unauthenticated",
		// never an error that aborts the request.
		if !sess.Authenticated() {
			a.deny(w, r)
			return
		}

		user, err := a.Codec.Deserialize(r.Context(), sess.Token)
		if err != nil {
			a.deny(w, r)
			return
		}

		// 5. Attach identity to context and continue
		ctx := context.WithValue(r.Context(), identityKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *AuthMiddleware) deny(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, a.DeniedPath, http.StatusFound)
}

// replaceRequestCookie swaps any session cookie the request carried for
// the one just issued, so downstream handlers resolve the new session.
func replaceRequestCookie(r *http.Request, sessionID string) {
	cookies := r.Cookies()
	r.Header.Del("Cookie")
	for _, c := range cookies {
		if c.Name != session.CookieName {
			r.AddCookie(c)
		}
	}
	r.AddCookie(&http.Cookie{Name: session.CookieName, Value: sessionID})
}

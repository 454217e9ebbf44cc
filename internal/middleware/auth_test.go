package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"auth-gateway/internal/auth"
	"auth-gateway/internal/directory"
	"auth-gateway/internal/middleware"
	"auth-gateway/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guardFixture struct {
	mw    *middleware.AuthMiddleware
	store session.Store
	mr    *miniredis.Miniredis
}

func newGuard(t *testing.T, users []directory.User) *guardFixture {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	dirSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/users/")
		for _, u := range users {
			if u.ID == id {
				w.Header().Set("Content-Type", "application/json")
				require.NoError(t, json.NewEncoder(w).Encode(u))
				return
			}
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(dirSrv.Close)

	store := session.NewRedisStore(rdb)
	codec := auth.NewCodec(directory.NewClient(dirSrv.URL, time.Second))

	return &guardFixture{
		mw:    middleware.NewAuthMiddleware(store, codec, time.Hour, session.CookieOptions{}),
		store: store,
		mr:    mr,
	}
}

// protected is the handler behind the guard; it records the identity
// the guard attached.
func protected(t *testing.T, gotUser **directory.User) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := middleware.UserFromContext(r.Context())
		require.True(t, ok)
		*gotUser = u
		w.WriteHeader(http.StatusOK)
	})
}

func doGuarded(fx *guardFixture, next http.Handler, sessionID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/authrequired", nil)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sessionID})
	}
	rec := httptest.NewRecorder()
	fx.mw.RequireAuth(next).ServeHTTP(rec, req)
	return rec
}

func assertDenied(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRequireAuthAllowed(t *testing.T) {
	user := directory.User{ID: "1", Email: "a@x.com"}
	fx := newGuard(t, []directory.User{user})

	now := time.Now()
	sess := session.Session{
		SessionID: session.NewID(),
		Token:     "1",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, fx.store.Create(context.Background(), sess))

	var gotUser *directory.User
	rec := doGuarded(fx, protected(t, &gotUser), sess.SessionID)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotUser)
	assert.Equal(t, "a@x.com", gotUser.Email)
}

func TestRequireAuthDenied(t *testing.T) {
	fx := newGuard(t, []directory.User{{ID: "1", Email: "a@x.com"}})

	notCalled := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("protected handler must not run on deny")
	})

	t.Run("no cookie", func(t *testing.T) {
		assertDenied(t, doGuarded(fx, notCalled, ""))
	})

	t.Run("unknown session id", func(t *testing.T) {
		assertDenied(t, doGuarded(fx, notCalled, session.NewID()))
	})

	t.Run("no identity token bound", func(t *testing.T) {
		now := time.Now()
		sess := session.Session{
			SessionID: session.NewID(),
			CreatedAt: now,
			ExpiresAt: now.Add(time.Hour),
		}
		require.NoError(t, fx.store.Create(context.Background(), sess))

		assertDenied(t, doGuarded(fx, notCalled, sess.SessionID))
	})

	t.Run("stale token denies instead of erroring", func(t *testing.T) {
		now := time.Now()
		sess := session.Session{
			SessionID: session.NewID(),
			Token:     "gone",
			CreatedAt: now,
			ExpiresAt: now.Add(time.Hour),
		}
		require.NoError(t, fx.store.Create(context.Background(), sess))

		assertDenied(t, doGuarded(fx, notCalled, sess.SessionID))
	})

	t.Run("expired session is dropped", func(t *testing.T) {
		// Written directly: the store itself refuses expired records.
		sess := session.Session{
			SessionID: session.NewID(),
			Token:     "1",
			CreatedAt: time.Now().Add(-2 * time.Hour),
			ExpiresAt: time.Now().Add(-time.Hour),
		}
		data, err := json.Marshal(sess)
		require.NoError(t, err)
		require.NoError(t, fx.mr.Set("session:"+sess.SessionID, string(data)))

		assertDenied(t, doGuarded(fx, notCalled, sess.SessionID))

		got, err := fx.store.Get(context.Background(), sess.SessionID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestRequireAuthDeniedIsIdempotent(t *testing.T) {
	fx := newGuard(t, nil)

	notCalled := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("protected handler must not run on deny")
	})

	now := time.Now()
	sess := session.Session{
		SessionID: session.NewID(),
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, fx.store.Create(context.Background(), sess))

	for i := 0; i < 3; i++ {
		assertDenied(t, doGuarded(fx, notCalled, sess.SessionID))
	}
}

func TestRequireAuthStoreFailureIsServerError(t *testing.T) {
	fx := newGuard(t, nil)

	notCalled := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("protected handler must not run on store failure")
	})

	fx.mr.Close()

	rec := doGuarded(fx, notCalled, session.NewID())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestEnsureSessionIssuesCookie(t *testing.T) {
	fx := newGuard(t, nil)

	var sawCookie string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(session.CookieName); err == nil {
			sawCookie = c.Value
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	fx.mw.EnsureSession(next).ServeHTTP(rec, req)

	require.NotEmpty(t, sawCookie, "downstream handler sees the new session")

	resp := rec.Result()
	require.Len(t, resp.Cookies(), 1)
	assert.Equal(t, sawCookie, resp.Cookies()[0].Value)

	got, err := fx.store.Get(context.Background(), sawCookie)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Authenticated())
}

func TestEnsureSessionKeepsExistingSession(t *testing.T) {
	fx := newGuard(t, nil)

	now := time.Now()
	sess := session.Session{
		SessionID: session.NewID(),
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, fx.store.Create(context.Background(), sess))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sess.SessionID})
	rec := httptest.NewRecorder()
	fx.mw.EnsureSession(next).ServeHTTP(rec, req)

	assert.Empty(t, rec.Result().Cookies(), "no new cookie for a known session")
}

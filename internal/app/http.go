package app

import (
	"net/http"

	"auth-gateway/internal/auth"
	"auth-gateway/internal/auth/credentials"
	"auth-gateway/internal/auth/handler"
	"auth-gateway/internal/auth/strategy"
	"auth-gateway/internal/auth/strategy/local"
	"auth-gateway/internal/config"
	"auth-gateway/internal/directory"
	"auth-gateway/internal/middleware"
	"auth-gateway/internal/session"

	"github.com/gin-gonic/gin"
)

func setupHTTP(cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(cfg)
	if err != nil {
		return nil, nil, err
	}

	sessionStore := session.NewRedisStore(infra.Redis.Client)

	router := newRouter(cfg, sessionStore, infra.Directory)

	return router, func() error {
		return infra.Redis.Close()
	}, nil
}

// newRouter assembles the full HTTP surface from its dependencies.
// Split out from setupHTTP so tests can swap in their own store and
// directory endpoint.
func newRouter(
	cfg config.Config,
	sessionStore session.Store,
	dir *directory.Client,
) *gin.Engine {

	// ----------------------------
	// Dependencies
	// ----------------------------

	cookieOpts := session.CookieOptions{
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}

	codec := auth.NewCodec(dir)

	registry := strategy.NewRegistry(
		local.New(credentials.NewService(dir)),
	)

	authHandler := handler.NewHandler(
		registry,
		sessionStore,
		codec,
		cfg.SessionTTL,
		cookieOpts,
	)

	authMiddleware := middleware.NewAuthMiddleware(
		sessionStore,
		codec,
		cfg.SessionTTL,
		cookieOpts,
	)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.GinEnsureSession(authMiddleware))

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "You got home page!\n")
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Protected Routes
	// ----------------------------

	protected := router.Group("/")
	protected.Use(middleware.GinRequireAuth(authMiddleware))

	protected.GET("/authrequired", func(c *gin.Context) {
		c.String(http.StatusOK, "you hit the authentication endpoint\n")
	})

	return router
}

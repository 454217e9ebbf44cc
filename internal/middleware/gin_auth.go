package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinRequireAuth adapts the net/http AuthMiddleware to Gin. Auth
// decisions stay session-based and strategy-agnostic.
func GinRequireAuth(auth *AuthMiddleware) gin.HandlerFunc {
	return ginBridge(auth.RequireAuth)
}

// GinEnsureSession adapts EnsureSession to Gin.
func GinEnsureSession(auth *AuthMiddleware) gin.HandlerFunc {
	return ginBridge(auth.EnsureSession)
}

func ginBridge(mw func(http.Handler) http.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Bridge handler to allow net/http middleware execution
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		})

		handler := mw(next)
		handler.ServeHTTP(c.Writer, c.Request)

		// If the middleware already handled the response, stop Gin chain
		if c.Writer.Written() && !c.IsAborted() {
			c.Abort()
		}
	}
}

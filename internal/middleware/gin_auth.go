package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinRequireAllowed adapts the net/http gate to Gin. The allow/deny
// decision stays session-based and provider-agnostic.
func GinRequireAllowed(gate *Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Bridge handler to allow net/http middleware execution
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		})

		// Wrap Gin request with the net/http gate
		handler := gate.RequireAllowed(next)

		// Execute middleware chain
		handler.ServeHTTP(c.Writer, c.Request)

		// If the gate already wrote the redirect, stop the Gin chain
		if c.Writer.Written() {
			c.Abort()
			return
		}
	}
}

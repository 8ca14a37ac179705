package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminAuth validates admin requests using either a Bearer token in the
// Authorization header or a static key in the X-Admin-Token header. If no
// token is configured, every admin request is rejected; the pause switch
// must never be open by accident.
func AdminAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			AbortWithError(c, http.StatusForbidden, "Admin endpoints disabled", errors.New("no admin token configured"))
			return
		}

		got := extractToken(c.Request)
		if got == "" {
			AbortWithError(c, http.StatusUnauthorized, "Missing admin token", nil)
			return
		}

		// Constant-time comparison to prevent timing attacks.
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			AbortWithError(c, http.StatusUnauthorized, "Invalid admin token", nil)
			return
		}

		c.Next()
	}
}

// extractToken looks for a token in the Authorization header (Bearer scheme)
// or in the X-Admin-Token header.
func extractToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if key := r.Header.Get("X-Admin-Token"); key != "" {
		return strings.TrimSpace(key)
	}

	return ""
}

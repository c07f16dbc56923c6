package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAuth rejects anonymous requests with a 401. The frontend
// redirects to its own login view based on this status.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); ok {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":      "Connectez-vous pour continuer.",
			"request_id": GetRequestID(c),
		})
	}
}

// RequireAdmin rejects non-admin users. 401 when anonymous, 403 when
// logged in without the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "Connectez-vous pour continuer.",
				"request_id": GetRequestID(c),
			})
			return
		}
		if u.Role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "Accès réservé aux administrateurs.",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Next()
	}
}

package middleware

import (
	"net/http"
	"strings"

	"digicoop-backend/models"
	"digicoop-backend/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and resolves the caller's role
// from the verified email and stored profile. Unauthenticated requests get
// a redirect hint so the client can send the user to the login page.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required", "redirect": "/login"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format", "redirect": "/login"})
			c.Abort()
			return
		}

		token := parts[1]
		claims, err := utils.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "redirect": "/login"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_profile", claims.Profile)
		c.Set("user_role", models.ClassifyRole(claims.Email, claims.Profile))
		c.Next()
	}
}

// RequireRoles allows the request through only when the resolved role is in
// the given set. Callers with a valid session but the wrong role are sent
// back to their dashboard rather than the login page.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required", "redirect": "/login"})
			c.Abort()
			return
		}
		if !allowed[role.(string)] {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied for this role", "redirect": "/dashboard"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminMiddleware restricts a route to platform administrators.
func AdminMiddleware() gin.HandlerFunc {
	return RequireRoles(models.RoleAdmin)
}

// CooperativeMiddleware restricts a route to cooperative accounts, which are
// the only accounts allowed to manage producers.
func CooperativeMiddleware() gin.HandlerFunc {
	return RequireRoles(models.RoleCooperative)
}

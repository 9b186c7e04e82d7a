package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// RequireRole guards every role-gated route. A mismatch is not a hard
// failure: the client gets a notice and a redirect hint to the landing page.
func RequireRole(role string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userClaims, exists := ctx.Get("user")
		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
			return
		}

		claims := userClaims.(jwt.MapClaims)
		userRole, ok := claims["role"].(string)
		if !ok || userRole != role {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message":  "Access denied. You are not registered as a " + role + ".",
				"redirect": "/",
			})
			return
		}

		ctx.Next()
	}
}

package middlewares

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/milletmart/milletmart-api/initializers"
)

// RequireAuth validates the bearer token, rejects tokens that were logged
// out, and stores the claims in the gin context for downstream handlers.
func RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header is missing"})
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected token signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token claims"})
			return
		}

		if jti, ok := claims["jti"].(string); ok && initializers.Redis != nil {
			n, err := initializers.Redis.Exists(ctx.Request.Context(), "denylist:"+jti).Result()
			if err == nil && n > 0 {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Session has been logged out"})
				return
			}
		}

		ctx.Set("user", claims)
		ctx.Next()
	}
}

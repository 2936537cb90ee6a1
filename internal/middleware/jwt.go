package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"aavkar_pos/internal/backend"
)

const (
	CtxUserIDKey = "user_id"
	CtxRoleKey   = "role"
	CtxEmailKey  = "email"
)

// userIDClaims lists the claim names the dashboard tokens have used for
// the user id, in order of preference.
var userIDClaims = []string{"user_id", "userId", "sub", "id"}

func claimString(claims jwt.MapClaims, names ...string) string {
	for _, n := range names {
		if s, ok := claims[n].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// AuthRequired checks the Bearer access token issued by the backend and
// forwards it on every upstream call made for the request.
func AuthRequired(secret []byte, log *zap.Logger) gin.HandlerFunc {
	log = log.Named("auth")
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization format"})
			return
		}
		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			log.Debug("token rejected", zap.String("path", c.FullPath()), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		userID := claimString(claims, userIDClaims...)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user_id missing"})
			return
		}

		c.Set(CtxUserIDKey, userID)
		c.Set(CtxRoleKey, claimString(claims, "role"))
		c.Set(CtxEmailKey, claimString(claims, "email"))
		c.Request = c.Request.WithContext(backend.WithToken(c.Request.Context(), tokenString))
		c.Next()
	}
}

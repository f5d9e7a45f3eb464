package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"dreamhi/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RevocationChecker reports tokens invalidated before their expiry.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenString string) (bool, error)
}

// BearerToken returns the token of an "Authorization: Bearer" header.
func BearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

// JWTAuthMiddleware stores the token subject under utils.ContextUserID.
// revocations may be nil; a failing revocation lookup is logged and the token
// is accepted on its signature alone.
func JWTAuthMiddleware(revocations RevocationChecker, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := BearerToken(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid Authorization header")
			return
		}

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
			return
		}

		if revocations != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
			revoked, err := revocations.IsRevoked(ctx, tokenString)
			cancel()
			if err != nil {
				logger.Warn("Auth cache unavailable, skipping revocation check", zap.Error(err))
			} else if revoked {
				utils.JSONError(c, http.StatusUnauthorized, "UNAUTHORIZED", "token has been revoked")
				return
			}
		}

		c.Set(utils.ContextUserID, userID)
		c.Next()
	}
}

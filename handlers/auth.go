package handlers

import (
	"context"
	"net/http"
	"time"

	"dreamhi/middleware"
	"dreamhi/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenRevoker invalidates a token before its expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenString string, expiresAt time.Time) error
}

// AuthHandler ends sessions issued by the identity provider.
type AuthHandler struct {
	Revoker TokenRevoker
}

func NewAuthHandler(revoker TokenRevoker) *AuthHandler {
	return &AuthHandler{Revoker: revoker}
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenString, ok := middleware.BearerToken(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid Authorization header")
		return
	}
	expiresAt, err := utils.TokenExpiry(tokenString)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
		return
	}
	if h.Revoker == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "INTERNAL", "token revocation is unavailable")
		return
	}
	if err := h.Revoker.Revoke(c.Request.Context(), tokenString, expiresAt); err != nil {
		getLogger(c).Error("Failed to revoke token", zap.String("userId", currentUserID(c)), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "INTERNAL", "internal server error")
		return
	}
	respond(c, http.StatusOK, "logged out", nil)
}

package handlers

import (
	"dreamhi/middleware"

	"go.uber.org/zap"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Logger      *zap.Logger
	Revocations middleware.RevocationChecker // nil disables revocation checks

	AuditionHandler     *AuditionHandler
	NotificationHandler *NotificationHandler
	AuthHandler         *AuthHandler

	MaxRequestsPerMin int
}

package notification

import (
	"context"
	"fmt"
	"time"

	notificationRepo "dreamhi/database/repository/notification"
	"dreamhi/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService delivers messages to a user's in-app inbox.
type NotificationService interface {
	SendUserNotification(ctx context.Context, userID, title, body string, data map[string]string) error
	ListUserNotifications(ctx context.Context, userID string) ([]models.Notification, error)
}

const inboxPageSize = 50

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo   notificationRepo.NotificationRepository
	Now    func() time.Time
	Logger *zap.Logger
}

func NewDefaultNotificationService(repo notificationRepo.NotificationRepository, logger *zap.Logger) (*DefaultNotificationService, error) {
	if repo == nil {
		return nil, fmt.Errorf("notification service initialization error: repository is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{Repo: repo, Now: time.Now, Logger: logger}, nil
}

func (s *DefaultNotificationService) SendUserNotification(ctx context.Context, userID, title, body string, data map[string]string) error {
	if userID == "" {
		return fmt.Errorf("SendUserNotification: user id is empty")
	}
	n := &models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Body:      body,
		Data:      data,
		CreatedAt: s.Now(),
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return fmt.Errorf("SendUserNotification: %w", err)
	}
	s.Logger.Debug("Notification stored", zap.String("userId", userID), zap.String("notificationId", n.ID))
	return nil
}

func (s *DefaultNotificationService) ListUserNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	list, err := s.Repo.ListByUser(ctx, userID, inboxPageSize)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Notification{}
	}
	return list, nil
}

package cron

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"dreamhi/database"
	"dreamhi/models"
	"dreamhi/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockBookings implements BookingFinder
type mockBookings struct {
	booking *models.Booking
	err     error
}

func (m *mockBookings) GetByID(ctx context.Context, processID, bookingID string) (*models.Booking, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.booking == nil || m.booking.ID != bookingID {
		return nil, fmt.Errorf("find booking %s: %w", bookingID, database.ErrNotFound)
	}
	return m.booking, nil
}

// mockNotifier implements notification.NotificationService
type mockNotifier struct {
	sent []string
	err  error
}

func (m *mockNotifier) SendUserNotification(ctx context.Context, userID, title, body string, data map[string]string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, userID+"/"+data["bookingId"])
	return nil
}

func (m *mockNotifier) ListUserNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	return nil, nil
}

func reminderTask(t *testing.T, booking *models.Booking) *asynq.Task {
	t.Helper()
	task, _, err := tasks.NewBookingReminderTask(booking, time.Date(2024, 6, 3, 0, 50, 0, 0, time.UTC))
	require.NoError(t, err)
	return task
}

func confirmed() *models.Booking {
	return &models.Booking{ID: "b1", ProcessID: "p2", UserID: "u1", Date: "2024-06-03", SlotID: "10:00", Status: models.BookingStatusConfirmed}
}

func TestHandleBookingReminder_Delivers(t *testing.T) {
	notifier := &mockNotifier{}
	handler := HandleBookingReminder(&mockBookings{booking: confirmed()}, notifier, zap.NewNop())

	require.NoError(t, handler(context.Background(), reminderTask(t, confirmed())))
	assert.Equal(t, []string{"u1/b1"}, notifier.sent)
}

func TestHandleBookingReminder_SkipsCancelled(t *testing.T) {
	cancelled := confirmed()
	cancelled.Status = models.BookingStatusCancelled
	notifier := &mockNotifier{}
	handler := HandleBookingReminder(&mockBookings{booking: cancelled}, notifier, zap.NewNop())

	require.NoError(t, handler(context.Background(), reminderTask(t, confirmed())))
	assert.Empty(t, notifier.sent)
}

func TestHandleBookingReminder_SkipsMissingBooking(t *testing.T) {
	notifier := &mockNotifier{}
	handler := HandleBookingReminder(&mockBookings{}, notifier, zap.NewNop())

	require.NoError(t, handler(context.Background(), reminderTask(t, confirmed())))
	assert.Empty(t, notifier.sent)
}

func TestHandleBookingReminder_RetriesOnFailure(t *testing.T) {
	handler := HandleBookingReminder(&mockBookings{err: errors.New("mongo down")}, &mockNotifier{}, zap.NewNop())
	assert.Error(t, handler(context.Background(), reminderTask(t, confirmed())))

	handler = HandleBookingReminder(&mockBookings{booking: confirmed()}, &mockNotifier{err: errors.New("insert failed")}, zap.NewNop())
	assert.Error(t, handler(context.Background(), reminderTask(t, confirmed())))
}

func TestHandleBookingReminder_InvalidPayloadSkipsRetry(t *testing.T) {
	handler := HandleBookingReminder(&mockBookings{}, &mockNotifier{}, zap.NewNop())

	err := handler(context.Background(), asynq.NewTask(tasks.TypeBookingReminder, []byte("not json")))
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

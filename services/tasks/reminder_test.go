package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"dreamhi/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockEnqueuer implements Enqueuer
type mockEnqueuer struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (m *mockEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.tasks = append(m.tasks, task)
	m.opts = append(m.opts, opts)
	return &asynq.TaskInfo{ID: "reminder:b1"}, nil
}

func testBooking() *models.Booking {
	return &models.Booking{ID: "b1", ProcessID: "p2", UserID: "u1", Date: "2024-06-03", SlotID: "10:00", Start: 600, End: 630}
}

func TestNewBookingReminderTask(t *testing.T) {
	fireAt := time.Date(2024, 6, 3, 0, 50, 0, 0, time.UTC)

	task, opts, err := NewBookingReminderTask(testBooking(), fireAt)
	require.NoError(t, err)
	assert.Equal(t, TypeBookingReminder, task.Type())
	assert.Len(t, opts, 3)

	p, err := ParseBookingReminder(task)
	require.NoError(t, err)
	assert.Equal(t, "b1", p.BookingID)
	assert.Equal(t, "p2", p.ProcessID)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, "2024-06-03T00:50:00Z", p.FireDate)
	assert.Contains(t, p.Body, "10:00")
}

func TestParseBookingReminder_InvalidPayload(t *testing.T) {
	_, err := ParseBookingReminder(asynq.NewTask(TypeBookingReminder, []byte("{")))
	assert.Error(t, err)
}

func TestAsynqReminderScheduler(t *testing.T) {
	client := &mockEnqueuer{}
	s := NewAsynqReminderScheduler(client)

	require.NoError(t, s.ScheduleBookingReminder(context.Background(), testBooking(), time.Now().Add(time.Hour)))
	require.Len(t, client.tasks, 1)
	assert.Equal(t, TypeBookingReminder, client.tasks[0].Type())
}

func TestAsynqReminderScheduler_EnqueueFailure(t *testing.T) {
	s := NewAsynqReminderScheduler(&mockEnqueuer{err: errors.New("redis down")})

	err := s.ScheduleBookingReminder(context.Background(), testBooking(), time.Now().Add(time.Hour))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b1")
}

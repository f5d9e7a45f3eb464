package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dreamhi/models"

	"github.com/hibiken/asynq"
)

const TypeBookingReminder = "booking:reminder"

// NewBookingReminderTask builds the task fired ReminderLead before a booked
// slot starts. The task id is derived from the booking so a retried
// reservation cannot queue the same reminder twice.
func NewBookingReminderTask(booking *models.Booking, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	payload := models.ReminderPayload{
		BookingID: booking.ID,
		ProcessID: booking.ProcessID,
		UserID:    booking.UserID,
		Date:      booking.Date,
		SlotID:    booking.SlotID,
		Title:     "Your audition starts soon",
		Body:      fmt.Sprintf("Your audition slot %s on %s is about to start.", booking.SlotID, booking.Date),
		FireDate:  fireAt.Format(time.RFC3339),
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("reminder:" + booking.ID),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

// ParseBookingReminder decodes the payload of a booking reminder task.
func ParseBookingReminder(task *asynq.Task) (models.ReminderPayload, error) {
	var p models.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("decode reminder payload: %w", err)
	}
	return p, nil
}

// Enqueuer is the part of *asynq.Client used to queue tasks.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqReminderScheduler queues booking reminders on asynq.
type AsynqReminderScheduler struct {
	Client Enqueuer
}

func NewAsynqReminderScheduler(client Enqueuer) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{Client: client}
}

func (s *AsynqReminderScheduler) ScheduleBookingReminder(ctx context.Context, booking *models.Booking, fireAt time.Time) error {
	task, opts, err := NewBookingReminderTask(booking, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue reminder for booking %s: %w", booking.ID, err)
	}
	return nil
}

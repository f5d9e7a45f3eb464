package audition

import (
	"context"
	"errors"
	"time"

	"dreamhi/database"
	bookingRepo "dreamhi/database/repository/bookings"
	processRepo "dreamhi/database/repository/process"
	"dreamhi/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReminderScheduler queues a notification for an upcoming booked slot.
type ReminderScheduler interface {
	ScheduleBookingReminder(ctx context.Context, booking *models.Booking, fireAt time.Time) error
}

// Ledger tracks reserved slots per process and date. Dates are checked
// against Periods when set, the same source FindBookPeriod answers from.
type Ledger struct {
	Processes    processRepo.ProcessRepository
	Periods      *PeriodResolver
	Bookings     bookingRepo.BookingRepository
	Reminders    ReminderScheduler // optional
	ReminderLead time.Duration
	Location     *time.Location
	Now          func() time.Time
	Logger       *zap.Logger
}

// FindAllBook lists every slot of the process grid on date. Only a producer
// view carries the identity of the applicant holding each slot.
func (l *Ledger) FindAllBook(ctx context.Context, processID, date string, view models.ViewRequest) ([]models.SlotView, error) {
	process, err := loadProcess(ctx, l.Processes, processID)
	if err != nil {
		return nil, err
	}
	if err := l.checkDate(ctx, process, date); err != nil {
		return nil, err
	}

	bookings, err := l.Bookings.GetConfirmedByProcessAndDate(ctx, processID, date)
	if err != nil {
		return nil, Internal(err, "failed to load bookings")
	}
	holders := make(map[string]string, len(bookings))
	for _, b := range bookings {
		holders[b.SlotID] = b.UserID
	}

	_, asProducer := view.(models.ProducerView)
	slots := process.Slots()
	views := make([]models.SlotView, 0, len(slots))
	for _, s := range slots {
		holder, reserved := holders[s.ID]
		v := models.SlotView{SlotID: s.ID, Start: s.Start, End: s.End, Reserved: reserved}
		if asProducer {
			v.UserID = holder
		}
		views = append(views, v)
	}
	return views, nil
}

// ReserveSlot books slotID on date for userID. The uniqueness of the slot and
// of the applicant's booking is decided by the storage layer.
func (l *Ledger) ReserveSlot(ctx context.Context, processID, date, slotID, userID string) (*models.Booking, error) {
	process, err := loadProcess(ctx, l.Processes, processID)
	if err != nil {
		return nil, err
	}
	if err := l.checkDate(ctx, process, date); err != nil {
		return nil, err
	}
	slot, ok := process.FindSlot(slotID)
	if !ok {
		return nil, InvalidArgument("slot %s is not offered by process %s", slotID, processID)
	}

	booking := &models.Booking{
		ID:             uuid.New().String(),
		ProcessID:      processID,
		AnnouncementID: process.AnnouncementID,
		UserID:         userID,
		Date:           date,
		SlotID:         slot.ID,
		Start:          slot.Start,
		End:            slot.End,
		Status:         models.BookingStatusConfirmed,
		CreatedAt:      l.now(),
	}

	if err := l.Bookings.Create(ctx, booking); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			l.Logger.Info("Reservation conflict",
				zap.String("processId", processID),
				zap.String("date", date),
				zap.String("slotId", slotID),
				zap.String("userId", userID),
			)
			return nil, Conflict("slot %s on %s is already reserved or you already hold a booking for this process", slotID, date)
		}
		return nil, Internal(err, "failed to save booking")
	}

	l.scheduleReminder(ctx, booking)
	return booking, nil
}

// FindMyBook returns the caller's confirmed booking for the process.
func (l *Ledger) FindMyBook(ctx context.Context, processID, userID string) (*models.Booking, error) {
	booking, err := l.Bookings.GetConfirmedByUser(ctx, processID, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, NotFound("no booking for process %s", processID)
		}
		return nil, Internal(err, "failed to load booking")
	}
	return booking, nil
}

// CancelBook releases a booking. Only its holder may cancel it.
func (l *Ledger) CancelBook(ctx context.Context, processID, bookingID, userID string) error {
	booking, err := l.Bookings.GetByID(ctx, processID, bookingID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return NotFound("booking %s not found", bookingID)
		}
		return Internal(err, "failed to load booking")
	}
	if booking.UserID != userID {
		return Forbidden("booking %s belongs to another applicant", bookingID)
	}
	if booking.Status != models.BookingStatusConfirmed {
		return NotFound("booking %s is not active", bookingID)
	}

	if err := l.Bookings.Cancel(ctx, processID, bookingID, l.now()); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return NotFound("booking %s is not active", bookingID)
		}
		return Internal(err, "failed to cancel booking")
	}
	return nil
}

func (l *Ledger) scheduleReminder(ctx context.Context, booking *models.Booking) {
	if l.Reminders == nil {
		return
	}
	start, _, err := booking.Window(l.location())
	if err != nil {
		return
	}
	fireAt := start.Add(-l.ReminderLead)
	if fireAt.Before(l.now()) {
		return
	}
	if err := l.Reminders.ScheduleBookingReminder(ctx, booking, fireAt); err != nil {
		l.Logger.Warn("Failed to schedule booking reminder", zap.String("bookingId", booking.ID), zap.Error(err))
	}
}

func (l *Ledger) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

func (l *Ledger) location() *time.Location {
	if l.Location != nil {
		return l.Location
	}
	return time.UTC
}

// checkDate rejects malformed dates and dates outside the book period.
func (l *Ledger) checkDate(ctx context.Context, process *models.Process, date string) error {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return InvalidArgument("date %q must be formatted as YYYY-MM-DD", date)
	}
	period := process.Period()
	if l.Periods != nil {
		p, err := l.Periods.FindBookPeriod(ctx, process.ID)
		if err != nil {
			return err
		}
		period = p
	}
	if !period.Contains(date) {
		return InvalidArgument("date %s is outside the book period %s ~ %s", date, period.StartDate, period.EndDate)
	}
	return nil
}

package audition

import (
	"context"
	"errors"
	"time"

	"dreamhi/database"
	bookingRepo "dreamhi/database/repository/bookings"
	liveSessionRepo "dreamhi/database/repository/livesession"
	processRepo "dreamhi/database/repository/process"
	"dreamhi/models"
	"dreamhi/services/authz"

	"go.uber.org/zap"
)

// AuditionService answers booking queries and commits reservation and
// session writes on behalf of an authenticated caller.
type AuditionService interface {
	FindBookPeriod(ctx context.Context, req authz.AccessRequest) (models.BookPeriod, error)
	CorrectBookPeriod(ctx context.Context, req authz.AccessRequest, period models.BookPeriod) error
	FindAllBook(ctx context.Context, req authz.AccessRequest, date string, view models.ViewRequest) ([]models.SlotView, error)
	ReserveSlot(ctx context.Context, req authz.AccessRequest, date, slotID string) (*models.Booking, error)
	FindMyBook(ctx context.Context, req authz.AccessRequest) (*models.Booking, error)
	CancelBook(ctx context.Context, req authz.AccessRequest, bookingID string) error
	FindFileURL(ctx context.Context, req authz.AccessRequest) (string, error)
	FindSessionID(ctx context.Context, req authz.AccessRequest) (string, error)
	SaveSession(ctx context.Context, req authz.AccessRequest, fileURL string) (*models.LiveSession, error)
}

// DefaultAuditionService composes the period resolver, the ledger, the
// authorization gate and the session binder.
type DefaultAuditionService struct {
	Processes processRepo.ProcessRepository
	Checker   *authz.Checker
	Periods   *PeriodResolver
	Ledger    *Ledger
	Sessions  *SessionBinder
	Logger    *zap.Logger
}

// Dependencies groups what NewDefaultAuditionService wires together.
type Dependencies struct {
	Processes    processRepo.ProcessRepository
	Bookings     bookingRepo.BookingRepository
	LiveSessions liveSessionRepo.LiveSessionRepository
	Lookup       authz.Lookup
	PeriodCache  PeriodCache
	Reminders    ReminderScheduler
	ReminderLead time.Duration
	Location     *time.Location
	Now          func() time.Time
	NewSessionID func() string
	Logger       *zap.Logger
}

func NewDefaultAuditionService(deps Dependencies) *DefaultAuditionService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	periods := &PeriodResolver{
		Processes: deps.Processes,
		Cache:     deps.PeriodCache,
		Logger:    logger,
	}
	return &DefaultAuditionService{
		Processes: deps.Processes,
		Checker:   authz.NewChecker(deps.Lookup),
		Periods:   periods,
		Ledger: &Ledger{
			Processes:    deps.Processes,
			Periods:      periods,
			Bookings:     deps.Bookings,
			Reminders:    deps.Reminders,
			ReminderLead: deps.ReminderLead,
			Location:     deps.Location,
			Now:          now,
			Logger:       logger,
		},
		Sessions: &SessionBinder{
			Processes:    deps.Processes,
			Sessions:     deps.LiveSessions,
			NewSessionID: deps.NewSessionID,
			Now:          now,
			Logger:       logger,
		},
		Logger: logger,
	}
}

type gate func(ctx context.Context, req authz.AccessRequest) (bool, error)

// authorize checks login, the consistency of the announcement/producer/process
// triple and then the given gate. Nothing is written before it returns nil.
func (s *DefaultAuditionService) authorize(ctx context.Context, req authz.AccessRequest, check gate) error {
	if !s.Checker.IsLoginUser(req.User) {
		return Unauthorized("login required")
	}

	process, err := loadProcess(ctx, s.Processes, req.ProcessID)
	if err != nil {
		return err
	}
	if process.AnnouncementID != req.AnnouncementID {
		return NotFound("process %s not found in announcement %s", req.ProcessID, req.AnnouncementID)
	}
	announcement, err := s.Processes.GetAnnouncement(ctx, req.AnnouncementID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return NotFound("announcement %s not found", req.AnnouncementID)
		}
		return Internal(err, "failed to load announcement")
	}
	if req.ProducerID != "" && announcement.ProducerID != req.ProducerID {
		return NotFound("announcement %s not found for producer %s", req.AnnouncementID, req.ProducerID)
	}

	ok, err := check(ctx, req)
	if err != nil {
		return Internal(err, "failed to check authority")
	}
	if !ok {
		s.Logger.Info("Access denied",
			zap.String("userId", req.User.UserID),
			zap.String("announcementId", req.AnnouncementID),
			zap.String("processId", req.ProcessID),
			zap.String("producerId", req.ProducerID),
		)
		return Forbidden("no authority for process %s", req.ProcessID)
	}
	return nil
}

func (s *DefaultAuditionService) FindBookPeriod(ctx context.Context, req authz.AccessRequest) (models.BookPeriod, error) {
	if err := s.authorize(ctx, req, s.Checker.HasPassedAuthority); err != nil {
		return models.BookPeriod{}, err
	}
	return s.Periods.FindBookPeriod(ctx, req.ProcessID)
}

// CorrectBookPeriod lets the announcement's producer move the book period.
// Existing bookings outside the new window are kept.
func (s *DefaultAuditionService) CorrectBookPeriod(ctx context.Context, req authz.AccessRequest, period models.BookPeriod) error {
	if err := s.authorize(ctx, req, s.Checker.HasAnnouncementAuthority); err != nil {
		return err
	}
	if err := s.Periods.CorrectBookPeriod(ctx, req.ProcessID, period); err != nil {
		return err
	}
	s.Logger.Info("Book period corrected",
		zap.String("processId", req.ProcessID),
		zap.String("startDate", period.StartDate),
		zap.String("endDate", period.EndDate),
	)
	return nil
}

// FindAllBook gates producer views on announcement authority, so an applicant
// cannot obtain other applicants' ids by supplying a producer id.
func (s *DefaultAuditionService) FindAllBook(ctx context.Context, req authz.AccessRequest, date string, view models.ViewRequest) ([]models.SlotView, error) {
	check := s.Checker.HasPassedAuthority
	switch v := view.(type) {
	case models.ProducerView:
		req.ProducerID = v.ProducerID
		check = s.Checker.HasAnnouncementAuthority
	case models.ApplicantView:
		req.ProducerID = ""
	default:
		return nil, InvalidArgument("unknown view")
	}

	if err := s.authorize(ctx, req, check); err != nil {
		return nil, err
	}
	return s.Ledger.FindAllBook(ctx, req.ProcessID, date, view)
}

// ReserveSlot always runs as the applicant.
func (s *DefaultAuditionService) ReserveSlot(ctx context.Context, req authz.AccessRequest, date, slotID string) (*models.Booking, error) {
	req.ProducerID = ""
	if err := s.authorize(ctx, req, s.Checker.HasPassedAuthority); err != nil {
		return nil, err
	}

	booking, err := s.Ledger.ReserveSlot(ctx, req.ProcessID, date, slotID, req.User.UserID)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("Slot reserved",
		zap.String("bookingId", booking.ID),
		zap.String("processId", booking.ProcessID),
		zap.String("date", booking.Date),
		zap.String("slotId", booking.SlotID),
	)
	return booking, nil
}

func (s *DefaultAuditionService) FindMyBook(ctx context.Context, req authz.AccessRequest) (*models.Booking, error) {
	req.ProducerID = ""
	if err := s.authorize(ctx, req, s.Checker.HasPassedAuthority); err != nil {
		return nil, err
	}
	return s.Ledger.FindMyBook(ctx, req.ProcessID, req.User.UserID)
}

func (s *DefaultAuditionService) CancelBook(ctx context.Context, req authz.AccessRequest, bookingID string) error {
	req.ProducerID = ""
	if err := s.authorize(ctx, req, s.Checker.HasPassedAuthority); err != nil {
		return err
	}
	if err := s.Ledger.CancelBook(ctx, req.ProcessID, bookingID, req.User.UserID); err != nil {
		return err
	}
	s.Logger.Info("Booking cancelled", zap.String("bookingId", bookingID), zap.String("processId", req.ProcessID))
	return nil
}

func (s *DefaultAuditionService) FindFileURL(ctx context.Context, req authz.AccessRequest) (string, error) {
	if err := s.authorize(ctx, req, s.Checker.HasPassedAuthority); err != nil {
		return "", err
	}
	return s.Sessions.FindFileURL(ctx, req.ProcessID)
}

func (s *DefaultAuditionService) FindSessionID(ctx context.Context, req authz.AccessRequest) (string, error) {
	if !s.Checker.IsLoginUser(req.User) {
		return "", Unauthorized("login required")
	}
	if req.Now.IsZero() {
		return "", InvalidArgument("now is required")
	}
	if err := s.authorize(ctx, req, s.Checker.HasBookAuthority); err != nil {
		return "", err
	}
	return s.Sessions.FindSessionID(ctx, req.ProcessID)
}

func (s *DefaultAuditionService) SaveSession(ctx context.Context, req authz.AccessRequest, fileURL string) (*models.LiveSession, error) {
	if err := s.authorize(ctx, req, s.Checker.HasAnnouncementAuthority); err != nil {
		return nil, err
	}
	return s.Sessions.SaveSession(ctx, req.ProcessID, fileURL)
}

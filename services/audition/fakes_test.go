package audition

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"dreamhi/database"
	"dreamhi/models"
	"dreamhi/services/authz"
)

// fakeProcessRepo implements processRepo.ProcessRepository
type fakeProcessRepo struct {
	processes     map[string]*models.Process
	announcements map[string]*models.Announcement
	producers     map[string]*models.Producer
	calls         atomic.Int32
	err           error
}

func (f *fakeProcessRepo) GetProcess(ctx context.Context, processID string) (*models.Process, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.processes[processID]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("find process %s: %w", processID, database.ErrNotFound)
}

func (f *fakeProcessRepo) GetAnnouncement(ctx context.Context, announcementID string) (*models.Announcement, error) {
	if a, ok := f.announcements[announcementID]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("find announcement %s: %w", announcementID, database.ErrNotFound)
}

func (f *fakeProcessRepo) GetProducer(ctx context.Context, producerID string) (*models.Producer, error) {
	if p, ok := f.producers[producerID]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("find producer %s: %w", producerID, database.ErrNotFound)
}

// UpdatePeriod swaps in a copy so processes already handed out keep their values.
func (f *fakeProcessRepo) UpdatePeriod(ctx context.Context, processID, startDate, endDate string) error {
	p, ok := f.processes[processID]
	if !ok {
		return fmt.Errorf("update process period %s: %w", processID, database.ErrNotFound)
	}
	updated := *p
	updated.StartDate, updated.EndDate = startDate, endDate
	f.processes[processID] = &updated
	return nil
}

func (f *fakeProcessRepo) EnsureIndexes(ctx context.Context) error { return nil }

// fakeBookingRepo implements bookingRepo.BookingRepository and enforces the
// same uniqueness as the partial indexes, atomically under mu.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*models.Booking
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.Status != models.BookingStatusConfirmed || b.ProcessID != booking.ProcessID {
			continue
		}
		if (b.Date == booking.Date && b.SlotID == booking.SlotID) || b.UserID == booking.UserID {
			return fmt.Errorf("insert booking: %w", database.ErrDuplicate)
		}
	}
	copied := *booking
	f.bookings = append(f.bookings, &copied)
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, processID, bookingID string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == bookingID && b.ProcessID == processID {
			copied := *b
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("find booking: %w", database.ErrNotFound)
}

func (f *fakeBookingRepo) GetConfirmedByProcessAndDate(ctx context.Context, processID, date string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ProcessID == processID && b.Date == date && b.Status == models.BookingStatusConfirmed {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetConfirmedByUser(ctx context.Context, processID, userID string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ProcessID == processID && b.UserID == userID && b.Status == models.BookingStatusConfirmed {
			copied := *b
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("find booking: %w", database.ErrNotFound)
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, processID, bookingID string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == bookingID && b.ProcessID == processID && b.Status == models.BookingStatusConfirmed {
			b.Status = models.BookingStatusCancelled
			b.CancelledAt = &at
			return nil
		}
	}
	return fmt.Errorf("cancel booking: %w", database.ErrNotFound)
}

func (f *fakeBookingRepo) EnsureIndexes(ctx context.Context) error { return nil }

// fakeLiveSessionRepo implements liveSessionRepo.LiveSessionRepository
type fakeLiveSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*models.LiveSession
	err      error
}

func (f *fakeLiveSessionRepo) Upsert(ctx context.Context, processID, sessionID, fileURL string, now time.Time) (*models.LiveSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.sessions == nil {
		f.sessions = map[string]*models.LiveSession{}
	}
	s, ok := f.sessions[processID]
	if !ok {
		s = &models.LiveSession{ID: "ls-" + processID, ProcessID: processID, SessionID: sessionID, CreatedAt: now}
		f.sessions[processID] = s
	}
	s.FileURL = fileURL
	s.UpdatedAt = now
	copied := *s
	return &copied, nil
}

func (f *fakeLiveSessionRepo) GetByProcessID(ctx context.Context, processID string) (*models.LiveSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[processID]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, fmt.Errorf("find live session: %w", database.ErrNotFound)
}

func (f *fakeLiveSessionRepo) EnsureIndexes(ctx context.Context) error { return nil }

// fakeVolunteerRepo implements volunteerRepo.VolunteerRepository
type fakeVolunteerRepo struct {
	volunteers map[string]*models.Volunteer // announcementID/userID
}

func (f *fakeVolunteerRepo) GetByAnnouncementAndUser(ctx context.Context, announcementID, userID string) (*models.Volunteer, error) {
	if v, ok := f.volunteers[announcementID+"/"+userID]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("find volunteer: %w", database.ErrNotFound)
}

func (f *fakeVolunteerRepo) EnsureIndexes(ctx context.Context) error { return nil }

// fakeReminders implements ReminderScheduler
type fakeReminders struct {
	mu        sync.Mutex
	scheduled map[string]time.Time
	err       error
}

func (f *fakeReminders) ScheduleBookingReminder(ctx context.Context, booking *models.Booking, fireAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.scheduled == nil {
		f.scheduled = map[string]time.Time{}
	}
	f.scheduled[booking.ID] = fireAt
	return nil
}

// fakeCache implements PeriodCache
type fakeCache struct {
	mu            sync.Mutex
	periods       map[string]models.BookPeriod
	getErr        error
	invalidateErr error
}

func (f *fakeCache) Get(ctx context.Context, processID string) (*models.BookPeriod, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if p, ok := f.periods[processID]; ok {
		return &p, nil
	}
	return nil, nil
}

func (f *fakeCache) Set(ctx context.Context, processID string, period models.BookPeriod) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.periods == nil {
		f.periods = map[string]models.BookPeriod{}
	}
	f.periods[processID] = period
	return nil
}

func (f *fakeCache) Invalidate(ctx context.Context, processID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.invalidateErr != nil {
		return f.invalidateErr
	}
	delete(f.periods, processID)
	return nil
}

var kst = time.FixedZone("KST", 9*60*60)

// fixture is an announcement "a1" by producer "prod1" (member "owner") with a
// document stage "p1" and a live video stage "p2" open 2024-06-01..05, 10:00-12:00
// in 30 minute slots. Applicants u1 and u2 reached p2; u3 is still on p1.
type fixture struct {
	processes  *fakeProcessRepo
	bookings   *fakeBookingRepo
	sessions   *fakeLiveSessionRepo
	volunteers *fakeVolunteerRepo
	reminders  *fakeReminders
	cache      *fakeCache
	now        time.Time
	svc        *DefaultAuditionService
}

func newFixture() *fixture {
	f := &fixture{
		processes: &fakeProcessRepo{
			processes: map[string]*models.Process{
				"p1": {ID: "p1", AnnouncementID: "a1", Order: 1, Stage: models.StageDocument, StartDate: "2024-05-01", EndDate: "2024-05-10", DayStart: 600, DayEnd: 720, SlotMinutes: 30},
				"p2": {ID: "p2", AnnouncementID: "a1", Order: 2, Stage: models.StageLiveVideo, StartDate: "2024-06-01", EndDate: "2024-06-05", DayStart: 600, DayEnd: 720, SlotMinutes: 30},
				"px": {ID: "px", AnnouncementID: "a2", Order: 1, Stage: models.StageLiveVideo, StartDate: "2024-06-01", EndDate: "2024-06-05", DayStart: 600, DayEnd: 720, SlotMinutes: 30},
			},
			announcements: map[string]*models.Announcement{
				"a1": {ID: "a1", ProducerID: "prod1"},
				"a2": {ID: "a2", ProducerID: "prod2"},
			},
			producers: map[string]*models.Producer{
				"prod1": {ID: "prod1", MemberIDs: []string{"owner"}},
				"prod2": {ID: "prod2", MemberIDs: []string{"rival"}},
			},
		},
		bookings: &fakeBookingRepo{},
		sessions: &fakeLiveSessionRepo{},
		volunteers: &fakeVolunteerRepo{volunteers: map[string]*models.Volunteer{
			"a1/u1": {AnnouncementID: "a1", UserID: "u1", ProcessOrder: 2, Status: models.VolunteerInProgress},
			"a1/u2": {AnnouncementID: "a1", UserID: "u2", ProcessOrder: 2, Status: models.VolunteerInProgress},
			"a1/u3": {AnnouncementID: "a1", UserID: "u3", ProcessOrder: 1, Status: models.VolunteerInProgress},
		}},
		reminders: &fakeReminders{},
		cache:     &fakeCache{},
		now:       time.Date(2024, 5, 20, 9, 0, 0, 0, kst),
	}

	f.svc = NewDefaultAuditionService(Dependencies{
		Processes:    f.processes,
		Bookings:     f.bookings,
		LiveSessions: f.sessions,
		Lookup: &authz.RepositoryLookup{
			Processes:  f.processes,
			Volunteers: f.volunteers,
			Bookings:   f.bookings,
		},
		PeriodCache:  f.cache,
		Reminders:    f.reminders,
		ReminderLead: 10 * time.Minute,
		Location:     kst,
		Now:          func() time.Time { return f.now },
		NewSessionID: func() string { return "ses_fixed" },
	})
	return f
}

func applicant(userID, processID string) authz.AccessRequest {
	return authz.AccessRequest{User: authz.Principal{UserID: userID}, AnnouncementID: "a1", ProcessID: processID}
}

func producer(userID, processID string) authz.AccessRequest {
	return authz.AccessRequest{User: authz.Principal{UserID: userID}, ProducerID: "prod1", AnnouncementID: "a1", ProcessID: processID}
}

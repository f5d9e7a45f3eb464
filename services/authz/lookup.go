package authz

import (
	"context"

	bookingRepo "dreamhi/database/repository/bookings"
	processRepo "dreamhi/database/repository/process"
	volunteerRepo "dreamhi/database/repository/volunteer"
	"dreamhi/models"
)

// RepositoryLookup serves Lookup from the Mongo repositories.
type RepositoryLookup struct {
	Processes  processRepo.ProcessRepository
	Volunteers volunteerRepo.VolunteerRepository
	Bookings   bookingRepo.BookingRepository
}

func (l *RepositoryLookup) GetProcess(ctx context.Context, processID string) (*models.Process, error) {
	return l.Processes.GetProcess(ctx, processID)
}

func (l *RepositoryLookup) GetAnnouncement(ctx context.Context, announcementID string) (*models.Announcement, error) {
	return l.Processes.GetAnnouncement(ctx, announcementID)
}

func (l *RepositoryLookup) GetProducer(ctx context.Context, producerID string) (*models.Producer, error) {
	return l.Processes.GetProducer(ctx, producerID)
}

func (l *RepositoryLookup) GetVolunteer(ctx context.Context, announcementID, userID string) (*models.Volunteer, error) {
	return l.Volunteers.GetByAnnouncementAndUser(ctx, announcementID, userID)
}

func (l *RepositoryLookup) GetConfirmedBooking(ctx context.Context, processID, userID string) (*models.Booking, error) {
	return l.Bookings.GetConfirmedByUser(ctx, processID, userID)
}

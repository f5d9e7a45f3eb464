// Package authz holds the capability checks run before every audition
// operation. Each predicate only reads through Lookup.
package authz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dreamhi/database"
	"dreamhi/models"
)

// Principal is the authenticated caller. The zero value is anonymous.
type Principal struct {
	UserID string
}

// AccessRequest carries everything a predicate may look at.
type AccessRequest struct {
	User           Principal
	ProducerID     string
	AnnouncementID string
	ProcessID      string
	Now            time.Time
}

// Lookup is the read-only data the checks depend on. Implementations return
// an error wrapping database.ErrNotFound for missing records.
type Lookup interface {
	GetProcess(ctx context.Context, processID string) (*models.Process, error)
	GetAnnouncement(ctx context.Context, announcementID string) (*models.Announcement, error)
	GetProducer(ctx context.Context, producerID string) (*models.Producer, error)
	GetVolunteer(ctx context.Context, announcementID, userID string) (*models.Volunteer, error)
	GetConfirmedBooking(ctx context.Context, processID, userID string) (*models.Booking, error)
}

type Checker struct {
	Lookup Lookup
}

func NewChecker(lookup Lookup) *Checker {
	return &Checker{Lookup: lookup}
}

// IsLoginUser reports whether the request carries an authenticated principal.
func (c *Checker) IsLoginUser(user Principal) bool {
	return user.UserID != ""
}

// HasAnnouncementAuthority reports whether the caller acts for the producer
// that owns the announcement.
func (c *Checker) HasAnnouncementAuthority(ctx context.Context, req AccessRequest) (bool, error) {
	if !c.IsLoginUser(req.User) || req.ProducerID == "" {
		return false, nil
	}

	announcement, err := c.Lookup.GetAnnouncement(ctx, req.AnnouncementID)
	if ok, err := found(err); !ok {
		return false, err
	}
	if announcement.ProducerID != req.ProducerID {
		return false, nil
	}

	producer, err := c.Lookup.GetProducer(ctx, req.ProducerID)
	if ok, err := found(err); !ok {
		return false, err
	}
	return producer.HasMember(req.User.UserID), nil
}

// HasPassedAuthority reports whether the caller is the owning producer or an
// applicant who has reached the process in the pipeline.
func (c *Checker) HasPassedAuthority(ctx context.Context, req AccessRequest) (bool, error) {
	if !c.IsLoginUser(req.User) {
		return false, nil
	}
	if req.ProducerID != "" {
		return c.HasAnnouncementAuthority(ctx, req)
	}

	process, err := c.Lookup.GetProcess(ctx, req.ProcessID)
	if ok, err := found(err); !ok {
		return false, err
	}
	if process.AnnouncementID != req.AnnouncementID {
		return false, nil
	}

	volunteer, err := c.Lookup.GetVolunteer(ctx, req.AnnouncementID, req.User.UserID)
	if ok, err := found(err); !ok {
		return false, err
	}
	return volunteer.HasReached(process.Order), nil
}

// HasBookAuthority reports whether the caller may join the live session at
// req.Now: the book period must include today, and the caller is either the
// owning producer or holds a confirmed booking whose slot contains req.Now.
func (c *Checker) HasBookAuthority(ctx context.Context, req AccessRequest) (bool, error) {
	if !c.IsLoginUser(req.User) || req.Now.IsZero() {
		return false, nil
	}

	process, err := c.Lookup.GetProcess(ctx, req.ProcessID)
	if ok, err := found(err); !ok {
		return false, err
	}
	if !process.Period().Contains(req.Now.Format(models.DateLayout)) {
		return false, nil
	}

	if req.ProducerID != "" {
		return c.HasAnnouncementAuthority(ctx, req)
	}

	booking, err := c.Lookup.GetConfirmedBooking(ctx, req.ProcessID, req.User.UserID)
	if ok, err := found(err); !ok {
		return false, err
	}
	return booking.CoversInstant(req.Now), nil
}

// found turns a lookup error into (exists, unexpected error).
func found(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("authorization lookup failed: %w", err)
}

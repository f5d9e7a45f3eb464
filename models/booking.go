package models

import "time"

const (
	BookingStatusConfirmed = "Confirmed"
	BookingStatusCancelled = "Cancelled"
)

// Booking binds one applicant to one slot of one process on one date.
type Booking struct {
	ID             string     `bson:"id" json:"id"`
	ProcessID      string     `bson:"processId" json:"processId"`
	AnnouncementID string     `bson:"announcementId" json:"announcementId"`
	UserID         string     `bson:"userId" json:"userId"`
	Date           string     `bson:"date" json:"date"`     // "YYYY-MM-DD"
	SlotID         string     `bson:"slotId" json:"slotId"` // "HH:MM"
	Start          int        `bson:"start" json:"start"`   // minutes from midnight
	End            int        `bson:"end" json:"end"`       // minutes from midnight
	Status         string     `bson:"status" json:"status"`
	CreatedAt      time.Time  `bson:"createdAt" json:"createdAt"`
	CancelledAt    *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
}

// Window returns the absolute [start, end) interval of the booking in loc.
func (b *Booking) Window(loc *time.Location) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, b.Date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return day.Add(time.Duration(b.Start) * time.Minute), day.Add(time.Duration(b.End) * time.Minute), nil
}

// CoversInstant reports whether now falls inside the booked slot.
func (b *Booking) CoversInstant(now time.Time) bool {
	start, end, err := b.Window(now.Location())
	if err != nil {
		return false
	}
	return !now.Before(start) && now.Before(end)
}

// SlotView is one row of a day's schedule. UserID is only populated for
// producer views.
type SlotView struct {
	SlotID   string `json:"slotId"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Reserved bool   `json:"reserved"`
	UserID   string `json:"userId,omitempty"`
}

// ReserveSlotRequest is the payload for reserving a slot.
type ReserveSlotRequest struct {
	Date   string `json:"date" binding:"required,datetime=2006-01-02"`
	SlotID string `json:"slotId" binding:"required"`
}

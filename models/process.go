package models

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// StageName identifies what kind of audition step a process is.
type StageName string

const (
	StageDocument  StageName = "DOCUMENT"
	StageInPerson  StageName = "IN_PERSON"
	StageLiveVideo StageName = "LIVE_VIDEO"
)

// Producer is the organization owning announcements. MemberIDs lists the
// users allowed to act on its behalf.
type Producer struct {
	ID        string   `bson:"id" json:"id"`
	Name      string   `bson:"name" json:"name"`
	MemberIDs []string `bson:"memberIds" json:"memberIds"`
}

// HasMember reports whether userID may act for the producer.
func (p *Producer) HasMember(userID string) bool {
	for _, id := range p.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Announcement is a casting call published by a producer.
type Announcement struct {
	ID         string    `bson:"id" json:"id"`
	ProducerID string    `bson:"producerId" json:"producerId"`
	Title      string    `bson:"title" json:"title"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// Process is one ordered stage of an announcement's hiring pipeline.
type Process struct {
	ID             string    `bson:"id" json:"id"`
	AnnouncementID string    `bson:"announcementId" json:"announcementId"`
	Order          int       `bson:"order" json:"order"`
	Stage          StageName `bson:"stage" json:"stage"`
	StartDate      string    `bson:"startDate" json:"startDate"` // "YYYY-MM-DD", inclusive
	EndDate        string    `bson:"endDate" json:"endDate"`     // "YYYY-MM-DD", inclusive
	DayStart       int       `bson:"dayStart" json:"dayStart"`   // minutes from midnight
	DayEnd         int       `bson:"dayEnd" json:"dayEnd"`       // minutes from midnight
	SlotMinutes    int       `bson:"slotMinutes" json:"slotMinutes"`
}

// BookPeriod is the inclusive date window during which slots can be reserved.
type BookPeriod struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// CorrectPeriodRequest is the body of a producer's book period correction.
type CorrectPeriodRequest struct {
	StartDate  string `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate    string `json:"endDate" binding:"required,datetime=2006-01-02"`
	ProducerID string `json:"producerId" binding:"required"`
}

// Period derives the reservation window of the process.
func (p *Process) Period() BookPeriod {
	return BookPeriod{StartDate: p.StartDate, EndDate: p.EndDate}
}

// Contains reports whether date ("YYYY-MM-DD") lies within the window.
// Dates in DateLayout compare correctly as strings.
func (bp BookPeriod) Contains(date string) bool {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return false
	}
	return bp.StartDate <= date && date <= bp.EndDate
}

// Slot is one reservable interval of a process day.
type Slot struct {
	ID    string `json:"slotId"` // "HH:MM" of the start
	Start int    `json:"start"`  // minutes from midnight
	End   int    `json:"end"`
}

// SlotID formats minutes from midnight as "HH:MM".
func SlotID(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Slots lays out the daily grid of the process. A trailing interval shorter
// than SlotMinutes is not offered.
func (p *Process) Slots() []Slot {
	if p.SlotMinutes <= 0 || p.DayEnd <= p.DayStart {
		return nil
	}
	var slots []Slot
	for start := p.DayStart; start+p.SlotMinutes <= p.DayEnd; start += p.SlotMinutes {
		slots = append(slots, Slot{ID: SlotID(start), Start: start, End: start + p.SlotMinutes})
	}
	return slots
}

// FindSlot returns the grid slot with the given id.
func (p *Process) FindSlot(slotID string) (Slot, bool) {
	for _, s := range p.Slots() {
		if s.ID == slotID {
			return s, true
		}
	}
	return Slot{}, false
}

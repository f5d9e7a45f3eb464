package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessSlots(t *testing.T) {
	p := &Process{DayStart: 600, DayEnd: 720, SlotMinutes: 30}

	slots := p.Slots()
	require.Len(t, slots, 4)
	assert.Equal(t, Slot{ID: "10:00", Start: 600, End: 630}, slots[0])
	assert.Equal(t, Slot{ID: "11:30", Start: 690, End: 720}, slots[3])
}

func TestProcessSlots_TrailingRemainderDropped(t *testing.T) {
	p := &Process{DayStart: 540, DayEnd: 640, SlotMinutes: 45}

	slots := p.Slots()
	require.Len(t, slots, 2)
	assert.Equal(t, "09:45", slots[1].ID)
	assert.Equal(t, 630, slots[1].End)
}

func TestProcessSlots_InvalidGrid(t *testing.T) {
	assert.Empty(t, (&Process{DayStart: 600, DayEnd: 720}).Slots())
	assert.Empty(t, (&Process{DayStart: 720, DayEnd: 600, SlotMinutes: 30}).Slots())
}

func TestFindSlot(t *testing.T) {
	p := &Process{DayStart: 600, DayEnd: 720, SlotMinutes: 30}

	s, ok := p.FindSlot("11:00")
	require.True(t, ok)
	assert.Equal(t, 660, s.Start)

	_, ok = p.FindSlot("11:15")
	assert.False(t, ok)
}

func TestBookPeriodContains(t *testing.T) {
	period := (&Process{StartDate: "2024-06-01", EndDate: "2024-06-05"}).Period()

	tests := []struct {
		date string
		want bool
	}{
		{"2024-06-01", true},
		{"2024-06-03", true},
		{"2024-06-05", true},
		{"2024-05-31", false},
		{"2024-06-06", false},
		{"2024-6-3", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, period.Contains(tt.date), tt.date)
	}
}

func TestBookingCoversInstant(t *testing.T) {
	kst := time.FixedZone("KST", 9*60*60)
	b := &Booking{Date: "2024-06-03", Start: 600, End: 630}

	assert.True(t, b.CoversInstant(time.Date(2024, 6, 3, 10, 0, 0, 0, kst)))
	assert.True(t, b.CoversInstant(time.Date(2024, 6, 3, 10, 29, 59, 0, kst)))
	assert.False(t, b.CoversInstant(time.Date(2024, 6, 3, 10, 30, 0, 0, kst)))
	assert.False(t, b.CoversInstant(time.Date(2024, 6, 3, 9, 59, 0, 0, kst)))
	assert.False(t, b.CoversInstant(time.Date(2024, 6, 4, 10, 10, 0, 0, kst)))
}

func TestVolunteerHasReached(t *testing.T) {
	v := &Volunteer{ProcessOrder: 2, Status: VolunteerInProgress}
	assert.True(t, v.HasReached(1))
	assert.True(t, v.HasReached(2))
	assert.False(t, v.HasReached(3))

	v.Status = VolunteerFailed
	assert.False(t, v.HasReached(1))
}

func TestResolveView(t *testing.T) {
	assert.Equal(t, ApplicantView{UserID: "u1"}, ResolveView("u1", ""))
	assert.Equal(t, ProducerView{UserID: "u1", ProducerID: "prod1"}, ResolveView("u1", "prod1"))
}

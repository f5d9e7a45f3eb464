package models

const (
	VolunteerInProgress = "IN_PROGRESS"
	VolunteerFailed     = "FAILED"
	VolunteerAccepted   = "ACCEPTED"
)

// Volunteer tracks how far an applicant has progressed in an announcement's
// pipeline. ProcessOrder is the order of the process reached so far.
type Volunteer struct {
	ID             string `bson:"id" json:"id"`
	AnnouncementID string `bson:"announcementId" json:"announcementId"`
	UserID         string `bson:"userId" json:"userId"`
	ProcessOrder   int    `bson:"processOrder" json:"processOrder"`
	Status         string `bson:"status" json:"status"`
}

// HasReached reports whether the volunteer may take part in the process with
// the given order.
func (v *Volunteer) HasReached(order int) bool {
	return v.Status != VolunteerFailed && v.ProcessOrder >= order
}

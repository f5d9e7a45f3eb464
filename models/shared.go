package models

// ReminderPayload is the body of a scheduled booking reminder task.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	ProcessID string `json:"processId"`
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	SlotID    string `json:"slotId"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	FireDate  string `json:"fireDate"`
}

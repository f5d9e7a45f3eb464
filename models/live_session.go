package models

import "time"

// LiveSession holds the join token and reference file of a live-video process.
type LiveSession struct {
	ID        string    `bson:"id" json:"id"`
	ProcessID string    `bson:"processId" json:"processId"`
	SessionID string    `bson:"sessionId" json:"sessionId"`
	FileURL   string    `bson:"fileUrl" json:"fileUrl"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SaveSessionRequest is the producer payload for creating or updating a session.
type SaveSessionRequest struct {
	FileURL    string `json:"fileUrl" binding:"required,url"`
	ProducerID string `json:"producerId" binding:"required"`
}

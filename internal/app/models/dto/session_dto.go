package dto

import (
	"time"

	"github.com/oguzk/labsessions/internal/app/models"
)

// CreateSessionRequest is the staff payload for scheduling a practical
// session.
type CreateSessionRequest struct {
	CourseID    string    `json:"courseId" binding:"required,courseid" example:"course-v1:OU+CS101+2026"`
	Name        string    `json:"name" binding:"required,max=255" example:"Microscopy lab"`
	Description string    `json:"description" binding:"max=2000" example:"Bring your lab coat"`
	Venue       string    `json:"venue" binding:"required,max=255" example:"Building B, room 14"`
	StartAt     time.Time `json:"startAt" binding:"required" example:"2026-03-02T09:00:00Z"`
	EndAt       time.Time `json:"endAt" binding:"required" example:"2026-03-02T12:00:00Z"`
	Capacity    int       `json:"capacity" binding:"required,min=1" example:"30"`
}

// UpdateCapacityRequest raises the seat limit of an existing session.
type UpdateCapacityRequest struct {
	Capacity int `json:"capacity" binding:"required,min=1" example:"40"`
}

// SessionResponse is the API projection of a practical session.
type SessionResponse struct {
	ID          int64     `json:"id" example:"7"`
	CourseID    string    `json:"courseId" example:"course-v1:OU+CS101+2026"`
	Name        string    `json:"name" example:"Microscopy lab"`
	Description string    `json:"description" example:"Bring your lab coat"`
	Venue       string    `json:"venue" example:"Building B, room 14"`
	StartAt     time.Time `json:"startAt"`
	EndAt       time.Time `json:"endAt"`
	Capacity    int       `json:"capacity" example:"30"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewSessionResponse maps a session model to its API projection.
func NewSessionResponse(s *models.PracticalSession) *SessionResponse {
	return &SessionResponse{
		ID:          s.ID,
		CourseID:    s.CourseID,
		Name:        s.Name,
		Description: s.Description,
		Venue:       s.Venue,
		StartAt:     s.StartAt,
		EndAt:       s.EndAt,
		Capacity:    s.Capacity,
		CreatedAt:   s.CreatedAt,
	}
}

// SessionListResponse wraps the sessions of one course.
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

package models

import (
	"time"

	"github.com/oguzk/labsessions/internal/pkg/apperrors"
)

// PracticalSession is a scheduled, capacity-limited event students can
// register for. Once a session has registrations it is immutable except
// for capacity increases.
type PracticalSession struct {
	ID          int64     `json:"id" db:"id"`
	CourseID    string    `json:"courseId" db:"course_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Venue       string    `json:"venue" db:"venue"`
	StartAt     time.Time `json:"startAt" db:"start_at"`
	EndAt       time.Time `json:"endAt" db:"end_at"`
	Capacity    int       `json:"capacity" db:"capacity"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Validate checks the session invariants: the time window must be ordered
// and at least one seat must be offered.
func (s *PracticalSession) Validate() error {
	if s.CourseID == "" {
		return apperrors.NewValidationError("course id is required")
	}
	if s.Name == "" {
		return apperrors.NewValidationError("session name is required")
	}
	if s.Venue == "" {
		return apperrors.NewValidationError("venue is required")
	}
	if s.StartAt.IsZero() || s.EndAt.IsZero() {
		return apperrors.NewValidationError("start and end timestamps are required")
	}
	if s.EndAt.Before(s.StartAt) {
		return apperrors.NewValidationError("session end must not be before its start")
	}
	if s.Capacity < 1 {
		return apperrors.NewValidationError("capacity must be at least 1")
	}
	return nil
}

// SeatsRemaining returns the number of open seats given the current
// registration count, never below zero.
func (s *PracticalSession) SeatsRemaining(registered int) int {
	remaining := s.Capacity - registered
	if remaining < 0 {
		return 0
	}
	return remaining
}

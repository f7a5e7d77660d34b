package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/oguzk/labsessions/internal/pkg/apperrors"
)

func validSession() PracticalSession {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return PracticalSession{
		CourseID: "course-v1:OU+CS101+2026",
		Name:     "Linux lab",
		Venue:    "Building B, room 14",
		StartAt:  start,
		EndAt:    start.Add(3 * time.Hour),
		Capacity: 30,
	}
}

func TestPracticalSession_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*PracticalSession)
		wantErr bool
	}{
		{name: "valid", mutate: func(*PracticalSession) {}, wantErr: false},
		{name: "missing course", mutate: func(s *PracticalSession) { s.CourseID = "" }, wantErr: true},
		{name: "missing name", mutate: func(s *PracticalSession) { s.Name = "" }, wantErr: true},
		{name: "missing venue", mutate: func(s *PracticalSession) { s.Venue = "" }, wantErr: true},
		{name: "zero start", mutate: func(s *PracticalSession) { s.StartAt = time.Time{} }, wantErr: true},
		{name: "end before start", mutate: func(s *PracticalSession) { s.EndAt = s.StartAt.Add(-time.Hour) }, wantErr: true},
		{name: "end equals start", mutate: func(s *PracticalSession) { s.EndAt = s.StartAt }, wantErr: false},
		{name: "zero capacity", mutate: func(s *PracticalSession) { s.Capacity = 0 }, wantErr: true},
		{name: "negative capacity", mutate: func(s *PracticalSession) { s.Capacity = -3 }, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			session := validSession()
			tt.mutate(&session)
			err := session.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPracticalSession_SeatsRemaining(t *testing.T) {
	t.Parallel()

	session := PracticalSession{Capacity: 30}

	assert.Equal(t, 30, session.SeatsRemaining(0))
	assert.Equal(t, 25, session.SeatsRemaining(5))
	assert.Equal(t, 0, session.SeatsRemaining(30))
	assert.Equal(t, 0, session.SeatsRemaining(31))
}

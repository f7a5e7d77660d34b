package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzk/labsessions/internal/app/models"
)

const testBaseURL = "http://localhost:8080"

func TestFeedService_Feed(t *testing.T) {
	t.Parallel()

	sessions := newFakeSessionStore()
	registrations := newFakeRegistrationStore(sessions)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	session := sessions.add(&models.PracticalSession{
		CourseID:    "course-v1:OU+CS101+2026",
		Name:        "Microscopy lab",
		Description: "Bring your lab coat",
		Venue:       "Building B, room 14",
		StartAt:     start,
		EndAt:       start.Add(3 * time.Hour),
		Capacity:    30,
	})

	for i := 0; i < 5; i++ {
		email := string(rune('a'+i)) + "@school.edu"
		_, err := registrations.Insert(context.Background(), session.ID, email, "Student")
		require.NoError(t, err)
	}

	svc := NewFeedService(sessions, registrations, nil, testBaseURL, zerolog.Nop())

	entries, err := svc.Feed(context.Background(), session.CourseID)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "Microscopy lab", entry.Title)
	assert.Equal(t, "2026-03-02", entry.Start)
	assert.Equal(t, "2026-03-02", entry.End)
	assert.Equal(t, 25, entry.SeatsRemaining)
	assert.Equal(t, "Start Date:02-03-2026 End Date:02-03-2026<br> Venue: Building B, room 14<br>Bring your lab coat", entry.Description)
	assert.Equal(t, testBaseURL+"/courses/course-v1:OU+CS101+2026/register", entry.RegistrationURL)
}

func TestFeedService_Feed_EmptyCourse(t *testing.T) {
	t.Parallel()

	sessions := newFakeSessionStore()
	registrations := newFakeRegistrationStore(sessions)
	svc := NewFeedService(sessions, registrations, nil, testBaseURL, zerolog.Nop())

	entries, err := svc.Feed(context.Background(), "course-v1:OU+EMPTY+2026")
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestFeedService_Feed_SeatsNeverNegative(t *testing.T) {
	t.Parallel()

	sessions := newFakeSessionStore()
	registrations := newFakeRegistrationStore(sessions)

	session := sessions.add(newTestSession(3))
	for i := 0; i < 3; i++ {
		email := string(rune('a'+i)) + "@school.edu"
		_, err := registrations.Insert(context.Background(), session.ID, email, "Student")
		require.NoError(t, err)
	}
	// A capacity lowered below the registered count must still render as
	// zero seats, not a negative number.
	sessions.sessions[session.ID].Capacity = 2

	svc := NewFeedService(sessions, registrations, nil, testBaseURL, zerolog.Nop())

	entries, err := svc.Feed(context.Background(), session.CourseID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].SeatsRemaining)
}

func TestFeedService_Feed_MultipleSessions(t *testing.T) {
	t.Parallel()

	sessions := newFakeSessionStore()
	registrations := newFakeRegistrationStore(sessions)

	first := sessions.add(newTestSession(10))
	second := newTestSession(4)
	second.Name = "Networking lab"
	sessions.add(second)

	_, err := registrations.Insert(context.Background(), first.ID, "jane@school.edu", "Jane Doe")
	require.NoError(t, err)

	svc := NewFeedService(sessions, registrations, nil, testBaseURL, zerolog.Nop())

	entries, err := svc.Feed(context.Background(), first.CourseID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 9, entries[0].SeatsRemaining)
	assert.Equal(t, 4, entries[1].SeatsRemaining)
}

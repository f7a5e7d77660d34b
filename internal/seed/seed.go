package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/oguzk/labsessions/internal/app/models"
	"github.com/oguzk/labsessions/internal/app/repositories"
)

// CreateDefaultData inserts a demo course with a couple of practical
// sessions so a development instance is usable immediately. Safe to run
// repeatedly.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	repos := repositories.NewRepositories(dbPool)

	course := &models.Course{
		ID:    "course-v1:OU+CS101+2026",
		Title: "Introduction to Computer Science",
	}
	if err := repos.CourseRepository.Upsert(ctx, course); err != nil {
		return fmt.Errorf("failed to seed demo course: %w", err)
	}

	existing, err := repos.SessionRepository.ListByCourse(ctx, course.ID)
	if err != nil {
		return fmt.Errorf("failed to check existing demo sessions: %w", err)
	}
	if len(existing) > 0 {
		lgr.Debug().Str("courseId", course.ID).Msg("Demo sessions already present, skipping seed")
		return nil
	}

	nextMonday := time.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour).Add(9 * time.Hour)
	sessions := []*models.PracticalSession{
		{
			CourseID:    course.ID,
			Name:        "Linux lab",
			Description: "Shell basics and file permissions",
			Venue:       "Building B, room 14",
			StartAt:     nextMonday,
			EndAt:       nextMonday.Add(3 * time.Hour),
			Capacity:    30,
		},
		{
			CourseID:    course.ID,
			Name:        "Networking lab",
			Description: "Packet captures with Wireshark",
			Venue:       "Building B, room 16",
			StartAt:     nextMonday.AddDate(0, 0, 2),
			EndAt:       nextMonday.AddDate(0, 0, 2).Add(3 * time.Hour),
			Capacity:    24,
		},
	}

	for _, session := range sessions {
		if err := repos.SessionRepository.Create(ctx, session); err != nil {
			return fmt.Errorf("failed to seed demo session %q: %w", session.Name, err)
		}
	}

	lgr.Info().Str("courseId", course.ID).Int("sessions", len(sessions)).Msg("Demo data created")
	return nil
}

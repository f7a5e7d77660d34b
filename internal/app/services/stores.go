package services

import (
	"context"

	"github.com/oguzk/labsessions/internal/app/models"
)

// The services consume the stores through narrow interfaces so tests can
// substitute in-memory fakes; the pgx-backed repositories satisfy them.

// SessionStore is the practical catalog surface the services need.
type SessionStore interface {
	GetByID(ctx context.Context, sessionID int64) (*models.PracticalSession, error)
	ListByCourse(ctx context.Context, courseID string) ([]*models.PracticalSession, error)
	Create(ctx context.Context, session *models.PracticalSession) error
	IncreaseCapacity(ctx context.Context, sessionID int64, newCapacity int) (*models.PracticalSession, error)
}

// RegistrationStore is the registration persistence surface. Insert is
// the single authoritative capacity/uniqueness gate; the read methods are
// advisory.
type RegistrationStore interface {
	Insert(ctx context.Context, sessionID int64, studentEmail, studentName string) (*models.Registration, error)
	CountBySession(ctx context.Context, sessionID int64) (int, error)
	CountsBySessionIDs(ctx context.Context, sessionIDs []int64) (map[int64]int, error)
	Exists(ctx context.Context, sessionID int64, studentEmail string) (bool, error)
}

// CourseStore resolves course bindings pushed from the learning platform.
type CourseStore interface {
	GetByID(ctx context.Context, courseID string) (*models.Course, error)
}

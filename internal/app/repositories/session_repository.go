package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzk/labsessions/internal/app/models"
	"github.com/oguzk/labsessions/internal/db"
	"github.com/oguzk/labsessions/internal/pkg/apperrors"
)

// sessionColumns lists the scan order shared by every session query.
var sessionColumns = []string{
	"id", "course_id", "name", "description", "venue",
	"start_at", "end_at", "capacity", "created_at", "updated_at",
}

// SessionRepository handles database operations for practical sessions
type SessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

func scanSession(row pgx.Row) (*models.PracticalSession, error) {
	var s models.PracticalSession
	err := row.Scan(
		&s.ID, &s.CourseID, &s.Name, &s.Description, &s.Venue,
		&s.StartAt, &s.EndAt, &s.Capacity, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByID retrieves a single practical session. Returns
// apperrors.ErrSessionNotFound when absent.
func (r *SessionRepository) GetByID(ctx context.Context, sessionID int64) (*models.PracticalSession, error) {
	return db.WithRetry(ctx, func(ctx context.Context) (*models.PracticalSession, error) {
		query := squirrel.Select(sessionColumns...).
			From("practical_sessions").
			Where("id = ?", sessionID).
			PlaceholderFormat(squirrel.Dollar)

		sql, args, err := query.ToSql()
		if err != nil {
			return nil, fmt.Errorf("error building SQL: %w", err)
		}

		session, err := scanSession(r.db.QueryRow(ctx, sql, args...))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.ErrSessionNotFound
			}
			return nil, fmt.Errorf("error executing query: %w", err)
		}
		return session, nil
	})
}

// ListByCourse retrieves all practical sessions scheduled for a course,
// ordered by start time. A course without sessions yields an empty slice,
// never an error.
func (r *SessionRepository) ListByCourse(ctx context.Context, courseID string) ([]*models.PracticalSession, error) {
	return db.WithRetry(ctx, func(ctx context.Context) ([]*models.PracticalSession, error) {
		query := squirrel.Select(sessionColumns...).
			From("practical_sessions").
			Where("course_id = ?", courseID).
			OrderBy("start_at ASC").
			PlaceholderFormat(squirrel.Dollar)

		sql, args, err := query.ToSql()
		if err != nil {
			return nil, fmt.Errorf("error building SQL: %w", err)
		}

		rows, err := r.db.Query(ctx, sql, args...)
		if err != nil {
			return nil, fmt.Errorf("error executing query: %w", err)
		}
		defer rows.Close()

		sessions := make([]*models.PracticalSession, 0)
		for rows.Next() {
			session, err := scanSession(rows)
			if err != nil {
				return nil, fmt.Errorf("error scanning row: %w", err)
			}
			sessions = append(sessions, session)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error reading rows: %w", err)
		}

		return sessions, nil
	})
}

// Create inserts a new practical session and populates its generated
// identifier and timestamps.
func (r *SessionRepository) Create(ctx context.Context, session *models.PracticalSession) error {
	query := squirrel.Insert("practical_sessions").
		Columns("course_id", "name", "description", "venue", "start_at", "end_at", "capacity").
		Values(session.CourseID, session.Name, session.Description, session.Venue,
			session.StartAt, session.EndAt, session.Capacity).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	return nil
}

// IncreaseCapacity raises a session's capacity. The session row is locked
// for the duration so the new value cannot race a concurrent
// registration's capacity check. Any change other than an increase is
// rejected: sessions with registrations are otherwise immutable.
func (r *SessionRepository) IncreaseCapacity(ctx context.Context, sessionID int64, newCapacity int) (*models.PracticalSession, error) {
	var updated *models.PracticalSession

	err := db.RunInTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var current int
		err := tx.QueryRow(ctx,
			`SELECT capacity FROM practical_sessions WHERE id = $1 FOR UPDATE`,
			sessionID,
		).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrSessionNotFound
			}
			return fmt.Errorf("error locking session: %w", err)
		}

		if newCapacity <= current {
			return apperrors.NewValidationError(
				fmt.Sprintf("capacity can only be increased (current %d, requested %d)", current, newCapacity))
		}

		row := tx.QueryRow(ctx,
			`UPDATE practical_sessions
			 SET capacity = $2, updated_at = now()
			 WHERE id = $1
			 RETURNING id, course_id, name, description, venue, start_at, end_at, capacity, created_at, updated_at`,
			sessionID, newCapacity,
		)
		updated, err = scanSession(row)
		if err != nil {
			return fmt.Errorf("error updating capacity: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

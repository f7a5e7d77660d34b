package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzk/labsessions/internal/app/models"
	"github.com/oguzk/labsessions/internal/db"
	"github.com/oguzk/labsessions/internal/pkg/apperrors"
	"github.com/oguzk/labsessions/internal/pkg/dberrors"
)

// uniqueSessionStudent is the constraint backing the one-registration-per-
// student-per-session invariant.
const uniqueSessionStudent = "registrations_session_student_key"

// RegistrationRepository handles database operations for student
// registrations. Capacity and uniqueness are enforced here, inside the
// store's transactional guarantees, never by callers comparing counts
// they read earlier.
type RegistrationRepository struct {
	db *pgxpool.Pool
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Insert stores a registration for (sessionID, studentEmail) as one atomic
// unit: the session row is locked, the current count compared against
// capacity, and only then is the row inserted. Two concurrent calls racing
// for the last seat therefore resolve deterministically. Returns
// ErrSessionNotFound, ErrCapacityExceeded or ErrDuplicateRegistration as
// typed outcomes.
func (r *RegistrationRepository) Insert(ctx context.Context, sessionID int64, studentEmail, studentName string) (*models.Registration, error) {
	return db.WithRetry(ctx, func(ctx context.Context) (*models.Registration, error) {
		reg := &models.Registration{
			SessionID:    sessionID,
			StudentEmail: studentEmail,
			StudentName:  studentName,
			Reference:    uuid.New().String(),
		}

		err := db.RunInTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
			// Lock the session row so the count below cannot go stale
			// before the insert commits.
			var capacity int
			err := tx.QueryRow(ctx,
				`SELECT capacity FROM practical_sessions WHERE id = $1 FOR UPDATE`,
				sessionID,
			).Scan(&capacity)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return apperrors.ErrSessionNotFound
				}
				return fmt.Errorf("error locking session: %w", err)
			}

			var count int
			err = tx.QueryRow(ctx,
				`SELECT COUNT(*) FROM registrations WHERE session_id = $1`,
				sessionID,
			).Scan(&count)
			if err != nil {
				return fmt.Errorf("error counting registrations: %w", err)
			}
			if count >= capacity {
				return apperrors.ErrCapacityExceeded
			}

			err = tx.QueryRow(ctx,
				`INSERT INTO registrations (session_id, student_email, student_name, reference)
				 VALUES ($1, $2, $3, $4)
				 RETURNING id, created_at`,
				reg.SessionID, reg.StudentEmail, reg.StudentName, reg.Reference,
			).Scan(&reg.ID, &reg.CreatedAt)
			if err != nil {
				if dberrors.IsDuplicateConstraintError(err, uniqueSessionStudent) {
					return apperrors.ErrDuplicateRegistration
				}
				return fmt.Errorf("error inserting registration: %w", err)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return reg, nil
	})
}

// CountBySession retrieves the number of registrations for a session
func (r *RegistrationRepository) CountBySession(ctx context.Context, sessionID int64) (int, error) {
	return db.WithRetry(ctx, func(ctx context.Context) (int, error) {
		query := squirrel.Select("COUNT(*)").
			From("registrations").
			Where("session_id = ?", sessionID).
			PlaceholderFormat(squirrel.Dollar)

		sql, args, err := query.ToSql()
		if err != nil {
			return 0, fmt.Errorf("error building SQL: %w", err)
		}

		var count int
		if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
			return 0, fmt.Errorf("error executing query: %w", err)
		}
		return count, nil
	})
}

// CountsBySessionIDs retrieves the registration counts for multiple
// sessions in one query. Sessions without registrations are absent from
// the returned map.
func (r *RegistrationRepository) CountsBySessionIDs(ctx context.Context, sessionIDs []int64) (map[int64]int, error) {
	if len(sessionIDs) == 0 {
		return make(map[int64]int), nil
	}

	return db.WithRetry(ctx, func(ctx context.Context) (map[int64]int, error) {
		query := squirrel.Select("session_id", "COUNT(*)").
			From("registrations").
			Where(squirrel.Eq{"session_id": sessionIDs}).
			GroupBy("session_id").
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

		counts := make(map[int64]int)
		for rows.Next() {
			var sessionID int64
			var count int
			if err := rows.Scan(&sessionID, &count); err != nil {
				return nil, fmt.Errorf("error scanning row: %w", err)
			}
			counts[sessionID] = count
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error reading rows: %w", err)
		}
		return counts, nil
	})
}

// Exists checks if a student already holds a registration for a session
func (r *RegistrationRepository) Exists(ctx context.Context, sessionID int64, studentEmail string) (bool, error) {
	return db.WithRetry(ctx, func(ctx context.Context) (bool, error) {
		query := squirrel.Select("1").
			From("registrations").
			Where("session_id = ? AND student_email = ?", sessionID, studentEmail).
			PlaceholderFormat(squirrel.Dollar)

		sql, args, err := query.ToSql()
		if err != nil {
			return false, fmt.Errorf("error building SQL: %w", err)
		}

		var one int
		err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return false, nil
			}
			return false, fmt.Errorf("error executing query: %w", err)
		}
		return true, nil
	})
}

// ListBySession retrieves all registrations for a session ordered by
// creation time.
func (r *RegistrationRepository) ListBySession(ctx context.Context, sessionID int64) ([]*models.Registration, error) {
	query := squirrel.Select("id", "session_id", "student_email", "student_name", "reference", "created_at").
		From("registrations").
		Where("session_id = ?", sessionID).
		OrderBy("created_at ASC").
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

	registrations := make([]*models.Registration, 0)
	for rows.Next() {
		var reg models.Registration
		if err := rows.Scan(&reg.ID, &reg.SessionID, &reg.StudentEmail, &reg.StudentName, &reg.Reference, &reg.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		registrations = append(registrations, &reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading rows: %w", err)
	}
	return registrations, nil
}

// DeleteBySession removes registrations for a session in bulk. When only
// is non-empty just those students are removed; otherwise every student
// except the ones in exclude. Returns the emails that were deleted.
func (r *RegistrationRepository) DeleteBySession(ctx context.Context, sessionID int64, only, exclude []string) ([]string, error) {
	del := squirrel.Delete("registrations").
		Where("session_id = ?", sessionID).
		Suffix("RETURNING student_email").
		PlaceholderFormat(squirrel.Dollar)

	if len(only) > 0 {
		del = del.Where(squirrel.Eq{"student_email": only})
	} else if len(exclude) > 0 {
		del = del.Where(squirrel.NotEq{"student_email": exclude})
	}

	sql, args, err := del.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var deleted []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		deleted = append(deleted, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading rows: %w", err)
	}
	return deleted, nil
}

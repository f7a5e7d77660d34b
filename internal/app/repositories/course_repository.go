package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzk/labsessions/internal/app/models"
	"github.com/oguzk/labsessions/internal/pkg/apperrors"
)

// CourseRepository handles database operations for the course catalog.
// Courses are owned by the learning platform; this service only keeps the
// binding between a course key and its practical sessions.
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

// GetByID retrieves a course by its platform key. Returns
// apperrors.ErrCourseNotFound when no such course is bound.
func (r *CourseRepository) GetByID(ctx context.Context, courseID string) (*models.Course, error) {
	query := squirrel.Select("id", "title", "created_at").
		From("courses").
		Where("id = ?", courseID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var course models.Course
	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.Title, &course.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &course, nil
}

// Upsert inserts a course binding or refreshes its title. Used when the
// platform pushes course metadata and by development seeding.
func (r *CourseRepository) Upsert(ctx context.Context, course *models.Course) error {
	query := squirrel.Insert("courses").
		Columns("id", "title").
		Values(course.ID, course.Title).
		Suffix("ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	return nil
}

package repositories

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories bundles all data access objects behind one constructor.
type Repositories struct {
	CourseRepository       *CourseRepository
	SessionRepository      *SessionRepository
	RegistrationRepository *RegistrationRepository
}

// NewRepositories creates every repository bound to the given pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		CourseRepository:       NewCourseRepository(db),
		SessionRepository:      NewSessionRepository(db),
		RegistrationRepository: NewRegistrationRepository(db),
	}
}

package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/oguzk/labsessions/internal/app/models"
	"github.com/oguzk/labsessions/internal/app/models/dto"
)

// CatalogService defines the interface for practical catalog operations
type CatalogService interface {
	ListSessions(ctx context.Context, courseID string) (*dto.SessionListResponse, error)
	GetSession(ctx context.Context, sessionID int64) (*dto.SessionResponse, error)
	CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	IncreaseCapacity(ctx context.Context, sessionID int64, newCapacity int) (*dto.SessionResponse, error)
}

// catalogServiceImpl implements CatalogService
type catalogServiceImpl struct {
	sessionStore SessionStore
	courseStore  CourseStore
	logger       zerolog.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(sessionStore SessionStore, courseStore CourseStore, logger zerolog.Logger) CatalogService {
	return &catalogServiceImpl{
		sessionStore: sessionStore,
		courseStore:  courseStore,
		logger:       logger,
	}
}

// ListSessions returns the sessions scheduled for a course. A course with
// no sessions is a normal state and yields an empty list.
func (s *catalogServiceImpl) ListSessions(ctx context.Context, courseID string) (*dto.SessionListResponse, error) {
	sessions, err := s.sessionStore.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, *dto.NewSessionResponse(session))
	}
	return &dto.SessionListResponse{Sessions: responses}, nil
}

// GetSession returns one session by identifier.
func (s *catalogServiceImpl) GetSession(ctx context.Context, sessionID int64) (*dto.SessionResponse, error) {
	session, err := s.sessionStore.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return dto.NewSessionResponse(session), nil
}

// CreateSession schedules a new practical session for a course. The
// course binding must already exist.
func (s *catalogServiceImpl) CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	if _, err := s.courseStore.GetByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	session := &models.PracticalSession{
		CourseID:    req.CourseID,
		Name:        req.Name,
		Description: req.Description,
		Venue:       req.Venue,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		Capacity:    req.Capacity,
	}
	if err := session.Validate(); err != nil {
		return nil, err
	}

	if err := s.sessionStore.Create(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("sessionId", session.ID).
		Str("courseId", session.CourseID).
		Int("capacity", session.Capacity).
		Msg("Practical session created")

	return dto.NewSessionResponse(session), nil
}

// IncreaseCapacity raises the seat limit of a session. Lowering is
// rejected by the store once registrations exist.
func (s *catalogServiceImpl) IncreaseCapacity(ctx context.Context, sessionID int64, newCapacity int) (*dto.SessionResponse, error) {
	session, err := s.sessionStore.IncreaseCapacity(ctx, sessionID, newCapacity)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("sessionId", session.ID).
		Int("capacity", session.Capacity).
		Msg("Session capacity increased")

	return dto.NewSessionResponse(session), nil
}

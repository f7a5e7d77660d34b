package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/oguzk/labsessions/internal/app/models/dto"
	"github.com/oguzk/labsessions/internal/pkg/events"
)

// RegistrationService defines the interface for registration operations
type RegistrationService interface {
	// Register stores a registration for the student, enforcing capacity
	// and uniqueness atomically at commit time.
	Register(ctx context.Context, sessionID int64, email, displayName string) (*dto.RegistrationResponse, error)
	// Status answers the advisory pre-flight check a client runs before
	// showing the registration form.
	Status(ctx context.Context, sessionID int64, email string) (*dto.RegistrationStatusResponse, error)
}

// registrationServiceImpl implements RegistrationService
type registrationServiceImpl struct {
	sessionStore      SessionStore
	registrationStore RegistrationStore
	bus               *events.Bus
	logger            zerolog.Logger
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(
	sessionStore SessionStore,
	registrationStore RegistrationStore,
	bus *events.Bus,
	logger zerolog.Logger,
) RegistrationService {
	return &registrationServiceImpl{
		sessionStore:      sessionStore,
		registrationStore: registrationStore,
		bus:               bus,
		logger:            logger,
	}
}

// Register looks up the session and delegates the capacity-gated insert
// to the store. On success the registration.created event is published;
// subscriber failures (such as the confirmation mail) never roll the
// registration back.
func (s *registrationServiceImpl) Register(ctx context.Context, sessionID int64, email, displayName string) (*dto.RegistrationResponse, error) {
	session, err := s.sessionStore.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	registration, err := s.registrationStore.Insert(ctx, session.ID, email, displayName)
	if err != nil {
		s.logger.Debug().Err(err).
			Int64("sessionId", sessionID).
			Str("email", email).
			Msg("Registration rejected")
		return nil, err
	}

	s.logger.Info().
		Int64("sessionId", session.ID).
		Int64("registrationId", registration.ID).
		Str("email", email).
		Msg("Registration stored")

	s.bus.Publish(ctx, RegistrationCreated{
		Registration: registration,
		Session:      session,
	})

	return dto.NewRegistrationResponse(registration), nil
}

// Status reports whether the student already registered and whether the
// session is currently full. The answer can go stale the moment a
// concurrent registration commits, which is why Register never trusts it.
func (s *registrationServiceImpl) Status(ctx context.Context, sessionID int64, email string) (*dto.RegistrationStatusResponse, error) {
	session, err := s.sessionStore.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	exists, err := s.registrationStore.Exists(ctx, session.ID, email)
	if err != nil {
		return nil, err
	}

	count, err := s.registrationStore.CountBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	return &dto.RegistrationStatusResponse{
		AlreadyRegistered: exists,
		IsFull:            count >= session.Capacity,
	}, nil
}

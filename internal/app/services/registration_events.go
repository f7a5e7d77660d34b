package services

import "github.com/oguzk/labsessions/internal/app/models"

// RegistrationCreatedEvent names the event published after a registration
// has been durably stored.
const RegistrationCreatedEvent = "registration.created"

// RegistrationCreated carries the stored registration and its session to
// the subscribers (confirmation mail, feed cache invalidation).
type RegistrationCreated struct {
	Registration *models.Registration
	Session      *models.PracticalSession
}

// Name implements events.Event
func (RegistrationCreated) Name() string { return RegistrationCreatedEvent }

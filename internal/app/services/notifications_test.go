package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzk/labsessions/internal/app/models"
	"github.com/oguzk/labsessions/internal/pkg/events"
)

type fakeEmailService struct {
	sentTo  []string
	sendErr error
}

func (f *fakeEmailService) SendRegistrationConfirmation(toEmail, _ string, _ *models.PracticalSession) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sentTo = append(f.sentTo, toEmail)
	return nil
}

func registrationEvent() RegistrationCreated {
	return RegistrationCreated{
		Registration: &models.Registration{SessionID: 7, StudentEmail: "jane@school.edu", StudentName: "Jane Doe"},
		Session:      newTestSession(10),
	}
}

func TestConfirmationMailer_Handle(t *testing.T) {
	t.Parallel()

	mail := &fakeEmailService{}
	mailer := NewConfirmationMailer(mail, zerolog.Nop())

	err := mailer.Handle(context.Background(), registrationEvent())
	require.NoError(t, err)
	assert.Equal(t, []string{"jane@school.edu"}, mail.sentTo)
}

func TestConfirmationMailer_Handle_SendFailure(t *testing.T) {
	t.Parallel()

	mail := &fakeEmailService{sendErr: errors.New("smtp unreachable")}
	mailer := NewConfirmationMailer(mail, zerolog.Nop())

	err := mailer.Handle(context.Background(), registrationEvent())
	assert.Error(t, err)
}

func TestConfirmationMailer_Handle_WrongEventType(t *testing.T) {
	t.Parallel()

	mailer := NewConfirmationMailer(&fakeEmailService{}, zerolog.Nop())
	err := mailer.Handle(context.Background(), fakeEvent{})
	assert.Error(t, err)
}

type fakeEvent struct{}

func (fakeEvent) Name() string { return "something.else" }

// A mail failure dispatched through the bus must not disturb later
// subscribers or surface to the publisher.
func TestMailFailureIsIsolatedOnBus(t *testing.T) {
	t.Parallel()

	bus := events.NewBus(zerolog.Nop())
	bus.Subscribe(RegistrationCreatedEvent, NewConfirmationMailer(&fakeEmailService{sendErr: errors.New("smtp unreachable")}, zerolog.Nop()))

	recorder := newRecordingHandler()
	bus.Subscribe(RegistrationCreatedEvent, recorder)

	assert.NotPanics(t, func() {
		bus.Dispatch(context.Background(), registrationEvent())
	})

	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	assert.Len(t, recorder.received, 1)
}

func TestFeedInvalidator_NilCacheIsNoop(t *testing.T) {
	t.Parallel()

	invalidator := NewFeedInvalidator(nil)
	assert.NotPanics(t, func() {
		err := invalidator.Handle(context.Background(), registrationEvent())
		assert.NoError(t, err)
	})
}

package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/oguzk/labsessions/internal/pkg/cache"
	"github.com/oguzk/labsessions/internal/pkg/email"
	"github.com/oguzk/labsessions/internal/pkg/events"
)

// ConfirmationMailer subscribes to registration.created and sends the
// confirmation email. Sending is decoupled from the registration
// transaction; a failure here is logged by the bus and never reaches the
// registrant.
type ConfirmationMailer struct {
	emailService email.EmailService
	logger       zerolog.Logger
}

// NewConfirmationMailer creates the mail subscriber.
func NewConfirmationMailer(emailService email.EmailService, logger zerolog.Logger) *ConfirmationMailer {
	return &ConfirmationMailer{emailService: emailService, logger: logger}
}

// HandlerName implements events.Handler
func (m *ConfirmationMailer) HandlerName() string { return "confirmation-mailer" }

// Handle implements events.Handler
func (m *ConfirmationMailer) Handle(ctx context.Context, event events.Event) error {
	created, ok := event.(RegistrationCreated)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	reg := created.Registration
	if err := m.emailService.SendRegistrationConfirmation(reg.StudentEmail, reg.StudentName, created.Session); err != nil {
		return fmt.Errorf("confirmation email to %s: %w", reg.StudentEmail, err)
	}

	m.logger.Debug().
		Str("email", reg.StudentEmail).
		Int64("sessionId", reg.SessionID).
		Msg("Confirmation email dispatched")
	return nil
}

// FeedInvalidator subscribes to registration.created and drops the cached
// calendar feed of the affected course so seat counts stay fresh.
// Deleting a key is naturally idempotent.
type FeedInvalidator struct {
	feedCache *cache.FeedCache
}

// NewFeedInvalidator creates the cache invalidation subscriber.
func NewFeedInvalidator(feedCache *cache.FeedCache) *FeedInvalidator {
	return &FeedInvalidator{feedCache: feedCache}
}

// HandlerName implements events.Handler
func (i *FeedInvalidator) HandlerName() string { return "feed-invalidator" }

// Handle implements events.Handler
func (i *FeedInvalidator) Handle(ctx context.Context, event events.Event) error {
	created, ok := event.(RegistrationCreated)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	i.feedCache.Invalidate(ctx, created.Session.CourseID)
	return nil
}

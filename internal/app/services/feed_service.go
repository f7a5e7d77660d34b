package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/oguzk/labsessions/internal/app/models/dto"
	"github.com/oguzk/labsessions/internal/pkg/cache"
)

// FeedService defines the interface for the calendar feed
type FeedService interface {
	// Feed projects a course's sessions plus live seat counts into
	// calendar-widget entries. A course without sessions yields an empty
	// feed, not an error.
	Feed(ctx context.Context, courseID string) ([]dto.FeedEntry, error)
}

// feedDateLayout is the date-only format the calendar widget consumes.
const feedDateLayout = "2006-01-02"

// feedServiceImpl implements FeedService
type feedServiceImpl struct {
	sessionStore      SessionStore
	registrationStore RegistrationStore
	feedCache         *cache.FeedCache
	baseURL           string
	logger            zerolog.Logger
}

// NewFeedService creates a new FeedService. feedCache may be nil, which
// disables caching.
func NewFeedService(
	sessionStore SessionStore,
	registrationStore RegistrationStore,
	feedCache *cache.FeedCache,
	baseURL string,
	logger zerolog.Logger,
) FeedService {
	return &feedServiceImpl{
		sessionStore:      sessionStore,
		registrationStore: registrationStore,
		feedCache:         feedCache,
		baseURL:           baseURL,
		logger:            logger,
	}
}

func (s *feedServiceImpl) Feed(ctx context.Context, courseID string) ([]dto.FeedEntry, error) {
	if payload, ok := s.feedCache.Get(ctx, courseID); ok {
		var entries []dto.FeedEntry
		if err := json.Unmarshal(payload, &entries); err == nil {
			return entries, nil
		}
		// A corrupt cache entry is dropped and rebuilt below.
		s.feedCache.Invalidate(ctx, courseID)
	}

	sessions, err := s.sessionStore.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.FeedEntry, 0, len(sessions))
	if len(sessions) == 0 {
		return entries, nil
	}

	ids := make([]int64, 0, len(sessions))
	for _, session := range sessions {
		ids = append(ids, session.ID)
	}
	counts, err := s.registrationStore.CountsBySessionIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, session := range sessions {
		description := fmt.Sprintf("Start Date:%s End Date:%s<br> Venue: %s<br>%s",
			session.StartAt.Format("02-01-2006"),
			session.EndAt.Format("02-01-2006"),
			session.Venue,
			session.Description)

		entries = append(entries, dto.FeedEntry{
			Title:           session.Name,
			Start:           session.StartAt.Format(feedDateLayout),
			End:             session.EndAt.Format(feedDateLayout),
			Description:     description,
			SeatsRemaining:  session.SeatsRemaining(counts[session.ID]),
			RegistrationURL: fmt.Sprintf("%s/courses/%s/register", s.baseURL, session.CourseID),
		})
	}

	if payload, err := json.Marshal(entries); err == nil {
		s.feedCache.Set(ctx, courseID, payload)
	}

	return entries, nil
}

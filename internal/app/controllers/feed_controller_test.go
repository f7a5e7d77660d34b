package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzk/labsessions/internal/app/models/dto"
)

type stubFeedService struct {
	entries []dto.FeedEntry
	err     error
}

func (s *stubFeedService) Feed(context.Context, string) ([]dto.FeedEntry, error) {
	return s.entries, s.err
}

func TestFeedController_CalendarFeed(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &stubFeedService{entries: []dto.FeedEntry{
		{
			Title:           "Linux lab",
			Start:           "2026-03-02",
			End:             "2026-03-02",
			Description:     "Start Date:02-03-2026 End Date:02-03-2026<br> Venue: Building B, room 14<br>Shell basics",
			SeatsRemaining:  25,
			RegistrationURL: "http://localhost:8080/courses/course-v1:OU+CS101+2026/register",
		},
	}}

	router := gin.New()
	router.GET("/courses/:courseId/calendar-feed", NewFeedController(svc).CalendarFeed)

	req := httptest.NewRequest(http.MethodGet, "/courses/course-v1:OU+CS101+2026/calendar-feed", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	// The widget expects a bare array, not the success envelope.
	var entries []dto.FeedEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Linux lab", entries[0].Title)
	assert.Equal(t, 25, entries[0].SeatsRemaining)
}

func TestFeedController_CalendarFeed_EmptyCourse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/courses/:courseId/calendar-feed", NewFeedController(&stubFeedService{entries: []dto.FeedEntry{}}).CalendarFeed)

	req := httptest.NewRequest(http.MethodGet, "/courses/course-v1:OU+EMPTY+2026/calendar-feed", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oguzk/labsessions/internal/app/services"
	"github.com/oguzk/labsessions/internal/middleware"
)

// FeedController serves the calendar feed consumed by the course widget
type FeedController struct {
	feedService services.FeedService
}

// NewFeedController creates a new FeedController
func NewFeedController(feedService services.FeedService) *FeedController {
	return &FeedController{
		feedService: feedService,
	}
}

// CalendarFeed returns the calendar entries of a course
// @Summary Course calendar feed
// @Description Lists the course's practical sessions with live seat counts, shaped for the calendar widget
// @Tags feed
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 200 {array} dto.FeedEntry "Calendar entries"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Router /courses/{courseId}/calendar-feed [get]
func (c *FeedController) CalendarFeed(ctx *gin.Context) {
	courseID := ctx.Param("courseId")

	entries, err := c.feedService.Feed(ctx, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// The widget consumes the raw entry array, not the envelope.
	ctx.JSON(http.StatusOK, entries)
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oguzk/labsessions/internal/app/models/dto"
	"github.com/oguzk/labsessions/internal/app/services"
	"github.com/oguzk/labsessions/internal/middleware"
)

// SessionController handles practical catalog operations
type SessionController struct {
	catalogService services.CatalogService
}

// NewSessionController creates a new SessionController
func NewSessionController(catalogService services.CatalogService) *SessionController {
	return &SessionController{
		catalogService: catalogService,
	}
}

// CreateSession handles scheduling a new practical session
// @Summary Create a practical session
// @Description Schedules a new seat-limited practical session for an existing course
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSessionRequest true "Session information"
// @Success 201 {object} dto.APIResponse{data=dto.SessionResponse} "Session created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - staff role required"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /sessions [post]
func (c *SessionController) CreateSession(ctx *gin.Context) {
	var req dto.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid session data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	session, err := c.catalogService.CreateSession(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(session))
}

// GetSessionByID retrieves a practical session by ID
// @Summary Get session by ID
// @Description Retrieves a specific practical session by its ID
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionId path int true "Session ID"
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse} "Session retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid session ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{sessionId} [get]
func (c *SessionController) GetSessionByID(ctx *gin.Context) {
	sessionID, err := strconv.ParseInt(ctx.Param("sessionId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid session ID")
		errorDetail = errorDetail.WithDetails("Session ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	session, err := c.catalogService.GetSession(ctx, sessionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(session))
}

// ListCourseSessions lists the practical sessions of a course
// @Summary List course sessions
// @Description Retrieves the practical sessions scheduled for a course; a course without sessions yields an empty list
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.SessionListResponse} "Sessions retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Router /courses/{courseId}/sessions [get]
func (c *SessionController) ListCourseSessions(ctx *gin.Context) {
	courseID := ctx.Param("courseId")

	sessions, err := c.catalogService.ListSessions(ctx, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(sessions))
}

// IncreaseCapacity raises the seat limit of a session
// @Summary Increase session capacity
// @Description Raises the seat limit of an existing session; lowering it is rejected
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionId path int true "Session ID"
// @Param request body dto.UpdateCapacityRequest true "New capacity"
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse} "Capacity updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - staff role required"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{sessionId}/capacity [patch]
func (c *SessionController) IncreaseCapacity(ctx *gin.Context) {
	sessionID, err := strconv.ParseInt(ctx.Param("sessionId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid session ID")
		errorDetail = errorDetail.WithDetails("Session ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateCapacityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid capacity data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	session, err := c.catalogService.IncreaseCapacity(ctx, sessionID, req.Capacity)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(session))
}

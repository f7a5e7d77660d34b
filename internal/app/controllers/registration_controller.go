package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oguzk/labsessions/internal/app/models/dto"
	"github.com/oguzk/labsessions/internal/app/services"
	"github.com/oguzk/labsessions/internal/middleware"
)

// RegistrationController handles registration-related operations
type RegistrationController struct {
	registrationService services.RegistrationService
}

// NewRegistrationController creates a new RegistrationController
func NewRegistrationController(registrationService services.RegistrationService) *RegistrationController {
	return &RegistrationController{
		registrationService: registrationService,
	}
}

// Register handles a student registering for a practical session
// @Summary Register for a practical session
// @Description Stores a seat-limited registration; duplicates and full sessions are rejected
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionId path int true "Session ID"
// @Param request body dto.CreateRegistrationRequest true "Student details"
// @Success 201 {object} dto.APIResponse{data=dto.RegistrationResponse} "Registration stored"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Already registered or session full"
// @Failure 503 {object} dto.ErrorResponse "Storage temporarily unavailable"
// @Router /sessions/{sessionId}/registrations [post]
func (c *RegistrationController) Register(ctx *gin.Context) {
	sessionID, err := strconv.ParseInt(ctx.Param("sessionId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid session ID")
		errorDetail = errorDetail.WithDetails("Session ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.CreateRegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid registration data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	registration, err := c.registrationService.Register(ctx, sessionID, req.Email, req.DisplayName)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(registration))
}

// Status reports whether a student can still register
// @Summary Check registration status
// @Description Advisory pre-flight check: already registered, and whether the session is currently full
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionId path int true "Session ID"
// @Param email query string true "Student email"
// @Success 200 {object} dto.APIResponse{data=dto.RegistrationStatusResponse} "Status retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{sessionId}/registrations/status [get]
func (c *RegistrationController) Status(ctx *gin.Context) {
	sessionID, err := strconv.ParseInt(ctx.Param("sessionId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid session ID")
		errorDetail = errorDetail.WithDetails("Session ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	email := ctx.Query("email")
	if email == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing student email")
		errorDetail = errorDetail.WithDetails("The email query parameter is required").WithField("email")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	status, err := c.registrationService.Status(ctx, sessionID, email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(status))
}

package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzk/labsessions/internal/app/models/dto"
	"github.com/oguzk/labsessions/internal/pkg/apperrors"
)

// stubRegistrationService returns canned outcomes per session ID.
type stubRegistrationService struct {
	registerErr  error
	lastEmail    string
	lastName     string
	statusResult *dto.RegistrationStatusResponse
}

func (s *stubRegistrationService) Register(_ context.Context, sessionID int64, email, displayName string) (*dto.RegistrationResponse, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	s.lastEmail = email
	s.lastName = displayName
	return &dto.RegistrationResponse{
		ID:           1,
		SessionID:    sessionID,
		StudentEmail: email,
		StudentName:  displayName,
		Reference:    "7b5c1f9e-51e2-4a63-9a38-2d84cbb3a1f0",
	}, nil
}

func (s *stubRegistrationService) Status(context.Context, int64, string) (*dto.RegistrationStatusResponse, error) {
	if s.statusResult == nil {
		return nil, apperrors.ErrSessionNotFound
	}
	return s.statusResult, nil
}

func newRegistrationRouter(svc *stubRegistrationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewRegistrationController(svc)
	router.POST("/sessions/:sessionId/registrations", controller.Register)
	router.GET("/sessions/:sessionId/registrations/status", controller.Status)
	return router
}

func TestRegistrationController_Register_Created(t *testing.T) {
	svc := &stubRegistrationService{}
	router := newRegistrationRouter(svc)

	body := `{"email":"jane@school.edu","displayName":"Jane Doe"}`
	req := httptest.NewRequest(http.MethodPost, "/sessions/7/registrations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "jane@school.edu", svc.lastEmail)
	assert.Equal(t, "Jane Doe", svc.lastName)

	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestRegistrationController_Register_InvalidSessionID(t *testing.T) {
	router := newRegistrationRouter(&stubRegistrationService{})

	body := `{"email":"jane@school.edu","displayName":"Jane Doe"}`
	req := httptest.NewRequest(http.MethodPost, "/sessions/abc/registrations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegistrationController_Register_InvalidEmail(t *testing.T) {
	router := newRegistrationRouter(&stubRegistrationService{})

	body := `{"email":"not-an-email","displayName":"Jane Doe"}`
	req := httptest.NewRequest(http.MethodPost, "/sessions/7/registrations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegistrationController_Register_Conflicts(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode dto.ErrorCode
	}{
		{name: "duplicate", err: apperrors.ErrDuplicateRegistration, wantCode: dto.ErrorCodeDuplicateRegistration},
		{name: "capacity exceeded", err: apperrors.ErrCapacityExceeded, wantCode: dto.ErrorCodeCapacityExceeded},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			router := newRegistrationRouter(&stubRegistrationService{registerErr: tt.err})

			body := `{"email":"jane@school.edu","displayName":"Jane Doe"}`
			req := httptest.NewRequest(http.MethodPost, "/sessions/7/registrations", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusConflict, rec.Code)

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestRegistrationController_Status(t *testing.T) {
	svc := &stubRegistrationService{statusResult: &dto.RegistrationStatusResponse{AlreadyRegistered: true, IsFull: false}}
	router := newRegistrationRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/sessions/7/registrations/status?email=jane@school.edu", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                           `json:"success"`
		Data    dto.RegistrationStatusResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Data.AlreadyRegistered)
	assert.False(t, resp.Data.IsFull)
}

func TestRegistrationController_Status_MissingEmail(t *testing.T) {
	router := newRegistrationRouter(&stubRegistrationService{})

	req := httptest.NewRequest(http.MethodGet, "/sessions/7/registrations/status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegistrationController_Status_UnknownSession(t *testing.T) {
	router := newRegistrationRouter(&stubRegistrationService{})

	req := httptest.NewRequest(http.MethodGet, "/sessions/7/registrations/status?email=jane@school.edu", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

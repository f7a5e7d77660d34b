package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzk/labsessions/internal/app/models/dto"
	"github.com/oguzk/labsessions/internal/pkg/apperrors"
)

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{name: "course not found", err: apperrors.ErrCourseNotFound, wantStatus: 404, wantCode: dto.ErrorCodeResourceNotFound},
		{name: "session not found", err: apperrors.ErrSessionNotFound, wantStatus: 404, wantCode: dto.ErrorCodeResourceNotFound},
		{name: "wrapped session not found", err: fmt.Errorf("lookup: %w", apperrors.ErrSessionNotFound), wantStatus: 404, wantCode: dto.ErrorCodeResourceNotFound},
		{name: "duplicate registration", err: apperrors.ErrDuplicateRegistration, wantStatus: 409, wantCode: dto.ErrorCodeDuplicateRegistration},
		{name: "capacity exceeded", err: apperrors.ErrCapacityExceeded, wantStatus: 409, wantCode: dto.ErrorCodeCapacityExceeded},
		{name: "session locked", err: apperrors.ErrSessionLocked, wantStatus: 409, wantCode: dto.ErrorCodeResourceLocked},
		{name: "validation failed", err: apperrors.NewValidationError("capacity can only be increased"), wantStatus: 400, wantCode: dto.ErrorCodeValidationFailed},
		{name: "token expired", err: apperrors.ErrTokenExpired, wantStatus: 401, wantCode: dto.ErrorCodeExpiredToken},
		{name: "permission denied", err: apperrors.ErrPermissionDenied, wantStatus: 403, wantCode: dto.ErrorCodeForbidden},
		{name: "store timeout", err: fmt.Errorf("%w: connection reset", apperrors.ErrStoreTimeout), wantStatus: 503, wantCode: dto.ErrorCodeStoreTimeout},
		{name: "unknown error", err: errors.New("boom"), wantStatus: 500, wantCode: dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.False(t, resp.Success)
		})
	}
}

func TestValidCourseID(t *testing.T) {
	tests := []struct {
		courseID string
		want     bool
	}{
		{courseID: "course-v1:OU+CS101+2026", want: true},
		{courseID: "course-v1:Uni+Bio42+spring", want: true},
		{courseID: "CS101", want: false},
		{courseID: "course-v1:OU+CS101", want: false},
		{courseID: "course-v1:OU+CS101+2026+extra", want: false},
		{courseID: "", want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, courseIDPattern.MatchString(tt.courseID), tt.courseID)
	}
}

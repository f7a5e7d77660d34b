package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzk/labsessions/internal/pkg/apperrors"
)

func newTestService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    exp,
		TokenIssuer: "labsessions.test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	t.Parallel()

	svc := newTestService(time.Hour)

	token, err := svc.GenerateToken("jane@school.edu", "Jane Doe", RoleStudent)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "jane@school.edu", claims.Email)
	assert.Equal(t, "Jane Doe", claims.FullName)
	assert.Equal(t, RoleStudent, claims.Role)
	assert.Equal(t, "labsessions.test", claims.Issuer)
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	t.Parallel()

	svc := newTestService(-time.Minute)

	token, err := svc.GenerateToken("jane@school.edu", "Jane Doe", RoleStudent)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := newTestService(time.Hour).GenerateToken("jane@school.edu", "Jane Doe", RoleStaff)
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "different-secret", TokenExp: time.Hour, TokenIssuer: "labsessions.test"})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestJWTService_ValidateToken_Malformed(t *testing.T) {
	t.Parallel()

	svc := newTestService(time.Hour)
	_, err := svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFormat)
}

func TestExtractBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "empty header", header: "", wantErr: true},
		{name: "missing token", header: "Bearer ", wantErr: true},
		{name: "wrong scheme", header: "Basic abc", wantErr: true},
		{name: "no scheme", header: "abc.def.ghi", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

package dto

import (
	"time"

	"github.com/oguzk/labsessions/internal/app/models"
)

// CreateRegistrationRequest is the student payload for registering to a
// practical session.
type CreateRegistrationRequest struct {
	Email       string `json:"email" binding:"required,email" example:"jane@school.edu"`
	DisplayName string `json:"displayName" binding:"required,max=255" example:"Jane Doe"`
}

// RegistrationResponse is the API projection of a stored registration.
type RegistrationResponse struct {
	ID           int64     `json:"id" example:"42"`
	SessionID    int64     `json:"sessionId" example:"7"`
	StudentEmail string    `json:"studentEmail" example:"jane@school.edu"`
	StudentName  string    `json:"studentName" example:"Jane Doe"`
	Reference    string    `json:"reference" example:"7b5c1f9e-51e2-4a63-9a38-2d84cbb3a1f0"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewRegistrationResponse maps a registration model to its API projection.
func NewRegistrationResponse(r *models.Registration) *RegistrationResponse {
	return &RegistrationResponse{
		ID:           r.ID,
		SessionID:    r.SessionID,
		StudentEmail: r.StudentEmail,
		StudentName:  r.StudentName,
		Reference:    r.Reference,
		CreatedAt:    r.CreatedAt,
	}
}

// RegistrationStatusResponse answers the pre-flight availability check.
// Both flags are advisory: the authoritative gate is applied when the
// registration is committed.
type RegistrationStatusResponse struct {
	AlreadyRegistered bool `json:"alreadyRegistered" example:"false"`
	IsFull            bool `json:"isFull" example:"false"`
}

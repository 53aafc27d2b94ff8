package staff

import (
	"github.com/google/uuid"

	"github.com/visionhut/visionhut-backend/pkg/db/models"
	"github.com/visionhut/visionhut-backend/pkg/enums"
)

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// StaffDTO is the staff account shape returned by the API.
type StaffDTO struct {
	ID       uuid.UUID       `json:"id"`
	Email    string          `json:"email"`
	FullName string          `json:"full_name"`
	Role     enums.StaffRole `json:"role"`
}

// LoginResponse contains the token and account produced by a successful login.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	User        *StaffDTO `json:"user"`
}

// FromModel maps a persisted staff user onto the API shape.
func FromModel(user *models.StaffUser) *StaffDTO {
	if user == nil {
		return nil
	}
	return &StaffDTO{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
	}
}

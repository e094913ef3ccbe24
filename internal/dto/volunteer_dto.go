package dto

import "github.com/roadwatch/roadwatch-backend/internal/models"

// AuthRequest is the single login/signup payload, dispatched on Action.
type AuthRequest struct {
	Action     string `json:"action"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
}

// AuthResponse carries the client-held session token plus the volunteer
// view. The password hash never serializes (json:"-" on the model).
type AuthResponse struct {
	Token     string           `json:"token"`
	Volunteer models.Volunteer `json:"volunteer"`
}

// UpdateVolunteerRequest is the allow-list of patchable volunteer fields,
// decoded with DisallowUnknownFields.
type UpdateVolunteerRequest struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
	IsActive   *bool   `json:"isActive"`
}

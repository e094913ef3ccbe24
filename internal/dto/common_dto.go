package dto

import "github.com/roadwatch/roadwatch-backend/internal/storage"

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string               `json:"status"`
	Timestamp string               `json:"timestamp"`
	Store     storage.Capabilities `json:"store"`
	DB        string               `json:"db,omitempty"`
}

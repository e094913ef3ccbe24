package dto

import (
	"github.com/google/uuid"
	"github.com/roadwatch/roadwatch-backend/internal/models"
)

type CreateReportRequest struct {
	Type        string             `json:"type"`
	Description string             `json:"description"`
	Location    models.Location    `json:"location"`
	Photos      []string           `json:"photos"`
	Priority    string             `json:"priority"`
	ReportedBy  string             `json:"reportedBy"`
	AIAnalysis  *models.AIAnalysis `json:"aiAnalysis"`
}

// UpdateReportRequest is the allow-list of patchable report fields.
// Handlers decode it with DisallowUnknownFields so attempts to mutate
// immutable fields (type, reportedAt, aiAnalysis, ...) fail with 400.
type UpdateReportRequest struct {
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	AssignedTo  *uuid.UUID `json:"assignedTo"`
	AfterPhotos *[]string  `json:"afterPhotos"`
}

type ReportStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	InProgress     int `json:"inProgress"`
	Reported       int `json:"reported"`
	HighPriority   int `json:"highPriority"`
	MediumPriority int `json:"mediumPriority"`
	LowPriority    int `json:"lowPriority"`
}

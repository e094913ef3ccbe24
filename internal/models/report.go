package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Damage types accepted for a report.
const (
	DamagePothole     = "pothole"
	DamageCrack       = "crack"
	DamageTreeFall    = "tree_fall"
	DamageDebris      = "debris"
	DamageFloodDamage = "flood_damage"
	DamageOther       = "other"
)

// Report status pipeline.
const (
	StatusReported   = "reported"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Report priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Location is the where of a report. Coordinates are optional (0,0 when
// the reporter denied geolocation); the street address is required.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

// AIAnalysis is the classification payload attached once at creation and
// never recomputed.
type AIAnalysis struct {
	DetectedDamage        []string `json:"detectedDamage"`
	Confidence            float64  `json:"confidence"`
	RecommendedDepartment string   `json:"recommendedDepartment"`
}

// Report is a citizen-filed road-damage incident.
type Report struct {
	ID           uuid.UUID                       `gorm:"type:uuid;primaryKey" json:"id"`
	Type         string                          `gorm:"size:30;not null;index" json:"type"`
	Description  string                          `gorm:"type:text;not null" json:"description"`
	Location     datatypes.JSONType[Location]    `gorm:"type:jsonb" json:"location"`
	Photos       datatypes.JSONSlice[string]     `gorm:"type:jsonb" json:"photos"`
	BeforePhotos datatypes.JSONSlice[string]     `gorm:"type:jsonb" json:"beforePhotos"`
	AfterPhotos  datatypes.JSONSlice[string]     `gorm:"type:jsonb" json:"afterPhotos,omitempty"`
	Priority     string                          `gorm:"size:10;not null;default:'medium';index" json:"priority"`
	Status       string                          `gorm:"size:20;not null;default:'reported';index" json:"status"`
	ReportedBy   string                          `gorm:"size:255" json:"reportedBy"`
	ReportedAt   time.Time                       `gorm:"not null;index" json:"reportedAt"`
	AssignedTo   *uuid.UUID                      `gorm:"type:uuid;index" json:"assignedTo,omitempty"`
	CompletedAt  *time.Time                      `json:"completedAt,omitempty"`
	AIAnalysis   *datatypes.JSONType[AIAnalysis] `gorm:"type:jsonb" json:"aiAnalysis,omitempty"`
}

// ValidDamageType reports whether t is one of the accepted damage types.
func ValidDamageType(t string) bool {
	switch t {
	case DamagePothole, DamageCrack, DamageTreeFall, DamageDebris, DamageFloodDamage, DamageOther:
		return true
	}
	return false
}

// ValidPriority reports whether p is one of the accepted priorities.
func ValidPriority(p string) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the pipeline statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusReported, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Package storage provides the key-addressed record store behind the
// report and volunteer services. Three drivers exist: postgres (GORM),
// file (JSON files on disk), and memory. All of them guarantee
// insertion-order listing; ordering transforms are a caller concern.
package storage

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/roadwatch/roadwatch-backend/internal/models"
	"gorm.io/datatypes"
)

var (
	// ErrNotFound is returned when the given id has no record.
	ErrNotFound = errors.New("record not found")
	// ErrUnavailable is returned when the backing medium cannot be opened.
	ErrUnavailable = errors.New("store unavailable")
)

// Capabilities describes what the active store actually provides, so
// degraded deployments are visible instead of silent.
type Capabilities struct {
	Driver  string `json:"driver"`
	Durable bool   `json:"durable"`
}

// ReportPatch is a partial update for a report. Nil fields are left
// untouched. Only fields the service layer allow-lists appear here;
// immutable fields (id, type, reportedAt, aiAnalysis) have no handle.
type ReportPatch struct {
	Status      *string
	Priority    *string
	AssignedTo  *uuid.UUID
	AfterPhotos *datatypes.JSONSlice[string]
	CompletedAt *time.Time
}

// VolunteerPatch is a partial update for a volunteer. CompletedTasksDelta
// is applied as an increment, not an absolute value, so counter bumps
// compose with concurrent profile edits.
type VolunteerPatch struct {
	Name                *string
	Phone               *string
	Department          *string
	IsActive            *bool
	CompletedTasksDelta int
}

// ReportStore is the persistence contract for the reports collection.
type ReportStore interface {
	List() ([]models.Report, error)
	GetByID(id uuid.UUID) (*models.Report, error)
	Insert(r *models.Report) error
	Update(id uuid.UUID, patch ReportPatch) (*models.Report, error)
}

// VolunteerStore is the persistence contract for the volunteers collection.
type VolunteerStore interface {
	List() ([]models.Volunteer, error)
	GetByID(id uuid.UUID) (*models.Volunteer, error)
	// FindByEmail uses case-sensitive equality. ErrNotFound on miss.
	FindByEmail(email string) (*models.Volunteer, error)
	Insert(v *models.Volunteer) error
	Update(id uuid.UUID, patch VolunteerPatch) (*models.Volunteer, error)
	Delete(id uuid.UUID) error
}

// Store bundles both collections with the capability flag of the
// backing medium.
type Store interface {
	Reports() ReportStore
	Volunteers() VolunteerStore
	Capabilities() Capabilities
}

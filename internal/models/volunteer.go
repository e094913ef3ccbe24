package models

import (
	"time"

	"github.com/google/uuid"
)

// Volunteer is a registered repair volunteer. The password hash is never
// serialized in API responses.
type Volunteer struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Email          string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password       string    `gorm:"not null" json:"-"`
	Phone          string    `gorm:"size:50" json:"phone"`
	Department     string    `gorm:"size:100" json:"department"`
	IsActive       bool      `gorm:"not null;default:true" json:"isActive"`
	CompletedTasks int       `gorm:"not null;default:0" json:"completedTasks"`
	CreatedAt      time.Time `json:"createdAt"`
}

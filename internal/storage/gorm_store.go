package storage

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/roadwatch/roadwatch-backend/internal/models"
	"gorm.io/gorm"
)

// GormStore backs both collections with PostgreSQL through GORM.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Reports() ReportStore       { return &gormReportStore{db: s.db} }
func (s *GormStore) Volunteers() VolunteerStore { return &gormVolunteerStore{db: s.db} }

func (s *GormStore) Capabilities() Capabilities {
	return Capabilities{Driver: "postgres", Durable: true}
}

type gormReportStore struct {
	db *gorm.DB
}

func (s *gormReportStore) List() ([]models.Report, error) {
	var reports []models.Report
	if err := s.db.Order("reported_at ASC").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

func (s *gormReportStore) GetByID(id uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (s *gormReportStore) Insert(r *models.Report) error {
	if err := s.db.Create(r).Error; err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

func (s *gormReportStore) Update(id uuid.UUID, patch ReportPatch) (*models.Report, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.Priority != nil {
		updates["priority"] = *patch.Priority
	}
	if patch.AssignedTo != nil {
		updates["assigned_to"] = *patch.AssignedTo
	}
	if patch.AfterPhotos != nil {
		updates["after_photos"] = *patch.AfterPhotos
	}
	if patch.CompletedAt != nil {
		updates["completed_at"] = *patch.CompletedAt
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.Report{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update report: %w", err)
		}
	}
	return s.GetByID(id)
}

type gormVolunteerStore struct {
	db *gorm.DB
}

func (s *gormVolunteerStore) List() ([]models.Volunteer, error) {
	var volunteers []models.Volunteer
	if err := s.db.Order("created_at ASC").Find(&volunteers).Error; err != nil {
		return nil, fmt.Errorf("failed to list volunteers: %w", err)
	}
	return volunteers, nil
}

func (s *gormVolunteerStore) GetByID(id uuid.UUID) (*models.Volunteer, error) {
	var v models.Volunteer
	if err := s.db.First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (s *gormVolunteerStore) FindByEmail(email string) (*models.Volunteer, error) {
	var v models.Volunteer
	if err := s.db.Where("email = ?", email).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (s *gormVolunteerStore) Insert(v *models.Volunteer) error {
	if err := s.db.Create(v).Error; err != nil {
		return fmt.Errorf("failed to insert volunteer: %w", err)
	}
	return nil
}

func (s *gormVolunteerStore) Update(id uuid.UUID, patch VolunteerPatch) (*models.Volunteer, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.Department != nil {
		updates["department"] = *patch.Department
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}
	if patch.CompletedTasksDelta != 0 {
		updates["completed_tasks"] = gorm.Expr("completed_tasks + ?", patch.CompletedTasksDelta)
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.Volunteer{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update volunteer: %w", err)
		}
	}
	return s.GetByID(id)
}

func (s *gormVolunteerStore) Delete(id uuid.UUID) error {
	result := s.db.Where("id = ?", id).Delete(&models.Volunteer{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete volunteer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/roadwatch/roadwatch-backend/internal/config"
	"github.com/roadwatch/roadwatch-backend/internal/dto"
	"github.com/roadwatch/roadwatch-backend/internal/models"
	"github.com/roadwatch/roadwatch-backend/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

type VolunteerService struct {
	store storage.VolunteerStore
	cfg   *config.Config
}

func NewVolunteerService(store storage.Store, cfg *config.Config) *VolunteerService {
	return &VolunteerService{store: store.Volunteers(), cfg: cfg}
}

func (s *VolunteerService) List() ([]models.Volunteer, error) {
	return s.store.List()
}

func (s *VolunteerService) Signup(req *dto.AuthRequest) (*dto.AuthResponse, error) {
	if strings.TrimSpace(req.Email) == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	// Case-sensitive equality, matching the storage contract.
	if _, err := s.store.FindByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	department := req.Department
	if department == "" {
		department = "General"
	}

	volunteer := &models.Volunteer{
		ID:             uuid.New(),
		Name:           req.Name,
		Email:          req.Email,
		Password:       string(hash),
		Phone:          req.Phone,
		Department:     department,
		IsActive:       true,
		CompletedTasks: 0,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.store.Insert(volunteer); err != nil {
		return nil, err
	}

	slog.Info("volunteer signed up", "volunteer_id", volunteer.ID.String(), "department", volunteer.Department)
	return s.sessionResponse(volunteer)
}

func (s *VolunteerService) Login(req *dto.AuthRequest) (*dto.AuthResponse, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	volunteer, err := s.store.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrVolunteerNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(volunteer.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	slog.Info("volunteer logged in", "volunteer_id", volunteer.ID.String())
	return s.sessionResponse(volunteer)
}

func (s *VolunteerService) GetByID(id uuid.UUID) (*models.Volunteer, error) {
	volunteer, err := s.store.GetByID(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrVolunteerNotFound
		}
		return nil, err
	}
	return volunteer, nil
}

func (s *VolunteerService) Update(id uuid.UUID, req *dto.UpdateVolunteerRequest) (*models.Volunteer, error) {
	patch := storage.VolunteerPatch{
		Name:       req.Name,
		Phone:      req.Phone,
		Department: req.Department,
		IsActive:   req.IsActive,
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}

	volunteer, err := s.store.Update(id, patch)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrVolunteerNotFound
		}
		return nil, err
	}
	return volunteer, nil
}

func (s *VolunteerService) Delete(id uuid.UUID) error {
	if err := s.store.Delete(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrVolunteerNotFound
		}
		return err
	}
	slog.Info("volunteer deleted", "volunteer_id", id.String())
	return nil
}

// sessionResponse wraps the volunteer view with a signed session token.
// There is no server-side session registry; logout is a client-side
// discard of the token.
func (s *VolunteerService) sessionResponse(volunteer *models.Volunteer) (*dto.AuthResponse, error) {
	token, err := s.generateSessionToken(volunteer)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, Volunteer: *volunteer}, nil
}

func (s *VolunteerService) generateSessionToken(volunteer *models.Volunteer) (string, error) {
	claims := jwt.MapClaims{
		"sub":        volunteer.ID.String(),
		"email":      volunteer.Email,
		"department": volunteer.Department,
		"iat":        time.Now().Unix(),
		"exp":        time.Now().Add(s.cfg.JWTSessionExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

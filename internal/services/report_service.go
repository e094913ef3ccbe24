package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/roadwatch/roadwatch-backend/internal/classify"
	"github.com/roadwatch/roadwatch-backend/internal/dto"
	"github.com/roadwatch/roadwatch-backend/internal/models"
	"github.com/roadwatch/roadwatch-backend/internal/storage"
	"gorm.io/datatypes"
)

type ReportService struct {
	reports    storage.ReportStore
	volunteers storage.VolunteerStore
	classifier classify.Classifier
	filter     *ContentFilter
}

func NewReportService(store storage.Store, classifier classify.Classifier, filter *ContentFilter) *ReportService {
	return &ReportService{
		reports:    store.Reports(),
		volunteers: store.Volunteers(),
		classifier: classifier,
		filter:     filter,
	}
}

func (s *ReportService) List() ([]models.Report, error) {
	return s.reports.List()
}

func (s *ReportService) Create(req *dto.CreateReportRequest) (*models.Report, error) {
	if strings.TrimSpace(req.Type) == "" {
		return nil, fmt.Errorf("%w: type is required", ErrValidation)
	}
	if !models.ValidDamageType(req.Type) {
		return nil, fmt.Errorf("%w: unknown damage type %q", ErrValidation, req.Type)
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if strings.TrimSpace(req.Location.Address) == "" {
		return nil, fmt.Errorf("%w: location address is required", ErrValidation)
	}
	if req.Priority != "" && !models.ValidPriority(req.Priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, req.Priority)
	}
	if ok, reason := s.filter.Check(req.Description); !ok {
		return nil, fmt.Errorf("%w: %s", ErrValidation, s.filter.RejectionMessage(reason))
	}

	analysis, classifiedPriority := s.resolveAnalysis(req)

	priority := req.Priority
	if priority == "" {
		priority = classifiedPriority
	}
	if priority == "" {
		priority = models.PriorityMedium
	}

	reportedBy := req.ReportedBy
	if reportedBy == "" {
		reportedBy = "Anonymous"
	}

	photos := req.Photos
	if photos == nil {
		photos = []string{}
	}

	analysisCol := datatypes.NewJSONType(*analysis)
	report := &models.Report{
		ID:           uuid.New(),
		Type:         req.Type,
		Description:  req.Description,
		Location:     datatypes.NewJSONType(req.Location),
		Photos:       datatypes.JSONSlice[string](photos),
		BeforePhotos: datatypes.JSONSlice[string](photos),
		Priority:     priority,
		Status:       models.StatusReported,
		ReportedBy:   reportedBy,
		ReportedAt:   time.Now().UTC(),
		AIAnalysis:   &analysisCol,
	}

	if err := s.reports.Insert(report); err != nil {
		return nil, err
	}

	slog.Info("report created", "report_id", report.ID.String(), "type", report.Type, "priority", report.Priority)
	return report, nil
}

// resolveAnalysis prefers a caller-supplied payload; otherwise it asks
// the classifier, falling back to a default payload on failure so a dead
// classifier never blocks report intake.
func (s *ReportService) resolveAnalysis(req *dto.CreateReportRequest) (*models.AIAnalysis, string) {
	if req.AIAnalysis != nil {
		return req.AIAnalysis, ""
	}

	result, err := s.classifier.Classify(req.Type)
	if err != nil {
		slog.Error("classification failed, using default analysis", "type", req.Type, "error", err)
		return &models.AIAnalysis{
			DetectedDamage:        []string{req.Type},
			Confidence:            0.85,
			RecommendedDepartment: "Public Works",
		}, ""
	}

	return &models.AIAnalysis{
		DetectedDamage:        result.DetectedDamage,
		Confidence:            result.Confidence,
		RecommendedDepartment: result.RecommendedDepartment,
	}, result.Priority
}

func (s *ReportService) Patch(id uuid.UUID, req *dto.UpdateReportRequest) (*models.Report, error) {
	existing, err := s.reports.GetByID(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	patch := storage.ReportPatch{}

	if req.Priority != nil {
		if !models.ValidPriority(*req.Priority) {
			return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, *req.Priority)
		}
		patch.Priority = req.Priority
	}
	if req.AssignedTo != nil {
		patch.AssignedTo = req.AssignedTo
	}
	if req.AfterPhotos != nil {
		photos := datatypes.JSONSlice[string](*req.AfterPhotos)
		patch.AfterPhotos = &photos
	}

	completedNow := false
	if req.Status != nil {
		if err := s.checkTransition(existing, req, &patch, &completedNow); err != nil {
			return nil, err
		}
	}

	updated, err := s.reports.Update(id, patch)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	if completedNow && updated.AssignedTo != nil {
		s.creditCompletion(*updated.AssignedTo, updated.ID)
	}

	return updated, nil
}

// checkTransition enforces the forward-only status machine:
// reported -> in_progress -> completed (reported -> completed allowed,
// same-state patches idempotent, no way out of completed). Completion
// stamps completedAt and requires after photos.
func (s *ReportService) checkTransition(existing *models.Report, req *dto.UpdateReportRequest, patch *storage.ReportPatch, completedNow *bool) error {
	next := *req.Status
	if !models.ValidStatus(next) {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, next)
	}

	current := existing.Status
	if current == models.StatusCompleted && next != models.StatusCompleted {
		return fmt.Errorf("%w: completed reports cannot move back to %q", ErrValidation, next)
	}
	if current == models.StatusInProgress && next == models.StatusReported {
		return fmt.Errorf("%w: reports in progress cannot move back to %q", ErrValidation, next)
	}

	if next == models.StatusCompleted {
		hasAfterPhotos := (req.AfterPhotos != nil && len(*req.AfterPhotos) > 0) || len(existing.AfterPhotos) > 0
		if !hasAfterPhotos {
			return fmt.Errorf("%w: completing a report requires afterPhotos", ErrValidation)
		}
		now := time.Now().UTC()
		patch.CompletedAt = &now
		*completedNow = current != models.StatusCompleted
	}

	patch.Status = req.Status
	return nil
}

// creditCompletion bumps the assigned volunteer's task counter.
// Best-effort: not atomic with the report update, and a missing
// volunteer (weak reference) is logged rather than surfaced.
func (s *ReportService) creditCompletion(volunteerID, reportID uuid.UUID) {
	if _, err := s.volunteers.Update(volunteerID, storage.VolunteerPatch{CompletedTasksDelta: 1}); err != nil {
		slog.Error("failed to credit completed task", "volunteer_id", volunteerID.String(), "report_id", reportID.String(), "error", err)
	}
}

func (s *ReportService) Stats() (*dto.ReportStats, error) {
	reports, err := s.reports.List()
	if err != nil {
		return nil, err
	}

	stats := &dto.ReportStats{Total: len(reports)}
	for i := range reports {
		switch reports[i].Status {
		case models.StatusCompleted:
			stats.Completed++
		case models.StatusInProgress:
			stats.InProgress++
		case models.StatusReported:
			stats.Reported++
		}
		switch reports[i].Priority {
		case models.PriorityHigh:
			stats.HighPriority++
		case models.PriorityMedium:
			stats.MediumPriority++
		case models.PriorityLow:
			stats.LowPriority++
		}
	}
	return stats, nil
}

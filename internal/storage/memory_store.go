package storage

import (
	"sync"

	"github.com/google/uuid"
	"github.com/roadwatch/roadwatch-backend/internal/models"
)

// MemoryStore keeps both collections in process memory. Listing preserves
// insertion order. Writes are last-write-wins under the single-writer
// assumption; the mutex only guards against data races, not lost updates.
type MemoryStore struct {
	mu         sync.RWMutex
	reports    []models.Report
	volunteers []models.Volunteer
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Reports() ReportStore       { return &memReportStore{s: s} }
func (s *MemoryStore) Volunteers() VolunteerStore { return &memVolunteerStore{s: s} }

func (s *MemoryStore) Capabilities() Capabilities {
	return Capabilities{Driver: "memory", Durable: false}
}

func applyReportPatch(r *models.Report, patch ReportPatch) {
	if patch.Status != nil {
		r.Status = *patch.Status
	}
	if patch.Priority != nil {
		r.Priority = *patch.Priority
	}
	if patch.AssignedTo != nil {
		id := *patch.AssignedTo
		r.AssignedTo = &id
	}
	if patch.AfterPhotos != nil {
		r.AfterPhotos = *patch.AfterPhotos
	}
	if patch.CompletedAt != nil {
		t := *patch.CompletedAt
		r.CompletedAt = &t
	}
}

func applyVolunteerPatch(v *models.Volunteer, patch VolunteerPatch) {
	if patch.Name != nil {
		v.Name = *patch.Name
	}
	if patch.Phone != nil {
		v.Phone = *patch.Phone
	}
	if patch.Department != nil {
		v.Department = *patch.Department
	}
	if patch.IsActive != nil {
		v.IsActive = *patch.IsActive
	}
	v.CompletedTasks += patch.CompletedTasksDelta
}

type memReportStore struct {
	s *MemoryStore
}

func (m *memReportStore) List() ([]models.Report, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	out := make([]models.Report, len(m.s.reports))
	copy(out, m.s.reports)
	return out, nil
}

func (m *memReportStore) GetByID(id uuid.UUID) (*models.Report, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for i := range m.s.reports {
		if m.s.reports[i].ID == id {
			r := m.s.reports[i]
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memReportStore) Insert(r *models.Report) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.reports = append(m.s.reports, *r)
	return nil
}

func (m *memReportStore) Update(id uuid.UUID, patch ReportPatch) (*models.Report, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i := range m.s.reports {
		if m.s.reports[i].ID == id {
			applyReportPatch(&m.s.reports[i], patch)
			r := m.s.reports[i]
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

type memVolunteerStore struct {
	s *MemoryStore
}

func (m *memVolunteerStore) List() ([]models.Volunteer, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	out := make([]models.Volunteer, len(m.s.volunteers))
	copy(out, m.s.volunteers)
	return out, nil
}

func (m *memVolunteerStore) GetByID(id uuid.UUID) (*models.Volunteer, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for i := range m.s.volunteers {
		if m.s.volunteers[i].ID == id {
			v := m.s.volunteers[i]
			return &v, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memVolunteerStore) FindByEmail(email string) (*models.Volunteer, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for i := range m.s.volunteers {
		if m.s.volunteers[i].Email == email {
			v := m.s.volunteers[i]
			return &v, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memVolunteerStore) Insert(v *models.Volunteer) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.volunteers = append(m.s.volunteers, *v)
	return nil
}

func (m *memVolunteerStore) Update(id uuid.UUID, patch VolunteerPatch) (*models.Volunteer, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i := range m.s.volunteers {
		if m.s.volunteers[i].ID == id {
			applyVolunteerPatch(&m.s.volunteers[i], patch)
			v := m.s.volunteers[i]
			return &v, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memVolunteerStore) Delete(id uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i := range m.s.volunteers {
		if m.s.volunteers[i].ID == id {
			m.s.volunteers = append(m.s.volunteers[:i], m.s.volunteers[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/roadwatch/roadwatch-backend/internal/models"
)

const (
	reportsFile    = "reports.json"
	volunteersFile = "volunteers.json"
)

// FileStore persists both collections as JSON files under a data
// directory, rewriting the affected file after every mutation. A failed
// write does not crash the server: the store keeps serving from memory
// and flips its durable capability flag so /api/health exposes the
// degradation instead of hiding it.
type FileStore struct {
	dir     string
	mem     *MemoryStore
	writeMu sync.Mutex
	durable atomic.Bool
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: cannot create data dir %s: %v", ErrUnavailable, dir, err)
	}

	s := &FileStore{dir: dir, mem: NewMemoryStore()}
	s.durable.Store(true)

	if err := loadJSON(filepath.Join(dir, reportsFile), &s.mem.reports); err != nil {
		return nil, fmt.Errorf("%w: cannot load reports: %v", ErrUnavailable, err)
	}
	if err := loadJSON(filepath.Join(dir, volunteersFile), &s.mem.volunteers); err != nil {
		return nil, fmt.Errorf("%w: cannot load volunteers: %v", ErrUnavailable, err)
	}
	return s, nil
}

func loadJSON(path string, dest interface{}) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (s *FileStore) Reports() ReportStore       { return &fileReportStore{s: s} }
func (s *FileStore) Volunteers() VolunteerStore { return &fileVolunteerStore{s: s} }

func (s *FileStore) Capabilities() Capabilities {
	return Capabilities{Driver: "file", Durable: s.durable.Load()}
}

// persist rewrites one collection file. Write failures are logged once
// per call and downgrade the durable flag.
func (s *FileStore) persist(name string, value interface{}) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	data, err := json.MarshalIndent(value, "", "  ")
	if err == nil {
		path := filepath.Join(s.dir, name)
		tmp := path + ".tmp"
		if err = os.WriteFile(tmp, data, 0o644); err == nil {
			err = os.Rename(tmp, path)
		}
	}
	if err != nil {
		if s.durable.CompareAndSwap(true, false) {
			slog.Error("file store degraded to memory-only", "file", name, "error", err)
		}
		return
	}
	s.durable.Store(true)
}

func (s *FileStore) persistReports() {
	s.mem.mu.RLock()
	snapshot := make([]models.Report, len(s.mem.reports))
	copy(snapshot, s.mem.reports)
	s.mem.mu.RUnlock()
	s.persist(reportsFile, snapshot)
}

func (s *FileStore) persistVolunteers() {
	s.mem.mu.RLock()
	snapshot := make([]models.Volunteer, len(s.mem.volunteers))
	copy(snapshot, s.mem.volunteers)
	s.mem.mu.RUnlock()
	s.persist(volunteersFile, snapshot)
}

type fileReportStore struct {
	s *FileStore
}

func (f *fileReportStore) List() ([]models.Report, error) {
	return f.s.mem.Reports().List()
}

func (f *fileReportStore) GetByID(id uuid.UUID) (*models.Report, error) {
	return f.s.mem.Reports().GetByID(id)
}

func (f *fileReportStore) Insert(r *models.Report) error {
	if err := f.s.mem.Reports().Insert(r); err != nil {
		return err
	}
	f.s.persistReports()
	return nil
}

func (f *fileReportStore) Update(id uuid.UUID, patch ReportPatch) (*models.Report, error) {
	r, err := f.s.mem.Reports().Update(id, patch)
	if err != nil {
		return nil, err
	}
	f.s.persistReports()
	return r, nil
}

type fileVolunteerStore struct {
	s *FileStore
}

func (f *fileVolunteerStore) List() ([]models.Volunteer, error) {
	return f.s.mem.Volunteers().List()
}

func (f *fileVolunteerStore) GetByID(id uuid.UUID) (*models.Volunteer, error) {
	return f.s.mem.Volunteers().GetByID(id)
}

func (f *fileVolunteerStore) FindByEmail(email string) (*models.Volunteer, error) {
	return f.s.mem.Volunteers().FindByEmail(email)
}

func (f *fileVolunteerStore) Insert(v *models.Volunteer) error {
	if err := f.s.mem.Volunteers().Insert(v); err != nil {
		return err
	}
	f.s.persistVolunteers()
	return nil
}

func (f *fileVolunteerStore) Update(id uuid.UUID, patch VolunteerPatch) (*models.Volunteer, error) {
	v, err := f.s.mem.Volunteers().Update(id, patch)
	if err != nil {
		return nil, err
	}
	f.s.persistVolunteers()
	return v, nil
}

func (f *fileVolunteerStore) Delete(id uuid.UUID) error {
	if err := f.s.mem.Volunteers().Delete(id); err != nil {
		return err
	}
	f.s.persistVolunteers()
	return nil
}

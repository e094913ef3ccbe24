package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/roadwatch/roadwatch-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTripAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFileStore(dir)
	require.NoError(t, err)

	r := newReport("persisted hole")
	require.NoError(t, store.Reports().Insert(r))
	v := newVolunteer("file@example.com")
	require.NoError(t, store.Volunteers().Insert(v))

	// Reopen from the same directory: records must survive.
	reopened, err := NewFileStore(dir)
	require.NoError(t, err)

	reports, err := reopened.Reports().List()
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, r.ID, reports[0].ID)
	assert.Equal(t, "persisted hole", reports[0].Description)
	assert.Equal(t, "Main St", reports[0].Location.Data().Address)

	got, err := reopened.Volunteers().FindByEmail("file@example.com")
	require.NoError(t, err)
	assert.Equal(t, v.ID, got.ID)
}

func TestFileStoreUpdatePersists(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFileStore(dir)
	require.NoError(t, err)

	r := newReport("update me")
	require.NoError(t, store.Reports().Insert(r))

	status := models.StatusInProgress
	_, err = store.Reports().Update(r.ID, ReportPatch{Status: &status})
	require.NoError(t, err)

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	got, err := reopened.Reports().GetByID(r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, got.Status)
}

func TestFileStoreDeletePersists(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFileStore(dir)
	require.NoError(t, err)

	v := newVolunteer("gone@example.com")
	require.NoError(t, store.Volunteers().Insert(v))
	require.NoError(t, store.Volunteers().Delete(v.ID))

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	volunteers, err := reopened.Volunteers().List()
	require.NoError(t, err)
	assert.Empty(t, volunteers)
}

func TestFileStoreCapabilities(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	caps := store.Capabilities()
	assert.Equal(t, "file", caps.Driver)
	assert.True(t, caps.Durable)
}

func TestFileStoreWritesJSONFiles(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Reports().Insert(newReport("on disk")))

	data, err := os.ReadFile(filepath.Join(dir, "reports.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "on disk")
}

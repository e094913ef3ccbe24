package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/roadwatch/roadwatch-backend/internal/classify"
	"github.com/roadwatch/roadwatch-backend/internal/config"
	"github.com/roadwatch/roadwatch-backend/internal/dto"
	"github.com/roadwatch/roadwatch-backend/internal/handlers"
	"github.com/roadwatch/roadwatch-backend/internal/models"
	"github.com/roadwatch/roadwatch-backend/internal/routes"
	"github.com/roadwatch/roadwatch-backend/internal/services"
	"github.com/roadwatch/roadwatch-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:        "test-secret-do-not-use-in-prod",
		JWTSessionExpiry: time.Hour,
		CORSOrigins:      "*",
	}
	store := storage.NewMemoryStore()

	reportService := services.NewReportService(store, classify.NewStatic(0), services.NewContentFilter())
	volunteerService := services.NewVolunteerService(store, cfg)

	app := fiber.New()
	routes.Setup(app, cfg, store,
		handlers.NewReportHandler(reportService),
		handlers.NewVolunteerHandler(volunteerService),
		handlers.NewHealthHandler(store))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, payload
}

func signupVolunteer(t *testing.T, app *fiber.App, email string) dto.AuthResponse {
	t.Helper()
	resp, body := doJSON(t, app, "POST", "/api/volunteers", "", fiber.Map{
		"action":   "signup",
		"name":     "Jane Doe",
		"email":    email,
		"password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var auth dto.AuthResponse
	require.NoError(t, json.Unmarshal(body, &auth))
	return auth
}

func createReport(t *testing.T, app *fiber.App) models.Report {
	t.Helper()
	resp, body := doJSON(t, app, "POST", "/api/reports", "", fiber.Map{
		"type":        "pothole",
		"description": "large hole",
		"location":    fiber.Map{"address": "Main St"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var report models.Report
	require.NoError(t, json.Unmarshal(body, &report))
	return report
}

func TestCreateAndListReports(t *testing.T) {
	app := newTestApp(t)

	report := createReport(t, app)
	assert.Equal(t, "reported", report.Status)
	assert.Nil(t, report.CompletedAt)
	require.NotNil(t, report.AIAnalysis)
	assert.Equal(t, "Public Works Department", report.AIAnalysis.Data().RecommendedDepartment)

	resp, body := doJSON(t, app, "GET", "/api/reports", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var reports []models.Report
	require.NoError(t, json.Unmarshal(body, &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, report.ID, reports[0].ID)
}

func TestCreateReportMissingDescription(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, "POST", "/api/reports", "", fiber.Map{
		"type":     "pothole",
		"location": fiber.Map{"address": "Main St"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPatchReportRequiresToken(t *testing.T) {
	app := newTestApp(t)
	report := createReport(t, app)

	resp, _ := doJSON(t, app, "PATCH", "/api/reports/"+report.ID.String(), "", fiber.Map{
		"status": "in_progress",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPatchReportLifecycle(t *testing.T) {
	app := newTestApp(t)
	auth := signupVolunteer(t, app, "fixer@example.com")
	report := createReport(t, app)

	resp, body := doJSON(t, app, "PATCH", "/api/reports/"+report.ID.String(), auth.Token, fiber.Map{
		"status":     "in_progress",
		"assignedTo": auth.Volunteer.ID.String(),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = doJSON(t, app, "PATCH", "/api/reports/"+report.ID.String(), auth.Token, fiber.Map{
		"status":      "completed",
		"afterPhotos": []string{"fixed.jpg"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var updated models.Report
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "completed", updated.Status)
	require.NotNil(t, updated.CompletedAt)

	// Completing an assigned report bumps the volunteer's counter.
	resp, body = doJSON(t, app, "GET", "/api/volunteers", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var volunteers []models.Volunteer
	require.NoError(t, json.Unmarshal(body, &volunteers))
	require.Len(t, volunteers, 1)
	assert.Equal(t, 1, volunteers[0].CompletedTasks)
}

func TestPatchReportRejectsImmutableFields(t *testing.T) {
	app := newTestApp(t)
	auth := signupVolunteer(t, app, "fixer@example.com")
	report := createReport(t, app)

	resp, _ := doJSON(t, app, "PATCH", "/api/reports/"+report.ID.String(), auth.Token, fiber.Map{
		"type": "crack",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, "PATCH", "/api/reports/"+report.ID.String(), auth.Token, fiber.Map{
		"reportedAt": "2020-01-01T00:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPatchReportNotFound(t *testing.T) {
	app := newTestApp(t)
	auth := signupVolunteer(t, app, "fixer@example.com")

	resp, _ := doJSON(t, app, "PATCH", "/api/reports/00000000-0000-0000-0000-000000000001", auth.Token, fiber.Map{
		"status": "in_progress",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInactiveVolunteerCannotPatch(t *testing.T) {
	app := newTestApp(t)
	auth := signupVolunteer(t, app, "benched@example.com")
	report := createReport(t, app)

	resp, _ := doJSON(t, app, "PATCH", "/api/volunteers/"+auth.Volunteer.ID.String(), auth.Token, fiber.Map{
		"isActive": false,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, "PATCH", "/api/reports/"+report.ID.String(), auth.Token, fiber.Map{
		"status": "in_progress",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestReportStatsEndpoint(t *testing.T) {
	app := newTestApp(t)
	createReport(t, app)
	createReport(t, app)

	resp, body := doJSON(t, app, "GET", "/api/reports/stats", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats dto.ReportStats
	require.NoError(t, json.Unmarshal(body, &stats))
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 2, stats.Reported)
}

func TestVolunteerAuthStatuses(t *testing.T) {
	app := newTestApp(t)
	signupVolunteer(t, app, "jane@example.com")

	// Duplicate signup conflicts.
	resp, _ := doJSON(t, app, "POST", "/api/volunteers", "", fiber.Map{
		"action": "signup", "name": "Jane", "email": "jane@example.com", "password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Wrong password is unauthorized.
	resp, _ = doJSON(t, app, "POST", "/api/volunteers", "", fiber.Map{
		"action": "login", "email": "jane@example.com", "password": "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Unknown email is not found.
	resp, _ = doJSON(t, app, "POST", "/api/volunteers", "", fiber.Map{
		"action": "login", "email": "ghost@example.com", "password": "whatever1",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Unknown action is a validation failure.
	resp, _ = doJSON(t, app, "POST", "/api/volunteers", "", fiber.Map{
		"action": "register", "email": "jane@example.com", "password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListVolunteersOmitsPassword(t *testing.T) {
	app := newTestApp(t)
	signupVolunteer(t, app, "jane@example.com")

	resp, body := doJSON(t, app, "GET", "/api/volunteers", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, string(body), "password")
	assert.NotContains(t, string(body), "hunter2hunter2")
}

func TestDeleteVolunteer(t *testing.T) {
	app := newTestApp(t)
	auth := signupVolunteer(t, app, "jane@example.com")

	// Unknown id: 404, roster unchanged.
	resp, _ := doJSON(t, app, "DELETE", "/api/volunteers/00000000-0000-0000-0000-000000000001", auth.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := doJSON(t, app, "GET", "/api/volunteers", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var volunteers []models.Volunteer
	require.NoError(t, json.Unmarshal(body, &volunteers))
	assert.Len(t, volunteers, 1)

	resp, _ = doJSON(t, app, "DELETE", "/api/volunteers/"+auth.Volunteer.ID.String(), auth.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealthReportsStoreCapabilities(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, "GET", "/api/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health dto.HealthResponse
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "memory", health.Store.Driver)
	assert.False(t, health.Store.Durable)
}

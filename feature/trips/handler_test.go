package trips

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"triprecord/feature/trips/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(svc *Service) *fiber.App {
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)
	return app
}

func TestHandleReconcile(t *testing.T) {
	db := newServiceDB(t)
	seedRun(t, db)

	app := newTestApp(NewService(db, nil, "", zap.NewNop(), "Foynes"))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/trips/reconcile", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var report models.ReconcileReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, 2, report.TotalCharges)
	assert.Equal(t, 1, report.TripsUpdated)
	assert.Equal(t, 1, report.TripsCreated)
}

func TestHandleReconcile_NoDatabase(t *testing.T) {
	app := newTestApp(NewService(nil, nil, "", zap.NewNop(), ""))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/trips/reconcile", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "database connection is not configured")
}

func TestHandleAnalyze(t *testing.T) {
	db := newServiceDB(t)
	seedRun(t, db)

	app := newTestApp(NewService(db, nil, "", zap.NewNop(), "Foynes"))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/trips/reconcile/analysis", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var report models.AnalysisReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, 2, report.TotalCharges)
	assert.Equal(t, 1, report.TotalTrips)
	assert.Equal(t, 1, report.TotalOrphans)
}

func TestHandleListReports_NoStorage(t *testing.T) {
	app := newTestApp(NewService(nil, nil, "", zap.NewNop(), ""))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/trips/reconcile/reports", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

// internal/app/routes_test.go

package app_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	apppkg "mcp-airquality/internal/app"
)

// Pastikan /admin/* diproteksi (tanpa auth tidak boleh 200)
func TestAdminRoutesProtected(t *testing.T) {
	app := apppkg.New()

	// tanpa kredensial
	req := httptest.NewRequest(http.MethodGet, "/admin/reports", nil)
	rec := httptest.NewRecorder()

	app.Router.ServeHTTP(rec, req)

	if rec.Code == http.StatusOK {
		t.Fatalf("expected non-200 for protected admin route, got 200")
	}
}

// Sanity check: public endpoints tetap 200
func TestPublicRoutesHealthy(t *testing.T) {
	app := apppkg.New()

	for _, path := range []string{"/healthz", "/api/healthz", "/readyz", "/metrics", "/aq/cities", "/aq/scale"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 on %s, got %d", path, rec.Code)
		}
	}
}

// Riwayat tanpa MySQL harus balas 503, bukan 404.
func TestReportHistoryUnavailableWithoutDB(t *testing.T) {
	app := apppkg.New()

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without DB, got %d", rec.Code)
	}
}

// mcp/router_test.go

package mcp_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apppkg "mcp-airquality/internal/app"
)

// Pastikan /mcp/route menjalankan tool terdaftar bila "tool" disebut eksplisit.
// summarize_air_quality dengan readings inline tidak menyentuh jaringan/LLM
// (tanpa OPENAI_API_KEY handler jatuh ke ringkasan teks polos).
func TestMCPRouteExecutesExplicitTool(t *testing.T) {
	app := apppkg.New()
	r := app.Router

	body := map[string]any{
		"tool": "summarize_air_quality",
		"params": map[string]any{
			"readings": []map[string]any{
				{"city": "Jakarta", "slug": "jakarta", "aqi": 155, "category": "Unhealthy"},
				{"city": "Bandung", "slug": "bandung", "aqi": 42, "category": "Good"},
			},
		},
	}
	raw, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/mcp/route", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /mcp/route, got %d, body=%s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Summary string `json:"summary"`
		Source  string `json:"summary_source"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("expected JSON response, got: %s", rec.Body.String())
	}
	if resp.Summary == "" {
		t.Fatalf("expected non-empty summary, body=%s", rec.Body.String())
	}
	if resp.Source != "fallback" {
		t.Fatalf("expected fallback summary without LLM, got source=%q", resp.Source)
	}
}

// Keyword fallback: pertanyaan soal riwayat harus diarahkan ke
// get_report_history. Tanpa MySQL handler balas 503, yang membuktikan
// request sampai ke tool yang benar (bukan 404/400 dari router).
func TestMCPRouteKeywordHistory(t *testing.T) {
	app := apppkg.New()
	r := app.Router

	raw, _ := json.Marshal(map[string]any{
		"params": map[string]any{"question": "tampilkan riwayat laporan kualitas udara"},
	})

	req := httptest.NewRequest(http.MethodPost, "/mcp/route", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 (history tool without DB), got %d, body=%s", rec.Code, rec.Body.String())
	}
}

// Router harus balas JSON success=false untuk tool yang tidak terdaftar.
func TestMCPRouteUnknownTool(t *testing.T) {
	app := apppkg.New()
	r := app.Router

	raw, _ := json.Marshal(map[string]any{"tool": "no_such_tool"})

	req := httptest.NewRequest(http.MethodPost, "/mcp/route", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 envelope, got %d", rec.Code)
	}
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Success || resp.Error == "" {
		t.Fatalf("expected success=false with error, got %+v", resp)
	}
}

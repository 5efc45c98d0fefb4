// internal/handlers/http/report_sse_handler.go
// SSE: stream proses laporan (scrape -> ringkasan token per token)

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"mcp-airquality/internal/aqi"
	"mcp-airquality/internal/config"
	"mcp-airquality/internal/llm"
	"mcp-airquality/internal/services"
	"mcp-airquality/internal/util/sse"
)

// ----------------- Wiring deps -----------------
var (
	sseScraper    *aqi.Scraper
	sseSummarizer llm.Client
)

// SetReportStreamDeps dipanggil dari app.go saat startup.
func SetReportStreamDeps(s *aqi.Scraper, c llm.Client) {
	sseScraper = s
	sseSummarizer = c
}

type sseReportRequest struct {
	Cities []string `json:"cities,omitempty"`
}

// ReportSSEHandler: scrape semua kota lalu stream ringkasan sebagai SSE.
// Event: server_info -> status -> readings -> delta* -> done.
func ReportSSEHandler(w http.ResponseWriter, r *http.Request) {
	flusher := sse.PrepareSSE(w)
	if flusher == nil {
		http.Error(w, "stream unsupported", http.StatusInternalServerError)
		return
	}
	if sseScraper == nil {
		_ = sse.WriteEvent(w, flusher, "error", "scraper not configured")
		return
	}

	// Identitas server per request (untuk verifikasi biner/instance aktif)
	_ = sse.WriteEvent(w, flusher, "server_info", map[string]any{
		"build": config.BuildVersion,
		"pid":   os.Getpid(),
		"time":  time.Now().Format(time.RFC3339),
	})

	// Kota dari query (?cities=a,b) atau body POST
	var in sseReportRequest
	if v := strings.TrimSpace(r.URL.Query().Get("cities")); v != "" {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				in.Cities = append(in.Cities, s)
			}
		}
	}
	if len(in.Cities) == 0 && r.Method == http.MethodPost {
		_ = json.NewDecoder(r.Body).Decode(&in)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Minute)
	defer cancel()

	_ = sse.WriteEvent(w, flusher, "status", "fetching air quality data")
	readings := sseScraper.FetchAll(ctx, in.Cities)
	if len(readings) == 0 {
		_ = sse.WriteEvent(w, flusher, "done", map[string]any{
			"summary": aqi.NoDataSummary,
			"source":  "fallback",
		})
		return
	}
	_ = sse.WriteEvent(w, flusher, "readings", readings)

	_ = sse.WriteEvent(w, flusher, "status", "summarizing")

	// Tanpa LLM: langsung kirim fallback utuh (tidak ada token stream).
	if sseSummarizer == nil {
		_ = sse.WriteEvent(w, flusher, "done", map[string]any{
			"summary": aqi.FallbackSummary(readings),
			"source":  "fallback",
		})
		return
	}

	final, err := sseSummarizer.SummarizeStream(ctx, llm.SystemPrompt, aqi.SummaryPrompt(readings),
		func(delta string) error {
			return sse.WriteEvent(w, flusher, "delta", delta)
		})
	source := "llm"
	if err != nil || strings.TrimSpace(final) == "" {
		final = aqi.FallbackSummary(readings)
		source = "fallback"
	}

	payload := map[string]any{"summary": final, "source": source}
	if st, serr := services.ComputeAQIStats(readings); serr == nil {
		payload["stats"] = st
	}
	_ = sse.WriteEvent(w, flusher, "done", payload)
}

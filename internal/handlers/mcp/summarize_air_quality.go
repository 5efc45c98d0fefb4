// internal/handlers/mcp/summarize_air_quality.go
// MCP Tool: summarize_air_quality - ringkas pembacaan AQI via LLM
// Fallback ke laporan teks polos bila LLM tidak tersedia/gagal.

package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"mcp-airquality/internal/aqi"
	"mcp-airquality/internal/services"
)

type summarizeReq struct {
	// Readings opsional; kosong -> scrape dulu kota yang diminta.
	Readings []aqi.Reading `json:"readings,omitempty"`
	Cities   []string      `json:"cities,omitempty"`
}

type summarizeResp struct {
	Summary  string            `json:"summary"`
	Source   string            `json:"summary_source"` // "llm" | "fallback"
	Stats    services.AQIStats `json:"stats"`
	Readings []aqi.Reading     `json:"readings"`
}

func SummarizeAirQualityHandler(w http.ResponseWriter, r *http.Request) {
	var in summarizeReq
	if r.Method == http.MethodPost {
		_ = json.NewDecoder(r.Body).Decode(&in)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 90*time.Second)
	defer cancel()

	readings := in.Readings
	if len(readings) == 0 {
		if scraper == nil {
			http.Error(w, "no readings given and scraper not configured", http.StatusServiceUnavailable)
			return
		}
		readings = scraper.FetchAll(ctx, in.Cities)
	}
	if len(readings) == 0 {
		writeJSON(w, summarizeResp{Summary: aqi.NoDataSummary, Source: "fallback"})
		return
	}

	summary, source := services.Summarize(ctx, summarizer, readings)
	resp := summarizeResp{
		Summary:  summary,
		Source:   source,
		Readings: readings,
	}
	if st, err := services.ComputeAQIStats(readings); err == nil {
		resp.Stats = st
	}
	writeJSON(w, resp)
}

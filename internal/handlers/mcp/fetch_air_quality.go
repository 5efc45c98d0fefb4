// internal/handlers/mcp/fetch_air_quality.go
// MCP Tool: fetch_air_quality - scrape AQI kota Indonesia dari aqicn.org

package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"mcp-airquality/internal/aqi"
)

type fetchReq struct {
	City   string   `json:"city,omitempty"`   // satu kota (slug), e.g. "jakarta"
	Cities []string `json:"cities,omitempty"` // subset kota; kosong = 20 kota default
}

type fetchResp struct {
	Readings []aqi.Reading `json:"readings"`
	Failed   int           `json:"failed_cities"`
}

func FetchAirQualityHandler(w http.ResponseWriter, r *http.Request) {
	if scraper == nil {
		http.Error(w, "scraper not configured", http.StatusServiceUnavailable)
		return
	}

	// --- Ambil input dari query atau body ---
	in := fetchReq{
		City: strings.TrimSpace(r.URL.Query().Get("city")),
	}
	if v := strings.TrimSpace(r.URL.Query().Get("cities")); v != "" {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				in.Cities = append(in.Cities, s)
			}
		}
	}
	if r.Method == http.MethodPost && in.City == "" && len(in.Cities) == 0 {
		_ = json.NewDecoder(r.Body).Decode(&in)
		in.City = strings.TrimSpace(in.City)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	// Satu kota: error fetch dilaporkan apa adanya.
	if in.City != "" {
		reading, err := scraper.FetchCity(ctx, in.City)
		if err != nil {
			http.Error(w, "fetch error: "+err.Error(), http.StatusBadGateway)
			return
		}
		writeJSON(w, fetchResp{Readings: []aqi.Reading{reading}})
		return
	}

	slugs := in.Cities
	if len(slugs) == 0 {
		slugs = aqi.DefaultCities
	}
	readings := scraper.FetchAll(ctx, slugs)
	writeJSON(w, fetchResp{
		Readings: readings,
		Failed:   len(slugs) - len(readings),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// internal/app/routes_aqi.go
package app

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"mcp-airquality/internal/aqi"
	"mcp-airquality/pkg/aqiscale"
)

// NewAQRouter membuat sub-router chi untuk endpoint debug /aq/*.
// Dimount dari New() via mux PathPrefix, jadi path di sini full (/aq/...).
func NewAQRouter(scr *aqi.Scraper) http.Handler {
	c := chi.NewRouter()

	c.Route("/aq", func(cr chi.Router) {
		// Daftar kota yang dipantau
		cr.Get("/cities", func(w http.ResponseWriter, r *http.Request) {
			type cityInfo struct {
				Slug string `json:"slug"`
				Name string `json:"name"`
			}
			out := make([]cityInfo, 0, len(aqi.DefaultCities))
			for _, slug := range aqi.DefaultCities {
				out = append(out, cityInfo{Slug: slug, Name: aqi.DisplayName(slug)})
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"cities": out, "count": len(out)})
		})

		// Tabel kategori AQI (referensi untuk UI)
		cr.Get("/scale", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"bands": aqiscale.Bands})
		})

		// Scrape satu kota langsung (debug manual di browser)
		cr.Get("/city/{slug}", func(w http.ResponseWriter, r *http.Request) {
			slug := chi.URLParam(r, "slug")
			ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
			defer cancel()

			reading, err := scr.FetchCity(ctx, slug)
			if err != nil {
				http.Error(w, "fetch "+slug+": "+err.Error(), http.StatusBadGateway)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(reading)
		})
	})

	return c
}

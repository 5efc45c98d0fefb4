// internal/handlers/mcp/publish_report.go
// MCP Tool: publish_report - pipeline penuh scrape -> ringkas -> Slack -> simpan

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"mcp-airquality/internal/services"
)

type publishReq struct {
	Cities    []string `json:"cities,omitempty"`
	ChannelID string   `json:"channel_id,omitempty"`
	DryRun    bool     `json:"dry_run,omitempty"`
}

func PublishReportHandler(w http.ResponseWriter, r *http.Request) {
	if publisher == nil {
		http.Error(w, "publisher not configured", http.StatusServiceUnavailable)
		return
	}

	var in publishReq
	if r.Method == http.MethodPost {
		_ = json.NewDecoder(r.Body).Decode(&in)
	}

	// Scrape 20 kota + LLM bisa lambat; beri ruang.
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Minute)
	defer cancel()

	res, err := publisher.Run(ctx, services.PublishOptions{
		Cities:    in.Cities,
		ChannelID: in.ChannelID,
		DryRun:    in.DryRun,
	})
	if err != nil {
		if errors.Is(err, services.ErrNoData) {
			// Bukan error server: semua stasiun gagal/offline.
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(w).Encode(res)
			return
		}
		http.Error(w, "publish error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, res)
}

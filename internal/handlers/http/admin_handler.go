// internal/handlers/http/admin_handler.go
package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	mysqlrepo "mcp-airquality/internal/repositories/mysql"
	"mcp-airquality/internal/services"
	"mcp-airquality/internal/util"
)

// ----------------- Wiring deps -----------------
var (
	adminRepo      *mysqlrepo.ReportRepo
	adminPublisher *services.ReportPublisher
)

// SetAdminDeps dipanggil dari app.go saat startup.
func SetAdminDeps(repo *mysqlrepo.ReportRepo, pub *services.ReportPublisher) {
	adminRepo = repo
	adminPublisher = pub
}

// AdminListReports: riwayat laporan untuk dashboard admin.
func AdminListReports(w http.ResponseWriter, r *http.Request) {
	if adminRepo == nil {
		http.Error(w, "report repo not configured", http.StatusServiceUnavailable)
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, _ := strconv.Atoi(v); n > 0 {
			limit = n
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 6*time.Second)
	defer cancel()

	rows, err := adminRepo.List(ctx, mysqlrepo.ReportFilter{Limit: limit})
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"reports": rows, "count": len(rows)})
}

// AdminTriggerReport: jalankan pipeline laporan di background.
// Respon 202 + run_id; hasilnya bisa dicek lewat riwayat.
func AdminTriggerReport(w http.ResponseWriter, r *http.Request) {
	if adminPublisher == nil {
		http.Error(w, "publisher not configured", http.StatusServiceUnavailable)
		return
	}

	var in struct {
		Cities    []string `json:"cities,omitempty"`
		ChannelID string   `json:"channel_id,omitempty"`
		DryRun    bool     `json:"dry_run,omitempty"`
	}
	_ = json.NewDecoder(r.Body).Decode(&in)

	runID := util.NewID()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()
		res, err := adminPublisher.Run(ctx, services.PublishOptions{
			Cities:    in.Cities,
			ChannelID: in.ChannelID,
			DryRun:    in.DryRun,
		})
		if err != nil {
			log.Printf("[ERROR] admin trigger %s: %v", runID, err)
			return
		}
		log.Printf("admin trigger %s done: cities=%d posted=%v source=%s",
			runID, len(res.Report.Readings), res.Posted, res.Report.Source)
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]any{"accepted": true, "run_id": runID})
}

// LatestReportHandler: laporan terakhir (publik, dipakai UI/cek cepat).
func LatestReportHandler(w http.ResponseWriter, r *http.Request) {
	if adminRepo == nil {
		http.Error(w, "report repo not configured", http.StatusServiceUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 6*time.Second)
	defer cancel()

	row, err := adminRepo.Latest(ctx)
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if row == nil {
		http.Error(w, util.NotFound("no reports yet").Error(), http.StatusNotFound)
		return
	}

	readings, err := adminRepo.Readings(ctx, row.ID)
	if err != nil {
		log.Printf("[WARN] load readings for report %d: %v", row.ID, err)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"report":   row,
		"readings": readings,
	})
}

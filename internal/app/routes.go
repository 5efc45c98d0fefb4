// internal/app/routes.go
package app

import (
	"net/http"

	"github.com/gorilla/mux"
	hh "mcp-airquality/internal/handlers/http"
	mcphandlers "mcp-airquality/internal/handlers/mcp"
	"mcp-airquality/internal/middleware"
	mysqlrepo "mcp-airquality/internal/repositories/mysql"
)

type RegisterDeps struct {
	ReportRepo *mysqlrepo.ReportRepo
}

// RegisterRoutesWithDeps menambahkan route HTTP biasa (non-MCP).
func RegisterRoutesWithDeps(r *mux.Router, deps RegisterDeps) {
	// --- no prefix ---
	r.HandleFunc("/healthz", hh.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/readyz", hh.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/metrics", hh.MetricsHandler).Methods(http.MethodGet)
	r.HandleFunc("/report/stream", hh.ReportSSEHandler).Methods(http.MethodGet, http.MethodPost, http.MethodOptions)
	r.HandleFunc("/login", hh.LoginHandler).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/debug/tools", hh.ToolsStatusHandler).Methods(http.MethodGet)

	// --- /api prefix (supaya FE bisa pakai /api/...) ---
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/healthz", hh.HealthHandler).Methods(http.MethodGet)
	api.HandleFunc("/readyz", hh.HealthHandler).Methods(http.MethodGet)
	api.HandleFunc("/metrics", hh.MetricsHandler).Methods(http.MethodGet)
	api.HandleFunc("/report/stream", hh.ReportSSEHandler).Methods(http.MethodGet, http.MethodPost, http.MethodOptions)
	api.HandleFunc("/login", hh.LoginHandler).Methods(http.MethodPost, http.MethodOptions)

	// Domain endpoints (MCP tools exposed via HTTP)
	api.HandleFunc("/air-quality", mcphandlers.FetchAirQualityHandler).
		Methods(http.MethodGet, http.MethodPost, http.MethodOptions)

	api.HandleFunc("/air-quality/summary", mcphandlers.SummarizeAirQualityHandler).
		Methods(http.MethodGet, http.MethodPost, http.MethodOptions)

	api.HandleFunc("/reports/latest", hh.LatestReportHandler).
		Methods(http.MethodGet, http.MethodOptions)

	// Riwayat laporan; handler balas 503 bila repo belum di-set
	api.HandleFunc("/reports", mcphandlers.GetReportHistoryHandler).
		Methods(http.MethodGet, http.MethodPost, http.MethodOptions)

	// Preflight catch-all
	api.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(hh.PreflightHandler)

	// Trigger manual via curl/cron pakai Basic Auth (alternatif token JWT)
	r.Handle("/ops/report/trigger",
		middleware.AdminBasicAuth(http.HandlerFunc(hh.AdminTriggerReport))).Methods(http.MethodPost)

	// Admin (JWT protected, role admin)
	adminJWT := r.PathPrefix("/admin").Subrouter()
	adminJWT.Use(middleware.AdminJWTAuth)
	adminJWT.Use(middleware.RequireRole("admin"))
	adminJWT.HandleFunc("/reports", hh.AdminListReports).Methods(http.MethodGet)
	adminJWT.HandleFunc("/reports/trigger", hh.AdminTriggerReport).Methods(http.MethodPost)
}

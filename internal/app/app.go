// internal/app/app.go
package app

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/gorilla/mux"

	"mcp-airquality/internal/config"
	hh "mcp-airquality/internal/handlers/http"
	mcphandlers "mcp-airquality/internal/handlers/mcp"
	"mcp-airquality/internal/mcp"
	"mcp-airquality/internal/middleware"
	mysqlrepo "mcp-airquality/internal/repositories/mysql"
	"mcp-airquality/internal/services"
)

// App menampung router utama + config hasil load.
type App struct {
	Router *mux.Router
	Config *config.Config
}

// New membuat instance App + registrasi semua routes (HTTP & MCP)
func New() *App {
	cfg := config.Load()
	r := mux.NewRouter()

	// === init DB (opsional; riwayat laporan) ===
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = os.Getenv("DB_DSN_DOCKER")
	}

	var reportRepo *mysqlrepo.ReportRepo

	if dsn != "" {
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			log.Printf("[WARN] open mysql failed: %v", err)
		} else {
			db.SetMaxOpenConns(20)
			db.SetMaxIdleConns(10)
			db.SetConnMaxLifetime(30 * time.Minute)

			// retry ping agar tahan saat container DB baru up
			var pingErr error
			for i := 0; i < 20; i++ {
				pingErr = db.Ping()
				if pingErr == nil {
					break
				}
				log.Printf("[WARN] ping mysql failed (try %d): %v", i+1, pingErr)
				time.Sleep(3 * time.Second)
			}

			if pingErr != nil {
				log.Printf("[ERROR] mysql not ready after retries: %v", pingErr)
			} else {
				reportRepo = &mysqlrepo.ReportRepo{DB: db}
			}
		}
	} else {
		log.Printf("[WARN] DB_DSN/DB_DSN_DOCKER empty; skipping DB init (report history off)")
	}

	// ==== Pipeline laporan: scraper + LLM + Slack dirakit dari config ====
	pub := services.NewPublisher(cfg, reportRepo)
	if pub.LLM == nil {
		log.Printf("[WARN] OPENAI_API_KEY empty; summary pakai fallback teks polos")
	}
	if pub.Slack == nil {
		log.Printf("[WARN] SLACK_BOT_TOKEN empty; laporan tidak diposting ke Slack")
	}

	// === Inject deps ke handler MCP ===
	mcphandlers.SetScraper(pub.Scraper)
	if pub.LLM != nil {
		mcphandlers.SetSummarizer(pub.LLM)
	}
	if pub.Slack != nil {
		mcphandlers.SetSlack(pub.Slack, cfg.Slack.ChannelID)
	}
	if reportRepo != nil {
		mcphandlers.SetReportRepo(reportRepo)
	}
	mcphandlers.SetPublisher(pub)

	// share ke handler HTTP (SSE stream + admin)
	hh.SetReportStreamDeps(pub.Scraper, pub.LLM)
	hh.SetAdminDeps(reportRepo, pub)

	// ---- HTTP routes (UI/API biasa) ----
	RegisterRoutesWithDeps(r, RegisterDeps{ReportRepo: reportRepo})

	// ---- Sub-router debug /aq (chi) ----
	r.PathPrefix("/aq").Handler(NewAQRouter(pub.Scraper))

	// ---- MCP (Model Context Protocol) ----
	mcphandlers.RegisterAll()

	// Endpoint router MCP (intent -> tool)
	r.HandleFunc("/mcp/route", mcp.RouterHandler).Methods(http.MethodPost)

	// Endpoint HTTP langsung (memudahkan debug/manual curl).
	// Opsional dilindungi X-API-Key; no-op bila API_KEY tidak di-set.
	r.Handle("/mcp/fetch_air_quality",
		middleware.Auth(http.HandlerFunc(mcphandlers.FetchAirQualityHandler))).Methods(http.MethodGet, http.MethodPost)
	r.Handle("/mcp/publish_report",
		middleware.Auth(http.HandlerFunc(mcphandlers.PublishReportHandler))).Methods(http.MethodPost)

	return &App{Router: r, Config: cfg}
}

// Run menjalankan server HTTP
func (a *App) Run(addr string) {
	log.Printf("server running on %s", addr)
	if err := http.ListenAndServe(addr, a.Router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

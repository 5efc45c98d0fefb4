// internal/handlers/mcp/register.go
package mcp

import (
	"net/http"

	mcpreg "mcp-airquality/internal/mcp"
)

// RegisterAll mendaftarkan semua tool ke registry MCP.
// Dipanggil sekali saat startup (app.New / cmd/mcp-router).
func RegisterAll() {
	// Scrape AQI per kota / semua kota
	mcpreg.Register("fetch_air_quality", http.HandlerFunc(FetchAirQualityHandler))

	// Ringkasan (LLM dengan fallback teks polos)
	mcpreg.Register("summarize_air_quality", http.HandlerFunc(SummarizeAirQualityHandler))

	// Slack; nama mengikuti tool server-slack resmi
	mcpreg.Register("slack_post_message", http.HandlerFunc(SlackPostMessageHandler))

	// Pipeline penuh: scrape -> ringkas -> post -> simpan
	mcpreg.Register("publish_report", http.HandlerFunc(PublishReportHandler))

	// Riwayat laporan dari MySQL
	mcpreg.Register("get_report_history", http.HandlerFunc(GetReportHistoryHandler))
}

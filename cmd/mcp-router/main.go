// cmd/mcp-router/main.go
// Binary ringan: hanya router MCP + eksekusi tool, tanpa MySQL.
package main

import (
	"log"
	"net/http"
	"os"

	"mcp-airquality/internal/config"
	mcphandlers "mcp-airquality/internal/handlers/mcp"
	"mcp-airquality/internal/mcp"
	"mcp-airquality/internal/server"
	"mcp-airquality/internal/services"
)

func main() {
	cfg := config.Load()

	pub := services.NewPublisher(cfg, nil)
	mcphandlers.SetScraper(pub.Scraper)
	if pub.LLM != nil {
		mcphandlers.SetSummarizer(pub.LLM)
	}
	if pub.Slack != nil {
		mcphandlers.SetSlack(pub.Slack, cfg.Slack.ChannelID)
	}
	mcphandlers.SetPublisher(pub)
	mcphandlers.RegisterAll()

	// fail-fast bila registrasi tool inti tidak jalan
	mcp.MustGet("fetch_air_quality")
	mcp.MustGet("publish_report")

	port := getenv("MCP_PORT", "8090")
	log.Printf("MCP Router listening on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, server.NewMux()))
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// internal/handlers/mcp/deps.go
// Dependensi tool MCP; di-inject dari app saat startup.

package mcp

import (
	"mcp-airquality/internal/aqi"
	"mcp-airquality/internal/llm"
	mysqlrepo "mcp-airquality/internal/repositories/mysql"
	"mcp-airquality/internal/services"
	"mcp-airquality/internal/slack"
)

// inject dari app
var (
	scraper        *aqi.Scraper
	summarizer     llm.Client
	slackClient    *slack.Client
	reportRepo     *mysqlrepo.ReportRepo
	publisher      *services.ReportPublisher
	defaultChannel string
)

func SetScraper(s *aqi.Scraper) {
	scraper = s
	readyScraper = s != nil
}

func SetSummarizer(c llm.Client) {
	summarizer = c
	readyLLM = c != nil
}

func SetSlack(c *slack.Client, channelID string) {
	slackClient = c
	defaultChannel = channelID
	readySlack = c != nil
}

func SetReportRepo(r *mysqlrepo.ReportRepo) {
	reportRepo = r
	readyReports = r != nil
}

func SetPublisher(p *services.ReportPublisher) {
	publisher = p
	readyPublisher = p != nil
}

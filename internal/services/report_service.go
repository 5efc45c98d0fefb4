// internal/services/report_service.go
// Pipeline laporan: scrape -> ringkas (LLM/fallback) -> post Slack -> simpan

package services

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"mcp-airquality/internal/aqi"
	"mcp-airquality/internal/config"
	"mcp-airquality/internal/llm"
	mysqlrepo "mcp-airquality/internal/repositories/mysql"
	"mcp-airquality/internal/slack"
)

// ErrNoData: tidak ada satu pun kota yang menghasilkan angka AQI.
var ErrNoData = errors.New("no air quality data")

var (
	reportsTotal atomic.Int64
	postedTotal  atomic.Int64
	lastRunUnix  atomic.Int64
)

// ReportsTotal / PostedTotal / LastRunUnix dibaca oleh /metrics.
func ReportsTotal() int64 { return reportsTotal.Load() }
func PostedTotal() int64  { return postedTotal.Load() }
func LastRunUnix() int64  { return lastRunUnix.Load() }

// ReportPublisher menjalankan satu siklus pipeline lengkap.
// LLM, Slack, dan Repo boleh nil; tahapan yang tidak terkonfigurasi dilewati.
type ReportPublisher struct {
	Scraper   *aqi.Scraper
	LLM       llm.Client
	Slack     *slack.Client
	Repo      *mysqlrepo.ReportRepo
	ChannelID string   // default channel dari config
	Cities    []string // default kota dari config; kosong = 20 kota bawaan
}

// NewPublisher merakit publisher dari config. Klien LLM/Slack yang tidak
// terkonfigurasi dibiarkan nil; Run akan melewati tahapan tersebut.
func NewPublisher(cfg *config.Config, repo *mysqlrepo.ReportRepo) *ReportPublisher {
	p := &ReportPublisher{
		Scraper: aqi.NewScraper(
			aqi.WithBaseURL(cfg.AQI.BaseURL),
			aqi.WithConcurrency(cfg.AQI.Concurrency),
		),
		Repo:      repo,
		ChannelID: cfg.Slack.ChannelID,
		Cities:    cfg.AQI.Cities,
	}

	if cfg.LLM.APIKey != "" {
		c, err := llm.New(cfg.LLM.APIKey, cfg.LLM.APIBase, cfg.LLM.Model)
		if err != nil {
			log.Printf("[WARN] init llm client: %v", err)
		} else {
			p.LLM = c
		}
	}

	if cfg.Slack.BotToken != "" {
		c, err := slack.New(cfg.Slack.BotToken, slack.WithTeamID(cfg.Slack.TeamID))
		if err != nil {
			log.Printf("[WARN] init slack client: %v", err)
		} else {
			p.Slack = c
		}
	}

	return p
}

type PublishOptions struct {
	Cities    []string // kosong = 20 kota default
	ChannelID string   // override channel
	DryRun    bool     // skip post ke Slack
}

type PublishResult struct {
	Report   aqi.Report `json:"report"`
	Stats    AQIStats   `json:"stats"`
	Posted   bool       `json:"posted_to_slack"`
	SlackTS  string     `json:"slack_ts,omitempty"`
	ReportID int64      `json:"report_id,omitempty"`
}

// Run mengeksekusi pipeline. Gagal LLM tidak menghentikan run (fallback);
// gagal simpan DB juga tidak (laporan sudah terkirim, riwayat saja yang bolong).
func (p *ReportPublisher) Run(ctx context.Context, opts PublishOptions) (PublishResult, error) {
	var res PublishResult
	lastRunUnix.Store(time.Now().Unix())

	cities := opts.Cities
	if len(cities) == 0 {
		cities = p.Cities
	}
	readings := p.Scraper.FetchAll(ctx, cities)
	if len(readings) == 0 {
		res.Report = aqi.Report{
			Summary:   aqi.NoDataSummary,
			Source:    "fallback",
			CreatedAt: time.Now().UTC(),
		}
		return res, ErrNoData
	}

	summary, source := Summarize(ctx, p.LLM, readings)
	res.Report = aqi.Report{
		Readings:  readings,
		Summary:   summary,
		Source:    source,
		CreatedAt: time.Now().UTC(),
	}
	if st, err := ComputeAQIStats(readings); err == nil {
		res.Stats = st
	}
	reportsTotal.Add(1)

	channel := opts.ChannelID
	if channel == "" {
		channel = p.ChannelID
	}
	if !opts.DryRun && p.Slack != nil && channel != "" {
		ts, err := p.Slack.PostMessage(ctx, channel, summary)
		if err != nil {
			log.Printf("[ERROR] post report to slack: %v", err)
		} else {
			res.Posted = true
			res.SlackTS = ts
			postedTotal.Add(1)
		}
	}

	if p.Repo != nil {
		id, err := p.saveReport(ctx, res, channel)
		if err != nil {
			log.Printf("[WARN] save report history: %v", err)
		} else {
			res.ReportID = id
		}
	}

	return res, nil
}

// Summarize meringkas readings via LLM; bila klien nil atau error,
// jatuh ke laporan teks polos agar pipeline tetap menghasilkan output.
func Summarize(ctx context.Context, client llm.Client, readings []aqi.Reading) (summary, source string) {
	if len(readings) == 0 {
		return aqi.NoDataSummary, "fallback"
	}
	if client == nil {
		return aqi.FallbackSummary(readings), "fallback"
	}
	out, err := client.Summarize(ctx, llm.SystemPrompt, aqi.SummaryPrompt(readings))
	if err != nil || out == "" {
		if err != nil {
			log.Printf("[WARN] llm summary failed, using fallback: %v", err)
		}
		return aqi.FallbackSummary(readings), "fallback"
	}
	return out, "llm"
}

func (p *ReportPublisher) saveReport(ctx context.Context, res PublishResult, channel string) (int64, error) {
	rep := mysqlrepo.ReportRow{
		CreatedAt:     res.Report.CreatedAt,
		CityCount:     len(res.Report.Readings),
		Summary:       res.Report.Summary,
		SummarySource: res.Report.Source,
		PostedToSlack: res.Posted,
	}
	if res.Posted {
		rep.SlackChannel = sql.NullString{String: channel, Valid: true}
		rep.SlackTS = sql.NullString{String: res.SlackTS, Valid: true}
	}

	rows := make([]mysqlrepo.ReadingRow, 0, len(res.Report.Readings))
	for _, r := range res.Report.Readings {
		rows = append(rows, mysqlrepo.ReadingRow{
			City:     r.City,
			Slug:     r.Slug,
			AQI:      r.AQI,
			Category: r.Category,
		})
	}
	return p.Repo.Save(ctx, rep, rows)
}

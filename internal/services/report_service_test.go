// internal/services/report_service_test.go

package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mcp-airquality/internal/aqi"
	"mcp-airquality/internal/services"
	"mcp-airquality/internal/slack"
)

// Pipeline penuh dengan aqicn & Slack tiruan: scrape -> fallback summary -> post.
func TestPublisherRunPostsToSlack(t *testing.T) {
	aqiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/jakarta":
			fmt.Fprint(w, `<div class="aqivalue">155</div>`)
		case "/bandung":
			fmt.Fprint(w, `<div class="aqivalue">42</div>`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer aqiSrv.Close()

	var posted string
	slackSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in map[string]any
		_ = json.NewDecoder(r.Body).Decode(&in)
		posted, _ = in["text"].(string)
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "ts": "99.1"})
	}))
	defer slackSrv.Close()

	sc, _ := slack.New("xoxb-test", slack.WithAPIBase(slackSrv.URL))
	pub := &services.ReportPublisher{
		Scraper:   aqi.NewScraper(aqi.WithBaseURL(aqiSrv.URL)),
		Slack:     sc,
		ChannelID: "C123",
	}

	res, err := pub.Run(context.Background(), services.PublishOptions{
		Cities: []string{"jakarta", "bandung"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(res.Report.Readings) != 2 {
		t.Errorf("readings = %d", len(res.Report.Readings))
	}
	if res.Report.Source != "fallback" {
		t.Errorf("source = %q (tanpa LLM harus fallback)", res.Report.Source)
	}
	if !res.Posted || res.SlackTS != "99.1" {
		t.Errorf("posted = %v ts = %q", res.Posted, res.SlackTS)
	}
	if !strings.Contains(posted, "Jakarta") || !strings.Contains(posted, "Bandung") {
		t.Errorf("pesan Slack tidak memuat kota: %q", posted)
	}
	if res.Stats.WorstCity != "Jakarta" {
		t.Errorf("worst = %q", res.Stats.WorstCity)
	}
}

func TestPublisherRunDryRunSkipsSlack(t *testing.T) {
	aqiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<div class="aqivalue">42</div>`)
	}))
	defer aqiSrv.Close()

	called := false
	slackSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "ts": "1.1"})
	}))
	defer slackSrv.Close()

	sc, _ := slack.New("xoxb-test", slack.WithAPIBase(slackSrv.URL))
	pub := &services.ReportPublisher{
		Scraper:   aqi.NewScraper(aqi.WithBaseURL(aqiSrv.URL)),
		Slack:     sc,
		ChannelID: "C123",
	}

	res, err := pub.Run(context.Background(), services.PublishOptions{
		Cities: []string{"jakarta"},
		DryRun: true,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Posted || called {
		t.Fatalf("dry-run tidak boleh memanggil Slack (posted=%v called=%v)", res.Posted, called)
	}
}

// Semua kota gagal -> ErrNoData + NoDataSummary, tanpa post ke Slack.
func TestPublisherRunNoData(t *testing.T) {
	aqiSrv := httptest.NewServer(http.NotFoundHandler())
	defer aqiSrv.Close()

	pub := &services.ReportPublisher{
		Scraper: aqi.NewScraper(aqi.WithBaseURL(aqiSrv.URL)),
	}

	res, err := pub.Run(context.Background(), services.PublishOptions{
		Cities: []string{"jakarta", "bandung"},
	})
	if !errors.Is(err, services.ErrNoData) {
		t.Fatalf("err = %v, want ErrNoData", err)
	}
	if res.Report.Summary != aqi.NoDataSummary {
		t.Errorf("summary = %q", res.Report.Summary)
	}
	if res.Posted {
		t.Errorf("tidak boleh posted saat no data")
	}
}

// internal/handlers/mcp/handlers_test.go

package mcp_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mcp-airquality/internal/aqi"
	mcphandlers "mcp-airquality/internal/handlers/mcp"
	"mcp-airquality/internal/slack"
)

func fakeAQICN(pages map[string]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path[1:]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	}))
}

func TestFetchAirQualitySingleCity(t *testing.T) {
	srv := fakeAQICN(map[string]string{
		"jakarta": `<div class="aqivalue">155</div>`,
	})
	defer srv.Close()
	mcphandlers.SetScraper(aqi.NewScraper(aqi.WithBaseURL(srv.URL)))

	req := httptest.NewRequest(http.MethodGet, "/mcp/fetch_air_quality?city=jakarta", nil)
	rec := httptest.NewRecorder()
	mcphandlers.FetchAirQualityHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Readings []aqi.Reading `json:"readings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Readings) != 1 || resp.Readings[0].AQI != 155 {
		t.Fatalf("readings = %+v", resp.Readings)
	}
}

// Satu kota yang gagal -> 502; multi-kota -> yang gagal hanya dihitung.
func TestFetchAirQualityFailures(t *testing.T) {
	srv := fakeAQICN(map[string]string{
		"bandung": `<div class="aqivalue">42</div>`,
	})
	defer srv.Close()
	mcphandlers.SetScraper(aqi.NewScraper(aqi.WithBaseURL(srv.URL)))

	req := httptest.NewRequest(http.MethodGet, "/mcp/fetch_air_quality?city=nowhere", nil)
	rec := httptest.NewRecorder()
	mcphandlers.FetchAirQualityHandler(rec, req)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("single city gagal: code = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/mcp/fetch_air_quality?cities=bandung,nowhere", nil)
	rec = httptest.NewRecorder()
	mcphandlers.FetchAirQualityHandler(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("multi city: code = %d", rec.Code)
	}
	var resp struct {
		Readings []aqi.Reading `json:"readings"`
		Failed   int           `json:"failed_cities"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.Readings) != 1 || resp.Failed != 1 {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestSummarizeAirQualityInlineReadings(t *testing.T) {
	body := strings.NewReader(`{"readings":[{"city":"Jakarta","slug":"jakarta","aqi":155,"category":"Unhealthy"}]}`)
	req := httptest.NewRequest(http.MethodPost, "/mcp/summarize_air_quality", body)
	rec := httptest.NewRecorder()
	mcphandlers.SummarizeAirQualityHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Summary string `json:"summary"`
		Source  string `json:"summary_source"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Source != "fallback" || !strings.Contains(resp.Summary, "Jakarta") {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestSlackPostMessageHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "ts": "1.2"})
	}))
	defer srv.Close()

	sc, _ := slack.New("xoxb-test", slack.WithAPIBase(srv.URL))
	mcphandlers.SetSlack(sc, "C-DEFAULT")

	// channel_id kosong -> pakai default dari config
	req := httptest.NewRequest(http.MethodPost, "/mcp/slack_post_message",
		strings.NewReader(`{"text":"laporan AQI"}`))
	rec := httptest.NewRecorder()
	mcphandlers.SlackPostMessageHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		OK      bool   `json:"ok"`
		Channel string `json:"channel"`
		TS      string `json:"ts"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if !resp.OK || resp.Channel != "C-DEFAULT" || resp.TS != "1.2" {
		t.Fatalf("resp = %+v", resp)
	}

	// teks kosong -> 400
	req = httptest.NewRequest(http.MethodPost, "/mcp/slack_post_message",
		strings.NewReader(`{"text":"  "}`))
	rec = httptest.NewRecorder()
	mcphandlers.SlackPostMessageHandler(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty text: code = %d", rec.Code)
	}
}

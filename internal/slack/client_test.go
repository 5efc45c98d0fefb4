// internal/slack/client_test.go

package slack_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mcp-airquality/internal/slack"
)

func TestPostMessageOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat.postMessage" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer xoxb-test" {
			t.Errorf("auth header = %q", got)
		}

		var in map[string]any
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["channel"] != "C123" || in["text"] != "halo" {
			t.Errorf("payload = %v", in)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok": true, "channel": "C123", "ts": "1712345678.000100",
		})
	}))
	defer srv.Close()

	c, err := slack.New("xoxb-test", slack.WithAPIBase(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ts, err := c.PostMessage(context.Background(), "C123", "halo")
	if err != nil {
		t.Fatalf("PostMessage: %v", err)
	}
	if ts != "1712345678.000100" {
		t.Errorf("ts = %q", ts)
	}
}

// Slack membalas HTTP 200 dengan ok=false; kode errornya harus sampai ke caller.
func TestPostMessageAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "channel_not_found"})
	}))
	defer srv.Close()

	c, _ := slack.New("xoxb-test", slack.WithAPIBase(srv.URL))
	_, err := c.PostMessage(context.Background(), "CNOPE", "halo")
	if err == nil || !strings.Contains(err.Error(), "channel_not_found") {
		t.Fatalf("err = %v", err)
	}
}

func TestAuthTestTeamMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "team_id": "T-OTHER"})
	}))
	defer srv.Close()

	c, _ := slack.New("xoxb-test", slack.WithAPIBase(srv.URL), slack.WithTeamID("T-MINE"))
	if err := c.AuthTest(context.Background()); err == nil {
		t.Fatalf("expected team mismatch error")
	}
}

func TestClientValidation(t *testing.T) {
	if _, err := slack.New("  "); err == nil {
		t.Errorf("token kosong harus error")
	}

	c, _ := slack.New("xoxb-test")
	if _, err := c.PostMessage(context.Background(), "", "halo"); err == nil {
		t.Errorf("channel kosong harus error")
	}
	if _, err := c.PostMessage(context.Background(), "C123", " "); err == nil {
		t.Errorf("teks kosong harus error")
	}
}

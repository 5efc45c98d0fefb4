// internal/config/config_test.go

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"mcp-airquality/internal/config"
)

// Kredensial dari config.json terpakai bila env kosong.
func TestLoadCredsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{
		"OPENAI_API_KEY": "sk-file",
		"SLACK_BOT_TOKEN": "xoxb-file",
		"SLACK_TEAM_ID": "T-FILE",
		"SLACK_CHANNELID": "C-FILE"
	}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("SLACK_BOT_TOKEN", "")
	t.Setenv("SLACK_TEAM_ID", "")
	t.Setenv("SLACK_CHANNELID", "")

	c := config.Load()
	if c.LLM.APIKey != "sk-file" {
		t.Errorf("api key = %q", c.LLM.APIKey)
	}
	if c.Slack.BotToken != "xoxb-file" || c.Slack.TeamID != "T-FILE" || c.Slack.ChannelID != "C-FILE" {
		t.Errorf("slack = %+v", c.Slack)
	}
}

// Env var menang atas isi file.
func TestEnvWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"OPENAI_API_KEY":"sk-file"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("OPENAI_API_KEY", "sk-env")

	c := config.Load()
	if c.LLM.APIKey != "sk-env" {
		t.Errorf("api key = %q, want sk-env", c.LLM.APIKey)
	}
}

func TestDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.json"))
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("AQI_CITIES", " jakarta, bandung ,,")
	t.Setenv("REPORT_INTERVAL", "90m")

	c := config.Load()
	if c.MySQL.DB != "airquality" {
		t.Errorf("mysql db = %q", c.MySQL.DB)
	}
	if c.AQI.BaseURL != "https://aqicn.org/city/indonesia/" {
		t.Errorf("base url = %q", c.AQI.BaseURL)
	}
	if len(c.AQI.Cities) != 2 || c.AQI.Cities[0] != "jakarta" || c.AQI.Cities[1] != "bandung" {
		t.Errorf("cities = %v", c.AQI.Cities)
	}
	if c.ReportInterval != 90*time.Minute {
		t.Errorf("interval = %v", c.ReportInterval)
	}
}

// internal/config/config.go
// Loader konfigurasi: environment variables + config.json (kredensial)

package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// BuildVersion diisi saat build via ldflags.
var BuildVersion = "dev"

type Config struct {
	AppName   string
	AppEnv    string
	AppPort   string
	MCPPort   string
	LogLevel  string
	LogFormat string

	MySQL struct {
		Host     string
		Port     string
		DB       string
		User     string
		Password string
		MaxOpen  int
		MaxIdle  int
	}

	LLM struct {
		Provider string // default: openai
		APIKey   string
		APIBase  string
		Model    string
	}

	Slack struct {
		BotToken  string
		TeamID    string
		ChannelID string
	}

	AQI struct {
		BaseURL     string
		Cities      []string // kosong = daftar default 20 kota
		Concurrency int
	}

	// Interval run pipeline pada cmd/worker.
	ReportInterval time.Duration
}

// fileCreds adalah bentuk config.json warisan skrip lama.
// Env var selalu menang atas isi file.
type fileCreds struct {
	OpenAIAPIKey   string `json:"OPENAI_API_KEY"`
	SlackBotToken  string `json:"SLACK_BOT_TOKEN"`
	SlackTeamID    string `json:"SLACK_TEAM_ID"`
	SlackChannelID string `json:"SLACK_CHANNELID"`
}

func Load() *Config {
	c := &Config{}
	c.AppName = getEnv("APP_NAME", "mcp-airquality")
	c.AppEnv = getEnv("APP_ENV", "development")
	c.AppPort = getEnv("APP_PORT", "8080")
	c.MCPPort = getEnv("MCP_PORT", "8090")
	c.LogLevel = getEnv("LOG_LEVEL", "debug")
	c.LogFormat = getEnv("LOG_FORMAT", "json")

	c.MySQL.Host = getEnv("MYSQL_HOST", "localhost")
	c.MySQL.Port = getEnv("MYSQL_PORT", "3306")
	c.MySQL.DB = getEnv("MYSQL_DB", "airquality")
	c.MySQL.User = getEnv("MYSQL_USER", "root")
	c.MySQL.Password = getEnv("MYSQL_PASSWORD", "")
	c.MySQL.MaxOpen = getEnvInt("MYSQL_MAX_OPEN_CONNS", 10)
	c.MySQL.MaxIdle = getEnvInt("MYSQL_MAX_IDLE_CONNS", 5)

	// LLM / OpenAI
	c.LLM.Provider = getEnv("LLM_PROVIDER", "openai")
	c.LLM.APIKey = getEnv("OPENAI_API_KEY", "")
	c.LLM.APIBase = getEnv("OPENAI_API_BASE", "https://api.openai.com/v1")
	c.LLM.Model = getEnv("OPENAI_MODEL", "gpt-4o-mini")

	// Slack bot
	c.Slack.BotToken = getEnv("SLACK_BOT_TOKEN", "")
	c.Slack.TeamID = getEnv("SLACK_TEAM_ID", "")
	c.Slack.ChannelID = getEnv("SLACK_CHANNELID", "")

	// Sumber data AQI
	c.AQI.BaseURL = getEnv("AQICN_BASE_URL", "https://aqicn.org/city/indonesia/")
	c.AQI.Concurrency = getEnvInt("AQI_CONCURRENCY", 8)
	if v := getEnv("AQI_CITIES", ""); v != "" {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				c.AQI.Cities = append(c.AQI.Cities, s)
			}
		}
	}

	c.ReportInterval = getEnvDuration("REPORT_INTERVAL", 6*time.Hour)

	// Kredensial dari config.json (jika ada); env tetap menang.
	c.applyCredsFile(getEnv("CONFIG_FILE", "config.json"))

	if c.LLM.APIKey == "" {
		log.Println("[WARN] OPENAI_API_KEY is not set, LLM summary will fall back to plain text")
	}
	if c.Slack.BotToken == "" {
		log.Println("[WARN] SLACK_BOT_TOKEN is not set, posting to Slack is disabled")
	}

	return c
}

// applyCredsFile membaca config.json bila file-nya ada.
// Hanya mengisi field yang masih kosong (env var menang).
func (c *Config) applyCredsFile(path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[WARN] read %s: %v", path, err)
		}
		return
	}
	var f fileCreds
	if err := json.Unmarshal(raw, &f); err != nil {
		log.Printf("[WARN] parse %s: %v", path, err)
		return
	}
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = strings.TrimSpace(f.OpenAIAPIKey)
	}
	if c.Slack.BotToken == "" {
		c.Slack.BotToken = strings.TrimSpace(f.SlackBotToken)
	}
	if c.Slack.TeamID == "" {
		c.Slack.TeamID = strings.TrimSpace(f.SlackTeamID)
	}
	if c.Slack.ChannelID == "" {
		c.Slack.ChannelID = strings.TrimSpace(f.SlackChannelID)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var i int
		_, err := fmt.Sscanf(v, "%d", &i)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

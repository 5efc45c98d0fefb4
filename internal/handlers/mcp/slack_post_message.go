// internal/handlers/mcp/slack_post_message.go
// MCP Tool: slack_post_message - kirim teks ke channel Slack
// Nama tool mengikuti @modelcontextprotocol/server-slack agar klien lama kompatibel.

package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

type slackPostReq struct {
	ChannelID string `json:"channel_id,omitempty"` // kosong -> channel default config
	Text      string `json:"text"`
}

type slackPostResp struct {
	OK      bool   `json:"ok"`
	Channel string `json:"channel"`
	TS      string `json:"ts"`
}

func SlackPostMessageHandler(w http.ResponseWriter, r *http.Request) {
	if slackClient == nil {
		http.Error(w, "slack client not configured", http.StatusServiceUnavailable)
		return
	}

	var in slackPostReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	in.Text = strings.TrimSpace(in.Text)
	if in.Text == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}

	channel := strings.TrimSpace(in.ChannelID)
	if channel == "" {
		channel = defaultChannel
	}
	if channel == "" {
		http.Error(w, "no channel_id and no default channel configured", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	ts, err := slackClient.PostMessage(ctx, channel, in.Text)
	if err != nil {
		http.Error(w, "slack error: "+err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, slackPostResp{OK: true, Channel: channel, TS: ts})
}

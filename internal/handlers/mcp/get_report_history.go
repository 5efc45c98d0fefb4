// internal/handlers/mcp/get_report_history.go
// MCP Tool: get_report_history - riwayat laporan dari MySQL

package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	mysqlrepo "mcp-airquality/internal/repositories/mysql"
)

type historyReq struct {
	Since  string `json:"since,omitempty"` // RFC3339
	Until  string `json:"until,omitempty"` // RFC3339 (exclusive)
	Posted *bool  `json:"posted,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

type historyItem struct {
	ID            int64  `json:"id"`
	CreatedAt     string `json:"created_at"`
	CityCount     int    `json:"city_count"`
	Summary       string `json:"summary"`
	SummarySource string `json:"summary_source"`
	PostedToSlack bool   `json:"posted_to_slack"`
	SlackChannel  string `json:"slack_channel,omitempty"`
	SlackTS       string `json:"slack_ts,omitempty"`
}

func GetReportHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if reportRepo == nil {
		http.Error(w, "report repo not configured", http.StatusServiceUnavailable)
		return
	}

	q := r.URL.Query()
	in := historyReq{
		Since: strings.TrimSpace(q.Get("since")),
		Until: strings.TrimSpace(q.Get("until")),
	}
	if v := q.Get("limit"); v != "" {
		if n, _ := strconv.Atoi(v); n > 0 {
			in.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, _ := strconv.Atoi(v); n >= 0 {
			in.Offset = n
		}
	}
	if r.Method == http.MethodPost && in.Since == "" && in.Until == "" && in.Limit == 0 {
		_ = json.NewDecoder(r.Body).Decode(&in)
	}

	f := mysqlrepo.ReportFilter{
		Posted: in.Posted,
		Limit:  in.Limit,
		Offset: in.Offset,
	}
	if t, err := time.Parse(time.RFC3339, in.Since); err == nil && in.Since != "" {
		f.Since = &t
	}
	if t, err := time.Parse(time.RFC3339, in.Until); err == nil && in.Until != "" {
		f.Until = &t
	}

	ctx, cancel := context.WithTimeout(r.Context(), 6*time.Second)
	defer cancel()

	rows, err := reportRepo.List(ctx, f)
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]historyItem, 0, len(rows))
	for _, row := range rows {
		item := historyItem{
			ID:            row.ID,
			CreatedAt:     row.CreatedAt.UTC().Format(time.RFC3339),
			CityCount:     row.CityCount,
			Summary:       row.Summary,
			SummarySource: row.SummarySource,
			PostedToSlack: row.PostedToSlack,
		}
		if row.SlackChannel.Valid {
			item.SlackChannel = row.SlackChannel.String
		}
		if row.SlackTS.Valid {
			item.SlackTS = row.SlackTS.String
		}
		out = append(out, item)
	}
	writeJSON(w, map[string]any{"reports": out, "count": len(out)})
}

// internal/mcp/plan.go
package mcp

import (
	"encoding/json"
	"strings"
)

type RouteKind string

const (
	RouteMCP    RouteKind = "mcp"
	RouteReport RouteKind = "report" // alias lama; dinormalkan ke publish_report
)

type Route struct {
	Kind   RouteKind       `json:"kind"`             // "mcp" | "report"
	Tool   string          `json:"tool,omitempty"`   // nama tool MCP
	Params json.RawMessage `json:"params,omitempty"` // payload JSON utk handler tool (RAW)
	Query  string          `json:"query,omitempty"`  // pertanyaan asli (opsional)
}

type Plan struct {
	Mode     string  `json:"mode"`               // "mcp"
	Routes   []Route `json:"routes"`             // bisa banyak tool per request
	Reason   string  `json:"reason,omitempty"`   // penjelasan singkat
	Fallback bool    `json:"fallback,omitempty"` // true jika fallback
}

// ------------------------------
// Plan Normalizer & Helpers
// ------------------------------

// NormalizePlan memastikan rute hasil LLM/planner valid:
// a) Route kind "report" -> rewrite ke tool publish_report.
// b) Pertanyaan yang minta kirim ke Slack tapi plan tidak memuat
//    publish_report/slack_post_message -> tambahkan publish_report.
// c) Route tanpa kind dianggap "mcp".
func NormalizePlan(question string, p Plan) Plan {
	qLower := strings.ToLower(strings.TrimSpace(question))

	for i := range p.Routes {
		r := &p.Routes[i]
		kind := strings.ToLower(strings.TrimSpace(string(r.Kind)))
		if kind == "" {
			r.Kind = RouteMCP
		}
		if r.Kind == RouteReport {
			r.Kind = RouteMCP
			if r.Tool == "" {
				r.Tool = "publish_report"
			}
		}
	}

	if wantsSlackDelivery(qLower) && !hasDeliveryRoute(p.Routes) {
		p.Routes = append(p.Routes, Route{
			Kind:   RouteMCP,
			Tool:   "publish_report",
			Params: mustJSON(map[string]any{}),
			Query:  question,
		})
		if p.Reason == "" {
			p.Reason = "Menambahkan publish_report karena user minta laporan dikirim ke Slack."
		}
	}

	return p
}

func wantsSlackDelivery(q string) bool {
	if q == "" {
		return false
	}
	if !strings.Contains(q, "slack") {
		return false
	}
	verbs := []string{"kirim", "post", "send", "publish", "bagikan", "share"}
	for _, v := range verbs {
		if strings.Contains(q, v) {
			return true
		}
	}
	return false
}

func hasDeliveryRoute(routes []Route) bool {
	for _, r := range routes {
		if r.Tool == "publish_report" || r.Tool == "slack_post_message" {
			return true
		}
	}
	return false
}

func mustJSON(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

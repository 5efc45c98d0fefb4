// internal/mcp/router.go
// Router MCP: menerima request lalu memilih & mengeksekusi tool.

package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"mcp-airquality/internal/aqi"
	"mcp-airquality/internal/mcp/llm"
)

// ====== Structured log payload ======

type mcpLog struct {
	At              string `json:"@t,omitempty"`         // RFC3339 timestamp
	Level           string `json:"level,omitempty"`      // info|warn|error
	Event           string `json:"event,omitempty"`      // mcp.route
	RequestID       string `json:"request_id,omitempty"` // X-Request-ID jika ada
	Question        string `json:"question,omitempty"`
	RequestTool     string `json:"request_tool,omitempty"`
	ChosenTool      string `json:"chosen_tool,omitempty"`
	DecisionBy      string `json:"decision_by,omitempty"` // explicit|planner|llm|keyword|default|explicit-plan
	CatalogCount    int    `json:"catalog_count,omitempty"`
	RegisteredCount int    `json:"registered_count,omitempty"`
	HasAPIKey       bool   `json:"has_api_key"`
	DurationMS      int64  `json:"duration_ms,omitempty"`
	Error           string `json:"error,omitempty"`
}

func logJSON(l mcpLog) {
	l.At = time.Now().Format(time.RFC3339Nano)
	if l.Level == "" {
		l.Level = "info"
	}
	b, _ := json.Marshal(l)
	log.Println(string(b))
}

// ====== Multi-route plan support ======

var maxRoutes = func() int {
	if v := os.Getenv("PLAN_MAX_ROUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 4
}()

// ====== Regex heuristik khusus ======
//
// reSlackSend: frasa "kirim/post/send ... slack"
var reSlackSend = regexp.MustCompile(`\b(kirim|post|send|publish|bagikan)\b.*\bslack\b`)

// reHistory: frasa riwayat/laporan sebelumnya
var reHistory = regexp.MustCompile(`\b(riwayat|history|sebelumnya|previous|last)\b.*\b(laporan|report)\b`)

// ====== Router Handler ======

func RouterHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body error", http.StatusBadRequest)
		logJSON(mcpLog{
			Level:     "error",
			Event:     "mcp.route",
			RequestID: r.Header.Get("X-Request-ID"),
			Error:     fmt.Sprintf("read body: %v", err),
		})
		return
	}
	defer r.Body.Close()

	var req ToolRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		logJSON(mcpLog{
			Level:     "error",
			Event:     "mcp.route",
			RequestID: r.Header.Get("X-Request-ID"),
			Error:     fmt.Sprintf("unmarshal: %v", err),
		})
		return
	}

	// ===== 0) Jika ada plan.routes (atau routes di root), eksekusi multi-route =====
	var planWrapper struct {
		Plan   *Plan   `json:"plan"`
		Routes []Route `json:"routes"`
	}
	_ = json.Unmarshal(raw, &planWrapper)

	var routes []Route
	if planWrapper.Plan != nil && len(planWrapper.Plan.Routes) > 0 {
		routes = planWrapper.Plan.Routes
	} else if len(planWrapper.Routes) > 0 {
		routes = planWrapper.Routes
	}

	if len(routes) > 0 {
		p := Plan{Mode: "mcp", Routes: routes}
		if planWrapper.Plan != nil {
			p = *planWrapper.Plan
			p.Routes = routes
		}
		qForNorm := extractQuestion(req.Params)
		if strings.TrimSpace(qForNorm) == "" && planWrapper.Plan != nil {
			qForNorm = planWrapper.Plan.Reason
		}
		p = NormalizePlan(qForNorm, p)
		if len(p.Routes) > maxRoutes {
			p.Routes = p.Routes[:maxRoutes]
		}

		writePlanResults(r.Context(), w, p.Routes)
		logJSON(mcpLog{
			Event:      "mcp.route",
			RequestID:  r.Header.Get("X-Request-ID"),
			DecisionBy: "explicit-plan",
			DurationMS: time.Since(start).Milliseconds(),
		})
		return
	}

	// ===== Observability: catalog & registry =====
	defs, _ := LoadToolDefs()
	regNames := List()
	hasAPIKey := os.Getenv("OPENAI_API_KEY") != ""

	// 1) Explicit tool?
	tool := strings.TrimSpace(req.Tool)
	decision := "explicit"

	var question string
	if tool == "" {
		decision = ""
		question = extractQuestion(req.Params)
		q := strings.ToLower(strings.TrimSpace(question))

		// Heuristik cepat (deterministik untuk pola populer)
		if q != "" {
			switch {
			case reSlackSend.MatchString(q):
				tool = "publish_report"
				decision = "keyword"
			case reHistory.MatchString(q):
				tool = "get_report_history"
				decision = "keyword"
			}
		}

		// 1.5) Planner multi-route (opsional, MCP_PLANNER=1)
		if tool == "" && q != "" && os.Getenv("MCP_PLANNER") == "1" && hasAPIKey {
			if planner, perr := llm.NewRoutePlannerFromEnv(); perr == nil {
				if p, perr := planner.PlanRoutes(r.Context(), question, toolLites(defs)); perr == nil && len(p.Routes) > 0 {
					plan := NormalizePlan(question, toPlan(p))
					if len(plan.Routes) > maxRoutes {
						plan.Routes = plan.Routes[:maxRoutes]
					}
					writePlanResults(r.Context(), w, plan.Routes)
					logJSON(mcpLog{
						Event:           "mcp.route",
						RequestID:       r.Header.Get("X-Request-ID"),
						Question:        question,
						DecisionBy:      "planner",
						CatalogCount:    len(defs),
						RegisteredCount: len(regNames),
						HasAPIKey:       hasAPIKey,
						DurationMS:      time.Since(start).Milliseconds(),
					})
					return
				}
			}
		}

		// 2) LLM choose kalau heuristik belum menentukan
		if tool == "" && q != "" {
			if chosen := chooseToolWithLLM(r.Context(), question); chosen != "" {
				tool = chosen
				decision = "llm"
			}
		}

		// 3) Keyword fallback (agar tetap jalan tanpa LLM)
		if tool == "" {
			switch {
			case strings.Contains(q, "riwayat") || strings.Contains(q, "history"):
				tool = "get_report_history"

			case strings.Contains(q, "slack"):
				tool = "slack_post_message"

			case strings.Contains(q, "ringkas") || strings.Contains(q, "summar") ||
				strings.Contains(q, "laporan") || strings.Contains(q, "report"):
				tool = "summarize_air_quality"

			case strings.Contains(q, "aqi") || strings.Contains(q, "udara") ||
				strings.Contains(q, "polusi") || strings.Contains(q, "air quality") ||
				containsKnownCity(q):
				tool = "fetch_air_quality"
			}

			if tool != "" && decision == "" {
				decision = "keyword"
			}
		}
	}

	// 4) Default final
	if tool == "" {
		tool = "summarize_air_quality"
		if decision == "" {
			decision = "default"
		}
	}

	// 4.5) Enrich params untuk tool tertentu (default & auto-extract)
	{
		var pm map[string]any
		switch p := req.Params.(type) {
		case map[string]any:
			pm = p
		case json.RawMessage:
			if len(p) > 0 {
				_ = json.Unmarshal(p, &pm)
			}
		}
		if pm == nil {
			pm = map[string]any{}
		}

		switch tool {
		case "fetch_air_quality":
			// Sebut nama kota di pertanyaan -> jadikan param city
			if _, ok := pm["city"]; !ok {
				if slug := detectCityFromText(question); slug != "" {
					pm["city"] = slug
				}
			}
		case "get_report_history":
			if _, ok := pm["limit"]; !ok {
				pm["limit"] = 10
			}
		}

		req.Params = pm
	}

	// 5) Execute (single tool)
	h, ok := Get(tool)
	if !ok {
		resp := ToolResponse{Success: false, Error: "tool not found: " + tool}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)

		logJSON(mcpLog{
			Level:           "warn",
			Event:           "mcp.route",
			RequestID:       r.Header.Get("X-Request-ID"),
			Question:        question,
			RequestTool:     req.Tool,
			ChosenTool:      tool,
			DecisionBy:      decision,
			CatalogCount:    len(defs),
			RegisteredCount: len(regNames),
			HasAPIKey:       hasAPIKey,
			DurationMS:      time.Since(start).Milliseconds(),
			Error:           "tool not found",
		})
		return
	}

	// Forward: handler menerima hanya Params JSON (tanpa envelope)
	forward := raw
	if req.Params != nil {
		if buf, err := json.Marshal(req.Params); err == nil {
			forward = buf
		}
	}
	r2 := r.Clone(r.Context())
	r2.Body = io.NopCloser(bytes.NewReader(forward))
	r2.Header.Set("Content-Type", "application/json") // ensure JSON

	h.ServeHTTP(w, r2)

	// success log (ukur durasi SETELAH handler selesai)
	logJSON(mcpLog{
		Event:           "mcp.route",
		RequestID:       r.Header.Get("X-Request-ID"),
		Question:        question,
		RequestTool:     req.Tool,
		ChosenTool:      tool,
		DecisionBy:      decision,
		CatalogCount:    len(defs),
		RegisteredCount: len(regNames),
		HasAPIKey:       hasAPIKey,
		DurationMS:      time.Since(start).Milliseconds(),
	})
}

// writePlanResults mengeksekusi rute lalu menulis hasil gabungan.
func writePlanResults(ctx context.Context, w http.ResponseWriter, routes []Route) {
	results := ExecuteRoutes(ctx, routes)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"mode":            "mcp",
		"routes_executed": len(routes),
		"items":           results,
	})
}

// ====== City detector (simple) ======

func detectCityFromText(s string) string {
	q := strings.ToLower(s)
	for _, slug := range aqi.DefaultCities {
		if strings.Contains(q, slug) {
			return slug
		}
	}
	return ""
}

func containsKnownCity(q string) bool {
	return detectCityFromText(q) != ""
}

// ====== Chooser helpers ======

func extractQuestion(params interface{}) string {
	if params == nil {
		return ""
	}
	if m, ok := params.(map[string]interface{}); ok {
		if q, ok := m["question"].(string); ok {
			return q
		}
	}
	if raw, ok := params.(json.RawMessage); ok && len(raw) > 0 {
		var m map[string]interface{}
		if err := json.Unmarshal(raw, &m); err == nil {
			if q, ok := m["question"].(string); ok {
				return q
			}
		}
	}
	return ""
}

func chooseToolWithLLM(ctx context.Context, question string) string {
	defs, err := LoadToolDefs()
	if err != nil || len(defs) == 0 {
		return ""
	}

	// Filter hanya tool yang terdaftar di registry runtime
	regNames := map[string]struct{}{}
	for _, name := range List() {
		regNames[strings.ToLower(name)] = struct{}{}
	}
	var filtered []ToolDef
	for _, d := range defs {
		if _, ok := regNames[strings.ToLower(d.Name)]; ok {
			filtered = append(filtered, d)
		}
	}
	if len(filtered) == 0 {
		return ""
	}
	if os.Getenv("OPENAI_API_KEY") == "" {
		return ""
	}

	client, err := llm.NewFromEnv()
	if err != nil {
		return ""
	}

	system := llmSystemPromptID()
	user := buildChooserUserPrompt(question, filtered)

	// Timeout singkat agar responsif
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 4*time.Second)
		defer cancel()
	}

	out, err := client.Answer(ctx, system, user)
	if err != nil {
		return ""
	}

	out = sanitizeToolToken(strings.TrimSpace(out))
	for _, d := range filtered {
		if strings.EqualFold(out, d.Name) {
			return d.Name
		}
	}
	return ""
}

func llmSystemPromptID() string {
	return `Anda adalah agen router.
- Pilih tepat SATU nama tool dari daftar.
- Balas hanya dengan nama tool (misal: fetch_air_quality).
- Jika ragu, pilih "summarize_air_quality".`
}

func buildChooserUserPrompt(question string, defs []ToolDef) string {
	var b strings.Builder
	b.WriteString("Pertanyaan user:\n")
	b.WriteString(question)
	b.WriteString("\n\nDaftar tool tersedia:\n")
	for i, d := range defs {
		desc := strings.TrimSpace(d.Description)
		if len(desc) > 300 {
			desc = desc[:300] + "…"
		}
		b.WriteString(fmt.Sprintf("%d) %s — %s\n", i+1, d.Name, desc))
	}
	b.WriteString("\nBalas hanya dengan nama tool.")
	return b.String()
}

var nonWord = regexp.MustCompile(`[^a-zA-Z0-9_\-]`)

func sanitizeToolToken(s string) string {
	s = strings.TrimSpace(s)
	s = nonWord.ReplaceAllString(s, "")
	return strings.ToLower(s)
}

// ---- adapters planner llm.PlanLite -> mcp.Plan ----

func toolLites(defs []ToolDef) []llm.ToolLite {
	out := make([]llm.ToolLite, 0, len(defs))
	for _, d := range defs {
		out = append(out, llm.ToolLite{Name: d.Name, Description: d.Description})
	}
	return out
}

func toPlan(p llm.PlanLite) Plan {
	out := Plan{Mode: "mcp", Reason: p.Reason}
	for _, r := range p.Routes {
		out.Routes = append(out.Routes, Route{
			Kind:   RouteMCP,
			Tool:   r.Tool,
			Params: r.Params,
		})
	}
	return out
}

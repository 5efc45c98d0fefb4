// internal/mcp/llm/planner.go
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// ToolLite: representasi tool dari katalog (tanpa import mcp untuk hindari cycle)
type ToolLite struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RouteLite / PlanLite: bentuk plan yang diminta dari LLM.
// Paket mcp yang memetakan ini ke Plan internalnya.
type RouteLite struct {
	Tool   string          `json:"tool"`
	Params json.RawMessage `json:"params,omitempty"`
}

type PlanLite struct {
	Routes []RouteLite `json:"routes"`
	Reason string      `json:"reason,omitempty"`
}

// RoutePlanner bertumpu pada Client
type RoutePlanner struct{ client Client }

func NewRoutePlannerFromEnv() (*RoutePlanner, error) {
	c, err := NewFromEnv()
	if err != nil {
		return nil, err
	}
	return &RoutePlanner{client: c}, nil
}

const plannerSystemPrompt = `Anda adalah planner untuk server tool kualitas udara.
Susun rencana eksekusi berupa JSON: {"routes":[{"tool":"...","params":{...}}],"reason":"..."}.
- Gunakan hanya tool dari daftar yang diberikan.
- Maksimal 4 route, urut sesuai eksekusi.
- params harus objek JSON valid sesuai deskripsi tool (boleh {}).
Balas HANYA JSON.`

// PlanRoutes meminta LLM menyusun rencana multi-tool untuk satu pertanyaan.
func (p *RoutePlanner) PlanRoutes(ctx context.Context, question string, tools []ToolLite) (PlanLite, error) {
	var out PlanLite
	if strings.TrimSpace(question) == "" {
		return out, fmt.Errorf("empty question")
	}
	if len(tools) == 0 {
		return out, fmt.Errorf("empty tool catalog")
	}

	var b strings.Builder
	b.WriteString("Pertanyaan user:\n")
	b.WriteString(question)
	b.WriteString("\n\nDaftar tool:\n")
	for _, t := range tools {
		desc := strings.TrimSpace(t.Description)
		if len(desc) > 300 {
			desc = desc[:300] + "…"
		}
		fmt.Fprintf(&b, "- %s: %s\n", t.Name, desc)
	}

	raw, err := p.client.AnswerJSON(ctx, b.String(), plannerSystemPrompt)
	if err != nil {
		return out, fmt.Errorf("planner llm: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return out, fmt.Errorf("planner decode: %w; raw=%s", err, raw)
	}

	// Buang route yang tidak ada di katalog (LLM kadang mengarang)
	known := map[string]struct{}{}
	for _, t := range tools {
		known[strings.ToLower(t.Name)] = struct{}{}
	}
	kept := out.Routes[:0]
	for _, r := range out.Routes {
		if _, ok := known[strings.ToLower(strings.TrimSpace(r.Tool))]; ok {
			kept = append(kept, r)
		}
	}
	out.Routes = kept
	return out, nil
}

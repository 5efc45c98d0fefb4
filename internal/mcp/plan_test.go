// internal/mcp/plan_test.go

package mcp_test

import (
	"testing"

	"mcp-airquality/internal/mcp"
)

// Route kind "report" lama harus dinormalkan jadi tool publish_report.
func TestNormalizePlanRewritesReportKind(t *testing.T) {
	p := mcp.Plan{
		Mode:   "mcp",
		Routes: []mcp.Route{{Kind: mcp.RouteReport}},
	}
	out := mcp.NormalizePlan("", p)

	if len(out.Routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(out.Routes))
	}
	if out.Routes[0].Kind != mcp.RouteMCP || out.Routes[0].Tool != "publish_report" {
		t.Fatalf("expected mcp/publish_report, got %s/%s", out.Routes[0].Kind, out.Routes[0].Tool)
	}
}

// Pertanyaan minta kirim ke Slack tapi plan tidak memuat route pengiriman
// -> publish_report ditambahkan di akhir.
func TestNormalizePlanAddsSlackDelivery(t *testing.T) {
	p := mcp.Plan{
		Mode:   "mcp",
		Routes: []mcp.Route{{Kind: mcp.RouteMCP, Tool: "summarize_air_quality"}},
	}
	out := mcp.NormalizePlan("ringkas kualitas udara lalu kirim ke slack", p)

	if len(out.Routes) != 2 {
		t.Fatalf("expected delivery route appended, got %d routes", len(out.Routes))
	}
	if out.Routes[1].Tool != "publish_report" {
		t.Fatalf("expected publish_report appended, got %q", out.Routes[1].Tool)
	}

	// Plan yang sudah memuat slack_post_message tidak boleh dobel.
	p2 := mcp.Plan{
		Mode:   "mcp",
		Routes: []mcp.Route{{Kind: mcp.RouteMCP, Tool: "slack_post_message"}},
	}
	out2 := mcp.NormalizePlan("kirim ke slack", p2)
	if len(out2.Routes) != 1 {
		t.Fatalf("expected no extra route, got %d", len(out2.Routes))
	}
}

// internal/aqi/report_test.go

package aqi_test

import (
	"strings"
	"testing"

	"mcp-airquality/internal/aqi"
)

func sampleReadings() []aqi.Reading {
	return []aqi.Reading{
		{City: "Jakarta", Slug: "jakarta", AQI: 155, Category: "Unhealthy"},
		{City: "Bandung", Slug: "bandung", AQI: 42, Category: "Good"},
	}
}

func TestSummaryPromptFormat(t *testing.T) {
	p := aqi.SummaryPrompt(sampleReadings())

	if !strings.Contains(p, "Summarize the current air quality index") {
		t.Errorf("instruksi hilang dari prompt:\n%s", p)
	}
	if !strings.Contains(p, "- Bandung: AQI = 42 (Good)") {
		t.Errorf("baris Bandung hilang:\n%s", p)
	}
	if !strings.Contains(p, "- Jakarta: AQI = 155 (Unhealthy)") {
		t.Errorf("baris Jakarta hilang:\n%s", p)
	}
	// Urut alfabetis: Bandung dulu.
	if strings.Index(p, "Bandung") > strings.Index(p, "Jakarta") {
		t.Errorf("readings tidak terurut dalam prompt")
	}
}

func TestFallbackSummary(t *testing.T) {
	s := aqi.FallbackSummary(sampleReadings())
	if !strings.HasPrefix(s, "Air Quality Index Report for Indonesian Cities:") {
		t.Errorf("header salah: %q", s)
	}
	if !strings.Contains(s, "- Jakarta: AQI = 155 (Unhealthy)") {
		t.Errorf("baris Jakarta hilang: %q", s)
	}

	if got := aqi.FallbackSummary(nil); got != aqi.NoDataSummary {
		t.Errorf("empty readings -> %q, want NoDataSummary", got)
	}
}

func TestCityHelpers(t *testing.T) {
	if len(aqi.DefaultCities) != 20 {
		t.Fatalf("expected 20 default cities, got %d", len(aqi.DefaultCities))
	}
	if got := aqi.DisplayName("jakarta"); got != "Jakarta" {
		t.Errorf("DisplayName = %q", got)
	}
	if !aqi.IsKnownCity("SEMARANG ") {
		t.Errorf("IsKnownCity harus case/space-insensitive")
	}
	if aqi.IsKnownCity("gotham") {
		t.Errorf("gotham bukan kota terdaftar")
	}
}

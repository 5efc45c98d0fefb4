// internal/services/aqi_stats_test.go

package services_test

import (
	"context"
	"testing"

	"mcp-airquality/internal/aqi"
	"mcp-airquality/internal/services"
)

func readings() []aqi.Reading {
	return []aqi.Reading{
		{City: "Jakarta", Slug: "jakarta", AQI: 155, Category: "Unhealthy"},
		{City: "Bandung", Slug: "bandung", AQI: 42, Category: "Good"},
		{City: "Medan", Slug: "medan", AQI: 90, Category: "Moderate"},
	}
}

func TestComputeAQIStats(t *testing.T) {
	st, err := services.ComputeAQIStats(readings())
	if err != nil {
		t.Fatalf("ComputeAQIStats: %v", err)
	}

	if st.Cities != 3 {
		t.Errorf("cities = %d", st.Cities)
	}
	if st.WorstCity != "Jakarta" || st.WorstAQI != 155 {
		t.Errorf("worst = %s/%d", st.WorstCity, st.WorstAQI)
	}
	if st.BestCity != "Bandung" || st.BestAQI != 42 {
		t.Errorf("best = %s/%d", st.BestCity, st.BestAQI)
	}
	if st.AverageAQI != 95.67 { // (155+42+90)/3 dibulatkan 2 desimal
		t.Errorf("average = %v", st.AverageAQI)
	}
	if st.Distribution["Good"] != 1 || st.Distribution["Unhealthy"] != 1 {
		t.Errorf("distribution = %v", st.Distribution)
	}

	if _, err := services.ComputeAQIStats(nil); err == nil {
		t.Errorf("empty readings harus error")
	}
}

func TestCountAbove(t *testing.T) {
	if n := services.CountAbove(readings(), 100); n != 1 {
		t.Errorf("CountAbove(100) = %d", n)
	}
	if n := services.CountAbove(readings(), 42); n != 3 {
		t.Errorf("CountAbove(42) = %d (threshold inklusif)", n)
	}
}

// Tanpa klien LLM, Summarize harus balik ke teks polos, bukan error.
func TestSummarizeFallbackWithoutLLM(t *testing.T) {
	sum, source := services.Summarize(context.Background(), nil, readings())
	if source != "fallback" {
		t.Fatalf("source = %q", source)
	}
	if sum == "" || sum == aqi.NoDataSummary {
		t.Fatalf("summary = %q", sum)
	}

	sum, source = services.Summarize(context.Background(), nil, nil)
	if source != "fallback" || sum != aqi.NoDataSummary {
		t.Fatalf("empty readings -> %q/%q", sum, source)
	}
}

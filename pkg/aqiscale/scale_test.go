// pkg/aqiscale/scale_test.go

package aqiscale_test

import (
	"testing"

	"mcp-airquality/pkg/aqiscale"
)

// Batas-batas band harus persis (50 masih Good, 51 sudah Moderate, dst).
func TestCategoryBoundaries(t *testing.T) {
	cases := []struct {
		aqi  int
		want string
	}{
		{0, "Good"},
		{50, "Good"},
		{51, "Moderate"},
		{100, "Moderate"},
		{101, "Unhealthy for Sensitive Groups"},
		{150, "Unhealthy for Sensitive Groups"},
		{151, "Unhealthy"},
		{200, "Unhealthy"},
		{201, "Very Unhealthy"},
		{300, "Very Unhealthy"},
		{301, "Hazardous"},
		{999, "Hazardous"},
		{-1, "Unknown"},
	}
	for _, c := range cases {
		if got := aqiscale.Category(c.aqi); got != c.want {
			t.Errorf("Category(%d) = %q, want %q", c.aqi, got, c.want)
		}
	}
}

func TestLookupAdvice(t *testing.T) {
	b, ok := aqiscale.Lookup(155)
	if !ok {
		t.Fatalf("Lookup(155) not found")
	}
	if b.Category != "Unhealthy" || b.Advice == "" {
		t.Fatalf("Lookup(155) = %+v", b)
	}

	if _, ok := aqiscale.Lookup(-5); ok {
		t.Fatalf("Lookup(-5) should not match a band")
	}
}

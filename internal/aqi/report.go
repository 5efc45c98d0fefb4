// internal/aqi/report.go
// Tipe Reading/Report + builder prompt dan ringkasan fallback

package aqi

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"mcp-airquality/pkg/aqiscale"
)

// Reading adalah satu pengukuran AQI per kota.
type Reading struct {
	City      string    `json:"city"`     // display name, e.g. "Jakarta"
	Slug      string    `json:"slug"`     // aqicn slug, e.g. "jakarta"
	AQI       int       `json:"aqi"`
	Category  string    `json:"category"`
	Pollutant string    `json:"dominant_pollutant,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Report adalah hasil satu run pipeline.
type Report struct {
	Readings  []Reading `json:"readings"`
	Summary   string    `json:"summary"`
	Source    string    `json:"summary_source"` // "llm" | "fallback"
	CreatedAt time.Time `json:"created_at"`
}

// NoDataSummary dipakai saat tidak ada satu pun kota yang berhasil di-scrape.
const NoDataSummary = "No air quality data available for Indonesian cities."

// SortReadings mengurutkan alfabetis per kota agar output deterministik.
func SortReadings(rs []Reading) {
	sort.Slice(rs, func(i, j int) bool { return rs[i].City < rs[j].City })
}

// SummaryPrompt menyusun prompt user untuk LLM. Data diurutkan per kota,
// tiap baris memuat AQI + kategori supaya model tidak perlu menebak skala.
func SummaryPrompt(rs []Reading) string {
	sorted := make([]Reading, len(rs))
	copy(sorted, rs)
	SortReadings(sorted)

	var b strings.Builder
	b.WriteString("Summarize the current air quality index for the following Indonesian cities based on the provided AQI values.\n")
	b.WriteString("For each city, include the AQI value and a brief description of what that AQI level means for health.\n")
	b.WriteString("Also, provide an overall summary of the air quality situation across these cities.\n\n")
	b.WriteString("Air Quality Data:\n")
	for _, r := range sorted {
		fmt.Fprintf(&b, "- %s: AQI = %d (%s)\n", r.City, r.AQI, aqiscale.Category(r.AQI))
	}
	return b.String()
}

// FallbackSummary adalah ringkasan non-LLM; dipakai saat OpenAI gagal
// supaya laporan tetap terkirim (perilaku yang sama dengan skrip lama).
func FallbackSummary(rs []Reading) string {
	if len(rs) == 0 {
		return NoDataSummary
	}
	sorted := make([]Reading, len(rs))
	copy(sorted, rs)
	SortReadings(sorted)

	var b strings.Builder
	b.WriteString("Air Quality Index Report for Indonesian Cities:\n")
	for _, r := range sorted {
		fmt.Fprintf(&b, "- %s: AQI = %d (%s)\n", r.City, r.AQI, aqiscale.Category(r.AQI))
	}
	return b.String()
}

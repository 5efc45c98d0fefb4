// internal/services/aqi_stats.go
// Statistik sederhana atas pembacaan AQI satu run

package services

import (
	"errors"
	"math"

	"mcp-airquality/internal/aqi"
)

type AQIStats struct {
	Cities       int            `json:"cities"`
	AverageAQI   float64        `json:"average_aqi"`
	WorstCity    string         `json:"worst_city"`
	WorstAQI     int            `json:"worst_aqi"`
	BestCity     string         `json:"best_city"`
	BestAQI      int            `json:"best_aqi"`
	Distribution map[string]int `json:"category_distribution"`
}

// ComputeAQIStats menghitung ringkasan numerik satu batch pembacaan.
func ComputeAQIStats(rs []aqi.Reading) (AQIStats, error) {
	if len(rs) == 0 {
		return AQIStats{}, errors.New("empty readings")
	}

	st := AQIStats{
		Cities:       len(rs),
		Distribution: map[string]int{},
		WorstAQI:     math.MinInt32,
		BestAQI:      math.MaxInt32,
	}

	var sum int
	for _, r := range rs {
		sum += r.AQI
		st.Distribution[r.Category]++
		if r.AQI > st.WorstAQI {
			st.WorstAQI = r.AQI
			st.WorstCity = r.City
		}
		if r.AQI < st.BestAQI {
			st.BestAQI = r.AQI
			st.BestCity = r.City
		}
	}
	st.AverageAQI = round2(float64(sum) / float64(len(rs)))
	return st, nil
}

// CountAbove menghitung jumlah kota dengan AQI >= threshold.
func CountAbove(rs []aqi.Reading, threshold int) int {
	n := 0
	for _, r := range rs {
		if r.AQI >= threshold {
			n++
		}
	}
	return n
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

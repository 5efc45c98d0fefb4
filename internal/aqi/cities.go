// internal/aqi/cities.go
// Daftar kota Indonesia yang dipantau di aqicn.org

package aqi

import "strings"

// DefaultCities adalah slug kota pada aqicn.org/city/indonesia/<slug>.
var DefaultCities = []string{
	"jakarta", "surabaya", "bandung", "medan", "semarang", "palembang",
	"makassar", "batam", "pekanbaru", "bogor", "malang", "denpasar",
	"tangerang", "bekasi", "depok", "yogyakarta", "surakarta", "padang",
	"balikpapan", "samarinda",
}

// DisplayName mengubah slug menjadi nama tampilan ("jakarta" -> "Jakarta").
func DisplayName(slug string) string {
	s := strings.TrimSpace(strings.ToLower(slug))
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// IsKnownCity mengecek apakah slug ada di daftar default.
func IsKnownCity(slug string) bool {
	s := strings.TrimSpace(strings.ToLower(slug))
	for _, c := range DefaultCities {
		if c == s {
			return true
		}
	}
	return false
}

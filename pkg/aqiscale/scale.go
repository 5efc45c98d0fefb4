// pkg/aqiscale/scale.go
// Skala AQI (US EPA) -> kategori kesehatan

package aqiscale

// Band merepresentasikan satu rentang AQI pada skala US EPA.
type Band struct {
	Min      int
	Max      int // inclusive; -1 = tanpa batas atas
	Category string
	Advice   string
}

// Bands urut dari terbaik ke terburuk.
var Bands = []Band{
	{0, 50, "Good", "Air quality is satisfactory; outdoor activity is safe."},
	{51, 100, "Moderate", "Unusually sensitive people should consider limiting prolonged outdoor exertion."},
	{101, 150, "Unhealthy for Sensitive Groups", "Sensitive groups should reduce prolonged outdoor exertion."},
	{151, 200, "Unhealthy", "Everyone may begin to experience health effects."},
	{201, 300, "Very Unhealthy", "Health alert: everyone may experience more serious health effects."},
	{301, -1, "Hazardous", "Health warning of emergency conditions."},
}

// Category memetakan nilai AQI ke kategori kesehatan.
// Nilai negatif dianggap tidak valid -> "Unknown".
func Category(aqi int) string {
	b, ok := Lookup(aqi)
	if !ok {
		return "Unknown"
	}
	return b.Category
}

// Lookup mengembalikan band lengkap untuk nilai AQI.
func Lookup(aqi int) (Band, bool) {
	if aqi < 0 {
		return Band{}, false
	}
	for _, b := range Bands {
		if aqi >= b.Min && (b.Max < 0 || aqi <= b.Max) {
			return b, true
		}
	}
	return Band{}, false
}

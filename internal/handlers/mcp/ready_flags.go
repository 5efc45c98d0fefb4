// internal/handlers/mcp/ready_flags.go
package mcp

// Flag readiness per dependency; diset dari Set*(..) masing-masing.
var (
	readyScraper   bool
	readyLLM       bool
	readySlack     bool
	readyReports   bool
	readyPublisher bool
)

// DepsStatus mengembalikan status siap/tidaknya setiap dependency tool.
func DepsStatus() map[string]bool {
	return map[string]bool{
		"scraper":   readyScraper,
		"llm":       readyLLM,
		"slack":     readySlack,
		"reports":   readyReports,
		"publisher": readyPublisher,
	}
}

// internal/handlers/http/metrics_handler.go
// Handler untuk metrics Prometheus format sederhana

package http

import (
	"fmt"
	"net/http"

	"mcp-airquality/internal/services"
)

func MetricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	fmt.Fprintf(w, "# HELP app_up 1 if the app is up\n# TYPE app_up gauge\napp_up 1\n")
	fmt.Fprintf(w, "# HELP aq_reports_total number of report runs since start\n# TYPE aq_reports_total counter\naq_reports_total %d\n", services.ReportsTotal())
	fmt.Fprintf(w, "# HELP aq_reports_posted_total reports delivered to slack since start\n# TYPE aq_reports_posted_total counter\naq_reports_posted_total %d\n", services.PostedTotal())
	fmt.Fprintf(w, "# HELP aq_last_run_timestamp_seconds unix time of last pipeline run\n# TYPE aq_last_run_timestamp_seconds gauge\naq_last_run_timestamp_seconds %d\n", services.LastRunUnix())
}

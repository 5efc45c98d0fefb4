// internal/handlers/http/debug_tools.go
package http

import (
	"encoding/json"
	"net/http"
	"sort"

	mcphandlers "mcp-airquality/internal/handlers/mcp"
	"mcp-airquality/internal/mcp"
)

// ToolsStatusHandler: daftar tool terdaftar + readiness dependency-nya.
func ToolsStatusHandler(w http.ResponseWriter, r *http.Request) {
	tools := mcp.List()
	sort.Strings(tools)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"tools": tools,
		"deps":  mcphandlers.DepsStatus(),
	})
}

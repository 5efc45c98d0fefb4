// internal/server/router.go
package server

import (
	"net/http"
	"strings"

	"mcp-airquality/internal/mcp"
)

// NewMux: router minimal untuk binary mcp-router (tanpa mux/chi).
func NewMux() *http.ServeMux {
	m := http.NewServeMux()

	// Healthcheck (biar gampang cek port/path)
	m.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Router intent -> tool
	m.HandleFunc("/route", mcp.RouterHandler)

	// Eksekusi tool langsung by name: POST /tools/<nama_tool>
	m.HandleFunc("/tools/", func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/tools/")
		if name == "" || strings.Contains(name, "/") {
			http.Error(w, "tool name required", http.StatusBadRequest)
			return
		}
		mcp.Serve(w, r, name)
	})

	return m
}

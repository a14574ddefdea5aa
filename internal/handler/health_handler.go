package handler

import (
	"encoding/json"
	"io"
	"net/http"
)

const rootBanner = "totallook-jotform-bridge OK"

// Root answers plain text, kept for uptime probes that hit "/"
func Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, rootBanner)
}

// Health reports liveness only; Jotform is not contacted
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

package controller

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// errorEnvelope is the body of every failed response
type errorEnvelope struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, details any) {
	respondJSON(w, status, errorEnvelope{OK: false, Error: message, Details: details})
}

// rawOrText embeds an upstream body as JSON when it is JSON, as a string
// otherwise, and as null when empty.
func rawOrText(body []byte) any {
	if len(body) == 0 {
		return nil
	}
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	return string(body)
}

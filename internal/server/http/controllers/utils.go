package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Helper functions for common HTTP responses

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeJSON writes a JSON response with the given data.
func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

// writeNoContent writes a 204 No Content response.
func writeNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// parseTimestamp parses a timestamp query value into Unix milliseconds.
//
// Supports raw millisecond integers and RFC3339. Returns ok=false for empty
// or unparseable values.
func parseTimestamp(ts string) (int64, bool) {
	if ts == "" {
		return 0, false
	}
	if ms, err := strconv.ParseInt(ts, 10, 64); err == nil {
		return ms, true
	}
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t.UnixMilli(), true
	}
	return 0, false
}

// splitList splits a comma-separated query value, dropping blank entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

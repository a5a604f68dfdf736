package handlers

import (
	"encoding/json"
	"net/http"
)

// writeJSON serializes v with the given status. Encoding failures are
// ignored: the status line is already on the wire.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError emits the {"error":true,"message":...} envelope the
// frontend expects on every failure.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
	})
}

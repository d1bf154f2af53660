package api

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes body as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent, so an encode failure cannot be reported.
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError writes an Error body with the given status.
func WriteError(w http.ResponseWriter, status int, body Error) {
	WriteJSON(w, status, body)
}

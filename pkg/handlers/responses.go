package handlers

import (
	"encoding/json"
	"net/http"
)

// PingHandler - answers liveness checks.
func PingHandler(w http.ResponseWriter, _ *http.Request) {
	WriteText(w, http.StatusOK, "pong")
}

// WriteText - writes a plain text body with the given status.
func WriteText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(text))
}

// WriteJSON - writes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

package handlers

import (
	"encoding/json"
	"net/http"
)

// response is the JSON envelope every endpoint returns, matching what the
// frontend expects.
type response struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Success bool        `json:"success"`
	Error   bool        `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response{
		Message: message,
		Data:    data,
		Success: true,
		Error:   false,
	})
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response{
		Message: message,
		Success: false,
		Error:   true,
	})
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/financer-app/apiserver/types"
)

// ErrorResponse is the envelope every failure carries.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UserResponse wraps a user document for the endpoints that return an
// envelope (register, login, add-transaction). Get/update return the
// document directly; the frontend depends on that difference.
type UserResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	User    types.UserDocument `json:"user"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Success: false, Message: message})
}

func writeUser(w http.ResponseWriter, status int, message string, user types.UserDocument) {
	writeJSON(w, status, UserResponse{Success: true, Message: message, User: user})
}

// Healthz reports process liveness.
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

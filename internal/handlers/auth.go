package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/financer-app/apiserver/internal/services"
	"github.com/financer-app/apiserver/internal/store"
	"github.com/go-chi/chi/v5"
)

// AuthHandler provides the registration and login endpoints.
type AuthHandler struct {
	accounts *services.AccountService
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(accounts *services.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, accounts *services.AccountService) {
	handler := NewAuthHandler(accounts)

	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	user, err := h.accounts.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, "Email already registered")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeUser(w, http.StatusCreated, "Registration successful", user)
}

// Login authenticates an existing account. The failure message never hints
// at whether the email exists.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeUser(w, http.StatusOK, "Login successful", user)
}

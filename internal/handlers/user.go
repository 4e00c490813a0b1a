package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/financer-app/apiserver/internal/services"
	"github.com/financer-app/apiserver/internal/store"
	"github.com/financer-app/apiserver/types"
	"github.com/go-chi/chi/v5"
)

// UserHandler provides the user document endpoints.
type UserHandler struct {
	accounts     *services.AccountService
	users        *services.UserService
	transactions *services.TransactionService
}

// NewUserHandler constructs a UserHandler with the provided dependencies.
func NewUserHandler(accounts *services.AccountService, users *services.UserService, transactions *services.TransactionService) *UserHandler {
	return &UserHandler{
		accounts:     accounts,
		users:        users,
		transactions: transactions,
	}
}

// UserRouter registers the user document routes on the given router.
func UserRouter(r chi.Router, accounts *services.AccountService, users *services.UserService, transactions *services.TransactionService) {
	handler := NewUserHandler(accounts, users, transactions)

	r.Get("/user/{email}", handler.Get)
	r.Put("/user/{email}", handler.Update)
	r.Post("/user/{email}/transaction", handler.AddTransaction)
	r.Get("/users", handler.List)
}

// Get returns the document directly (not wrapped); the frontend caches it.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.accounts.GetByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Update merges a partial document into the stored one and returns the
// merged document directly. Budget edits, settings changes, and bulk
// transaction replacement all arrive here.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch types.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.Update(r.Context(), chi.URLParam(r, "email"), patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type TransactionRequest struct {
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Amount      *float64 `json:"amount"`
}

// AddTransaction appends one ledger entry through the dedicated path.
func (h *UserHandler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.transactions.AddTransaction(r.Context(), chi.URLParam(r, "email"), services.TransactionInput{
		Date:        req.Date,
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidTransaction):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		default:
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeUser(w, http.StatusOK, "Transaction added", user)
}

// List returns every document, credentials stripped. Debug endpoint.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.accounts.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

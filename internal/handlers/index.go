package handlers

import "net/http"

type endpointInfo struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// Index describes the API surface at the root path.
func Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status    string         `json:"status"`
		Message   string         `json:"message"`
		Endpoints []endpointInfo `json:"endpoints"`
	}{
		Status:  "running",
		Message: "FinanceR Backend API",
		Endpoints: []endpointInfo{
			{Method: "POST", Path: "/register", Description: "Create new account"},
			{Method: "POST", Path: "/login", Description: "Authenticate user"},
			{Method: "GET", Path: "/user/{email}", Description: "Get full user data"},
			{Method: "PUT", Path: "/user/{email}", Description: "Update user data"},
			{Method: "GET", Path: "/users", Description: "List users (debug)"},
			{Method: "POST", Path: "/user/{email}/transaction", Description: "Add a transaction (expense/income) for user"},
		},
	})
}

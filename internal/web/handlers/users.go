package handlers

import (
	"net/http"
	"strings"
)

type saveUserRequest struct {
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Weight float64 `json:"weight"`
}

// SaveUser handles the profile form: it updates the profile matching the
// submitted email, or creates a new one. On update, a blank name or zero
// weight falls back to the stored value, so a weight of exactly 0 can never
// be saved here.
func (h *Handlers) SaveUser(w http.ResponseWriter, r *http.Request) {
	var req saveUserRequest
	if err := decodeJSON(r, &req); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		h.jsonError(w, "Email is required", http.StatusBadRequest)
		return
	}

	existing, err := h.db.GetUserByEmail(req.Email)
	if err != nil {
		h.serverError(w, err, "Failed to look up user")
		return
	}

	if existing != nil {
		name := req.Name
		if name == "" {
			name = existing.Name
		}
		weight := existing.Weight
		if req.Weight > 0 {
			weight = &req.Weight
		}
		if err := h.db.UpdateUser(existing.ID, name, req.Email, weight); err != nil {
			h.serverError(w, err, "Failed to update user")
			return
		}
		h.writeJSON(w, http.StatusOK, map[string]any{"user_id": existing.ID, "created": false})
		return
	}

	if req.Name == "" {
		h.jsonError(w, "Name is required", http.StatusBadRequest)
		return
	}

	var weight *float64
	if req.Weight > 0 {
		weight = &req.Weight
	}

	id, err := h.db.CreateUser(req.Name, req.Email, weight)
	if err != nil {
		h.serverError(w, err, "Failed to create user")
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]any{"user_id": id, "created": true})
}

// ListUsers returns all user profiles ordered by name.
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.db.ListUsers()
	if err != nil {
		h.serverError(w, err, "Failed to list users")
		return
	}
	h.writeJSON(w, http.StatusOK, users)
}

// GetUser returns a single user by id.
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.jsonError(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	user, err := h.db.GetUserByID(id)
	if err != nil {
		h.serverError(w, err, "Failed to get user")
		return
	}
	if user == nil {
		h.jsonError(w, "User not found", http.StatusNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, user)
}

// LookupUser returns a single user by email (query param).
func (h *Handlers) LookupUser(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		h.jsonError(w, "email query parameter is required", http.StatusBadRequest)
		return
	}

	user, err := h.db.GetUserByEmail(email)
	if err != nil {
		h.serverError(w, err, "Failed to look up user")
		return
	}
	if user == nil {
		h.jsonError(w, "User not found", http.StatusNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, user)
}

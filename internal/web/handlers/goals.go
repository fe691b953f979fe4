package handlers

import (
	"net/http"
)

type createGoalRequest struct {
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// CreateGoal creates a goal for the active user. The end date must not be
// before the start date; that check lives here, not in the repository.
func (h *Handlers) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Description == "" {
		h.jsonError(w, "Description is required", http.StatusBadRequest)
		return
	}

	start, err := parseDateParam(req.StartDate)
	if err != nil {
		h.jsonError(w, "Invalid start date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	end, err := parseDateParam(req.EndDate)
	if err != nil {
		h.jsonError(w, "Invalid end date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if end.Before(start) {
		h.jsonError(w, "End date must be after start date", http.StatusBadRequest)
		return
	}

	user := h.activeUser(r)
	id, err := h.db.CreateGoal(user.ID, req.Description, start, end)
	if err != nil {
		h.serverError(w, err, "Failed to create goal")
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]int64{"goal_id": id})
}

// ListGoals returns the active user's goals, incomplete first.
func (h *Handlers) ListGoals(w http.ResponseWriter, r *http.Request) {
	user := h.activeUser(r)
	goals, err := h.db.ListGoals(user.ID)
	if err != nil {
		h.serverError(w, err, "Failed to list goals")
		return
	}
	h.writeJSON(w, http.StatusOK, goals)
}

type setGoalCompletedRequest struct {
	Completed bool `json:"completed"`
}

// SetGoalCompleted toggles a goal's completion flag, scoped to the active user.
func (h *Handlers) SetGoalCompleted(w http.ResponseWriter, r *http.Request) {
	goalID, err := urlID(r, "id")
	if err != nil {
		h.jsonError(w, "Invalid goal ID", http.StatusBadRequest)
		return
	}

	var req setGoalCompletedRequest
	if err := decodeJSON(r, &req); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user := h.activeUser(r)
	if err := h.db.SetGoalCompleted(goalID, user.ID, req.Completed); err != nil {
		h.serverError(w, err, "Failed to update goal")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DeleteGoal deletes one of the active user's goals, silent no-op on mismatch.
func (h *Handlers) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	goalID, err := urlID(r, "id")
	if err != nil {
		h.jsonError(w, "Invalid goal ID", http.StatusBadRequest)
		return
	}

	user := h.activeUser(r)
	if err := h.db.DeleteGoal(goalID, user.ID); err != nil {
		h.serverError(w, err, "Failed to delete goal")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

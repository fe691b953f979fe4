package handlers

import (
	"net/http"
	"time"
)

type logWorkoutRequest struct {
	Date            string `json:"date"`
	DurationMinutes int64  `json:"duration_minutes"`
}

// LogWorkout creates a workout for the active user.
func (h *Handlers) LogWorkout(w http.ResponseWriter, r *http.Request) {
	var req logWorkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	date, err := parseDateParam(req.Date)
	if err != nil {
		h.jsonError(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if req.DurationMinutes < 1 {
		h.jsonError(w, "Duration must be a positive number of minutes", http.StatusBadRequest)
		return
	}

	user := h.activeUser(r)
	id, err := h.db.LogWorkout(user.ID, date, req.DurationMinutes)
	if err != nil {
		h.serverError(w, err, "Failed to log workout")
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]int64{"workout_id": id})
}

// ListWorkouts returns the active user's workouts, optionally restricted to
// an inclusive date range when both start and end query params are given.
func (h *Handlers) ListWorkouts(w http.ResponseWriter, r *http.Request) {
	var start, end *time.Time
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr != "" && endStr != "" {
		s, err := parseDateParam(startStr)
		if err != nil {
			h.jsonError(w, "Invalid start date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		e, err := parseDateParam(endStr)
		if err != nil {
			h.jsonError(w, "Invalid end date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		start, end = &s, &e
	}

	user := h.activeUser(r)
	workouts, err := h.db.ListWorkouts(user.ID, start, end)
	if err != nil {
		h.serverError(w, err, "Failed to list workouts")
		return
	}
	h.writeJSON(w, http.StatusOK, workouts)
}

// DeleteWorkout deletes one of the active user's workouts. Deleting someone
// else's workout (or an unknown id) is a silent no-op.
func (h *Handlers) DeleteWorkout(w http.ResponseWriter, r *http.Request) {
	workoutID, err := urlID(r, "id")
	if err != nil {
		h.jsonError(w, "Invalid workout ID", http.StatusBadRequest)
		return
	}

	user := h.activeUser(r)
	if err := h.db.DeleteWorkout(workoutID, user.ID); err != nil {
		h.serverError(w, err, "Failed to delete workout")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type addExerciseRequest struct {
	Name         string  `json:"name"`
	Reps         int64   `json:"reps"`
	Sets         int64   `json:"sets"`
	WeightLifted float64 `json:"weight_lifted"`
}

// AddExercise adds an exercise to a workout. Zero-valued reps/sets/weight are
// recorded as unspecified.
func (h *Handlers) AddExercise(w http.ResponseWriter, r *http.Request) {
	workoutID, err := urlID(r, "id")
	if err != nil {
		h.jsonError(w, "Invalid workout ID", http.StatusBadRequest)
		return
	}

	var req addExerciseRequest
	if err := decodeJSON(r, &req); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		h.jsonError(w, "Exercise name is required", http.StatusBadRequest)
		return
	}

	var reps, sets *int64
	var weight *float64
	if req.Reps > 0 {
		reps = &req.Reps
	}
	if req.Sets > 0 {
		sets = &req.Sets
	}
	if req.WeightLifted > 0 {
		weight = &req.WeightLifted
	}

	id, err := h.db.AddExercise(workoutID, req.Name, reps, sets, weight)
	if err != nil {
		h.serverError(w, err, "Failed to add exercise")
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]int64{"exercise_id": id})
}

// ListExercises returns all exercises for a workout in insertion order.
func (h *Handlers) ListExercises(w http.ResponseWriter, r *http.Request) {
	workoutID, err := urlID(r, "id")
	if err != nil {
		h.jsonError(w, "Invalid workout ID", http.StatusBadRequest)
		return
	}

	exercises, err := h.db.ListExercises(workoutID)
	if err != nil {
		h.serverError(w, err, "Failed to list exercises")
		return
	}
	h.writeJSON(w, http.StatusOK, exercises)
}

// DeleteExercise deletes an exercise scoped to its workout, silent no-op on
// mismatch.
func (h *Handlers) DeleteExercise(w http.ResponseWriter, r *http.Request) {
	workoutID, err := urlID(r, "id")
	if err != nil {
		h.jsonError(w, "Invalid workout ID", http.StatusBadRequest)
		return
	}
	exerciseID, err := urlID(r, "exerciseID")
	if err != nil {
		h.jsonError(w, "Invalid exercise ID", http.StatusBadRequest)
		return
	}

	if err := h.db.DeleteExercise(exerciseID, workoutID); err != nil {
		h.serverError(w, err, "Failed to delete exercise")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

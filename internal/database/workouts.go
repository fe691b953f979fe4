package database

import (
	"fmt"
	"time"
)

// Workout represents a logged workout session.
type Workout struct {
	ID              int64     `json:"workout_id"`
	UserID          int64     `json:"user_id"`
	Date            time.Time `json:"date"`
	DurationMinutes int64     `json:"duration_minutes"`
}

// LogWorkout inserts a workout for a user and returns its id.
// Duration validation belongs to the caller.
func (db *DB) LogWorkout(userID int64, date time.Time, durationMinutes int64) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO workouts (user_id, workout_date, duration_minutes)
		VALUES (?, ?, ?)
	`, userID, formatDate(date), durationMinutes)
	if err != nil {
		return 0, fmt.Errorf("failed to log workout: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get workout id: %w", err)
	}
	return id, nil
}

// DeleteWorkout deletes a workout only when it belongs to the given user.
// A mismatched or unknown id affects zero rows and is not an error.
func (db *DB) DeleteWorkout(workoutID, userID int64) error {
	_, err := db.Exec("DELETE FROM workouts WHERE workout_id = ? AND user_id = ?", workoutID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete workout: %w", err)
	}
	return nil
}

// ListWorkouts returns a user's workouts ordered by date descending.
// When both bounds are given the result is restricted to the inclusive range;
// otherwise all workouts are returned.
func (db *DB) ListWorkouts(userID int64, start, end *time.Time) ([]*Workout, error) {
	query := `
		SELECT workout_id, user_id, workout_date, duration_minutes
		FROM workouts
		WHERE user_id = ?
		ORDER BY workout_date DESC`
	args := []any{userID}

	if start != nil && end != nil {
		query = `
		SELECT workout_id, user_id, workout_date, duration_minutes
		FROM workouts
		WHERE user_id = ? AND workout_date BETWEEN ? AND ?
		ORDER BY workout_date DESC`
		args = []any{userID, formatDate(*start), formatDate(*end)}
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	defer rows.Close()

	var workouts []*Workout
	for rows.Next() {
		w := &Workout{}
		var date string
		if err := rows.Scan(&w.ID, &w.UserID, &date, &w.DurationMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan workout: %w", err)
		}
		w.Date, err = parseDate(date)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

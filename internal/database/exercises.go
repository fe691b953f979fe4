package database

import (
	"database/sql"
	"fmt"
)

// Exercise represents a single exercise within a workout. Reps, sets and
// weight are optional; nil means the field was not recorded.
type Exercise struct {
	ID           int64    `json:"exercise_id"`
	WorkoutID    int64    `json:"workout_id"`
	Name         string   `json:"name"`
	Reps         *int64   `json:"reps,omitempty"`
	Sets         *int64   `json:"sets,omitempty"`
	WeightLifted *float64 `json:"weight_lifted,omitempty"`
}

// AddExercise inserts an exercise into a workout and returns its id.
func (db *DB) AddExercise(workoutID int64, name string, reps, sets *int64, weightLifted *float64) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO exercises (workout_id, exercise_name, reps, sets, weight_lifted)
		VALUES (?, ?, ?, ?, ?)
	`, workoutID, name, ptrToNullInt64(reps), ptrToNullInt64(sets), ptrToNullFloat64(weightLifted))
	if err != nil {
		return 0, fmt.Errorf("failed to add exercise: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get exercise id: %w", err)
	}
	return id, nil
}

// ListExercises returns all exercises for a workout in insertion order.
func (db *DB) ListExercises(workoutID int64) ([]*Exercise, error) {
	rows, err := db.Query(`
		SELECT exercise_id, workout_id, exercise_name, reps, sets, weight_lifted
		FROM exercises
		WHERE workout_id = ?
		ORDER BY exercise_id ASC
	`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []*Exercise
	for rows.Next() {
		e := &Exercise{}
		var reps, sets sql.NullInt64
		var weight sql.NullFloat64
		if err := rows.Scan(&e.ID, &e.WorkoutID, &e.Name, &reps, &sets, &weight); err != nil {
			return nil, fmt.Errorf("failed to scan exercise: %w", err)
		}
		e.Reps = nullInt64ToPtr(reps)
		e.Sets = nullInt64ToPtr(sets)
		e.WeightLifted = nullFloat64ToPtr(weight)
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

// DeleteExercise deletes an exercise only when it belongs to the given
// workout, mirroring the ownership scoping of workout deletes.
func (db *DB) DeleteExercise(exerciseID, workoutID int64) error {
	_, err := db.Exec("DELETE FROM exercises WHERE exercise_id = ? AND workout_id = ?", exerciseID, workoutID)
	if err != nil {
		return fmt.Errorf("failed to delete exercise: %w", err)
	}
	return nil
}

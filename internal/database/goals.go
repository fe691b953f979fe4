package database

import (
	"fmt"
	"time"
)

// Goal represents a user goal with a date range and completion flag.
type Goal struct {
	ID          int64     `json:"goal_id"`
	UserID      int64     `json:"user_id"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	IsCompleted bool      `json:"is_completed"`
}

// CreateGoal inserts a goal (not completed) and returns its id.
// Date-range validation belongs to the caller.
func (db *DB) CreateGoal(userID int64, description string, startDate, endDate time.Time) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO goals (user_id, goal_description, start_date, end_date, is_completed)
		VALUES (?, ?, ?, ?, 0)
	`, userID, description, formatDate(startDate), formatDate(endDate))
	if err != nil {
		return 0, fmt.Errorf("failed to create goal: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get goal id: %w", err)
	}
	return id, nil
}

// ListGoals returns a user's goals, incomplete first, then by end date ascending.
func (db *DB) ListGoals(userID int64) ([]*Goal, error) {
	rows, err := db.Query(`
		SELECT goal_id, user_id, goal_description, start_date, end_date, is_completed
		FROM goals
		WHERE user_id = ?
		ORDER BY is_completed ASC, end_date ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []*Goal
	for rows.Next() {
		g := &Goal{}
		var start, end string
		if err := rows.Scan(&g.ID, &g.UserID, &g.Description, &start, &end, &g.IsCompleted); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		if g.StartDate, err = parseDate(start); err != nil {
			return nil, err
		}
		if g.EndDate, err = parseDate(end); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// SetGoalCompleted updates a goal's completion flag, scoped to its owner.
// A mismatched or unknown id affects zero rows and is not an error.
func (db *DB) SetGoalCompleted(goalID, userID int64, completed bool) error {
	_, err := db.Exec("UPDATE goals SET is_completed = ? WHERE goal_id = ? AND user_id = ?", completed, goalID, userID)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	return nil
}

// DeleteGoal deletes a goal scoped to its owner, silent no-op on mismatch.
func (db *DB) DeleteGoal(goalID, userID int64) error {
	_, err := db.Exec("DELETE FROM goals WHERE goal_id = ? AND user_id = ?", goalID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}

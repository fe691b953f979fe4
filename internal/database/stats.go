package database

import (
	"fmt"
	"math"
	"time"
)

// LeaderboardMetric selects how the weekly leaderboard is ranked.
type LeaderboardMetric string

const (
	// MetricWorkouts ranks by number of workouts in the week.
	MetricWorkouts LeaderboardMetric = "workouts"
	// MetricMinutes ranks by total workout minutes in the week.
	MetricMinutes LeaderboardMetric = "minutes"
)

// LeaderboardEntry is one row of the weekly leaderboard.
type LeaderboardEntry struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Value  int64  `json:"value"`
}

// Insights summarizes a user's lifetime activity.
type Insights struct {
	TotalWorkouts  int64   `json:"total_workouts"`
	TotalMinutes   int64   `json:"total_minutes"`
	AvgDuration    float64 `json:"avg_duration"`
	MinDuration    int64   `json:"min_duration"`
	MaxDuration    int64   `json:"max_duration"`
	TotalExercises int64   `json:"total_exercises"`
}

// DailyMinutes is the total workout minutes logged on a single day.
type DailyMinutes struct {
	Date    time.Time `json:"date"`
	Minutes int64     `json:"minutes"`
}

// WeekBounds returns the Monday and Sunday of the ISO week containing today.
func WeekBounds(today time.Time) (time.Time, time.Time) {
	// time.Weekday has Sunday=0; shift so Monday=0
	offset := (int(today.Weekday()) + 6) % 7
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()).AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

// Leaderboard ranks the user and all of their friends by activity within the
// given week. Circle members without workouts in the window still appear with
// value 0. Rows are ordered by value descending, ties broken by name.
func (db *DB) Leaderboard(userID int64, metric LeaderboardMetric, weekStart, weekEnd time.Time) ([]*LeaderboardEntry, error) {
	metricSQL := "COALESCE(SUM(w.duration_minutes), 0)"
	if metric == MetricWorkouts {
		metricSQL = "COUNT(w.workout_id)"
	}

	rows, err := db.Query(fmt.Sprintf(`
		WITH circle AS (
			SELECT ? AS uid
			UNION
			SELECT CASE WHEN f.user_id = ? THEN f.friend_id ELSE f.user_id END AS uid
			FROM friends f
			WHERE f.user_id = ? OR f.friend_id = ?
		)
		SELECT u.user_id, u.name, %s AS value
		FROM circle c
		JOIN users u ON u.user_id = c.uid
		LEFT JOIN workouts w
		  ON w.user_id = u.user_id
		 AND w.workout_date BETWEEN ? AND ?
		GROUP BY u.user_id, u.name
		ORDER BY value DESC, u.name ASC
	`, metricSQL), userID, userID, userID, userID, formatDate(weekStart), formatDate(weekEnd))
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*LeaderboardEntry
	for rows.Next() {
		e := &LeaderboardEntry{}
		if err := rows.Scan(&e.UserID, &e.Name, &e.Value); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// UserInsights computes lifetime summary statistics for a user. A user with
// no workouts gets all zeros.
func (db *DB) UserInsights(userID int64) (*Insights, error) {
	stats := &Insights{}
	var avg float64
	err := db.QueryRow(`
		SELECT
			COUNT(w.workout_id),
			COALESCE(SUM(w.duration_minutes), 0),
			COALESCE(AVG(w.duration_minutes), 0),
			COALESCE(MIN(w.duration_minutes), 0),
			COALESCE(MAX(w.duration_minutes), 0)
		FROM workouts w
		WHERE w.user_id = ?
	`, userID).Scan(&stats.TotalWorkouts, &stats.TotalMinutes, &avg, &stats.MinDuration, &stats.MaxDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to query workout stats: %w", err)
	}
	stats.AvgDuration = math.Round(avg*100) / 100

	err = db.QueryRow(`
		SELECT COUNT(e.exercise_id)
		FROM workouts w
		JOIN exercises e ON e.workout_id = w.workout_id
		WHERE w.user_id = ?
	`, userID).Scan(&stats.TotalExercises)
	if err != nil {
		return nil, fmt.Errorf("failed to query exercise stats: %w", err)
	}

	return stats, nil
}

// MinutesPerDay sums workout minutes per day within the inclusive range,
// ordered by date ascending. Days without workouts are omitted.
func (db *DB) MinutesPerDay(userID int64, start, end time.Time) ([]*DailyMinutes, error) {
	rows, err := db.Query(`
		SELECT workout_date, SUM(duration_minutes)
		FROM workouts
		WHERE user_id = ? AND workout_date BETWEEN ? AND ?
		GROUP BY workout_date
		ORDER BY workout_date ASC
	`, userID, formatDate(start), formatDate(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query minutes per day: %w", err)
	}
	defer rows.Close()

	var days []*DailyMinutes
	for rows.Next() {
		d := &DailyMinutes{}
		var date string
		if err := rows.Scan(&date, &d.Minutes); err != nil {
			return nil, fmt.Errorf("failed to scan daily minutes: %w", err)
		}
		if d.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

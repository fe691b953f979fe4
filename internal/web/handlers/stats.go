package handlers

import (
	"net/http"
	"time"

	"github.com/fittrack/fittrack/internal/database"
)

type leaderboardResponse struct {
	Metric    database.LeaderboardMetric   `json:"metric"`
	WeekStart string                       `json:"week_start"`
	WeekEnd   string                       `json:"week_end"`
	Entries   []*database.LeaderboardEntry `json:"entries"`
}

// Leaderboard ranks the active user's circle over the current ISO week
// (Monday through Sunday of the server date).
func (h *Handlers) Leaderboard(w http.ResponseWriter, r *http.Request) {
	metric := database.LeaderboardMetric(r.URL.Query().Get("metric"))
	if metric == "" {
		metric = database.MetricWorkouts
	}
	if metric != database.MetricWorkouts && metric != database.MetricMinutes {
		h.jsonError(w, "Invalid metric, expected workouts or minutes", http.StatusBadRequest)
		return
	}

	weekStart, weekEnd := database.WeekBounds(time.Now())

	user := h.activeUser(r)
	entries, err := h.db.Leaderboard(user.ID, metric, weekStart, weekEnd)
	if err != nil {
		h.serverError(w, err, "Failed to compute leaderboard")
		return
	}

	h.writeJSON(w, http.StatusOK, leaderboardResponse{
		Metric:    metric,
		WeekStart: weekStart.Format(database.DateLayout),
		WeekEnd:   weekEnd.Format(database.DateLayout),
		Entries:   entries,
	})
}

type insightsResponse struct {
	*database.Insights
	Last30Days []*database.DailyMinutes `json:"last_30_days"`
}

// Insights returns the active user's lifetime summary plus the minutes-per-day
// trend for the last 30 days.
func (h *Handlers) Insights(w http.ResponseWriter, r *http.Request) {
	user := h.activeUser(r)

	stats, err := h.db.UserInsights(user.ID)
	if err != nil {
		h.serverError(w, err, "Failed to compute insights")
		return
	}

	now := time.Now()
	trend, err := h.db.MinutesPerDay(user.ID, now.AddDate(0, 0, -30), now)
	if err != nil {
		h.serverError(w, err, "Failed to compute trend")
		return
	}

	h.writeJSON(w, http.StatusOK, insightsResponse{
		Insights:   stats,
		Last30Days: trend,
	})
}

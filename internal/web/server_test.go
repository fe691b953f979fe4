package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/fittrack/fittrack/internal/config"
	"github.com/fittrack/fittrack/internal/database"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return NewServer(db, config.NewLoader(db), 0, "", nil)
}

// doJSON performs a request against the router and returns the recorder.
func doJSON(t *testing.T, s *Server, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

// selectUser creates a session for the user and returns the session cookies.
func selectUser(t *testing.T, s *Server, userID int64) []*http.Cookie {
	t.Helper()

	rec := doJSON(t, s, http.MethodPost, "/api/session", map[string]int64{"user_id": userID}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating session, got %d: %s", rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}
	return cookies
}

func createUser(t *testing.T, s *Server, name, email string, weight float64) int64 {
	t.Helper()

	rec := doJSON(t, s, http.MethodPost, "/api/users", map[string]any{
		"name": name, "email": email, "weight": weight,
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating user, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		UserID int64 `json:"user_id"`
	}
	decodeBody(t, rec, &resp)
	return resp.UserID
}

func TestStatus_FirstRun(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/status", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]bool
	decodeBody(t, rec, &resp)
	if resp["has_users"] {
		t.Fatal("expected has_users=false on a fresh database")
	}
}

func TestSaveUser_UpdateFallsBackToExistingValues(t *testing.T) {
	s := newTestServer(t)

	createUser(t, s, "Alice", "alice@example.com", 70)

	// Resubmitting the form with a blank name and zero weight keeps both
	rec := doJSON(t, s, http.MethodPost, "/api/users", map[string]any{
		"name": "", "email": "alice@example.com", "weight": 0,
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 updating user, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, s, http.MethodGet, "/api/users/lookup?email=alice@example.com", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var user struct {
		Name   string   `json:"name"`
		Weight *float64 `json:"weight"`
	}
	decodeBody(t, rec, &user)
	if user.Name != "Alice" {
		t.Fatalf("expected name to fall back to Alice, got %q", user.Name)
	}
	if user.Weight == nil || *user.Weight != 70 {
		t.Fatalf("expected weight to fall back to 70, got %v", user.Weight)
	}
}

func TestScopedRoutes_RequireSession(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/workouts", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session, got %d", rec.Code)
	}
}

func TestSessionCreate_UnknownUser(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/session", map[string]int64{"user_id": 42}, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", rec.Code)
	}
}

func TestAddFriend_SelfRejected(t *testing.T) {
	s := newTestServer(t)

	alice := createUser(t, s, "Alice", "alice@example.com", 0)
	cookies := selectUser(t, s, alice)

	rec := doJSON(t, s, http.MethodPost, "/api/friends", map[string]int64{"friend_id": alice}, cookies)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 adding self as friend, got %d", rec.Code)
	}
}

func TestCreateGoal_RejectsInvertedRange(t *testing.T) {
	s := newTestServer(t)

	alice := createUser(t, s, "Alice", "alice@example.com", 0)
	cookies := selectUser(t, s, alice)

	rec := doJSON(t, s, http.MethodPost, "/api/goals", map[string]string{
		"description": "backwards",
		"start_date":  "2024-02-01",
		"end_date":    "2024-01-01",
	}, cookies)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", rec.Code)
	}
}

func TestWorkoutAndLeaderboardFlow(t *testing.T) {
	s := newTestServer(t)

	alice := createUser(t, s, "Alice", "alice@example.com", 70)
	bob := createUser(t, s, "Bob", "bob@example.com", 0)

	cookies := selectUser(t, s, alice)

	rec := doJSON(t, s, http.MethodPost, "/api/friends", map[string]int64{"friend_id": bob}, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 adding friend, got %d: %s", rec.Code, rec.Body.String())
	}

	today := time.Now().Format(database.DateLayout)
	rec = doJSON(t, s, http.MethodPost, "/api/workouts", map[string]any{
		"date": today, "duration_minutes": 30,
	}, cookies)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 logging workout, got %d: %s", rec.Code, rec.Body.String())
	}
	var workoutResp struct {
		WorkoutID int64 `json:"workout_id"`
	}
	decodeBody(t, rec, &workoutResp)

	rec = doJSON(t, s, http.MethodGet, "/api/leaderboard?metric=minutes", nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var board struct {
		Metric  string `json:"metric"`
		Entries []struct {
			UserID int64 `json:"user_id"`
			Value  int64 `json:"value"`
		} `json:"entries"`
	}
	decodeBody(t, rec, &board)
	if board.Metric != "minutes" {
		t.Fatalf("expected minutes metric, got %s", board.Metric)
	}
	if len(board.Entries) != 2 {
		t.Fatalf("expected 2 leaderboard rows, got %d", len(board.Entries))
	}
	if board.Entries[0].UserID != alice || board.Entries[0].Value != 30 {
		t.Fatalf("expected (alice, 30) first, got %+v", board.Entries[0])
	}
	if board.Entries[1].UserID != bob || board.Entries[1].Value != 0 {
		t.Fatalf("expected (bob, 0) second, got %+v", board.Entries[1])
	}

	// Bob cannot delete Alice's workout, and the no-op is not an error
	bobCookies := selectUser(t, s, bob)
	rec = doJSON(t, s, http.MethodDelete, fmt.Sprintf("/api/workouts/%d", workoutResp.WorkoutID), nil, bobCookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for ownership-mismatched delete, got %d", rec.Code)
	}
	rec = doJSON(t, s, http.MethodGet, "/api/workouts", nil, cookies)
	var workouts []struct {
		WorkoutID int64 `json:"workout_id"`
	}
	decodeBody(t, rec, &workouts)
	if len(workouts) != 1 {
		t.Fatalf("expected Alice's workout to survive, got %d workouts", len(workouts))
	}
}

func TestInvalidLeaderboardMetric(t *testing.T) {
	s := newTestServer(t)

	alice := createUser(t, s, "Alice", "alice@example.com", 0)
	cookies := selectUser(t, s, alice)

	rec := doJSON(t, s, http.MethodGet, "/api/leaderboard?metric=steps", nil, cookies)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown metric, got %d", rec.Code)
	}
}

func TestInsights_EmptyUser(t *testing.T) {
	s := newTestServer(t)

	alice := createUser(t, s, "Alice", "alice@example.com", 0)
	cookies := selectUser(t, s, alice)

	rec := doJSON(t, s, http.MethodGet, "/api/insights", nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		TotalWorkouts  int64   `json:"total_workouts"`
		TotalMinutes   int64   `json:"total_minutes"`
		AvgDuration    float64 `json:"avg_duration"`
		TotalExercises int64   `json:"total_exercises"`
	}
	decodeBody(t, rec, &resp)
	if resp.TotalWorkouts != 0 || resp.TotalMinutes != 0 || resp.AvgDuration != 0 || resp.TotalExercises != 0 {
		t.Fatalf("expected all-zero insights, got %+v", resp)
	}
}

func TestSessionDelete(t *testing.T) {
	s := newTestServer(t)

	alice := createUser(t, s, "Alice", "alice@example.com", 0)
	cookies := selectUser(t, s, alice)

	rec := doJSON(t, s, http.MethodDelete, "/api/session", nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 deleting session, got %d", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/session", nil, cookies)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/fittrack/fittrack/internal/config"
	"github.com/fittrack/fittrack/internal/database"
	"github.com/fittrack/fittrack/internal/web/middleware"
)

// DefaultSessionTTLHours is how long an active-user selection lasts without activity.
const DefaultSessionTTLHours = 168

// Handlers contains all HTTP handlers
type Handlers struct {
	db     *database.DB
	loader *config.Loader
}

// New creates a new Handlers instance
func New(db *database.DB, loader *config.Loader) *Handlers {
	return &Handlers{
		db:     db,
		loader: loader,
	}
}

// SessionTTL returns the configured session lifetime.
func (h *Handlers) SessionTTL() time.Duration {
	return h.loader.DurationHours("session.ttl_hours", DefaultSessionTTLHours)
}

// activeUser returns the user resolved by the session middleware.
func (h *Handlers) activeUser(r *http.Request) *database.User {
	return middleware.GetUser(r.Context())
}

// urlID parses the {id} URL parameter.
func urlID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// decodeJSON decodes a JSON request body into v
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// writeJSON sends a JSON response
func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// jsonError sends a JSON error response
func (h *Handlers) jsonError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

// serverError logs err and sends a generic 500
func (h *Handlers) serverError(w http.ResponseWriter, err error, msg string) {
	log.Error().Err(err).Msg(msg)
	h.jsonError(w, "Internal server error", http.StatusInternalServerError)
}

// parseDateParam parses a YYYY-MM-DD value
func parseDateParam(value string) (time.Time, error) {
	return time.Parse(database.DateLayout, value)
}

package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/fittrack/fittrack/internal/web/middleware"
)

type createSessionRequest struct {
	UserID int64 `json:"user_id"`
}

// SessionCreate selects the active user for this browser and sets the
// session cookie.
func (h *Handlers) SessionCreate(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.db.GetUserByID(req.UserID)
	if err != nil {
		h.serverError(w, err, "Failed to get user")
		return
	}
	if user == nil {
		h.jsonError(w, "User not found", http.StatusNotFound)
		return
	}

	ttl := h.SessionTTL()
	session, err := h.db.CreateSession(uuid.NewString(), user.ID, time.Now().Add(ttl))
	if err != nil {
		h.serverError(w, err, "Failed to create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    session.ID,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	h.writeJSON(w, http.StatusCreated, user)
}

// SessionCurrent returns the profile the session is acting as.
func (h *Handlers) SessionCurrent(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.activeUser(r))
}

// SessionDelete drops the active-user selection.
func (h *Handlers) SessionDelete(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session != nil {
		if err := h.db.DeleteSession(session.ID); err != nil {
			h.serverError(w, err, "Failed to delete session")
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Status is the public first-run signal: whether any profiles exist yet.
func (h *Handlers) Status(w http.ResponseWriter, r *http.Request) {
	hasUsers, err := h.db.HasUsers()
	if err != nil {
		h.serverError(w, err, "Failed to check users")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"has_users": hasUsers})
}

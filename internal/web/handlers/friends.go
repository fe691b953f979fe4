package handlers

import (
	"errors"
	"net/http"

	"github.com/fittrack/fittrack/internal/database"
)

type addFriendRequest struct {
	FriendID int64 `json:"friend_id"`
}

// AddFriend records a friendship between the active user and another user.
func (h *Handlers) AddFriend(w http.ResponseWriter, r *http.Request) {
	var req addFriendRequest
	if err := decodeJSON(r, &req); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user := h.activeUser(r)
	if err := h.db.AddFriendship(user.ID, req.FriendID); err != nil {
		if errors.Is(err, database.ErrSelfFriendship) {
			h.jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.serverError(w, err, "Failed to add friendship")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// RemoveFriend removes a friendship. Removing a non-friend is a no-op.
func (h *Handlers) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	friendID, err := urlID(r, "id")
	if err != nil {
		h.jsonError(w, "Invalid friend ID", http.StatusBadRequest)
		return
	}

	user := h.activeUser(r)
	if err := h.db.RemoveFriendship(user.ID, friendID); err != nil {
		h.serverError(w, err, "Failed to remove friendship")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ListFriends returns the active user's friends ordered by name.
func (h *Handlers) ListFriends(w http.ResponseWriter, r *http.Request) {
	user := h.activeUser(r)
	friends, err := h.db.ListFriends(user.ID)
	if err != nil {
		h.serverError(w, err, "Failed to list friends")
		return
	}
	h.writeJSON(w, http.StatusOK, friends)
}

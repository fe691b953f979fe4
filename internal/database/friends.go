package database

import (
	"errors"
	"fmt"
)

// ErrSelfFriendship is returned when a user tries to add themselves as a friend.
var ErrSelfFriendship = errors.New("cannot add yourself as a friend")

// canonicalPair orders a friendship pair with the smaller id first. Every
// friendship is stored exactly once, regardless of which side initiated it.
func canonicalPair(userID, friendID int64) (int64, int64) {
	if userID < friendID {
		return userID, friendID
	}
	return friendID, userID
}

// AddFriendship records a friendship between two users. Adding an existing
// friendship is a no-op; adding yourself is a validation error.
func (db *DB) AddFriendship(userID, friendID int64) error {
	if userID == friendID {
		return ErrSelfFriendship
	}

	a, b := canonicalPair(userID, friendID)
	_, err := db.Exec(`
		INSERT INTO friends (user_id, friend_id)
		VALUES (?, ?)
		ON CONFLICT (user_id, friend_id) DO NOTHING
	`, a, b)
	if err != nil {
		return fmt.Errorf("failed to add friendship: %w", err)
	}
	return nil
}

// RemoveFriendship deletes a friendship. Removing a pair that does not exist
// is a silent no-op.
func (db *DB) RemoveFriendship(userID, friendID int64) error {
	a, b := canonicalPair(userID, friendID)
	_, err := db.Exec("DELETE FROM friends WHERE user_id = ? AND friend_id = ?", a, b)
	if err != nil {
		return fmt.Errorf("failed to remove friendship: %w", err)
	}
	return nil
}

// ListFriends returns the other party of every friendship the user
// participates in, ordered by name ascending.
func (db *DB) ListFriends(userID int64) ([]*User, error) {
	rows, err := db.Query(`
		SELECT u.user_id, u.name, u.email, u.weight
		FROM friends f
		JOIN users u ON u.user_id = CASE WHEN f.user_id = ? THEN f.friend_id ELSE f.user_id END
		WHERE f.user_id = ? OR f.friend_id = ?
		ORDER BY u.name ASC
	`, userID, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

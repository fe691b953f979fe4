package database

import (
	"database/sql"
	"fmt"
)

// User represents a user profile stored in the database.
type User struct {
	ID     int64    `json:"user_id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Weight *float64 `json:"weight,omitempty"`
}

// CreateUser inserts a new user profile and returns its id.
// A duplicate email surfaces as the store's unique constraint error.
func (db *DB) CreateUser(name, email string, weight *float64) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO users (name, email, weight)
		VALUES (?, ?, ?)
	`, name, email, ptrToNullFloat64(weight))
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get user id: %w", err)
	}
	return id, nil
}

// GetUserByEmail retrieves a user by email. Returns nil when no user matches.
func (db *DB) GetUserByEmail(email string) (*User, error) {
	return db.getUser("SELECT user_id, name, email, weight FROM users WHERE email = ?", email)
}

// GetUserByID retrieves a user by id. Returns nil when no user matches.
func (db *DB) GetUserByID(id int64) (*User, error) {
	return db.getUser("SELECT user_id, name, email, weight FROM users WHERE user_id = ?", id)
}

func (db *DB) getUser(query string, arg any) (*User, error) {
	user := &User{}
	var weight sql.NullFloat64
	err := db.QueryRow(query, arg).Scan(&user.ID, &user.Name, &user.Email, &weight)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.Weight = nullFloat64ToPtr(weight)
	return user, nil
}

// UpdateUser overwrites all mutable fields of a user unconditionally.
// Updating a non-existent id affects zero rows and is not an error.
func (db *DB) UpdateUser(id int64, name, email string, weight *float64) error {
	_, err := db.Exec(`
		UPDATE users
		SET name = ?, email = ?, weight = ?
		WHERE user_id = ?
	`, name, email, ptrToNullFloat64(weight), id)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// ListUsers returns all users ordered by name ascending.
func (db *DB) ListUsers() ([]*User, error) {
	rows, err := db.Query("SELECT user_id, name, email, weight FROM users ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

func scanUsers(rows *sql.Rows) ([]*User, error) {
	var users []*User
	for rows.Next() {
		user := &User{}
		var weight sql.NullFloat64
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &weight); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		user.Weight = nullFloat64ToPtr(weight)
		users = append(users, user)
	}
	return users, rows.Err()
}

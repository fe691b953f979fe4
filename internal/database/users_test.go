package database

import (
	"strings"
	"testing"
)

func TestCreateUser_RoundTripsByEmail(t *testing.T) {
	db := openTestDB(t)

	weight := 70.5
	id, err := db.CreateUser("Alice", "alice@example.com", &weight)
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a generated id")
	}

	user, err := db.GetUserByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail returned error: %v", err)
	}
	if user == nil {
		t.Fatal("expected user to exist")
	}
	if user.ID != id {
		t.Fatalf("expected id %d, got %d", id, user.ID)
	}
	if user.Name != "Alice" || user.Email != "alice@example.com" {
		t.Fatalf("unexpected fields: %+v", user)
	}
	if user.Weight == nil || *user.Weight != 70.5 {
		t.Fatalf("expected weight 70.5, got %v", user.Weight)
	}
}

func TestCreateUser_AbsentWeightStaysAbsent(t *testing.T) {
	db := openTestDB(t)

	id := createTestUser(t, db, "Bob", "bob@example.com")

	user, err := db.GetUserByID(id)
	if err != nil {
		t.Fatalf("GetUserByID returned error: %v", err)
	}
	if user == nil {
		t.Fatal("expected user to exist")
	}
	if user.Weight != nil {
		t.Fatalf("expected nil weight, got %v", *user.Weight)
	}
}

func TestCreateUser_DuplicateEmailFails(t *testing.T) {
	db := openTestDB(t)

	createTestUser(t, db, "Alice", "alice@example.com")
	_, err := db.CreateUser("Other Alice", "alice@example.com", nil)
	if err == nil {
		t.Fatal("expected unique constraint error for duplicate email")
	}
	if !strings.Contains(strings.ToLower(err.Error()), "unique") {
		t.Fatalf("expected constraint error, got: %v", err)
	}
}

func TestGetUser_MissingReturnsNil(t *testing.T) {
	db := openTestDB(t)

	user, err := db.GetUserByID(12345)
	if err != nil {
		t.Fatalf("GetUserByID returned error: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil for missing user, got %+v", user)
	}

	user, err = db.GetUserByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail returned error: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil for missing user, got %+v", user)
	}
}

func TestUpdateUser_OverwritesAllFields(t *testing.T) {
	db := openTestDB(t)

	id := createTestUser(t, db, "Alice", "alice@example.com")

	weight := 65.0
	if err := db.UpdateUser(id, "Alicia", "alicia@example.com", &weight); err != nil {
		t.Fatalf("UpdateUser returned error: %v", err)
	}

	user, err := db.GetUserByID(id)
	if err != nil {
		t.Fatalf("GetUserByID returned error: %v", err)
	}
	if user.Name != "Alicia" || user.Email != "alicia@example.com" {
		t.Fatalf("unexpected fields after update: %+v", user)
	}
	if user.Weight == nil || *user.Weight != 65.0 {
		t.Fatalf("expected weight 65.0, got %v", user.Weight)
	}

	// Overwriting with nil clears the weight
	if err := db.UpdateUser(id, "Alicia", "alicia@example.com", nil); err != nil {
		t.Fatalf("UpdateUser returned error: %v", err)
	}
	user, _ = db.GetUserByID(id)
	if user.Weight != nil {
		t.Fatalf("expected weight cleared, got %v", *user.Weight)
	}
}

func TestUpdateUser_UnknownIDIsNoOp(t *testing.T) {
	db := openTestDB(t)

	if err := db.UpdateUser(999, "Ghost", "ghost@example.com", nil); err != nil {
		t.Fatalf("expected silent no-op, got error: %v", err)
	}
}

func TestListUsers_OrderedByName(t *testing.T) {
	db := openTestDB(t)

	createTestUser(t, db, "Charlie", "charlie@example.com")
	createTestUser(t, db, "Alice", "alice@example.com")
	createTestUser(t, db, "Bob", "bob@example.com")

	users, err := db.ListUsers()
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
	for i, want := range []string{"Alice", "Bob", "Charlie"} {
		if users[i].Name != want {
			t.Fatalf("expected %s at position %d, got %s", want, i, users[i].Name)
		}
	}
}

func TestHasUsers(t *testing.T) {
	db := openTestDB(t)

	has, err := db.HasUsers()
	if err != nil {
		t.Fatalf("HasUsers returned error: %v", err)
	}
	if has {
		t.Fatal("expected no users in a fresh database")
	}

	createTestUser(t, db, "Alice", "alice@example.com")

	has, err = db.HasUsers()
	if err != nil {
		t.Fatalf("HasUsers returned error: %v", err)
	}
	if !has {
		t.Fatal("expected HasUsers to be true after creating a user")
	}
}

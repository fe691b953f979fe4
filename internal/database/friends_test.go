package database

import (
	"errors"
	"testing"
)

func TestAddFriendship_SelfIsValidationError(t *testing.T) {
	db := openTestDB(t)

	id := createTestUser(t, db, "Alice", "alice@example.com")

	err := db.AddFriendship(id, id)
	if !errors.Is(err, ErrSelfFriendship) {
		t.Fatalf("expected ErrSelfFriendship, got %v", err)
	}
}

func TestAddFriendship_OrderIndependentAndIdempotent(t *testing.T) {
	db := openTestDB(t)

	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	if err := db.AddFriendship(alice, bob); err != nil {
		t.Fatalf("AddFriendship returned error: %v", err)
	}
	// Reciprocal add and repeat add are both no-ops
	if err := db.AddFriendship(bob, alice); err != nil {
		t.Fatalf("reciprocal AddFriendship returned error: %v", err)
	}
	if err := db.AddFriendship(alice, bob); err != nil {
		t.Fatalf("repeated AddFriendship returned error: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM friends").Scan(&count); err != nil {
		t.Fatalf("failed to count friendship rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one friendship row, got %d", count)
	}
}

func TestListFriends_Symmetric(t *testing.T) {
	db := openTestDB(t)

	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	if err := db.AddFriendship(alice, bob); err != nil {
		t.Fatalf("AddFriendship returned error: %v", err)
	}

	aliceFriends, err := db.ListFriends(alice)
	if err != nil {
		t.Fatalf("ListFriends returned error: %v", err)
	}
	if len(aliceFriends) != 1 || aliceFriends[0].ID != bob {
		t.Fatalf("expected Bob in Alice's friends, got %+v", aliceFriends)
	}

	bobFriends, err := db.ListFriends(bob)
	if err != nil {
		t.Fatalf("ListFriends returned error: %v", err)
	}
	if len(bobFriends) != 1 || bobFriends[0].ID != alice {
		t.Fatalf("expected Alice in Bob's friends, got %+v", bobFriends)
	}
}

func TestListFriends_OrderedByName(t *testing.T) {
	db := openTestDB(t)

	alice := createTestUser(t, db, "Alice", "alice@example.com")
	carol := createTestUser(t, db, "Carol", "carol@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	if err := db.AddFriendship(carol, alice); err != nil {
		t.Fatalf("AddFriendship returned error: %v", err)
	}
	if err := db.AddFriendship(alice, bob); err != nil {
		t.Fatalf("AddFriendship returned error: %v", err)
	}

	friends, err := db.ListFriends(alice)
	if err != nil {
		t.Fatalf("ListFriends returned error: %v", err)
	}
	if len(friends) != 2 {
		t.Fatalf("expected 2 friends, got %d", len(friends))
	}
	if friends[0].Name != "Bob" || friends[1].Name != "Carol" {
		t.Fatalf("expected [Bob, Carol], got [%s, %s]", friends[0].Name, friends[1].Name)
	}
}

func TestRemoveFriendship(t *testing.T) {
	db := openTestDB(t)

	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	if err := db.AddFriendship(alice, bob); err != nil {
		t.Fatalf("AddFriendship returned error: %v", err)
	}

	// Removal normalizes the pair the same way as insertion
	if err := db.RemoveFriendship(bob, alice); err != nil {
		t.Fatalf("RemoveFriendship returned error: %v", err)
	}

	friends, err := db.ListFriends(alice)
	if err != nil {
		t.Fatalf("ListFriends returned error: %v", err)
	}
	if len(friends) != 0 {
		t.Fatalf("expected no friends after removal, got %d", len(friends))
	}

	// Removing an absent pair is a silent no-op
	if err := db.RemoveFriendship(alice, bob); err != nil {
		t.Fatalf("expected silent no-op, got error: %v", err)
	}
}

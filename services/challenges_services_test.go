package services

import (
	"errors"
	"testing"
	"time"

	"pqapi/models"
)

func TestGetVisibleChallengeHidesDrafts(t *testing.T) {
	db := setupTestDB(t)

	easy := createSet(t, db, "Easy", 10, 60)
	challenge := createChallenge(t, db, []*models.Set{easy}, nil)
	if err := db.Model(challenge).Update("status", models.ChallengeDraft).Error; err != nil {
		t.Fatalf("failed to demote challenge: %v", err)
	}
	staff := &models.User{ID: 999, IsStaff: true}
	regular := createUser(t, db, "alice")

	if _, err := GetVisibleChallenge(challenge.ID, regular); !errors.Is(err, ErrNotFound) {
		t.Errorf("draft visible to regular user: err = %v, want ErrNotFound", err)
	}
	if _, err := GetVisibleChallenge(challenge.ID, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("draft visible anonymously: err = %v, want ErrNotFound", err)
	}

	got, err := GetVisibleChallenge(challenge.ID, staff)
	if err != nil {
		t.Fatalf("draft hidden from staff: %v", err)
	}
	if len(got.Sets) != 1 || got.Sets[0].ID != easy.ID {
		t.Errorf("sets not preloaded: %+v", got.Sets)
	}
}

func TestListVisibleChallenges(t *testing.T) {
	db := setupTestDB(t)

	easy := createSet(t, db, "Easy", 10, 60)
	running := createChallenge(t, db, []*models.Set{easy}, nil)
	draft := createChallenge(t, db, nil, nil)
	if err := db.Model(draft).Update("status", models.ChallengeDraft).Error; err != nil {
		t.Fatalf("failed to demote challenge: %v", err)
	}

	visible, err := ListVisibleChallenges(nil)
	if err != nil {
		t.Fatalf("ListVisibleChallenges: %v", err)
	}
	if len(visible) != 1 || visible[0].ID != running.ID {
		t.Errorf("anonymous list = %d challenges, want only the running one", len(visible))
	}

	staff := &models.User{ID: 999, IsStaff: true}
	visible, err = ListVisibleChallenges(staff)
	if err != nil {
		t.Fatalf("ListVisibleChallenges: %v", err)
	}
	if len(visible) != 2 {
		t.Errorf("staff list = %d challenges, want 2", len(visible))
	}
}

func TestUserSolutionsKeyedBySet(t *testing.T) {
	db := setupTestDB(t)

	easy := createSet(t, db, "Easy", 10, 60)
	hard := createSet(t, db, "Hard", 20, 120)
	challenge := createChallenge(t, db, []*models.Set{easy, hard}, nil)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	now := time.Now()
	completeSolution(t, db, challenge.ID, alice.ID, easy.ID, now.Add(-time.Hour), now)
	completeSolution(t, db, challenge.ID, bob.ID, easy.ID, now.Add(-time.Hour), now)

	solutions, err := UserSolutions(challenge.ID, alice.ID)
	if err != nil {
		t.Fatalf("UserSolutions: %v", err)
	}
	if len(solutions) != 1 {
		t.Fatalf("solutions = %d, want only alice's", len(solutions))
	}
	sol, ok := solutions[easy.ID]
	if !ok {
		t.Fatal("solution not keyed by set id")
	}
	if sol.AuthorID != alice.ID {
		t.Errorf("author = %d, want %d", sol.AuthorID, alice.ID)
	}
	if sol.Set == nil || sol.Set.ID != easy.ID {
		t.Error("set not preloaded")
	}
}

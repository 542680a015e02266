package services

import (
	"testing"

	"pqapi/models"
)

func TestOrderedSetsSortsByID(t *testing.T) {
	challenge := &models.Challenge{Sets: []*models.Set{
		{ID: 30, Title: "Insane"},
		{ID: 10, Title: "Easy"},
		{ID: 20, Title: "Hard"},
	}}

	sets := OrderedSets(challenge)
	want := []uint{10, 20, 30}
	for i, s := range sets {
		if s.ID != want[i] {
			t.Errorf("position %d: got set %d, want %d", i, s.ID, want[i])
		}
	}
	// the challenge's own slice is left alone
	if challenge.Sets[0].ID != 30 {
		t.Errorf("OrderedSets mutated the challenge's set slice")
	}
}

func TestSetRank(t *testing.T) {
	sets := []*models.Set{{ID: 10}, {ID: 20}, {ID: 30}}

	if got := SetRank(sets, 10); got != 1 {
		t.Errorf("SetRank(10) = %d, want 1", got)
	}
	if got := SetRank(sets, 30); got != 3 {
		t.Errorf("SetRank(30) = %d, want 3", got)
	}
	if got := SetRank(sets, 99); got != 0 {
		t.Errorf("SetRank(99) = %d, want 0", got)
	}
}

func TestIsSetOpen(t *testing.T) {
	tests := []struct {
		rank      int
		completed int
		want      bool
	}{
		{1, 0, true},   // first set is always open
		{2, 0, false},  // second set locked until the first is done
		{2, 1, true},   // unlocks after one completion
		{3, 1, false},  // still one ahead of the frontier
		{1, 2, true},   // completed sets stay open
		{0, 5, false},  // rank 0 means not part of the challenge
	}
	for _, tt := range tests {
		if got := IsSetOpen(tt.rank, tt.completed); got != tt.want {
			t.Errorf("IsSetOpen(%d, %d) = %v, want %v", tt.rank, tt.completed, got, tt.want)
		}
	}
}

func TestCompletedCountAndNextUnlockable(t *testing.T) {
	db := setupTestDB(t)

	easy := createSet(t, db, "Easy", 10, 60)
	hard := createSet(t, db, "Hard", 20, 120)
	challenge := createChallenge(t, db, []*models.Set{easy, hard}, nil)
	user := createUser(t, db, "alice")

	count, err := CompletedCount(challenge.ID, user.ID)
	if err != nil {
		t.Fatalf("CompletedCount: %v", err)
	}
	if count != 0 {
		t.Errorf("fresh user completed count = %d, want 0", count)
	}

	next, err := NextUnlockableSet(challenge, user.ID)
	if err != nil {
		t.Fatalf("NextUnlockableSet: %v", err)
	}
	if next == nil || next.ID != easy.ID {
		t.Errorf("next unlockable = %v, want set %d", next, easy.ID)
	}

	sol := models.Solution{
		ChallengeID: challenge.ID,
		AuthorID:    user.ID,
		SetID:       easy.ID,
		Status:      models.SolutionComplete,
	}
	if err := db.Create(&sol).Error; err != nil {
		t.Fatalf("failed to create solution: %v", err)
	}

	count, err = CompletedCount(challenge.ID, user.ID)
	if err != nil {
		t.Fatalf("CompletedCount: %v", err)
	}
	if count != 1 {
		t.Errorf("completed count = %d, want 1", count)
	}

	next, err = NextUnlockableSet(challenge, user.ID)
	if err != nil {
		t.Fatalf("NextUnlockableSet: %v", err)
	}
	if next == nil || next.ID != hard.ID {
		t.Errorf("next unlockable = %v, want set %d", next, hard.ID)
	}

	// incomplete attempts do not advance the frontier
	running := models.Solution{
		ChallengeID: challenge.ID,
		AuthorID:    user.ID,
		SetID:       hard.ID,
		Status:      models.SolutionIncomplete,
	}
	if err := db.Create(&running).Error; err != nil {
		t.Fatalf("failed to create solution: %v", err)
	}
	count, err = CompletedCount(challenge.ID, user.ID)
	if err != nil {
		t.Fatalf("CompletedCount: %v", err)
	}
	if count != 1 {
		t.Errorf("completed count after running attempt = %d, want 1", count)
	}
}

func TestNextUnlockableSetFinishedChallenge(t *testing.T) {
	db := setupTestDB(t)

	easy := createSet(t, db, "Easy", 10, 60)
	challenge := createChallenge(t, db, []*models.Set{easy}, nil)
	user := createUser(t, db, "bob")

	sol := models.Solution{
		ChallengeID: challenge.ID,
		AuthorID:    user.ID,
		SetID:       easy.ID,
		Status:      models.SolutionComplete,
	}
	if err := db.Create(&sol).Error; err != nil {
		t.Fatalf("failed to create solution: %v", err)
	}

	next, err := NextUnlockableSet(challenge, user.ID)
	if err != nil {
		t.Fatalf("NextUnlockableSet: %v", err)
	}
	if next != nil {
		t.Errorf("next unlockable after finishing = set %d, want none", next.ID)
	}
}

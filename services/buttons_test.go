package services

import (
	"testing"
	"time"

	"pqapi/models"
)

func buttonFixture() (*models.Challenge, []*models.Set) {
	sets := []*models.Set{
		{ID: 1, Title: "Easy", Points: 10, TimeLimit: 60},
		{ID: 2, Title: "Hard", Points: 20, TimeLimit: 120},
		{ID: 3, Title: "Insane", Points: 50, TimeLimit: 0},
	}
	challenge := &models.Challenge{
		ID:     7,
		Status: models.ChallengeInProgress,
		Sets:   sets,
	}
	return challenge, sets
}

func TestChallengeButtonsAnonymous(t *testing.T) {
	challenge, sets := buttonFixture()

	buttons := ChallengeButtons(challenge, nil, nil, time.Now(), testTiming())
	if len(buttons) != len(sets) {
		t.Fatalf("buttons = %d, want %d", len(buttons), len(sets))
	}
	for i, b := range buttons {
		if b.State != ButtonLoginRequired {
			t.Errorf("button %d state = %s, want %s", i, b.State, ButtonLoginRequired)
		}
		if !b.Disabled {
			t.Errorf("button %d should be disabled for anonymous viewers", i)
		}
	}
}

func TestChallengeButtonsFreshUser(t *testing.T) {
	challenge, _ := buttonFixture()
	viewer := &models.User{ID: 1, Username: "alice"}

	buttons := ChallengeButtons(challenge, viewer, nil, time.Now(), testTiming())
	if buttons[0].State != ButtonOpen {
		t.Errorf("first set state = %s, want %s", buttons[0].State, ButtonOpen)
	}
	if buttons[0].URL == "" {
		t.Error("open button has no begin URL")
	}
	if buttons[1].State != ButtonLocked || buttons[2].State != ButtonLocked {
		t.Errorf("later sets = %s/%s, want both %s", buttons[1].State, buttons[2].State, ButtonLocked)
	}
}

func TestChallengeButtonsProgress(t *testing.T) {
	challenge, sets := buttonFixture()
	viewer := &models.User{ID: 1, Username: "alice"}
	now := time.Now()
	generated := now.Add(-30 * time.Second)

	solutions := map[uint]*models.Solution{
		sets[0].ID: {SetID: sets[0].ID, Status: models.SolutionComplete, Set: sets[0]},
		sets[1].ID: {SetID: sets[1].ID, Status: models.SolutionIncomplete, Set: sets[1], Generated: &generated},
	}

	buttons := ChallengeButtons(challenge, viewer, solutions, now, testTiming())
	if buttons[0].State != ButtonCompleted {
		t.Errorf("completed set state = %s, want %s", buttons[0].State, ButtonCompleted)
	}
	if buttons[1].State != ButtonRunning {
		t.Errorf("running set state = %s, want %s", buttons[1].State, ButtonRunning)
	}
	if !buttons[1].Running {
		t.Error("running button not flagged as running")
	}
	// 120s limit + 5s grace - 30s elapsed leaves 1:35
	if buttons[1].Time != "1:35" {
		t.Errorf("running time = %s, want 1:35", buttons[1].Time)
	}
	// one completion unlocks the third set but no attempt exists yet
	if buttons[2].State != ButtonLocked {
		t.Errorf("third set state = %s, want %s", buttons[2].State, ButtonLocked)
	}
}

func TestChallengeButtonsExpired(t *testing.T) {
	challenge, sets := buttonFixture()
	viewer := &models.User{ID: 1, Username: "alice"}
	now := time.Now()
	generated := now.Add(-70 * time.Second)

	solutions := map[uint]*models.Solution{
		sets[0].ID: {SetID: sets[0].ID, Status: models.SolutionIncomplete, Set: sets[0], Generated: &generated},
	}

	buttons := ChallengeButtons(challenge, viewer, solutions, now, testTiming())
	if buttons[0].State != ButtonExpired {
		t.Errorf("expired set state = %s, want %s", buttons[0].State, ButtonExpired)
	}
	if buttons[0].URL == "" {
		t.Error("expired button has no retry URL")
	}
}

func TestChallengeButtonsUnlimitedSetNeverExpires(t *testing.T) {
	challenge, sets := buttonFixture()
	viewer := &models.User{ID: 1, Username: "alice"}
	now := time.Now()
	generated := now.Add(-24 * time.Hour)

	solutions := map[uint]*models.Solution{
		sets[0].ID: {SetID: sets[0].ID, Status: models.SolutionComplete, Set: sets[0]},
		sets[1].ID: {SetID: sets[1].ID, Status: models.SolutionComplete, Set: sets[1]},
		sets[2].ID: {SetID: sets[2].ID, Status: models.SolutionIncomplete, Set: sets[2], Generated: &generated},
	}

	buttons := ChallengeButtons(challenge, viewer, solutions, now, testTiming())
	if buttons[2].State != ButtonRunning {
		t.Errorf("unlimited set state = %s, want %s", buttons[2].State, ButtonRunning)
	}
	if buttons[2].Time != "0:00" {
		t.Errorf("unlimited set time = %s, want 0:00", buttons[2].Time)
	}
}

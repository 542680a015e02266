package services

import (
	"testing"
	"time"

	"pqapi/models"

	"gorm.io/gorm"
)

// completeSolution inserts a completed solution directly, bypassing the
// begin/submit flow, so timing fields can be set precisely.
func completeSolution(t *testing.T, db *gorm.DB, challengeID, userID, setID uint, generated, submitted time.Time) *models.Solution {
	t.Helper()
	sol := &models.Solution{
		ChallengeID: challengeID,
		AuthorID:    userID,
		SetID:       setID,
		Status:      models.SolutionComplete,
		Attempt:     1,
		Generated:   timePtr(generated),
		Submitted:   timePtr(submitted),
	}
	if err := db.Create(sol).Error; err != nil {
		t.Fatalf("failed to create solution: %v", err)
	}
	return sol
}

func applyBonuses(t *testing.T, db *gorm.DB, challenge *models.Challenge, sol *models.Solution) {
	t.Helper()
	err := db.Transaction(func(tx *gorm.DB) error {
		return ApplyBonuses(tx, testTiming(), challenge, sol)
	})
	if err != nil {
		t.Fatalf("ApplyBonuses: %v", err)
	}
}

func awardedKinds(t *testing.T, db *gorm.DB, sol *models.Solution) []string {
	t.Helper()
	var bonuses []*models.Bonus
	err := db.Model(sol).Association("Bonuses").Find(&bonuses)
	if err != nil {
		t.Fatalf("failed to load awarded bonuses: %v", err)
	}
	kinds := make([]string, 0, len(bonuses))
	for _, b := range bonuses {
		kinds = append(kinds, b.Kind)
	}
	return kinds
}

func TestFastSolveBonusWindow(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    bool
	}{
		{"one second under the window", 64 * time.Second, true},
		{"one second over the window", 66 * time.Second, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)

			timed := createSet(t, db, "Timed", 10, 300)
			fast := createBonus(t, db, models.BonusFastSolve, 5)
			challenge := createChallenge(t, db, []*models.Set{timed}, []*models.Bonus{fast})
			challenge.TimedSetID = uintPtr(timed.ID)
			user := createUser(t, db, "alice")

			generated := time.Now().Add(-time.Hour)
			sol := completeSolution(t, db, challenge.ID, user.ID, timed.ID,
				generated, generated.Add(tt.elapsed))
			applyBonuses(t, db, challenge, sol)

			kinds := awardedKinds(t, db, sol)
			awarded := len(kinds) == 1 && kinds[0] == models.BonusFastSolve
			if awarded != tt.want {
				t.Errorf("awarded = %v (kinds %v), want %v", awarded, kinds, tt.want)
			}
		})
	}
}

func TestFastSolveBonusOnlyOnTimedSet(t *testing.T) {
	db := setupTestDB(t)

	timed := createSet(t, db, "Timed", 10, 300)
	other := createSet(t, db, "Other", 20, 0)
	fast := createBonus(t, db, models.BonusFastSolve, 5)
	challenge := createChallenge(t, db, []*models.Set{timed, other}, []*models.Bonus{fast})
	challenge.TimedSetID = uintPtr(timed.ID)
	user := createUser(t, db, "alice")

	// fast completion of the wrong set earns nothing
	generated := time.Now().Add(-time.Hour)
	sol := completeSolution(t, db, challenge.ID, user.ID, other.ID,
		generated, generated.Add(10*time.Second))
	applyBonuses(t, db, challenge, sol)

	if kinds := awardedKinds(t, db, sol); len(kinds) != 0 {
		t.Errorf("awarded %v on an untimed set, want none", kinds)
	}
}

func TestEarlyBirdBonusWindow(t *testing.T) {
	db := setupTestDB(t)

	timed := createSet(t, db, "Timed", 10, 0)
	early := createBonus(t, db, models.BonusEarlyBird, 3)
	challenge := createChallenge(t, db, []*models.Set{timed}, []*models.Bonus{early})
	challenge.TimedSetID = uintPtr(timed.ID)
	started := time.Now().Add(-48 * time.Hour)
	challenge.Started = &started
	user := createUser(t, db, "alice")
	late := createUser(t, db, "bob")

	inWindow := completeSolution(t, db, challenge.ID, user.ID, timed.ID,
		started.Add(time.Hour), started.Add(23*time.Hour))
	applyBonuses(t, db, challenge, inWindow)
	if kinds := awardedKinds(t, db, inWindow); len(kinds) != 1 || kinds[0] != models.BonusEarlyBird {
		t.Errorf("in-window awards = %v, want [early_bird]", kinds)
	}

	outOfWindow := completeSolution(t, db, challenge.ID, late.ID, timed.ID,
		started.Add(time.Hour), started.Add(25*time.Hour))
	applyBonuses(t, db, challenge, outOfWindow)
	if kinds := awardedKinds(t, db, outOfWindow); len(kinds) != 0 {
		t.Errorf("out-of-window awards = %v, want none", kinds)
	}
}

func TestFirstToFinishAwardedOnce(t *testing.T) {
	db := setupTestDB(t)

	final := createSet(t, db, "Final", 50, 0)
	first := createBonus(t, db, models.BonusFirstToFinish, 20)
	challenge := createChallenge(t, db, []*models.Set{final}, []*models.Bonus{first})
	challenge.FinalSetID = uintPtr(final.ID)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	now := time.Now()
	winner := completeSolution(t, db, challenge.ID, alice.ID, final.ID, now.Add(-time.Hour), now.Add(-time.Minute))
	applyBonuses(t, db, challenge, winner)

	runnerUp := completeSolution(t, db, challenge.ID, bob.ID, final.ID, now.Add(-time.Hour), now)
	applyBonuses(t, db, challenge, runnerUp)

	if kinds := awardedKinds(t, db, winner); len(kinds) != 1 || kinds[0] != models.BonusFirstToFinish {
		t.Errorf("winner awards = %v, want [first_to_finish]", kinds)
	}
	if kinds := awardedKinds(t, db, runnerUp); len(kinds) != 0 {
		t.Errorf("runner-up awards = %v, want none", kinds)
	}
}

func TestApplyBonusesIdempotent(t *testing.T) {
	db := setupTestDB(t)

	timed := createSet(t, db, "Timed", 10, 300)
	fast := createBonus(t, db, models.BonusFastSolve, 5)
	challenge := createChallenge(t, db, []*models.Set{timed}, []*models.Bonus{fast})
	challenge.TimedSetID = uintPtr(timed.ID)
	user := createUser(t, db, "alice")

	generated := time.Now().Add(-time.Hour)
	sol := completeSolution(t, db, challenge.ID, user.ID, timed.ID,
		generated, generated.Add(30*time.Second))
	applyBonuses(t, db, challenge, sol)
	applyBonuses(t, db, challenge, sol)

	var links int64
	if err := db.Table("solution_bonuses").
		Where("solution_id = ?", sol.ID).Count(&links).Error; err != nil {
		t.Fatalf("failed to count awards: %v", err)
	}
	if links != 1 {
		t.Errorf("award rows = %d, want 1", links)
	}
}

func TestChallengeLeaderboard(t *testing.T) {
	db := setupTestDB(t)

	easy := createSet(t, db, "Easy", 10, 0)
	hard := createSet(t, db, "Hard", 20, 300)
	fast := createBonus(t, db, models.BonusFastSolve, 5)
	challenge := createChallenge(t, db, []*models.Set{easy, hard}, []*models.Bonus{fast})
	challenge.TimedSetID = uintPtr(hard.ID)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	now := time.Now()

	// alice completes both sets, the second fast enough for the bonus
	completeSolution(t, db, challenge.ID, alice.ID, easy.ID, now.Add(-2*time.Hour), now.Add(-time.Hour))
	fastSol := completeSolution(t, db, challenge.ID, alice.ID, hard.ID,
		now.Add(-time.Hour), now.Add(-time.Hour).Add(30*time.Second))
	applyBonuses(t, db, challenge, fastSol)

	// bob only completes the first set
	completeSolution(t, db, challenge.ID, bob.ID, easy.ID, now.Add(-time.Hour), now)

	rows, err := ChallengeLeaderboard(challenge.ID)
	if err != nil {
		t.Fatalf("ChallengeLeaderboard: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("leaderboard rows = %d, want 2", len(rows))
	}
	if rows[0].Username != "alice" || rows[0].Score != 35 {
		t.Errorf("first row = %s/%d, want alice/35", rows[0].Username, rows[0].Score)
	}
	if rows[1].Username != "bob" || rows[1].Score != 10 {
		t.Errorf("second row = %s/%d, want bob/10", rows[1].Username, rows[1].Score)
	}

	score, err := UserScore(challenge.ID, alice.ID)
	if err != nil {
		t.Fatalf("UserScore: %v", err)
	}
	if score != 35 {
		t.Errorf("alice score = %d, want 35", score)
	}
	score, err = UserScore(challenge.ID, 9999)
	if err != nil {
		t.Fatalf("UserScore: %v", err)
	}
	if score != 0 {
		t.Errorf("absent user score = %d, want 0", score)
	}
}

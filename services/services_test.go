package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"pqapi/config"
	"pqapi/database"
	"pqapi/models"
	"pqapi/runner"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// setupTestDB opens a fresh in-memory database, migrates the schema and
// installs it as the package-global connection for the duration of the test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:services_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
	return db
}

func testTiming() config.Timing {
	return config.Timing{
		GracePeriod:     5 * time.Second,
		FastSolveWindow: 65 * time.Second,
		EarlyBirdWindow: 24 * time.Hour,
	}
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func createSet(t *testing.T, db *gorm.DB, title string, points, timeLimit int) *models.Set {
	t.Helper()
	set := &models.Set{Title: title, Points: points, TimeLimit: timeLimit}
	if err := db.Create(set).Error; err != nil {
		t.Fatalf("failed to create set %s: %v", title, err)
	}
	return set
}

func createBonus(t *testing.T, db *gorm.DB, kind string, points int) *models.Bonus {
	t.Helper()
	bonus := &models.Bonus{Kind: kind, Title: kind, Points: points}
	if err := db.Create(bonus).Error; err != nil {
		t.Fatalf("failed to create bonus %s: %v", kind, err)
	}
	return bonus
}

// createChallenge builds an in-progress challenge owned by a fresh staff
// user, attaching the given sets and bonuses.
func createChallenge(t *testing.T, db *gorm.DB, sets []*models.Set, bonuses []*models.Bonus) *models.Challenge {
	t.Helper()
	owner := createUser(t, db, fmt.Sprintf("owner%d", testDBSeq.Add(1)))
	started := time.Now().Add(-time.Hour)
	challenge := &models.Challenge{
		Title:              "Test challenge",
		AuthorID:           owner.ID,
		Status:             models.ChallengeInProgress,
		UseInputValidation: true,
		Started:            &started,
		Sets:               sets,
		Bonuses:            bonuses,
	}
	if err := db.Create(challenge).Error; err != nil {
		t.Fatalf("failed to create challenge: %v", err)
	}
	return challenge
}

// stubGenerator is a canned Generator implementation for lifecycle tests
type stubGenerator struct {
	input    string
	expected string
	err      error
	calls    int
}

func (g *stubGenerator) Generate(ctx context.Context, challenge *models.Challenge, set *models.Set) (runner.Result, error) {
	g.calls++
	if g.err != nil {
		return runner.Result{}, g.err
	}
	input := g.input
	if input == "" {
		input = fmt.Sprintf("input-%d-%d", set.ID, g.calls)
	}
	expected := g.expected
	if expected == "" {
		expected = fmt.Sprintf("expected-%d", set.ID)
	}
	return runner.Result{Input: input, Expected: expected}, nil
}

func uintPtr(v uint) *uint           { return &v }
func timePtr(v time.Time) *time.Time { return &v }

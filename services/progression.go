package services

import (
	"fmt"
	"sort"

	"pqapi/database"
	"pqapi/models"
)

// OrderedSets returns the challenge's sets in progression order, which is
// ascending set id regardless of points or time limits.
func OrderedSets(challenge *models.Challenge) []*models.Set {
	sets := make([]*models.Set, len(challenge.Sets))
	copy(sets, challenge.Sets)
	sort.Slice(sets, func(i, j int) bool { return sets[i].ID < sets[j].ID })
	return sets
}

// SetRank returns the 1-based position of a set in progression order,
// or 0 if the set is not attached to the challenge.
func SetRank(sets []*models.Set, setID uint) int {
	for i, s := range sets {
		if s.ID == setID {
			return i + 1
		}
	}
	return 0
}

// CompletedCount counts the user's completed solutions for a challenge
func CompletedCount(challengeID, userID uint) (int, error) {
	var count int64
	err := database.DB.Model(&models.Solution{}).
		Where("challenge_id = ? AND author_id = ? AND status = ?",
			challengeID, userID, models.SolutionComplete).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count completed solutions: %w", err)
	}
	return int(count), nil
}

// IsSetOpen reports whether a set at the given rank is reachable for a user
// who has completed the given number of sets. Exactly the next unfinished
// set, plus everything before it, is open.
func IsSetOpen(rank, completed int) bool {
	return rank > 0 && rank <= completed+1
}

// NextUnlockableSet returns the first set the user has not completed, or nil
// when the challenge is finished or has no sets.
func NextUnlockableSet(challenge *models.Challenge, userID uint) (*models.Set, error) {
	sets := OrderedSets(challenge)
	if len(sets) == 0 {
		return nil, nil
	}
	completed, err := CompletedCount(challenge.ID, userID)
	if err != nil {
		return nil, err
	}
	if completed >= len(sets) {
		return nil, nil
	}
	return sets[completed], nil
}

package services

import (
	"errors"
	"fmt"

	"pqapi/database"
	"pqapi/models"

	"gorm.io/gorm"
)

// GetVisibleChallenge fetches a challenge with its sets and bonuses,
// applying the visibility filter: drafts are only visible to staff.
// A viewer may be nil for anonymous requests.
func GetVisibleChallenge(challengeID uint, viewer *models.User) (*models.Challenge, error) {
	minStatus := models.ChallengeInProgress
	if viewer != nil && viewer.IsStaff {
		minStatus = models.ChallengeDraft
	}

	var challenge models.Challenge
	err := database.DB.
		Preload("Sets").
		Preload("Bonuses").
		Preload("Author").
		Where("status >= ?", minStatus).
		First(&challenge, challengeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch challenge: %w", err)
	}
	return &challenge, nil
}

// ListVisibleChallenges returns all challenges the viewer may see, newest
// started first
func ListVisibleChallenges(viewer *models.User) ([]models.Challenge, error) {
	minStatus := models.ChallengeInProgress
	if viewer != nil && viewer.IsStaff {
		minStatus = models.ChallengeDraft
	}

	var challenges []models.Challenge
	err := database.DB.
		Preload("Sets").
		Preload("Author").
		Where("status >= ?", minStatus).
		Order("started DESC NULLS LAST").
		Find(&challenges).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch challenges: %w", err)
	}
	return challenges, nil
}

// UserSolutions returns the viewer's solutions for a challenge keyed by set id
func UserSolutions(challengeID, userID uint) (map[uint]*models.Solution, error) {
	var solutions []*models.Solution
	err := database.DB.
		Preload("Set").
		Preload("Bonuses").
		Where("challenge_id = ? AND author_id = ?", challengeID, userID).
		Find(&solutions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch solutions: %w", err)
	}

	bySet := make(map[uint]*models.Solution, len(solutions))
	for _, sol := range solutions {
		bySet[sol.SetID] = sol
	}
	return bySet, nil
}

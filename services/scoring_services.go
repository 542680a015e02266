package services

import (
	"fmt"
	"sort"

	"pqapi/config"
	"pqapi/database"
	"pqapi/metrics"
	"pqapi/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScoreRow is one leaderboard entry for a challenge
type ScoreRow struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// ApplyBonuses awards every enabled bonus the solution qualifies for. It must
// run inside the submission transaction, after the solution has been marked
// Complete, and is safe to retry: already-awarded bonuses are never appended
// twice.
func ApplyBonuses(tx *gorm.DB, timing config.Timing, challenge *models.Challenge, sol *models.Solution) error {
	for _, bonus := range challenge.Bonuses {
		qualified, err := qualifiesForBonus(tx, timing, challenge, sol, bonus)
		if err != nil {
			return err
		}
		if !qualified {
			continue
		}

		var awarded int64
		err = tx.Table("solution_bonuses").
			Where("solution_id = ? AND bonus_id = ?", sol.ID, bonus.ID).
			Count(&awarded).Error
		if err != nil {
			return fmt.Errorf("failed to check awarded bonuses: %w", err)
		}
		if awarded > 0 {
			continue
		}
		if err := tx.Model(sol).Association("Bonuses").Append(bonus); err != nil {
			return fmt.Errorf("failed to award bonus %s: %w", bonus.Kind, err)
		}
		metrics.BonusesAwarded.WithLabelValues(bonus.Kind).Inc()
	}
	return nil
}

func qualifiesForBonus(tx *gorm.DB, timing config.Timing, challenge *models.Challenge, sol *models.Solution, bonus *models.Bonus) (bool, error) {
	switch bonus.Kind {
	case models.BonusFastSolve:
		if challenge.TimedSetID == nil || sol.SetID != *challenge.TimedSetID {
			return false, nil
		}
		if sol.Submitted == nil || sol.Generated == nil {
			return false, nil
		}
		return sol.Submitted.Before(sol.Generated.Add(timing.FastSolveWindow)), nil

	case models.BonusEarlyBird:
		if challenge.TimedSetID == nil || sol.SetID != *challenge.TimedSetID {
			return false, nil
		}
		if sol.Submitted == nil || challenge.Started == nil {
			return false, nil
		}
		return sol.Submitted.Before(challenge.Started.Add(timing.EarlyBirdWindow)), nil

	case models.BonusFirstToFinish:
		if challenge.FinalSetID == nil || sol.SetID != *challenge.FinalSetID {
			return false, nil
		}
		// Serialize the prior-completions check across concurrent
		// submissions by locking the bonus row. SQLite allows a single
		// writer at a time, so the lock is only taken on postgres.
		if tx.Dialector.Name() == "postgres" {
			var locked models.Bonus
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&locked, bonus.ID).Error; err != nil {
				return false, fmt.Errorf("failed to lock bonus row: %w", err)
			}
		}
		var prior int64
		err := tx.Model(&models.Solution{}).
			Where("challenge_id = ? AND set_id = ? AND status = ? AND id <> ?",
				challenge.ID, sol.SetID, models.SolutionComplete, sol.ID).
			Count(&prior).Error
		if err != nil {
			return false, fmt.Errorf("failed to count prior completions: %w", err)
		}
		return prior == 0, nil
	}
	return false, nil
}

// ChallengeLeaderboard ranks every user with at least one complete solution
// in the challenge by total score: set points plus bonus points. Ties are
// broken by user id for a stable order.
func ChallengeLeaderboard(challengeID uint) ([]ScoreRow, error) {
	var rows []ScoreRow
	err := database.DB.Raw(`
        SELECT u.id AS user_id, u.username AS username, SUM(s.points) AS score
        FROM solutions sol
        JOIN users u ON u.id = sol.author_id
        JOIN sets s ON s.id = sol.set_id
        WHERE sol.challenge_id = ? AND sol.status = ?
        GROUP BY u.id, u.username
    `, challengeID, models.SolutionComplete).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}

	var bonusRows []ScoreRow
	err = database.DB.Raw(`
        SELECT u.id AS user_id, u.username AS username, SUM(b.points) AS score
        FROM solutions sol
        JOIN users u ON u.id = sol.author_id
        JOIN solution_bonuses sb ON sb.solution_id = sol.id
        JOIN bonuses b ON b.id = sb.bonus_id
        WHERE sol.challenge_id = ? AND sol.status = ?
        GROUP BY u.id, u.username
    `, challengeID, models.SolutionComplete).Scan(&bonusRows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bonus scores: %w", err)
	}

	for _, br := range bonusRows {
		for i := range rows {
			if rows[i].UserID == br.UserID {
				rows[i].Score += br.Score
				break
			}
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		return rows[i].UserID < rows[j].UserID
	})
	return rows, nil
}

// UserScore returns a single user's total score for a challenge
func UserScore(challengeID, userID uint) (int, error) {
	rows, err := ChallengeLeaderboard(challengeID)
	if err != nil {
		return 0, err
	}
	for _, row := range rows {
		if row.UserID == userID {
			return row.Score, nil
		}
	}
	return 0, nil
}

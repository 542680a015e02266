package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"pqapi/config"
	"pqapi/database"
	"pqapi/metrics"
	"pqapi/models"
	"pqapi/runner"
	"pqapi/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BeginSolution starts or resumes the user's attempt at a set. It enforces
// the progression gate, then either creates the solution row, regenerates an
// expired or uncached attempt, or returns the cached input unchanged. The
// create-or-update runs inside a transaction so two concurrent begins cannot
// create two rows or double-increment the attempt counter.
func BeginSolution(ctx context.Context, gen runner.Generator, timing config.Timing, challenge *models.Challenge, setID, userID uint) (*models.Solution, error) {
	sets := OrderedSets(challenge)
	rank := SetRank(sets, setID)
	if rank == 0 {
		return nil, fmt.Errorf("%w: set %d is not part of the challenge", ErrNotFound, setID)
	}
	set := sets[rank-1]

	completed, err := CompletedCount(challenge.ID, userID)
	if err != nil {
		return nil, err
	}
	if !IsSetOpen(rank, completed) {
		return nil, ErrNotUnlocked
	}

	var sol models.Solution
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		query := tx.Where("challenge_id = ? AND author_id = ? AND set_id = ?",
			challenge.ID, userID, setID)
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		err := query.First(&sol).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			sol = models.Solution{
				ChallengeID: challenge.ID,
				AuthorID:    userID,
				SetID:       setID,
				Set:         set,
			}
			if err := generate(ctx, gen, challenge, set, &sol); err != nil {
				return err
			}
			return insertOrAdoptSolution(tx, &sol)

		case err != nil:
			return fmt.Errorf("failed to fetch solution: %w", err)
		}

		sol.Set = set
		if sol.Status == models.SolutionComplete {
			// Completed attempts keep their input available for download
			return nil
		}
		if sol.IsExpired(time.Now(), timing.GracePeriod) || !challenge.UseInputValidation {
			if err := generate(ctx, gen, challenge, set, &sol); err != nil {
				return err
			}
			return tx.Save(&sol).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sol.Set = set
	return &sol, nil
}

// insertOrAdoptSolution inserts a freshly generated solution row. A
// concurrent begin can win the insert between the initial lookup miss and
// this statement; a raised unique violation would abort the surrounding
// postgres transaction, so the conflict is swallowed with DO NOTHING and a
// zero-rows result adopts the winner's row, discarding the fresh input.
func insertOrAdoptSolution(tx *gorm.DB, sol *models.Solution) error {
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(sol)
	if res.Error != nil {
		return fmt.Errorf("failed to create solution: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		adopted := models.Solution{}
		err := tx.Where("challenge_id = ? AND author_id = ? AND set_id = ?",
			sol.ChallengeID, sol.AuthorID, sol.SetID).First(&adopted).Error
		if err != nil {
			return fmt.Errorf("failed to fetch solution: %w", err)
		}
		adopted.Set = sol.Set
		*sol = adopted
	}
	return nil
}

// generate runs the challenge scripts and resets the attempt clock.
// A failure leaves the solution unchanged and is fatal for the attempt.
func generate(ctx context.Context, gen runner.Generator, challenge *models.Challenge, set *models.Set, sol *models.Solution) error {
	start := time.Now()
	result, err := gen.Generate(ctx, challenge, set)
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GenerationRuns.WithLabelValues("failure").Inc()
		return fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	metrics.GenerationRuns.WithLabelValues("success").Inc()

	now := time.Now()
	sol.Attempt++
	sol.Generated = &now
	sol.Status = models.SolutionIncomplete
	sol.InputGen = result.Input
	sol.OutputGen = result.Expected
	return nil
}

// SubmitSolution validates and records a submission. On success the solution
// becomes Complete and qualifying bonuses are awarded in the same
// transaction; on any failure the solution is left untouched.
func SubmitSolution(ctx context.Context, timing config.Timing, store *storage.Store, solutionID, userID uint, output, source *SubmissionFile, languageID *uint) (*models.Solution, error) {
	var sol models.Solution
	err := database.DB.
		Preload("Set").
		Preload("Author").
		Preload("Challenge.Bonuses").
		First(&sol, solutionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch solution: %w", err)
	}

	if sol.AuthorID != userID {
		return nil, ErrForbidden
	}
	if sol.Challenge.Status != models.ChallengeInProgress {
		return nil, ErrChallengeClosed
	}
	if sol.Status == models.SolutionComplete {
		metrics.Submissions.WithLabelValues("duplicate").Inc()
		return nil, ErrAlreadyComplete
	}
	if sol.IsExpired(time.Now(), timing.GracePeriod) {
		metrics.Submissions.WithLabelValues("expired").Inc()
		return nil, ErrExpired
	}

	if err := ValidateUpload(output); err != nil {
		metrics.Submissions.WithLabelValues("rejected").Inc()
		return nil, err
	}
	if source == nil && sol.Challenge.SourceRequired {
		metrics.Submissions.WithLabelValues("rejected").Inc()
		return nil, &ValidationError{Message: "No source code provided."}
	}
	if source != nil {
		if err := ValidateUpload(source); err != nil {
			metrics.Submissions.WithLabelValues("rejected").Inc()
			return nil, err
		}
	}

	if err := CompareOutput(string(output.Data), sol.OutputGen); err != nil {
		metrics.Submissions.WithLabelValues("incorrect").Inc()
		return nil, err
	}

	var outputPath, sourcePath string
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		outputPath, err = store.SaveOutput(sol.ChallengeID, sol.AuthorID, sol.Set.Title, output.Data)
		if err != nil {
			return fmt.Errorf("failed to store output: %w", err)
		}
		if source != nil {
			sourcePath, err = store.SaveSource(sol.ChallengeID, sol.Author.Username, sol.Set.Title, filepath.Ext(source.Name), source.Data)
			if err != nil {
				return fmt.Errorf("failed to store source: %w", err)
			}
		}

		now := time.Now()
		sol.Status = models.SolutionComplete
		sol.Submitted = &now
		sol.OutputFile = outputPath
		sol.SourceFile = sourcePath
		sol.LanguageID = languageID
		if err := tx.Save(&sol).Error; err != nil {
			return fmt.Errorf("failed to save solution: %w", err)
		}
		return ApplyBonuses(tx, timing, sol.Challenge, &sol)
	})
	if err != nil {
		// The rollback undid the completion; drop the stored files so an
		// incomplete solution has none lying around.
		if outputPath != "" {
			store.Remove(outputPath)
		}
		if sourcePath != "" {
			store.Remove(sourcePath)
		}
		return nil, err
	}

	metrics.Submissions.WithLabelValues("accepted").Inc()
	return &sol, nil
}

// DeleteSolution removes the user's own attempt so the set can be retried
// from scratch. Only the author may delete; the status is deliberately not
// checked.
func DeleteSolution(solutionID, userID uint) error {
	var sol models.Solution
	err := database.DB.First(&sol, solutionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to fetch solution: %w", err)
	}
	if sol.AuthorID != userID {
		return ErrForbidden
	}
	if err := database.DB.Select(clause.Associations).Delete(&sol).Error; err != nil {
		return fmt.Errorf("failed to delete solution: %w", err)
	}
	return nil
}

// GetSolution fetches a solution with its associations for display
func GetSolution(solutionID uint) (*models.Solution, error) {
	var sol models.Solution
	err := database.DB.
		Preload("Set").
		Preload("Author").
		Preload("Language").
		Preload("Bonuses").
		Preload("Challenge").
		First(&sol, solutionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch solution: %w", err)
	}
	return &sol, nil
}

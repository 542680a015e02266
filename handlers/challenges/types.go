package challenges

import (
	"errors"
	"net/http"

	"pqapi/models"
	"pqapi/services"
	"pqapi/utils/response"

	"github.com/gin-gonic/gin"
)

// Constants for error messages
const (
	ErrChallengeNotFound     = "Challenge not found"
	ErrSolutionNotFound      = "Solution not found"
	ErrSetNotFound           = "Set not found"
	ErrInvalidRequest        = "Invalid request data"
	ErrInvalidID             = "Invalid id"
	ErrSetLocked             = "Complete the previous set first"
	ErrSolutionExpired       = "The time limit for this solution has passed"
	ErrSolutionComplete      = "This solution has already been completed"
	ErrChallengeNotOpen      = "This challenge is not accepting submissions"
	ErrGenerationFailure     = "Failed to generate challenge input"
	ErrNotYourSolution       = "You do not own this solution"
	ErrFailedFetchChallenges = "Failed to fetch challenges"
	ErrFailedCreateChallenge = "Failed to create challenge"
	ErrFailedUpdateChallenge = "Failed to update challenge"
	ErrFailedExport          = "Failed to export challenge data"
)

// CreateChallengeRequest model for creating a challenge
type CreateChallengeRequest struct {
	Title              string `json:"title" binding:"required"`
	Preamble           string `json:"preamble"`
	Body               string `json:"body" binding:"required"`
	SourceRequired     bool   `json:"source_required"`
	UseInputValidation bool   `json:"use_input_validation"`
	GeneratorPath      string `json:"generator_path" binding:"required"`
	ValidatorPath      string `json:"validator_path" binding:"required"`
	SetIDs             []uint `json:"set_ids"`
	BonusIDs           []uint `json:"bonus_ids"`
	TimedSetID         *uint  `json:"timed_set_id"`
	FinalSetID         *uint  `json:"final_set_id"`
}

// UpdateChallengeRequest model for updating a challenge
type UpdateChallengeRequest struct {
	Title              *string `json:"title"`
	Preamble           *string `json:"preamble"`
	Body               *string `json:"body"`
	SourceRequired     *bool   `json:"source_required"`
	UseInputValidation *bool   `json:"use_input_validation"`
	GeneratorPath      *string `json:"generator_path"`
	ValidatorPath      *string `json:"validator_path"`
	SetIDs             []uint  `json:"set_ids"`
	BonusIDs           []uint  `json:"bonus_ids"`
	TimedSetID         *uint   `json:"timed_set_id"`
	FinalSetID         *uint   `json:"final_set_id"`
}

// UpdateStatusRequest model for lifecycle transitions of a challenge
type UpdateStatusRequest struct {
	Status int `json:"status" binding:"min=0,max=3"`
}

// ChallengeDetailResponse model for the challenge page
type ChallengeDetailResponse struct {
	Challenge  *models.Challenge   `json:"challenge"`
	Buttons    []services.Button   `json:"buttons"`
	Scoreboard []services.ScoreRow `json:"scoreboard"`
	MyScore    int                 `json:"my_score"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, status int, message string) {
	response.Error(c, status, message)
}

// respondWithServiceError maps the service error taxonomy onto HTTP statuses
func respondWithServiceError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		response.ValidationError(c, vErr.Message, vErr.Line)
	case errors.Is(err, services.ErrNotFound):
		respondWithError(c, http.StatusNotFound, ErrSolutionNotFound)
	case errors.Is(err, services.ErrNotUnlocked):
		respondWithError(c, http.StatusForbidden, ErrSetLocked)
	case errors.Is(err, services.ErrExpired):
		respondWithError(c, http.StatusGone, ErrSolutionExpired)
	case errors.Is(err, services.ErrAlreadyComplete):
		respondWithError(c, http.StatusConflict, ErrSolutionComplete)
	case errors.Is(err, services.ErrChallengeClosed):
		respondWithError(c, http.StatusConflict, ErrChallengeNotOpen)
	case errors.Is(err, services.ErrForbidden):
		respondWithError(c, http.StatusForbidden, ErrNotYourSolution)
	case errors.Is(err, services.ErrGenerationFailed):
		respondWithError(c, http.StatusInternalServerError, ErrGenerationFailure)
	default:
		respondWithError(c, http.StatusInternalServerError, err.Error())
	}
}

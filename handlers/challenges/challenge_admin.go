package challenges

import (
	"net/http"
	"time"

	"pqapi/database"
	"pqapi/middleware"
	"pqapi/models"

	"github.com/gin-gonic/gin"
)

// CreateChallenge creates a new challenge in Draft status
// @Summary Create challenge
// @Description Create a new challenge; it starts as a draft
// @Tags Challenges
// @Accept json
// @Produce json
// @Param request body CreateChallengeRequest true "Challenge details"
// @Success 201 {object} models.Challenge
// @Failure 400 {object} map[string]string
// @Router /challenges [post]
// @Security Bearer
func CreateChallenge(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var req CreateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	challenge := models.Challenge{
		Title:              req.Title,
		AuthorID:           user.ID,
		Status:             models.ChallengeDraft,
		SourceRequired:     req.SourceRequired,
		UseInputValidation: req.UseInputValidation,
		Preamble:           req.Preamble,
		Body:               req.Body,
		GeneratorPath:      req.GeneratorPath,
		ValidatorPath:      req.ValidatorPath,
		TimedSetID:         req.TimedSetID,
		FinalSetID:         req.FinalSetID,
	}

	if err := database.DB.Create(&challenge).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedCreateChallenge)
		return
	}
	if err := attachSetsAndBonuses(&challenge, req.SetIDs, req.BonusIDs); err != nil {
		respondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, challenge)
}

// UpdateChallenge updates the fields of an existing challenge
// @Summary Update challenge
// @Description Update an existing challenge's fields, sets and bonuses
// @Tags Challenges
// @Accept json
// @Produce json
// @Param id path int true "Challenge ID"
// @Param request body UpdateChallengeRequest true "Fields to update"
// @Success 200 {object} models.Challenge
// @Failure 404 {object} map[string]string
// @Router /challenges/{id} [put]
// @Security Bearer
func UpdateChallenge(c *gin.Context) {
	challengeID, err := parseID(c, "id")
	if err != nil {
		return
	}

	var req UpdateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	var challenge models.Challenge
	if err := database.DB.First(&challenge, challengeID).Error; err != nil {
		respondWithError(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}

	if req.Title != nil {
		challenge.Title = *req.Title
	}
	if req.Preamble != nil {
		challenge.Preamble = *req.Preamble
	}
	if req.Body != nil {
		challenge.Body = *req.Body
	}
	if req.SourceRequired != nil {
		challenge.SourceRequired = *req.SourceRequired
	}
	if req.UseInputValidation != nil {
		challenge.UseInputValidation = *req.UseInputValidation
	}
	if req.GeneratorPath != nil {
		challenge.GeneratorPath = *req.GeneratorPath
	}
	if req.ValidatorPath != nil {
		challenge.ValidatorPath = *req.ValidatorPath
	}
	if req.TimedSetID != nil {
		challenge.TimedSetID = req.TimedSetID
	}
	if req.FinalSetID != nil {
		challenge.FinalSetID = req.FinalSetID
	}

	if err := database.DB.Save(&challenge).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedUpdateChallenge)
		return
	}
	if err := attachSetsAndBonuses(&challenge, req.SetIDs, req.BonusIDs); err != nil {
		respondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, challenge)
}

// UpdateChallengeStatus moves a challenge through its lifecycle. Entering
// InProgress stamps the start time; entering Archived stamps completion.
// @Summary Update challenge status
// @Description Transition a challenge between Removed, Draft, InProgress and Archived
// @Tags Challenges
// @Accept json
// @Produce json
// @Param id path int true "Challenge ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} models.Challenge
// @Failure 404 {object} map[string]string
// @Router /challenges/{id}/status [put]
// @Security Bearer
func UpdateChallengeStatus(c *gin.Context) {
	challengeID, err := parseID(c, "id")
	if err != nil {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	var challenge models.Challenge
	if err := database.DB.First(&challenge, challengeID).Error; err != nil {
		respondWithError(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}

	now := time.Now()
	if req.Status == models.ChallengeInProgress && challenge.Started == nil {
		challenge.Started = &now
	}
	if req.Status == models.ChallengeArchived && challenge.Completed == nil {
		challenge.Completed = &now
	}
	challenge.Status = req.Status

	if err := database.DB.Save(&challenge).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedUpdateChallenge)
		return
	}
	c.JSON(http.StatusOK, challenge)
}

// DeleteChallenge marks a challenge as removed. Solutions are kept.
// @Summary Delete challenge
// @Description Mark a challenge as removed without dropping its solutions
// @Tags Challenges
// @Produce json
// @Param id path int true "Challenge ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /challenges/{id} [delete]
// @Security Bearer
func DeleteChallenge(c *gin.Context) {
	challengeID, err := parseID(c, "id")
	if err != nil {
		return
	}

	var challenge models.Challenge
	if err := database.DB.First(&challenge, challengeID).Error; err != nil {
		respondWithError(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}

	challenge.Status = models.ChallengeRemoved
	if err := database.DB.Save(&challenge).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedUpdateChallenge)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Challenge removed"})
}

// attachSetsAndBonuses replaces the challenge's set and bonus associations
// when ids were provided
func attachSetsAndBonuses(challenge *models.Challenge, setIDs, bonusIDs []uint) error {
	if setIDs != nil {
		var sets []*models.Set
		if err := database.DB.Find(&sets, setIDs).Error; err != nil {
			return err
		}
		if err := database.DB.Model(challenge).Association("Sets").Replace(sets); err != nil {
			return err
		}
	}
	if bonusIDs != nil {
		var bonuses []*models.Bonus
		if err := database.DB.Find(&bonuses, bonusIDs).Error; err != nil {
			return err
		}
		if err := database.DB.Model(challenge).Association("Bonuses").Replace(bonuses); err != nil {
			return err
		}
	}
	return nil
}

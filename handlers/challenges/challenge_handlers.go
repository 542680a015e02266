package challenges

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"pqapi/config"
	"pqapi/database"
	"pqapi/middleware"
	"pqapi/models"
	"pqapi/services"

	"github.com/gin-gonic/gin"
)

// ListChallenges lists all challenges visible to the viewer
// @Summary List challenges
// @Description List all challenges visible to the viewer; staff also see drafts
// @Tags Challenges
// @Produce json
// @Success 200 {array} models.Challenge
// @Router /challenges [get]
func ListChallenges(c *gin.Context) {
	viewer := middleware.CurrentUser(c)

	challenges, err := services.ListVisibleChallenges(viewer)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedFetchChallenges)
		return
	}
	c.JSON(http.StatusOK, challenges)
}

// GetChallenge returns the challenge page data: the challenge, the viewer's
// button states for every set, the scoreboard and the viewer's score
// @Summary Get challenge detail
// @Description Get a challenge with per-set button states, scoreboard and the viewer's score
// @Tags Challenges
// @Produce json
// @Param id path int true "Challenge ID"
// @Success 200 {object} ChallengeDetailResponse
// @Failure 404 {object} map[string]string
// @Router /challenges/{id} [get]
func GetChallenge(c *gin.Context) {
	challengeID, err := parseID(c, "id")
	if err != nil {
		return
	}
	viewer := middleware.CurrentUser(c)

	challenge, err := services.GetVisibleChallenge(challengeID, viewer)
	if err != nil {
		respondWithError(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}

	mySolutions, myScore := viewerState(challenge.ID, viewer)

	scoreboard, err := cachedScoreboard(c, challenge.ID)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	buttons := services.ChallengeButtons(challenge, viewer, mySolutions, time.Now(), config.DefaultTiming)

	c.JSON(http.StatusOK, ChallengeDetailResponse{
		Challenge:  challenge,
		Buttons:    buttons,
		Scoreboard: scoreboard,
		MyScore:    myScore,
	})
}

// GetScoreboard returns the challenge leaderboard on its own
// @Summary Get challenge scoreboard
// @Description Get the ranked leaderboard for a challenge
// @Tags Challenges
// @Produce json
// @Param id path int true "Challenge ID"
// @Success 200 {array} services.ScoreRow
// @Failure 404 {object} map[string]string
// @Router /challenges/{id}/scoreboard [get]
func GetScoreboard(c *gin.Context) {
	challengeID, err := parseID(c, "id")
	if err != nil {
		return
	}
	if _, err := services.GetVisibleChallenge(challengeID, nil); err != nil {
		respondWithError(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}

	scoreboard, err := cachedScoreboard(c, challengeID)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, scoreboard)
}

// viewerState loads the viewer's solutions and score; anonymous viewers get
// an empty state
func viewerState(challengeID uint, viewer *models.User) (map[uint]*models.Solution, int) {
	if viewer == nil {
		return nil, 0
	}
	solutions, err := services.UserSolutions(challengeID, viewer.ID)
	if err != nil {
		return nil, 0
	}
	score, err := services.UserScore(challengeID, viewer.ID)
	if err != nil {
		return solutions, 0
	}
	return solutions, score
}

// cachedScoreboard serves the leaderboard through the redis cache
func cachedScoreboard(c *gin.Context, challengeID uint) ([]services.ScoreRow, error) {
	ctx := c.Request.Context()
	cacheKey := scoreboardCacheKey(challengeID)

	var scoreboard []services.ScoreRow
	if found, _ := database.GetFromCache(ctx, cacheKey, &scoreboard); found {
		return scoreboard, nil
	}

	scoreboard, err := services.ChallengeLeaderboard(challengeID)
	if err != nil {
		return nil, err
	}
	_ = database.SetToCache(ctx, cacheKey, scoreboard)
	return scoreboard, nil
}

func scoreboardCacheKey(challengeID uint) string {
	return fmt.Sprintf("challenge_scoreboard:%d", challengeID)
}

// parseID reads a positive integer path parameter, answering 400 on garbage
func parseID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		respondWithError(c, http.StatusBadRequest, ErrInvalidID)
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}

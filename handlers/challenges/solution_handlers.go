package challenges

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"pqapi/config"
	"pqapi/database"
	"pqapi/middleware"
	"pqapi/models"
	"pqapi/realtime"
	"pqapi/services"
	"pqapi/storage"

	"github.com/gin-gonic/gin"
)

// BeginSolution starts or resumes an attempt at a set and serves the
// generated input as a download
// @Summary Begin or resume an attempt
// @Description Start the user's attempt at a set and download the generated input
// @Tags Challenges
// @Produce plain
// @Param id path int true "Challenge ID"
// @Param set_id path int true "Set ID"
// @Success 200 {string} string "Generated input"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /challenges/{id}/begin/{set_id} [get]
// @Security Bearer
func BeginSolution(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	challengeID, err := parseID(c, "id")
	if err != nil {
		return
	}
	setID, err := parseID(c, "set_id")
	if err != nil {
		return
	}

	challenge, err := services.GetVisibleChallenge(challengeID, user)
	if err != nil {
		respondWithError(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}

	sol, err := services.BeginSolution(c.Request.Context(), gen, config.DefaultTiming, challenge, setID, user.ID)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	filename := storage.InputFilename(challenge.ID, sol.Set.Title, sol.Attempt)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/plain", []byte(sol.InputGen))
}

// UploadSolution submits the computed output plus optional source code
// @Summary Submit an attempt
// @Description Submit computed output and optional source code for a running attempt
// @Tags Challenges
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Challenge ID"
// @Param solution_id path int true "Solution ID"
// @Param output formData file true "Computed output file"
// @Param source formData file false "Source code file"
// @Param language_id formData int false "Language ID"
// @Success 200 {object} models.Solution
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /challenges/{id}/solutions/{solution_id}/upload [post]
// @Security Bearer
func UploadSolution(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	challengeID, err := parseID(c, "id")
	if err != nil {
		return
	}
	solutionID, err := parseID(c, "solution_id")
	if err != nil {
		return
	}

	output, err := readFormFile(c, "output")
	if err != nil {
		respondWithError(c, http.StatusBadRequest, "No output provided.")
		return
	}
	source, _ := readFormFile(c, "source")

	var languageID *uint
	if raw := c.PostForm("language_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			v := uint(id)
			languageID = &v
		}
	}

	sol, err := services.SubmitSolution(c.Request.Context(), config.DefaultTiming, store, solutionID, user.ID, output, source, languageID)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	// The leaderboard changed: drop the cached copy and notify watchers
	database.InvalidateCache(c.Request.Context(), scoreboardCacheKey(challengeID))
	if scoreboard, err := services.ChallengeLeaderboard(challengeID); err == nil {
		realtime.BroadcastScoreboardUpdate(realtime.ScoreboardUpdate{
			ChallengeID: challengeID,
			Username:    user.Username,
			SetID:       sol.SetID,
			Scoreboard:  scoreboard,
		})
	}

	c.JSON(http.StatusOK, sol)
}

// DeleteSolution removes the user's own attempt
// @Summary Delete own attempt
// @Description Delete the user's own solution so the set can be retried from scratch
// @Tags Challenges
// @Produce json
// @Param id path int true "Challenge ID"
// @Param solution_id path int true "Solution ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /challenges/{id}/solutions/{solution_id} [delete]
// @Security Bearer
func DeleteSolution(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	challengeID, err := parseID(c, "id")
	if err != nil {
		return
	}
	solutionID, err := parseID(c, "solution_id")
	if err != nil {
		return
	}

	if err := services.DeleteSolution(solutionID, user.ID); err != nil {
		respondWithServiceError(c, err)
		return
	}

	database.InvalidateCache(c.Request.Context(), scoreboardCacheKey(challengeID))
	c.JSON(http.StatusOK, gin.H{"message": "Solution deleted"})
}

// GetSolutionRaw serves the submitted source code inline
// @Summary View submitted source
// @Description View the submitted source code of a completed solution
// @Tags Challenges
// @Produce plain
// @Param id path int true "Challenge ID"
// @Param solution_id path int true "Solution ID"
// @Success 200 {string} string "Source code"
// @Failure 404 {object} map[string]string
// @Router /challenges/{id}/solutions/{solution_id}/raw [get]
// @Security Bearer
func GetSolutionRaw(c *gin.Context) {
	serveSolutionSource(c, false)
}

// DownloadSolutionSource serves the submitted source code as an attachment
// @Summary Download submitted source
// @Description Download the submitted source code of a completed solution
// @Tags Challenges
// @Produce plain
// @Param id path int true "Challenge ID"
// @Param solution_id path int true "Solution ID"
// @Success 200 {string} string "Source code"
// @Failure 404 {object} map[string]string
// @Router /challenges/{id}/solutions/{solution_id}/download [get]
// @Security Bearer
func DownloadSolutionSource(c *gin.Context) {
	serveSolutionSource(c, true)
}

func serveSolutionSource(c *gin.Context, asAttachment bool) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	if _, err := parseID(c, "id"); err != nil {
		return
	}
	solutionID, err := parseID(c, "solution_id")
	if err != nil {
		return
	}

	sol, err := services.GetSolution(solutionID)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	// Source stays private until the solution is complete; the owner and
	// staff can always look
	if sol.AuthorID != user.ID && !user.IsStaff && sol.Status != models.SolutionComplete {
		respondWithError(c, http.StatusForbidden, ErrNotYourSolution)
		return
	}
	if sol.SourceFile == "" {
		respondWithError(c, http.StatusNotFound, "No source code submitted")
		return
	}

	data, err := store.Read(sol.SourceFile)
	if err != nil {
		respondWithError(c, http.StatusNotFound, "Source file missing")
		return
	}

	if asAttachment {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filepath.Base(sol.SourceFile)))
	}
	c.Data(http.StatusOK, "text/plain", data)
}

// readFormFile reads an uploaded multipart file into memory
func readFormFile(c *gin.Context, field string) (*services.SubmissionFile, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, err
	}
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, config.MaxUploadSize+1))
	if err != nil {
		return nil, err
	}
	return &services.SubmissionFile{
		Name:        header.Filename,
		ContentType: contentType(header),
		Data:        data,
	}, nil
}

func contentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "text/plain"
}

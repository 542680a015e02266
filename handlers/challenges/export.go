package challenges

import (
	"fmt"
	"net/http"
	"time"

	"pqapi/database"
	"pqapi/models"
	"pqapi/services"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportChallengeExcel exports all solutions of a challenge as an XLSX file
// @Summary Export challenge data
// @Description Export every solution of a challenge as a spreadsheet
// @Tags Challenges
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path int true "Challenge ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Router /challenges/{id}/export [get]
// @Security Bearer
func ExportChallengeExcel(c *gin.Context) {
	challengeID, err := parseID(c, "id")
	if err != nil {
		return
	}

	var challenge models.Challenge
	if err := database.DB.First(&challenge, challengeID).Error; err != nil {
		respondWithError(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}

	var solutions []models.Solution
	err = database.DB.
		Preload("Author").
		Preload("Set").
		Preload("Bonuses").
		Where("challenge_id = ?", challengeID).
		Order("author_id, set_id").
		Find(&solutions).Error
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedExport)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Solutions"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"User", "Set", "Status", "Attempt", "Generated", "Submitted", "Points", "Bonus points"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	statusNames := map[int]string{
		models.SolutionIncomplete: "Incomplete",
		models.SolutionExpired:    "Expired",
		models.SolutionComplete:   "Complete",
	}

	for row, sol := range solutions {
		points := 0
		if sol.Status == models.SolutionComplete && sol.Set != nil {
			points = sol.Set.Points
		}
		bonusPoints := 0
		for _, b := range sol.Bonuses {
			bonusPoints += b.Points
		}

		values := []interface{}{
			sol.Author.Username,
			sol.Set.Title,
			statusNames[sol.Status],
			sol.Attempt,
			formatTimePtr(sol.Generated),
			formatTimePtr(sol.Submitted),
			points,
			bonusPoints,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	scoreboard, err := services.ChallengeLeaderboard(challengeID)
	if err == nil {
		boardSheet := "Scoreboard"
		f.NewSheet(boardSheet)
		f.SetCellValue(boardSheet, "A1", "Rank")
		f.SetCellValue(boardSheet, "B1", "User")
		f.SetCellValue(boardSheet, "C1", "Score")
		for i, row := range scoreboard {
			f.SetCellValue(boardSheet, fmt.Sprintf("A%d", i+2), i+1)
			f.SetCellValue(boardSheet, fmt.Sprintf("B%d", i+2), row.Username)
			f.SetCellValue(boardSheet, fmt.Sprintf("C%d", i+2), row.Score)
		}
	}

	filename := fmt.Sprintf("challenge-%d-export.xlsx", challengeID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedExport)
	}
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

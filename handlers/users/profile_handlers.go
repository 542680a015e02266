package users

import (
	"net/http"

	"pqapi/database"
	"pqapi/middleware"
	"pqapi/models"

	"github.com/gin-gonic/gin"
)

// ProfileResponse model for user profiles
type ProfileResponse struct {
	UserID        uint   `json:"user_id"`
	Username      string `json:"username"`
	CompletedSets int64  `json:"completed_sets"`
	BonusesEarned int64  `json:"bonuses_earned"`
}

// RegisterRoutes registers all routes related to user profiles
func RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/users/me", middleware.AuthMiddleware(), GetMyProfile)
	r.GET("/users/:username", GetProfile)
}

// GetMyProfile returns the authenticated user's profile
// @Summary Get own profile
// @Description Get the authenticated user's profile and completion totals
// @Tags Users
// @Produce json
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} map[string]string
// @Router /users/me [get]
// @Security Bearer
func GetMyProfile(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	c.JSON(http.StatusOK, buildProfile(user))
}

// GetProfile returns a public profile by username
// @Summary Get user profile
// @Description Get a user's public profile and completion totals
// @Tags Users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} ProfileResponse
// @Failure 404 {object} map[string]string
// @Router /users/{username} [get]
func GetProfile(c *gin.Context) {
	var user models.User
	if err := database.DB.Where("username = ?", c.Param("username")).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, buildProfile(&user))
}

func buildProfile(user *models.User) ProfileResponse {
	var completed int64
	database.DB.Model(&models.Solution{}).
		Where("author_id = ? AND status = ?", user.ID, models.SolutionComplete).
		Count(&completed)

	var bonuses int64
	database.DB.Table("solution_bonuses").
		Joins("JOIN solutions ON solutions.id = solution_bonuses.solution_id").
		Where("solutions.author_id = ?", user.ID).
		Count(&bonuses)

	return ProfileResponse{
		UserID:        user.ID,
		Username:      user.Username,
		CompletedSets: completed,
		BonusesEarned: bonuses,
	}
}

package bonuses

import (
	"net/http"
	"strconv"

	"pqapi/database"
	"pqapi/middleware"
	"pqapi/models"

	"github.com/gin-gonic/gin"
)

// UpdateBonusRequest model for editing a bonus
type UpdateBonusRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Points      int    `json:"points"`
}

// RegisterRoutes registers all routes related to bonuses
func RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/bonuses", ListBonuses)

	staff := r.Group("/bonuses")
	staff.Use(middleware.AuthMiddleware(), middleware.StaffMiddleware())
	{
		staff.PUT("/:id", UpdateBonus)
	}
}

// ListBonuses lists the available bonuses
// @Summary List bonuses
// @Description List the built-in bonuses and their point values
// @Tags Bonuses
// @Produce json
// @Success 200 {array} models.Bonus
// @Router /bonuses [get]
func ListBonuses(c *gin.Context) {
	var bonuses []models.Bonus
	if err := database.DB.Order("id").Find(&bonuses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bonuses"})
		return
	}
	c.JSON(http.StatusOK, bonuses)
}

// UpdateBonus edits a bonus's display fields and point value. The kind is
// fixed: behavior is bound to it.
// @Summary Update bonus
// @Description Update a bonus's title, description, icon and points
// @Tags Bonuses
// @Accept json
// @Produce json
// @Param id path int true "Bonus ID"
// @Param request body UpdateBonusRequest true "Bonus details"
// @Success 200 {object} models.Bonus
// @Failure 404 {object} map[string]string
// @Router /bonuses/{id} [put]
// @Security Bearer
func UpdateBonus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var req UpdateBonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	var bonus models.Bonus
	if err := database.DB.First(&bonus, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bonus not found"})
		return
	}

	bonus.Title = req.Title
	bonus.Description = req.Description
	bonus.Icon = req.Icon
	bonus.Points = req.Points
	if err := database.DB.Save(&bonus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save bonus"})
		return
	}
	c.JSON(http.StatusOK, bonus)
}

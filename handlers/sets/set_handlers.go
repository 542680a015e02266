package sets

import (
	"net/http"
	"strconv"

	"pqapi/database"
	"pqapi/models"

	"github.com/gin-gonic/gin"
)

const (
	ErrSetNotFound   = "Set not found"
	ErrInvalidData   = "Invalid request data"
	ErrSetInUse      = "Set is attached to a challenge"
	ErrFailedSaveSet = "Failed to save set"
)

// SetRequest model for creating or updating a set
type SetRequest struct {
	Title     string `json:"title" binding:"required"`
	Points    int    `json:"points" binding:"required"`
	TimeLimit *int   `json:"time_limit" binding:"required"`
}

// ListSets lists all reusable sets in progression order
// @Summary List sets
// @Description List all reusable difficulty sets
// @Tags Sets
// @Produce json
// @Success 200 {array} models.Set
// @Router /sets [get]
func ListSets(c *gin.Context) {
	var sets []models.Set
	if err := database.DB.Order("id").Find(&sets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sets"})
		return
	}
	c.JSON(http.StatusOK, sets)
}

// CreateSet creates a reusable set
// @Summary Create set
// @Description Create a reusable difficulty set
// @Tags Sets
// @Accept json
// @Produce json
// @Param request body SetRequest true "Set details"
// @Success 201 {object} models.Set
// @Failure 400 {object} map[string]string
// @Router /sets [post]
// @Security Bearer
func CreateSet(c *gin.Context) {
	var req SetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrInvalidData})
		return
	}

	set := models.Set{Title: req.Title, Points: req.Points, TimeLimit: *req.TimeLimit}
	if err := database.DB.Create(&set).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrFailedSaveSet})
		return
	}
	c.JSON(http.StatusCreated, set)
}

// UpdateSet updates a reusable set
// @Summary Update set
// @Description Update a reusable difficulty set
// @Tags Sets
// @Accept json
// @Produce json
// @Param id path int true "Set ID"
// @Param request body SetRequest true "Set details"
// @Success 200 {object} models.Set
// @Failure 404 {object} map[string]string
// @Router /sets/{id} [put]
// @Security Bearer
func UpdateSet(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrInvalidData})
		return
	}

	var req SetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrInvalidData})
		return
	}

	var set models.Set
	if err := database.DB.First(&set, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrSetNotFound})
		return
	}

	set.Title = req.Title
	set.Points = req.Points
	set.TimeLimit = *req.TimeLimit
	if err := database.DB.Save(&set).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrFailedSaveSet})
		return
	}
	c.JSON(http.StatusOK, set)
}

// DeleteSet removes a set that is not attached to any challenge
// @Summary Delete set
// @Description Delete a set that no challenge references
// @Tags Sets
// @Produce json
// @Param id path int true "Set ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sets/{id} [delete]
// @Security Bearer
func DeleteSet(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrInvalidData})
		return
	}

	var set models.Set
	if err := database.DB.First(&set, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrSetNotFound})
		return
	}

	var attached int64
	database.DB.Table("challenge_sets").Where("set_id = ?", set.ID).Count(&attached)
	if attached > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": ErrSetInUse})
		return
	}

	if err := database.DB.Delete(&set).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete set"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Set deleted"})
}

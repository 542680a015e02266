package languages

import (
	"net/http"

	"pqapi/database"
	"pqapi/middleware"
	"pqapi/models"

	"github.com/gin-gonic/gin"
)

// LanguageRequest model for adding a language
type LanguageRequest struct {
	Name      string `json:"name" binding:"required"`
	Extension string `json:"extension" binding:"required"`
}

// RegisterRoutes registers all routes related to languages
func RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/languages", ListLanguages)

	staff := r.Group("/languages")
	staff.Use(middleware.AuthMiddleware(), middleware.StaffMiddleware())
	{
		staff.POST("/", CreateLanguage)
	}
}

// ListLanguages lists the languages available for tagging source code
// @Summary List languages
// @Description List the languages submissions can be tagged with
// @Tags Languages
// @Produce json
// @Success 200 {array} models.Language
// @Router /languages [get]
func ListLanguages(c *gin.Context) {
	var languages []models.Language
	if err := database.DB.Order("name").Find(&languages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch languages"})
		return
	}
	c.JSON(http.StatusOK, languages)
}

// CreateLanguage adds a language to the list
// @Summary Create language
// @Description Add a language to the selectable list
// @Tags Languages
// @Accept json
// @Produce json
// @Param request body LanguageRequest true "Language details"
// @Success 201 {object} models.Language
// @Failure 400 {object} map[string]string
// @Router /languages [post]
// @Security Bearer
func CreateLanguage(c *gin.Context) {
	var req LanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	language := models.Language{Name: req.Name, Extension: req.Extension}
	if err := database.DB.Create(&language).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create language"})
		return
	}
	c.JSON(http.StatusCreated, language)
}

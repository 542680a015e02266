package sets

import (
	"pqapi/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to sets
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	sets := r.Group("/sets")
	{
		sets.GET("/", ListSets)
	}

	staff := r.Group("/sets")
	staff.Use(middleware.AuthMiddleware(), middleware.StaffMiddleware())
	{
		staff.POST("/", CreateSet)
		staff.PUT("/:id", UpdateSet)
		staff.DELETE("/:id", DeleteSet)
	}
}

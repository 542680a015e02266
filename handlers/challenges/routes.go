package challenges

import (
	"pqapi/config"
	"pqapi/middleware"
	"pqapi/runner"
	"pqapi/storage"

	"github.com/gin-gonic/gin"
)

var (
	gen   runner.Generator
	store *storage.Store
)

// RegisterRoutes registers all routes related to challenges
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	gen = runner.New(config.DefaultTiming.RunnerTimeout)
	store = storage.NewStore(config.MediaDir)

	// Public routes (anonymous viewers see buttons in their logged-out state)
	r.GET("/challenges", middleware.OptionalAuthMiddleware(), ListChallenges)
	r.GET("/challenges/:id", middleware.OptionalAuthMiddleware(), GetChallenge)
	r.GET("/challenges/:id/scoreboard", GetScoreboard)
	r.GET("/challenges/:id/ws", ChallengeWebSocket)

	authed := r.Group("/challenges")
	authed.Use(middleware.AuthMiddleware())
	{
		// Solution lifecycle routes
		authed.GET("/:id/begin/:set_id", BeginSolution)
		authed.POST("/:id/solutions/:solution_id/upload", UploadSolution)
		authed.DELETE("/:id/solutions/:solution_id", DeleteSolution)
		authed.GET("/:id/solutions/:solution_id/raw", GetSolutionRaw)
		authed.GET("/:id/solutions/:solution_id/download", DownloadSolutionSource)
	}

	staff := r.Group("/challenges")
	staff.Use(middleware.AuthMiddleware(), middleware.StaffMiddleware())
	{
		// Challenge management routes
		staff.POST("/", CreateChallenge)
		staff.PUT("/:id", UpdateChallenge)
		staff.PUT("/:id/status", UpdateChallengeStatus)
		staff.DELETE("/:id", DeleteChallenge)
		staff.GET("/:id/export", ExportChallengeExcel)
	}
}

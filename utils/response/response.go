package response

import (
	"github.com/gin-gonic/gin"
)

// Error sends a standardized error response
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// ValidationError sends a response for submission validation failures,
// carrying the failing line when one is known
func ValidationError(c *gin.Context, message string, line int) {
	body := gin.H{"error": message}
	if line > 0 {
		body["line"] = line
	}
	c.JSON(400, body)
}

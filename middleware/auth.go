package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"pqapi/database"
	"pqapi/models"

	"github.com/gin-gonic/gin"
)

const userKey = "auth_user"

// AuthMiddleware requires a valid bearer token and loads the user
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := UserFromToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		if user.Blocked {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Your account has been blocked"})
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// OptionalAuthMiddleware loads the user when a valid token is present but
// lets anonymous requests through
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := UserFromToken(c); err == nil && !user.Blocked {
			c.Set(userKey, user)
		}
		c.Next()
	}
}

// StaffMiddleware requires the authenticated user to be staff
func StaffMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromRequest(c)
		if err != nil {
			return
		}
		if !user.IsStaff {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Staff access required"})
			return
		}
		c.Next()
	}
}

// GetUserFromRequest returns the authenticated user, writing a 401 response
// when there is none
func GetUserFromRequest(c *gin.Context) (*models.User, error) {
	user := CurrentUser(c)
	if user == nil {
		err := fmt.Errorf("not authenticated")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return nil, err
	}
	return user, nil
}

// CurrentUser returns the authenticated user, or nil for anonymous requests
func CurrentUser(c *gin.Context) *models.User {
	if value, exists := c.Get(userKey); exists {
		if user, ok := value.(*models.User); ok {
			return user
		}
	}
	return nil
}

// UserFromToken resolves the request's bearer token or auth cookie to a
// user without touching the response. Callers decide how to answer a miss.
func UserFromToken(c *gin.Context) (*models.User, error) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return nil, fmt.Errorf("no token provided")
	}

	claims, err := ParseToken(tokenString)
	if err != nil {
		return nil, fmt.Errorf("invalid or expired token")
	}

	var user models.User
	if err := database.DB.First(&user, claims.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found")
	}
	return &user, nil
}

// bearerToken extracts the token from the Authorization header, falling back
// to the auth cookie
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	if cookie, err := c.Cookie("auth_token"); err == nil {
		return cookie
	}
	return ""
}

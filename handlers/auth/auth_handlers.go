package auth

import (
	"net/http"
	"time"

	"pqapi/database"
	"pqapi/middleware"
	"pqapi/models"
	"pqapi/utils"
	"pqapi/utils/response"

	"github.com/gin-gonic/gin"
)

// Login authenticates a user and returns a token
// @Summary Login
// @Description Authenticate with username and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request data")
		return
	}

	var user models.User
	if err := database.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		response.Error(c, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		response.Error(c, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}
	if user.Blocked {
		response.Error(c, http.StatusForbidden, ErrAccountBlocked)
		return
	}

	lifetime := 24 * time.Hour
	if req.RememberMe {
		lifetime = 30 * 24 * time.Hour
	}
	token, err := middleware.GenerateToken(&user, lifetime)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrTokenGenerateFailed)
		return
	}

	now := time.Now()
	user.LastConnected = &now
	database.DB.Save(&user)

	setCookieToken(c, token, req.RememberMe)
	c.JSON(http.StatusOK, AuthResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsStaff:  user.IsStaff,
	})
}

// RegisterUser creates a new account
// @Summary Register
// @Description Create a new participant account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} map[string]string
// @Router /auth/register [post]
func RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request data")
		return
	}

	var count int64
	database.DB.Model(&models.User{}).Where("username = ?", req.Username).Count(&count)
	if count > 0 {
		response.Error(c, http.StatusBadRequest, ErrUsernameInUse)
		return
	}
	database.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		response.Error(c, http.StatusBadRequest, ErrEmailInUse)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrHashPasswordFailed)
		return
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrUserCreateFailed)
		return
	}

	token, err := middleware.GenerateToken(&user, 24*time.Hour)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrTokenGenerateFailed)
		return
	}

	setCookieToken(c, token, false)
	c.JSON(http.StatusCreated, AuthResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsStaff:  user.IsStaff,
	})
}

// CheckAuth validates the current token and returns the user
// @Summary Check authentication
// @Description Validate the current session token
// @Tags Auth
// @Produce json
// @Success 200 {object} AuthResponse
// @Failure 401 {object} map[string]string
// @Router /auth/check [get]
// @Security Bearer
func CheckAuth(c *gin.Context) {
	user, err := middleware.UserFromToken(c)
	if err != nil || user.Blocked {
		response.Error(c, http.StatusUnauthorized, ErrInvalidToken)
		return
	}
	c.JSON(http.StatusOK, AuthResponse{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsStaff:  user.IsStaff,
	})
}

// Logout clears the auth cookie
// @Summary Logout
// @Description Clear the session cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func Logout(c *gin.Context) {
	c.SetCookie("auth_token", "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

package middleware

import (
	"fmt"
	"time"

	"pqapi/config"
	"pqapi/models"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried in the auth token
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	IsStaff  bool   `json:"is_staff"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed token for the user
func GenerateToken(user *models.User, lifetime time.Duration) (string, error) {
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		IsStaff:  user.IsStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWTSecret))
}

// ParseToken validates a token string and returns its claims
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

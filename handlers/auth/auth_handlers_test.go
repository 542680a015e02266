package auth

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"pqapi/database"
	"pqapi/middleware"
	"pqapi/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:auth_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
	return db
}

func checkAuthRequest(t *testing.T, token string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/check", CheckAuth)

	req := httptest.NewRequest(http.MethodGet, "/check", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheckAuth(t *testing.T) {
	db := setupTestDB(t)

	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	token, err := middleware.GenerateToken(user, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	w := checkAuthRequest(t, token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), `"username":"alice"`) {
		t.Errorf("body %s does not carry the user", w.Body.String())
	}
}

func TestCheckAuthRejectsMissingAndGarbageTokens(t *testing.T) {
	setupTestDB(t)

	if w := checkAuthRequest(t, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if w := checkAuthRequest(t, "not.a.token"); w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestCheckAuthRejectsBlockedUser(t *testing.T) {
	db := setupTestDB(t)

	user := &models.User{Username: "mallory", Email: "mallory@example.com", Password: "x", Blocked: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	token, err := middleware.GenerateToken(user, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if w := checkAuthRequest(t, token); w.Code != http.StatusUnauthorized {
		t.Errorf("blocked user: status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

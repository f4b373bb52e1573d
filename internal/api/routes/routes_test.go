package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"account-panel/internal/config"
	"account-panel/internal/models"
	"account-panel/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTest initializes a temp-file sqlite database with the default admin
// seeded, plus a config good for testing
func setupTest(t *testing.T) (*gorm.DB, *config.Config) {
	testDBPath := fmt.Sprintf("%s/apanel_test_%d.db", os.TempDir(), time.Now().UnixNano())

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Type: "sqlite",
			SQLite: config.SQLiteConfig{
				Path: testDBPath,
			},
		},
		JWT: config.JWTConfig{
			Secret:    "test-secret-key-for-testing-only",
			ExpiresIn: "24h",
			Issuer:    "account-panel-test",
		},
		Security: config.SecurityConfig{
			BcryptCost: 4,
		},
		DefaultUser: config.DefaultUserConfig{
			Username: "admin",
			Email:    "admin@example.com",
			Password: "admin123",
			Role:     "admin",
		},
	}

	db, err := models.InitDB(cfg)
	require.NoError(t, err)

	authService := services.NewAuthService(db, cfg)
	require.NoError(t, authService.EnsureDefaultAdmin())

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		os.Remove(testDBPath)
	})

	return db, cfg
}

// setupTestRouter creates a test router with routes
func setupTestRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRoutes(r, db, cfg)
	return r
}

// performRequest sends a JSON request, optionally with a bearer token
func performRequest(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a JSON object response
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// decodeList unmarshals a JSON array response
func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	return list
}

// registerUser registers a user through the API and fails the test on error
func registerUser(t *testing.T, r http.Handler, username, email, password string) {
	w := performRequest(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code)
}

// loginToken logs in through the API and returns the issued token
func loginToken(t *testing.T, r http.Handler, email, password string) string {
	w := performRequest(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	token, ok := body["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

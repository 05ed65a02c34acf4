package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/nutrilog/backend/internal/cache"
	"github.com/nutrilog/backend/internal/middleware"
	"github.com/nutrilog/backend/internal/service"
	"github.com/nutrilog/backend/internal/testhelpers"
)

type testEnv struct {
	router *gin.Engine
}

// setupTestEnv wires the full handler stack against an in-memory database.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	store := cache.NewMemory()

	summaryService := service.NewSummaryService(db, store)
	foodService := service.NewFoodService(db, store)
	logService := service.NewFoodLogService(db, summaryService)
	waterService := service.NewWaterService(db, summaryService)
	profileService := service.NewProfileService(db)
	goalService := service.NewGoalService(db)
	authService := service.NewAuthService(db, "test-secret")

	router := gin.New()
	v1 := router.Group("/api/v1")
	NewAuthHandler(authService).RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.Auth(authService))
	NewFoodHandler(foodService, logService, summaryService, waterService).RegisterRoutes(protected)
	NewProfileHandler(profileService).RegisterRoutes(protected)
	NewGoalHandler(goalService).RegisterRoutes(protected)

	return &testEnv{router: router}
}

// registerUser creates an account through the API and returns its token.
func (e *testEnv) registerUser(t *testing.T, email string) string {
	t.Helper()
	w := e.request(t, http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
		"name":     "Test User",
		"email":    email,
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (e *testEnv) request(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

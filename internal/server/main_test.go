package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"momentcanvas/internal/config"
	"momentcanvas/internal/database"
	"momentcanvas/internal/middleware"
	"momentcanvas/internal/models"
	"momentcanvas/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testPassword satisfies the signup password policy.
const testPassword = "Sup3r-Secret-Pass!"

func testServerConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		JWTSecret:       "test-secret-key-for-handler-tests",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 14 * 24 * time.Hour,
		ImageDir:        t.TempDir(),
	}
}

// newTestApp spins up the full route surface on sqlite and miniredis.
func newTestApp(t *testing.T) (*fiber.App, *Server) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := testServerConfig(t)
	middleware.InitMiddleware(cfg)

	s, err := NewServerWithDeps(cfg, db, client)
	require.NoError(t, err)

	app := fiber.New()
	s.SetupRoutes(app)
	return app, s
}

// doJSON issues a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// signupAndLogin registers a fresh account and returns its id and token pair.
func signupAndLogin(t *testing.T, app *fiber.App, loginID, nickname string) (uint, service.TokenPair) {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", SignupRequest{
		LoginID:  loginID,
		Password: testPassword,
		Nickname: nickname,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	user := decodeBody[models.User](t, resp)

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", LoginRequest{
		LoginID:  loginID,
		Password: testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	pair := decodeBody[service.TokenPair](t, resp)
	return user.ID, pair
}

// createAdmin writes an ADMIN account straight to the DB and logs it in.
func createAdmin(t *testing.T, app *fiber.App, s *Server) (uint, service.TokenPair) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	admin := &models.User{
		LoginID:  "site_admin",
		Password: string(hash),
		Nickname: "site.admin",
		Status:   models.UserStatusActive,
		Role:     models.UserRoleAdmin,
		Provider: models.ProviderNone,
	}
	require.NoError(t, s.db.Create(admin).Error)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", LoginRequest{
		LoginID:  admin.LoginID,
		Password: testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return admin.ID, decodeBody[service.TokenPair](t, resp)
}

// diaryBody builds a valid diary payload for the given date.
func diaryBody(date string, visibility models.Visibility) DiaryRequest {
	return DiaryRequest{
		Title:      "entry for " + date,
		Content:    "what happened on " + date,
		Mood:       3,
		Visibility: string(visibility),
		TargetDate: date,
	}
}

// createDiary posts an entry and returns its id.
func createDiary(t *testing.T, app *fiber.App, token, date string, visibility models.Visibility) uint {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/diaries", token, diaryBody(date, visibility))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[models.Diary](t, resp).ID
}

// followBothWays makes a and b mutual followers through the API.
func followBothWays(t *testing.T, app *fiber.App, tokenA, tokenB string, idA, idB uint) {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/follows/%d", idB), tokenA, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/follows/%d", idA), tokenB, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()
}

package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/docvault/auth-service/internal/config"
	"github.com/docvault/auth-service/internal/handlers"
	"github.com/docvault/auth-service/internal/metrics"
	"github.com/docvault/auth-service/internal/models"
	"github.com/docvault/auth-service/internal/repository"
	"github.com/docvault/auth-service/internal/service"
)

// =============================================================================
// In-memory UserRepository
// =============================================================================

type memoryUserRepo struct {
	users  map[string]*models.User
	nextID int64
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*models.User), nextID: 1}
}

func (m *memoryUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := m.users[email]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memoryUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryUserRepo) Create(ctx context.Context, user *models.User) error {
	if _, ok := m.users[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	user.ID = m.nextID
	m.nextID++
	user.CreatedAt = time.Now()
	copied := *user
	m.users[user.Email] = &copied
	return nil
}

// =============================================================================
// Test Helpers
// =============================================================================

func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()

	cfg := &config.Config{
		JWTSecret:   "this-is-a-test-secret-with-32-bytes!",
		TokenExpiry: time.Hour,
		CORSOrigins: []string{"*"},
	}

	jwtService := service.NewJWTService(cfg.JWTSecret, cfg.TokenExpiry)
	authService := service.NewAuthService(newMemoryUserRepo(), jwtService, nil)
	authHandler := handlers.NewAuthHandler(authService, metrics.New(prometheus.NewRegistry()))
	healthHandler := handlers.NewHealthHandler()

	Setup(router, authHandler, healthHandler, jwtService, cfg)
	return router
}

func doJSON(router *gin.Engine, method, path, body, authorization string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	router.ServeHTTP(w, req)
	return w
}

// =============================================================================
// End-to-end Flow
// =============================================================================

func TestRegisterLoginDashboardFlow(t *testing.T) {
	router := setupTestServer(t)

	// Register
	w := doJSON(router, "POST", "/api/auth/register",
		`{"name":"Ann Lee","email":"ann@example.com","password":"secret1"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want %d (body %s)", w.Code, http.StatusCreated, w.Body.String())
	}

	// Duplicate registration loses.
	w = doJSON(router, "POST", "/api/auth/register",
		`{"name":"Ann Lee","email":"ann@example.com","password":"secret1"}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	// Login
	w = doJSON(router, "POST", "/api/auth/login",
		`{"email":"ann@example.com","password":"secret1"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, want %d (body %s)", w.Code, http.StatusOK, w.Body.String())
	}

	var loginBody struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &loginBody); err != nil {
		t.Fatalf("failed to parse login body: %v", err)
	}
	if loginBody.Token == "" {
		t.Fatal("login should return a non-empty token")
	}

	// Dashboard with the issued token
	w = doJSON(router, "GET", "/api/auth/dashboard", "", "Bearer "+loginBody.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d, want %d (body %s)", w.Code, http.StatusOK, w.Body.String())
	}

	var dashboardBody struct {
		Data struct {
			Email string `json:"email"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &dashboardBody); err != nil {
		t.Fatalf("failed to parse dashboard body: %v", err)
	}
	if dashboardBody.Data.Email != "ann@example.com" {
		t.Errorf("dashboard data.email = %q, want ann@example.com", dashboardBody.Data.Email)
	}
	if strings.Contains(strings.ToLower(w.Body.String()), "password") {
		t.Error("dashboard body must not mention password material")
	}

	// Dashboard without a header
	w = doJSON(router, "GET", "/api/auth/dashboard", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no-header dashboard status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(w.Body.String(), "No token provided") {
		t.Errorf("no-header body = %s, want No token provided", w.Body.String())
	}

	// Dashboard with a garbage token
	w = doJSON(router, "GET", "/api/auth/dashboard", "", "Bearer garbage")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage-token dashboard status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(w.Body.String(), "Invalid or expired token") {
		t.Errorf("garbage-token body = %s, want Invalid or expired token", w.Body.String())
	}
}

func TestWrongPasswordAndUnknownEmailSameShape(t *testing.T) {
	router := setupTestServer(t)

	w := doJSON(router, "POST", "/api/auth/register",
		`{"name":"Ann Lee","email":"ann@example.com","password":"secret1"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want %d", w.Code, http.StatusCreated)
	}

	wrongPassword := doJSON(router, "POST", "/api/auth/login",
		`{"email":"ann@example.com","password":"not-it"}`, "")
	unknownEmail := doJSON(router, "POST", "/api/auth/login",
		`{"email":"ghost@example.com","password":"secret1"}`, "")

	if wrongPassword.Code != http.StatusUnauthorized || unknownEmail.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d/%d, want both %d",
			wrongPassword.Code, unknownEmail.Code, http.StatusUnauthorized)
	}
	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Errorf("bodies differ:\n%s\n%s", wrongPassword.Body.String(), unknownEmail.Body.String())
	}
}

// =============================================================================
// Ancillary Routes
// =============================================================================

func TestRootLiveness(t *testing.T) {
	router := setupTestServer(t)

	w := doJSON(router, "GET", "/", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("root status = %d, want %d", w.Code, http.StatusOK)
	}
	if w.Body.String() != "Server is running..." {
		t.Errorf("root body = %q, want Server is running...", w.Body.String())
	}
}

func TestHealthRoute(t *testing.T) {
	router := setupTestServer(t)

	w := doJSON(router, "GET", "/health", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("health body = %s, want healthy", w.Body.String())
	}
}

func TestMetricsRoute(t *testing.T) {
	router := setupTestServer(t)

	w := doJSON(router, "GET", "/metrics", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestSwaggerDisabledByDefault(t *testing.T) {
	router := setupTestServer(t)

	w := doJSON(router, "GET", "/swagger/index.html", "", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("swagger status = %d, want %d when SWAGGER_HOST unset", w.Code, http.StatusNotFound)
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// =============================================================================
// Test Helpers
// =============================================================================

func setupCORSRouter(origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS(CORSConfig{AllowedOrigins: origins}))
	router.POST("/api/auth/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return router
}

func doCORSRequest(router *gin.Engine, method, origin string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/api/auth/login", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	router.ServeHTTP(w, req)
	return w
}

// =============================================================================
// CORS Tests
// =============================================================================

func TestCORS_AllowedOrigin(t *testing.T) {
	router := setupCORSRouter([]string{"http://localhost:4200"})

	w := doCORSRequest(router, http.MethodPost, "http://localhost:4200")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:4200" {
		t.Errorf("Allow-Origin = %q, want the request origin", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Allow-Credentials = %q, want true", got)
	}
}

func TestCORS_NormalizesOrigin(t *testing.T) {
	router := setupCORSRouter([]string{"http://Localhost:4200/"})

	w := doCORSRequest(router, http.MethodPost, "http://localhost:4200")

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:4200" {
		t.Errorf("Allow-Origin = %q, want the request origin", got)
	}
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	router := setupCORSRouter([]string{"http://localhost:4200"})

	w := doCORSRequest(router, http.MethodPost, "http://evil.example.com")

	// Request still runs; the browser enforces the missing headers.
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want empty for disallowed origin", got)
	}
}

func TestCORS_WildcardReflectsOrigin(t *testing.T) {
	router := setupCORSRouter([]string{"*"})

	w := doCORSRequest(router, http.MethodPost, "http://anything.example.com")

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://anything.example.com" {
		t.Errorf("Allow-Origin = %q, want reflected origin", got)
	}
}

func TestCORS_Preflight(t *testing.T) {
	router := setupCORSRouter([]string{"http://localhost:4200"})

	w := doCORSRequest(router, http.MethodOptions, "http://localhost:4200")

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Error("preflight should advertise allowed methods")
	}
}

// Package handlers contains HTTP request handlers for the auth service.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docvault/auth-service/internal/metrics"
	"github.com/docvault/auth-service/internal/middleware"
	"github.com/docvault/auth-service/internal/repository"
	"github.com/docvault/auth-service/internal/service"
)

// AuthHandler handles authentication HTTP requests.
type AuthHandler struct {
	authService service.AuthService
	metrics     *metrics.Metrics
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(authService service.AuthService, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		metrics:     m,
	}
}

// Register godoc
// @Summary Register a new account
// @Description Validate registration input and create a user record
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.RegisterRequest true "Registration details"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.ObserveAuth("register", "invalid")
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.authService.Register(c.Request.Context(), req); err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			h.metrics.ObserveAuth("register", "invalid")
			respondError(c, http.StatusBadRequest, validationErr.Message)
		case errors.Is(err, repository.ErrDuplicateEmail):
			h.metrics.ObserveAuth("register", "duplicate")
			respondError(c, http.StatusBadRequest, "Email already registered")
		default:
			h.metrics.ObserveAuth("register", "error")
			logAndRespondError(c, http.StatusInternalServerError, err, "Server error during registration")
		}
		return
	}

	h.metrics.ObserveAuth("register", "success")
	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful!"})
}

// Login godoc
// @Summary Authenticate with email and password
// @Description Verify credentials and issue a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.ObserveAuth("login", "invalid")
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			h.metrics.ObserveAuth("login", "invalid")
			respondError(c, http.StatusBadRequest, validationErr.Message)
		case errors.Is(err, service.ErrInvalidCredentials):
			h.metrics.ObserveAuth("login", "rejected")
			respondError(c, http.StatusUnauthorized, "Incorrect email and password combination")
		default:
			h.metrics.ObserveAuth("login", "error")
			logAndRespondError(c, http.StatusInternalServerError, err, "Server error during login")
		}
		return
	}

	h.metrics.ObserveAuth("login", "success")
	c.JSON(http.StatusOK, gin.H{
		"message":   "Login successful!",
		"token":     response.Token,
		"user":      response.User,
		"dashboard": response.Dashboard,
	})
}

// Dashboard godoc
// @Summary Protected dashboard profile
// @Description Return the authenticated user's profile and dashboard summary
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/dashboard [get]
func (h *AuthHandler) Dashboard(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "No token provided")
		return
	}

	profile, err := h.authService.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			h.metrics.ObserveAuth("dashboard", "not_found")
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		h.metrics.ObserveAuth("dashboard", "error")
		logAndRespondError(c, http.StatusInternalServerError, err, "Server error fetching dashboard data")
		return
	}

	dashboard := h.authService.Dashboard(c.Request.Context(), userID)

	h.metrics.ObserveAuth("dashboard", "success")
	c.JSON(http.StatusOK, gin.H{
		"message":            "Welcome to your dashboard!",
		"data":               profile,
		"lastLogin":          dashboard.LastLogin,
		"activeTasks":        dashboard.ActiveTasks,
		"subscriptionStatus": dashboard.SubscriptionStatus,
	})
}

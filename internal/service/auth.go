// Package service implements the credential authentication core:
// registration, login and protected profile lookup.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/docvault/auth-service/internal/models"
	"github.com/docvault/auth-service/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// ValidationError carries a client-safe message for malformed input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// bcryptCost is deliberately slow to resist offline brute force.
const bcryptCost = 10

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// RegisterRequest represents the registration input.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login input.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// DashboardData is the auxiliary payload attached to login and
// dashboard responses.
type DashboardData struct {
	LastLogin          string `json:"lastLogin"`
	ActiveTasks        int    `json:"activeTasks"`
	SubscriptionStatus string `json:"subscriptionStatus"`
}

// LoginResponse represents a successful authentication result.
type LoginResponse struct {
	Token     string            `json:"token"`
	User      models.PublicUser `json:"user"`
	Dashboard DashboardData     `json:"dashboard"`
}

// AuthService implements register, login and profile operations.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) error
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Profile(ctx context.Context, userID int64) (*models.PublicUser, error)
	Dashboard(ctx context.Context, userID int64) DashboardData
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService JWTService
	redis      *redis.Client
}

// NewAuthService creates a new AuthService instance. redisClient may be
// nil, in which case login activity tracking is disabled and dashboard
// timestamps fall back to the current time.
func NewAuthService(userRepo repository.UserRepository, jwtService JWTService, redisClient *redis.Client) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		redis:      redisClient,
	}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) error {
	req.Email = normalizeEmail(req.Email)

	if err := validateRegistration(req); err != nil {
		return err
	}

	// Advisory pre-check: friendlier error without burning a bcrypt hash.
	// The unique index on email remains the authoritative guard.
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return repository.ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("registration lookup failed: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	return s.userRepo.Create(ctx, user)
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	req.Email = normalizeEmail(req.Email)

	if req.Email == "" || req.Password == "" {
		return nil, &ValidationError{Message: "All fields are required"}
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Same error as a wrong password, so a caller cannot
			// probe which emails are registered.
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login lookup failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	now := time.Now().UTC()
	s.recordLogin(ctx, user.ID, now)

	return &LoginResponse{
		Token: token,
		User:  user.Public(),
		Dashboard: DashboardData{
			LastLogin:          now.Format(time.RFC3339),
			ActiveTasks:        defaultActiveTasks,
			SubscriptionStatus: defaultSubscriptionStatus,
		},
	}, nil
}

func (s *authService) Profile(ctx context.Context, userID int64) (*models.PublicUser, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("profile lookup failed: %w", err)
	}

	public := user.Public()
	return &public, nil
}

// Dashboard payload placeholders until task and billing services exist.
const (
	defaultActiveTasks        = 3
	defaultSubscriptionStatus = "Active"
)

// Dashboard assembles the dashboard summary for an authenticated user.
func (s *authService) Dashboard(ctx context.Context, userID int64) DashboardData {
	return DashboardData{
		LastLogin:          s.lastLogin(ctx, userID).Format(time.RFC3339),
		ActiveTasks:        defaultActiveTasks,
		SubscriptionStatus: defaultSubscriptionStatus,
	}
}

func (s *authService) recordLogin(ctx context.Context, userID int64, at time.Time) {
	if s.redis == nil {
		return
	}
	// Best-effort bookkeeping; a redis hiccup must not fail a login.
	s.redis.Set(ctx, lastLoginKey(userID), at.Format(time.RFC3339), 0)
	s.redis.Incr(ctx, loginCountKey(userID))
}

func (s *authService) lastLogin(ctx context.Context, userID int64) time.Time {
	if s.redis != nil {
		if stored, err := s.redis.Get(ctx, lastLoginKey(userID)).Result(); err == nil {
			if t, err := time.Parse(time.RFC3339, stored); err == nil {
				return t
			}
		}
	}
	return time.Now().UTC()
}

func lastLoginKey(userID int64) string {
	return fmt.Sprintf("last_login:%d", userID)
}

func loginCountKey(userID int64) string {
	return fmt.Sprintf("login_count:%d", userID)
}

func validateRegistration(req RegisterRequest) error {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return &ValidationError{Message: "All fields are required"}
	}
	if len(req.Name) < 3 {
		return &ValidationError{Message: "Name must be at least 3 characters"}
	}
	if !emailPattern.MatchString(req.Email) {
		return &ValidationError{Message: "Invalid email format"}
	}
	if len(req.Password) < 6 {
		return &ValidationError{Message: "Password must be at least 6 characters"}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/qazaqstep/qazaqstep/internal/auth"
	"github.com/qazaqstep/qazaqstep/internal/clock"
	"github.com/qazaqstep/qazaqstep/internal/db"
	"github.com/qazaqstep/qazaqstep/internal/errors"
	"github.com/qazaqstep/qazaqstep/internal/logger"
	"github.com/qazaqstep/qazaqstep/internal/models"
)

// ProfileUpdate carries the fields a learner may change on their profile.
// Nil fields are left untouched.
type ProfileUpdate struct {
	LearningGoal *string             `json:"learning_goal"`
	WeeklyGoal   *int                `json:"weekly_goal"`
	Preferences  *models.Preferences `json:"preferences"`
}

// AuthService handles registration, login and profile access
type AuthService interface {
	Register(ctx context.Context, email, username, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Profile(ctx context.Context, userID string) (*models.LearnerProfile, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.LearnerProfile, error)
}

type authService struct {
	db     *db.DB
	tokens *auth.TokenIssuer
	clock  clock.Clock
}

// NewAuthService creates a new AuthService
func NewAuthService(db *db.DB, tokens *auth.TokenIssuer, clk clock.Clock) AuthService {
	return &authService{db: db, tokens: tokens, clock: clk}
}

func (s *authService) Register(ctx context.Context, email, username, password string) (*models.User, string, error) {
	log := logger.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", errors.NewInvalidInputError("email", "must be a valid email address")
	}
	if len(username) < 3 {
		return nil, "", errors.NewInvalidInputError("username", "must be at least 3 characters")
	}
	if len(password) < 6 {
		return nil, "", errors.NewInvalidInputError("password", "must be at least 6 characters")
	}

	if existing, err := s.db.UserByEmail(ctx, email); err != nil {
		return nil, "", errors.NewInternalError(err)
	} else if existing != nil {
		return nil, "", errors.NewConflictError("email already registered")
	}
	if existing, err := s.db.UserByUsername(ctx, username); err != nil {
		return nil, "", errors.NewInternalError(err)
	} else if existing != nil {
		return nil, "", errors.NewConflictError("username already taken")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password: %v", err)
		return nil, "", errors.NewInternalError(err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.db.InsertUser(ctx, user); err != nil {
		return nil, "", errors.NewInternalError(err)
	}
	log.Info("registered user: username=%s", username)

	token, err := s.tokens.Issue(user.ID, s.clock.Now())
	if err != nil {
		log.Error("failed to issue token: %v", err)
		return nil, "", errors.NewInternalError(err)
	}
	return &user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	log := logger.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.db.UserByEmail(ctx, email)
	if err != nil {
		return nil, "", errors.NewInternalError(err)
	}
	if user == nil || !auth.CheckPassword(password, user.PasswordHash) {
		log.Warn("failed login attempt: email=%s", email)
		return nil, "", errors.NewUnauthorizedError("invalid email or password")
	}

	now := s.clock.Now()
	if err := s.db.StampLastLogin(ctx, user.ID, now); err != nil {
		return nil, "", errors.NewInternalError(err)
	}

	token, err := s.tokens.Issue(user.ID, now)
	if err != nil {
		log.Error("failed to issue token: %v", err)
		return nil, "", errors.NewInternalError(err)
	}
	log.Info("user logged in: username=%s", user.Username)
	return user, token, nil
}

func (s *authService) Profile(ctx context.Context, userID string) (*models.LearnerProfile, error) {
	profile, err := s.db.LearnerProfile(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}
	return profile, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.LearnerProfile, error) {
	if update.WeeklyGoal != nil && *update.WeeklyGoal < 1 {
		return nil, errors.NewInvalidInputError("weekly_goal", "must be at least 1")
	}
	if update.LearningGoal != nil && strings.TrimSpace(*update.LearningGoal) == "" {
		return nil, errors.NewInvalidInputError("learning_goal", "must not be empty")
	}

	profile, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if update.LearningGoal != nil {
		profile.LearningGoal = strings.TrimSpace(*update.LearningGoal)
	}
	if update.WeeklyGoal != nil {
		profile.WeeklyGoal = *update.WeeklyGoal
	}
	if update.Preferences != nil {
		profile.Preferences = *update.Preferences
	}
	if err := s.db.SaveLearnerProfile(ctx, profile); err != nil {
		return nil, errors.NewInternalError(err)
	}
	return profile, nil
}

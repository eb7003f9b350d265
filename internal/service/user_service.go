package service

import (
	"context"
	"errors"
	"strings"

	"carbook/internal/config"
	"carbook/internal/database"
	"carbook/internal/domain"
	"carbook/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	store       domain.Store
	logger      *zerolog.Logger
	adminEmails map[string]bool
	minPassword int
}

func NewUserService(store domain.Store, cfg *config.Config, logger *zerolog.Logger) *UserService {
	adminEmails := make(map[string]bool)
	for _, email := range cfg.Auth.AdminEmails {
		adminEmails[strings.ToLower(email)] = true
	}

	return &UserService{
		store:       store,
		logger:      logger,
		adminEmails: adminEmails,
		minPassword: cfg.Auth.MinPasswordLen,
	}
}

// Register creates a user; emails listed in auth.admin_emails get the admin
// role.
func (s *UserService) Register(ctx context.Context, email, name, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(password) < s.minPassword {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := models.RoleUser
	if s.adminEmails[email] {
		role = models.RoleAdmin
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(name),
		Role:         role,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Str("role", user.Role).Msg("user registered")
	return user, nil
}

// Authenticate verifies credentials without revealing which part failed.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.store.GetUserByID(ctx, id)
}

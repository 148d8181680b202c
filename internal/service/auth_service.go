package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"planner/internal/auth"
	"planner/internal/config"
	"planner/internal/model"
	"planner/internal/repository"

	"github.com/google/uuid"
)

type AuthService struct {
	users       repository.UserRepositoryInterface
	jwtSecret   string
	tokenExpiry time.Duration
}

func NewAuthService(users repository.UserRepositoryInterface, cfg *config.Config) *AuthService {
	return &AuthService{
		users:       users,
		jwtSecret:   cfg.JWTSecret,
		tokenExpiry: time.Duration(cfg.JWTExpiryHours) * time.Hour,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Name     string
	Surname  string
	Password string
}

// Register creates a new user with the default role. Both username and email
// are checked for collisions before the insert.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", ErrValidation)
	}

	existing, err := s.users.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("looking up username: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateUser
	}

	existing, err = s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("looking up email: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateUser
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		ID:             uuid.New(),
		Username:       in.Username,
		Email:          in.Email,
		Role:           model.RoleUser,
		Name:           in.Name,
		Surname:        in.Surname,
		HashedPassword: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and issues a signed session token bound to
// the user. No session is issued on failure.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, fmt.Errorf("looking up user: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.HashedPassword, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(s.jwtSecret, user.ID, user.Role, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issuing token: %w", err)
	}
	return token, user, nil
}

// CurrentUser resolves a session's user id to the stored user.
func (s *AuthService) CurrentUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// SeedAdmin creates the admin account on first startup. It is a no-op when
// the username is already taken or no admin password is configured.
func (s *AuthService) SeedAdmin(ctx context.Context, username, password, email string) error {
	if username == "" || password == "" {
		return nil
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("looking up admin user: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	admin := &model.User{
		ID:             uuid.New(),
		Username:       username,
		Email:          email,
		Role:           model.RoleAdmin,
		HashedPassword: hash,
	}
	return s.users.Create(ctx, admin)
}

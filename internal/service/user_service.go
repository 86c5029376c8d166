package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"member-pricing-service/internal/auth"
	"member-pricing-service/internal/entity"
	"member-pricing-service/internal/pricing"
)

type UserService struct {
	users      UserStore
	sessions   SessionStore
	jwtSecret  []byte
	sessionTTL time.Duration
}

// NewUserService creates a new instance of UserService.
func NewUserService(users UserStore, sessions SessionStore, jwtSecret []byte, sessionTTL time.Duration) *UserService {
	return &UserService{
		users:      users,
		sessions:   sessions,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
	}
}

// GetUserByID retrieves a user by ID.
func (s *UserService) GetUserByID(ctx context.Context, id int) (*entity.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting user by ID %d", id)
		return nil, err
	}

	user.Password = ""
	return user, nil
}

// CreateUser registers an account. Only price managers may hand out a role
// other than customer.
func (s *UserService) CreateUser(ctx context.Context, user *entity.User, actor pricing.Role) (*entity.User, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.Username = strings.TrimSpace(user.Username)
	if user.Email == "" || user.Username == "" || user.Password == "" {
		return nil, fmt.Errorf("username, email and password are required: %w", ErrInvalidInput)
	}

	if user.Role == pricing.RoleAnonymous {
		user.Role = pricing.RoleCustomer
	}
	role, ok := pricing.ParseRole(string(user.Role))
	if !ok {
		return nil, fmt.Errorf("unknown role %q: %w", user.Role, ErrInvalidInput)
	}
	if role != pricing.RoleCustomer && !actor.CanManagePrices() {
		return nil, fmt.Errorf("assigning role %s: %w", role, ErrForbidden)
	}
	user.Role = role

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.Password = string(hash)

	createdUser, err := s.users.CreateUser(ctx, user)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating user")
		return nil, err
	}

	createdUser.Password = ""
	return createdUser, nil
}

// Login checks the credentials and returns a signed token. The token is also
// kept as the user's current session.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	}

	token, err := auth.GenerateToken(s.jwtSecret, user, s.sessionTTL)
	if err != nil {
		return "", err
	}

	if err := s.sessions.Save(ctx, user.Email, token, s.sessionTTL); err != nil {
		logger.Error().Err(err).Msgf("Error saving session for %s", user.Email)
		return "", err
	}

	return token, nil
}

// ValidateSession reports whether token is still the current session of
// email. A newer login replaces older sessions.
func (s *UserService) ValidateSession(ctx context.Context, email, token string) error {
	stored, err := s.sessions.Get(ctx, email)
	if err != nil {
		return err
	}
	if stored != token {
		return fmt.Errorf("session superseded: %w", ErrUnauthorized)
	}
	return nil
}

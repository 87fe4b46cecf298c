package auth

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/avolkov/libris/internal/config"
	"github.com/avolkov/libris/internal/database/users"
	"github.com/avolkov/libris/internal/entities"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,64}$`)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAuthRequired       = errors.New("authentication required")
	ErrUsernameRequired   = errors.New("username is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrUsernameInvalid    = errors.New("username must be 3-64 characters, alphanumeric and underscore/hyphen only")
)

// UserStore defines the interface for user data access.
type UserStore interface {
	Create(username, passwordHash string) (*entities.User, error)
	GetByUsername(username string) (*entities.User, error)
	GetByID(id uint) (*entities.User, error)
	Count() (int64, error)
}

// Service handles registration and credential verification.
type Service struct {
	store  UserStore
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(store UserStore, cfg config.Auth) *Service {
	return &Service{
		store:  store,
		config: cfg,
	}
}

// Register creates a new user with a bcrypt-hashed password. A taken
// username fails with ErrUserExists; the pre-check is backed by the
// unique index on username, so a racing duplicate loses at the store.
func (s *Service) Register(username, password string) (*entities.User, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if !usernamePattern.MatchString(username) {
		return nil, ErrUsernameInvalid
	}

	_, err := s.store.GetByUsername(username)
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, users.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.Create(username, passwordHash)
	if err != nil {
		if errors.Is(err, users.ErrUserExists) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

// Authenticate validates credentials and returns the user. A missing
// user and a wrong password both fail with ErrInvalidCredentials so the
// response does not reveal which usernames exist.
func (s *Service) Authenticate(username, password string) (*entities.User, error) {
	user, err := s.store.GetByUsername(username)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *Service) GetUserByID(id uint) (*entities.User, error) {
	return s.store.GetByID(id)
}

// HasUsers returns true if any users exist in the database.
func (s *Service) HasUsers() (bool, error) {
	count, err := s.store.Count()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

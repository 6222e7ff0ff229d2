package user

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/badoux/checkmail"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxEmailLength    = 254
	maxNameLength     = 100
	minPasswordLength = 8
	// bcrypt rejects inputs longer than this.
	maxPasswordLength = 72
	DefaultBcryptCost = 10
)

var (
	ErrInvalidEmail       = errors.New("email address is not valid")
	ErrEmailAlreadyExists = errors.New("User already exists")
	ErrNameRequired       = errors.New("name is required")
	ErrNameLength         = errors.New("name is too long")
	ErrPasswordLength     = errors.New("password must be between 8 and 72 characters")
	ErrInternalError      = errors.New("internal Server Error")
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsInputError reports whether err was caused by the caller's registration data.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrEmailAlreadyExists) ||
		errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrNameLength) ||
		errors.Is(err, ErrPasswordLength)
}

type Service interface {
	Register(ctx context.Context, name, email, password string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

type service struct {
	repo       Repository
	bcryptCost int
}

func NewUserService(repo Repository, bcryptCost int) Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = DefaultBcryptCost
	}
	return &service{
		repo:       repo,
		bcryptCost: bcryptCost,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmailAddress(email string) error {
	if len(email) == 0 || len(email) > maxEmailLength {
		return ErrInvalidEmail
	}
	if err := checkmail.ValidateFormat(email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

func (s *service) hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	return string(hashed), err
}

func (s *service) Register(ctx context.Context, name, email, password string) (*User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	if name == "" {
		return nil, ErrNameRequired
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, ErrNameLength
	}
	if err := validateEmailAddress(email); err != nil {
		return nil, err
	}
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return nil, ErrPasswordLength
	}

	existing, err := s.repo.getUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		log.Error().Err(err).Msg("Error checking for existing user")
		return nil, ErrInternalError
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	passwordHash, err := s.hashPassword(password)
	if err != nil {
		log.Error().Err(err).Msg("Error during hashing the password")
		return nil, ErrInternalError
	}

	user := &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := s.repo.createUser(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, ErrEmailAlreadyExists
		}
		log.Error().Err(err).Msg("Error during creating the user")
		return nil, ErrInternalError
	}

	log.Info().Str("user_id", user.ID).Msg("User registered")
	return user, nil
}

func (s *service) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.getUserByEmail(ctx, NormalizeEmail(email))
}

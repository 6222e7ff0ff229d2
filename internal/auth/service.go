package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sebuszqo/FinanceTracker/internal/user"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInternalError      = errors.New("internal Server Error")
)

type Service interface {
	Login(ctx context.Context, email, password string) (*user.User, string, time.Time, error)
	Logout(token string)
	CurrentSession(token string) (string, error)
	CleanupExpiredSessions() int
	RequireSession() func(http.Handler) http.Handler
	RequirePageSession(loginPath string) func(http.Handler) http.Handler
}

type service struct {
	userService     user.Service
	sessionManager  SessionManagerInterface
	jwtManager      JWTManagerInterface
	sessionDuration time.Duration
}

func NewAuthService(userService user.Service, sessionManager SessionManagerInterface, jwtManager JWTManagerInterface, sessionDuration time.Duration) Service {
	if sessionDuration <= 0 {
		sessionDuration = DefaultSessionDuration
	}
	return &service{
		userService:     userService,
		sessionManager:  sessionManager,
		jwtManager:      jwtManager,
		sessionDuration: sessionDuration,
	}
}

func (s *service) Login(ctx context.Context, email, password string) (*user.User, string, time.Time, error) {
	existingUser, err := s.userService.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		log.Error().Err(err).Msg("Error when getting user from database")
		return nil, "", time.Time{}, ErrInternalError
	}

	if !doPasswordsMatch(existingUser.PasswordHash, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	sessionID, expiresAt, err := s.sessionManager.CreateSession(existingUser.ID, s.sessionDuration)
	if err != nil {
		log.Error().Err(err).Msg("Error during session creation")
		return nil, "", time.Time{}, ErrInternalError
	}

	token, err := s.jwtManager.GenerateSessionJWT(existingUser.ID, sessionID, expiresAt)
	if err != nil {
		s.sessionManager.DeleteSession(sessionID)
		log.Error().Err(err).Msg("Error during JWT generation")
		return nil, "", time.Time{}, ErrInternalError
	}

	log.Info().Str("user_id", existingUser.ID).Msg("User signed in")
	return existingUser, token, expiresAt, nil
}

// Logout revokes the session behind token. Unknown or malformed tokens are ignored.
func (s *service) Logout(token string) {
	claims, err := s.jwtManager.ValidateSessionJWT(token)
	if err != nil {
		return
	}
	s.sessionManager.DeleteSession(claims.SessionID)
	log.Info().Str("user_id", claims.UserID).Msg("User signed out")
}

// CurrentSession returns the user behind a signed token whose session is still live.
func (s *service) CurrentSession(token string) (string, error) {
	if token == "" {
		return "", ErrInvalidSessionToken
	}
	claims, err := s.jwtManager.ValidateSessionJWT(token)
	if err != nil {
		return "", err
	}
	userID, err := s.sessionManager.VerifySession(claims.SessionID)
	if err != nil {
		return "", err
	}
	if userID != claims.UserID {
		return "", ErrInvalidSessionToken
	}
	return userID, nil
}

func (s *service) CleanupExpiredSessions() int {
	return s.sessionManager.CleanupExpired()
}

func doPasswordsMatch(hashedPassword, currPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(currPassword))
	return err == nil
}

package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"
)

var (
	ErrInvalidSessionToken = errors.New("session token is invalid")
	ErrExpiredSessionToken = errors.New("session is expired")
)

const DefaultSessionDuration = 24 * time.Hour

type SessionManagerInterface interface {
	CreateSession(userID string, duration time.Duration) (string, time.Time, error)
	VerifySession(sessionID string) (string, error)
	DeleteSession(sessionID string)
	CleanupExpired() int
}

type Session struct {
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// SessionManager keeps live sessions in memory. A session that is not in the
// map is treated as signed out, even if its token is still correctly signed.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]Session
	now      func() time.Time
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

func (sm *SessionManager) CreateSession(userID string, duration time.Duration) (string, time.Time, error) {
	idBytes := make([]byte, 32)
	if _, err := rand.Read(idBytes); err != nil {
		return "", time.Time{}, ErrInternalError
	}
	if duration <= 0 {
		duration = DefaultSessionDuration
	}

	id := hex.EncodeToString(idBytes)
	now := sm.now()
	expiresAt := now.Add(duration)

	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.sessions[id] = Session{
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}
	return id, expiresAt, nil
}

func (sm *SessionManager) VerifySession(sessionID string) (string, error) {
	sm.mu.RLock()
	session, exists := sm.sessions[sessionID]
	sm.mu.RUnlock()

	if !exists {
		return "", ErrInvalidSessionToken
	}
	if sm.now().After(session.ExpiresAt) {
		return "", ErrExpiredSessionToken
	}
	return session.UserID, nil
}

func (sm *SessionManager) DeleteSession(sessionID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.sessions, sessionID)
}

// CleanupExpired drops expired sessions and returns how many were removed.
func (sm *SessionManager) CleanupExpired() int {
	now := sm.now()

	sm.mu.Lock()
	defer sm.mu.Unlock()
	removed := 0
	for id, session := range sm.sessions {
		if now.After(session.ExpiresAt) {
			delete(sm.sessions, id)
			removed++
		}
	}
	return removed
}

func (sm *SessionManager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

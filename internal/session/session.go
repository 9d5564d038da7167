// Package session implements the admin session gate: server-side session
// state keyed by a signed client token.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session is the resolved per-request session state passed explicitly into
// service calls. A zero Session is anonymous.
type Session struct {
	ID            string
	Authenticated bool
}

// Manager owns the set of live admin sessions. Tokens are HS256 JWTs carrying
// a session id, but a token is only honored while its id is present in the
// server-side map, so logout revokes immediately and nothing outlives the
// process ("remember me" is deliberately unsupported).
type Manager struct {
	secret []byte
	ttl    time.Duration

	mu       sync.Mutex
	sessions map[string]time.Time // session id -> expiry
}

// NewManager creates a session manager with the given signing secret and TTL.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret:   []byte(secret),
		ttl:      ttl,
		sessions: make(map[string]time.Time),
	}
}

// Create registers a new authenticated session and returns its signed token.
func (m *Manager) Create() (string, error) {
	sid := uuid.New().String()
	now := time.Now()
	expiry := now.Add(m.ttl)

	claims := jwt.MapClaims{
		"sid": sid,
		"exp": expiry.Unix(),
		"iat": now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	m.mu.Lock()
	m.sessions[sid] = expiry
	m.mu.Unlock()

	return signed, nil
}

// Resolve maps a client-presented token to a Session. Invalid, unknown or
// expired tokens resolve to an anonymous session, never an error.
func (m *Manager) Resolve(token string) Session {
	sid, err := m.parse(token)
	if err != nil {
		return Session{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	expiry, ok := m.sessions[sid]
	if !ok {
		return Session{}
	}
	if time.Now().After(expiry) {
		delete(m.sessions, sid)
		return Session{}
	}
	return Session{ID: sid, Authenticated: true}
}

// Revoke forgets the session behind the token. Unknown tokens are a no-op.
func (m *Manager) Revoke(token string) {
	sid, err := m.parse(token)
	if err != nil {
		return
	}
	m.mu.Lock()
	delete(m.sessions, sid)
	m.mu.Unlock()
}

// parse verifies the token signature and extracts the session id.
func (m *Manager) parse(tokenString string) (string, error) {
	if tokenString == "" {
		return "", fmt.Errorf("empty token")
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}
	sid, ok := claims["sid"].(string)
	if !ok {
		return "", fmt.Errorf("sid not found in token")
	}
	return sid, nil
}

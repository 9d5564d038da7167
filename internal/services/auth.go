package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"prima-photo-backend/internal/apperr"
	"prima-photo-backend/internal/session"
	"prima-photo-backend/internal/storage"
)

// AuthService handles admin login and logout against the single stored
// credential.
type AuthService struct {
	admins   storage.AdminStore
	sessions *session.Manager
}

// NewAuthService creates a new auth service.
func NewAuthService(admins storage.AdminStore, sessions *session.Manager) *AuthService {
	return &AuthService{
		admins:   admins,
		sessions: sessions,
	}
}

// Login checks the credentials and, on match, opens an authenticated session
// and returns its token. The failure is uniform regardless of which field
// was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	admin, err := s.admins.GetAdmin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load admin credential: %w", err)
	}

	if username != admin.Username ||
		bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return "", fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthorized)
	}

	token, err := s.sessions.Create()
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return token, nil
}

// Logout revokes the session behind the token unconditionally.
func (s *AuthService) Logout(token string) {
	s.sessions.Revoke(token)
}

// HashPassword derives the bcrypt hash stored for the admin credential.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

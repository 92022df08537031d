package services

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"autoglm-helper/app/clients"
)

// Preference keys for the shared secret
const (
	KeyAuthToken         = "auth_token"
	KeyAuthTokenIssuedAt = "auth_token_issued_at"
)

// AuthService owns the shared-secret token used to protect the API
type AuthService struct {
	prefs clients.PreferenceStore
	mu    sync.Mutex
	now   func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(prefs clients.PreferenceStore) *AuthService {
	return &AuthService{prefs: prefs, now: time.Now}
}

// GetOrCreateToken returns the persisted token, generating and storing one on first use
func (s *AuthService) GetOrCreateToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.prefs.GetString(KeyAuthToken, "")
	if err != nil {
		return "", fmt.Errorf("failed to read auth token: %w", err)
	}
	if strings.TrimSpace(token) != "" {
		return token, nil
	}

	return s.storeNewToken()
}

// RotateToken replaces the token with a fresh random value
func (s *AuthService) RotateToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.storeNewToken()
}

// Authorize reports whether supplied matches the stored token.
// The token is created on the first check if it does not exist yet.
func (s *AuthService) Authorize(supplied string) (bool, error) {
	token, err := s.GetOrCreateToken()
	if err != nil {
		return false, err
	}
	if supplied == "" {
		return false, nil
	}
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) == 1, nil
}

// TokenIssuedAt returns when the current token was generated, or the zero time if unknown
func (s *AuthService) TokenIssuedAt() (time.Time, error) {
	ms, err := s.prefs.GetLong(KeyAuthTokenIssuedAt, 0)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read token issue time: %w", err)
	}
	if ms <= 0 {
		return time.Time{}, nil
	}
	return time.UnixMilli(ms), nil
}

func (s *AuthService) storeNewToken() (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	if err := s.prefs.PutString(KeyAuthToken, token); err != nil {
		return "", fmt.Errorf("failed to persist auth token: %w", err)
	}
	if err := s.prefs.PutLong(KeyAuthTokenIssuedAt, s.now().UnixMilli()); err != nil {
		return "", fmt.Errorf("failed to persist token issue time: %w", err)
	}
	return token, nil
}

// generateToken returns 128 random bits as 32 hex characters
func generateToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// MaskToken keeps only the ends of a token for logging
func MaskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + "..." + token[len(token)-4:]
}

package mocks

import (
	"time"

	"github.com/iamasim4u/atcl-leave-system/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateAccessTokenFunc  func(userID uint, role string, sessionID string) (string, error)
	GenerateRefreshTokenFunc func(userID uint, role string, sessionID string) (string, error)
	ValidateAccessTokenFunc  func(token string) (*domain.TokenClaims, error)
	ValidateRefreshTokenFunc func(token string) (*domain.TokenClaims, error)
}

var _ domain.TokenService = (*MockTokenService)(nil)

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateAccessToken returns a fixed mock token
func (m *MockTokenService) GenerateAccessToken(userID uint, role string, sessionID string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID, role, sessionID)
	}
	return "mock_access_token", nil
}

// GenerateRefreshToken returns a fixed mock token
func (m *MockTokenService) GenerateRefreshToken(userID uint, role string, sessionID string) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(userID, role, sessionID)
	}
	return "mock_refresh_token", nil
}

// ValidateAccessToken returns mock claims for any token
func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	return defaultClaims(), nil
}

// ValidateRefreshToken returns mock claims for any token
func (m *MockTokenService) ValidateRefreshToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateRefreshTokenFunc != nil {
		return m.ValidateRefreshTokenFunc(token)
	}
	return defaultClaims(), nil
}

func defaultClaims() *domain.TokenClaims {
	now := time.Now()
	return &domain.TokenClaims{
		UserID:    1,
		Role:      string(domain.RoleEmployee),
		SessionID: "mock_session",
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(15 * time.Minute).Unix(),
	}
}

package mocks

import (
	"context"

	"github.com/iamasim4u/atcl-leave-system/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	LoginFunc          func(ctx context.Context, username, password string) (*domain.AuthResult, error)
	SendLoginOTPFunc   func(ctx context.Context, username string) error
	LoginWithOTPFunc   func(ctx context.Context, username, code string) (*domain.AuthResult, error)
	RefreshTokenFunc   func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	LogoutFunc         func(ctx context.Context, sessionID string) error
	GetUserProfileFunc func(ctx context.Context, userID uint) (*domain.User, error)
}

var _ domain.AuthService = (*MockAuthService)(nil)

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Login authenticates with username and password
func (m *MockAuthService) Login(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return defaultAuthResult(username), nil
}

// SendLoginOTP requests a login code delivery
func (m *MockAuthService) SendLoginOTP(ctx context.Context, username string) error {
	if m.SendLoginOTPFunc != nil {
		return m.SendLoginOTPFunc(ctx, username)
	}
	return nil
}

// LoginWithOTP authenticates with a delivered code
func (m *MockAuthService) LoginWithOTP(ctx context.Context, username, code string) (*domain.AuthResult, error) {
	if m.LoginWithOTPFunc != nil {
		return m.LoginWithOTPFunc(ctx, username, code)
	}
	return defaultAuthResult(username), nil
}

// RefreshToken exchanges a refresh token for a new access token
func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshToken)
	}
	return defaultAuthResult("mock.user"), nil
}

// Logout invalidates a session
func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	return nil
}

// GetUserProfile returns the user's profile
func (m *MockAuthService) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetUserProfileFunc != nil {
		return m.GetUserProfileFunc(ctx, userID)
	}
	return &domain.User{
		ID:         userID,
		Username:   "mock.user",
		Name:       "Mock User",
		Email:      "mock.user@example.com",
		Role:       domain.RoleEmployee,
		Department: "Engineering",
	}, nil
}

func defaultAuthResult(username string) *domain.AuthResult {
	return &domain.AuthResult{
		User: &domain.User{
			ID:         1,
			Username:   username,
			Name:       "Mock User",
			Role:       domain.RoleEmployee,
			Department: "Engineering",
		},
		AccessToken:  "mock_access_token",
		RefreshToken: "mock_refresh_token",
		SessionID:    "mock_session",
		ExpiresIn:    900,
	}
}

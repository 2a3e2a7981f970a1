package mocks

import (
	"context"
	"time"

	"github.com/iamasim4u/atcl-leave-system/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	GenerateFunc  func(ctx context.Context, email string, userID uint) (*domain.OTPRequest, error)
	VerifyFunc    func(ctx context.Context, email, code string, userID uint) (bool, error)
	CanResendFunc func(ctx context.Context, email string) (bool, int64, error)
}

var _ domain.OTPService = (*MockOTPService)(nil)

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Generate issues a mock OTP
func (m *MockOTPService) Generate(ctx context.Context, email string, userID uint) (*domain.OTPRequest, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, email, userID)
	}
	return &domain.OTPRequest{
		Email:     email,
		Code:      "123456",
		UserID:    userID,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}, nil
}

// Verify accepts the mock code "123456"
func (m *MockOTPService) Verify(ctx context.Context, email, code string, userID uint) (bool, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, email, code, userID)
	}
	if code != "123456" {
		return false, domain.ErrOTPInvalid
	}
	return true, nil
}

// CanResend always allows a resend by default
func (m *MockOTPService) CanResend(ctx context.Context, email string) (bool, int64, error) {
	if m.CanResendFunc != nil {
		return m.CanResendFunc(ctx, email)
	}
	return true, 0, nil
}

package services

import (
	"bytes"
	"context"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/iamasim4u/atcl-leave-system/domain"
	"github.com/iamasim4u/atcl-leave-system/internal/mocks"
)

func createAuthServiceForTest(t *testing.T) (domain.AuthService, *mocks.MockUserRepository, *mocks.MockSessionRepository, *mocks.MockOTPService) {
	t.Helper()

	userRepo := mocks.NewMockUserRepository()
	sessionRepo := mocks.NewMockSessionRepository()
	otpSvc := mocks.NewMockOTPService()

	svc := NewAuthService(
		userRepo,
		sessionRepo,
		mocks.NewMockPasswordService(),
		mocks.NewMockTokenService(),
		otpSvc,
		7*24*time.Hour,
		15*time.Minute,
	)
	return svc, userRepo, sessionRepo, otpSvc
}

func TestAuthServiceImpl_Login(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		password   string
		setupMocks func(*mocks.MockUserRepository, *mocks.MockSessionRepository)
		wantErr    error
	}{
		{
			name:     "successful login",
			username: "john.doe",
			password: "password123",
			setupMocks: func(userRepo *mocks.MockUserRepository, sessionRepo *mocks.MockSessionRepository) {
				userRepo.FindByUsernameFunc = func(ctx context.Context, username string) (*domain.User, error) {
					return &domain.User{ID: 1, Username: username, PasswordHash: "hashed_password123", Role: domain.RoleEmployee}, nil
				}
			},
			wantErr: nil,
		},
		{
			name:     "unknown username",
			username: "nobody",
			password: "password123",
			setupMocks: func(userRepo *mocks.MockUserRepository, sessionRepo *mocks.MockSessionRepository) {
				userRepo.FindByUsernameFunc = func(ctx context.Context, username string) (*domain.User, error) {
					return nil, domain.ErrUserNotFound
				}
			},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "john.doe",
			password: "nope",
			setupMocks: func(userRepo *mocks.MockUserRepository, sessionRepo *mocks.MockSessionRepository) {
				userRepo.FindByUsernameFunc = func(ctx context.Context, username string) (*domain.User, error) {
					return &domain.User{ID: 1, Username: username, PasswordHash: "hashed_password123"}, nil
				}
			},
			wantErr: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, userRepo, sessionRepo, _ := createAuthServiceForTest(t)
			tt.setupMocks(userRepo, sessionRepo)

			result, err := svc.Login(context.Background(), tt.username, tt.password)
			if err != tt.wantErr {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr != nil {
				return
			}
			if result.AccessToken == "" || result.RefreshToken == "" {
				t.Error("tokens missing on successful login")
			}
			if result.SessionID == "" {
				t.Error("session not opened")
			}
			if result.ExpiresIn != int64((15 * time.Minute).Seconds()) {
				t.Errorf("unexpected expires_in %d", result.ExpiresIn)
			}
		})
	}
}

func TestAuthServiceImpl_LoginWithOTP(t *testing.T) {
	svc, userRepo, _, otpSvc := createAuthServiceForTest(t)

	userRepo.FindByUsernameFunc = func(ctx context.Context, username string) (*domain.User, error) {
		return &domain.User{ID: 1, Username: username, Email: "john.doe@atcl.sa", Role: domain.RoleEmployee}, nil
	}

	var verifiedEmail string
	otpSvc.VerifyFunc = func(ctx context.Context, email, code string, userID uint) (bool, error) {
		verifiedEmail = email
		if code != "654321" {
			return false, domain.ErrOTPInvalid
		}
		return true, nil
	}

	if _, err := svc.LoginWithOTP(context.Background(), "john.doe", "000000"); err != domain.ErrOTPInvalid {
		t.Errorf("expected ErrOTPInvalid, got %v", err)
	}

	result, err := svc.LoginWithOTP(context.Background(), "john.doe", "654321")
	if err != nil {
		t.Fatalf("LoginWithOTP failed: %v", err)
	}
	if verifiedEmail != "john.doe@atcl.sa" {
		t.Errorf("OTP verified against %q, want the user's email", verifiedEmail)
	}
	if result.AccessToken == "" {
		t.Error("access token missing")
	}
}

func TestAuthServiceImpl_SendLoginOTP(t *testing.T) {
	svc, userRepo, _, otpSvc := createAuthServiceForTest(t)

	var generatedFor string
	otpSvc.GenerateFunc = func(ctx context.Context, email string, userID uint) (*domain.OTPRequest, error) {
		generatedFor = email
		return &domain.OTPRequest{Email: email, Code: "123456", UserID: userID}, nil
	}

	if err := svc.SendLoginOTP(context.Background(), "john.doe"); err != nil {
		t.Fatalf("SendLoginOTP failed: %v", err)
	}
	if generatedFor != "john.doe@example.com" {
		t.Errorf("OTP generated for %q", generatedFor)
	}

	userRepo.FindByUsernameFunc = func(ctx context.Context, username string) (*domain.User, error) {
		return nil, domain.ErrUserNotFound
	}
	if err := svc.SendLoginOTP(context.Background(), "ghost"); err != domain.ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthServiceImpl_RefreshToken(t *testing.T) {
	svc, _, sessionRepo, _ := createAuthServiceForTest(t)

	result, err := svc.RefreshToken(context.Background(), "mock_refresh_token")
	if err != nil {
		t.Fatalf("RefreshToken failed: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("access token missing")
	}
	if result.RefreshToken != "mock_refresh_token" {
		t.Error("refresh token should be carried over unchanged")
	}

	sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
		return nil, domain.ErrSessionNotFound
	}
	if _, err := svc.RefreshToken(context.Background(), "mock_refresh_token"); err != domain.ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}

	sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
		return &domain.Session{ID: sessionID, UserID: 1, ExpiresAt: time.Now().Add(-time.Hour)}, nil
	}
	if _, err := svc.RefreshToken(context.Background(), "mock_refresh_token"); err != domain.ErrSessionExpired {
		t.Errorf("expected ErrSessionExpired, got %v", err)
	}
}

func TestAuthServiceImpl_Logout(t *testing.T) {
	svc, _, sessionRepo, _ := createAuthServiceForTest(t)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	var deleted string
	sessionRepo.DeleteFunc = func(ctx context.Context, sessionID string) error {
		deleted = sessionID
		return nil
	}

	if err := svc.Logout(context.Background(), "sess_1_42"); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if deleted != "sess_1_42" {
		t.Errorf("deleted session %q", deleted)
	}
	if !strings.Contains(buf.String(), string(domain.UserLogoutEvent)) {
		t.Error("logout should write a USER_LOGOUT audit line")
	}
}

func TestAuthServiceImpl_Logout_SessionAlreadyGone(t *testing.T) {
	svc, _, sessionRepo, _ := createAuthServiceForTest(t)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
		return nil, domain.ErrSessionNotFound
	}

	if err := svc.Logout(context.Background(), "sess_1_42"); err != nil {
		t.Fatalf("Logout of a missing session should still succeed: %v", err)
	}
	if strings.Contains(buf.String(), string(domain.UserLogoutEvent)) {
		t.Error("no audit line expected when the session was already gone")
	}
}

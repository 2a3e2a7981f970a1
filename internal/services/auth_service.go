package services

import (
	"context"
	"fmt"
	"time"

	"github.com/iamasim4u/atcl-leave-system/domain"
)

// AuthServiceImpl implements domain.AuthService. Username is the login key;
// passwords are bcrypt-hashed, and the OTP path is an alternative login
// channel rather than an account-activation step.
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
	sessionTTL  time.Duration
	accessTTL   time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	sessionTTL time.Duration,
	accessTTL time.Duration,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
		sessionTTL:  sessionTTL,
		accessTTL:   accessTTL,
	}
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		audit(domain.NewAuditEvent(domain.UserLoginFailureEvent, user.ID).WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	audit(domain.NewAuditEvent(domain.UserLoginEvent, user.ID))
	return s.openSession(ctx, user)
}

// SendLoginOTP implements domain.AuthService
func (s *AuthServiceImpl) SendLoginOTP(ctx context.Context, username string) error {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return domain.ErrUserNotFound
	}

	if _, err := s.otpSvc.Generate(ctx, user.Email, user.ID); err != nil {
		return fmt.Errorf("failed to send OTP: %w", err)
	}
	audit(domain.NewAuditEvent(domain.LoginOTPRequestEvent, user.ID))
	return nil
}

// LoginWithOTP implements domain.AuthService
func (s *AuthServiceImpl) LoginWithOTP(ctx context.Context, username, code string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	valid, err := s.otpSvc.Verify(ctx, user.Email, code, user.ID)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, domain.ErrOTPInvalid
	}

	audit(domain.NewAuditEvent(domain.LoginOTPVerifyEvent, user.ID))
	return s.openSession(ctx, user)
}

// RefreshToken implements domain.AuthService
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}

	if session.ExpiresAt.Before(time.Now()) {
		return nil, domain.ErrSessionExpired
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID, string(user.Role), session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken, // Keep same refresh token
		SessionID:    session.ID,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

// Logout implements domain.AuthService. The session is looked up before the
// delete so the audit line can carry the owning user; an already-gone
// session still deletes cleanly, just without the event.
func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	session, findErr := s.sessionRepo.FindByID(ctx, sessionID)
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return err
	}
	if findErr == nil {
		audit(domain.NewAuditEvent(domain.UserLogoutEvent, session.UserID))
	}
	return nil
}

// GetUserProfile implements domain.AuthService
func (s *AuthServiceImpl) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

func (s *AuthServiceImpl) openSession(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	session := &domain.Session{
		ID:        fmt.Sprintf("sess_%d_%d", user.ID, time.Now().UnixNano()),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
		CreatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID, string(user.Role), session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokenSvc.GenerateRefreshToken(user.ID, string(user.Role), session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    session.ID,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iamasim4u/atcl-leave-system/domain"
)

// OTPServiceImpl implements domain.OTPService using Redis persistence.
// Expiry is enforced by the key TTL: a code past its validity window is
// simply gone, and verification reports ErrOTPNotFound.
type OTPServiceImpl struct {
	notifier    domain.LeaveNotifier
	channels    domain.NotificationService
	userRepo    domain.UserRepository
	redisClient *redis.Client
	config      OTPConfig
}

type OTPConfig struct {
	Length       int
	TTL          time.Duration
	MaxAttempts  int
	ResendWindow time.Duration
}

// NewOTPService creates a new Redis-based OTP service
func NewOTPService(notifier domain.LeaveNotifier, channels domain.NotificationService, userRepo domain.UserRepository, redisClient *redis.Client, config OTPConfig) domain.OTPService {
	return &OTPServiceImpl{
		notifier:    notifier,
		channels:    channels,
		userRepo:    userRepo,
		redisClient: redisClient,
		config:      config,
	}
}

// Generate implements domain.OTPService. The code goes out over SMS when
// the user has a phone on file, over the demo email channel otherwise.
func (s *OTPServiceImpl) Generate(ctx context.Context, email string, userID uint) (*domain.OTPRequest, error) {
	otpKey := fmt.Sprintf("otp:%s:%d", email, userID)
	resendKey := fmt.Sprintf("otp:res:%s", email)
	attemptsKey := fmt.Sprintf("otp:att:%s:%d", email, userID)

	// Check resend throttle
	if canResend, waitTime, _ := s.CanResend(ctx, email); !canResend {
		return nil, fmt.Errorf("%w: retry in %d seconds", domain.ErrOTPResendLimit, waitTime)
	}

	code, err := s.generateSecureCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	if err := s.redisClient.Set(ctx, otpKey, code, s.config.TTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to store OTP in Redis: %w", err)
	}

	if err := s.redisClient.Set(ctx, attemptsKey, 0, s.config.TTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to initialize attempts counter: %w", err)
	}

	if err := s.redisClient.Set(ctx, resendKey, 1, s.config.ResendWindow).Err(); err != nil {
		return nil, fmt.Errorf("failed to set resend throttle: %w", err)
	}

	otpReq := &domain.OTPRequest{
		Email:     email,
		Code:      code,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.config.TTL),
		Attempts:  0,
	}

	if err := s.deliver(ctx, email, userID, code); err != nil {
		// Clean up Redis entries if delivery fails
		s.redisClient.Del(ctx, otpKey, attemptsKey, resendKey)
		return nil, fmt.Errorf("failed to send OTP: %w", err)
	}

	return otpReq, nil
}

// Verify implements domain.OTPService with Redis persistence
func (s *OTPServiceImpl) Verify(ctx context.Context, email, code string, userID uint) (bool, error) {
	otpKey := fmt.Sprintf("otp:%s:%d", email, userID)
	attemptsKey := fmt.Sprintf("otp:att:%s:%d", email, userID)

	attempts, err := s.redisClient.Incr(ctx, attemptsKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment attempts: %w", err)
	}

	if attempts > int64(s.config.MaxAttempts) {
		s.redisClient.Del(ctx, otpKey, attemptsKey)
		return false, domain.ErrOTPMaxAttempts
	}

	storedCode, err := s.redisClient.Get(ctx, otpKey).Result()
	if err == redis.Nil {
		// Expired or never issued; the TTL already erased it.
		return false, domain.ErrOTPNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to get OTP from Redis: %w", err)
	}

	if storedCode != code {
		return false, domain.ErrOTPInvalid
	}

	// Success - clean up Redis entries
	s.redisClient.Del(ctx, otpKey, attemptsKey)

	return true, nil
}

// CanResend implements domain.OTPService with Redis-based throttling
func (s *OTPServiceImpl) CanResend(ctx context.Context, email string) (bool, int64, error) {
	resendKey := fmt.Sprintf("otp:res:%s", email)

	ttl, err := s.redisClient.TTL(ctx, resendKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check resend TTL: %w", err)
	}

	if ttl <= 0 {
		return true, 0, nil
	}

	return false, int64(ttl.Seconds()), nil
}

func (s *OTPServiceImpl) deliver(ctx context.Context, email string, userID uint, code string) error {
	minutes := int(s.config.TTL.Minutes())
	if user, err := s.userRepo.FindByID(ctx, userID); err == nil && user.Phone != "" {
		message := fmt.Sprintf("Your login OTP is: %s. Valid for %d minutes.", code, minutes)
		return s.channels.SendSMS(user.Phone, message)
	}
	return s.notifier.NotifyOTP(email, code, minutes)
}

// generateSecureCode generates a cryptographically secure OTP code
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)

	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}

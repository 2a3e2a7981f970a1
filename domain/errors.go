package domain

import "errors"

// User directory errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Leave workflow errors. The original behavior was a silent no-op on
// unknown ids; these sentinels let callers tell "not found" apart from
// "already decided".
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrRequestNotFound  = errors.New("leave request not found")
	ErrStepNotFound     = errors.New("approval step not found")
	ErrRequestFinalized = errors.New("leave request already finalized")
	ErrStepNotActive    = errors.New("approval step is not the active step")
	ErrInvalidDateRange = errors.New("end date precedes start date")
)

// Export errors
var (
	ErrCertificateNotReady = errors.New("certificate not available until the request is finalized")
)

// OTP errors. Expiry is reported as ErrOTPNotFound: the store TTL erases
// an expired code, so expired and never-issued are indistinguishable.
var (
	ErrOTPInvalid     = errors.New("invalid otp code")
	ErrOTPMaxAttempts = errors.New("maximum otp attempts exceeded")
	ErrOTPNotFound    = errors.New("otp not found")
	ErrOTPResendLimit = errors.New("otp resend limit exceeded")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

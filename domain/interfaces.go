package domain

import "context"

// UserRepository defines user-directory data access. The workflow engine
// consumes it read-only; mutation operations serve the admin surface.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*User, error)
	ListByRole(ctx context.Context, role Role) ([]*User, error)
}

// LeaveRepository is the explicitly owned store of leave requests. Writes
// replace whole records; reads hand out copies, so no caller ever observes
// a partial update.
type LeaveRepository interface {
	Append(ctx context.Context, req *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	Replace(ctx context.Context, req *LeaveRequest) error
	ListByEmployee(ctx context.Context, employeeID uint) ([]*LeaveRequest, error)
	ListAll(ctx context.Context) ([]*LeaveRequest, error)
}

// SettingsRepository holds the HR-tunable configuration (quotas, holidays).
type SettingsRepository interface {
	Quotas(ctx context.Context) (LeaveQuotas, error)
	UpdateQuotas(ctx context.Context, q LeaveQuotas) error
	Holidays(ctx context.Context) ([]Holiday, error)
	AddHoliday(ctx context.Context, h Holiday) (Holiday, error)
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteExpired(ctx context.Context) error
}

// WorkflowService is the leave workflow engine: it owns the request
// collection, builds the 3-step chain on submission, applies decisions and
// derives the per-role pending queues.
type WorkflowService interface {
	Submit(ctx context.Context, in SubmitLeaveInput) (*LeaveRequest, error)
	Decide(ctx context.Context, in DecideInput) (*LeaveRequest, error)
	PendingForApprover(ctx context.Context, role Role, approverID uint) ([]*LeaveRequest, error)
	ByEmployee(ctx context.Context, employeeID uint) ([]*LeaveRequest, error)
	All(ctx context.Context) ([]*LeaveRequest, error)
}

// AuthService defines authentication business logic
type AuthService interface {
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	SendLoginOTP(ctx context.Context, username string) error
	LoginWithOTP(ctx context.Context, username, code string) (*AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	GetUserProfile(ctx context.Context, userID uint) (*User, error)
}

// OTPService defines OTP operations
type OTPService interface {
	Generate(ctx context.Context, email string, userID uint) (*OTPRequest, error)
	Verify(ctx context.Context, email, code string, userID uint) (bool, error)
	CanResend(ctx context.Context, email string) (bool, int64, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	GenerateAccessToken(userID uint, role string, sessionID string) (string, error)
	GenerateRefreshToken(userID uint, role string, sessionID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// NotificationService defines the raw delivery channels. Failures are the
// caller's business to ignore: the workflow never awaits delivery.
type NotificationService interface {
	SendSMS(to, message string) error
	SendEmail(to, subject, body string) error
}

// LeaveNotifier composes the two workflow notifications on top of the raw
// channels. Fire-and-forget from the engine's point of view.
type LeaveNotifier interface {
	NotifyApprovalNeeded(req *LeaveRequest, approverEmail, approverName, stepLabel string) error
	NotifyStatusChanged(req *LeaveRequest, employeeEmail string, status ApprovalStatus, approverName string) error
	NotifyOTP(email, code string, ttlMinutes int) error
}

// ExportService renders the tabular CSV export and the per-request PDF
// approval certificate. Both return the payload plus its download filename.
type ExportService interface {
	RequestsCSV(ctx context.Context) ([]byte, string, error)
	Certificate(ctx context.Context, requestID string) ([]byte, string, error)
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	SessionID string `json:"session_id,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}

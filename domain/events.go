package domain

import "time"

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Workflow events
	LeaveSubmittedEvent AuditEventType = "LEAVE_SUBMITTED"
	LeaveApprovedEvent  AuditEventType = "LEAVE_STEP_APPROVED"
	LeaveRejectedEvent  AuditEventType = "LEAVE_STEP_REJECTED"
	LeaveFinalizedEvent AuditEventType = "LEAVE_FINALIZED"

	// Authentication events
	UserLoginEvent        AuditEventType = "USER_LOGIN"
	UserLoginFailureEvent AuditEventType = "USER_LOGIN_FAILED"
	UserLogoutEvent       AuditEventType = "USER_LOGOUT"
	LoginOTPRequestEvent  AuditEventType = "LOGIN_OTP_REQUESTED"
	LoginOTPVerifyEvent   AuditEventType = "LOGIN_OTP_VERIFIED"

	// Directory events
	UserCreatedEvent AuditEventType = "USER_CREATED"
	UserUpdatedEvent AuditEventType = "USER_UPDATED"
	UserDeletedEvent AuditEventType = "USER_DELETED"
)

// AuditEvent represents a business event that occurred in the system
type AuditEvent struct {
	EventType AuditEventType         `json:"event_type"`
	UserID    uint                   `json:"user_id"`
	RequestID string                 `json:"request_id,omitempty"`
	StepID    string                 `json:"step_id,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	ErrorMsg  string                 `json:"error_msg,omitempty"`
	Success   bool                   `json:"success"`
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType, userID uint) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]interface{}),
		Success:   true,
	}
}

// WithRequest attaches the leave request (and optionally step) the event is about
func (e *AuditEvent) WithRequest(requestID, stepID string) *AuditEvent {
	e.RequestID = requestID
	e.StepID = stepID
	return e
}

// WithError sets error information on the audit event
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithMetadata adds metadata to the event
func (e *AuditEvent) WithMetadata(key string, value interface{}) *AuditEvent {
	e.Metadata[key] = value
	return e
}

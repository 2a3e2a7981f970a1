package domain

import "time"

// Role identifies a user's position in the approval chain
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleHR       Role = "hr"
	RoleCOO      Role = "coo"
)

// LeaveType enumerates the supported leave categories
type LeaveType string

const (
	LeaveAnnual    LeaveType = "annual"
	LeaveSick      LeaveType = "sick"
	LeaveEmergency LeaveType = "emergency"
	LeaveMaternity LeaveType = "maternity"
	LeaveHajj      LeaveType = "hajj"
	LeaveUnpaid    LeaveType = "unpaid"
)

// ApprovalStatus is the state of a single step or of the whole request
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

// ApprovalChain is the fixed role order every request walks through.
var ApprovalChain = []Role{RoleManager, RoleHR, RoleCOO}

// User represents an employee, manager, HR officer or COO
type User struct {
	ID           uint
	Username     string
	Name         string
	Email        string
	Phone        string
	PasswordHash string `gorm:"column:password"`
	Role         Role
	Department   string
	ManagerID    *uint
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EmergencyContact is the optional contact block on a leave request
type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// ApprovalStep is one stage in the fixed 3-stage chain attached to a request.
// ApproverID is the binding resolved at submission time; it may be nil when
// no user holding the role existed at that moment.
type ApprovalStep struct {
	ID               string         `json:"id"`
	Step             int            `json:"step"`
	ApproverRole     Role           `json:"approver_role"`
	ApproverID       *uint          `json:"approver_id,omitempty"`
	ApproverName     string         `json:"approver_name,omitempty"`
	Status           ApprovalStatus `json:"status"`
	DecidedAt        *time.Time     `json:"decided_at,omitempty"`
	Remarks          string         `json:"remarks,omitempty"`
	DigitalSignature bool           `json:"digital_signature"`
	OTPVerified      bool           `json:"otp_verified"`
}

// LeaveRequest is the aggregate owned by the workflow engine. EmployeeName
// and Department are denormalized at submission time and not kept in sync
// with later user edits.
type LeaveRequest struct {
	ID               string           `json:"id"`
	EmployeeID       uint             `json:"employee_id"`
	EmployeeName     string           `json:"employee_name"`
	Department       string           `json:"department"`
	LeaveType        LeaveType        `json:"leave_type"`
	StartDate        time.Time        `json:"start_date"`
	EndDate          time.Time        `json:"end_date"`
	Duration         int              `json:"duration"`
	ExitReentryVisa  bool             `json:"exit_reentry_visa"`
	EmergencyContact EmergencyContact `json:"emergency_contact"`
	Reason           string           `json:"reason"`
	ApprovalSteps    []ApprovalStep   `json:"approval_steps"`
	CurrentStep      int              `json:"current_step"`
	FinalStatus      ApprovalStatus   `json:"final_status"`
	SubmittedAt      time.Time        `json:"submitted_at"`
	PDFGenerated     bool             `json:"pdf_generated"`
}

// Terminal reports whether the request reached a final decision. Terminal
// requests accept no further mutation.
func (r *LeaveRequest) Terminal() bool {
	return r.FinalStatus != StatusPending
}

// ActiveStep returns the step at the current-step index if it is still
// pending, nil otherwise.
func (r *LeaveRequest) ActiveStep() *ApprovalStep {
	for i := range r.ApprovalSteps {
		s := &r.ApprovalSteps[i]
		if s.Step == r.CurrentStep && s.Status == StatusPending {
			return s
		}
	}
	return nil
}

// StepByID returns the step with the given id, nil if absent.
func (r *LeaveRequest) StepByID(stepID string) *ApprovalStep {
	for i := range r.ApprovalSteps {
		if r.ApprovalSteps[i].ID == stepID {
			return &r.ApprovalSteps[i]
		}
	}
	return nil
}

// Clone returns a deep copy so callers can never mutate the stored record.
func (r *LeaveRequest) Clone() *LeaveRequest {
	cp := *r
	cp.ApprovalSteps = make([]ApprovalStep, len(r.ApprovalSteps))
	copy(cp.ApprovalSteps, r.ApprovalSteps)
	for i := range r.ApprovalSteps {
		if r.ApprovalSteps[i].ApproverID != nil {
			id := *r.ApprovalSteps[i].ApproverID
			cp.ApprovalSteps[i].ApproverID = &id
		}
		if r.ApprovalSteps[i].DecidedAt != nil {
			ts := *r.ApprovalSteps[i].DecidedAt
			cp.ApprovalSteps[i].DecidedAt = &ts
		}
	}
	return &cp
}

// InclusiveDays returns the day count of the [start, end] range, so a
// same-day leave counts as 1 day. Dates are truncated to UTC midnight first.
func InclusiveDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if e.Before(s) {
		s, e = e, s
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// SubmitLeaveInput carries everything the workflow engine needs to create a
// request. Field presence is validated by the HTTP layer; date ordering is
// re-checked by the engine.
type SubmitLeaveInput struct {
	EmployeeID       uint
	LeaveType        LeaveType
	StartDate        time.Time
	EndDate          time.Time
	ExitReentryVisa  bool
	EmergencyContact EmergencyContact
	Reason           string
}

// DecideInput carries an approval or rejection for one step. ActorID is the
// authenticated user applying the decision.
type DecideInput struct {
	RequestID   string
	StepID      string
	Approved    bool
	Remarks     string
	OTPVerified bool
	ActorID     uint
}

// LeaveQuotas holds the per-type annual day allowances configured by HR.
type LeaveQuotas struct {
	Annual    int `json:"annual" yaml:"annual"`
	Sick      int `json:"sick" yaml:"sick"`
	Emergency int `json:"emergency" yaml:"emergency"`
	Maternity int `json:"maternity" yaml:"maternity"`
	Hajj      int `json:"hajj" yaml:"hajj"`
	Unpaid    int `json:"unpaid" yaml:"unpaid"`
}

// Holiday is one entry in the company holiday calendar.
type Holiday struct {
	ID   int       `json:"id"`
	Name string    `json:"name"`
	Date time.Time `json:"date"`
	Type string    `json:"type"`
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	SessionID    string
	ExpiresIn    int64
}

// OTPRequest represents a generated login code awaiting verification
type OTPRequest struct {
	Email     string
	Code      string
	UserID    uint
	ExpiresAt time.Time
	Attempts  int
}

// Session represents a user session
type Session struct {
	ID        string
	UserID    uint
	ExpiresAt time.Time
	CreatedAt time.Time
}

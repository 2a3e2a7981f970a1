package mocks

import (
	"github.com/iamasim4u/atcl-leave-system/domain"
)

// MockLeaveNotifier implements domain.LeaveNotifier interface for testing
type MockLeaveNotifier struct {
	NotifyApprovalNeededFunc func(req *domain.LeaveRequest, approverEmail, approverName, stepLabel string) error
	NotifyStatusChangedFunc  func(req *domain.LeaveRequest, employeeEmail string, status domain.ApprovalStatus, approverName string) error
	NotifyOTPFunc            func(email, code string, ttlMinutes int) error

	ApprovalNotices []ApprovalNotice
	StatusNotices   []StatusNotice
	OTPNotices      []OTPNotice
}

// ApprovalNotice records one hand-off notification
type ApprovalNotice struct {
	RequestID     string
	ApproverEmail string
	ApproverName  string
	StepLabel     string
}

// StatusNotice records one decision notification to the employee
type StatusNotice struct {
	RequestID     string
	EmployeeEmail string
	Status        domain.ApprovalStatus
	ApproverName  string
}

// OTPNotice records one login code delivery
type OTPNotice struct {
	Email string
	Code  string
}

var _ domain.LeaveNotifier = (*MockLeaveNotifier)(nil)

// NewMockLeaveNotifier creates a new MockLeaveNotifier with default behaviors
func NewMockLeaveNotifier() *MockLeaveNotifier {
	return &MockLeaveNotifier{}
}

// NotifyApprovalNeeded records the hand-off and succeeds
func (m *MockLeaveNotifier) NotifyApprovalNeeded(req *domain.LeaveRequest, approverEmail, approverName, stepLabel string) error {
	if m.NotifyApprovalNeededFunc != nil {
		return m.NotifyApprovalNeededFunc(req, approverEmail, approverName, stepLabel)
	}
	m.ApprovalNotices = append(m.ApprovalNotices, ApprovalNotice{
		RequestID:     req.ID,
		ApproverEmail: approverEmail,
		ApproverName:  approverName,
		StepLabel:     stepLabel,
	})
	return nil
}

// NotifyStatusChanged records the decision notice and succeeds
func (m *MockLeaveNotifier) NotifyStatusChanged(req *domain.LeaveRequest, employeeEmail string, status domain.ApprovalStatus, approverName string) error {
	if m.NotifyStatusChangedFunc != nil {
		return m.NotifyStatusChangedFunc(req, employeeEmail, status, approverName)
	}
	m.StatusNotices = append(m.StatusNotices, StatusNotice{
		RequestID:     req.ID,
		EmployeeEmail: employeeEmail,
		Status:        status,
		ApproverName:  approverName,
	})
	return nil
}

// NotifyOTP records the code delivery and succeeds
func (m *MockLeaveNotifier) NotifyOTP(email, code string, ttlMinutes int) error {
	if m.NotifyOTPFunc != nil {
		return m.NotifyOTPFunc(email, code, ttlMinutes)
	}
	m.OTPNotices = append(m.OTPNotices, OTPNotice{Email: email, Code: code})
	return nil
}

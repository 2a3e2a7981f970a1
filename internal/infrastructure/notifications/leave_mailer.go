package notifications

import (
	"fmt"
	"strings"

	"github.com/iamasim4u/atcl-leave-system/domain"
)

// LeaveMailer implements domain.LeaveNotifier by composing the portal's
// messages over the raw email channel.
type LeaveMailer struct {
	channels    domain.NotificationService
	companyName string
}

// NewLeaveMailer creates the workflow-facing notifier
func NewLeaveMailer(channels domain.NotificationService, companyName string) domain.LeaveNotifier {
	return &LeaveMailer{channels: channels, companyName: companyName}
}

// NotifyApprovalNeeded tells the next approver a request awaits their decision.
func (m *LeaveMailer) NotifyApprovalNeeded(req *domain.LeaveRequest, approverEmail, approverName, stepLabel string) error {
	subject := fmt.Sprintf("%s Leave System - Approval Required: %s", m.companyName, req.EmployeeName)
	body := fmt.Sprintf(
		"Dear %s, %s has submitted a leave request requiring your approval (%s) for %s leave from %s to %s.",
		approverName,
		req.EmployeeName,
		stepLabel,
		leaveTypeLabel(req.LeaveType),
		req.StartDate.Format("2006-01-02"),
		req.EndDate.Format("2006-01-02"),
	)
	return m.channels.SendEmail(approverEmail, subject, body)
}

// NotifyStatusChanged tells the employee their request reached a decision.
func (m *LeaveMailer) NotifyStatusChanged(req *domain.LeaveRequest, employeeEmail string, status domain.ApprovalStatus, approverName string) error {
	subject := fmt.Sprintf("%s Leave System - Request %s", m.companyName, strings.ToUpper(string(status)))
	body := fmt.Sprintf(
		"Your leave request for %s leave from %s to %s has been %s by %s.",
		leaveTypeLabel(req.LeaveType),
		req.StartDate.Format("2006-01-02"),
		req.EndDate.Format("2006-01-02"),
		status,
		approverName,
	)
	return m.channels.SendEmail(employeeEmail, subject, body)
}

// NotifyOTP delivers a login code. Demo channel only; not a secure transport.
func (m *LeaveMailer) NotifyOTP(email, code string, ttlMinutes int) error {
	subject := fmt.Sprintf("%s Leave System - Login OTP", m.companyName)
	body := fmt.Sprintf("Your login OTP is: %s. Valid for %d minutes.", code, ttlMinutes)
	return m.channels.SendEmail(email, subject, body)
}

func leaveTypeLabel(t domain.LeaveType) string {
	return strings.ReplaceAll(string(t), "_", " ")
}

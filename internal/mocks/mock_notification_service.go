package mocks

import (
	"github.com/iamasim4u/atcl-leave-system/domain"
)

// MockNotificationService implements domain.NotificationService interface for testing
type MockNotificationService struct {
	SendSMSFunc   func(to, message string) error
	SendEmailFunc func(to, subject, body string) error

	SentSMS    []SentMessage
	SentEmails []SentEmail
}

// SentMessage records one SMS handed to the mock
type SentMessage struct {
	To      string
	Message string
}

// SentEmail records one email handed to the mock
type SentEmail struct {
	To      string
	Subject string
	Body    string
}

var _ domain.NotificationService = (*MockNotificationService)(nil)

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendSMS records the message and succeeds
func (m *MockNotificationService) SendSMS(to, message string) error {
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	m.SentSMS = append(m.SentSMS, SentMessage{To: to, Message: message})
	return nil
}

// SendEmail records the email and succeeds
func (m *MockNotificationService) SendEmail(to, subject, body string) error {
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(to, subject, body)
	}
	m.SentEmails = append(m.SentEmails, SentEmail{To: to, Subject: subject, Body: body})
	return nil
}

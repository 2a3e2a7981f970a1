package mocks

import (
	"context"

	"github.com/iamasim4u/atcl-leave-system/domain"
)

// MockExportService implements domain.ExportService interface for testing
type MockExportService struct {
	RequestsCSVFunc func(ctx context.Context) ([]byte, string, error)
	CertificateFunc func(ctx context.Context, requestID string) ([]byte, string, error)
}

var _ domain.ExportService = (*MockExportService)(nil)

// NewMockExportService creates a new MockExportService with default behaviors
func NewMockExportService() *MockExportService {
	return &MockExportService{}
}

// RequestsCSV returns an empty CSV payload
func (m *MockExportService) RequestsCSV(ctx context.Context) ([]byte, string, error) {
	if m.RequestsCSVFunc != nil {
		return m.RequestsCSVFunc(ctx)
	}
	return []byte("Request ID\n"), "leave_requests_mock.csv", nil
}

// Certificate returns a placeholder PDF payload
func (m *MockExportService) Certificate(ctx context.Context, requestID string) ([]byte, string, error) {
	if m.CertificateFunc != nil {
		return m.CertificateFunc(ctx, requestID)
	}
	return []byte("%PDF-mock"), "ATCL_Leave_Request_" + requestID + "_Mock_User.pdf", nil
}

package mocks

import (
	"context"

	"github.com/iamasim4u/atcl-leave-system/domain"
)

// MockLeaveRepository implements domain.LeaveRepository interface for testing
type MockLeaveRepository struct {
	AppendFunc         func(ctx context.Context, req *domain.LeaveRequest) error
	FindByIDFunc       func(ctx context.Context, id string) (*domain.LeaveRequest, error)
	ReplaceFunc        func(ctx context.Context, req *domain.LeaveRequest) error
	ListByEmployeeFunc func(ctx context.Context, employeeID uint) ([]*domain.LeaveRequest, error)
	ListAllFunc        func(ctx context.Context) ([]*domain.LeaveRequest, error)
}

var _ domain.LeaveRepository = (*MockLeaveRepository)(nil)

// NewMockLeaveRepository creates a new MockLeaveRepository with default behaviors
func NewMockLeaveRepository() *MockLeaveRepository {
	return &MockLeaveRepository{}
}

// Append stores a new leave request
func (m *MockLeaveRepository) Append(ctx context.Context, req *domain.LeaveRequest) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, req)
	}
	return nil
}

// FindByID finds a leave request by ID
func (m *MockLeaveRepository) FindByID(ctx context.Context, id string) (*domain.LeaveRequest, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrRequestNotFound
}

// Replace overwrites a stored leave request
func (m *MockLeaveRepository) Replace(ctx context.Context, req *domain.LeaveRequest) error {
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, req)
	}
	return nil
}

// ListByEmployee lists requests filed by one employee
func (m *MockLeaveRepository) ListByEmployee(ctx context.Context, employeeID uint) ([]*domain.LeaveRequest, error) {
	if m.ListByEmployeeFunc != nil {
		return m.ListByEmployeeFunc(ctx, employeeID)
	}
	return []*domain.LeaveRequest{}, nil
}

// ListAll lists every stored request
func (m *MockLeaveRepository) ListAll(ctx context.Context) ([]*domain.LeaveRequest, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return []*domain.LeaveRequest{}, nil
}

package mocks

import (
	"context"

	"github.com/iamasim4u/atcl-leave-system/domain"
)

// MockWorkflowService implements domain.WorkflowService interface for testing
type MockWorkflowService struct {
	SubmitFunc             func(ctx context.Context, in domain.SubmitLeaveInput) (*domain.LeaveRequest, error)
	DecideFunc             func(ctx context.Context, in domain.DecideInput) (*domain.LeaveRequest, error)
	PendingForApproverFunc func(ctx context.Context, role domain.Role, approverID uint) ([]*domain.LeaveRequest, error)
	ByEmployeeFunc         func(ctx context.Context, employeeID uint) ([]*domain.LeaveRequest, error)
	AllFunc                func(ctx context.Context) ([]*domain.LeaveRequest, error)
}

var _ domain.WorkflowService = (*MockWorkflowService)(nil)

// NewMockWorkflowService creates a new MockWorkflowService with default behaviors
func NewMockWorkflowService() *MockWorkflowService {
	return &MockWorkflowService{}
}

// Submit files a leave request
func (m *MockWorkflowService) Submit(ctx context.Context, in domain.SubmitLeaveInput) (*domain.LeaveRequest, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, in)
	}
	return &domain.LeaveRequest{
		ID:          "req_mock",
		EmployeeID:  in.EmployeeID,
		LeaveType:   in.LeaveType,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Duration:    domain.InclusiveDays(in.StartDate, in.EndDate),
		Reason:      in.Reason,
		CurrentStep: 1,
		FinalStatus: domain.StatusPending,
	}, nil
}

// Decide applies a decision to a step
func (m *MockWorkflowService) Decide(ctx context.Context, in domain.DecideInput) (*domain.LeaveRequest, error) {
	if m.DecideFunc != nil {
		return m.DecideFunc(ctx, in)
	}
	return nil, domain.ErrRequestNotFound
}

// PendingForApprover lists the approver's queue
func (m *MockWorkflowService) PendingForApprover(ctx context.Context, role domain.Role, approverID uint) ([]*domain.LeaveRequest, error) {
	if m.PendingForApproverFunc != nil {
		return m.PendingForApproverFunc(ctx, role, approverID)
	}
	return []*domain.LeaveRequest{}, nil
}

// ByEmployee lists one employee's requests
func (m *MockWorkflowService) ByEmployee(ctx context.Context, employeeID uint) ([]*domain.LeaveRequest, error) {
	if m.ByEmployeeFunc != nil {
		return m.ByEmployeeFunc(ctx, employeeID)
	}
	return []*domain.LeaveRequest{}, nil
}

// All lists every request
func (m *MockWorkflowService) All(ctx context.Context) ([]*domain.LeaveRequest, error) {
	if m.AllFunc != nil {
		return m.AllFunc(ctx)
	}
	return []*domain.LeaveRequest{}, nil
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iamasim4u/atcl-leave-system/domain"
)

// WorkflowServiceImpl implements domain.WorkflowService. It owns the leave
// request collection via the repository handle and never mutates user
// records: the directory is consumed read-only, and absent lookups (no
// manager, no HR/COO user yet) skip the dependent notification instead of
// failing the operation.
type WorkflowServiceImpl struct {
	leaveRepo domain.LeaveRepository
	userRepo  domain.UserRepository
	notifier  domain.LeaveNotifier

	// dispatch decouples notification delivery from the request path.
	dispatch func(fn func())
}

// NewWorkflowService creates the leave workflow engine
func NewWorkflowService(leaveRepo domain.LeaveRepository, userRepo domain.UserRepository, notifier domain.LeaveNotifier) domain.WorkflowService {
	return &WorkflowServiceImpl{
		leaveRepo: leaveRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		dispatch:  func(fn func()) { go fn() },
	}
}

// Submit implements domain.WorkflowService. It resolves the approver
// bindings at submission time: the manager step binds to the employee's own
// manager, the hr and coo steps bind to the first user found holding that
// role (the step stays role-scoped at decision time regardless).
func (s *WorkflowServiceImpl) Submit(ctx context.Context, in domain.SubmitLeaveInput) (*domain.LeaveRequest, error) {
	employee, err := s.userRepo.FindByID(ctx, in.EmployeeID)
	if err != nil {
		return nil, domain.ErrEmployeeNotFound
	}

	if in.EndDate.Before(in.StartDate) {
		return nil, domain.ErrInvalidDateRange
	}

	var manager *domain.User
	if employee.ManagerID != nil {
		if m, err := s.userRepo.FindByID(ctx, *employee.ManagerID); err == nil {
			manager = m
		}
	}

	req := &domain.LeaveRequest{
		ID:               "req_" + uuid.NewString(),
		EmployeeID:       employee.ID,
		EmployeeName:     employee.Name,
		Department:       employee.Department,
		LeaveType:        in.LeaveType,
		StartDate:        in.StartDate,
		EndDate:          in.EndDate,
		Duration:         domain.InclusiveDays(in.StartDate, in.EndDate),
		ExitReentryVisa:  in.ExitReentryVisa,
		EmergencyContact: in.EmergencyContact,
		Reason:           in.Reason,
		CurrentStep:      1,
		FinalStatus:      domain.StatusPending,
		SubmittedAt:      time.Now().UTC(),
	}

	req.ApprovalSteps = make([]domain.ApprovalStep, 0, len(domain.ApprovalChain))
	for i, role := range domain.ApprovalChain {
		step := domain.ApprovalStep{
			ID:           fmt.Sprintf("step_%d_%s", i+1, uuid.NewString()),
			Step:         i + 1,
			ApproverRole: role,
			Status:       domain.StatusPending,
		}
		switch role {
		case domain.RoleManager:
			if manager != nil {
				id := manager.ID
				step.ApproverID = &id
			}
		default:
			if holder := s.firstByRole(ctx, role); holder != nil {
				id := holder.ID
				step.ApproverID = &id
			}
		}
		req.ApprovalSteps = append(req.ApprovalSteps, step)
	}

	if err := s.leaveRepo.Append(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to store leave request: %w", err)
	}

	if manager != nil {
		snapshot := req.Clone()
		email, name := manager.Email, manager.Name
		s.dispatch(func() {
			if err := s.notifier.NotifyApprovalNeeded(snapshot, email, name, stepLabel(domain.RoleManager)); err != nil {
				log.Printf("LEAVE_NOTIFY_FAILED: request=%s step=1 error=%v", snapshot.ID, err)
			}
		})
	} else {
		log.Printf("LEAVE_SUBMITTED_WITHOUT_MANAGER: request=%s employee=%d", req.ID, employee.ID)
	}

	audit(domain.NewAuditEvent(domain.LeaveSubmittedEvent, employee.ID).
		WithRequest(req.ID, "").
		WithMetadata("leave_type", string(req.LeaveType)).
		WithMetadata("duration", req.Duration))

	return req.Clone(), nil
}

// Decide implements domain.WorkflowService. Rejection at any step is
// immediately terminal and freezes currentStep; approval of a non-final
// step advances currentStep by exactly one; approval of the final step
// finalizes the request. Terminal requests never mutate again.
func (s *WorkflowServiceImpl) Decide(ctx context.Context, in domain.DecideInput) (*domain.LeaveRequest, error) {
	req, err := s.leaveRepo.FindByID(ctx, in.RequestID)
	if err != nil {
		return nil, err
	}

	if req.Terminal() {
		return nil, domain.ErrRequestFinalized
	}

	step := req.StepByID(in.StepID)
	if step == nil {
		return nil, domain.ErrStepNotFound
	}
	if step.Step != req.CurrentStep || step.Status != domain.StatusPending {
		return nil, domain.ErrStepNotActive
	}

	now := time.Now().UTC()
	step.Status = domain.StatusApproved
	if !in.Approved {
		step.Status = domain.StatusRejected
	}
	step.DecidedAt = &now
	step.Remarks = in.Remarks
	step.OTPVerified = in.OTPVerified
	step.DigitalSignature = true
	step.ApproverName = s.resolveApproverName(ctx, step, in.ActorID)

	employee, _ := s.userRepo.FindByID(ctx, req.EmployeeID)

	switch {
	case !in.Approved:
		// Terminal regardless of which step rejected; currentStep stays put.
		req.FinalStatus = domain.StatusRejected
		s.notifyEmployee(req, employee, domain.StatusRejected, step.ApproverName)
		audit(domain.NewAuditEvent(domain.LeaveRejectedEvent, in.ActorID).WithRequest(req.ID, step.ID))

	case req.CurrentStep < len(req.ApprovalSteps):
		req.CurrentStep++
		s.notifyNextApprover(ctx, req)
		audit(domain.NewAuditEvent(domain.LeaveApprovedEvent, in.ActorID).WithRequest(req.ID, step.ID))

	default:
		req.FinalStatus = domain.StatusApproved
		s.notifyEmployee(req, employee, domain.StatusApproved, step.ApproverName)
		audit(domain.NewAuditEvent(domain.LeaveFinalizedEvent, in.ActorID).WithRequest(req.ID, step.ID))
	}

	req.PDFGenerated = req.FinalStatus != domain.StatusPending

	if err := s.leaveRepo.Replace(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to store decision: %w", err)
	}

	return req.Clone(), nil
}

// PendingForApprover implements domain.WorkflowService: current-step
// routing only. Managers see only requests whose active step is bound to
// them; hr and coo queues are organization-wide for their role.
func (s *WorkflowServiceImpl) PendingForApprover(ctx context.Context, role domain.Role, approverID uint) ([]*domain.LeaveRequest, error) {
	all, err := s.leaveRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.LeaveRequest, 0)
	for _, req := range all {
		active := req.ActiveStep()
		if active == nil || active.ApproverRole != role {
			continue
		}
		if role == domain.RoleManager {
			if active.ApproverID == nil || *active.ApproverID != approverID {
				continue
			}
		}
		out = append(out, req)
	}
	return out, nil
}

// ByEmployee implements domain.WorkflowService
func (s *WorkflowServiceImpl) ByEmployee(ctx context.Context, employeeID uint) ([]*domain.LeaveRequest, error) {
	return s.leaveRepo.ListByEmployee(ctx, employeeID)
}

// All implements domain.WorkflowService
func (s *WorkflowServiceImpl) All(ctx context.Context) ([]*domain.LeaveRequest, error) {
	return s.leaveRepo.ListAll(ctx)
}

// resolveApproverName records who actually decided: the acting user when
// known, otherwise the submission-time binding, otherwise the role label.
func (s *WorkflowServiceImpl) resolveApproverName(ctx context.Context, step *domain.ApprovalStep, actorID uint) string {
	if actorID != 0 {
		if actor, err := s.userRepo.FindByID(ctx, actorID); err == nil {
			return actor.Name
		}
	}
	if step.ApproverID != nil {
		if bound, err := s.userRepo.FindByID(ctx, *step.ApproverID); err == nil {
			return bound.Name
		}
	}
	return strings.ToUpper(string(step.ApproverRole))
}

func (s *WorkflowServiceImpl) notifyEmployee(req *domain.LeaveRequest, employee *domain.User, status domain.ApprovalStatus, approverName string) {
	if employee == nil {
		log.Printf("LEAVE_NOTIFY_SKIPPED: request=%s employee missing", req.ID)
		return
	}
	snapshot := req.Clone()
	email := employee.Email
	s.dispatch(func() {
		if err := s.notifier.NotifyStatusChanged(snapshot, email, status, approverName); err != nil {
			log.Printf("LEAVE_NOTIFY_FAILED: request=%s status=%s error=%v", snapshot.ID, status, err)
		}
	})
}

// notifyNextApprover fires the hand-off notification for the step that just
// became active. A step with no submission-time binding gets none, silently.
func (s *WorkflowServiceImpl) notifyNextApprover(ctx context.Context, req *domain.LeaveRequest) {
	next := req.ActiveStep()
	if next == nil || next.ApproverID == nil {
		return
	}
	approver, err := s.userRepo.FindByID(ctx, *next.ApproverID)
	if err != nil {
		return
	}
	snapshot := req.Clone()
	email, name, label := approver.Email, approver.Name, stepLabel(next.ApproverRole)
	s.dispatch(func() {
		if err := s.notifier.NotifyApprovalNeeded(snapshot, email, name, label); err != nil {
			log.Printf("LEAVE_NOTIFY_FAILED: request=%s step=%d error=%v", snapshot.ID, snapshot.CurrentStep, err)
		}
	})
}

func (s *WorkflowServiceImpl) firstByRole(ctx context.Context, role domain.Role) *domain.User {
	holders, err := s.userRepo.ListByRole(ctx, role)
	if err != nil || len(holders) == 0 {
		return nil
	}
	return holders[0]
}

// audit writes a structured audit line. Events are log-only for now; a
// persistent audit trail would hang off the same call sites.
func audit(e *domain.AuditEvent) {
	data, err := json.Marshal(e)
	if err != nil {
		log.Printf("AUDIT_ENCODE_FAILED: event=%s error=%v", e.EventType, err)
		return
	}
	log.Printf("AUDIT: %s", data)
}

func stepLabel(role domain.Role) string {
	switch role {
	case domain.RoleManager:
		return "Manager Approval"
	case domain.RoleHR:
		return "HR Approval"
	case domain.RoleCOO:
		return "COO Approval"
	}
	return strings.ToUpper(string(role)) + " Approval"
}

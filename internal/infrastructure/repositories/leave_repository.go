package repositories

import (
	"context"
	"sync"

	"github.com/iamasim4u/atcl-leave-system/domain"
)

// LeaveRepositoryImpl implements domain.LeaveRepository with an in-memory,
// copy-on-write collection. The workflow engine is the sole writer; every
// read hands out a deep copy and every write replaces a whole record, so a
// reader sees a request either before or after a logical operation, never
// mid-mutation.
type LeaveRepositoryImpl struct {
	mu       sync.RWMutex
	requests []*domain.LeaveRequest
	byID     map[string]int
}

// NewLeaveRepository creates an empty in-memory leave request store
func NewLeaveRepository() domain.LeaveRepository {
	return &LeaveRepositoryImpl{
		byID: make(map[string]int),
	}
}

// Append implements domain.LeaveRepository
func (r *LeaveRepositoryImpl) Append(ctx context.Context, req *domain.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[req.ID] = len(r.requests)
	r.requests = append(r.requests, req.Clone())
	return nil
}

// FindByID implements domain.LeaveRepository
func (r *LeaveRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	return r.requests[idx].Clone(), nil
}

// Replace implements domain.LeaveRepository: whole-record swap, preserving
// submission order.
func (r *LeaveRepositoryImpl) Replace(ctx context.Context, req *domain.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.byID[req.ID]
	if !ok {
		return domain.ErrRequestNotFound
	}
	r.requests[idx] = req.Clone()
	return nil
}

// ListByEmployee implements domain.LeaveRepository
func (r *LeaveRepositoryImpl) ListByEmployee(ctx context.Context, employeeID uint) ([]*domain.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.LeaveRequest, 0)
	for _, req := range r.requests {
		if req.EmployeeID == employeeID {
			out = append(out, req.Clone())
		}
	}
	return out, nil
}

// ListAll implements domain.LeaveRepository
func (r *LeaveRepositoryImpl) ListAll(ctx context.Context) ([]*domain.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.LeaveRequest, 0, len(r.requests))
	for _, req := range r.requests {
		out = append(out, req.Clone())
	}
	return out, nil
}

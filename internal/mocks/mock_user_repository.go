package mocks

import (
	"context"
	"time"

	"github.com/iamasim4u/atcl-leave-system/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc         func(ctx context.Context, user *domain.User) error
	FindByIDFunc       func(ctx context.Context, id uint) (*domain.User, error)
	FindByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
	UpdateFunc         func(ctx context.Context, user *domain.User) error
	DeleteFunc         func(ctx context.Context, id uint) error
	ListFunc           func(ctx context.Context) ([]*domain.User, error)
	ListByRoleFunc     func(ctx context.Context, role domain.Role) ([]*domain.User, error)
}

var _ domain.UserRepository = (*MockUserRepository)(nil)

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create stores a user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	user.ID = 1
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return nil
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return &domain.User{
		ID:         id,
		Username:   "mock.user",
		Name:       "Mock User",
		Email:      "mock.user@example.com",
		Role:       domain.RoleEmployee,
		Department: "Engineering",
	}, nil
}

// FindByUsername finds a user by username
func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return &domain.User{
		ID:         1,
		Username:   username,
		Name:       "Mock User",
		Email:      username + "@example.com",
		Role:       domain.RoleEmployee,
		Department: "Engineering",
	}, nil
}

// Update updates a user
func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

// Delete removes a user
func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// List returns all users
func (m *MockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*domain.User{}, nil
}

// ListByRole returns all users holding a role
func (m *MockUserRepository) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	if m.ListByRoleFunc != nil {
		return m.ListByRoleFunc(ctx, role)
	}
	return []*domain.User{}, nil
}
